package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/NovaMidia-Tec/painel/internal/model"
)

func (s *pgStore) CreateUser(email, hashedPassword, role string) (int, error) {
	var id int
	err := s.db.Get(&id, `
		INSERT INTO users (email, hashed_password, role, created_at, updated_at)
		VALUES ($1, $2, $3, now(), now())
		RETURNING id
		`, email, hashedPassword, role)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("failed to create user")
		return 0, err
	}
	return id, nil
}

func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `
		SELECT id, email, hashed_password, role, created_at, updated_at
		FROM users
		WHERE email = $1
		`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by email")
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `
		SELECT id, email, hashed_password, role, created_at, updated_at
		FROM users
		WHERE id = $1
		`, id)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("failed to get user by id")
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) ListUsers() ([]model.User, error) {
	var users []model.User
	err := s.db.Select(&users, `
		SELECT id, email, hashed_password, role, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
		`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *pgStore) UpdateUserRole(id int, role string) error {
	_, err := s.db.Exec(`
		UPDATE users
		SET role = $2,
		updated_at = now()
		WHERE id = $1
		`, id, role)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("failed to update user role")
	}
	return err
}

func (s *pgStore) DeleteUser(id int) error {
	_, err := s.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("failed to delete user")
	}
	return err
}
