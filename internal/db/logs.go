package db

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/NovaMidia-Tec/painel/internal/model"
)

func (s *pgStore) InsertLog(userID, deviceID *int, action string, details json.RawMessage) error {
	_, err := s.db.Exec(`
		INSERT INTO logs (user_id, device_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, now())
		`, userID, deviceID, action, []byte(details))
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("failed to insert log entry")
	}
	return err
}

func (s *pgStore) ListLogs() ([]model.LogEntry, error) {
	var logs []model.LogEntry
	err := s.db.Select(&logs, `
		SELECT id, user_id, device_id, action, details, created_at
		FROM logs
		ORDER BY created_at DESC
		`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list logs")
		return nil, err
	}
	return logs, nil
}
