package model

import "time"

// Roles recognized by the admin API. Role names are kept as stored.
const (
	RoleAdmin        = "admin"
	RoleOperador     = "operador"
	RoleVisualizador = "visualizador"
)

type User struct {
	ID             int       `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	Role           string    `db:"role"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// HasRole reports whether the user's role is one of the given roles.
func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// ValidRole reports whether role is one of the recognized role names.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleOperador || role == RoleVisualizador
}
