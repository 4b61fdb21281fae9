package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario del sistema.
type User struct {
	ID        string
	Username  string
	PassHash  string // bcrypt hash, nunca plano en dominio después de persistir
	FullName  string
	PhotoURL  string
	Role      string // admin, user
	CreatedAt time.Time
	UpdatedAt time.Time
}
