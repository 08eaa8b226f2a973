package entity

import "time"

// Roles válidos para User.
const (
	RoleCliente = "cliente"
	RoleAdmin   = "admin"
)

// User representa una cuenta del marketplace (comprador o administrador).
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // siempre en minúsculas
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Address      string
	Phone        string
	Role         string // cliente, admin
	Active       bool
	CreatedAt    time.Time
}

// IsAdmin indica si el usuario tiene rol administrador.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
