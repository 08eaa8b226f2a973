package dto

import "time"

// RegisterRequest entrada para registro de clientes.
type RegisterRequest struct {
	FirstName string `json:"nombre" validate:"required,max=100"`
	LastName  string `json:"apellido" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"contrasena" validate:"required,min=8"`
	Address   string `json:"direccion" validate:"omitempty,max=300"`
	Phone     string `json:"telefono" validate:"omitempty,max=30"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"contrasena" validate:"required"`
}

// UserResponse salida de un usuario (sin contraseña).
type UserResponse struct {
	ID        string    `json:"usuario_id"`
	FirstName string    `json:"nombre"`
	LastName  string    `json:"apellido"`
	Email     string    `json:"email"`
	Address   string    `json:"direccion"`
	Phone     string    `json:"telefono"`
	Role      string    `json:"rol"`
	CreatedAt time.Time `json:"fecha_registro"`
}

// LoginResponse token JWT más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"usuario"`
}
