package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin      = "admin"
	RolOdontologo = "odontologo"
)

// Usuario representa un miembro del personal del consultorio.
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Nombre       string
	Rol          string // admin, odontologo
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
