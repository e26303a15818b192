package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"      // importa datos y administra usuarios
	RoleSupervisor = "supervisor" // supervisor de despacho
	RoleViewer     = "viewer"     // solo lectura
)

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSupervisor, RoleViewer:
		return true
	}
	return false
}

// User representa un usuario del tablero.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
