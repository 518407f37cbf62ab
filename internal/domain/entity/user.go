package entity

import (
	"strings"
	"time"
)

// Roles válidos para User dentro de su empresa.
const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// User representa un usuario del sistema. CompanyID vacío = usuario sin empresa asignada
// (por ejemplo, tras eliminar su empresa o el super-admin de plataforma).
type User struct {
	ID           string
	CompanyID    string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Roles        []string
	IsActive     bool
	IsSuperAdmin bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName devuelve "Nombre Apellido" sin espacios sobrantes.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasRole informa si el usuario tiene el rol indicado.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// NormalizeEmail normaliza un email para búsqueda y unicidad.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
