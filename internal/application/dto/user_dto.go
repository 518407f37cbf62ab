package dto

import (
	"time"

	"github.com/jhoicas/Offers-api/internal/domain/entity"
)

// CreateUserRequest alta de usuario dentro de la empresa del admin (password en texto, se hashea en use case).
type CreateUserRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=200"`
	Password  string `json:"password" validate:"required,min=6,max=100"`
	IsAdmin   bool   `json:"isAdmin"`
}

// UpdateUserRequest cambia nombre y email.
type UpdateUserRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=200"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	CompanyID    *string   `json:"companyId"`
	Roles        []string  `json:"roles"`
	IsActive     bool      `json:"isActive"`
	IsSuperAdmin bool      `json:"isSuperAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUserResponse mapea la entidad a DTO.
func ToUserResponse(u *entity.User) *UserResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	var companyID *string
	if u.CompanyID != "" {
		id := u.CompanyID
		companyID = &id
	}
	return &UserResponse{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		CompanyID:    companyID,
		Roles:        roles,
		IsActive:     u.IsActive,
		IsSuperAdmin: u.IsSuperAdmin,
		CreatedAt:    u.CreatedAt,
	}
}
