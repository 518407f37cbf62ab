package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
)

// SuperAdminInput datos de la cuenta de plataforma.
type SuperAdminInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SeedSuperAdmin crea la cuenta de super-admin o promueve la existente con ese email.
// En ambos casos la cuenta queda activa y con la password indicada. created informa si se creó.
func SeedSuperAdmin(ctx context.Context, users repository.UserRepository, in SuperAdminInput) (user *entity.User, created bool, err error) {
	email := entity.NormalizeEmail(in.Email)
	if email == "" || len(in.Password) < 6 {
		return nil, false, fmt.Errorf("%w: email y password (mínimo 6 caracteres) son obligatorios", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("auth: hash password: %w", err)
	}
	now := time.Now().UTC()

	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		existing.IsSuperAdmin = true
		existing.IsActive = true
		existing.PasswordHash = string(hash)
		existing.UpdatedAt = now
		if err := users.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	user = &entity.User{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{},
		IsActive:     true,
		IsSuperAdmin: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}
