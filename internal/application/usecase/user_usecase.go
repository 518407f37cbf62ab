package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/access"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
)

// StatusInvalidator descarta el estado cacheado de un usuario (ver cache.UserStatusCache).
type StatusInvalidator interface {
	Invalidate(userID string)
}

// UserUseCase gestión de usuarios por el administrador de la empresa.
// Todo usuario objetivo debe pertenecer a la empresa del llamante; si no, ErrNotFound.
type UserUseCase struct {
	repo        repository.UserRepository
	statusCache StatusInvalidator
	now         func() time.Time
}

// NewUserUseCase construye el caso de uso. statusCache puede ser nil.
func NewUserUseCase(repo repository.UserRepository, statusCache StatusInvalidator) *UserUseCase {
	return &UserUseCase{repo: repo, statusCache: statusCache, now: time.Now}
}

// ListByCompany lista los usuarios de la empresa del llamante.
func (uc *UserUseCase) ListByCompany(ctx context.Context, actor access.Principal) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, actor.CompanyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *dto.ToUserResponse(u))
	}
	return out, nil
}

// Create da de alta un usuario activo en la empresa del llamante con rol User (y Admin si IsAdmin).
func (uc *UserUseCase) Create(ctx context.Context, actor access.Principal, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	email := entity.NormalizeEmail(in.Email)
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	roles := []string{entity.RoleUser}
	if in.IsAdmin {
		roles = append(roles, entity.RoleAdmin)
	}
	now := uc.now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    actor.CompanyID,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Roles:        roles,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Update cambia nombre y email de un usuario de la empresa.
func (uc *UserUseCase) Update(ctx context.Context, actor access.Principal, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.loadScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	email := entity.NormalizeEmail(in.Email)
	if email != user.Email {
		other, err := uc.repo.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != user.ID {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Email = email
	user.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Delete elimina un usuario de la empresa. Un admin no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor access.Principal, id string) error {
	if id == actor.UserID {
		return domain.ErrSelfAction
	}
	user, err := uc.loadScoped(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, user.ID); err != nil {
		return err
	}
	uc.invalidate(user.ID)
	return nil
}

// ToggleStatus activa o desactiva un usuario de la empresa. Un admin no puede desactivarse a sí mismo.
func (uc *UserUseCase) ToggleStatus(ctx context.Context, actor access.Principal, id string) (*dto.UserResponse, error) {
	if id == actor.UserID {
		return nil, domain.ErrSelfAction
	}
	user, err := uc.loadScoped(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	user.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.invalidate(user.ID)
	return dto.ToUserResponse(user), nil
}

func (uc *UserUseCase) loadScoped(ctx context.Context, actor access.Principal, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !access.SameTenant(actor, user.CompanyID) {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (uc *UserUseCase) invalidate(userID string) {
	if uc.statusCache != nil {
		uc.statusCache.Invalidate(userID)
	}
}
