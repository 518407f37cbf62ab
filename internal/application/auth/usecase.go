package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
	"github.com/jhoicas/Offers-api/pkg/jwt"
)

// RegistrationTxRunner ejecuta el alta de empresa + usuario en una sola transacción.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error) error
}

// AuthUseCase casos de uso de autenticación: registro, login y renovación de token.
type AuthUseCase struct {
	userRepo repository.UserRepository
	txRunner RegistrationTxRunner
	jwtOpts  jwt.Options
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, txRunner RegistrationTxRunner, jwtOpts jwt.Options) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, txRunner: txRunner, jwtOpts: jwtOpts, now: time.Now}
}

// Login verifica email/password y devuelve token + usuario.
// Email desconocido y password incorrecta son indistinguibles (ErrInvalidCredentials);
// una cuenta desactivada con password correcta devuelve ErrAccountDisabled.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, entity.NormalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	return uc.authResponse(user, "")
}

// Register crea la empresa y su primer usuario (rol Admin) en una transacción.
// Si el email ya existe devuelve ErrEmailAlreadyExists sin escribir nada.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := entity.NormalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	now := uc.now().UTC()
	company := &entity.Company{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(in.CompanyName),
		Address:          strings.TrimSpace(in.CompanyAddress),
		Phone:            strings.TrimSpace(in.CompanyPhone),
		Email:            email,
		SubscriptionPlan: entity.PlanFree,
		MonthlyFee:       decimal.Zero,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{entity.RoleAdmin},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.RunRegistration(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return uc.authResponse(user, "Registro exitoso")
}

// Refresh emite un token nuevo a partir de uno (posiblemente expirado) con firma válida.
func (uc *AuthUseCase) Refresh(ctx context.Context, token string) (*dto.AuthResponse, error) {
	claims, err := jwt.ParseExpired(uc.jwtOpts, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	return uc.authResponse(user, "")
}

// IssueToken firma un JWT con la identidad actual del usuario.
func (uc *AuthUseCase) IssueToken(user *entity.User) (string, error) {
	return jwt.Generate(uc.jwtOpts, jwt.Claims{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       user.FullName(),
		CompanyID:  user.CompanyID,
		Roles:      user.Roles,
		SuperAdmin: user.IsSuperAdmin,
	})
}

func (uc *AuthUseCase) authResponse(user *entity.User, msg string) (*dto.AuthResponse, error) {
	token, err := uc.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	return &dto.AuthResponse{
		Success: true,
		Message: msg,
		Token:   token,
		User:    dto.ToUserResponse(user),
	}, nil
}
