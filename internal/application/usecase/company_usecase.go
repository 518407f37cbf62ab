package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
)

// DefaultMaxLogoBytes tamaño máximo del logo si no se configura otro (2 MiB).
const DefaultMaxLogoBytes int64 = 2 << 20

// Sin svg: /uploads se sirve desde el mismo origen que la API y un svg puede llevar scripts.
var allowedLogoExt = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
}

// LogoStorage almacena los logos de empresa y devuelve su ruta pública.
type LogoStorage interface {
	Save(ctx context.Context, companyID, ext string, r io.Reader) (publicPath string, err error)
	Remove(ctx context.Context, publicPath string) error
}

// CompanyUseCase perfil de la empresa del llamante.
type CompanyUseCase struct {
	repo         repository.CompanyRepository
	logos        LogoStorage
	maxLogoBytes int64
	now          func() time.Time
}

// NewCompanyUseCase construye el caso de uso. maxLogoBytes <= 0 usa DefaultMaxLogoBytes.
func NewCompanyUseCase(repo repository.CompanyRepository, logos LogoStorage, maxLogoBytes int64) *CompanyUseCase {
	if maxLogoBytes <= 0 {
		maxLogoBytes = DefaultMaxLogoBytes
	}
	return &CompanyUseCase{repo: repo, logos: logos, maxLogoBytes: maxLogoBytes, now: time.Now}
}

// Get obtiene la empresa por ID.
func (uc *CompanyUseCase) Get(ctx context.Context, companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return dto.ToCompanyResponse(company), nil
}

// Update reemplaza los datos de perfil. Suscripción, estado y logo no se tocan.
func (uc *CompanyUseCase) Update(ctx context.Context, companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	company.Name = strings.TrimSpace(in.Name)
	company.Address = strings.TrimSpace(in.Address)
	company.Phone = strings.TrimSpace(in.Phone)
	company.Email = entity.NormalizeEmail(in.Email)
	company.TaxNumber = strings.TrimSpace(in.TaxNumber)
	company.IBAN = strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(in.IBAN)), " ", "")
	company.Website = strings.TrimSpace(in.Website)
	company.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	return dto.ToCompanyResponse(company), nil
}

// UploadLogo valida extensión y tamaño, guarda el archivo y actualiza la ruta del logo.
// El logo anterior se elimina sin propagar errores.
func (uc *CompanyUseCase) UploadLogo(ctx context.Context, companyID, filename string, size int64, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedLogoExt[ext] {
		return "", fmt.Errorf("%w: formato de logo no permitido %q", domain.ErrInvalidInput, ext)
	}
	if size <= 0 {
		return "", fmt.Errorf("%w: archivo vacío", domain.ErrInvalidInput)
	}
	if size > uc.maxLogoBytes {
		return "", fmt.Errorf("%w: el logo supera %d bytes", domain.ErrInvalidInput, uc.maxLogoBytes)
	}
	company, err := uc.load(ctx, companyID)
	if err != nil {
		return "", err
	}

	path, err := uc.logos.Save(ctx, company.ID, ext, io.LimitReader(r, uc.maxLogoBytes))
	if err != nil {
		return "", fmt.Errorf("guardar logo: %w", err)
	}
	previous := company.Logo
	company.Logo = path
	company.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, company); err != nil {
		_ = uc.logos.Remove(ctx, path)
		return "", err
	}
	if previous != "" && previous != path {
		_ = uc.logos.Remove(ctx, previous)
	}
	return path, nil
}

// HasActiveSubscription informa si la empresa puede operar (habilitada, suscripción activa y vigente).
func (uc *CompanyUseCase) HasActiveSubscription(ctx context.Context, companyID string) (bool, error) {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return false, err
	}
	if company == nil {
		return false, nil
	}
	return company.SubscriptionValidAt(uc.now()), nil
}

func (uc *CompanyUseCase) load(ctx context.Context, companyID string) (*entity.Company, error) {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}
