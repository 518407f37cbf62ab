package repository

import (
	"context"

	"github.com/jhoicas/Offers-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. GetByID devuelve (nil, nil) si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// Update persiste todos los campos editables (perfil, logo, suscripción, estado).
	// Devuelve domain.ErrNotFound si la empresa no existe.
	Update(ctx context.Context, company *entity.Company) error
	Delete(ctx context.Context, id string) error
}
