package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Offers-api/internal/domain/entity"
)

// OfferFilter filtro de listados. UserID y CompanyID se combinan con AND; vacío = sin filtro.
type OfferFilter struct {
	UserID    string
	CompanyID string
}

// OfferRepository define el puerto de persistencia para Offer y sus líneas.
// Las lecturas hidratan Items (ordenados por posición) y CompanyName.
type OfferRepository interface {
	// Create inserta cabecera y líneas. Devuelve domain.ErrOfferNumberTaken si el número
	// ya existe para la empresa.
	Create(ctx context.Context, offer *entity.Offer) error
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	List(ctx context.Context, filter OfferFilter, limit, offset int) ([]*entity.Offer, error)
	Count(ctx context.Context, filter OfferFilter) (int, error)
	// LastNumberByCompany devuelve el número de la oferta más reciente de la empresa ("" si no hay).
	LastNumberByCompany(ctx context.Context, companyID string) (string, error)
	// Update reemplaza los campos escalares y la colección completa de líneas.
	Update(ctx context.Context, offer *entity.Offer) error
	UpdateStatus(ctx context.Context, id, status string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
