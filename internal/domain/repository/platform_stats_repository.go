package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Offers-api/internal/domain/entity"
)

// PlatformCounts conteos crudos de toda la plataforma.
type PlatformCounts struct {
	TotalCompanies  int
	ActiveCompanies int // is_active AND has_active_subscription
	TotalUsers      int // excluye super-admins
	TotalOffers     int
}

// CompanyStatsResult resultado crudo por empresa; el use case lo convierte en DTO.
type CompanyStatsResult struct {
	ID                    string
	Name                  string
	Email                 string
	UserCount             int
	OfferCount            int
	IsActive              bool
	HasActiveSubscription bool
	SubscriptionPlan      string
	SubscriptionStartDate *time.Time
	SubscriptionEndDate   *time.Time
	CreatedAt             time.Time
}

// PlatformStatsRepository consultas de lectura entre tenants para el super-admin.
// Las implementaciones son read-only.
type PlatformStatsRepository interface {
	GetCounts(ctx context.Context) (PlatformCounts, error)
	// ListSubscriptions devuelve todas las empresas con sus datos de suscripción
	// (la agregación de ingresos se hace en el use case).
	ListSubscriptions(ctx context.Context) ([]*entity.Company, error)
	// GetCompanyStats devuelve una fila por empresa, más reciente primero.
	GetCompanyStats(ctx context.Context) ([]CompanyStatsResult, error)
}
