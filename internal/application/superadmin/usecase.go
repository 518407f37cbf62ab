package superadmin

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
)

// UseCase panel del super-admin: métricas de plataforma y gestión de suscripciones.
// Las métricas se recalculan en cada llamada.
type UseCase struct {
	stats     repository.PlatformStatsRepository
	companies repository.CompanyRepository
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(stats repository.PlatformStatsRepository, companies repository.CompanyRepository) *UseCase {
	return &UseCase{stats: stats, companies: companies, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Dashboard devuelve los conteos globales y los ingresos mensual y total.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	// Conteos y suscripciones en paralelo (consultas independientes)
	type countsResult struct {
		counts repository.PlatformCounts
		err    error
	}
	type subsResult struct {
		companies []*entity.Company
		err       error
	}

	countsChan := make(chan countsResult, 1)
	subsChan := make(chan subsResult, 1)

	go func() {
		counts, err := uc.stats.GetCounts(ctx)
		countsChan <- countsResult{counts, err}
	}()
	go func() {
		companies, err := uc.stats.ListSubscriptions(ctx)
		subsChan <- subsResult{companies, err}
	}()

	countsRes := <-countsChan
	subsRes := <-subsChan

	if countsRes.err != nil {
		return nil, fmt.Errorf("superadmin: conteos: %w", countsRes.err)
	}
	if subsRes.err != nil {
		return nil, fmt.Errorf("superadmin: suscripciones: %w", subsRes.err)
	}

	monthly, total := SummarizeRevenue(subsRes.companies, uc.now())
	return &dto.DashboardStatsResponse{
		TotalCompanies:  countsRes.counts.TotalCompanies,
		ActiveCompanies: countsRes.counts.ActiveCompanies,
		TotalUsers:      countsRes.counts.TotalUsers,
		TotalOffers:     countsRes.counts.TotalOffers,
		MonthlyRevenue:  monthly,
		TotalRevenue:    total,
	}, nil
}

// SummarizeRevenue suma la cuota mensual de las empresas con suscripción activa (total) y,
// de ellas, las que iniciaron la suscripción en el mes y año UTC de now (mensual).
func SummarizeRevenue(companies []*entity.Company, now time.Time) (monthly, total decimal.Decimal) {
	monthly, total = decimal.Zero, decimal.Zero
	now = now.UTC()
	for _, c := range companies {
		if !c.HasActiveSubscription {
			continue
		}
		total = total.Add(c.MonthlyFee)
		if c.SubscriptionStartDate == nil {
			continue
		}
		start := c.SubscriptionStartDate.UTC()
		if start.Year() == now.Year() && start.Month() == now.Month() {
			monthly = monthly.Add(c.MonthlyFee)
		}
	}
	return monthly.Round(2), total.Round(2)
}

// Companies devuelve el resumen por empresa, más reciente primero.
func (uc *UseCase) Companies(ctx context.Context) ([]dto.CompanyStatsResponse, error) {
	rows, err := uc.stats.GetCompanyStats(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyStatsResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CompanyStatsResponse{
			ID:                    r.ID,
			Name:                  r.Name,
			Email:                 r.Email,
			UserCount:             r.UserCount,
			OfferCount:            r.OfferCount,
			IsActive:              r.IsActive,
			HasActiveSubscription: r.HasActiveSubscription,
			SubscriptionPlan:      r.SubscriptionPlan,
			SubscriptionStartDate: r.SubscriptionStartDate,
			SubscriptionEndDate:   r.SubscriptionEndDate,
			CreatedAt:             r.CreatedAt,
		})
	}
	return out, nil
}

// UpdateSubscription fija el estado y las fechas de la suscripción y, si vienen, la cuota y el plan.
func (uc *UseCase) UpdateSubscription(ctx context.Context, companyID string, in dto.UpdateSubscriptionRequest) (*dto.CompanyResponse, error) {
	company, err := uc.load(ctx, companyID)
	if err != nil {
		return nil, err
	}
	start, end := in.SubscriptionStartDate.TimePtr(), in.SubscriptionEndDate.TimePtr()
	if start != nil && end != nil && end.Before(*start) {
		return nil, fmt.Errorf("%w: la fecha de fin es anterior a la de inicio", domain.ErrInvalidInput)
	}
	if in.MonthlyFee != nil {
		if in.MonthlyFee.IsNegative() {
			return nil, fmt.Errorf("%w: la cuota mensual no puede ser negativa", domain.ErrInvalidInput)
		}
		company.MonthlyFee = in.MonthlyFee.Round(2)
	}
	if in.SubscriptionPlan != nil {
		if !entity.ValidPlan(*in.SubscriptionPlan) {
			return nil, fmt.Errorf("%w: plan desconocido %q", domain.ErrInvalidInput, *in.SubscriptionPlan)
		}
		company.SubscriptionPlan = *in.SubscriptionPlan
	}
	company.HasActiveSubscription = in.HasActiveSubscription
	company.SubscriptionStartDate = start
	company.SubscriptionEndDate = end
	company.UpdatedAt = uc.now().UTC()

	if err := uc.companies.Update(ctx, company); err != nil {
		return nil, err
	}
	return dto.ToCompanyResponse(company), nil
}

// ToggleCompanyStatus habilita o deshabilita la empresa y devuelve el nuevo estado.
func (uc *UseCase) ToggleCompanyStatus(ctx context.Context, companyID string) (bool, error) {
	company, err := uc.load(ctx, companyID)
	if err != nil {
		return false, err
	}
	company.IsActive = !company.IsActive
	company.UpdatedAt = uc.now().UTC()
	if err := uc.companies.Update(ctx, company); err != nil {
		return false, err
	}
	return company.IsActive, nil
}

func (uc *UseCase) load(ctx context.Context, companyID string) (*entity.Company, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return company, nil
}
