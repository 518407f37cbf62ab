package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
)

var _ repository.PlatformStatsRepository = (*PlatformStatsRepo)(nil)

// PlatformStatsRepo consultas de solo lectura entre tenants para el panel del super-admin.
type PlatformStatsRepo struct {
	db Querier
}

// NewPlatformStatsRepository construye el adaptador de estadísticas de plataforma.
func NewPlatformStatsRepository(db Querier) *PlatformStatsRepo {
	return &PlatformStatsRepo{db: db}
}

// GetCounts devuelve los conteos globales en una sola ida a la DB.
func (r *PlatformStatsRepo) GetCounts(ctx context.Context) (repository.PlatformCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM companies)                                                 AS total_companies,
	    (SELECT COUNT(*) FROM companies WHERE is_active AND has_active_subscription)      AS active_companies,
	    (SELECT COUNT(*) FROM users WHERE NOT is_super_admin)                             AS total_users,
	    (SELECT COUNT(*) FROM offers)                                                     AS total_offers`
	var c repository.PlatformCounts
	if err := r.db.QueryRow(ctx, query).Scan(&c.TotalCompanies, &c.ActiveCompanies, &c.TotalUsers, &c.TotalOffers); err != nil {
		return repository.PlatformCounts{}, fmt.Errorf("platform counts: %w", err)
	}
	return c, nil
}

// ListSubscriptions devuelve todas las empresas (la suma de ingresos se calcula en el use case).
func (r *PlatformStatsRepo) ListSubscriptions(ctx context.Context) ([]*entity.Company, error) {
	rows, err := r.db.Query(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// GetCompanyStats devuelve usuarios y ofertas por empresa, más reciente primero.
// Los conteos usan subconsultas correlacionadas para no multiplicar filas con dos JOIN.
func (r *PlatformStatsRepo) GetCompanyStats(ctx context.Context) ([]repository.CompanyStatsResult, error) {
	const query = `
	SELECT
	    c.id, c.name, c.email,
	    (SELECT COUNT(*) FROM users u  WHERE u.company_id = c.id)  AS user_count,
	    (SELECT COUNT(*) FROM offers o WHERE o.company_id = c.id)  AS offer_count,
	    c.is_active, c.has_active_subscription, c.subscription_plan,
	    c.subscription_start_date, c.subscription_end_date, c.created_at
	FROM companies c
	ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("company stats: %w", err)
	}
	defer rows.Close()

	var out []repository.CompanyStatsResult
	for rows.Next() {
		var s repository.CompanyStatsResult
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.UserCount, &s.OfferCount,
			&s.IsActive, &s.HasActiveSubscription, &s.SubscriptionPlan,
			&s.SubscriptionStartDate, &s.SubscriptionEndDate, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan company stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
