package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `
	id, name, address, phone, email, tax_number, iban, website, logo,
	subscription_plan, has_active_subscription, subscription_start_date, subscription_end_date,
	monthly_fee, is_active, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(db Querier) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Address, c.Phone, c.Email, c.TaxNumber, c.IBAN, c.Website, c.Logo,
		c.SubscriptionPlan, c.HasActiveSubscription, c.SubscriptionStartDate, c.SubscriptionEndDate,
		c.MonthlyFee, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// Update actualiza una empresa existente.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies SET
			name = $2, address = $3, phone = $4, email = $5, tax_number = $6, iban = $7, website = $8, logo = $9,
			subscription_plan = $10, has_active_subscription = $11,
			subscription_start_date = $12, subscription_end_date = $13,
			monthly_fee = $14, is_active = $15, updated_at = $16
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Address, c.Phone, c.Email, c.TaxNumber, c.IBAN, c.Website, c.Logo,
		c.SubscriptionPlan, c.HasActiveSubscription, c.SubscriptionStartDate, c.SubscriptionEndDate,
		c.MonthlyFee, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una empresa por ID (ofertas en cascada, usuarios quedan sin empresa).
func (r *CompanyRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	_, err := r.db.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.TaxNumber, &c.IBAN, &c.Website, &c.Logo,
		&c.SubscriptionPlan, &c.HasActiveSubscription, &c.SubscriptionStartDate, &c.SubscriptionEndDate,
		&c.MonthlyFee, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
