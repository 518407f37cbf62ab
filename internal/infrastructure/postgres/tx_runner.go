package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Offers-api/internal/application/auth"
	"github.com/jhoicas/Offers-api/internal/application/offer"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
)

// Ensure TxRunner implements auth.RegistrationTxRunner and offer.TxRunner.
var _ auth.RegistrationTxRunner = (*TxRunner)(nil)
var _ offer.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunRegistration crea empresa y usuario en la misma transacción: si falla el usuario
// (ej. email duplicado) no queda una empresa huérfana.
func (r *TxRunner) RunRegistration(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewCompanyRepository(tx), NewUserRepository(tx))
	})
}

// RunOffer inicia una transacción con el repo de ofertas (alta/edición de cabecera + líneas).
func (r *TxRunner) RunOffer(ctx context.Context, fn func(offerRepo repository.OfferRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewOfferRepository(tx))
	})
}

// inTx hace Commit si fn no falla; en cualquier otro caso Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
