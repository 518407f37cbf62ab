//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
	"github.com/jhoicas/Offers-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Offers-api/pkg/config"
)

// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/...
// Requiere Docker.

var (
	testPool *pgxpool.Pool
	testDSN  string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "offers",
			"POSTGRES_PASSWORD": "offers",
			"POSTGRES_DB":       "offers_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "no se pudo iniciar postgres: %v\n", err)
		os.Exit(1)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432")
	testDSN = fmt.Sprintf("postgres://offers:offers@%s:%s/offers_test?sslmode=disable", host, port.Port())

	if err := postgres.ApplyMigrations(testDSN); err != nil {
		fmt.Fprintf(os.Stderr, "migraciones: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}
	testPool, err = postgres.NewPool(ctx, config.DBConfig{DatabaseURL: testDSN, MaxConns: 4, MinConns: 1})
	if err != nil {
		fmt.Fprintf(os.Stderr, "pool: %v\n", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func resetDB(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `TRUNCATE offer_items, offers, users, companies CASCADE`)
	require.NoError(t, err)
}

func newCompany(name string, created time.Time) *entity.Company {
	return &entity.Company{
		ID:               uuid.New().String(),
		Name:             name,
		Email:            "info@" + name + ".test",
		SubscriptionPlan: entity.PlanFree,
		MonthlyFee:       decimal.Zero,
		IsActive:         true,
		CreatedAt:        created,
		UpdatedAt:        created,
	}
}

func newUser(companyID, email string) *entity.User {
	now := time.Now().UTC()
	return &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		FirstName:    "Ana",
		LastName:     "Pérez",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Roles:        []string{entity.RoleAdmin},
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newOffer(u *entity.User, number string, created time.Time) *entity.Offer {
	o := &entity.Offer{
		ID:            uuid.New().String(),
		OfferNumber:   number,
		CustomerName:  "Cliente SA",
		CustomerEmail: "compras@cliente.test",
		OfferDate:     created,
		Currency:      entity.CurrencyTRY,
		Status:        entity.OfferStatusDraft,
		UserID:        u.ID,
		CompanyID:     u.CompanyID,
		Items: []entity.OfferItem{
			{Description: "Instalación", Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")},
			{Description: "Soporte", Quantity: 1, UnitPrice: decimal.RequireFromString("4")},
		},
		CreatedAt: created,
		UpdatedAt: created,
	}
	o.RecalculateTotals()
	return o
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro transaccional

func TestTxRunner_Registro_RollbackSiFallaElUsuario(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	tx := postgres.NewTxRunner(testPool)
	users := postgres.NewUserRepository(testPool)
	companies := postgres.NewCompanyRepository(testPool)

	first := newCompany("acme", time.Now().UTC())
	require.NoError(t, tx.RunRegistration(ctx, func(c repository.CompanyRepository, u repository.UserRepository) error {
		if err := c.Create(ctx, first); err != nil {
			return err
		}
		return u.Create(ctx, newUser(first.ID, "ana@acme.test"))
	}))

	second := newCompany("otra", time.Now().UTC())
	err := tx.RunRegistration(ctx, func(c repository.CompanyRepository, u repository.UserRepository) error {
		if err := c.Create(ctx, second); err != nil {
			return err
		}
		return u.Create(ctx, newUser(second.ID, "ANA@acme.test"))
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists, "unicidad de email sin distinguir mayúsculas")

	got, err := companies.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "la empresa no debe persistir si el usuario falla")

	u, err := users.GetByEmail(ctx, "ana@acme.test")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, first.ID, u.CompanyID)
	assert.Equal(t, []string{entity.RoleAdmin}, u.Roles)
}

func TestCompanyRepo_Delete_UsuariosQuedanSinEmpresa(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	companies := postgres.NewCompanyRepository(testPool)
	users := postgres.NewUserRepository(testPool)

	c := newCompany("acme", time.Now().UTC())
	require.NoError(t, companies.Create(ctx, c))
	u := newUser(c.ID, "ana@acme.test")
	require.NoError(t, users.Create(ctx, u))

	require.NoError(t, companies.Delete(ctx, c.ID))
	got, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.CompanyID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ofertas

func TestOfferRepo_CrearLeerListar(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	companies := postgres.NewCompanyRepository(testPool)
	users := postgres.NewUserRepository(testPool)
	offers := postgres.NewOfferRepository(testPool)
	tx := postgres.NewTxRunner(testPool)

	c := newCompany("acme", time.Now().UTC())
	require.NoError(t, companies.Create(ctx, c))
	u := newUser(c.ID, "ana@acme.test")
	require.NoError(t, users.Create(ctx, u))

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	o1 := newOffer(u, "TKF-202503-001", base)
	o2 := newOffer(u, "TKF-202503-002", base.Add(time.Minute))
	for _, o := range []*entity.Offer{o1, o2} {
		require.NoError(t, tx.RunOffer(ctx, func(r repository.OfferRepository) error { return r.Create(ctx, o) }))
	}

	got, err := offers.GetByID(ctx, o1.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "acme", got.CompanyName)
	assert.True(t, decimal.RequireFromString("25").Equal(got.TotalAmount))
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Instalación", got.Items[0].Description)
	assert.True(t, decimal.RequireFromString("21").Equal(got.Items[0].TotalPrice))

	last, err := offers.LastNumberByCompany(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "TKF-202503-002", last)

	list, err := offers.List(ctx, repository.OfferFilter{UserID: u.ID}, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, o2.ID, list[0].ID, "más recientes primero")
	assert.Len(t, list[1].Items, 2)

	n, err := offers.Count(ctx, repository.OfferFilter{CompanyID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	missing, err := offers.GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOfferRepo_NumeroDuplicado(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	companies := postgres.NewCompanyRepository(testPool)
	users := postgres.NewUserRepository(testPool)
	tx := postgres.NewTxRunner(testPool)

	c := newCompany("acme", time.Now().UTC())
	require.NoError(t, companies.Create(ctx, c))
	u := newUser(c.ID, "ana@acme.test")
	require.NoError(t, users.Create(ctx, u))

	now := time.Now().UTC()
	require.NoError(t, tx.RunOffer(ctx, func(r repository.OfferRepository) error {
		return r.Create(ctx, newOffer(u, "TKF-202503-001", now))
	}))
	err := tx.RunOffer(ctx, func(r repository.OfferRepository) error {
		return r.Create(ctx, newOffer(u, "TKF-202503-001", now))
	})
	assert.ErrorIs(t, err, domain.ErrOfferNumberTaken)
}

func TestOfferRepo_ActualizarReemplazaLineas(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	companies := postgres.NewCompanyRepository(testPool)
	users := postgres.NewUserRepository(testPool)
	offers := postgres.NewOfferRepository(testPool)
	tx := postgres.NewTxRunner(testPool)

	c := newCompany("acme", time.Now().UTC())
	require.NoError(t, companies.Create(ctx, c))
	u := newUser(c.ID, "ana@acme.test")
	require.NoError(t, users.Create(ctx, u))
	o := newOffer(u, "TKF-202503-001", time.Now().UTC())
	require.NoError(t, tx.RunOffer(ctx, func(r repository.OfferRepository) error { return r.Create(ctx, o) }))

	o.Items = []entity.OfferItem{{Description: "Licencia", Quantity: 3, UnitPrice: decimal.RequireFromString("7.25")}}
	o.Notes = "precio cerrado"
	o.RecalculateTotals()
	o.UpdatedAt = time.Now().UTC()
	require.NoError(t, tx.RunOffer(ctx, func(r repository.OfferRepository) error { return r.Update(ctx, o) }))

	got, err := offers.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Licencia", got.Items[0].Description)
	assert.True(t, decimal.RequireFromString("21.75").Equal(got.TotalAmount))
	assert.Equal(t, "precio cerrado", got.Notes)

	require.NoError(t, offers.UpdateStatus(ctx, o.ID, entity.OfferStatusSent, time.Now().UTC()))
	got, err = offers.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OfferStatusSent, got.Status)

	require.NoError(t, offers.Delete(ctx, o.ID))
	assert.ErrorIs(t, offers.Delete(ctx, o.ID), domain.ErrNotFound)

	var items int
	require.NoError(t, testPool.QueryRow(ctx, `SELECT COUNT(*) FROM offer_items`).Scan(&items))
	assert.Zero(t, items, "líneas eliminadas en cascada")
}

// ──────────────────────────────────────────────────────────────────────────────
// Estadísticas de plataforma

func TestPlatformStatsRepo(t *testing.T) {
	resetDB(t)
	ctx := context.Background()
	companies := postgres.NewCompanyRepository(testPool)
	users := postgres.NewUserRepository(testPool)
	stats := postgres.NewPlatformStatsRepository(testPool)
	tx := postgres.NewTxRunner(testPool)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	paid := newCompany("paid", base)
	paid.HasActiveSubscription = true
	paid.SubscriptionPlan = entity.PlanPro
	paid.MonthlyFee = decimal.RequireFromString("99.90")
	free := newCompany("free", base.Add(time.Hour))
	require.NoError(t, companies.Create(ctx, paid))
	require.NoError(t, companies.Create(ctx, free))

	u := newUser(paid.ID, "ana@paid.test")
	require.NoError(t, users.Create(ctx, u))
	admin := newUser("", "root@platform.test")
	admin.Roles = nil
	admin.IsSuperAdmin = true
	require.NoError(t, users.Create(ctx, admin))
	require.NoError(t, tx.RunOffer(ctx, func(r repository.OfferRepository) error {
		return r.Create(ctx, newOffer(u, "TKF-202501-001", base))
	}))

	counts, err := stats.GetCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, repository.PlatformCounts{TotalCompanies: 2, ActiveCompanies: 1, TotalUsers: 1, TotalOffers: 1}, counts)

	subs, err := stats.ListSubscriptions(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.True(t, decimal.RequireFromString("99.90").Equal(subs[1].MonthlyFee))

	rows, err := stats.GetCompanyStats(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "free", rows[0].Name, "más reciente primero")
	assert.Equal(t, 1, rows[1].UserCount)
	assert.Equal(t, 1, rows[1].OfferCount)
	assert.Equal(t, entity.PlanPro, rows[1].SubscriptionPlan)
}
