package superadmin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/application/superadmin"
	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
)

var now = time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeStats struct {
	counts    repository.PlatformCounts
	companies []*entity.Company
	rows      []repository.CompanyStatsResult
	err       error
}

func (f *fakeStats) GetCounts(context.Context) (repository.PlatformCounts, error) {
	return f.counts, f.err
}

func (f *fakeStats) ListSubscriptions(context.Context) ([]*entity.Company, error) {
	return f.companies, nil
}

func (f *fakeStats) GetCompanyStats(context.Context) ([]repository.CompanyStatsResult, error) {
	return f.rows, nil
}

type memCompanies map[string]*entity.Company

func (m memCompanies) Create(_ context.Context, c *entity.Company) error {
	m[c.ID] = c
	return nil
}

func (m memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if c, ok := m[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m memCompanies) Update(_ context.Context, c *entity.Company) error {
	m[c.ID] = c
	return nil
}

func (m memCompanies) Delete(_ context.Context, id string) error {
	delete(m, id)
	return nil
}

func TestSummarizeRevenue(t *testing.T) {
	companies := []*entity.Company{
		{HasActiveSubscription: true, MonthlyFee: dec("100"), SubscriptionStartDate: ptr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))},
		{HasActiveSubscription: true, MonthlyFee: dec("50.50"), SubscriptionStartDate: ptr(time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC))},
		{HasActiveSubscription: true, MonthlyFee: dec("20")},
		{HasActiveSubscription: false, MonthlyFee: dec("999"), SubscriptionStartDate: ptr(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))},
	}

	monthly, total := superadmin.SummarizeRevenue(companies, now)
	assert.True(t, dec("100").Equal(monthly), "solo inicios del mes y año actuales, got %s", monthly)
	assert.True(t, dec("170.50").Equal(total), "got %s", total)
}

func TestSummarizeRevenue_SinEmpresas(t *testing.T) {
	monthly, total := superadmin.SummarizeRevenue(nil, now)
	assert.True(t, monthly.IsZero())
	assert.True(t, total.IsZero())
}

func TestDashboard_CombinaConteosEIngresos(t *testing.T) {
	stats := &fakeStats{
		counts: repository.PlatformCounts{TotalCompanies: 3, ActiveCompanies: 1, TotalUsers: 7, TotalOffers: 12},
		companies: []*entity.Company{
			{HasActiveSubscription: true, MonthlyFee: dec("30"), SubscriptionStartDate: ptr(now.AddDate(0, 0, -3))},
		},
	}
	uc := superadmin.NewUseCase(stats, memCompanies{}).WithClock(func() time.Time { return now })

	got, err := uc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalCompanies)
	assert.Equal(t, 1, got.ActiveCompanies)
	assert.Equal(t, 7, got.TotalUsers)
	assert.Equal(t, 12, got.TotalOffers)
	assert.True(t, dec("30").Equal(got.MonthlyRevenue))
	assert.True(t, dec("30").Equal(got.TotalRevenue))
}

func TestDashboard_ErrorDeRepositorio(t *testing.T) {
	uc := superadmin.NewUseCase(&fakeStats{err: errors.New("timeout")}, memCompanies{})

	_, err := uc.Dashboard(context.Background())
	assert.Error(t, err)
}

func TestCompanies_MapeaFilas(t *testing.T) {
	stats := &fakeStats{rows: []repository.CompanyStatsResult{
		{ID: "c2", Name: "Nueva", UserCount: 1, OfferCount: 0},
		{ID: "c1", Name: "Vieja", UserCount: 4, OfferCount: 9, HasActiveSubscription: true},
	}}
	uc := superadmin.NewUseCase(stats, memCompanies{})

	got, err := uc.Companies(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c2", got[0].ID, "se respeta el orden del repositorio")
	assert.Equal(t, 9, got[1].OfferCount)
}

func TestUpdateSubscription(t *testing.T) {
	companies := memCompanies{"c1": {ID: "c1", Name: "Acme", SubscriptionPlan: entity.PlanFree, IsActive: true}}
	uc := superadmin.NewUseCase(&fakeStats{}, companies).WithClock(func() time.Time { return now })

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	got, err := uc.UpdateSubscription(context.Background(), "c1", dto.UpdateSubscriptionRequest{
		HasActiveSubscription: true,
		SubscriptionStartDate: &dto.Date{Time: start},
		MonthlyFee:            ptr(dec("49.9")),
		SubscriptionPlan:      ptr(entity.PlanPro),
	})
	require.NoError(t, err)
	assert.True(t, got.HasActiveSubscription)
	assert.Equal(t, entity.PlanPro, got.SubscriptionPlan)
	assert.True(t, dec("49.90").Equal(companies["c1"].MonthlyFee))
	require.NotNil(t, companies["c1"].SubscriptionStartDate)
	assert.Equal(t, start, *companies["c1"].SubscriptionStartDate)
	assert.Nil(t, companies["c1"].SubscriptionEndDate)
}

func TestUpdateSubscription_SinCuotaNiPlan_LosConserva(t *testing.T) {
	companies := memCompanies{"c1": {ID: "c1", SubscriptionPlan: entity.PlanEnterprise, MonthlyFee: dec("200")}}
	uc := superadmin.NewUseCase(&fakeStats{}, companies)

	_, err := uc.UpdateSubscription(context.Background(), "c1", dto.UpdateSubscriptionRequest{HasActiveSubscription: false})
	require.NoError(t, err)
	assert.Equal(t, entity.PlanEnterprise, companies["c1"].SubscriptionPlan)
	assert.True(t, dec("200").Equal(companies["c1"].MonthlyFee))
	assert.False(t, companies["c1"].HasActiveSubscription)
}

func TestUpdateSubscription_Errores(t *testing.T) {
	companies := memCompanies{"c1": {ID: "c1"}}
	uc := superadmin.NewUseCase(&fakeStats{}, companies)
	ctx := context.Background()

	_, err := uc.UpdateSubscription(ctx, "nope", dto.UpdateSubscriptionRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateSubscription(ctx, "c1", dto.UpdateSubscriptionRequest{
		SubscriptionStartDate: &dto.Date{Time: now},
		SubscriptionEndDate:   &dto.Date{Time: now.AddDate(0, -1, 0)},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateSubscription(ctx, "c1", dto.UpdateSubscriptionRequest{MonthlyFee: ptr(dec("-1"))})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestToggleCompanyStatus(t *testing.T) {
	companies := memCompanies{"c1": {ID: "c1", IsActive: true}}
	uc := superadmin.NewUseCase(&fakeStats{}, companies)

	active, err := uc.ToggleCompanyStatus(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, active)
	assert.False(t, companies["c1"].IsActive)

	_, err = uc.ToggleCompanyStatus(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
