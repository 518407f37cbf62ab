package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/application/usecase"
	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
)

func newCompanyFixture() (*usecase.CompanyUseCase, *memCompanies, *memLogos) {
	companies := &memCompanies{byID: map[string]*entity.Company{
		acmeID: {ID: acmeID, Name: "Acme", Email: "info@acme.test", IsActive: true},
	}}
	logos := &memLogos{files: map[string][]byte{}}
	return usecase.NewCompanyUseCase(companies, logos, 1024), companies, logos
}

func TestCompanyUseCase_Get_NoExiste(t *testing.T) {
	uc, _, _ := newCompanyFixture()

	_, err := uc.Get(context.Background(), otherID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyUseCase_Update_ReemplazaPerfil(t *testing.T) {
	uc, companies, _ := newCompanyFixture()

	got, err := uc.Update(context.Background(), acmeID, dto.UpdateCompanyRequest{
		Name: " Acme SL ", Email: "Ventas@Acme.test", IBAN: "es91 2100 0418", Website: "https://acme.test",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme SL", got.Name)
	assert.Equal(t, "ventas@acme.test", got.Email)
	assert.Equal(t, "ES9121000418", got.IBAN)
	assert.True(t, companies.byID[acmeID].IsActive, "el estado no cambia")
}

func TestCompanyUseCase_UploadLogo_ReemplazaAnterior(t *testing.T) {
	uc, companies, logos := newCompanyFixture()
	ctx := context.Background()

	first, err := uc.UploadLogo(ctx, acmeID, "logo.PNG", 4, strings.NewReader("png1"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(first, ".png"), "la extensión se normaliza")
	assert.Equal(t, first, companies.byID[acmeID].Logo)

	second, err := uc.UploadLogo(ctx, acmeID, "logo.webp", 4, strings.NewReader("webp"))
	require.NoError(t, err)
	assert.Equal(t, second, companies.byID[acmeID].Logo)
	assert.Equal(t, []string{first}, logos.removed)
	assert.NotContains(t, logos.files, first)
}

func TestCompanyUseCase_UploadLogo_Validaciones(t *testing.T) {
	uc, _, logos := newCompanyFixture()
	ctx := context.Background()

	_, err := uc.UploadLogo(ctx, acmeID, "malware.exe", 10, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UploadLogo(ctx, acmeID, "logo.svg", 40, strings.NewReader(`<svg><script>alert(1)</script></svg>`))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "svg puede ejecutar scripts en el origen de la API")

	_, err = uc.UploadLogo(ctx, acmeID, "grande.png", 2048, strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "supera el máximo configurado")

	_, err = uc.UploadLogo(ctx, acmeID, "vacio.png", 0, strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UploadLogo(ctx, otherID, "logo.png", 4, strings.NewReader("png1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, logos.files)
}

func TestCompanyUseCase_UploadLogo_FallaDB_BorraArchivoNuevo(t *testing.T) {
	uc, companies, logos := newCompanyFixture()
	companies.failWrite = true

	_, err := uc.UploadLogo(context.Background(), acmeID, "logo.png", 4, strings.NewReader("png1"))
	assert.Error(t, err)
	assert.Empty(t, logos.files)
}

func TestCompanyUseCase_HasActiveSubscription(t *testing.T) {
	uc, companies, _ := newCompanyFixture()
	ctx := context.Background()

	ok, err := uc.HasActiveSubscription(ctx, acmeID)
	require.NoError(t, err)
	assert.False(t, ok, "sin suscripción activa")

	past := time.Now().Add(-24 * time.Hour)
	companies.byID[acmeID].HasActiveSubscription = true
	companies.byID[acmeID].SubscriptionEndDate = &past
	ok, err = uc.HasActiveSubscription(ctx, acmeID)
	require.NoError(t, err)
	assert.False(t, ok, "suscripción vencida")

	companies.byID[acmeID].SubscriptionEndDate = nil
	ok, err = uc.HasActiveSubscription(ctx, acmeID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = uc.HasActiveSubscription(ctx, otherID)
	require.NoError(t, err)
	assert.False(t, ok)
}
