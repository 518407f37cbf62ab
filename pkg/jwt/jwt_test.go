package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Offers-api/pkg/jwt"
)

var testOpts = pkgjwt.Options{
	Secret:     "test-secret-key-for-unit-tests",
	Issuer:     "offers-api-test",
	Audience:   "offers-api-clients",
	ExpMinutes: 60,
}

func identity() pkgjwt.Claims {
	return pkgjwt.Claims{
		UserID:    "00000000-0000-0000-0000-000000000001",
		Email:     "ana@acme.test",
		Name:      "Ana Pérez",
		CompanyID: "00000000-0000-0000-0000-000000000002",
		Roles:     []string{"Admin"},
	}
}

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testOpts, identity())
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testOpts, tok)
	require.NoError(t, err)
	assert.Equal(t, identity().UserID, claims.UserID)
	assert.Equal(t, identity().UserID, claims.Subject)
	assert.Equal(t, "Ana Pérez", claims.Name)
	assert.Equal(t, identity().CompanyID, claims.CompanyID)
	assert.Equal(t, []string{"Admin"}, claims.Roles)
	assert.False(t, claims.SuperAdmin)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	opts := testOpts
	opts.ExpMinutes = -1
	tok, err := pkgjwt.Generate(opts, identity())
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testOpts, tok)
	assert.Error(t, err, "token expirado debe retornar error")

	claims, err := pkgjwt.ParseExpired(testOpts, tok)
	require.NoError(t, err, "ParseExpired acepta tokens expirados con firma válida")
	assert.Equal(t, identity().UserID, claims.UserID)
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testOpts, identity())
	require.NoError(t, err)

	other := testOpts
	other.Secret = "otro-secret-completamente-distinto"
	_, err = pkgjwt.Parse(other, tok)
	assert.Error(t, err)
	_, err = pkgjwt.ParseExpired(other, tok)
	assert.Error(t, err, "la renovación también exige firma válida")
}

func TestJWT_AudienciaYEmisor(t *testing.T) {
	tok, err := pkgjwt.Generate(testOpts, identity())
	require.NoError(t, err)

	wrongAud := testOpts
	wrongAud.Audience = "otra-app"
	_, err = pkgjwt.Parse(wrongAud, tok)
	assert.Error(t, err)
	_, err = pkgjwt.ParseExpired(wrongAud, tok)
	assert.Error(t, err)

	wrongIss := testOpts
	wrongIss.Issuer = "otro-emisor"
	_, err = pkgjwt.Parse(wrongIss, tok)
	assert.Error(t, err)
}

func TestJWT_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate(pkgjwt.Options{}, identity())
	assert.Error(t, err)
}
