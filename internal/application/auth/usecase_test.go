package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Offers-api/internal/application/auth"
	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
	"github.com/jhoicas/Offers-api/pkg/jwt"
)

var testJWT = jwt.Options{Secret: "test-secret", Issuer: "offers-api-test", Audience: "clients", ExpMinutes: 60}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUsers struct {
	byID       map[string]*entity.User
	failCreate error
}

func newMemUsers() *memUsers { return &memUsers{byID: map[string]*entity.User{}} }

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	if m.failCreate != nil {
		return m.failCreate
	}
	for _, x := range m.byID {
		if x.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if u.Email == entity.NormalizeEmail(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) ListByCompany(_ context.Context, companyID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.byID {
		if u.CompanyID == companyID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

type memCompanies struct {
	byID map[string]*entity.Company
}

func (m *memCompanies) Create(_ context.Context, c *entity.Company) error {
	cp := *c
	m.byID[c.ID] = &cp
	return nil
}

func (m *memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	if c, ok := m.byID[id]; ok {
		return c, nil
	}
	return nil, nil
}

func (m *memCompanies) Update(_ context.Context, c *entity.Company) error {
	m.byID[c.ID] = c
	return nil
}

func (m *memCompanies) Delete(_ context.Context, id string) error {
	delete(m.byID, id)
	return nil
}

// fakeTx aplica las escrituras sobre copias y solo las publica si fn no falla.
type fakeTx struct {
	companies *memCompanies
	users     *memUsers
}

func (f *fakeTx) RunRegistration(ctx context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	stagedC := &memCompanies{byID: map[string]*entity.Company{}}
	for k, v := range f.companies.byID {
		stagedC.byID[k] = v
	}
	stagedU := &memUsers{byID: map[string]*entity.User{}, failCreate: f.users.failCreate}
	for k, v := range f.users.byID {
		stagedU.byID[k] = v
	}
	if err := fn(stagedC, stagedU); err != nil {
		return err
	}
	f.companies.byID = stagedC.byID
	f.users.byID = stagedU.byID
	return nil
}

func newUseCase() (*auth.AuthUseCase, *memUsers, *memCompanies) {
	users := newMemUsers()
	companies := &memCompanies{byID: map[string]*entity.Company{}}
	uc := auth.NewAuthUseCase(users, &fakeTx{companies: companies, users: users}, testJWT)
	return uc, users, companies
}

func seedUser(t *testing.T, users *memUsers, email, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           "00000000-0000-0000-0000-0000000000a1",
		CompanyID:    "00000000-0000-0000-0000-0000000000c1",
		FirstName:    "Ana",
		LastName:     "Pérez",
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []string{entity.RoleAdmin},
		IsActive:     active,
	}
	users.byID[u.ID] = u
	return u
}

func registerReq() dto.RegisterRequest {
	return dto.RegisterRequest{
		FirstName:      "Ana",
		LastName:       "Pérez",
		Email:          "Ana@Acme.test",
		Password:       "secreto123",
		CompanyName:    "Acme",
		CompanyAddress: "Calle 1",
		CompanyPhone:   "555",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaEmpresaYAdmin(t *testing.T) {
	uc, users, companies := newUseCase()

	resp, err := uc.Register(context.Background(), registerReq())
	require.NoError(t, err)
	require.NotNil(t, resp.User)

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@acme.test", resp.User.Email, "el email se normaliza")
	assert.Equal(t, []string{entity.RoleAdmin}, resp.User.Roles)
	require.Len(t, companies.byID, 1)
	require.Len(t, users.byID, 1)

	for _, c := range companies.byID {
		assert.Equal(t, "Acme", c.Name)
		assert.Equal(t, "ana@acme.test", c.Email)
		assert.Equal(t, entity.PlanFree, c.SubscriptionPlan)
		assert.True(t, c.IsActive)
		assert.False(t, c.HasActiveSubscription)
		require.NotNil(t, resp.User.CompanyID)
		assert.Equal(t, c.ID, *resp.User.CompanyID)
	}

	claims, err := jwt.Parse(testJWT, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "Ana Pérez", claims.Name)
}

func TestRegister_EmailDuplicado_NoEscribe(t *testing.T) {
	uc, users, companies := newUseCase()
	seedUser(t, users, "ana@acme.test", "x", true)

	_, err := uc.Register(context.Background(), registerReq())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, companies.byID, "no debe quedar empresa creada")
	assert.Len(t, users.byID, 1)
}

func TestRegister_FallaAltaUsuario_NoDejaEmpresaHuerfana(t *testing.T) {
	uc, users, companies := newUseCase()
	users.failCreate = errors.New("conexión perdida")

	_, err := uc.Register(context.Background(), registerReq())
	assert.Error(t, err)
	assert.Empty(t, companies.byID)
	assert.Empty(t, users.byID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	uc, users, _ := newUseCase()
	seedUser(t, users, "ana@acme.test", "secreto123", true)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Email: " ANA@acme.test ", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ana@acme.test", resp.User.Email)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc, users, _ := newUseCase()
	seedUser(t, users, "ana@acme.test", "secreto123", true)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.test", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@acme.test", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "email desconocido y password incorrecta no se distinguen")
}

func TestLogin_CuentaDesactivada_DistintoDePasswordIncorrecta(t *testing.T) {
	uc, users, _ := newUseCase()
	seedUser(t, users, "ana@acme.test", "secreto123", false)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.test", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@acme.test", Password: "mal"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh
// ──────────────────────────────────────────────────────────────────────────────

func expiredToken(t *testing.T, u *entity.User) string {
	t.Helper()
	opts := testJWT
	opts.ExpMinutes = -5
	tok, err := jwt.Generate(opts, jwt.Claims{UserID: u.ID, Email: u.Email, CompanyID: u.CompanyID, Roles: u.Roles})
	require.NoError(t, err)
	return tok
}

func TestRefresh_TokenExpirado_EmiteNuevo(t *testing.T) {
	uc, users, _ := newUseCase()
	u := seedUser(t, users, "ana@acme.test", "x", true)

	resp, err := uc.Refresh(context.Background(), expiredToken(t, u))
	require.NoError(t, err)

	claims, err := jwt.Parse(testJWT, resp.Token)
	require.NoError(t, err, "el token nuevo es válido")
	assert.Equal(t, u.ID, claims.UserID)
}

func TestRefresh_UsuarioEliminadoOInactivo(t *testing.T) {
	uc, users, _ := newUseCase()
	u := seedUser(t, users, "ana@acme.test", "x", true)
	tok := expiredToken(t, u)

	users.byID[u.ID].IsActive = false
	_, err := uc.Refresh(context.Background(), tok)
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)

	delete(users.byID, u.ID)
	_, err = uc.Refresh(context.Background(), tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRefresh_FirmaInvalida(t *testing.T) {
	uc, _, _ := newUseCase()
	_, err := uc.Refresh(context.Background(), "no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
