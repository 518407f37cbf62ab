package http_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria compartido por los repositorios falsos
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu        sync.Mutex
	users     map[string]*entity.User
	companies map[string]*entity.Company
	offers    []*entity.Offer
	statusErr error // UpdateStatus falla con este error si no es nil
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*entity.User{}, companies: map[string]*entity.Company{}}
}

// ── usuarios ──────────────────────────────────────────────────────────────────

type memUsers struct{ s *memStore }

func (m memUsers) Create(_ context.Context, u *entity.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.s.users[u.ID] = &cp
	return nil
}

func (m memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if u, ok := m.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m memUsers) Update(_ context.Context, u *entity.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	m.s.users[u.ID] = &cp
	return nil
}

func (m memUsers) ListByCompany(_ context.Context, companyID string) ([]*entity.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []*entity.User
	for _, u := range m.s.users {
		if u.CompanyID == companyID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m memUsers) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.users, id)
	return nil
}

// IsActive hace de ActiveChecker sin caché.
func (m memUsers) IsActive(ctx context.Context, userID string) (bool, error) {
	u, err := m.GetByID(ctx, userID)
	if err != nil || u == nil {
		return false, err
	}
	return u.IsActive, nil
}

// ── empresas ──────────────────────────────────────────────────────────────────

type memCompanies struct{ s *memStore }

func (m memCompanies) Create(_ context.Context, c *entity.Company) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *c
	m.s.companies[c.ID] = &cp
	return nil
}

func (m memCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if c, ok := m.s.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m memCompanies) Update(_ context.Context, c *entity.Company) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	m.s.companies[c.ID] = &cp
	return nil
}

func (m memCompanies) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	delete(m.s.companies, id)
	return nil
}

// ── ofertas ───────────────────────────────────────────────────────────────────

type memOffers struct{ s *memStore }

func cloneOffer(o *entity.Offer) *entity.Offer {
	cp := *o
	cp.Items = append([]entity.OfferItem{}, o.Items...)
	return &cp
}

func (m memOffers) Create(_ context.Context, o *entity.Offer) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.offers {
		if existing.CompanyID == o.CompanyID && existing.OfferNumber == o.OfferNumber {
			return domain.ErrOfferNumberTaken
		}
	}
	m.s.offers = append(m.s.offers, cloneOffer(o))
	return nil
}

func (m memOffers) GetByID(_ context.Context, id string) (*entity.Offer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, o := range m.s.offers {
		if o.ID == id {
			cp := cloneOffer(o)
			if c, ok := m.s.companies[o.CompanyID]; ok {
				cp.CompanyName = c.Name
			}
			return cp, nil
		}
	}
	return nil, nil
}

func (m memOffers) matching(f repository.OfferFilter) []*entity.Offer {
	var out []*entity.Offer
	for i := len(m.s.offers) - 1; i >= 0; i-- {
		o := m.s.offers[i]
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.CompanyID != "" && o.CompanyID != f.CompanyID {
			continue
		}
		out = append(out, cloneOffer(o))
	}
	return out
}

func (m memOffers) List(_ context.Context, f repository.OfferFilter, limit, offset int) ([]*entity.Offer, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	all := m.matching(f)
	if offset >= len(all) {
		return nil, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

func (m memOffers) Count(_ context.Context, f repository.OfferFilter) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return len(m.matching(f)), nil
}

func (m memOffers) LastNumberByCompany(_ context.Context, companyID string) (string, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := len(m.s.offers) - 1; i >= 0; i-- {
		if m.s.offers[i].CompanyID == companyID {
			return m.s.offers[i].OfferNumber, nil
		}
	}
	return "", nil
}

func (m memOffers) Update(_ context.Context, o *entity.Offer) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, existing := range m.s.offers {
		if existing.ID == o.ID {
			m.s.offers[i] = cloneOffer(o)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m memOffers) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.statusErr != nil {
		return m.s.statusErr
	}
	for _, o := range m.s.offers {
		if o.ID == id {
			o.Status = status
			o.UpdatedAt = at
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m memOffers) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i, o := range m.s.offers {
		if o.ID == id {
			m.s.offers = append(m.s.offers[:i], m.s.offers[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── estadísticas de plataforma ────────────────────────────────────────────────

type memStats struct{ s *memStore }

func (m memStats) GetCounts(context.Context) (repository.PlatformCounts, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	counts := repository.PlatformCounts{TotalCompanies: len(m.s.companies), TotalOffers: len(m.s.offers)}
	for _, c := range m.s.companies {
		if c.CountsAsActive() {
			counts.ActiveCompanies++
		}
	}
	for _, u := range m.s.users {
		if !u.IsSuperAdmin {
			counts.TotalUsers++
		}
	}
	return counts, nil
}

func (m memStats) ListSubscriptions(context.Context) ([]*entity.Company, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]*entity.Company, 0, len(m.s.companies))
	for _, c := range m.s.companies {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (m memStats) GetCompanyStats(context.Context) ([]repository.CompanyStatsResult, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []repository.CompanyStatsResult
	for _, c := range m.s.companies {
		row := repository.CompanyStatsResult{
			ID:                    c.ID,
			Name:                  c.Name,
			Email:                 c.Email,
			IsActive:              c.IsActive,
			HasActiveSubscription: c.HasActiveSubscription,
			SubscriptionPlan:      c.SubscriptionPlan,
			CreatedAt:             c.CreatedAt,
		}
		for _, u := range m.s.users {
			if u.CompanyID == c.ID {
				row.UserCount++
			}
		}
		for _, o := range m.s.offers {
			if o.CompanyID == c.ID {
				row.OfferCount++
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// ── transacciones, email y PDF ────────────────────────────────────────────────

// memTx ejecuta fn directamente sobre los repositorios en memoria.
type memTx struct{ s *memStore }

func (t memTx) RunRegistration(_ context.Context, fn func(repository.CompanyRepository, repository.UserRepository) error) error {
	return fn(memCompanies{t.s}, memUsers{t.s})
}

func (t memTx) RunOffer(_ context.Context, fn func(repository.OfferRepository) error) error {
	return fn(memOffers{t.s})
}

type fakeNotifier struct {
	mu   sync.Mutex
	err  error
	sent []string
}

func (n *fakeNotifier) SendOffer(_ context.Context, o *entity.Offer, _ *entity.Company) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, o.OfferNumber)
	return nil
}

type fakePDF struct{}

func (fakePDF) RenderOffer(o *entity.Offer, _ *entity.Company) ([]byte, error) {
	if o.OfferNumber == "" {
		return nil, errors.New("oferta sin número")
	}
	return []byte("%PDF-1.4 " + o.OfferNumber), nil
}
