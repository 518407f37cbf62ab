package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Planes de suscripción.
const (
	PlanFree       = "Free"
	PlanPro        = "Pro"
	PlanEnterprise = "Enterprise"
)

// Company representa una organización/tenant del sistema (multi-tenant).
// Es dueña exclusiva de sus usuarios y ofertas.
type Company struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Email     string
	TaxNumber string
	IBAN      string
	Website   string
	Logo      string // ruta pública, ej. /uploads/logos/<archivo>

	SubscriptionPlan      string // Free, Pro, Enterprise
	HasActiveSubscription bool
	SubscriptionStartDate *time.Time
	SubscriptionEndDate   *time.Time // nil = sin vencimiento
	MonthlyFee            decimal.Decimal

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CountsAsActive informa si la empresa cuenta como activa en las estadísticas:
// deben cumplirse ambos flags, la empresa habilitada y la suscripción activa.
func (c *Company) CountsAsActive() bool {
	return c.IsActive && c.HasActiveSubscription
}

// SubscriptionValidAt informa si la suscripción permite operar en el instante now.
func (c *Company) SubscriptionValidAt(now time.Time) bool {
	if !c.CountsAsActive() {
		return false
	}
	if c.SubscriptionEndDate != nil && c.SubscriptionEndDate.Before(now) {
		return false
	}
	return true
}

// ValidPlan informa si el plan es uno de los soportados.
func ValidPlan(plan string) bool {
	switch plan {
	case PlanFree, PlanPro, PlanEnterprise:
		return true
	default:
		return false
	}
}
