package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsResponse métricas globales de la plataforma.
type DashboardStatsResponse struct {
	TotalCompanies  int             `json:"totalCompanies"`
	ActiveCompanies int             `json:"activeCompanies"`
	TotalUsers      int             `json:"totalUsers"`
	TotalOffers     int             `json:"totalOffers"`
	MonthlyRevenue  decimal.Decimal `json:"monthlyRevenue"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
}

// CompanyStatsResponse resumen por empresa para el panel de super-admin.
type CompanyStatsResponse struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	Email                 string     `json:"email"`
	UserCount             int        `json:"userCount"`
	OfferCount            int        `json:"offerCount"`
	IsActive              bool       `json:"isActive"`
	HasActiveSubscription bool       `json:"hasActiveSubscription"`
	SubscriptionPlan      string     `json:"subscriptionPlan"`
	SubscriptionStartDate *time.Time `json:"subscriptionStartDate"`
	SubscriptionEndDate   *time.Time `json:"subscriptionEndDate"`
	CreatedAt             time.Time  `json:"createdAt"`
}

// UpdateSubscriptionRequest cambio de suscripción. MonthlyFee y SubscriptionPlan nil = sin cambio.
type UpdateSubscriptionRequest struct {
	HasActiveSubscription bool             `json:"hasActiveSubscription"`
	SubscriptionStartDate *Date            `json:"subscriptionStartDate" swaggertype:"string" format:"date-time"`
	SubscriptionEndDate   *Date            `json:"subscriptionEndDate" swaggertype:"string" format:"date-time"`
	MonthlyFee            *decimal.Decimal `json:"monthlyFee" swaggertype:"number"`
	SubscriptionPlan      *string          `json:"subscriptionPlan" validate:"omitempty,oneof=Free Pro Enterprise"`
}

// CompanyStatusResponse estado tras activar/desactivar una empresa.
type CompanyStatusResponse struct {
	Success  bool `json:"success"`
	IsActive bool `json:"isActive"`
}
