package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Offers-api/internal/domain/entity"
)

// UpdateCompanyRequest reemplaza los datos de perfil de la empresa.
type UpdateCompanyRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	Address   string `json:"address" validate:"omitempty,max=500"`
	Phone     string `json:"phone" validate:"omitempty,max=50"`
	Email     string `json:"email" validate:"required,email,max=200"`
	TaxNumber string `json:"taxNumber" validate:"omitempty,max=50"`
	IBAN      string `json:"iban" validate:"omitempty,max=50"`
	Website   string `json:"website" validate:"omitempty,url,max=200"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Logo                  string          `json:"logo,omitempty"`
	Address               string          `json:"address"`
	Phone                 string          `json:"phone"`
	Email                 string          `json:"email"`
	TaxNumber             string          `json:"taxNumber,omitempty"`
	IBAN                  string          `json:"iban,omitempty"`
	Website               string          `json:"website,omitempty"`
	SubscriptionPlan      string          `json:"subscriptionPlan"`
	HasActiveSubscription bool            `json:"hasActiveSubscription"`
	SubscriptionStartDate *time.Time      `json:"subscriptionStartDate"`
	SubscriptionEndDate   *time.Time      `json:"subscriptionEndDate"`
	MonthlyFee            decimal.Decimal `json:"monthlyFee"`
	IsActive              bool            `json:"isActive"`
	CreatedAt             time.Time       `json:"createdAt"`
}

// LogoResponse ruta pública del logo subido.
type LogoResponse struct {
	Success bool   `json:"success"`
	Logo    string `json:"logo"`
}

// ToCompanyResponse mapea la entidad a DTO.
func ToCompanyResponse(c *entity.Company) *CompanyResponse {
	return &CompanyResponse{
		ID:                    c.ID,
		Name:                  c.Name,
		Logo:                  c.Logo,
		Address:               c.Address,
		Phone:                 c.Phone,
		Email:                 c.Email,
		TaxNumber:             c.TaxNumber,
		IBAN:                  c.IBAN,
		Website:               c.Website,
		SubscriptionPlan:      c.SubscriptionPlan,
		HasActiveSubscription: c.HasActiveSubscription,
		SubscriptionStartDate: c.SubscriptionStartDate,
		SubscriptionEndDate:   c.SubscriptionEndDate,
		MonthlyFee:            c.MonthlyFee,
		IsActive:              c.IsActive,
		CreatedAt:             c.CreatedAt,
	}
}
