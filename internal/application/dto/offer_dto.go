package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Offers-api/internal/domain/entity"
)

// OfferItemRequest línea de oferta. UnitPrice se valida como número (ver RegisterCustomTypeFunc).
type OfferItemRequest struct {
	Description string          `json:"description" validate:"required,max=500"`
	Quantity    int             `json:"quantity" validate:"gte=1"`
	UnitPrice   decimal.Decimal `json:"unitPrice" validate:"gte=0"`
}

// OfferRequest cuerpo de creación y edición. Los items reemplazan a los existentes.
type OfferRequest struct {
	CustomerName    string             `json:"customerName" validate:"required,max=200"`
	CustomerEmail   string             `json:"customerEmail" validate:"required,email,max=200"`
	CustomerPhone   string             `json:"customerPhone" validate:"omitempty,max=50"`
	CustomerAddress string             `json:"customerAddress" validate:"omitempty,max=500"`
	OfferDate       *Date              `json:"offerDate" swaggertype:"string" format:"date-time"`
	DueDate         *Date              `json:"dueDate" swaggertype:"string" format:"date-time"`
	Currency        string             `json:"currency" validate:"omitempty,oneof=TRY USD EUR"`
	Notes           string             `json:"notes" validate:"omitempty,max=2000"`
	Items           []OfferItemRequest `json:"items" validate:"required,min=1,dive"`
}

// CreateOfferRequest y UpdateOfferRequest comparten forma.
type (
	CreateOfferRequest = OfferRequest
	UpdateOfferRequest = OfferRequest
)

// OfferItemResponse línea de oferta con total calculado.
type OfferItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// OfferResponse oferta con sus líneas y el nombre de la empresa emisora.
type OfferResponse struct {
	ID              string              `json:"id"`
	OfferNumber     string              `json:"offerNumber"`
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerPhone   string              `json:"customerPhone,omitempty"`
	CustomerAddress string              `json:"customerAddress,omitempty"`
	OfferDate       time.Time           `json:"offerDate"`
	DueDate         *time.Time          `json:"dueDate"`
	Currency        string              `json:"currency"`
	Notes           string              `json:"notes,omitempty"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	Status          string              `json:"status"`
	CompanyName     string              `json:"companyName"`
	Items           []OfferItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// ToOfferResponse mapea la entidad a DTO.
func ToOfferResponse(o *entity.Offer) *OfferResponse {
	items := make([]OfferItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OfferItemResponse{
			ID:          it.ID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		})
	}
	return &OfferResponse{
		ID:              o.ID,
		OfferNumber:     o.OfferNumber,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		OfferDate:       o.OfferDate,
		DueDate:         o.DueDate,
		Currency:        o.Currency,
		Notes:           o.Notes,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		CompanyName:     o.CompanyName,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToOfferResponses mapea una lista (nunca nil, para serializar []).
func ToOfferResponses(list []*entity.Offer) []OfferResponse {
	out := make([]OfferResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToOfferResponse(o))
	}
	return out
}
