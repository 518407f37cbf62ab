package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una oferta. Solo Draft (al crear) y Sent (tras envío exitoso) los asigna el sistema;
// el resto existe para clientes que los gestionen externamente.
const (
	OfferStatusDraft    = "Draft"
	OfferStatusSent     = "Sent"
	OfferStatusAccepted = "Accepted"
	OfferStatusRejected = "Rejected"
	OfferStatusExpired  = "Expired"
)

// Monedas soportadas.
const (
	CurrencyTRY = "TRY"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

// Offer representa la cabecera de una oferta/cotización. Los datos del cliente son una copia
// tomada al crear/editar, no una referencia a otra entidad.
type Offer struct {
	ID              string
	OfferNumber     string // PREFIX-YYYYMM-NNN
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	OfferDate       time.Time
	DueDate         *time.Time
	Currency        string
	Notes           string
	TotalAmount     decimal.Decimal
	Status          string
	UserID          string
	CompanyID       string
	CompanyName     string // solo lectura (JOIN companies)
	Items           []OfferItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OfferItem representa una línea de la oferta. TotalPrice = Quantity × UnitPrice.
type OfferItem struct {
	ID          string
	OfferID     string
	Position    int
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// RecalculateTotals recalcula el total de cada línea y el total de la oferta.
// Debe llamarse antes de cada escritura.
func (o *Offer) RecalculateTotals() {
	total := decimal.Zero
	for i := range o.Items {
		it := &o.Items[i]
		it.Position = i + 1
		it.TotalPrice = it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2)
		total = total.Add(it.TotalPrice)
	}
	o.TotalAmount = total.Round(2)
}

// ValidCurrency informa si la moneda es una de las soportadas.
func ValidCurrency(c string) bool {
	switch c {
	case CurrencyTRY, CurrencyUSD, CurrencyEUR:
		return true
	default:
		return false
	}
}
