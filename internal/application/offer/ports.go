package offer

import (
	"context"

	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
)

// TxRunner ejecuta escrituras de cabecera + líneas en una transacción.
type TxRunner interface {
	RunOffer(ctx context.Context, fn func(offerRepo repository.OfferRepository) error) error
}

// Notifier entrega la oferta al cliente (email). Un error significa que no se entregó.
type Notifier interface {
	SendOffer(ctx context.Context, offer *entity.Offer, company *entity.Company) error
}

// PDFRenderer genera el documento PDF de una oferta.
type PDFRenderer interface {
	RenderOffer(offer *entity.Offer, company *entity.Company) ([]byte, error)
}
