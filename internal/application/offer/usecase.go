package offer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/Offers-api/internal/application/dto"
	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/access"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
	offerpolicy "github.com/jhoicas/Offers-api/internal/domain/offer"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
	"github.com/jhoicas/Offers-api/pkg/tracing"
)

// maxNumberAttempts intentos de alta cuando otro request tomó el mismo número.
const maxNumberAttempts = 3

// Config reglas de negocio inyectadas desde pkg/config.
type Config struct {
	Numbering  offerpolicy.NumberingPolicy
	Visibility access.Visibility
}

// UseCase casos de uso del ciclo de vida de una oferta: alta, lectura, edición,
// borrado, envío por email y PDF. Toda lectura pasa por la política de visibilidad;
// una oferta no visible se reporta como inexistente.
type UseCase struct {
	offers    repository.OfferRepository
	users     repository.UserRepository
	companies repository.CompanyRepository
	tx        TxRunner
	notifier  Notifier
	pdf       PDFRenderer
	cfg       Config
	now       func() time.Time
}

// NewUseCase construye el caso de uso de ofertas.
func NewUseCase(
	offers repository.OfferRepository,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	tx TxRunner,
	notifier Notifier,
	pdf PDFRenderer,
	cfg Config,
) *UseCase {
	return &UseCase{
		offers:    offers,
		users:     users,
		companies: companies,
		tx:        tx,
		notifier:  notifier,
		pdf:       pdf,
		cfg:       cfg,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create da de alta una oferta en estado Draft con el siguiente número de la empresa.
func (uc *UseCase) Create(ctx context.Context, actor access.Principal, in dto.OfferRequest) (*dto.OfferResponse, error) {
	ctx, span := tracing.AddSpan(ctx, "offer.Create", attribute.String("user.id", actor.UserID))
	defer span.End()

	user, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if user.CompanyID == "" {
		return nil, domain.ErrNoCompany
	}

	now := uc.now().UTC()
	o := &entity.Offer{
		ID:        uuid.New().String(),
		Status:    entity.OfferStatusDraft,
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := applyRequest(o, in, now); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		err = uc.tx.RunOffer(ctx, func(repo repository.OfferRepository) error {
			last, err := repo.LastNumberByCompany(ctx, o.CompanyID)
			if err != nil {
				return err
			}
			o.OfferNumber = uc.cfg.Numbering.Next(last, now)
			return repo.Create(ctx, o)
		})
		if !errors.Is(err, domain.ErrOfferNumberTaken) || attempt == maxNumberAttempts {
			break
		}
		span.AddEvent("offer_number_conflict", trace.WithAttributes(attribute.Int("attempt", attempt)))
	}
	if errors.Is(err, domain.ErrOfferNumberTaken) {
		return nil, fmt.Errorf("%w: no se pudo asignar un número de oferta, reintente", domain.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("offer.number", o.OfferNumber))

	return uc.reload(ctx, o.ID)
}

// GetByID devuelve la oferta si es visible para actor.
func (uc *UseCase) GetByID(ctx context.Context, actor access.Principal, id string) (*dto.OfferResponse, error) {
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return dto.ToOfferResponse(o), nil
}

// List devuelve una página de ofertas visibles (más recientes primero) y el total.
func (uc *UseCase) List(ctx context.Context, actor access.Principal, page dto.PageRequest) ([]dto.OfferResponse, int, error) {
	ctx, span := tracing.AddSpan(ctx, "offer.List")
	defer span.End()

	page.Normalize()
	filter := uc.listFilter(actor)
	list, err := uc.offers.List(ctx, filter, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.offers.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return dto.ToOfferResponses(list), total, nil
}

// Update reemplaza los datos y las líneas de la oferta. Número y estado no cambian.
func (uc *UseCase) Update(ctx context.Context, actor access.Principal, id string, in dto.OfferRequest) (*dto.OfferResponse, error) {
	ctx, span := tracing.AddSpan(ctx, "offer.Update", attribute.String("offer.id", id))
	defer span.End()

	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	if in.OfferDate == nil {
		in.OfferDate = &dto.Date{Time: o.OfferDate}
	}
	if err := applyRequest(o, in, now); err != nil {
		return nil, err
	}
	o.UpdatedAt = now

	if err := uc.tx.RunOffer(ctx, func(repo repository.OfferRepository) error {
		return repo.Update(ctx, o)
	}); err != nil {
		return nil, err
	}
	return uc.reload(ctx, o.ID)
}

// Delete elimina la oferta; las líneas se borran en cascada.
func (uc *UseCase) Delete(ctx context.Context, actor access.Principal, id string) error {
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return err
	}
	return uc.offers.Delete(ctx, o.ID)
}

// Send entrega la oferta por email y solo si la entrega tuvo éxito la marca como Sent.
// Si el envío falla el estado no cambia y se devuelve ErrDeliveryFailed.
func (uc *UseCase) Send(ctx context.Context, actor access.Principal, id string) (*dto.OfferResponse, error) {
	ctx, span := tracing.AddSpan(ctx, "offer.Send", attribute.String("offer.id", id))
	defer span.End()

	o, company, err := uc.loadWithCompany(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := uc.notifier.SendOffer(ctx, o, company); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}

	now := uc.now().UTC()
	if err := uc.offers.UpdateStatus(ctx, o.ID, entity.OfferStatusSent, now); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: oferta %s: %w", domain.ErrSentNotRecorded, o.OfferNumber, err)
	}
	o.Status = entity.OfferStatusSent
	o.UpdatedAt = now
	return dto.ToOfferResponse(o), nil
}

// RenderPDF genera el PDF de la oferta. Devuelve el contenido y un nombre de archivo sugerido.
func (uc *UseCase) RenderPDF(ctx context.Context, actor access.Principal, id string) ([]byte, string, error) {
	ctx, span := tracing.AddSpan(ctx, "offer.RenderPDF", attribute.String("offer.id", id))
	defer span.End()

	o, company, err := uc.loadWithCompany(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	content, err := uc.pdf.RenderOffer(o, company)
	if err != nil {
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}
	return content, o.OfferNumber + ".pdf", nil
}

// load obtiene la oferta aplicando la política de visibilidad.
func (uc *UseCase) load(ctx context.Context, actor access.Principal, id string) (*entity.Offer, error) {
	o, err := uc.offers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || !uc.cfg.Visibility.CanAccessOffer(actor, o.UserID, o.CompanyID) {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (uc *UseCase) loadWithCompany(ctx context.Context, actor access.Principal, id string) (*entity.Offer, *entity.Company, error) {
	o, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, nil, err
	}
	company, err := uc.companies.GetByID(ctx, o.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	if company == nil {
		return nil, nil, domain.ErrNotFound
	}
	return o, company, nil
}

func (uc *UseCase) reload(ctx context.Context, id string) (*dto.OfferResponse, error) {
	o, err := uc.offers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return dto.ToOfferResponse(o), nil
}

func (uc *UseCase) listFilter(actor access.Principal) repository.OfferFilter {
	if uc.cfg.Visibility == access.VisibilityTenant && actor.HasCompany() {
		return repository.OfferFilter{CompanyID: actor.CompanyID}
	}
	return repository.OfferFilter{UserID: actor.UserID}
}

// applyRequest copia los datos del request sobre o, reemplaza las líneas y recalcula totales.
func applyRequest(o *entity.Offer, in dto.OfferRequest, now time.Time) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: la oferta debe tener al menos una línea", domain.ErrInvalidInput)
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = entity.CurrencyTRY
	}
	if !entity.ValidCurrency(currency) {
		return fmt.Errorf("%w: moneda no soportada %q", domain.ErrInvalidInput, in.Currency)
	}

	items := make([]entity.OfferItem, 0, len(in.Items))
	for i, it := range in.Items {
		if it.Quantity < 1 {
			return fmt.Errorf("%w: línea %d: la cantidad debe ser al menos 1", domain.ErrInvalidInput, i+1)
		}
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: línea %d: el precio unitario no puede ser negativo", domain.ErrInvalidInput, i+1)
		}
		// unit_price es NUMERIC(18,2): más decimales romperían total = cantidad × precio al persistir
		if !it.UnitPrice.Equal(it.UnitPrice.Round(2)) {
			return fmt.Errorf("%w: línea %d: el precio unitario admite como máximo 2 decimales", domain.ErrInvalidInput, i+1)
		}
		items = append(items, entity.OfferItem{
			OfferID:     o.ID,
			Description: strings.TrimSpace(it.Description),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}

	o.CustomerName = strings.TrimSpace(in.CustomerName)
	o.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	o.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	o.CustomerAddress = strings.TrimSpace(in.CustomerAddress)
	o.OfferDate = now
	if in.OfferDate != nil {
		o.OfferDate = in.OfferDate.UTC()
	}
	o.DueDate = in.DueDate.TimePtr()
	o.Currency = currency
	o.Notes = strings.TrimSpace(in.Notes)
	o.Items = items
	o.RecalculateTotals()
	return nil
}
