package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Offers-api/internal/domain"
	"github.com/jhoicas/Offers-api/internal/domain/entity"
	"github.com/jhoicas/Offers-api/internal/domain/repository"
)

var _ repository.OfferRepository = (*OfferRepo)(nil)

// offerNumberConstraint debe coincidir con el constraint de la migración 000001.
const offerNumberConstraint = "offers_company_number_key"

const offerSelect = `
	SELECT o.id, o.offer_number, o.customer_name, o.customer_email, o.customer_phone, o.customer_address,
	       o.offer_date, o.due_date, o.currency, o.notes, o.total_amount, o.status,
	       o.user_id, o.company_id, c.name, o.created_at, o.updated_at
	  FROM offers o
	  JOIN companies c ON c.id = o.company_id`

// OfferRepo implementación del puerto OfferRepository sobre PostgreSQL.
type OfferRepo struct {
	db Querier
}

// NewOfferRepository construye el adaptador de persistencia para ofertas.
func NewOfferRepository(db Querier) *OfferRepo {
	return &OfferRepo{db: db}
}

// Create inserta la cabecera y sus líneas. Usar dentro de una transacción (ver TxRunner.RunOffer).
func (r *OfferRepo) Create(ctx context.Context, o *entity.Offer) error {
	query := `
		INSERT INTO offers (id, offer_number, customer_name, customer_email, customer_phone, customer_address,
		                    offer_date, due_date, currency, notes, total_amount, status,
		                    user_id, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.db.Exec(ctx, query,
		o.ID, o.OfferNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.CustomerAddress,
		o.OfferDate, o.DueDate, o.Currency, o.Notes, o.TotalAmount, o.Status,
		o.UserID, o.CompanyID, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) && violatedConstraint(err) == offerNumberConstraint {
			return domain.ErrOfferNumberTaken
		}
		return fmt.Errorf("insert offer: %w", err)
	}
	return r.insertItems(ctx, o)
}

// GetByID obtiene una oferta con sus líneas y el nombre de la empresa.
func (r *OfferRepo) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	if !validID(id) {
		return nil, nil
	}
	o, err := scanOffer(r.db.QueryRow(ctx, offerSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Offer{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List devuelve ofertas según el filtro, más recientes primero, con sus líneas.
func (r *OfferRepo) List(ctx context.Context, f repository.OfferFilter, limit, offset int) ([]*entity.Offer, error) {
	where, args, ok := offerWhere(f)
	if !ok {
		return nil, nil
	}
	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY o.created_at DESC, o.offer_number DESC LIMIT $%d OFFSET $%d",
		offerSelect, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	var list []*entity.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Count cuenta las ofertas que cumplen el filtro.
func (r *OfferRepo) Count(ctx context.Context, f repository.OfferFilter) (int, error) {
	where, args, ok := offerWhere(f)
	if !ok {
		return 0, nil
	}
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM offers o`+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count offers: %w", err)
	}
	return n, nil
}

// LastNumberByCompany devuelve el número de la oferta más reciente de la empresa.
func (r *OfferRepo) LastNumberByCompany(ctx context.Context, companyID string) (string, error) {
	const query = `
		SELECT offer_number FROM offers
		 WHERE company_id = $1
		 ORDER BY created_at DESC, offer_number DESC
		 LIMIT 1`
	var number string
	err := r.db.QueryRow(ctx, query, companyID).Scan(&number)
	if err != nil {
		if isNoRows(err) {
			return "", nil
		}
		return "", fmt.Errorf("last offer number: %w", err)
	}
	return number, nil
}

// Update reemplaza los campos escalares y todas las líneas. Usar dentro de una transacción.
func (r *OfferRepo) Update(ctx context.Context, o *entity.Offer) error {
	query := `
		UPDATE offers SET
			customer_name = $2, customer_email = $3, customer_phone = $4, customer_address = $5,
			offer_date = $6, due_date = $7, currency = $8, notes = $9, total_amount = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query,
		o.ID, o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.CustomerAddress,
		o.OfferDate, o.DueDate, o.Currency, o.Notes, o.TotalAmount, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM offer_items WHERE offer_id = $1`, o.ID); err != nil {
		return fmt.Errorf("delete offer items: %w", err)
	}
	return r.insertItems(ctx, o)
}

// UpdateStatus cambia solo el estado de la oferta.
func (r *OfferRepo) UpdateStatus(ctx context.Context, id, status string, at time.Time) error {
	cmd, err := r.db.Exec(ctx, `UPDATE offers SET status = $2, updated_at = $3 WHERE id = $1`, id, status, at)
	if err != nil {
		return fmt.Errorf("update offer status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la oferta (líneas en cascada).
func (r *OfferRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// insertItems inserta las líneas en un único batch.
func (r *OfferRepo) insertItems(ctx context.Context, o *entity.Offer) error {
	if len(o.Items) == 0 {
		return nil
	}
	const query = `
		INSERT INTO offer_items (id, offer_id, position, description, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	b := &pgx.Batch{}
	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.OfferID = o.ID
		b.Queue(query, it.ID, it.OfferID, it.Position, it.Description, it.Quantity, it.UnitPrice, it.TotalPrice)
	}
	br := r.db.SendBatch(ctx, b)
	defer br.Close()
	for range o.Items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert offer item: %w", err)
		}
	}
	return nil
}

// loadItems hidrata las líneas de todas las ofertas con una sola consulta.
func (r *OfferRepo) loadItems(ctx context.Context, offers []*entity.Offer) error {
	if len(offers) == 0 {
		return nil
	}
	ids := make([]string, 0, len(offers))
	byID := make(map[string]*entity.Offer, len(offers))
	for _, o := range offers {
		ids = append(ids, o.ID)
		byID[o.ID] = o
		o.Items = []entity.OfferItem{}
	}
	const query = `
		SELECT id, offer_id, position, description, quantity, unit_price, total_price
		  FROM offer_items
		 WHERE offer_id = ANY($1::uuid[])
		 ORDER BY offer_id, position`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list offer items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.OfferItem
		if err := rows.Scan(&it.ID, &it.OfferID, &it.Position, &it.Description, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return fmt.Errorf("scan offer item: %w", err)
		}
		if o, ok := byID[it.OfferID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// offerWhere construye el WHERE del filtro. ok=false si algún id no es UUID (resultado vacío).
func offerWhere(f repository.OfferFilter) (string, []any, bool) {
	var conds []string
	var args []any
	if f.UserID != "" {
		if !validID(f.UserID) {
			return "", nil, false
		}
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("o.user_id = $%d", len(args)))
	}
	if f.CompanyID != "" {
		if !validID(f.CompanyID) {
			return "", nil, false
		}
		args = append(args, f.CompanyID)
		conds = append(conds, fmt.Sprintf("o.company_id = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args, true
	}
	return " WHERE " + strings.Join(conds, " AND "), args, true
}

func scanOffer(row rowScanner) (*entity.Offer, error) {
	var o entity.Offer
	err := row.Scan(
		&o.ID, &o.OfferNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.CustomerAddress,
		&o.OfferDate, &o.DueDate, &o.Currency, &o.Notes, &o.TotalAmount, &o.Status,
		&o.UserID, &o.CompanyID, &o.CompanyName, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}
