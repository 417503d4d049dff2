package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pauta-api/internal/domain/entity"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

var _ repository.LineItemRepository = (*LineItemRepo)(nil)

// Columnas por las que se puede ordenar un listado de líneas de pauta.
var lineItemSortColumns = map[string]sortColumn{
	"name":          {column: "name", kind: colText},
	"booked_amount": {column: "booked_amount", kind: colNumeric},
	"actual_amount": {column: "actual_amount", kind: colNumeric},
	"adjustments":   {column: "adjustments", kind: colNumeric},
	"created_at":    {column: "created_at", kind: colTime},
}

const lineItemColumnsSQL = `id, company_id, campaign_id, invoice_id, name,
	       booked_amount, actual_amount, adjustments, created_at, updated_at`

// LineItemRepo implementación de LineItemRepository (usable con pool o tx).
type LineItemRepo struct {
	q Querier
}

// NewLineItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLineItemRepository(q Querier) *LineItemRepo {
	return &LineItemRepo{q: q}
}

// Create persiste una línea de pauta.
func (r *LineItemRepo) Create(item *entity.LineItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO line_items (id, company_id, campaign_id, invoice_id, name,
		                        booked_amount, actual_amount, adjustments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CompanyID, item.CampaignID, item.InvoiceID, item.Name,
		item.BookedAmount, item.ActualAmount, item.Adjustments, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert line item: %w", err)
	}
	return nil
}

// GetByID obtiene una línea de la empresa. Devuelve nil, nil si no existe.
func (r *LineItemRepo) GetByID(companyID, id string) (*entity.LineItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM line_items WHERE company_id = $1 AND id = $2`, lineItemColumnsSQL)
	var li entity.LineItem
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&li.ID, &li.CompanyID, &li.CampaignID, &li.InvoiceID, &li.Name,
		&li.BookedAmount, &li.ActualAmount, &li.Adjustments, &li.CreatedAt, &li.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get line item: %w", err)
	}
	return &li, nil
}

// List devuelve una página keyset de líneas y el cursor de la siguiente.
// El rango de fechas filtra sobre created_at.
func (r *LineItemRepo) List(companyID string, q repository.ListQuery) ([]*entity.LineItem, string, error) {
	sc, dir, err := resolveSort(lineItemSortColumns, q.SortBy, q.SortOrder, "created_at")
	if err != nil {
		return nil, "", err
	}

	where := []string{"company_id = $1"}
	args := []any{companyID}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if q.CampaignID != "" {
		args = append(args, q.CampaignID)
		where = append(where, fmt.Sprintf("campaign_id = $%d", len(args)))
	}
	if q.InvoiceID != "" {
		args = append(args, q.InvoiceID)
		where = append(where, fmt.Sprintf("invoice_id = $%d", len(args)))
	}
	if q.From != nil {
		args = append(args, *q.From)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if q.To != nil {
		args = append(args, *q.To)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if q.Cursor != "" {
		cur, err := decodeCursor(q.Cursor)
		if err != nil {
			return nil, "", err
		}
		where = append(where, keysetPredicate(sc, dir, len(args)+1))
		args = append(args, cur.V, cur.ID)
	}

	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	args = append(args, pageSize+1)

	query := fmt.Sprintf(`
		SELECT %s
		FROM line_items
		WHERE %s
		%s
		LIMIT $%d`, lineItemColumnsSQL, strings.Join(where, " AND "), orderBy(sc, dir), len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()

	var list []*entity.LineItem
	for rows.Next() {
		var li entity.LineItem
		if err := rows.Scan(&li.ID, &li.CompanyID, &li.CampaignID, &li.InvoiceID, &li.Name,
			&li.BookedAmount, &li.ActualAmount, &li.Adjustments, &li.CreatedAt, &li.UpdatedAt); err != nil {
			return nil, "", fmt.Errorf("scan line item: %w", err)
		}
		list = append(list, &li)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	next := ""
	if len(list) > pageSize {
		list = list[:pageSize]
		last := list[len(list)-1]
		next = encodeCursor(lineItemSortValue(last, sc), last.ID)
	}
	return list, next, nil
}

// IDsByCampaign devuelve los IDs de líneas de una campaña.
func (r *LineItemRepo) IDsByCampaign(companyID, campaignID string) ([]string, error) {
	return r.ids(`SELECT id FROM line_items WHERE company_id = $1 AND campaign_id = $2 ORDER BY created_at, id`,
		companyID, campaignID)
}

// IDsByInvoice devuelve los IDs de líneas asociadas a una factura.
func (r *LineItemRepo) IDsByInvoice(companyID, invoiceID string) ([]string, error) {
	return r.ids(`SELECT id FROM line_items WHERE company_id = $1 AND invoice_id = $2 ORDER BY created_at, id`,
		companyID, invoiceID)
}

func (r *LineItemRepo) ids(query string, args ...any) ([]string, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("line item ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Update actualiza los campos editables (adjustments solo cambia vía UpdateAdjustments).
func (r *LineItemRepo) Update(item *entity.LineItem) error {
	query := `
		UPDATE line_items
		SET invoice_id = $3, name = $4, booked_amount = $5, actual_amount = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		item.CompanyID, item.ID, item.InvoiceID, item.Name,
		item.BookedAmount, item.ActualAmount, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update line item: %w", err)
	}
	return nil
}

// UpdateAdjustments sobreescribe el ajuste vigente. Se llama solo dentro de la
// transacción de ajuste, junto con el Append del change log.
func (r *LineItemRepo) UpdateAdjustments(companyID, id string, value decimal.Decimal, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE line_items SET adjustments = $3, updated_at = $4 WHERE company_id = $1 AND id = $2`,
		companyID, id, value, updatedAt)
	if err != nil {
		return fmt.Errorf("update line item adjustments: %w", err)
	}
	return nil
}

// Delete elimina la línea. El caso de uso ya verificó que no esté facturada.
func (r *LineItemRepo) Delete(companyID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM line_items WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete line item: %w", err)
	}
	return nil
}

func lineItemSortValue(li *entity.LineItem, sc sortColumn) string {
	switch sc.column {
	case "name":
		return li.Name
	case "booked_amount":
		return li.BookedAmount.String()
	case "actual_amount":
		return li.ActualAmount.String()
	case "adjustments":
		return li.Adjustments.String()
	default:
		return li.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
}
