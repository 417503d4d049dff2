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

	"github.com/jhoicas/Pauta-api/internal/domain"
	"github.com/jhoicas/Pauta-api/internal/domain/entity"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// Columnas por las que se puede ordenar un listado de facturas.
var invoiceSortColumns = map[string]sortColumn{
	"invoice_number": {column: "invoice_number", kind: colText},
	"client_name":    {column: "client_name", kind: colText},
	"status":         {column: "status", kind: colText},
	"total_amount":   {column: "total_amount", kind: colNumeric},
	"issue_date":     {column: "issue_date", kind: colTime},
	"due_date":       {column: "due_date", kind: colTime},
	"created_at":     {column: "created_at", kind: colTime},
}

const invoiceColumnsSQL = `id, company_id, campaign_id, invoice_number, total_amount, currency,
	       issue_date, due_date, paid_date, status, client_name, client_email, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la factura. La unicidad de invoice_number por empresa la
// garantiza un constraint; una violación se traduce a ErrDuplicate.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, company_id, campaign_id, invoice_number, total_amount, currency,
		                      issue_date, due_date, paid_date, status, client_name, client_email,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.CampaignID, invoice.InvoiceNumber,
		invoice.TotalAmount, invoice.Currency, invoice.IssueDate, invoice.DueDate,
		invoice.PaidDate, invoice.Status, invoice.ClientName, nullIfEmpty(invoice.ClientEmail),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s", domain.ErrDuplicate, invoice.InvoiceNumber)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura de la empresa. Devuelve nil, nil si no existe.
func (r *InvoiceRepo) GetByID(companyID, id string) (*entity.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE company_id = $1 AND id = $2`, invoiceColumnsSQL)
	return r.getOne(query, companyID, id)
}

// GetByNumber obtiene una factura por su número dentro de la empresa.
func (r *InvoiceRepo) GetByNumber(companyID, invoiceNumber string) (*entity.Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE company_id = $1 AND invoice_number = $2`, invoiceColumnsSQL)
	return r.getOne(query, companyID, invoiceNumber)
}

func (r *InvoiceRepo) getOne(query string, args ...any) (*entity.Invoice, error) {
	var inv entity.Invoice
	var clientEmail *string
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&inv.ID, &inv.CompanyID, &inv.CampaignID, &inv.InvoiceNumber,
		&inv.TotalAmount, &inv.Currency, &inv.IssueDate, &inv.DueDate,
		&inv.PaidDate, &inv.Status, &inv.ClientName, &clientEmail,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.ClientEmail = derefStr(clientEmail)
	return &inv, nil
}

// List devuelve una página keyset de facturas y el cursor de la siguiente.
// El rango de fechas filtra sobre issue_date; la búsqueda libre cruza número y cliente.
func (r *InvoiceRepo) List(companyID string, q repository.ListQuery) ([]*entity.Invoice, string, error) {
	sc, dir, err := resolveSort(invoiceSortColumns, q.SortBy, q.SortOrder, "created_at")
	if err != nil {
		return nil, "", err
	}

	where := []string{"company_id = $1"}
	args := []any{companyID}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where = append(where, fmt.Sprintf("(invoice_number ILIKE $%d OR client_name ILIKE $%d)", len(args), len(args)))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.CampaignID != "" {
		args = append(args, q.CampaignID)
		where = append(where, fmt.Sprintf("campaign_id = $%d", len(args)))
	}
	if q.From != nil {
		args = append(args, *q.From)
		where = append(where, fmt.Sprintf("issue_date >= $%d", len(args)))
	}
	if q.To != nil {
		args = append(args, *q.To)
		where = append(where, fmt.Sprintf("issue_date <= $%d", len(args)))
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
		FROM invoices
		WHERE %s
		%s
		LIMIT $%d`, invoiceColumnsSQL, strings.Join(where, " AND "), orderBy(sc, dir), len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		var clientEmail *string
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.CampaignID, &inv.InvoiceNumber,
			&inv.TotalAmount, &inv.Currency, &inv.IssueDate, &inv.DueDate,
			&inv.PaidDate, &inv.Status, &inv.ClientName, &clientEmail,
			&inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, "", fmt.Errorf("scan invoice: %w", err)
		}
		inv.ClientEmail = derefStr(clientEmail)
		list = append(list, &inv)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	next := ""
	if len(list) > pageSize {
		list = list[:pageSize]
		last := list[len(list)-1]
		next = encodeCursor(invoiceSortValue(last, sc), last.ID)
	}
	return list, next, nil
}

// IDsByCampaign devuelve los IDs de facturas de una campaña (orden de emisión).
func (r *InvoiceRepo) IDsByCampaign(companyID, campaignID string) ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id FROM invoices WHERE company_id = $1 AND campaign_id = $2 ORDER BY issue_date, id`,
		companyID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("invoice ids by campaign: %w", err)
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

// Update actualiza los campos editables de la factura (el total solo cambia vía UpdateTotal).
func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET invoice_number = $3, currency = $4, issue_date = $5, due_date = $6,
		    paid_date = $7, status = $8, client_name = $9, client_email = $10, updated_at = $11
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		invoice.CompanyID, invoice.ID, invoice.InvoiceNumber, invoice.Currency,
		invoice.IssueDate, invoice.DueDate, invoice.PaidDate, invoice.Status,
		invoice.ClientName, nullIfEmpty(invoice.ClientEmail), invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s", domain.ErrDuplicate, invoice.InvoiceNumber)
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

// UpdateTotal sobreescribe el total facturado. Se llama solo dentro de la
// transacción de ajuste, junto con el Append del change log.
func (r *InvoiceRepo) UpdateTotal(companyID, id string, total decimal.Decimal, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET total_amount = $3, updated_at = $4 WHERE company_id = $1 AND id = $2`,
		companyID, id, total, updatedAt)
	if err != nil {
		return fmt.Errorf("update invoice total: %w", err)
	}
	return nil
}

// Delete elimina la factura. El caso de uso ya verificó que esté en borrador.
func (r *InvoiceRepo) Delete(companyID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM invoices WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func invoiceSortValue(inv *entity.Invoice, sc sortColumn) string {
	switch sc.column {
	case "invoice_number":
		return inv.InvoiceNumber
	case "client_name":
		return inv.ClientName
	case "status":
		return inv.Status
	case "total_amount":
		return inv.TotalAmount.String()
	case "issue_date":
		return inv.IssueDate.UTC().Format(time.RFC3339Nano)
	case "due_date":
		return inv.DueDate.UTC().Format(time.RFC3339Nano)
	default:
		return inv.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
}
