package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pauta-api/internal/domain/entity"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

var _ repository.ChangeLogRepository = (*ChangeLogRepo)(nil)

// El historial solo se ordena por fecha de creación: es una bitácora.
var changeLogSortColumns = map[string]sortColumn{
	"created_at": {column: "created_at", kind: colTime},
}

// ChangeLogRepo implementación de ChangeLogRepository (usable con pool o tx).
// El puerto es append-only; este adaptador no tiene UPDATE ni DELETE.
type ChangeLogRepo struct {
	q Querier
}

// NewChangeLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewChangeLogRepository(q Querier) *ChangeLogRepo {
	return &ChangeLogRepo{q: q}
}

// Append inserta una entrada inmutable del historial de ajustes.
func (r *ChangeLogRepo) Append(entry *entity.ChangeLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO change_log (id, company_id, invoice_id, entity_type, entity_id,
		                        field, old_value, new_value, reason, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.CompanyID, entry.InvoiceID, entry.EntityType, entry.EntityID,
		entry.Field, entry.OldValue, entry.NewValue, entry.Reason, entry.Actor, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append change log entry: %w", err)
	}
	return nil
}

// ListByInvoice devuelve el historial de una factura (incluye los ajustes de
// sus líneas, que heredan el invoice_id al registrarse).
func (r *ChangeLogRepo) ListByInvoice(companyID, invoiceID string, q repository.ListQuery) ([]*entity.ChangeLogEntry, string, error) {
	return r.list(companyID, q, "invoice_id = $2", invoiceID)
}

// ListByEntity devuelve el historial de una entidad concreta (factura o línea).
func (r *ChangeLogRepo) ListByEntity(companyID, entityType, entityID string, q repository.ListQuery) ([]*entity.ChangeLogEntry, string, error) {
	return r.list(companyID, q, "entity_type = $2 AND entity_id = $3", entityType, entityID)
}

func (r *ChangeLogRepo) list(companyID string, q repository.ListQuery, filter string, filterArgs ...any) ([]*entity.ChangeLogEntry, string, error) {
	sc, dir, err := resolveSort(changeLogSortColumns, q.SortBy, q.SortOrder, "created_at")
	if err != nil {
		return nil, "", err
	}

	where := []string{"company_id = $1", filter}
	args := append([]any{companyID}, filterArgs...)
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
		SELECT id, company_id, invoice_id, entity_type, entity_id,
		       field, old_value, new_value, reason, actor, created_at
		FROM change_log
		WHERE %s
		%s
		LIMIT $%d`, strings.Join(where, " AND "), orderBy(sc, dir), len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("list change log: %w", err)
	}
	defer rows.Close()

	var list []*entity.ChangeLogEntry
	for rows.Next() {
		var e entity.ChangeLogEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.InvoiceID, &e.EntityType, &e.EntityID,
			&e.Field, &e.OldValue, &e.NewValue, &e.Reason, &e.Actor, &e.CreatedAt); err != nil {
			return nil, "", fmt.Errorf("scan change log entry: %w", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	next := ""
	if len(list) > pageSize {
		list = list[:pageSize]
		last := list[len(list)-1]
		next = encodeCursor(last.CreatedAt.UTC().Format(time.RFC3339Nano), last.ID)
	}
	return list, next, nil
}
