package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Pauta-api/internal/domain/entity"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

var _ repository.CampaignRepository = (*CampaignRepo)(nil)

// Columnas por las que se puede ordenar un listado de campañas.
var campaignSortColumns = map[string]sortColumn{
	"name":       {column: "name", kind: colText},
	"status":     {column: "status", kind: colText},
	"start_date": {column: "start_date", kind: colTime},
	"end_date":   {column: "end_date", kind: colTime},
	"created_at": {column: "created_at", kind: colTime},
}

// CampaignRepo implementación de CampaignRepository (usable con pool o tx).
type CampaignRepo struct {
	q Querier
}

// NewCampaignRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCampaignRepository(q Querier) *CampaignRepo {
	return &CampaignRepo{q: q}
}

// Create persiste una campaña nueva.
func (r *CampaignRepo) Create(campaign *entity.Campaign) error {
	if campaign.ID == "" {
		campaign.ID = uuid.New().String()
	}
	query := `
		INSERT INTO campaigns (id, company_id, name, status, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		campaign.ID, campaign.CompanyID, campaign.Name, campaign.Status,
		campaign.StartDate, campaign.EndDate, campaign.CreatedAt, campaign.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// GetByID obtiene una campaña de la empresa. Devuelve nil, nil si no existe.
func (r *CampaignRepo) GetByID(companyID, id string) (*entity.Campaign, error) {
	query := `
		SELECT id, company_id, name, status, start_date, end_date, created_at, updated_at
		FROM campaigns WHERE company_id = $1 AND id = $2`
	var c entity.Campaign
	err := r.q.QueryRow(context.Background(), query, companyID, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Status,
		&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return &c, nil
}

// List devuelve una página keyset de campañas y el cursor de la siguiente.
// El rango de fechas filtra sobre start_date.
func (r *CampaignRepo) List(companyID string, q repository.ListQuery) ([]*entity.Campaign, string, error) {
	sc, dir, err := resolveSort(campaignSortColumns, q.SortBy, q.SortOrder, "created_at")
	if err != nil {
		return nil, "", err
	}

	where := []string{"company_id = $1"}
	args := []any{companyID}
	if q.Search != "" {
		args = append(args, "%"+q.Search+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.From != nil {
		args = append(args, *q.From)
		where = append(where, fmt.Sprintf("start_date >= $%d", len(args)))
	}
	if q.To != nil {
		args = append(args, *q.To)
		where = append(where, fmt.Sprintf("start_date <= $%d", len(args)))
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
	args = append(args, pageSize+1) // una fila extra para saber si hay más

	query := fmt.Sprintf(`
		SELECT id, company_id, name, status, start_date, end_date, created_at, updated_at
		FROM campaigns
		WHERE %s
		%s
		LIMIT $%d`, strings.Join(where, " AND "), orderBy(sc, dir), len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var list []*entity.Campaign
	for rows.Next() {
		var c entity.Campaign
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Status,
			&c.StartDate, &c.EndDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, "", fmt.Errorf("scan campaign: %w", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, "", err
	}

	next := ""
	if len(list) > pageSize {
		list = list[:pageSize]
		last := list[len(list)-1]
		next = encodeCursor(campaignSortValue(last, sc), last.ID)
	}
	return list, next, nil
}

// Update actualiza los campos editables de la campaña.
func (r *CampaignRepo) Update(campaign *entity.Campaign) error {
	query := `
		UPDATE campaigns
		SET name = $3, status = $4, start_date = $5, end_date = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		campaign.CompanyID, campaign.ID, campaign.Name, campaign.Status,
		campaign.StartDate, campaign.EndDate, campaign.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	return nil
}

// Delete elimina la campaña. El caso de uso ya verificó que no tenga facturas.
func (r *CampaignRepo) Delete(companyID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM campaigns WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	return nil
}

func campaignSortValue(c *entity.Campaign, sc sortColumn) string {
	switch sc.column {
	case "name":
		return c.Name
	case "status":
		return c.Status
	case "start_date":
		return c.StartDate.UTC().Format(time.RFC3339Nano)
	case "end_date":
		return c.EndDate.UTC().Format(time.RFC3339Nano)
	default:
		return c.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
}
