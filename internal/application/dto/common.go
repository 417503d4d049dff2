package dto

import (
	"time"

	"github.com/jhoicas/Pauta-api/internal/domain"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// DateLayout formato de fechas en query params y bodies (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ListRequest query params uniformes de todos los listados:
// texto libre, estado, rango de fechas, orden, página y cursor.
type ListRequest struct {
	Search     string `query:"q"`
	Status     string `query:"status"`
	From       string `query:"from"`
	To         string `query:"to"`
	CampaignID string `query:"campaign_id"`
	InvoiceID  string `query:"invoice_id"`
	SortBy     string `query:"sort_by"`
	SortOrder  string `query:"sort_order"`
	Page       int    `query:"page"`
	PageSize   int    `query:"page_size"`
	Cursor     string `query:"cursor"`
}

// Defaults normaliza página y tamaño de página (1..100, default 20).
func (r *ListRequest) Defaults() {
	if r.PageSize <= 0 {
		r.PageSize = 20
	}
	if r.PageSize > 100 {
		r.PageSize = 100
	}
	if r.Page < 0 {
		r.Page = 0
	}
}

// ToQuery traduce la petición al filtro del repositorio. Las fechas aceptan
// YYYY-MM-DD o RFC3339; To sin hora se interpreta como fin de día (inclusive).
func (r *ListRequest) ToQuery() (repository.ListQuery, error) {
	r.Defaults()
	q := repository.ListQuery{
		Search:     r.Search,
		Status:     r.Status,
		CampaignID: r.CampaignID,
		InvoiceID:  r.InvoiceID,
		SortBy:     r.SortBy,
		SortOrder:  r.SortOrder,
		PageSize:   r.PageSize,
		Cursor:     r.Cursor,
	}
	if r.From != "" {
		t, err := parseDate(r.From, false)
		if err != nil {
			return q, domain.ErrInvalidInput
		}
		q.From = &t
	}
	if r.To != "" {
		t, err := parseDate(r.To, true)
		if err != nil {
			return q, domain.ErrInvalidInput
		}
		q.To = &t
	}
	return q, nil
}

func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// PageMeta metadatos de página en respuestas de listado. NextCursor vacío
// significa que no hay más resultados.
type PageMeta struct {
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

// NewPageMeta construye los metadatos a partir del cursor devuelto por el repo.
func NewPageMeta(page, pageSize int, nextCursor string) PageMeta {
	return PageMeta{
		Page:       page,
		PageSize:   pageSize,
		NextCursor: nextCursor,
		HasMore:    nextCursor != "",
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
