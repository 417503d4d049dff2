package dto

import "github.com/shopspring/decimal"

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CampaignID    string          `json:"campaign_id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
	IssueDate     string          `json:"issue_date"` // YYYY-MM-DD
	DueDate       string          `json:"due_date"`   // YYYY-MM-DD
	Status        string          `json:"status,omitempty"` // default: draft
	ClientName    string          `json:"client_name"`
	ClientEmail   string          `json:"client_email,omitempty"`
	LineItemIDs   []string        `json:"line_item_ids,omitempty"` // líneas existentes a facturar
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id.
// PaidDate solo aplica cuando el estado pasa a "paid".
type UpdateInvoiceRequest struct {
	Status      string `json:"status"`
	DueDate     string `json:"due_date,omitempty"`
	PaidDate    string `json:"paid_date,omitempty"`
	ClientName  string `json:"client_name,omitempty"`
	ClientEmail string `json:"client_email,omitempty"`
}

// InvoiceResponse factura en respuestas. LineItemIDs y AdjustmentIDs se derivan
// (FK y change log) y solo se cargan en el detalle.
type InvoiceResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	CampaignID    string          `json:"campaign_id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Currency      string          `json:"currency"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date"`
	PaidDate      string          `json:"paid_date,omitempty"`
	Status        string          `json:"status"`
	ClientName    string          `json:"client_name"`
	ClientEmail   string          `json:"client_email,omitempty"`
	LineItemIDs   []string        `json:"line_item_ids,omitempty"`
	AdjustmentIDs []string        `json:"adjustment_ids,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

// InvoicePageResponse página de facturas.
type InvoicePageResponse struct {
	Items []InvoiceResponse `json:"items"`
	PageMeta
}

// CreateLineItemRequest body para POST /api/line-items.
type CreateLineItemRequest struct {
	CampaignID   string          `json:"campaign_id"`
	InvoiceID    string          `json:"invoice_id,omitempty"`
	Name         string          `json:"name"`
	BookedAmount decimal.Decimal `json:"booked_amount"`
	ActualAmount decimal.Decimal `json:"actual_amount"`
}

// UpdateLineItemRequest body para PUT /api/line-items/:id.
// El campo adjustments NO se muta por aquí: tiene su propio endpoint de ajuste
// que deja rastro en el change log.
type UpdateLineItemRequest struct {
	Name         string          `json:"name"`
	InvoiceID    string          `json:"invoice_id,omitempty"`
	BookedAmount decimal.Decimal `json:"booked_amount"`
	ActualAmount decimal.Decimal `json:"actual_amount"`
}

// LineItemResponse línea de pauta en respuestas.
type LineItemResponse struct {
	ID              string          `json:"id"`
	CompanyID       string          `json:"company_id"`
	CampaignID      string          `json:"campaign_id"`
	InvoiceID       string          `json:"invoice_id,omitempty"`
	Name            string          `json:"name"`
	BookedAmount    decimal.Decimal `json:"booked_amount"`
	ActualAmount    decimal.Decimal `json:"actual_amount"`
	Adjustments     decimal.Decimal `json:"adjustments"`
	EffectiveAmount decimal.Decimal `json:"effective_amount"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// LineItemPageResponse página de líneas de pauta.
type LineItemPageResponse struct {
	Items []LineItemResponse `json:"items"`
	PageMeta
}

// AdjustmentRequest body para POST /api/line-items/:id/adjust y
// POST /api/invoices/:id/adjust. NewValue es el valor absoluto resultante
// (semántica de "set"); Reason es obligatorio.
type AdjustmentRequest struct {
	NewValue decimal.Decimal `json:"new_value"`
	Reason   string          `json:"reason"`
}
