package dto

// CreateCampaignRequest body para POST /api/campaigns.
type CreateCampaignRequest struct {
	Name      string `json:"name"`
	Status    string `json:"status,omitempty"` // default: draft
	StartDate string `json:"start_date"`       // YYYY-MM-DD
	EndDate   string `json:"end_date"`         // YYYY-MM-DD
}

// UpdateCampaignRequest body para PUT /api/campaigns/:id.
type UpdateCampaignRequest struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CampaignResponse campaña en respuestas. InvoiceIDs y LineItemIDs se derivan
// por FK y solo se cargan en el detalle (GET por ID).
type CampaignResponse struct {
	ID          string   `json:"id"`
	CompanyID   string   `json:"company_id"`
	Name        string   `json:"name"`
	Status      string   `json:"status"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	InvoiceIDs  []string `json:"invoice_ids,omitempty"`
	LineItemIDs []string `json:"line_item_ids,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// CampaignPageResponse página de campañas.
type CampaignPageResponse struct {
	Items []CampaignResponse `json:"items"`
	PageMeta
}
