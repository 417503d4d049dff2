package entity

import "time"

// Estados del ciclo de vida de una campaña publicitaria.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// ValidCampaignStatus informa si s es un estado de campaña permitido.
func ValidCampaignStatus(s string) bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusCompleted, CampaignStatusCancelled:
		return true
	}
	return false
}

// Campaign representa una campaña publicitaria de la empresa.
// Las facturas y líneas de pauta asociadas se derivan por FK, no se almacenan aquí.
type Campaign struct {
	ID        string
	CompanyID string
	Name      string
	Status    string
	StartDate time.Time
	EndDate   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
