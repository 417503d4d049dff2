package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pauta-api/internal/domain/entity"
)

// LineItemRepository define el puerto de persistencia para LineItem (DIP).
type LineItemRepository interface {
	Create(item *entity.LineItem) error
	GetByID(companyID, id string) (*entity.LineItem, error)
	List(companyID string, q ListQuery) ([]*entity.LineItem, string, error)
	IDsByCampaign(companyID, campaignID string) ([]string, error)
	IDsByInvoice(companyID, invoiceID string) ([]string, error)
	Update(item *entity.LineItem) error
	// UpdateAdjustments sobreescribe el ajuste vigente (semántica de "set", no delta).
	UpdateAdjustments(companyID, id string, value decimal.Decimal, updatedAt time.Time) error
	Delete(companyID, id string) error
}
