package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pauta-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice (DIP).
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(companyID, id string) (*entity.Invoice, error)
	GetByNumber(companyID, invoiceNumber string) (*entity.Invoice, error)
	List(companyID string, q ListQuery) ([]*entity.Invoice, string, error)
	IDsByCampaign(companyID, campaignID string) ([]string, error)
	Update(invoice *entity.Invoice) error
	// UpdateTotal sobreescribe el total facturado (mutación de ajuste; ver change log).
	UpdateTotal(companyID, id string, total decimal.Decimal, updatedAt time.Time) error
	Delete(companyID, id string) error
}
