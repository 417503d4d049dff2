package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem representa una línea de pauta de una campaña.
// Adjustments es un delta monetario con signo sobre el monto real; se sobreescribe
// con cada ajuste (semántica de "set") y cada cambio queda en el change log.
type LineItem struct {
	ID           string
	CompanyID    string
	CampaignID   string
	InvoiceID    *string // nil mientras la línea no esté facturada
	Name         string
	BookedAmount decimal.Decimal
	ActualAmount decimal.Decimal
	Adjustments  decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EffectiveAmount devuelve el monto real más el ajuste vigente.
func (li *LineItem) EffectiveAmount() decimal.Decimal {
	return li.ActualAmount.Add(li.Adjustments)
}
