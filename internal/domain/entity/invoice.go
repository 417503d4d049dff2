package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de campaña.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// ValidInvoiceStatus informa si s es un estado de factura permitido.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice representa la factura de una campaña.
type Invoice struct {
	ID            string
	CompanyID     string
	CampaignID    string
	InvoiceNumber string
	TotalAmount   decimal.Decimal
	Currency      string // código ISO-4217, ej. "COP", "USD"
	IssueDate     time.Time
	DueDate       time.Time
	PaidDate      *time.Time
	Status        string
	ClientName    string
	ClientEmail   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
