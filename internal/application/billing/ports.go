package billing

import (
	"context"

	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// AdjustmentTxRunner ejecuta fn dentro de una transacción con los repositorios
// del workflow de ajuste atados a esa transacción. Si fn retorna error, o el
// commit falla, ninguno de los writes sobrevive: la mutación del ajuste y su
// entrada en el change log son una sola unidad lógica y jamás queda una
// entrada de auditoría huérfana.
type AdjustmentTxRunner interface {
	RunAdjustment(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		lineItemRepo repository.LineItemRepository,
		changeLogRepo repository.ChangeLogRepository,
	) error) error
}

// InvoicePDFGenerator genera la representación PDF de una factura de campaña.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, data *InvoicePDFData) ([]byte, error)
}
