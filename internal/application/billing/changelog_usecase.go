package billing

import (
	"github.com/jhoicas/Pauta-api/internal/application/dto"
	"github.com/jhoicas/Pauta-api/internal/domain"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// ChangeLogUseCase listado del historial de ajustes (solo lectura: el
// historial es append-only y no existe operación de escritura fuera del
// workflow de ajuste).
type ChangeLogUseCase struct {
	repo        repository.ChangeLogRepository
	invoiceRepo repository.InvoiceRepository
}

// NewChangeLogUseCase construye el caso de uso.
func NewChangeLogUseCase(repo repository.ChangeLogRepository, invoiceRepo repository.InvoiceRepository) *ChangeLogUseCase {
	return &ChangeLogUseCase{repo: repo, invoiceRepo: invoiceRepo}
}

// ListByInvoice devuelve una página del historial de una factura, del ajuste
// más reciente al más antiguo, filtrable por rango de fechas.
func (uc *ChangeLogUseCase) ListByInvoice(companyID, invoiceID string, in dto.ListRequest) (*dto.ChangeLogPageResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	q, err := in.ToQuery()
	if err != nil {
		return nil, err
	}
	entries, next, err := uc.repo.ListByInvoice(companyID, invoiceID, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChangeLogEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, *toChangeLogResponse(e))
	}
	return &dto.ChangeLogPageResponse{
		Items:    items,
		PageMeta: dto.NewPageMeta(in.Page, in.PageSize, next),
	}, nil
}
