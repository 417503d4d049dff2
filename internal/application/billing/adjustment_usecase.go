package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pauta-api/internal/application/dto"
	"github.com/jhoicas/Pauta-api/internal/domain"
	"github.com/jhoicas/Pauta-api/internal/domain/entity"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// Campos auditados por el workflow de ajuste.
const (
	FieldAdjustments = "adjustments"
	FieldTotalAmount = "total_amount"
)

// AdjustmentUseCase aplica ajustes monetarios a líneas de pauta y facturas.
//
// Cada ajuste es una operación de dos escrituras que viaja en una sola
// transacción: sobreescribir el valor (semántica de "set", no incremento) y
// agregar una entrada inmutable al change log con valor anterior, valor nuevo,
// razón y actor. Si cualquiera de las dos falla, la transacción se revierte
// completa: nunca queda un ajuste sin rastro ni un rastro sin ajuste.
type AdjustmentUseCase struct {
	tx AdjustmentTxRunner
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(tx AdjustmentTxRunner) *AdjustmentUseCase {
	return &AdjustmentUseCase{tx: tx}
}

// AdjustLineItem sobreescribe el ajuste de una línea de pauta y registra la
// entrada de auditoría. La razón es obligatoria: una entrada sin razón no
// tiene valor de auditoría.
func (uc *AdjustmentUseCase) AdjustLineItem(
	ctx context.Context,
	companyID, actorID, lineItemID string,
	in dto.AdjustmentRequest,
) (*dto.ChangeLogEntryResponse, error) {
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.ChangeLogEntry
	err := uc.tx.RunAdjustment(ctx, func(
		_ repository.InvoiceRepository,
		lineItemRepo repository.LineItemRepository,
		changeLogRepo repository.ChangeLogRepository,
	) error {
		item, err := lineItemRepo.GetByID(companyID, lineItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		now := time.Now()
		entry := newEntry(companyID, actorID, entity.ChangeLogEntityLineItem, item.ID,
			FieldAdjustments, item.Adjustments, in.NewValue, in.Reason, now)
		entry.InvoiceID = item.InvoiceID

		if err := lineItemRepo.UpdateAdjustments(companyID, item.ID, in.NewValue, now); err != nil {
			return err
		}
		if err := changeLogRepo.Append(entry); err != nil {
			return err
		}
		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toChangeLogResponse(created), nil
}

// AdjustInvoice sobreescribe el total de una factura y registra la entrada de
// auditoría correspondiente.
func (uc *AdjustmentUseCase) AdjustInvoice(
	ctx context.Context,
	companyID, actorID, invoiceID string,
	in dto.AdjustmentRequest,
) (*dto.ChangeLogEntryResponse, error) {
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	var created *entity.ChangeLogEntry
	err := uc.tx.RunAdjustment(ctx, func(
		invoiceRepo repository.InvoiceRepository,
		_ repository.LineItemRepository,
		changeLogRepo repository.ChangeLogRepository,
	) error {
		invoice, err := invoiceRepo.GetByID(companyID, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return domain.ErrNotFound
		}
		if invoice.Status == entity.InvoiceStatusCancelled {
			return domain.ErrConflict // una factura cancelada no se ajusta
		}
		now := time.Now()
		entry := newEntry(companyID, actorID, entity.ChangeLogEntityInvoice, invoice.ID,
			FieldTotalAmount, invoice.TotalAmount, in.NewValue, in.Reason, now)
		entry.InvoiceID = &invoice.ID

		if err := invoiceRepo.UpdateTotal(companyID, invoice.ID, in.NewValue, now); err != nil {
			return err
		}
		if err := changeLogRepo.Append(entry); err != nil {
			return err
		}
		created = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toChangeLogResponse(created), nil
}

// newEntry arma la entrada de auditoría con timestamp asignado al momento de la
// escritura y valores anterior/nuevo en forma textual.
func newEntry(companyID, actorID, entityType, entityID, field string, oldValue, newValue decimal.Decimal, reason string, now time.Time) *entity.ChangeLogEntry {
	return &entity.ChangeLogEntry{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		EntityType: entityType,
		EntityID:   entityID,
		Field:      field,
		OldValue:   oldValue.String(),
		NewValue:   newValue.String(),
		Reason:     reason,
		Actor:      actorID,
		CreatedAt:  now,
	}
}

func toChangeLogResponse(e *entity.ChangeLogEntry) *dto.ChangeLogEntryResponse {
	out := &dto.ChangeLogEntryResponse{
		ID:         e.ID,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Field:      e.Field,
		OldValue:   e.OldValue,
		NewValue:   e.NewValue,
		Reason:     e.Reason,
		Actor:      e.Actor,
		Timestamp:  e.CreatedAt.Format(time.RFC3339),
	}
	if e.InvoiceID != nil {
		out.InvoiceID = *e.InvoiceID
	}
	return out
}
