package repository

import "github.com/jhoicas/Pauta-api/internal/domain/entity"

// ChangeLogRepository define el puerto del historial de ajustes.
// El historial es append-only: no existen Update ni Delete en este puerto y la
// tabla no los admite; la integridad de auditoría depende de ello.
type ChangeLogRepository interface {
	Append(entry *entity.ChangeLogEntry) error
	ListByInvoice(companyID, invoiceID string, q ListQuery) ([]*entity.ChangeLogEntry, string, error)
	ListByEntity(companyID, entityType, entityID string, q ListQuery) ([]*entity.ChangeLogEntry, string, error)
}
