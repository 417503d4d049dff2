package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Pauta-api/internal/application/billing"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// Ensure TxRunner implements billing.AdjustmentTxRunner.
var _ billing.AdjustmentTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunAdjustment inicia una transacción, ejecuta fn con repos atados a la tx y
// hace Commit o Rollback. La mutación del ajuste y el Append del change log
// quedan en la misma transacción: o se persisten ambos o ninguno.
func (r *TxRunner) RunAdjustment(ctx context.Context, fn func(
	invoiceRepo repository.InvoiceRepository,
	lineItemRepo repository.LineItemRepository,
	changeLogRepo repository.ChangeLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewInvoiceRepository(tx)
	lineItemRepo := NewLineItemRepository(tx)
	changeLogRepo := NewChangeLogRepository(tx)

	if err := fn(invoiceRepo, lineItemRepo, changeLogRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
