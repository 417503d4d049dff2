package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pauta-api/internal/application/billing"
	"github.com/jhoicas/Pauta-api/internal/application/dto"
	"github.com/jhoicas/Pauta-api/internal/domain"
	"github.com/jhoicas/Pauta-api/internal/domain/entity"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes transaccionales
//
// world simula el estado persistido. El fake de TxRunner toma un snapshot antes
// de ejecutar el callback y lo restaura si el callback o el commit fallan,
// reproduciendo la semántica de rollback de PostgreSQL que el caso de uso
// asume: la mutación del ajuste y la entrada del change log viven o mueren
// juntas.
// ──────────────────────────────────────────────────────────────────────────────

type world struct {
	lineItems map[string]entity.LineItem
	invoices  map[string]entity.Invoice
	entries   []entity.ChangeLogEntry
}

func (w *world) snapshot() world {
	cp := world{
		lineItems: make(map[string]entity.LineItem, len(w.lineItems)),
		invoices:  make(map[string]entity.Invoice, len(w.invoices)),
		entries:   append([]entity.ChangeLogEntry(nil), w.entries...),
	}
	for k, v := range w.lineItems {
		cp.lineItems[k] = v
	}
	for k, v := range w.invoices {
		cp.invoices[k] = v
	}
	return cp
}

type fakeTxRunner struct {
	w         *world
	commitErr error
}

func (f *fakeTxRunner) RunAdjustment(_ context.Context, fn func(
	repository.InvoiceRepository,
	repository.LineItemRepository,
	repository.ChangeLogRepository,
) error) error {
	snap := f.w.snapshot()
	err := fn(&fakeInvoiceRepo{w: f.w}, &fakeLineItemRepo{w: f.w}, &fakeChangeLogRepo{w: f.w})
	if err == nil {
		err = f.commitErr
	}
	if err != nil {
		*f.w = snap // rollback
		return err
	}
	return nil
}

type fakeLineItemRepo struct{ w *world }

func (r *fakeLineItemRepo) Create(*entity.LineItem) error { panic("no usado") }
func (r *fakeLineItemRepo) GetByID(companyID, id string) (*entity.LineItem, error) {
	li, ok := r.w.lineItems[id]
	if !ok || li.CompanyID != companyID {
		return nil, nil
	}
	return &li, nil
}
func (r *fakeLineItemRepo) List(string, repository.ListQuery) ([]*entity.LineItem, string, error) {
	panic("no usado")
}
func (r *fakeLineItemRepo) IDsByCampaign(string, string) ([]string, error) { panic("no usado") }
func (r *fakeLineItemRepo) IDsByInvoice(string, string) ([]string, error)  { panic("no usado") }
func (r *fakeLineItemRepo) Update(*entity.LineItem) error                  { panic("no usado") }
func (r *fakeLineItemRepo) UpdateAdjustments(companyID, id string, value decimal.Decimal, updatedAt time.Time) error {
	li := r.w.lineItems[id]
	li.Adjustments = value
	li.UpdatedAt = updatedAt
	r.w.lineItems[id] = li
	return nil
}
func (r *fakeLineItemRepo) Delete(string, string) error { panic("no usado") }

type fakeInvoiceRepo struct{ w *world }

func (r *fakeInvoiceRepo) Create(*entity.Invoice) error { panic("no usado") }
func (r *fakeInvoiceRepo) GetByID(companyID, id string) (*entity.Invoice, error) {
	inv, ok := r.w.invoices[id]
	if !ok || inv.CompanyID != companyID {
		return nil, nil
	}
	return &inv, nil
}
func (r *fakeInvoiceRepo) GetByNumber(string, string) (*entity.Invoice, error) { panic("no usado") }
func (r *fakeInvoiceRepo) List(string, repository.ListQuery) ([]*entity.Invoice, string, error) {
	panic("no usado")
}
func (r *fakeInvoiceRepo) IDsByCampaign(string, string) ([]string, error) { panic("no usado") }
func (r *fakeInvoiceRepo) Update(*entity.Invoice) error                   { panic("no usado") }
func (r *fakeInvoiceRepo) UpdateTotal(companyID, id string, total decimal.Decimal, updatedAt time.Time) error {
	inv := r.w.invoices[id]
	inv.TotalAmount = total
	inv.UpdatedAt = updatedAt
	r.w.invoices[id] = inv
	return nil
}
func (r *fakeInvoiceRepo) Delete(string, string) error { panic("no usado") }

type fakeChangeLogRepo struct{ w *world }

func (r *fakeChangeLogRepo) Append(e *entity.ChangeLogEntry) error {
	r.w.entries = append(r.w.entries, *e)
	return nil
}
func (r *fakeChangeLogRepo) ListByInvoice(string, string, repository.ListQuery) ([]*entity.ChangeLogEntry, string, error) {
	panic("no usado")
}
func (r *fakeChangeLogRepo) ListByEntity(string, string, string, repository.ListQuery) ([]*entity.ChangeLogEntry, string, error) {
	panic("no usado")
}

// ── helpers ───────────────────────────────────────────────────────────────────

const (
	testCompanyID = "co-1"
	testActorID   = "user-1"
)

func newWorld() *world {
	invoiceID := "inv-1"
	return &world{
		lineItems: map[string]entity.LineItem{
			"li-1": {
				ID:          "li-1",
				CompanyID:   testCompanyID,
				CampaignID:  "camp-1",
				InvoiceID:   &invoiceID,
				Name:        "Pauta display marzo",
				Adjustments: decimal.RequireFromString("100.00"),
			},
		},
		invoices: map[string]entity.Invoice{
			"inv-1": {
				ID:          "inv-1",
				CompanyID:   testCompanyID,
				CampaignID:  "camp-1",
				TotalAmount: decimal.RequireFromString("5000.00"),
				Status:      entity.InvoiceStatusSent,
			},
		},
	}
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestAdjustLineItem_SobreescribeYAudita(t *testing.T) {
	w := newWorld()
	uc := billing.NewAdjustmentUseCase(&fakeTxRunner{w: w})

	resp, err := uc.AdjustLineItem(context.Background(), testCompanyID, testActorID, "li-1", dto.AdjustmentRequest{
		NewValue: decimal.RequireFromString("-250.50"),
		Reason:   "descuento por make-good de impresiones",
	})

	require.NoError(t, err)
	// Semántica de "set": el valor queda en -250.50, no en 100-250.50.
	assert.Equal(t, "-250.5", w.lineItems["li-1"].Adjustments.String())

	require.Len(t, w.entries, 1, "exactamente una entrada de auditoría por ajuste")
	entry := w.entries[0]
	assert.Equal(t, entity.ChangeLogEntityLineItem, entry.EntityType)
	assert.Equal(t, "li-1", entry.EntityID)
	assert.Equal(t, "adjustments", entry.Field)
	assert.Equal(t, "100", entry.OldValue)
	assert.Equal(t, "-250.5", entry.NewValue)
	assert.Equal(t, "descuento por make-good de impresiones", entry.Reason)
	assert.Equal(t, testActorID, entry.Actor)
	require.NotNil(t, entry.InvoiceID)
	assert.Equal(t, "inv-1", *entry.InvoiceID, "la entrada hereda la factura de la línea")

	assert.Equal(t, entry.ID, resp.ID)
	assert.Equal(t, "inv-1", resp.InvoiceID)
}

func TestAdjustLineItem_CommitFallidoNoDejaAuditoriaHuerfana(t *testing.T) {
	w := newWorld()
	uc := billing.NewAdjustmentUseCase(&fakeTxRunner{w: w, commitErr: errors.New("commit: conexión perdida")})

	_, err := uc.AdjustLineItem(context.Background(), testCompanyID, testActorID, "li-1", dto.AdjustmentRequest{
		NewValue: decimal.RequireFromString("999"),
		Reason:   "ajuste que no debe quedar",
	})

	require.Error(t, err)
	assert.Empty(t, w.entries, "ninguna entrada con la razón de esta transacción debe existir")
	assert.Equal(t, "100", w.lineItems["li-1"].Adjustments.String(),
		"el valor previo se conserva: rollback completo")
}

func TestAdjustLineItem_RazonVaciaEsInvalida(t *testing.T) {
	w := newWorld()
	uc := billing.NewAdjustmentUseCase(&fakeTxRunner{w: w})

	_, err := uc.AdjustLineItem(context.Background(), testCompanyID, testActorID, "li-1", dto.AdjustmentRequest{
		NewValue: decimal.New(1, 0),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, w.entries)
}

func TestAdjustLineItem_NoExisteONoEsDeLaEmpresa(t *testing.T) {
	w := newWorld()
	uc := billing.NewAdjustmentUseCase(&fakeTxRunner{w: w})

	_, err := uc.AdjustLineItem(context.Background(), "otra-empresa", testActorID, "li-1", dto.AdjustmentRequest{
		NewValue: decimal.New(1, 0),
		Reason:   "x",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, w.entries)
}

func TestAdjustInvoice_SobreescribeTotalYAudita(t *testing.T) {
	w := newWorld()
	uc := billing.NewAdjustmentUseCase(&fakeTxRunner{w: w})

	resp, err := uc.AdjustInvoice(context.Background(), testCompanyID, testActorID, "inv-1", dto.AdjustmentRequest{
		NewValue: decimal.RequireFromString("4750.00"),
		Reason:   "nota crédito parcial",
	})

	require.NoError(t, err)
	assert.Equal(t, "4750", w.invoices["inv-1"].TotalAmount.String())
	require.Len(t, w.entries, 1)
	assert.Equal(t, "total_amount", w.entries[0].Field)
	assert.Equal(t, "5000", w.entries[0].OldValue)
	assert.Equal(t, "4750", w.entries[0].NewValue)
	assert.Equal(t, "inv-1", resp.InvoiceID)
}

func TestAdjustInvoice_CanceladaNoSeAjusta(t *testing.T) {
	w := newWorld()
	inv := w.invoices["inv-1"]
	inv.Status = entity.InvoiceStatusCancelled
	w.invoices["inv-1"] = inv
	uc := billing.NewAdjustmentUseCase(&fakeTxRunner{w: w})

	_, err := uc.AdjustInvoice(context.Background(), testCompanyID, testActorID, "inv-1", dto.AdjustmentRequest{
		NewValue: decimal.New(1, 0),
		Reason:   "x",
	})

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, w.entries)
	assert.Equal(t, "5000", w.invoices["inv-1"].TotalAmount.String())
}
