package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pauta-api/internal/application/dto"
	"github.com/jhoicas/Pauta-api/internal/domain"
	"github.com/jhoicas/Pauta-api/internal/domain/entity"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// LineItemUseCase casos de uso CRUD y listado de líneas de pauta.
type LineItemUseCase struct {
	repo         repository.LineItemRepository
	campaignRepo repository.CampaignRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewLineItemUseCase construye el caso de uso.
func NewLineItemUseCase(
	repo repository.LineItemRepository,
	campaignRepo repository.CampaignRepository,
	invoiceRepo repository.InvoiceRepository,
) *LineItemUseCase {
	return &LineItemUseCase{repo: repo, campaignRepo: campaignRepo, invoiceRepo: invoiceRepo}
}

// Create registra una línea de pauta en una campaña existente.
func (uc *LineItemUseCase) Create(companyID string, in dto.CreateLineItemRequest) (*dto.LineItemResponse, error) {
	if in.CampaignID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	campaign, err := uc.campaignRepo.GetByID(companyID, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrNotFound
	}
	var invoiceID *string
	if in.InvoiceID != "" {
		invoice, err := uc.invoiceRepo.GetByID(companyID, in.InvoiceID)
		if err != nil {
			return nil, err
		}
		if invoice == nil || invoice.CampaignID != in.CampaignID {
			return nil, domain.ErrInvalidInput
		}
		invoiceID = &in.InvoiceID
	}
	now := time.Now()
	item := &entity.LineItem{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CampaignID:   in.CampaignID,
		InvoiceID:    invoiceID,
		Name:         in.Name,
		BookedAmount: in.BookedAmount,
		ActualAmount: in.ActualAmount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toLineItemResponse(item), nil
}

// GetByID obtiene una línea de pauta.
func (uc *LineItemUseCase) GetByID(companyID, id string) (*dto.LineItemResponse, error) {
	item, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toLineItemResponse(item), nil
}

// List devuelve una página de líneas bajo el filtro uniforme (incluye filtros
// por campaña y por factura).
func (uc *LineItemUseCase) List(companyID string, in dto.ListRequest) (*dto.LineItemPageResponse, error) {
	q, err := in.ToQuery()
	if err != nil {
		return nil, err
	}
	list, next, err := uc.repo.List(companyID, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LineItemResponse, 0, len(list))
	for _, li := range list {
		items = append(items, *toLineItemResponse(li))
	}
	return &dto.LineItemPageResponse{
		Items:    items,
		PageMeta: dto.NewPageMeta(in.Page, in.PageSize, next),
	}, nil
}

// Update actualiza nombre, montos y asociación a factura. El campo adjustments
// no se toca por aquí: solo el workflow de ajuste puede mutarlo.
func (uc *LineItemUseCase) Update(companyID, id string, in dto.UpdateLineItemRequest) (*dto.LineItemResponse, error) {
	item, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		item.Name = in.Name
	}
	if !in.BookedAmount.IsZero() {
		item.BookedAmount = in.BookedAmount
	}
	if !in.ActualAmount.IsZero() {
		item.ActualAmount = in.ActualAmount
	}
	if in.InvoiceID != "" {
		invoice, err := uc.invoiceRepo.GetByID(companyID, in.InvoiceID)
		if err != nil {
			return nil, err
		}
		if invoice == nil || invoice.CampaignID != item.CampaignID {
			return nil, domain.ErrInvalidInput
		}
		item.InvoiceID = &in.InvoiceID
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toLineItemResponse(item), nil
}

// Delete elimina una línea no facturada.
func (uc *LineItemUseCase) Delete(companyID, id string) error {
	item, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	if item.InvoiceID != nil {
		return domain.ErrConflict // desasociar de la factura antes de borrar
	}
	return uc.repo.Delete(companyID, id)
}

func toLineItemResponse(li *entity.LineItem) *dto.LineItemResponse {
	out := &dto.LineItemResponse{
		ID:              li.ID,
		CompanyID:       li.CompanyID,
		CampaignID:      li.CampaignID,
		Name:            li.Name,
		BookedAmount:    li.BookedAmount,
		ActualAmount:    li.ActualAmount,
		Adjustments:     li.Adjustments,
		EffectiveAmount: li.EffectiveAmount(),
		CreatedAt:       li.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       li.UpdatedAt.Format(time.RFC3339),
	}
	if li.InvoiceID != nil {
		out.InvoiceID = *li.InvoiceID
	}
	return out
}
