package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pauta-api/internal/application/dto"
	"github.com/jhoicas/Pauta-api/internal/domain"
	"github.com/jhoicas/Pauta-api/internal/domain/entity"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// InvoiceUseCase casos de uso CRUD y listado de facturas de campaña.
type InvoiceUseCase struct {
	repo          repository.InvoiceRepository
	campaignRepo  repository.CampaignRepository
	lineItemRepo  repository.LineItemRepository
	changeLogRepo repository.ChangeLogRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	repo repository.InvoiceRepository,
	campaignRepo repository.CampaignRepository,
	lineItemRepo repository.LineItemRepository,
	changeLogRepo repository.ChangeLogRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		repo:          repo,
		campaignRepo:  campaignRepo,
		lineItemRepo:  lineItemRepo,
		changeLogRepo: changeLogRepo,
	}
}

// Create crea una factura para una campaña existente y, opcionalmente, asocia
// líneas de pauta ya registradas.
func (uc *InvoiceUseCase) Create(companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CampaignID == "" || in.InvoiceNumber == "" || in.ClientName == "" || in.Currency == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.InvoiceStatusDraft
	}
	if !entity.ValidInvoiceStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	campaign, err := uc.campaignRepo.GetByID(companyID, in.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrNotFound
	}
	if existing, err := uc.repo.GetByNumber(companyID, in.InvoiceNumber); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	issue, err := time.Parse(dto.DateLayout, in.IssueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	due, err := time.Parse(dto.DateLayout, in.DueDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	invoice := &entity.Invoice{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CampaignID:    in.CampaignID,
		InvoiceNumber: in.InvoiceNumber,
		TotalAmount:   in.TotalAmount,
		Currency:      in.Currency,
		IssueDate:     issue,
		DueDate:       due,
		Status:        status,
		ClientName:    in.ClientName,
		ClientEmail:   in.ClientEmail,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(invoice); err != nil {
		return nil, err
	}
	for _, lineItemID := range in.LineItemIDs {
		item, err := uc.lineItemRepo.GetByID(companyID, lineItemID)
		if err != nil {
			return nil, err
		}
		if item == nil || item.CampaignID != in.CampaignID {
			return nil, domain.ErrInvalidInput
		}
		item.InvoiceID = &invoice.ID
		item.UpdatedAt = now
		if err := uc.lineItemRepo.Update(item); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(invoice, in.LineItemIDs, nil), nil
}

// GetByID obtiene el detalle completo de una factura: líneas asociadas e IDs de
// los ajustes registrados en el change log.
func (uc *InvoiceUseCase) GetByID(companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	lineItemIDs, err := uc.lineItemRepo.IDsByInvoice(companyID, id)
	if err != nil {
		return nil, err
	}
	adjustmentIDs, err := uc.adjustmentIDs(companyID, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(invoice, lineItemIDs, adjustmentIDs), nil
}

// List devuelve una página de facturas bajo el filtro uniforme.
func (uc *InvoiceUseCase) List(companyID string, in dto.ListRequest) (*dto.InvoicePageResponse, error) {
	q, err := in.ToQuery()
	if err != nil {
		return nil, err
	}
	list, next, err := uc.repo.List(companyID, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *uc.toResponse(inv, nil, nil))
	}
	return &dto.InvoicePageResponse{
		Items:    items,
		PageMeta: dto.NewPageMeta(in.Page, in.PageSize, next),
	}, nil
}

// Update actualiza estado y datos del cliente. Al pasar a "paid" se registra
// la fecha de pago (la enviada o la actual).
func (uc *InvoiceUseCase) Update(companyID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoice, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	if in.Status != "" {
		if !entity.ValidInvoiceStatus(in.Status) {
			return nil, domain.ErrInvalidStatus
		}
		invoice.Status = in.Status
		if in.Status == entity.InvoiceStatusPaid && invoice.PaidDate == nil {
			paid := time.Now()
			if in.PaidDate != "" {
				p, err := time.Parse(dto.DateLayout, in.PaidDate)
				if err != nil {
					return nil, domain.ErrInvalidInput
				}
				paid = p
			}
			invoice.PaidDate = &paid
		}
	}
	if in.DueDate != "" {
		due, err := time.Parse(dto.DateLayout, in.DueDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		invoice.DueDate = due
	}
	if in.ClientName != "" {
		invoice.ClientName = in.ClientName
	}
	if in.ClientEmail != "" {
		invoice.ClientEmail = in.ClientEmail
	}
	invoice.UpdatedAt = time.Now()
	if err := uc.repo.Update(invoice); err != nil {
		return nil, err
	}
	return uc.toResponse(invoice, nil, nil), nil
}

// Delete elimina una factura en borrador. Facturas emitidas no se borran:
// se cancelan, para no perder el historial de ajustes asociado.
func (uc *InvoiceUseCase) Delete(companyID, id string) error {
	invoice, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return domain.ErrNotFound
	}
	if invoice.Status != entity.InvoiceStatusDraft {
		return domain.ErrConflict
	}
	return uc.repo.Delete(companyID, id)
}

// adjustmentIDs recorre el change log de la factura página a página y devuelve
// los IDs de todas sus entradas.
func (uc *InvoiceUseCase) adjustmentIDs(companyID, invoiceID string) ([]string, error) {
	var ids []string
	cursor := ""
	for {
		entries, next, err := uc.changeLogRepo.ListByInvoice(companyID, invoiceID, repository.ListQuery{
			PageSize: 100,
			Cursor:   cursor,
		})
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			ids = append(ids, e.ID)
		}
		if next == "" {
			return ids, nil
		}
		cursor = next
	}
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, lineItemIDs, adjustmentIDs []string) *dto.InvoiceResponse {
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		CompanyID:     inv.CompanyID,
		CampaignID:    inv.CampaignID,
		InvoiceNumber: inv.InvoiceNumber,
		TotalAmount:   inv.TotalAmount,
		Currency:      inv.Currency,
		IssueDate:     inv.IssueDate.Format(dto.DateLayout),
		DueDate:       inv.DueDate.Format(dto.DateLayout),
		Status:        inv.Status,
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		LineItemIDs:   lineItemIDs,
		AdjustmentIDs: adjustmentIDs,
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     inv.UpdatedAt.Format(time.RFC3339),
	}
	if inv.PaidDate != nil {
		out.PaidDate = inv.PaidDate.Format(dto.DateLayout)
	}
	return out
}
