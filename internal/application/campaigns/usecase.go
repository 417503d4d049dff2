package campaigns

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pauta-api/internal/application/dto"
	"github.com/jhoicas/Pauta-api/internal/domain"
	"github.com/jhoicas/Pauta-api/internal/domain/entity"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// CampaignUseCase casos de uso CRUD y listado de campañas.
type CampaignUseCase struct {
	repo         repository.CampaignRepository
	invoiceRepo  repository.InvoiceRepository
	lineItemRepo repository.LineItemRepository
}

// NewCampaignUseCase construye el caso de uso.
func NewCampaignUseCase(
	repo repository.CampaignRepository,
	invoiceRepo repository.InvoiceRepository,
	lineItemRepo repository.LineItemRepository,
) *CampaignUseCase {
	return &CampaignUseCase{repo: repo, invoiceRepo: invoiceRepo, lineItemRepo: lineItemRepo}
}

// Create crea una campaña en estado draft (o el estado válido indicado).
func (uc *CampaignUseCase) Create(companyID string, in dto.CreateCampaignRequest) (*dto.CampaignResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.CampaignStatusDraft
	}
	if !entity.ValidCampaignStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	start, err := time.Parse(dto.DateLayout, in.StartDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	end, err := time.Parse(dto.DateLayout, in.EndDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	if end.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	campaign := &entity.Campaign{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Status:    status,
		StartDate: start,
		EndDate:   end,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(campaign); err != nil {
		return nil, err
	}
	return toCampaignResponse(campaign, nil, nil), nil
}

// GetByID obtiene el detalle de una campaña con sus facturas y líneas derivadas.
func (uc *CampaignUseCase) GetByID(companyID, id string) (*dto.CampaignResponse, error) {
	campaign, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrNotFound
	}
	invoiceIDs, err := uc.invoiceRepo.IDsByCampaign(companyID, id)
	if err != nil {
		return nil, err
	}
	lineItemIDs, err := uc.lineItemRepo.IDsByCampaign(companyID, id)
	if err != nil {
		return nil, err
	}
	return toCampaignResponse(campaign, invoiceIDs, lineItemIDs), nil
}

// List devuelve una página de campañas bajo el filtro uniforme.
func (uc *CampaignUseCase) List(companyID string, in dto.ListRequest) (*dto.CampaignPageResponse, error) {
	q, err := in.ToQuery()
	if err != nil {
		return nil, err
	}
	list, next, err := uc.repo.List(companyID, q)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CampaignResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCampaignResponse(c, nil, nil))
	}
	return &dto.CampaignPageResponse{
		Items:    items,
		PageMeta: dto.NewPageMeta(in.Page, in.PageSize, next),
	}, nil
}

// Update actualiza nombre, estado y fechas de la campaña.
func (uc *CampaignUseCase) Update(companyID, id string, in dto.UpdateCampaignRequest) (*dto.CampaignResponse, error) {
	campaign, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		campaign.Name = in.Name
	}
	if in.Status != "" {
		if !entity.ValidCampaignStatus(in.Status) {
			return nil, domain.ErrInvalidStatus
		}
		campaign.Status = in.Status
	}
	if in.StartDate != "" {
		start, err := time.Parse(dto.DateLayout, in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		campaign.StartDate = start
	}
	if in.EndDate != "" {
		end, err := time.Parse(dto.DateLayout, in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		campaign.EndDate = end
	}
	if campaign.EndDate.Before(campaign.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	campaign.UpdatedAt = time.Now()
	if err := uc.repo.Update(campaign); err != nil {
		return nil, err
	}
	return toCampaignResponse(campaign, nil, nil), nil
}

// Delete elimina una campaña sin facturas asociadas.
func (uc *CampaignUseCase) Delete(companyID, id string) error {
	campaign, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return err
	}
	if campaign == nil {
		return domain.ErrNotFound
	}
	invoiceIDs, err := uc.invoiceRepo.IDsByCampaign(companyID, id)
	if err != nil {
		return err
	}
	if len(invoiceIDs) > 0 {
		return domain.ErrConflict // primero eliminar o reasignar las facturas
	}
	return uc.repo.Delete(companyID, id)
}

func toCampaignResponse(c *entity.Campaign, invoiceIDs, lineItemIDs []string) *dto.CampaignResponse {
	return &dto.CampaignResponse{
		ID:          c.ID,
		CompanyID:   c.CompanyID,
		Name:        c.Name,
		Status:      c.Status,
		StartDate:   c.StartDate.Format(dto.DateLayout),
		EndDate:     c.EndDate.Format(dto.DateLayout),
		InvoiceIDs:  invoiceIDs,
		LineItemIDs: lineItemIDs,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
}
