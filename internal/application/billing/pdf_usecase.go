package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Pauta-api/internal/domain"
	"github.com/jhoicas/Pauta-api/internal/domain/entity"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// InvoicePDFData agrega todo lo que el generador necesita para render.
type InvoicePDFData struct {
	Invoice   *entity.Invoice
	Campaign  *entity.Campaign
	Company   *entity.Company
	LineItems []*entity.LineItem
}

// PDFUseCase arma los datos de una factura y delega el render al generador.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	campaignRepo repository.CampaignRepository
	companyRepo  repository.CompanyRepository
	lineItemRepo repository.LineItemRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	campaignRepo repository.CampaignRepository,
	companyRepo repository.CompanyRepository,
	lineItemRepo repository.LineItemRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		campaignRepo: campaignRepo,
		companyRepo:  companyRepo,
		lineItemRepo: lineItemRepo,
		generator:    generator,
	}
}

// GenerateInvoicePDF genera el PDF de la factura y devuelve bytes + nombre de
// archivo sugerido (sin extensión).
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	invoice, err := uc.invoiceRepo.GetByID(companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if invoice == nil {
		return nil, "", domain.ErrNotFound
	}
	campaign, err := uc.campaignRepo.GetByID(companyID, invoice.CampaignID)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", err
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}
	items, err := uc.lineItemsByInvoice(companyID, invoiceID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := uc.generator.GenerateInvoicePDF(ctx, &InvoicePDFData{
		Invoice:   invoice,
		Campaign:  campaign,
		Company:   company,
		LineItems: items,
	})
	if err != nil {
		return nil, "", fmt.Errorf("generar pdf de factura %s: %w", invoice.InvoiceNumber, err)
	}
	return pdf, "invoice_" + invoice.InvoiceNumber, nil
}

// lineItemsByInvoice recorre las páginas del listado filtrado por factura.
func (uc *PDFUseCase) lineItemsByInvoice(companyID, invoiceID string) ([]*entity.LineItem, error) {
	var items []*entity.LineItem
	cursor := ""
	for {
		page, next, err := uc.lineItemRepo.List(companyID, repository.ListQuery{
			InvoiceID: invoiceID,
			PageSize:  100,
			Cursor:    cursor,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, page...)
		if next == "" {
			return items, nil
		}
		cursor = next
	}
}
