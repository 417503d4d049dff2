package billing

import (
	"bytes"
	"fmt"

	"github.com/jhoicas/Pauta-api/internal/application/dto"
	"github.com/jhoicas/Pauta-api/internal/domain"
	"github.com/jhoicas/Pauta-api/internal/domain/export"
	"github.com/jhoicas/Pauta-api/internal/domain/paging"
	"github.com/jhoicas/Pauta-api/internal/domain/repository"
)

// Artifact es un artefacto CSV listo para descarga. Content vacío significa
// que no había registros y no debe entregarse ningún archivo (no-op).
type Artifact struct {
	Filename string // sin extensión; la capa HTTP agrega ".csv"
	Content  []byte
}

// ExportUseCase produce artefactos CSV del conjunto filtrado completo.
//
// El recorrido usa el controlador de paginación: se consulta página a página
// con el mismo filtro y tamaño de página, registrando el cursor de cada
// resultado y avanzando secuencialmente (+1) hasta agotar los datos. El
// controlador se crea por exportación y se descarta al final, de modo que
// ningún cursor sobrevive al predicado de filtros que lo produjo.
type ExportUseCase struct {
	campaignRepo  repository.CampaignRepository
	invoiceRepo   repository.InvoiceRepository
	lineItemRepo  repository.LineItemRepository
	changeLogRepo repository.ChangeLogRepository
	exporter      *export.CSVExporter
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	campaignRepo repository.CampaignRepository,
	invoiceRepo repository.InvoiceRepository,
	lineItemRepo repository.LineItemRepository,
	changeLogRepo repository.ChangeLogRepository,
	exporter *export.CSVExporter,
) *ExportUseCase {
	return &ExportUseCase{
		campaignRepo:  campaignRepo,
		invoiceRepo:   invoiceRepo,
		lineItemRepo:  lineItemRepo,
		changeLogRepo: changeLogRepo,
		exporter:      exporter,
	}
}

var campaignColumns = []export.Column{
	{Field: "name", Header: "Name"},
	{Field: "status", Header: "Status"},
	{Field: "startDate", Header: "Start Date"},
	{Field: "endDate", Header: "End Date"},
	{Field: "createdAt", Header: "Created At"},
}

// ExportCampaigns exporta el listado filtrado completo de campañas.
func (uc *ExportUseCase) ExportCampaigns(companyID string, in dto.ListRequest) (*Artifact, error) {
	rows, err := uc.collect(in, func(q repository.ListQuery) ([]export.Row, string, error) {
		list, next, err := uc.campaignRepo.List(companyID, q)
		if err != nil {
			return nil, "", err
		}
		out := make([]export.Row, 0, len(list))
		for _, c := range list {
			out = append(out, export.Row{
				"name":      c.Name,
				"status":    c.Status,
				"startDate": c.StartDate,
				"endDate":   c.EndDate,
				"createdAt": c.CreatedAt,
			})
		}
		return out, next, nil
	})
	if err != nil {
		return nil, err
	}
	return uc.artifact("campaigns", rows, campaignColumns)
}

var invoiceColumns = []export.Column{
	{Field: "invoiceNumber", Header: "Invoice Number"},
	{Field: "clientName", Header: "Client Name"},
	{Field: "clientEmail", Header: "Client Email"},
	{Field: "totalAmount", Header: "Total Amount"},
	{Field: "currency", Header: "Currency"},
	{Field: "status", Header: "Status"},
	{Field: "issueDate", Header: "Issue Date"},
	{Field: "dueDate", Header: "Due Date"},
	{Field: "paidDate", Header: "Paid Date"},
}

// ExportInvoices exporta el listado filtrado completo de facturas.
func (uc *ExportUseCase) ExportInvoices(companyID string, in dto.ListRequest) (*Artifact, error) {
	rows, err := uc.collect(in, func(q repository.ListQuery) ([]export.Row, string, error) {
		list, next, err := uc.invoiceRepo.List(companyID, q)
		if err != nil {
			return nil, "", err
		}
		out := make([]export.Row, 0, len(list))
		for _, inv := range list {
			out = append(out, export.Row{
				"invoiceNumber": inv.InvoiceNumber,
				"clientName":    inv.ClientName,
				"clientEmail":   inv.ClientEmail,
				"totalAmount":   inv.TotalAmount,
				"currency":      inv.Currency,
				"status":        inv.Status,
				"issueDate":     inv.IssueDate,
				"dueDate":       inv.DueDate,
				"paidDate":      inv.PaidDate,
			})
		}
		return out, next, nil
	})
	if err != nil {
		return nil, err
	}
	return uc.artifact("invoices", rows, invoiceColumns)
}

var lineItemColumns = []export.Column{
	{Field: "name", Header: "Name"},
	{Field: "bookedAmount", Header: "Booked Amount"},
	{Field: "actualAmount", Header: "Actual Amount"},
	{Field: "adjustments", Header: "Adjustments"},
	{Field: "effectiveAmount", Header: "Effective Amount"},
	{Field: "invoiceId", Header: "Invoice Id"},
}

// ExportLineItems exporta el listado filtrado completo de líneas de pauta.
func (uc *ExportUseCase) ExportLineItems(companyID string, in dto.ListRequest) (*Artifact, error) {
	rows, err := uc.collect(in, func(q repository.ListQuery) ([]export.Row, string, error) {
		list, next, err := uc.lineItemRepo.List(companyID, q)
		if err != nil {
			return nil, "", err
		}
		out := make([]export.Row, 0, len(list))
		for _, li := range list {
			row := export.Row{
				"name":            li.Name,
				"bookedAmount":    li.BookedAmount,
				"actualAmount":    li.ActualAmount,
				"adjustments":     li.Adjustments,
				"effectiveAmount": li.EffectiveAmount(),
				"invoiceId":       nil,
			}
			if li.InvoiceID != nil {
				row["invoiceId"] = *li.InvoiceID
			}
			out = append(out, row)
		}
		return out, next, nil
	})
	if err != nil {
		return nil, err
	}
	return uc.artifact("line_items", rows, lineItemColumns)
}

var changeLogColumns = []export.Column{
	{Field: "timestamp", Header: "Timestamp"},
	{Field: "entityType", Header: "Entity Type"},
	{Field: "entityId", Header: "Entity Id"},
	{Field: "field", Header: "Field"},
	{Field: "oldValue", Header: "Old Value"},
	{Field: "newValue", Header: "New Value"},
	{Field: "reason", Header: "Reason"},
	{Field: "actor", Header: "Actor"},
}

// ExportChangeLog exporta el historial completo de ajustes de una factura.
func (uc *ExportUseCase) ExportChangeLog(companyID, invoiceID string, in dto.ListRequest) (*Artifact, error) {
	invoice, err := uc.invoiceRepo.GetByID(companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.collect(in, func(q repository.ListQuery) ([]export.Row, string, error) {
		entries, next, err := uc.changeLogRepo.ListByInvoice(companyID, invoiceID, q)
		if err != nil {
			return nil, "", err
		}
		out := make([]export.Row, 0, len(entries))
		for _, e := range entries {
			out = append(out, export.Row{
				"timestamp":  e.CreatedAt,
				"entityType": e.EntityType,
				"entityId":   e.EntityID,
				"field":      e.Field,
				"oldValue":   e.OldValue,
				"newValue":   e.NewValue,
				"reason":     e.Reason,
				"actor":      e.Actor,
			})
		}
		return out, next, nil
	})
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("invoice_%s_changelog", invoice.InvoiceNumber)
	return uc.artifact(name, rows, changeLogColumns)
}

// collect recorre todas las páginas del filtro con el controlador de
// paginación: avance estrictamente secuencial, un cursor por página.
func (uc *ExportUseCase) collect(in dto.ListRequest, fetch func(repository.ListQuery) ([]export.Row, string, error)) ([]export.Row, error) {
	q, err := in.ToQuery()
	if err != nil {
		return nil, err
	}
	ctrl := paging.NewController(q.PageSize)
	cursor, _ := ctrl.AdvanceTo(0, q.PageSize)

	var rows []export.Row
	for {
		q.Cursor = cursor
		pageRows, next, err := fetch(q)
		if err != nil {
			return nil, err
		}
		ctrl.RecordPageResult(next)
		rows = append(rows, pageRows...)
		if !ctrl.HasMore() {
			return rows, nil
		}
		cursor, _ = ctrl.AdvanceTo(ctrl.PageIndex()+1, ctrl.PageSize())
	}
}

func (uc *ExportUseCase) artifact(name string, rows []export.Row, cols []export.Column) (*Artifact, error) {
	var buf bytes.Buffer
	if err := uc.exporter.Write(&buf, rows, cols); err != nil {
		return nil, err
	}
	return &Artifact{Filename: name, Content: buf.Bytes()}, nil
}
