package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Pauta-api/internal/application/auth"
	"github.com/jhoicas/Pauta-api/internal/application/billing"
	"github.com/jhoicas/Pauta-api/internal/application/campaigns"
	"github.com/jhoicas/Pauta-api/internal/application/usecase"
	"github.com/jhoicas/Pauta-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	ModuleSvc   *usecase.ModuleService
	AuthUC      *auth.AuthUseCase
	CampaignUC  *campaigns.CampaignUseCase
	InvoiceUC   *billing.InvoiceUseCase
	LineItemUC  *billing.LineItemUseCase
	AdjustUC    *billing.AdjustmentUseCase
	ChangeLogUC *billing.ChangeLogUseCase
	ExportUC    *billing.ExportUseCase
	PDFUC       *billing.PDFUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Campaigns (protegido, módulo "campaigns")
	campaignsGroup := protected.Group("/campaigns", RequireModule(entity.ModuleCampaigns, deps.ModuleSvc))
	campaignHandler := NewCampaignHandler(deps.CampaignUC)
	campaignsGroup.Post("/", campaignHandler.Create)
	campaignsGroup.Get("/", campaignHandler.List)
	campaignsGroup.Get("/:id", campaignHandler.GetByID)
	campaignsGroup.Put("/:id", campaignHandler.Update)
	campaignsGroup.Delete("/:id", RequireRole(entity.RoleAdmin), campaignHandler.Delete)

	// Invoices (protegido, módulo "billing")
	invoices := protected.Group("/invoices", RequireModule(entity.ModuleBilling, deps.ModuleSvc))
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.AdjustUC, deps.ChangeLogUC, deps.PDFUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleFacturador), invoiceHandler.Delete)
	invoices.Post("/:id/adjust", RequireRole(entity.RoleAdmin, entity.RoleFacturador), invoiceHandler.Adjust)
	invoices.Get("/:id/changelog", invoiceHandler.ChangeLog)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	// Line items (protegido, módulo "billing")
	lineItems := protected.Group("/line-items", RequireModule(entity.ModuleBilling, deps.ModuleSvc))
	lineItemHandler := NewLineItemHandler(deps.LineItemUC, deps.AdjustUC)
	lineItems.Post("/", lineItemHandler.Create)
	lineItems.Get("/", lineItemHandler.List)
	lineItems.Get("/:id", lineItemHandler.GetByID)
	lineItems.Put("/:id", lineItemHandler.Update)
	lineItems.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleFacturador), lineItemHandler.Delete)
	lineItems.Post("/:id/adjust", RequireRole(entity.RoleAdmin, entity.RoleFacturador), lineItemHandler.Adjust)

	// Exports CSV (protegido, módulo "exports")
	exports := protected.Group("/exports", RequireModule(entity.ModuleExports, deps.ModuleSvc))
	exportHandler := NewExportHandler(deps.ExportUC)
	exports.Get("/campaigns", exportHandler.Campaigns)
	exports.Get("/invoices", exportHandler.Invoices)
	exports.Get("/line-items", exportHandler.LineItems)
	exports.Get("/invoices/:id/changelog", exportHandler.InvoiceChangeLog)
}
