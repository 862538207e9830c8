package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/facturave/facturave-api/internal/application/auth"
	"github.com/facturave/facturave-api/internal/application/billing"
	"github.com/facturave/facturave-api/internal/application/rates"
	"github.com/facturave/facturave-api/internal/application/usecase"
	"github.com/facturave/facturave-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC  *usecase.CompanyUseCase
	ItemUC     *usecase.ItemUseCase
	UserUC     *usecase.UserUseCase
	CustomerUC *billing.CustomerUseCase
	InvoiceUC  *billing.InvoiceUseCase
	PDFUC      *billing.PDFUseCase
	ExportUC   *billing.ExportUseCase
	SalesBook  *billing.SalesBookUseCase
	ControlUC  *billing.ControlNumberUseCase
	RateUC     *rates.RateUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
//
// Política de roles:
//   - admin: todo, incluye usuarios, tasas y lotes de números de control.
//   - facturador: catálogos y ciclo de vida de documentos.
//   - consulta: solo lectura (listados, PDF, libro de ventas).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	escritura := RequireRole(entity.RoleAdmin, entity.RoleFacturador)
	soloAdmin := RequireRole(entity.RoleAdmin)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (creación pública para el alta inicial; el resto protegido)
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Post("/", companyHandler.Create)
	companies.Get("/", AuthMiddleware(deps.JWTSecret), companyHandler.List)
	companies.Get("/:id", AuthMiddleware(deps.JWTSecret), companyHandler.GetByID)
	companies.Put("/:id", AuthMiddleware(deps.JWTSecret), soloAdmin, companyHandler.Update)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", escritura, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", escritura, customerHandler.Update)

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", escritura, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", escritura, itemHandler.Update)

	// Invoices: ciclo de vida del documento fiscal (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PDFUC, deps.ExportUC)
	invoices.Post("/", escritura, invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/emit", escritura, invoiceHandler.Emit)
	invoices.Post("/:id/void", escritura, invoiceHandler.Void)
	invoices.Post("/:id/notas", escritura, invoiceHandler.CreateNota)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id/documento", invoiceHandler.ExportDocumento)

	// Libro de ventas (protegido, lectura)
	reportHandler := NewReportHandler(deps.SalesBook)
	protected.Get("/reports/libro-ventas", reportHandler.LibroVentas)

	// Tasas de cambio BCV (lectura para todos, escritura solo admin)
	ratesGroup := protected.Group("/rates")
	rateHandler := NewRateHandler(deps.RateUC)
	ratesGroup.Post("/", soloAdmin, rateHandler.Set)
	ratesGroup.Get("/latest", rateHandler.GetLatest)

	// Lotes de números de control (solo admin)
	control := protected.Group("/control-numbers", soloAdmin)
	controlHandler := NewControlNumberHandler(deps.ControlUC)
	control.Post("/", controlHandler.Register)
	control.Get("/", controlHandler.List)

	// Usuarios de la empresa (solo admin)
	users := protected.Group("/users", soloAdmin)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Put("/:id/role", userHandler.ChangeRole)
	users.Delete("/:id", userHandler.Deactivate)
}
