package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcamargo/desviaciones-api/internal/application/auth"
	"github.com/jcamargo/desviaciones-api/internal/application/report"
	"github.com/jcamargo/desviaciones-api/internal/application/summary"
	"github.com/jcamargo/desviaciones-api/internal/application/user"
	"github.com/jcamargo/desviaciones-api/internal/domain/entity"
	"github.com/jcamargo/desviaciones-api/internal/infrastructure/cloudinary"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ReportUC        *report.ReportUseCase
	SummaryUC       *summary.SummaryUseCase
	UserUC          *user.UserUseCase
	UploadSigner    *cloudinary.Signer
	JWTSecret       string
	RefreshExpHours int
	SecureCookies   bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.RefreshExpHours, deps.SecureCookies)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/setup-admin", authHandler.SetupAdmin)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/status", authHandler.Status)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Reports (protegido). Las rutas fijas van antes de :id.
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Post("/", reportHandler.Create)
	reports.Get("/", reportHandler.List)
	reports.Get("/next-folio", reportHandler.NextFolio)
	reports.Get("/stats/summary", reportHandler.Stats)
	reports.Get("/:id", reportHandler.GetByID)
	reports.Put("/:id", reportHandler.Update)
	reports.Patch("/:id/status", reportHandler.PatchStatus)
	reports.Get("/:id/pdf", reportHandler.PDF)
	reports.Delete("/:id", reportHandler.Delete)

	// Novedades de turno (protegido)
	summaries := protected.Group("/summaries")
	summaryHandler := NewSummaryHandler(deps.SummaryUC)
	summaries.Post("/", summaryHandler.Create)
	summaries.Get("/", summaryHandler.List)
	summaries.Patch("/:id", summaryHandler.Update)
	summaries.Delete("/:id", summaryHandler.Delete)

	// Usuarios: perfil propio para cualquier autenticado, gestión solo admin
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Patch("/me", userHandler.UpdateMe)
	users.Patch("/me/password", userHandler.ChangePassword)

	admin := users.Group("/", RequireRole(entity.RoleAdmin))
	admin.Post("/", userHandler.Create)
	admin.Get("/", userHandler.List)
	admin.Patch("/:id", userHandler.Update)
	admin.Delete("/:id", userHandler.Delete)

	// Firma de subida de fotos (protegido)
	uploads := protected.Group("/upload")
	uploadHandler := NewUploadHandler(deps.UploadSigner)
	uploads.Post("/signature", uploadHandler.Signature)
}
