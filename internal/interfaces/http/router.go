package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinident/clinident-api/internal/application/auth"
	"github.com/clinident/clinident-api/internal/application/cita"
	"github.com/clinident/clinident-api/internal/application/insumo"
	"github.com/clinident/clinident-api/internal/application/paciente"
	"github.com/clinident/clinident-api/internal/application/perfil"
	"github.com/clinident/clinident-api/internal/application/reporte"
	"github.com/clinident/clinident-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PacienteUC *paciente.PacienteUseCase
	HistoriaUC *paciente.HistoriaPDFUseCase
	CreateCita *cita.CreateCitaUseCase
	CitaUC     *cita.CitaUseCase
	InsumoUC   *insumo.InsumoUseCase
	ReporteUC  *reporte.ReporteUseCase
	AuthUC     *auth.AuthUseCase
	PerfilUC   *perfil.PerfilUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Directorio de doctores (público, lo consume la home del consultorio)
	perfilHandler := NewPerfilHandler(deps.PerfilUC)
	api.Get("/odontologos", perfilHandler.ListPublico)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil propio (protegido)
	perfilGroup := protected.Group("/perfil")
	perfilGroup.Get("/", perfilHandler.GetMio)
	perfilGroup.Put("/", perfilHandler.Upsert)
	perfilGroup.Post("/foto", perfilHandler.SubirFoto)

	// Pacientes (protegido)
	pacientes := protected.Group("/pacientes")
	pacienteHandler := NewPacienteHandler(deps.PacienteUC, deps.HistoriaUC)
	pacientes.Post("/", pacienteHandler.Create)
	pacientes.Get("/", pacienteHandler.List)
	pacientes.Get("/:id", pacienteHandler.GetByID)
	pacientes.Put("/:id", pacienteHandler.Update)
	pacientes.Delete("/:id", pacienteHandler.Delete)
	pacientes.Get("/:id/historia/pdf", pacienteHandler.HistoriaPDF)

	// Citas (protegido)
	citas := protected.Group("/citas")
	citaHandler := NewCitaHandler(deps.CreateCita, deps.CitaUC)
	citas.Post("/", citaHandler.Create)
	citas.Get("/", citaHandler.ListMias)
	citas.Get("/:id", citaHandler.GetByID)
	citas.Put("/:id", citaHandler.Update)
	citas.Delete("/:id", citaHandler.Delete)
	pacientes.Get("/:pacienteId/citas", citaHandler.ListByPaciente)
	pacientes.Get("/:pacienteId/citas/ultima", citaHandler.UltimaByPaciente)

	// Insumos: lectura para todo el personal, escritura solo admin
	insumos := protected.Group("/insumos")
	insumoHandler := NewInsumoHandler(deps.InsumoUC)
	insumos.Get("/", insumoHandler.List)
	insumos.Get("/:id", insumoHandler.GetByID)
	soloAdmin := RequireRole(entity.RolAdmin)
	insumos.Post("/", soloAdmin, insumoHandler.Create)
	insumos.Put("/:id", soloAdmin, insumoHandler.Update)
	insumos.Post("/:id/restock", soloAdmin, insumoHandler.Restock)
	insumos.Delete("/:id", soloAdmin, insumoHandler.Delete)

	// Reportes (solo admin)
	reporteHandler := NewReporteHandler(deps.ReporteUC)
	protected.Get("/reportes", soloAdmin, reporteHandler.Get)
}
