package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/application/reporte"
	"github.com/clinident/clinident-api/internal/domain"
)

// ReporteHandler maneja el reporte administrativo (solo admin).
type ReporteHandler struct {
	uc *reporte.ReporteUseCase
}

// NewReporteHandler construye el handler.
func NewReporteHandler(uc *reporte.ReporteUseCase) *ReporteHandler {
	return &ReporteHandler{uc: uc}
}

// Get godoc
// @Summary      Reporte del período (solo admin)
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Param        inicio  query  string  true   "Fecha inicio YYYY-MM-DD"
// @Param        fin     query  string  true   "Fecha fin YYYY-MM-DD (inclusiva)"
// @Param        topN    query  int     false  "Top de insumos más usados"  default(10)
// @Success      200     {object}  dto.ReporteResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Router       /api/reportes [get]
func (h *ReporteHandler) Get(c *fiber.Ctx) error {
	in := dto.ReporteRequest{
		Inicio: c.Query("inicio"),
		Fin:    c.Query("fin"),
		TopN:   c.QueryInt("topN", 0),
	}
	if in.Inicio == "" || in.Fin == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "inicio y fin son requeridos (YYYY-MM-DD)"})
	}
	out, err := h.uc.GetReporte(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
