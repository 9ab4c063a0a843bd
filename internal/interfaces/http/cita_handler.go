package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinident/clinident-api/internal/application/cita"
	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/domain"
)

// CitaHandler maneja las peticiones HTTP del flujo de citas (protegido).
type CitaHandler struct {
	createUC *cita.CreateCitaUseCase
	uc       *cita.CitaUseCase
}

// NewCitaHandler construye el handler.
func NewCitaHandler(createUC *cita.CreateCitaUseCase, uc *cita.CitaUseCase) *CitaHandler {
	return &CitaHandler{createUC: createUC, uc: uc}
}

// Create godoc
// @Summary      Registrar cita (muta odontograma y descuenta insumos)
// @Tags         citas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCitaRequest  true  "Datos de la cita"
// @Success      201   {object}  dto.CitaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/citas [post]
func (h *CitaHandler) Create(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateCitaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.createUC.CreateCita(c.Context(), usuarioID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "paciente o insumo no encontrado"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_INSUFICIENTE", Message: "stock insuficiente para los insumos solicitados"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cita por ID
// @Tags         citas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cita"
// @Success      200  {object}  dto.CitaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/citas/{id} [get]
func (h *CitaHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cita no encontrada"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir cita (administrativo)
// @Tags         citas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.UpdateCitaRequest  true  "Campos a corregir"
// @Success      200   {object}  dto.CitaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/citas/{id} [put]
func (h *CitaHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateCitaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cita no encontrada"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cita (no repone stock ni revierte odontograma)
// @Tags         citas
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cita"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/citas/{id} [delete]
func (h *CitaHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cita no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMias godoc
// @Summary      Listar citas atendidas por el usuario autenticado
// @Tags         citas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.CitaListResponse
// @Router       /api/citas [get]
func (h *CitaHandler) ListMias(c *fiber.Ctx) error {
	usuarioID := GetUserID(c)
	if usuarioID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit, offset := paginacion(c)
	out, err := h.uc.ListByUsuario(usuarioID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByPaciente godoc
// @Summary      Historial de citas de un paciente
// @Tags         citas
// @Security     Bearer
// @Produce      json
// @Param        pacienteId  path   string  true   "ID del paciente"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.CitaListResponse
// @Router       /api/pacientes/{pacienteId}/citas [get]
func (h *CitaHandler) ListByPaciente(c *fiber.Ctx) error {
	pacienteID := c.Params("pacienteId")
	if pacienteID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "pacienteId es requerido"})
	}
	limit, offset := paginacion(c)
	out, err := h.uc.ListByPaciente(pacienteID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UltimaByPaciente godoc
// @Summary      Cita más reciente de un paciente
// @Tags         citas
// @Security     Bearer
// @Produce      json
// @Param        pacienteId  path  string  true  "ID del paciente"
// @Success      200  {object}  dto.CitaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pacientes/{pacienteId}/citas/ultima [get]
func (h *CitaHandler) UltimaByPaciente(c *fiber.Ctx) error {
	pacienteID := c.Params("pacienteId")
	if pacienteID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "pacienteId es requerido"})
	}
	out, err := h.uc.GetUltimaByPaciente(pacienteID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el paciente no tiene citas"})
	}
	return c.JSON(out)
}
