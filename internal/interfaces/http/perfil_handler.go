package http

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/clinident/clinident-api/internal/application/dto"
	"github.com/clinident/clinident-api/internal/application/perfil"
	"github.com/clinident/clinident-api/internal/domain"
)

// maxFotoBytes techo del tamaño de la foto de perfil.
const maxFotoBytes = 5 << 20

// PerfilHandler maneja perfiles del personal: el directorio público de
// doctores y la edición del perfil propio.
type PerfilHandler struct {
	uc *perfil.PerfilUseCase
}

// NewPerfilHandler construye el handler.
func NewPerfilHandler(uc *perfil.PerfilUseCase) *PerfilHandler {
	return &PerfilHandler{uc: uc}
}

// ListPublico godoc
// @Summary      Directorio público de odontólogos
// @Tags         perfiles
// @Produce      json
// @Success      200  {array}  dto.PerfilResponse
// @Router       /api/odontologos [get]
func (h *PerfilHandler) ListPublico(c *fiber.Ctx) error {
	out, err := h.uc.ListPublico()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetMio godoc
// @Summary      Perfil del usuario autenticado
// @Tags         perfiles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PerfilResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/perfil [get]
func (h *PerfilHandler) GetMio(c *fiber.Ctx) error {
	out, err := h.uc.GetByUsuario(GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "perfil no encontrado"})
	}
	return c.JSON(out)
}

// Upsert godoc
// @Summary      Crear o actualizar el perfil propio
// @Tags         perfiles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertPerfilRequest  true  "Datos del perfil"
// @Success      200   {object}  dto.PerfilResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/perfil [put]
func (h *PerfilHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertPerfilRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Upsert(GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SubirFoto godoc
// @Summary      Subir foto de perfil (multipart, campo "foto")
// @Tags         perfiles
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        foto  formData  file  true  "Imagen de perfil"
// @Success      200   {object}  dto.PerfilResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/perfil/foto [post]
func (h *PerfilHandler) SubirFoto(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("foto")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campo foto requerido"})
	}
	if fileHeader.Size > maxFotoBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "la foto supera el tamaño máximo (5 MB)"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo ilegible"})
	}
	defer f.Close()
	contenido, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	out, err := h.uc.SubirFoto(GetUserID(c), ext, contenido)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "perfil no encontrado; créalo primero"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
