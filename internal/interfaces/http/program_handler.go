package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vivienda-api/internal/application/dto"
	"github.com/jhoicas/vivienda-api/internal/application/usecase"
	"github.com/jhoicas/vivienda-api/pkg/logger"
)

// ProgramHandler maneja las peticiones HTTP para Program.
type ProgramHandler struct {
	uc     *usecase.ProgramUseCase
	report *usecase.ReportUseCase
	log    *logger.Logger
}

// NewProgramHandler construye el handler.
func NewProgramHandler(uc *usecase.ProgramUseCase, report *usecase.ReportUseCase, log *logger.Logger) *ProgramHandler {
	return &ProgramHandler{uc: uc, report: report, log: log}
}

// List godoc
// @Summary      Listar programas
// @Tags         programs
// @Security     Bearer
// @Produce      json
// @Param        state  query  string  false  "Filtrar por estado (DRAFT, ACTIVE, DISABLED)"
// @Success      200    {object}  dto.ProgramListResponse
// @Router       /api/programs [get]
func (h *ProgramHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("state"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear programa
// @Description  El programa se crea en estado DRAFT con un código generado.
// @Tags         programs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProgramRequest  true  "Datos del programa"
// @Success      201   {object}  dto.ProgramResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Router       /api/programs [post]
func (h *ProgramHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProgramRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener programa por ID
// @Tags         programs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del programa"
// @Success      200  {object}  dto.ProgramResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/programs/{id} [get]
func (h *ProgramHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar programa
// @Description  Solo se validan y escriben los campos enviados. El código no se modifica.
// @Tags         programs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del programa"
// @Param        body  body  dto.UpdateProgramRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProgramResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/programs/{id} [put]
// @Router       /api/programs/{id} [patch]
func (h *ProgramHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProgramRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar programa
// @Tags         programs
// @Security     Bearer
// @Param        id   path  string  true  "ID del programa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/programs/{id} [delete]
func (h *ProgramHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeState godoc
// @Summary      Cambiar estado del programa
// @Tags         programs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true  "ID del programa"
// @Param        body  body  dto.ChangeProgramStateRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.ChangeProgramStateResponse
// @Failure      400   {object}  dto.ValidationErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/programs/{id}/change-state [post]
func (h *ProgramHandler) ChangeState(c *fiber.Ctx) error {
	var in dto.ChangeProgramStateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.NewState == "" {
		return validationMessage(c, "Debe proporcionar un new_state")
	}
	out, err := h.uc.ChangeState(c.UserContext(), c.Params("id"), in.NewState)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.ChangeProgramStateResponse{
		Message: fmt.Sprintf("El programa fue actualizado a estado %s", out.State),
		Program: *out,
	})
}

// Stats godoc
// @Summary      Estadísticas de programas
// @Tags         programs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProgramStatsResponse
// @Router       /api/programs/stats [get]
func (h *ProgramHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de programas
// @Tags         programs
// @Security     Bearer
// @Produce      application/pdf
// @Param        state  query  string  false  "Filtrar por estado"
// @Success      200    {file}    binary
// @Failure      400    {object}  dto.ValidationErrorResponse
// @Router       /api/programs/report [get]
func (h *ProgramHandler) Report(c *fiber.Ctx) error {
	doc, filename, err := h.report.ProgramReport(c.UserContext(), c.Query("state"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(doc)
}
