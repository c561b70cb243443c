package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/audit"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

// ActivityHandler expone la bitácora (solo lectura).
type ActivityHandler struct {
	uc *audit.UseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *audit.UseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List GET /api/logs?limit=50&offset=0
// @Summary      Listar bitácora (más reciente primero)
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Máximo de entradas (0 = todas)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.ActivityLogResponse
// @Router       /api/logs [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
