package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
)

// MaterialHandler expone el ledger de stock: materiales, rollos y ajustes.
type MaterialHandler struct {
	uc *inventory.StockLedgerUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *inventory.StockLedgerUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// Register registra un material nuevo con stock cero.
// @Summary      Registrar material
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMaterialRequest  true  "Material"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/materials [post]
func (h *MaterialHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.RegisterMaterial(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{Message: "material registrado", ID: id})
}

// List GET /api/materials
// @Summary      Listar materiales con sus rollos
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MaterialResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/materials/:id
// @Summary      Obtener material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MaterialResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [get]
func (h *MaterialHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(m)
}

// Delete elimina el material y todos sus rollos.
// @Summary      Eliminar material
// @Tags         materials
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del material"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/materials/{id} [delete]
func (h *MaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteMaterial(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "material eliminado"})
}

// AdjustStock suma delta al stock vendible.
// @Summary      Ajustar stock vendible
// @Tags         materials
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del material"
// @Param        body  body  dto.AdjustStockRequest   true  "Delta"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/stock [post]
func (h *MaterialHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	total, err := h.uc.AdjustStock(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "stock ajustado", "total_quantity": total})
}

// AddRolls registra un lote de rollos.
// @Summary      Agregar rollos
// @Tags         rolls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddRollsRequest  true  "Lote de rollos"
// @Success      201   {object}  dto.AddRollsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rolls [post]
func (h *MaterialHandler) AddRolls(c *fiber.Ctx) error {
	var in dto.AddRollsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddRolls(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateRoll PUT /api/rolls/:id
// @Summary      Cambiar cantidad de un rollo
// @Tags         rolls
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID del rollo"
// @Param        body  body  dto.UpdateRollRequest  true  "Cantidad"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/rolls/{id} [put]
func (h *MaterialHandler) UpdateRoll(c *fiber.Ctx) error {
	var in dto.UpdateRollRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.UpdateRoll(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "rollo actualizado"})
}

// DeleteRoll DELETE /api/rolls/:id
// @Summary      Eliminar rollo
// @Tags         rolls
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del rollo"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rolls/{id} [delete]
func (h *MaterialHandler) DeleteRoll(c *fiber.Ctx) error {
	if err := h.uc.DeleteRoll(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "rollo eliminado"})
}
