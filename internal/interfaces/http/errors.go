package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
)

// LocalError guarda el error de la petición para el middleware de logging y métricas.
const LocalError = "request_error"

// LocalErrorCode guarda el código de error de dominio devuelto al cliente.
const LocalErrorCode = "error_code"

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// El orden importa: los errores específicos antes que los genéricos.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "entrada inválida"},
	{domain.ErrDuplicateMaterial, fiber.StatusConflict, "DUPLICATE_MATERIAL", "ya existe un material con ese nombre, tipo y proveedor"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente para la venta"},
	{domain.ErrMaterialNotFound, fiber.StatusNotFound, "MATERIAL_NOT_FOUND", "material no encontrado"},
	{domain.ErrRollNotFound, fiber.StatusNotFound, "ROLL_NOT_FOUND", "rollo no encontrado"},
	{domain.ErrCustomerNotFound, fiber.StatusNotFound, "CUSTOMER_NOT_FOUND", "cliente no encontrado"},
	{domain.ErrSaleNotFound, fiber.StatusNotFound, "SALE_NOT_FOUND", "venta no encontrada"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "no autorizado"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrStorageFailure, fiber.StatusInternalServerError, "STORAGE_FAILURE", "falla de almacenamiento"},
}

// respondError traduce un error de la capa de aplicación a status y dto.ErrorResponse.
// Los 5xx no exponen el detalle interno; queda en los locals para el log.
func respondError(c *fiber.Ctx, err error) error {
	c.Locals(LocalError, err)
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			c.Locals(LocalErrorCode, m.code)
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	c.Locals(LocalErrorCode, "INTERNAL")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func invalidBody(c *fiber.Ctx) error {
	c.Locals(LocalErrorCode, "INVALID_BODY")
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler es el fiber.ErrorHandler de la aplicación: los *fiber.Error (ruta
// inexistente, body demasiado grande) conservan su status; el resto pasa por respondError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		c.Locals(LocalError, err)
		code := "HTTP_" + strconv.Itoa(fe.Code)
		c.Locals(LocalErrorCode, code)
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}
