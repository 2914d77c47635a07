package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-api/internal/application/dto"
	"github.com/tu-usuario/stock-api/internal/application/stock"
	"github.com/tu-usuario/stock-api/internal/domain"
)

// MovementHandler maneja las peticiones HTTP del ledger de stock (protegido).
type MovementHandler struct {
	ledger *stock.Ledger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledger *stock.Ledger) *MovementHandler {
	return &MovementHandler{ledger: ledger}
}

// Record godoc
// @Summary      Registrar movimiento de stock (entrada o salida)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, direction (I/O), quantity > 0, user_id"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	id, err := h.ledger.RecordMovement(c.Context(), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos para crear el movimiento"})
		}
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecordMovementResponse{ID: id})
}

// List godoc
// @Summary      Listar todos los movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.ledger.ListMovements(c.Context())
	if err != nil {
		return internalError(c)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Listar movimientos de un producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/product/{productId} [get]
func (h *MovementHandler) ListByProduct(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.ledger.ListByProduct(c.Context(), productID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(out)
}

// ListByUser godoc
// @Summary      Histórico de movimientos de un usuario
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        userId  path  int  true  "ID del usuario"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements/user/{userId} [get]
func (h *MovementHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	out, err := h.ledger.ListByUser(c.Context(), userID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(out)
}

// GetBalance godoc
// @Summary      Stock actual de un producto (agregado del ledger)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {object}  dto.BalanceResponse
// @Router       /api/stock/{productId}/balance [get]
func (h *MovementHandler) GetBalance(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	balance, err := h.ledger.GetBalance(c.Context(), productID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(dto.BalanceResponse{ProductID: productID, Balance: balance})
}

// CheckAvailability godoc
// @Summary      Comprobar stock disponible (advisory)
// @Description  Devuelve balance >= quantity. La comprobación es una lectura
//               separada: un movimiento concurrente puede invalidarla antes de
//               una salida posterior.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        productId  path   int  true  "ID del producto"
// @Param        quantity   query  int  true  "cantidad solicitada"
// @Success      200  {object}  dto.AvailabilityResponse
// @Router       /api/stock/{productId}/availability [get]
func (h *MovementHandler) CheckAvailability(c *fiber.Ctx) error {
	productID, err := parseID(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	}
	requested, err := strconv.ParseInt(c.Query("quantity"), 10, 64)
	if err != nil || requested < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser un entero >= 0"})
	}
	available, err := h.ledger.CheckAvailability(c.Context(), productID, requested)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(dto.AvailabilityResponse{ProductID: productID, Requested: requested, Available: available})
}
