package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/stock-api/internal/application/dto"
	"github.com/tu-usuario/stock-api/internal/infrastructure/currency"
)

// CurrencyHandler consulta de tasas de cambio contra la API externa.
type CurrencyHandler struct {
	client *currency.Client
}

// NewCurrencyHandler construye el handler.
func NewCurrencyHandler(client *currency.Client) *CurrencyHandler {
	return &CurrencyHandler{client: client}
}

// GetRate godoc
// @Summary      Valor de 1 unidad de la moneda indicada en EUR
// @Tags         currency
// @Produce      json
// @Param        code  path  string  true  "código ISO 4217 (p. ej. USD)"
// @Success      200   {object}  currency.Rate
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/currency/{code} [get]
func (h *CurrencyHandler) GetRate(c *fiber.Ctx) error {
	code := strings.ToUpper(strings.TrimSpace(c.Params("code")))
	if len(code) != 3 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código de moneda inválido"})
	}
	rate, err := h.client.GetRate(c.Context(), code)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPSTREAM", Message: "no se pudo consultar la tasa de cambio"})
	}
	return c.JSON(rate)
}
