package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest una línea dentro de CreateOrderRequest.
type OrderLineRequest struct {
	ProductID  int64           `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CreateOrderRequest body para POST /api/orders.
// State es opcional; si viene vacío se crea como pedida ("P").
type CreateOrderRequest struct {
	Date       time.Time          `json:"date"`
	SupplierID int64              `json:"supplier_id"`
	UserID     int64              `json:"user_id"`
	State      string             `json:"state,omitempty"`
	Lines      []OrderLineRequest `json:"lines"`
}

// UpdateOrderStateRequest body para PUT /api/orders/:id/state.
type UpdateOrderStateRequest struct {
	State string `json:"state"` // "P" | "E"
}

// OrderLineResponse una línea en las respuestas de encomendas.
type OrderLineResponse struct {
	ProductID  int64           `json:"product_id"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderResponse encomenda completa: cabecera más líneas.
// Lines siempre es un array (vacío para encomendas sin líneas, nunca null).
type OrderResponse struct {
	ID         int64               `json:"id"`
	Date       time.Time           `json:"date"`
	SupplierID int64               `json:"supplier_id"`
	UserID     int64               `json:"user_id"`
	State      string              `json:"state"`
	Lines      []OrderLineResponse `json:"lines"`
}

// CreateOrderResponse respuesta de creación: el ID asignado por la base.
type CreateOrderResponse struct {
	ID int64 `json:"id"`
}
