package dto

import "time"

// RecordMovementRequest body para POST /api/movements.
type RecordMovementRequest struct {
	ProductID int64     `json:"product_id"`
	Date      time.Time `json:"date"`
	Direction string    `json:"direction"` // "I" | "O"
	Quantity  int64     `json:"quantity"`  // > 0
	UserID    int64     `json:"user_id"`
}

// MovementResponse un asiento del ledger en respuestas.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	Date      time.Time `json:"date"`
	Direction string    `json:"direction"`
	Quantity  int64     `json:"quantity"`
	UserID    int64     `json:"user_id"`
	Reference string    `json:"reference,omitempty"`
}

// RecordMovementResponse respuesta de creación: el ID asignado por la base.
type RecordMovementResponse struct {
	ID int64 `json:"id"`
}

// BalanceResponse stock actual derivado del ledger. Puede ser negativo:
// el ledger registra hechos, no impone el límite.
type BalanceResponse struct {
	ProductID int64 `json:"product_id"`
	Balance   int64 `json:"balance"`
}

// AvailabilityResponse resultado de la comprobación advisory de stock.
type AvailabilityResponse struct {
	ProductID int64 `json:"product_id"`
	Requested int64 `json:"requested"`
	Available bool  `json:"available"`
}
