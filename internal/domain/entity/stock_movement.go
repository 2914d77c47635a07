package entity

import "time"

// Direcciones de movimiento de stock.
const (
	MovementIn  = "I" // entrada
	MovementOut = "O" // salida
)

// ValidMovementDirection indica si d es una dirección aceptada.
func ValidMovementDirection(d string) bool {
	return d == MovementIn || d == MovementOut
}

// StockMovement un asiento del ledger de stock: entrada o salida de un producto,
// registrada por un usuario. Es append-only: una vez escrito nunca se modifica
// ni se borra. El stock actual de un producto es la suma con signo de sus
// movimientos, no un campo almacenado.
type StockMovement struct {
	ID        int64
	ProductID int64
	Date      time.Time
	Direction string // "I" | "O"
	Quantity  int64  // siempre > 0; el signo lo da Direction
	UserID    int64
	Reference string // agrupa movimientos de una misma operación (uuid), opcional
}

// Signed devuelve la cantidad con signo según la dirección (I: +, O: -).
func (m StockMovement) Signed() int64 {
	if m.Direction == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}
