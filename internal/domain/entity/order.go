package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una encomenda (orden de compra a proveedor).
const (
	OrderStateRequested = "P" // pedida
	OrderStateDelivered = "E" // entregue
)

// ValidOrderState indica si s es un estado aceptado por el sistema.
func ValidOrderState(s string) bool {
	return s == OrderStateRequested || s == OrderStateDelivered
}

// Order representa una encomenda: cabecera más sus líneas.
// El ID lo asigna la base de datos al insertar; las líneas son inmutables
// una vez persistidas (no existe operación de edición de línea).
type Order struct {
	ID         int64
	Date       time.Time
	SupplierID int64
	UserID     int64
	State      string // "P" | "E"
	Lines      []OrderLine
}

// OrderLine línea de una encomenda. Pertenece en exclusiva a su Order.
// TotalPrice se guarda tal cual llega; no se valida contra precio unitario × cantidad.
type OrderLine struct {
	ProductID  int64
	Quantity   int64
	TotalPrice decimal.Decimal
}
