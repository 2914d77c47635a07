package entity

import "github.com/shopspring/decimal"

// Product representa un producto del inventario.
// Stock es una cifra desnormalizada que mantiene el CRUD; la fuente de verdad
// del stock es el agregado del ledger de movimientos (ver StockMovement).
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
	Status      string
}
