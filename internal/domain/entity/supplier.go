package entity

// Supplier representa un proveedor. Referenciado por Order.
type Supplier struct {
	ID      int64
	Name    string
	Contact int64
	Address string
}
