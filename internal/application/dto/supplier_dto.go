package dto

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Name    string `json:"name"`
	Contact int64  `json:"contact"`
	Address string `json:"address"`
}

// UpdateSupplierRequest body para PUT /api/suppliers/:id (campos opcionales).
type UpdateSupplierRequest struct {
	Name    *string `json:"name,omitempty"`
	Contact *int64  `json:"contact,omitempty"`
	Address *string `json:"address,omitempty"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Contact int64  `json:"contact"`
	Address string `json:"address"`
}
