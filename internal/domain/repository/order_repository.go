package repository

import (
	"context"

	"github.com/tu-usuario/stock-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para encomendas y sus líneas.
// Create y CreateLine se usan dentro de la transacción del TxRunner; el resto
// puede ejecutarse directamente sobre el pool.
type OrderRepository interface {
	// Create inserta la cabecera y deja el ID asignado por la base en order.ID.
	Create(ctx context.Context, order *entity.Order) error
	// CreateLine inserta una línea con orderID como clave foránea.
	CreateLine(ctx context.Context, orderID int64, line *entity.OrderLine) error
	// GetByID devuelve solo la cabecera; (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	// ListLines devuelve las líneas de una encomenda; slice vacío si no tiene.
	ListLines(ctx context.Context, orderID int64) ([]entity.OrderLine, error)
	// ListAll devuelve todas las encomendas hidratadas con sus líneas.
	ListAll(ctx context.Context) ([]*entity.Order, error)
	// UpdateState ejecuta el update condicional; devuelve false si ninguna fila coincidió.
	UpdateState(ctx context.Context, id int64, state string) (bool, error)
}
