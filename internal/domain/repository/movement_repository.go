package repository

import (
	"context"

	"github.com/tu-usuario/stock-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del ledger de movimientos.
// El ledger es append-only: no hay Update ni Delete.
type MovementRepository interface {
	// Create añade un asiento y deja el ID asignado por la base en movement.ID.
	Create(ctx context.Context, movement *entity.StockMovement) error
	// SumByProduct devuelve la suma con signo de los movimientos del producto
	// (I suma, O resta); 0 si no hay movimientos.
	SumByProduct(ctx context.Context, productID int64) (int64, error)
	ListAll(ctx context.Context) ([]*entity.StockMovement, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.StockMovement, error)
	ListByUser(ctx context.Context, userID int64) ([]*entity.StockMovement, error)
}
