package order

import (
	"context"

	"github.com/tu-usuario/stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de encomendas atado a esa tx. Garantiza que la cabecera y todas
// las líneas se confirman juntas o ninguna persiste.
type TxRunner interface {
	Run(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}
