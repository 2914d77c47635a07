package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/stock-api/internal/domain/entity"
	"github.com/tu-usuario/stock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el ledger nunca se modifica.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create añade un asiento al ledger; el ID lo asigna la base (RETURNING).
func (r *MovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (product_id, date, direction, quantity, user_id, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	reference := (*string)(nil)
	if movement.Reference != "" {
		reference = &movement.Reference
	}
	err := r.q.QueryRow(ctx, query,
		movement.ProductID, movement.Date, movement.Direction,
		movement.Quantity, movement.UserID, reference,
	).Scan(&movement.ID)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// SumByProduct calcula la suma con signo de los movimientos del producto:
// I suma, O resta. COALESCE devuelve 0 cuando no hay movimientos.
func (r *MovementRepo) SumByProduct(ctx context.Context, productID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'I' THEN quantity ELSE -quantity END), 0)
		FROM stock_movements
		WHERE product_id = $1`
	var sum int64
	if err := r.q.QueryRow(ctx, query, productID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

const movementColumns = `id, product_id, date, direction, quantity, user_id, COALESCE(reference, '')`

// ListAll lista todos los movimientos, estables por id ascendente.
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements ORDER BY id`
	return r.list(ctx, query)
}

// ListByProduct lista los movimientos de un producto, por id ascendente.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID int64) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE product_id = $1 ORDER BY id`
	return r.list(ctx, query, productID)
}

// ListByUser lista el histórico de movimientos de un usuario, por id ascendente.
func (r *MovementRepo) ListByUser(ctx context.Context, userID int64) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE user_id = $1 ORDER BY id`
	return r.list(ctx, query, userID)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Date, &m.Direction,
			&m.Quantity, &m.UserID, &m.Reference); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
