package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-api/internal/domain/entity"
	"github.com/tu-usuario/stock-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera de la encomenda. El ID lo asigna la base
// (BIGSERIAL) y se captura con RETURNING en order.ID.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (date, supplier_id, user_id, state)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		order.Date, order.SupplierID, order.UserID, order.State,
	).Scan(&order.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("order references missing supplier or user: %w", err)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateLine inserta una línea con orderID como clave foránea.
func (r *OrderRepo) CreateLine(ctx context.Context, orderID int64, line *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (order_id, product_id, quantity, total_price)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, orderID, line.ProductID, line.Quantity, line.TotalPrice)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("order line references missing product: %w", err)
		}
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// GetByID obtiene solo la cabecera; (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	query := `
		SELECT id, date, supplier_id, user_id, state
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Date, &o.SupplierID, &o.UserID, &o.State,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// ListLines devuelve las líneas de una encomenda; slice vacío si no tiene.
func (r *OrderRepo) ListLines(ctx context.Context, orderID int64) ([]entity.OrderLine, error) {
	query := `
		SELECT product_id, quantity, total_price
		FROM order_lines WHERE order_id = $1`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	lines := []entity.OrderLine{}
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// UpdateState ejecuta el update condicional del estado; devuelve false si
// ninguna fila coincidió (la encomenda no existe).
func (r *OrderRepo) UpdateState(ctx context.Context, id int64, state string) (bool, error) {
	query := `UPDATE orders SET state = $2 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, state)
	if err != nil {
		return false, fmt.Errorf("update order state: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// orderRow una fila del LEFT JOIN cabecera-líneas. Las columnas de línea son
// punteros: todas NULL significa cabecera sin líneas.
type orderRow struct {
	ID         int64
	Date       time.Time
	SupplierID int64
	UserID     int64
	State      string

	LineProductID  *int64
	LineQuantity   *int64
	LineTotalPrice *decimal.Decimal
}

// groupOrderRows agrupa las filas del join por identidad de encomenda,
// preservando el orden de primera aparición. Una fila con columnas de línea
// NULL aporta la cabecera pero ninguna línea.
func groupOrderRows(rows []orderRow) []*entity.Order {
	byID := make(map[int64]*entity.Order)
	orders := []*entity.Order{}

	for _, row := range rows {
		o, ok := byID[row.ID]
		if !ok {
			o = &entity.Order{
				ID:         row.ID,
				Date:       row.Date,
				SupplierID: row.SupplierID,
				UserID:     row.UserID,
				State:      row.State,
				Lines:      []entity.OrderLine{},
			}
			byID[row.ID] = o
			orders = append(orders, o)
		}
		if row.LineProductID != nil && row.LineQuantity != nil && row.LineTotalPrice != nil {
			o.Lines = append(o.Lines, entity.OrderLine{
				ProductID:  *row.LineProductID,
				Quantity:   *row.LineQuantity,
				TotalPrice: *row.LineTotalPrice,
			})
		}
	}
	return orders
}

// ListAll devuelve todas las encomendas con sus líneas en una sola consulta
// (LEFT JOIN, para que las cabeceras sin líneas también aparezcan).
func (r *OrderRepo) ListAll(ctx context.Context) ([]*entity.Order, error) {
	query := `
		SELECT o.id, o.date, o.supplier_id, o.user_id, o.state,
		       l.product_id, l.quantity, l.total_price
		FROM orders o
		LEFT JOIN order_lines l ON o.id = l.order_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var raw []orderRow
	for rows.Next() {
		var row orderRow
		if err := rows.Scan(&row.ID, &row.Date, &row.SupplierID, &row.UserID, &row.State,
			&row.LineProductID, &row.LineQuantity, &row.LineTotalPrice); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		raw = append(raw, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return groupOrderRows(raw), nil
}
