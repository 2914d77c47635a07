package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-api/internal/application/dto"
	"github.com/tu-usuario/stock-api/internal/domain"
	"github.com/tu-usuario/stock-api/internal/domain/entity"
	"github.com/tu-usuario/stock-api/internal/domain/repository"
)

// Ledger caso de uso del ledger de stock: registro append-only de movimientos
// y balance derivado por agregación.
//
// CheckAvailability es advisory: lee el balance en una consulta separada de
// cualquier RecordMovement posterior, así que otro movimiento concurrente
// puede aterrizar entre la comprobación y la acción. El balance puede quedar
// negativo; el ledger lo registra como dato, no como fallo.
type Ledger struct {
	movements repository.MovementRepository
}

// NewLedger construye el caso de uso sobre el repositorio de movimientos.
func NewLedger(movements repository.MovementRepository) *Ledger {
	return &Ledger{movements: movements}
}

// RecordMovement valida cantidad y dirección antes de tocar storage y añade un
// asiento al ledger. Devuelve el ID asignado por la base.
func (l *Ledger) RecordMovement(ctx context.Context, in dto.RecordMovementRequest) (int64, error) {
	if in.ProductID <= 0 || in.UserID <= 0 {
		return 0, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return 0, domain.ErrInvalidInput
	}
	if !entity.ValidMovementDirection(in.Direction) {
		return 0, domain.ErrInvalidInput
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	m := &entity.StockMovement{
		ProductID: in.ProductID,
		Date:      date,
		Direction: in.Direction,
		Quantity:  in.Quantity,
		UserID:    in.UserID,
		Reference: uuid.New().String(),
	}
	if err := l.movements.Create(ctx, m); err != nil {
		return 0, err
	}
	return m.ID, nil
}

// GetBalance devuelve el stock actual del producto: suma con signo de todos
// sus movimientos (I suma, O resta). 0 si no hay movimientos; puede ser
// negativo si se registraron salidas sin balance suficiente.
func (l *Ledger) GetBalance(ctx context.Context, productID int64) (int64, error) {
	if productID <= 0 {
		return 0, domain.ErrInvalidInput
	}
	return l.movements.SumByProduct(ctx, productID)
}

// CheckAvailability indica si GetBalance(productID) >= requested.
// Es una lectura separada: nada impide que otro movimiento concurrente
// invalide el resultado antes de una salida posterior.
func (l *Ledger) CheckAvailability(ctx context.Context, productID, requested int64) (bool, error) {
	if requested < 0 {
		return false, domain.ErrInvalidInput
	}
	balance, err := l.GetBalance(ctx, productID)
	if err != nil {
		return false, err
	}
	return balance >= requested, nil
}

// ListMovements lista todos los asientos del ledger.
func (l *Ledger) ListMovements(ctx context.Context) ([]dto.MovementResponse, error) {
	list, err := l.movements.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ListByProduct lista los asientos de un producto, por id ascendente.
func (l *Ledger) ListByProduct(ctx context.Context, productID int64) ([]dto.MovementResponse, error) {
	if productID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := l.movements.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

// ListByUser lista el histórico de movimientos registrados por un usuario.
func (l *Ledger) ListByUser(ctx context.Context, userID int64) ([]dto.MovementResponse, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := l.movements.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toMovementResponses(list), nil
}

func toMovementResponses(list []*entity.StockMovement) []dto.MovementResponse {
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Date:      m.Date,
			Direction: m.Direction,
			Quantity:  m.Quantity,
			UserID:    m.UserID,
			Reference: m.Reference,
		})
	}
	return out
}
