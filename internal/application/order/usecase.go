package order

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-api/internal/application/dto"
	"github.com/tu-usuario/stock-api/internal/domain"
	"github.com/tu-usuario/stock-api/internal/domain/entity"
	"github.com/tu-usuario/stock-api/internal/domain/repository"
)

// UseCase gestiona encomendas: creación atómica (cabecera + líneas en una
// transacción), lectura, listado y transición de estado.
type UseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, orderRepo repository.OrderRepository) *UseCase {
	return &UseCase{txRunner: txRunner, orderRepo: orderRepo}
}

// CreateOrder valida la entrada, inserta la cabecera capturando el ID asignado
// por la base e inserta cada línea con ese ID, todo en una transacción: si
// cualquier insert falla, nada persiste y el error de storage se propaga.
// Devuelve el ID de la nueva encomenda.
//
// SupplierID y UserID no se validan aquí contra la base: las claves foráneas
// del esquema rechazan referencias inexistentes dentro de la misma transacción.
// Una encomenda sin líneas es válida (se crea solo la cabecera).
func (uc *UseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (int64, error) {
	if in.SupplierID <= 0 || in.UserID <= 0 {
		return 0, domain.ErrInvalidInput
	}
	state := in.State
	if state == "" {
		state = entity.OrderStateRequested // default documentado: pedida
	}
	if !entity.ValidOrderState(state) {
		return 0, domain.ErrInvalidInput
	}
	for _, l := range in.Lines {
		if l.ProductID <= 0 || l.Quantity <= 0 {
			return 0, domain.ErrInvalidInput
		}
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	header := &entity.Order{
		Date:       date,
		SupplierID: in.SupplierID,
		UserID:     in.UserID,
		State:      state,
	}

	err := uc.txRunner.Run(ctx, func(orderRepo repository.OrderRepository) error {
		if err := orderRepo.Create(ctx, header); err != nil {
			return err
		}
		for i := range in.Lines {
			line := &entity.OrderLine{
				ProductID:  in.Lines[i].ProductID,
				Quantity:   in.Lines[i].Quantity,
				TotalPrice: in.Lines[i].TotalPrice,
			}
			if err := orderRepo.CreateLine(ctx, header.ID, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return header.ID, nil
}

// UpdateState valida el nuevo estado antes de tocar storage y ejecuta un único
// update condicional. Devuelve ErrNotFound si ninguna fila coincidió.
//
// No se bloquea la transición E -> P: la capa solo valida el valor, igual que
// el update original. Reaplicar el mismo estado también es aceptado.
func (uc *UseCase) UpdateState(ctx context.Context, id int64, newState string) error {
	if !entity.ValidOrderState(newState) {
		return domain.ErrInvalidInput
	}
	matched, err := uc.orderRepo.UpdateState(ctx, id, newState)
	if err != nil {
		return err
	}
	if !matched {
		return domain.ErrNotFound
	}
	return nil
}

// GetOrder lee la cabecera y después sus líneas. Cabecera inexistente es
// ErrNotFound; cabecera con cero líneas es una encomenda válida con Lines vacío.
func (uc *UseCase) GetOrder(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	header, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orderRepo.ListLines(ctx, header.ID)
	if err != nil {
		return nil, err
	}
	header.Lines = lines
	return toOrderResponse(header), nil
}

// ListOrders devuelve todas las encomendas hidratadas. El orden sigue la
// primera aparición de cada identidad en el result set subyacente.
func (uc *UseCase) ListOrders(ctx context.Context) ([]dto.OrderResponse, error) {
	orders, err := uc.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, *toOrderResponse(o))
	}
	return out, nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			TotalPrice: l.TotalPrice,
		})
	}
	return &dto.OrderResponse{
		ID:         o.ID,
		Date:       o.Date,
		SupplierID: o.SupplierID,
		UserID:     o.UserID,
		State:      o.State,
		Lines:      lines,
	}
}
