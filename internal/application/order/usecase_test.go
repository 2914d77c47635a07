package order_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-api/internal/application/dto"
	apporder "github.com/tu-usuario/stock-api/internal/application/order"
	"github.com/tu-usuario/stock-api/internal/domain"
	"github.com/tu-usuario/stock-api/internal/domain/entity"
	"github.com/tu-usuario/stock-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeOrderRepo repositorio de encomendas en memoria. failLineAt simula un
// fallo de storage al insertar la línea N (1-based), para probar el rollback.
type fakeOrderRepo struct {
	nextID     int64
	orders     map[int64]*entity.Order
	lines      map[int64][]entity.OrderLine
	orderSeq   []int64 // orden de inserción, para ListAll
	failLineAt int
	lineCalls  int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		nextID: 1,
		orders: make(map[int64]*entity.Order),
		lines:  make(map[int64][]entity.OrderLine),
	}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	o.ID = f.nextID
	f.nextID++
	cp := *o
	f.orders[o.ID] = &cp
	f.orderSeq = append(f.orderSeq, o.ID)
	return nil
}

func (f *fakeOrderRepo) CreateLine(_ context.Context, orderID int64, line *entity.OrderLine) error {
	f.lineCalls++
	if f.failLineAt > 0 && f.lineCalls == f.failLineAt {
		return errors.New("insert order line: fallo simulado")
	}
	f.lines[orderID] = append(f.lines[orderID], *line)
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) ListLines(_ context.Context, orderID int64) ([]entity.OrderLine, error) {
	out := []entity.OrderLine{}
	out = append(out, f.lines[orderID]...)
	return out, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(f.orderSeq))
	for _, id := range f.orderSeq {
		cp := *f.orders[id]
		cp.Lines = append([]entity.OrderLine{}, f.lines[id]...)
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateState(_ context.Context, id int64, state string) (bool, error) {
	o, ok := f.orders[id]
	if !ok {
		return false, nil
	}
	o.State = state
	return true, nil
}

// fakeTxRunner ejecuta fn contra el repo y, si falla, restaura el estado
// previo, imitando el rollback de la transacción real.
type fakeTxRunner struct {
	repo *fakeOrderRepo
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	snapOrders := make(map[int64]*entity.Order, len(r.repo.orders))
	for id, o := range r.repo.orders {
		cp := *o
		snapOrders[id] = &cp
	}
	snapLines := make(map[int64][]entity.OrderLine, len(r.repo.lines))
	for id, ls := range r.repo.lines {
		snapLines[id] = append([]entity.OrderLine{}, ls...)
	}
	snapSeq := append([]int64{}, r.repo.orderSeq...)
	snapNext := r.repo.nextID

	if err := fn(r.repo); err != nil {
		r.repo.orders = snapOrders
		r.repo.lines = snapLines
		r.repo.orderSeq = snapSeq
		r.repo.nextID = snapNext
		return err
	}
	return nil
}

func newTestUseCase() (*apporder.UseCase, *fakeOrderRepo) {
	repo := newFakeOrderRepo()
	return apporder.NewUseCase(&fakeTxRunner{repo: repo}, repo), repo
}

func lineReq(productID, qty int64, price string) dto.OrderLineRequest {
	return dto.OrderLineRequest{
		ProductID:  productID,
		Quantity:   qty,
		TotalPrice: decimal.RequireFromString(price),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_PersisteCabeceraYLineas(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()

	id, err := uc.CreateOrder(ctx, dto.CreateOrderRequest{
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		SupplierID: 7,
		UserID:     3,
		State:      entity.OrderStateRequested,
		Lines: []dto.OrderLineRequest{
			lineReq(1, 5, "12.50"),
			lineReq(2, 2, "8.00"),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "la base asigna el primer ID")

	got, err := uc.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStateRequested, got.State)
	assert.Equal(t, int64(7), got.SupplierID)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, int64(5), got.Lines[0].Quantity)
	assert.True(t, got.Lines[1].TotalPrice.Equal(decimal.RequireFromString("8.00")))
	assert.Len(t, repo.lines[id], 2)
}

func TestCreateOrder_EstadoPorDefectoEsPedida(t *testing.T) {
	uc, repo := newTestUseCase()

	id, err := uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SupplierID: 1,
		UserID:     1,
		Lines:      []dto.OrderLineRequest{lineReq(1, 1, "1.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStateRequested, repo.orders[id].State,
		"sin estado explícito la encomenda se crea como pedida")
}

func TestCreateOrder_EstadoInvalido_Rechazado(t *testing.T) {
	uc, repo := newTestUseCase()

	_, err := uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SupplierID: 1,
		UserID:     1,
		State:      "X",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.orders, "nada debe persistir con estado inválido")
}

func TestCreateOrder_LineaInvalida_Rechazada(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()

	_, err := uc.CreateOrder(ctx, dto.CreateOrderRequest{
		SupplierID: 1,
		UserID:     1,
		Lines:      []dto.OrderLineRequest{lineReq(1, 0, "1.00")}, // cantidad 0
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateOrder(ctx, dto.CreateOrderRequest{
		SupplierID: 1,
		UserID:     1,
		Lines:      []dto.OrderLineRequest{lineReq(0, 3, "1.00")}, // producto 0
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.orders)
}

func TestCreateOrder_SinLineas_EsValida(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	id, err := uc.CreateOrder(ctx, dto.CreateOrderRequest{
		SupplierID: 1,
		UserID:     1,
	})
	require.NoError(t, err)

	got, err := uc.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, got.Lines, "Lines debe ser array vacío, no null")
	assert.Empty(t, got.Lines)
}

func TestCreateOrder_FalloEnLinea_NoPersisteNada(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.failLineAt = 2 // la segunda línea falla
	uc := apporder.NewUseCase(&fakeTxRunner{repo: repo}, repo)

	_, err := uc.CreateOrder(context.Background(), dto.CreateOrderRequest{
		SupplierID: 1,
		UserID:     1,
		Lines: []dto.OrderLineRequest{
			lineReq(1, 1, "1.00"),
			lineReq(2, 1, "2.00"),
		},
	})
	require.Error(t, err)
	assert.Empty(t, repo.orders, "la cabecera no debe sobrevivir al rollback")
	assert.Empty(t, repo.lines, "ninguna línea debe sobrevivir al rollback")
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateState
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateState_TransicionAEntregue(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()

	id, err := uc.CreateOrder(ctx, dto.CreateOrderRequest{SupplierID: 1, UserID: 1})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateState(ctx, id, entity.OrderStateDelivered))
	assert.Equal(t, entity.OrderStateDelivered, repo.orders[id].State)
}

func TestUpdateState_MismoEstado_Aceptado(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()

	id, err := uc.CreateOrder(ctx, dto.CreateOrderRequest{SupplierID: 1, UserID: 1})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateState(ctx, id, entity.OrderStateDelivered))
	// Reaplicar el mismo estado no es error.
	require.NoError(t, uc.UpdateState(ctx, id, entity.OrderStateDelivered))
	// Volver a pedida tampoco se bloquea: solo se valida el valor.
	require.NoError(t, uc.UpdateState(ctx, id, entity.OrderStateRequested))
	assert.Equal(t, entity.OrderStateRequested, repo.orders[id].State)
}

func TestUpdateState_EstadoInvalido_NoTocaStorage(t *testing.T) {
	uc, repo := newTestUseCase()
	ctx := context.Background()

	id, err := uc.CreateOrder(ctx, dto.CreateOrderRequest{SupplierID: 1, UserID: 1})
	require.NoError(t, err)

	err = uc.UpdateState(ctx, id, "entregado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.OrderStateRequested, repo.orders[id].State,
		"el estado no debe cambiar con un valor inválido")
}

func TestUpdateState_Inexistente_ErrNotFound(t *testing.T) {
	uc, _ := newTestUseCase()

	err := uc.UpdateState(context.Background(), 999, entity.OrderStateDelivered)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// GetOrder / ListOrders
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrder_Inexistente_ErrNotFound(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.GetOrder(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListOrders_DevuelveTodasConLineas(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	first, err := uc.CreateOrder(ctx, dto.CreateOrderRequest{
		SupplierID: 1,
		UserID:     1,
		Lines:      []dto.OrderLineRequest{lineReq(1, 2, "4.00")},
	})
	require.NoError(t, err)
	second, err := uc.CreateOrder(ctx, dto.CreateOrderRequest{SupplierID: 2, UserID: 1})
	require.NoError(t, err)

	list, err := uc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first, list[0].ID)
	assert.Equal(t, second, list[1].ID)
	assert.Len(t, list[0].Lines, 1)
	assert.NotNil(t, list[1].Lines, "encomenda sin líneas lista con array vacío")
	assert.Empty(t, list[1].Lines)
}
