package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-api/internal/application/order"
	"github.com/tu-usuario/stock-api/internal/domain/entity"
	"github.com/tu-usuario/stock-api/internal/domain/repository"
	apphttp "github.com/tu-usuario/stock-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para montar el handler sin base de datos
// ──────────────────────────────────────────────────────────────────────────────

type memOrderRepo struct {
	nextID int64
	orders map[int64]*entity.Order
	lines  map[int64][]entity.OrderLine
	seq    []int64
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{
		nextID: 1,
		orders: make(map[int64]*entity.Order),
		lines:  make(map[int64][]entity.OrderLine),
	}
}

func (m *memOrderRepo) Create(_ context.Context, o *entity.Order) error {
	o.ID = m.nextID
	m.nextID++
	cp := *o
	m.orders[o.ID] = &cp
	m.seq = append(m.seq, o.ID)
	return nil
}

func (m *memOrderRepo) CreateLine(_ context.Context, orderID int64, line *entity.OrderLine) error {
	m.lines[orderID] = append(m.lines[orderID], *line)
	return nil
}

func (m *memOrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderRepo) ListLines(_ context.Context, orderID int64) ([]entity.OrderLine, error) {
	out := []entity.OrderLine{}
	return append(out, m.lines[orderID]...), nil
}

func (m *memOrderRepo) ListAll(_ context.Context) ([]*entity.Order, error) {
	out := make([]*entity.Order, 0, len(m.seq))
	for _, id := range m.seq {
		cp := *m.orders[id]
		cp.Lines = append([]entity.OrderLine{}, m.lines[id]...)
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memOrderRepo) UpdateState(_ context.Context, id int64, state string) (bool, error) {
	o, ok := m.orders[id]
	if !ok {
		return false, nil
	}
	o.State = state
	return true, nil
}

// passthroughTxRunner ejecuta fn directamente; el rollback real se prueba en
// los tests del caso de uso.
type passthroughTxRunner struct {
	repo repository.OrderRepository
}

func (r *passthroughTxRunner) Run(_ context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	return fn(r.repo)
}

func buildOrderApp() (*fiber.App, *memOrderRepo) {
	repo := newMemOrderRepo()
	uc := order.NewUseCase(&passthroughTxRunner{repo: repo}, repo)
	handler := apphttp.NewOrderHandler(uc)

	app := fiber.New()
	app.Post("/api/orders", handler.Create)
	app.Get("/api/orders", handler.List)
	app.Get("/api/orders/:id", handler.GetByID)
	app.Put("/api/orders/:id/state", handler.UpdateState)
	return app, repo
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderHandler_Create_Retorna201ConID(t *testing.T) {
	app, repo := buildOrderApp()

	resp := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"supplier_id": 3,
		"user_id":     1,
		"lines": []map[string]any{
			{"product_id": 10, "quantity": 5, "total_price": "12.50"},
		},
	})
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, float64(1), out["id"])
	assert.Equal(t, entity.OrderStateRequested, repo.orders[1].State,
		"sin estado explícito se crea como pedida")
}

func TestOrderHandler_Create_DatosInvalidos_Retorna400(t *testing.T) {
	app, _ := buildOrderApp()

	// supplier_id ausente → validación del caso de uso
	resp := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"user_id": 1,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderHandler_GetByID_Inexistente_Retorna404(t *testing.T) {
	app, _ := buildOrderApp()

	resp := doJSON(t, app, http.MethodGet, "/api/orders/99", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderHandler_GetByID_IDNoNumerico_Retorna400(t *testing.T) {
	app, _ := buildOrderApp()

	resp := doJSON(t, app, http.MethodGet, "/api/orders/abc", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOrderHandler_UpdateState_FlujoCompleto(t *testing.T) {
	app, repo := buildOrderApp()

	resp := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"supplier_id": 1,
		"user_id":     1,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut, "/api/orders/1/state", map[string]any{"state": "E"})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.OrderStateDelivered, repo.orders[1].State)

	// Estado fuera del dominio → 400 sin tocar storage.
	resp = doJSON(t, app, http.MethodPut, "/api/orders/1/state", map[string]any{"state": "Z"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, entity.OrderStateDelivered, repo.orders[1].State)

	// Encomenda inexistente → 404.
	resp = doJSON(t, app, http.MethodPut, "/api/orders/7/state", map[string]any{"state": "P"})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOrderHandler_List_LinesSiempreEsArray(t *testing.T) {
	app, _ := buildOrderApp()

	resp := doJSON(t, app, http.MethodPost, "/api/orders", map[string]any{
		"supplier_id": 1,
		"user_id":     1,
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/orders", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out, 1)
	lines, ok := out[0]["lines"].([]any)
	require.True(t, ok, "lines debe serializarse como array, no null")
	assert.Empty(t, lines)
}
