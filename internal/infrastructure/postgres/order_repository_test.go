package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrI64(v int64) *int64 { return &v }

func ptrDec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// Una encomenda con dos líneas produce dos filas en el join pero debe salir
// una sola vez, con ambas líneas agrupadas.
func TestGroupOrderRows_AgrupaLineasPorEncomenda(t *testing.T) {
	date := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := []orderRow{
		{ID: 1, Date: date, SupplierID: 3, UserID: 2, State: "P",
			LineProductID: ptrI64(10), LineQuantity: ptrI64(5), LineTotalPrice: ptrDec("12.50")},
		{ID: 1, Date: date, SupplierID: 3, UserID: 2, State: "P",
			LineProductID: ptrI64(11), LineQuantity: ptrI64(2), LineTotalPrice: ptrDec("8.00")},
	}

	orders := groupOrderRows(rows)
	require.Len(t, orders, 1)
	o := orders[0]
	assert.Equal(t, int64(1), o.ID)
	require.Len(t, o.Lines, 2)
	assert.Equal(t, int64(10), o.Lines[0].ProductID)
	assert.Equal(t, int64(2), o.Lines[1].Quantity)
}

// Las columnas de línea NULL (LEFT JOIN sin match) aportan la cabecera con
// Lines vacío, nunca nil.
func TestGroupOrderRows_CabeceraSinLineas(t *testing.T) {
	rows := []orderRow{
		{ID: 4, SupplierID: 1, UserID: 1, State: "E"},
	}

	orders := groupOrderRows(rows)
	require.Len(t, orders, 1)
	assert.NotNil(t, orders[0].Lines)
	assert.Empty(t, orders[0].Lines)
}

func TestGroupOrderRows_PreservaOrdenDePrimeraAparicion(t *testing.T) {
	rows := []orderRow{
		{ID: 2, State: "P", LineProductID: ptrI64(1), LineQuantity: ptrI64(1), LineTotalPrice: ptrDec("1.00")},
		{ID: 5, State: "P"},
		{ID: 2, State: "P", LineProductID: ptrI64(2), LineQuantity: ptrI64(3), LineTotalPrice: ptrDec("2.00")},
		{ID: 1, State: "E", LineProductID: ptrI64(9), LineQuantity: ptrI64(4), LineTotalPrice: ptrDec("3.00")},
	}

	orders := groupOrderRows(rows)
	require.Len(t, orders, 3)
	assert.Equal(t, int64(2), orders[0].ID)
	assert.Equal(t, int64(5), orders[1].ID)
	assert.Equal(t, int64(1), orders[2].ID)
	assert.Len(t, orders[0].Lines, 2, "las filas dispersas del mismo ID se acumulan")
}

func TestGroupOrderRows_Vacio(t *testing.T) {
	orders := groupOrderRows(nil)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}
