package report

import (
	"bytes"
	"testing"

	"warehouse-inventory/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	require.NoError(t, err)
	return rows
}

func TestWarehouseTotals(t *testing.T) {
	data, err := WarehouseTotals([]core.WarehouseTotal{
		{WarehouseID: 1, Name: "Alpha", Location: "Dock 1", TotalQuantity: 12, Capacity: 100},
		{WarehouseID: 3, Name: "Gamma", Location: "Dock 3", TotalQuantity: 0, Capacity: 50},
	})
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"warehouse_id", "name", "location", "total_quantity", "capacity", "free_capacity"}, rows[0])
	assert.Equal(t, []string{"1", "Alpha", "Dock 1", "12", "100", "88"}, rows[1])
	assert.Equal(t, []string{"3", "Gamma", "Dock 3", "0", "50", "50"}, rows[2])
}

func TestLowStock(t *testing.T) {
	data, err := LowStock([]core.StockRecord{
		{ID: 2, WarehouseName: "Alpha", ProductName: "Gadget", Quantity: 2, MinimumStock: 5, Location: 4},
	})
	require.NoError(t, err)

	rows := readRows(t, data)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2", "Alpha", "Gadget", "2", "5", "3", "4"}, rows[1])
}

func TestEmptyReportHasHeaderOnly(t *testing.T) {
	data, err := LowStock(nil)
	require.NoError(t, err)
	rows := readRows(t, data)
	require.Len(t, rows, 1)
	assert.Equal(t, "record_id", rows[0][0])
}
