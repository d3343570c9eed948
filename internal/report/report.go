// Package report renders stock projections as xlsx workbooks for download.
package report

import (
	"bytes"
	"fmt"

	"warehouse-inventory/internal/core"

	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the workbooks produced here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WarehouseTotals renders one row per warehouse with its stock total and
// remaining nominal capacity.
func WarehouseTotals(totals []core.WarehouseTotal) ([]byte, error) {
	header := []interface{}{"warehouse_id", "name", "location", "total_quantity", "capacity", "free_capacity"}
	rows := make([][]interface{}, 0, len(totals))
	for _, t := range totals {
		rows = append(rows, []interface{}{
			t.WarehouseID,
			t.Name,
			t.Location,
			t.TotalQuantity,
			t.Capacity,
			int64(t.Capacity) - t.TotalQuantity,
		})
	}
	return render("Warehouse totals", header, rows)
}

// LowStock renders the records below their minimum, with the shortfall.
func LowStock(records []core.StockRecord) ([]byte, error) {
	header := []interface{}{"record_id", "warehouse", "product", "quantity", "minimum_stock", "shortfall", "location"}
	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		rows = append(rows, []interface{}{
			r.ID,
			r.WarehouseName,
			r.ProductName,
			r.Quantity,
			r.MinimumStock,
			r.MinimumStock - r.Quantity,
			r.Location,
		})
	}
	return render("Low stock", header, rows)
}

func render(sheetName string, header []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	sheet = sheetName

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
