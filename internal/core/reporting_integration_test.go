package core_test

import (
	"context"
	"errors"
	"testing"

	"warehouse-inventory/internal/core"
)

func TestReporting_WarehouseTotals(t *testing.T) {
	pool := setupTestDB(t)
	ledger := core.NewStockLedger(pool)
	svc := core.NewReportingService(pool, ledger)
	ctx := context.Background()

	// Lower-case names sort after upper-case ones in byte order.
	if _, err := pool.Exec(ctx,
		"INSERT INTO warehouses (name, location, capacity) VALUES ('annex', 'Yard', 50)"); err != nil {
		t.Fatalf("insert warehouse: %v", err)
	}

	totals, err := svc.WarehouseTotals(ctx)
	if err != nil {
		t.Fatalf("WarehouseTotals failed: %v", err)
	}

	want := []struct {
		name  string
		total int64
	}{
		{"Alpha", 12},
		{"Beta", 4},
		{"Gamma", 0},
		{"annex", 0},
	}
	if len(totals) != len(want) {
		t.Fatalf("expected %d totals, got %d: %+v", len(want), len(totals), totals)
	}
	for i, w := range want {
		if totals[i].Name != w.name || totals[i].TotalQuantity != w.total {
			t.Errorf("row %d: got %s=%d, want %s=%d", i, totals[i].Name, totals[i].TotalQuantity, w.name, w.total)
		}
	}
	if totals[0].Capacity != 1000 || totals[0].Location != "Dock 1" {
		t.Errorf("unexpected Alpha details: %+v", totals[0])
	}
}

func TestReporting_WarehouseTotal(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewReportingService(pool, core.NewStockLedger(pool))
	ctx := context.Background()

	total, err := svc.WarehouseTotal(ctx, whBeta)
	if err != nil {
		t.Fatalf("WarehouseTotal failed: %v", err)
	}
	if total.TotalQuantity != 4 {
		t.Errorf("expected Beta total 4, got %d", total.TotalQuantity)
	}

	empty, err := svc.WarehouseTotal(ctx, whGamma)
	if err != nil {
		t.Fatalf("WarehouseTotal(Gamma) failed: %v", err)
	}
	if empty.TotalQuantity != 0 {
		t.Errorf("expected Gamma total 0, got %d", empty.TotalQuantity)
	}

	if _, err := svc.WarehouseTotal(ctx, 999); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown warehouse, got %v", err)
	}
}

func TestReporting_LowStock(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewReportingService(pool, core.NewStockLedger(pool))

	low, err := svc.LowStock(context.Background())
	if err != nil {
		t.Fatalf("LowStock failed: %v", err)
	}
	if len(low) != 1 || low[0].ProductName != "Gadget" || !low[0].BelowMinimum() {
		t.Errorf("expected Gadget in Alpha as the only low-stock record, got %+v", low)
	}
}
