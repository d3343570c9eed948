package core_test

import (
	"context"
	"errors"
	"testing"

	"warehouse-inventory/internal/core"

	"go.uber.org/zap"
)

func TestCheckout_ReducesStockAndRecords(t *testing.T) {
	pool := setupTestDB(t)
	ledger := core.NewStockLedger(pool)
	svc := core.NewCheckoutService(pool, ledger, zap.NewNop())
	ctx := context.Background()

	c, err := svc.Checkout(ctx, whAlpha, prodWidget, 4, "picker@example.test")
	if err != nil {
		t.Fatalf("Checkout failed: %v", err)
	}
	if c.ID == 0 || c.ProductName != "Widget" || c.Amount != 4 {
		t.Errorf("unexpected checkout: %+v", c)
	}
	if q := quantityOf(t, ledger, whAlpha, prodWidget); q != 6 {
		t.Errorf("expected 6 after checking out 4, got %d", q)
	}

	list, err := svc.ListCheckouts(ctx)
	if err != nil {
		t.Fatalf("ListCheckouts failed: %v", err)
	}
	if len(list) != 1 || list[0].UserEmail != "picker@example.test" {
		t.Errorf("unexpected checkout list: %+v", list)
	}
}

func TestCheckout_RejectionsWriteNothing(t *testing.T) {
	pool := setupTestDB(t)
	ledger := core.NewStockLedger(pool)
	svc := core.NewCheckoutService(pool, ledger, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name        string
		warehouseID int64
		productID   int64
		amount      int
		want        error
	}{
		{"more than on hand", whAlpha, prodWidget, 11, core.ErrInvalidQuantity},
		{"zero amount", whAlpha, prodWidget, 0, core.ErrInvalidQuantity},
		{"amount beyond column range", whAlpha, prodWidget, core.MaxQuantity + 1, core.ErrInvalidQuantity},
		{"pair without record", whGamma, prodWidget, 1, core.ErrNotFound},
		{"unknown product", whAlpha, 999, 1, core.ErrInvalidReference},
		{"unknown warehouse", 999, prodWidget, 1, core.ErrInvalidReference},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Checkout(ctx, tt.warehouseID, tt.productID, tt.amount, "picker@example.test")
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if n := countRows(t, pool, "checkouts"); n != 0 {
		t.Errorf("expected no checkout rows, got %d", n)
	}
	if q := quantityOf(t, ledger, whAlpha, prodWidget); q != 10 {
		t.Errorf("quantity changed after rejected checkouts: %d", q)
	}
}
