package core_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"warehouse-inventory/internal/core"

	"go.uber.org/zap"
)

func TestTransfer_ToExistingRecord(t *testing.T) {
	pool := setupTestDB(t)
	ledger := core.NewStockLedger(pool)
	svc := core.NewTransferService(pool, zap.NewNop())
	ctx := context.Background()

	res, err := svc.Transfer(ctx, recAlphaWidget, whBeta, 3)
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if res.DestinationCreated {
		t.Error("expected existing destination record to be reused")
	}
	if res.Source.Quantity != 7 || res.Destination.Quantity != 7 {
		t.Errorf("expected 7/7 after moving 3, got source=%d destination=%d",
			res.Source.Quantity, res.Destination.Quantity)
	}
	if res.Destination.ID != recBetaWidget {
		t.Errorf("expected destination record %d, got %d", recBetaWidget, res.Destination.ID)
	}
	if q := quantityOf(t, ledger, whAlpha, prodWidget); q != 7 {
		t.Errorf("persisted source quantity = %d, want 7", q)
	}
	if q := quantityOf(t, ledger, whBeta, prodWidget); q != 7 {
		t.Errorf("persisted destination quantity = %d, want 7", q)
	}
}

func TestTransfer_CreatesDestinationRecord(t *testing.T) {
	pool := setupTestDB(t)
	ledger := core.NewStockLedger(pool)
	svc := core.NewTransferService(pool, zap.NewNop())
	ctx := context.Background()

	res, err := svc.Transfer(ctx, recAlphaWidget, whGamma, 10)
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if !res.DestinationCreated {
		t.Error("expected destination record to be created")
	}
	if res.Source.Quantity != 0 {
		t.Errorf("expected source drained to 0, got %d", res.Source.Quantity)
	}
	dest := res.Destination
	if dest.WarehouseID != whGamma || dest.ProductID != prodWidget || dest.Quantity != 10 {
		t.Errorf("unexpected destination record: %+v", dest)
	}
	if dest.MinimumStock != 5 || dest.Location != 3 {
		t.Errorf("expected minimum/location copied from source (5/3), got %d/%d", dest.MinimumStock, dest.Location)
	}

	gamma, err := ledger.ListByWarehouse(ctx, whGamma)
	if err != nil {
		t.Fatalf("ListByWarehouse failed: %v", err)
	}
	if len(gamma) != 1 {
		t.Errorf("expected exactly one record in Gamma, got %d", len(gamma))
	}
}

func TestTransfer_Rejections(t *testing.T) {
	pool := setupTestDB(t)
	ledger := core.NewStockLedger(pool)
	svc := core.NewTransferService(pool, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name     string
		sourceID int64
		destWH   int64
		amount   int
		want     error
	}{
		{"zero amount", recAlphaWidget, whBeta, 0, core.ErrInvalidTransfer},
		{"negative amount", recAlphaWidget, whBeta, -2, core.ErrInvalidTransfer},
		{"more than available", recAlphaWidget, whBeta, 11, core.ErrInvalidTransfer},
		{"same warehouse", recAlphaWidget, whAlpha, 1, core.ErrInvalidTransfer},
		{"unknown source", 999, whBeta, 1, core.ErrNotFound},
		{"unknown destination", recAlphaWidget, 999, 1, core.ErrNotFound},
		{"amount beyond column range", recAlphaWidget, whBeta, core.MaxQuantity + 1, core.ErrInvalidTransfer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Transfer(ctx, tt.sourceID, tt.destWH, tt.amount)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if q := quantityOf(t, ledger, whAlpha, prodWidget); q != 10 {
		t.Errorf("source changed after rejected transfers: %d", q)
	}
	if q := quantityOf(t, ledger, whBeta, prodWidget); q != 4 {
		t.Errorf("destination changed after rejected transfers: %d", q)
	}
	if _, err := ledger.Get(ctx, 999, prodWidget); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("rejected transfer created a record: %v", err)
	}
}

func TestTransfer_InsufficientReportsAvailable(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewTransferService(pool, zap.NewNop())

	_, err := svc.Transfer(context.Background(), recBetaWidget, whAlpha, 5)
	var te *core.InvalidTransferError
	if !errors.As(err, &te) {
		t.Fatalf("expected InvalidTransferError, got %v", err)
	}
	if te.Amount != 5 || te.Available != 4 {
		t.Errorf("expected amount 5 / available 4, got %d / %d", te.Amount, te.Available)
	}
}

func TestTransfer_ConcurrentOppositeDirectionsConserveStock(t *testing.T) {
	pool := setupTestDB(t)
	ledger := core.NewStockLedger(pool)
	svc := core.NewTransferService(pool, zap.NewNop())
	ctx := context.Background()

	if _, err := ledger.Adjust(ctx, whBeta, prodWidget, 16); err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	// Alpha holds 10, Beta holds 20.
	const perDirection = 10
	var wg sync.WaitGroup
	errs := make(chan error, 2*perDirection)
	for i := 0; i < perDirection; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := svc.Transfer(ctx, recAlphaWidget, whBeta, 1); err != nil {
				errs <- err
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.Transfer(ctx, recBetaWidget, whAlpha, 1); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	failed := 0
	for err := range errs {
		if !errors.Is(err, core.ErrInvalidTransfer) {
			t.Errorf("unexpected transfer failure: %v", err)
		}
		failed++
	}

	alpha := quantityOf(t, ledger, whAlpha, prodWidget)
	beta := quantityOf(t, ledger, whBeta, prodWidget)
	if alpha+beta != 30 {
		t.Fatalf("total not conserved: alpha=%d beta=%d (failed transfers: %d)", alpha, beta, failed)
	}
	if alpha < 0 || beta < 0 {
		t.Fatalf("negative stock after concurrent transfers: alpha=%d beta=%d", alpha, beta)
	}
}

func TestTransfer_DestinationOverflowIsRejected(t *testing.T) {
	pool := setupTestDB(t)
	ledger := core.NewStockLedger(pool)
	svc := core.NewTransferService(pool, zap.NewNop())
	ctx := context.Background()

	if _, err := pool.Exec(ctx, "UPDATE stock_records SET quantity = $1 WHERE id = $2", core.MaxQuantity-5, recBetaWidget); err != nil {
		t.Fatalf("raise destination quantity: %v", err)
	}

	_, err := svc.Transfer(ctx, recAlphaWidget, whBeta, 6)
	if !errors.Is(err, core.ErrInvalidTransfer) {
		t.Fatalf("expected ErrInvalidTransfer, got %v", err)
	}
	if q := quantityOf(t, ledger, whAlpha, prodWidget); q != 10 {
		t.Errorf("source debited after rejected transfer: %d", q)
	}
	if q := quantityOf(t, ledger, whBeta, prodWidget); q != core.MaxQuantity-5 {
		t.Errorf("destination changed after rejected transfer: %d", q)
	}

	res, err := svc.Transfer(ctx, recAlphaWidget, whBeta, 5)
	if err != nil {
		t.Fatalf("transfer filling the destination to the maximum failed: %v", err)
	}
	if res.Destination.Quantity != core.MaxQuantity {
		t.Errorf("expected destination at %d, got %d", core.MaxQuantity, res.Destination.Quantity)
	}
}
