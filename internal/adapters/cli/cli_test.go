package cli

import (
	"bytes"
	"context"
	"testing"

	"warehouse-inventory/internal/app"
	"warehouse-inventory/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	app.ApplicationService

	gotRestock  app.RestockRequest
	gotTransfer app.TransferRequest
	err         error
}

func (f *fakeService) Restock(_ context.Context, req app.RestockRequest) (*core.RestockOrder, error) {
	f.gotRestock = req
	if f.err != nil {
		return nil, f.err
	}
	return &core.RestockOrder{Reference: "abc-123", WarehouseID: req.WarehouseID, ProductID: req.ProductID, Amount: req.Amount}, nil
}

func (f *fakeService) TransferStock(_ context.Context, req app.TransferRequest) (*core.TransferResult, error) {
	f.gotTransfer = req
	return &core.TransferResult{
		Amount:      req.Amount,
		Source:      core.StockRecord{ID: req.SourceRecordID, WarehouseName: "Alpha", ProductName: "Widget", Quantity: 7},
		Destination: core.StockRecord{ID: 9, WarehouseName: "Beta", ProductName: "Widget", Quantity: 3},
	}, nil
}

func (f *fakeService) WarehouseTotals(_ context.Context) (*app.WarehouseTotalsResult, error) {
	return &app.WarehouseTotalsResult{Totals: []core.WarehouseTotal{
		{WarehouseID: 1, Name: "Alpha", Location: "Dock 1", TotalQuantity: 12, Capacity: 100},
	}}, nil
}

func (f *fakeService) LowStock(_ context.Context) (*app.StockListResult, error) {
	return &app.StockListResult{}, nil
}

func TestRestockCommand(t *testing.T) {
	svc := &fakeService{}
	var out bytes.Buffer

	err := Run(context.Background(), svc, []string{"restock", "1", "2", "30", "ops@example.test"}, &out)
	require.NoError(t, err)
	assert.Equal(t, app.RestockRequest{WarehouseID: 1, ProductID: 2, Amount: 30, OrderedBy: "ops@example.test"}, svc.gotRestock)
	assert.Contains(t, out.String(), "abc-123")
}

func TestRestockCommandPropagatesDomainError(t *testing.T) {
	svc := &fakeService{err: &core.InvalidReferenceError{Reference: core.RefProduct, ID: 2}}
	err := Run(context.Background(), svc, []string{"restock", "1", "2", "30", "ops@example.test"}, &bytes.Buffer{})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidReference)
}

func TestTransferCommand(t *testing.T) {
	svc := &fakeService{}
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), svc, []string{"tr", "4", "2", "3"}, &out))
	assert.Equal(t, app.TransferRequest{SourceRecordID: 4, DestinationWarehouseID: 2, Amount: 3}, svc.gotTransfer)
	assert.Contains(t, out.String(), "Transferred 3 units of Widget")
	assert.Contains(t, out.String(), "Beta")
}

func TestTotalsAndLowStock(t *testing.T) {
	svc := &fakeService{}

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), svc, []string{"totals"}, &out))
	assert.Contains(t, out.String(), "Alpha")
	assert.Contains(t, out.String(), "12")

	out.Reset()
	require.NoError(t, Run(context.Background(), svc, []string{"low-stock"}, &out))
	assert.Contains(t, out.String(), "No stock below minimum.")
}

func TestBadInvocations(t *testing.T) {
	svc := &fakeService{}
	tests := [][]string{
		nil,
		{"bogus"},
		{"transfer", "1", "2"},
		{"reduce", "x", "2", "3"},
	}
	for _, args := range tests {
		assert.Error(t, Run(context.Background(), svc, args, &bytes.Buffer{}), "args %v", args)
	}
}
