package app

import (
	"context"
	"fmt"
	"time"

	"warehouse-inventory/internal/core"
	"warehouse-inventory/internal/report"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type appService struct {
	ledger    core.StockLedger
	transfers core.TransferService
	restocks  core.RestockService
	checkouts core.CheckoutService
	reporting core.ReportingService
	catalog   core.CatalogService
	users     core.UserService
	now       func() time.Time
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	ledger core.StockLedger,
	transfers core.TransferService,
	restocks core.RestockService,
	checkouts core.CheckoutService,
	reporting core.ReportingService,
	catalog core.CatalogService,
	users core.UserService,
) ApplicationService {
	return &appService{
		ledger:    ledger,
		transfers: transfers,
		restocks:  restocks,
		checkouts: checkouts,
		reporting: reporting,
		catalog:   catalog,
		users:     users,
		now:       time.Now,
	}
}

// New wires every core service on top of pool.
func New(pool *pgxpool.Pool, log *zap.Logger) ApplicationService {
	ledger := core.NewStockLedger(pool)
	return NewAppService(
		ledger,
		core.NewTransferService(pool, log.Named("transfer")),
		core.NewRestockService(pool, ledger, log.Named("restock")),
		core.NewCheckoutService(pool, ledger, log.Named("checkout")),
		core.NewReportingService(pool, ledger),
		core.NewCatalogService(pool),
		core.NewUserService(pool),
	)
}

// ── Stock ledger ──────────────────────────────────────────────────────────────

func (s *appService) ListStock(ctx context.Context) (*StockListResult, error) {
	records, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	return &StockListResult{Records: records}, nil
}

func (s *appService) GetStockRecord(ctx context.Context, id int64) (*core.StockRecord, error) {
	return s.ledger.GetByID(ctx, id)
}

func (s *appService) ListStockByWarehouse(ctx context.Context, warehouseID int64) (*StockListResult, error) {
	if _, err := s.catalog.FindWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	records, err := s.ledger.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return &StockListResult{Records: records}, nil
}

func (s *appService) ListStockByProduct(ctx context.Context, productID int64) (*StockListResult, error) {
	if _, err := s.catalog.FindProduct(ctx, productID); err != nil {
		return nil, err
	}
	records, err := s.ledger.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &StockListResult{Records: records}, nil
}

func (s *appService) CreateStockRecord(ctx context.Context, req CreateStockRecordRequest) (*core.StockRecord, error) {
	return s.ledger.Create(ctx, core.StockRecordInput{
		WarehouseID:  req.WarehouseID,
		ProductID:    req.ProductID,
		Quantity:     req.Quantity,
		MinimumStock: req.MinimumStock,
		Location:     req.Location,
	})
}

func (s *appService) UpdateStockRecord(ctx context.Context, req UpdateStockRecordRequest) (*core.StockRecord, error) {
	return s.ledger.UpdateLocationAndMinimum(ctx, req.ID, req.Location, req.MinimumStock)
}

func (s *appService) DeleteStockRecord(ctx context.Context, id int64) error {
	return s.ledger.Delete(ctx, id)
}

func (s *appService) ReduceStock(ctx context.Context, req ReduceStockRequest) (*core.StockRecord, error) {
	return s.ledger.Reduce(ctx, req.WarehouseID, req.ProductID, req.Amount)
}

func (s *appService) TransferStock(ctx context.Context, req TransferRequest) (*core.TransferResult, error) {
	return s.transfers.Transfer(ctx, req.SourceRecordID, req.DestinationWarehouseID, req.Amount)
}

func (s *appService) LowStock(ctx context.Context) (*StockListResult, error) {
	records, err := s.reporting.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	return &StockListResult{Records: records}, nil
}

// ── Restocks and checkouts ────────────────────────────────────────────────────

func (s *appService) Restock(ctx context.Context, req RestockRequest) (*core.RestockOrder, error) {
	return s.restocks.Restock(ctx, req.WarehouseID, req.ProductID, req.Amount, req.OrderedBy)
}

func (s *appService) ListRestockOrders(ctx context.Context, warehouseID *int64) (*RestockListResult, error) {
	var (
		orders []core.RestockOrder
		err    error
	)
	if warehouseID != nil {
		orders, err = s.restocks.ListRestockOrdersByWarehouse(ctx, *warehouseID)
	} else {
		orders, err = s.restocks.ListRestockOrders(ctx)
	}
	if err != nil {
		return nil, err
	}
	return &RestockListResult{Orders: orders}, nil
}

func (s *appService) Checkout(ctx context.Context, req CheckoutRequest) (*core.Checkout, error) {
	return s.checkouts.Checkout(ctx, req.WarehouseID, req.ProductID, req.Amount, req.UserEmail)
}

func (s *appService) ListCheckouts(ctx context.Context) (*CheckoutListResult, error) {
	checkouts, err := s.checkouts.ListCheckouts(ctx)
	if err != nil {
		return nil, err
	}
	return &CheckoutListResult{Checkouts: checkouts}, nil
}

// ── Warehouses, products, suppliers ───────────────────────────────────────────

func (s *appService) WarehouseTotals(ctx context.Context) (*WarehouseTotalsResult, error) {
	totals, err := s.reporting.WarehouseTotals(ctx)
	if err != nil {
		return nil, err
	}
	return &WarehouseTotalsResult{Totals: totals}, nil
}

func (s *appService) CreateWarehouse(ctx context.Context, req WarehouseRequest) (*core.Warehouse, error) {
	return s.catalog.CreateWarehouse(ctx, core.WarehouseInput(req))
}

func (s *appService) UpdateWarehouse(ctx context.Context, id int64, req WarehouseRequest) (*core.Warehouse, error) {
	return s.catalog.UpdateWarehouse(ctx, id, core.WarehouseInput(req))
}

func (s *appService) DeleteWarehouse(ctx context.Context, id int64) error {
	return s.catalog.DeleteWarehouse(ctx, id)
}

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

func (s *appService) GetProduct(ctx context.Context, id int64) (*core.Product, error) {
	return s.catalog.FindProduct(ctx, id)
}

func (s *appService) CreateProduct(ctx context.Context, req ProductRequest) (*core.Product, error) {
	return s.catalog.CreateProduct(ctx, core.ProductInput(req))
}

func (s *appService) UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*core.Product, error) {
	return s.catalog.UpdateProduct(ctx, id, core.ProductInput(req))
}

func (s *appService) DeleteProduct(ctx context.Context, id int64) error {
	return s.catalog.DeleteProduct(ctx, id)
}

func (s *appService) ListSuppliers(ctx context.Context) (*SupplierListResult, error) {
	suppliers, err := s.catalog.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	return &SupplierListResult{Suppliers: suppliers}, nil
}

func (s *appService) GetSupplier(ctx context.Context, id int64) (*core.Supplier, error) {
	return s.catalog.FindSupplier(ctx, id)
}

func (s *appService) CreateSupplier(ctx context.Context, req SupplierRequest) (*core.Supplier, error) {
	return s.catalog.CreateSupplier(ctx, core.SupplierInput(req))
}

func (s *appService) UpdateSupplier(ctx context.Context, id int64, req SupplierRequest) (*core.Supplier, error) {
	return s.catalog.UpdateSupplier(ctx, id, core.SupplierInput(req))
}

func (s *appService) DeleteSupplier(ctx context.Context, id int64) error {
	return s.catalog.DeleteSupplier(ctx, id)
}

// ── Users ─────────────────────────────────────────────────────────────────────

func (s *appService) ListUsers(ctx context.Context) (*UserListResult, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return &UserListResult{Users: users}, nil
}

func (s *appService) CreateUser(ctx context.Context, req CreateUserRequest) (*core.User, error) {
	return s.users.Create(ctx, core.UserInput(req))
}

func (s *appService) DeleteUser(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

func (s *appService) GetUser(ctx context.Context, id int64) (*core.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *appService) AuthenticateUser(ctx context.Context, email, password string) (*core.User, error) {
	return s.users.Authenticate(ctx, email, password)
}

// ── Reports ───────────────────────────────────────────────────────────────────

func (s *appService) WarehouseTotalsReport(ctx context.Context) (*ReportFile, error) {
	totals, err := s.reporting.WarehouseTotals(ctx)
	if err != nil {
		return nil, err
	}
	data, err := report.WarehouseTotals(totals)
	if err != nil {
		return nil, fmt.Errorf("failed to render warehouse totals: %w", err)
	}
	return s.reportFile("warehouse_totals", data), nil
}

func (s *appService) LowStockReport(ctx context.Context) (*ReportFile, error) {
	records, err := s.reporting.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	data, err := report.LowStock(records)
	if err != nil {
		return nil, fmt.Errorf("failed to render low stock: %w", err)
	}
	return s.reportFile("low_stock", data), nil
}

func (s *appService) reportFile(prefix string, data []byte) *ReportFile {
	return &ReportFile{
		FileName:    fmt.Sprintf("%s_%s.xlsx", prefix, s.now().Format("20060102_150405")),
		ContentType: report.ContentType,
		Data:        data,
	}
}
