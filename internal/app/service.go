package app

import (
	"context"

	"warehouse-inventory/internal/core"
)

// ApplicationService is the single interface all adapters (CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// ── Stock ledger ──────────────────────────────────────────────────────────

	// ListStock returns every stock record with warehouse and product names.
	ListStock(ctx context.Context) (*StockListResult, error)

	// GetStockRecord returns a single stock record by ID.
	GetStockRecord(ctx context.Context, id int64) (*core.StockRecord, error)

	// ListStockByWarehouse returns the stock held in one warehouse.
	ListStockByWarehouse(ctx context.Context, warehouseID int64) (*StockListResult, error)

	// ListStockByProduct returns where a product is held.
	ListStockByProduct(ctx context.Context, productID int64) (*StockListResult, error)

	// CreateStockRecord creates a record for a pair that has none yet.
	CreateStockRecord(ctx context.Context, req CreateStockRecordRequest) (*core.StockRecord, error)

	// UpdateStockRecord changes the bin location and minimum stock of a record.
	UpdateStockRecord(ctx context.Context, req UpdateStockRecordRequest) (*core.StockRecord, error)

	// DeleteStockRecord removes a stock record.
	DeleteStockRecord(ctx context.Context, id int64) error

	// ReduceStock removes stock from a pair without recording a checkout.
	ReduceStock(ctx context.Context, req ReduceStockRequest) (*core.StockRecord, error)

	// TransferStock moves stock from a record to another warehouse.
	TransferStock(ctx context.Context, req TransferRequest) (*core.TransferResult, error)

	// LowStock returns every record below its minimum stock.
	LowStock(ctx context.Context) (*StockListResult, error)

	// ── Restocks and checkouts ────────────────────────────────────────────────

	// Restock receives stock into a warehouse and records a restock order.
	Restock(ctx context.Context, req RestockRequest) (*core.RestockOrder, error)

	// ListRestockOrders returns restock orders newest first, optionally for one warehouse.
	ListRestockOrders(ctx context.Context, warehouseID *int64) (*RestockListResult, error)

	// Checkout takes stock out of a warehouse on behalf of a user.
	Checkout(ctx context.Context, req CheckoutRequest) (*core.Checkout, error)

	// ListCheckouts returns checkouts newest first.
	ListCheckouts(ctx context.Context) (*CheckoutListResult, error)

	// ── Warehouses, products, suppliers ───────────────────────────────────────

	// WarehouseTotals returns every warehouse with its total stock quantity.
	WarehouseTotals(ctx context.Context) (*WarehouseTotalsResult, error)

	CreateWarehouse(ctx context.Context, req WarehouseRequest) (*core.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id int64, req WarehouseRequest) (*core.Warehouse, error)
	DeleteWarehouse(ctx context.Context, id int64) error

	ListProducts(ctx context.Context) (*ProductListResult, error)
	GetProduct(ctx context.Context, id int64) (*core.Product, error)
	CreateProduct(ctx context.Context, req ProductRequest) (*core.Product, error)
	UpdateProduct(ctx context.Context, id int64, req ProductRequest) (*core.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListSuppliers(ctx context.Context) (*SupplierListResult, error)
	GetSupplier(ctx context.Context, id int64) (*core.Supplier, error)
	CreateSupplier(ctx context.Context, req SupplierRequest) (*core.Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, req SupplierRequest) (*core.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error

	// ── Users ─────────────────────────────────────────────────────────────────

	ListUsers(ctx context.Context) (*UserListResult, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (*core.User, error)
	DeleteUser(ctx context.Context, id int64) error

	// GetUser returns a user by ID. Used to resolve an authenticated session.
	GetUser(ctx context.Context, id int64) (*core.User, error)

	// AuthenticateUser checks credentials and returns the user on success.
	AuthenticateUser(ctx context.Context, email, password string) (*core.User, error)

	// ── Reports ───────────────────────────────────────────────────────────────

	// WarehouseTotalsReport renders the warehouse totals as an xlsx workbook.
	WarehouseTotalsReport(ctx context.Context) (*ReportFile, error)

	// LowStockReport renders the low-stock list as an xlsx workbook.
	LowStockReport(ctx context.Context) (*ReportFile, error)
}
