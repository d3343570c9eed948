package core

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest quantity, amount or capacity the INTEGER
// columns hold. Larger values are rejected before they reach the database.
const MaxQuantity = math.MaxInt32

// inInt32 reports whether v fits an INTEGER column.
func inInt32(v int) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

// Warehouse is a physical storage site with a nominal unit capacity.
type Warehouse struct {
	ID        int64
	Name      string
	Location  string
	Capacity  int
	CreatedAt time.Time
}

// Supplier provides products; products reference at most one supplier.
type Supplier struct {
	ID           int64
	Name         string
	ContactEmail *string
	Phone        *string
	Address      *string
	CreatedAt    time.Time
}

// Product is a catalog item. SupplierID is nil when no supplier is assigned.
type Product struct {
	ID         int64
	Name       string
	Price      decimal.Decimal
	Category   *string
	SupplierID *int64
	CreatedAt  time.Time
}

// StockRecord is the quantity of one product held in one warehouse.
// WarehouseName and ProductName are filled by list queries that join them.
type StockRecord struct {
	ID            int64
	WarehouseID   int64
	ProductID     int64
	Quantity      int
	MinimumStock  int
	Location      int
	LastUpdated   time.Time
	WarehouseName string
	ProductName   string
}

// BelowMinimum reports whether the record is low on stock.
func (r StockRecord) BelowMinimum() bool {
	return r.Quantity < r.MinimumStock
}

// StockRecordInput holds the fields required to create a stock record directly.
type StockRecordInput struct {
	WarehouseID  int64
	ProductID    int64
	Quantity     int
	MinimumStock int
	Location     int
}

// RestockOrder is the immutable audit record of one restock.
type RestockOrder struct {
	ID          int64
	Reference   string
	WarehouseID int64
	ProductID   int64
	SupplierID  *int64
	Amount      int
	OrderedBy   string
	OrderedAt   time.Time
}

// Checkout records stock taken out of a warehouse by a user.
type Checkout struct {
	ID           int64
	WarehouseID  int64
	ProductID    int64
	Amount       int
	UserEmail    string
	CheckedOutAt time.Time
	ProductName  string
}

// WarehouseTotal is one row of the per-warehouse stock summary.
type WarehouseTotal struct {
	WarehouseID   int64
	Name          string
	Location      string
	TotalQuantity int64
	Capacity      int
}

// TransferResult describes both sides of a completed transfer.
type TransferResult struct {
	Source             StockRecord
	Destination        StockRecord
	Amount             int
	DestinationCreated bool
}
