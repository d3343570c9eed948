package app

import "warehouse-inventory/internal/core"

// StockListResult is returned by the stock listing operations.
type StockListResult struct {
	Records []core.StockRecord
}

// RestockListResult is returned by ListRestockOrders.
type RestockListResult struct {
	Orders []core.RestockOrder
}

// CheckoutListResult is returned by ListCheckouts.
type CheckoutListResult struct {
	Checkouts []core.Checkout
}

// WarehouseTotalsResult is returned by WarehouseTotals.
type WarehouseTotalsResult struct {
	Totals []core.WarehouseTotal
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product
}

// SupplierListResult is returned by ListSuppliers.
type SupplierListResult struct {
	Suppliers []core.Supplier
}

// UserListResult is returned by ListUsers.
type UserListResult struct {
	Users []core.User
}

// ReportFile is a rendered download.
type ReportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}
