package app

import "github.com/shopspring/decimal"

// CreateStockRecordRequest is the input for creating a stock record directly.
type CreateStockRecordRequest struct {
	WarehouseID  int64
	ProductID    int64
	Quantity     int
	MinimumStock int
	Location     int
}

// UpdateStockRecordRequest changes the non-quantity fields of a stock record.
type UpdateStockRecordRequest struct {
	ID           int64
	Location     int
	MinimumStock int
}

// ReduceStockRequest removes Amount units from a (warehouse, product) pair.
type ReduceStockRequest struct {
	WarehouseID int64
	ProductID   int64
	Amount      int
}

// TransferRequest moves Amount units from a stock record to another warehouse.
type TransferRequest struct {
	SourceRecordID         int64
	DestinationWarehouseID int64
	Amount                 int
}

// RestockRequest is the input for receiving stock into a warehouse.
type RestockRequest struct {
	WarehouseID int64
	ProductID   int64
	Amount      int
	OrderedBy   string // email of the user placing the order
}

// CheckoutRequest is the input for taking stock out of a warehouse.
type CheckoutRequest struct {
	WarehouseID int64
	ProductID   int64
	Amount      int
	UserEmail   string
}

// WarehouseRequest is the input for creating or updating a warehouse.
type WarehouseRequest struct {
	Name     string
	Location string
	Capacity int
}

// ProductRequest is the input for creating or updating a product.
type ProductRequest struct {
	Name       string
	Price      decimal.Decimal
	Category   string
	SupplierID *int64
}

// SupplierRequest is the input for creating or updating a supplier.
type SupplierRequest struct {
	Name         string
	ContactEmail string
	Phone        string
	Address      string
}

// CreateUserRequest is the input for registering a user.
type CreateUserRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	JobTitle  string
}
