package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// WarehouseInput holds the fields required to create or update a warehouse.
type WarehouseInput struct {
	Name     string
	Location string
	Capacity int
}

// ProductInput holds the fields required to create or update a product.
// Category and SupplierID are optional.
type ProductInput struct {
	Name       string
	Price      decimal.Decimal
	Category   string
	SupplierID *int64
}

// SupplierInput holds the fields required to create or update a supplier.
type SupplierInput struct {
	Name         string
	ContactEmail string
	Phone        string
	Address      string
}

// CatalogService manages the reference entities the stock ledger points at.
type CatalogService interface {
	FindWarehouse(ctx context.Context, id int64) (*Warehouse, error)
	ListWarehouses(ctx context.Context) ([]Warehouse, error)
	CreateWarehouse(ctx context.Context, input WarehouseInput) (*Warehouse, error)
	UpdateWarehouse(ctx context.Context, id int64, input WarehouseInput) (*Warehouse, error)
	// DeleteWarehouse refuses with ConflictError while stock records,
	// restock orders or checkouts still reference the warehouse.
	DeleteWarehouse(ctx context.Context, id int64) error

	FindProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	// CreateProduct returns DuplicateRecordError for a name already in use and
	// InvalidReferenceError for an unknown supplier.
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	// UpdateProduct replaces every product field, with the same errors as
	// CreateProduct plus NotFoundError for an unknown id.
	UpdateProduct(ctx context.Context, id int64, input ProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	FindSupplier(ctx context.Context, id int64) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]Supplier, error)
	CreateSupplier(ctx context.Context, input SupplierInput) (*Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, input SupplierInput) (*Supplier, error)
	// DeleteSupplier detaches the supplier from its products and past restock
	// orders before removing it.
	DeleteSupplier(ctx context.Context, id int64) error
}
