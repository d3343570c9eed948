package web

import (
	"time"

	"warehouse-inventory/internal/core"

	"github.com/shopspring/decimal"
)

// JSON shapes of the API. Core types stay free of wire tags.

type stockRecordJSON struct {
	ID            int64     `json:"id"`
	WarehouseID   int64     `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name,omitempty"`
	ProductID     int64     `json:"product_id"`
	ProductName   string    `json:"product_name,omitempty"`
	Quantity      int       `json:"quantity"`
	MinimumStock  int       `json:"minimum_stock"`
	Location      int       `json:"location"`
	LowStock      bool      `json:"low_stock"`
	LastUpdated   time.Time `json:"last_updated"`
}

func toStockRecordJSON(r core.StockRecord) stockRecordJSON {
	return stockRecordJSON{
		ID:            r.ID,
		WarehouseID:   r.WarehouseID,
		WarehouseName: r.WarehouseName,
		ProductID:     r.ProductID,
		ProductName:   r.ProductName,
		Quantity:      r.Quantity,
		MinimumStock:  r.MinimumStock,
		Location:      r.Location,
		LowStock:      r.BelowMinimum(),
		LastUpdated:   r.LastUpdated,
	}
}

func toStockRecordsJSON(records []core.StockRecord) []stockRecordJSON {
	out := make([]stockRecordJSON, 0, len(records))
	for _, r := range records {
		out = append(out, toStockRecordJSON(r))
	}
	return out
}

type transferJSON struct {
	Amount             int             `json:"amount"`
	Source             stockRecordJSON `json:"source"`
	Destination        stockRecordJSON `json:"destination"`
	DestinationCreated bool            `json:"destination_created"`
}

type restockOrderJSON struct {
	ID          int64     `json:"id"`
	Reference   string    `json:"reference"`
	WarehouseID int64     `json:"warehouse_id"`
	ProductID   int64     `json:"product_id"`
	SupplierID  *int64    `json:"supplier_id"`
	Amount      int       `json:"amount"`
	OrderedBy   string    `json:"ordered_by"`
	OrderedAt   time.Time `json:"ordered_at"`
}

func toRestockOrderJSON(o core.RestockOrder) restockOrderJSON {
	return restockOrderJSON{
		ID:          o.ID,
		Reference:   o.Reference,
		WarehouseID: o.WarehouseID,
		ProductID:   o.ProductID,
		SupplierID:  o.SupplierID,
		Amount:      o.Amount,
		OrderedBy:   o.OrderedBy,
		OrderedAt:   o.OrderedAt,
	}
}

type checkoutJSON struct {
	ID           int64     `json:"id"`
	WarehouseID  int64     `json:"warehouse_id"`
	ProductID    int64     `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	Amount       int       `json:"amount"`
	UserEmail    string    `json:"user_email"`
	CheckedOutAt time.Time `json:"checked_out_at"`
}

func toCheckoutJSON(c core.Checkout) checkoutJSON {
	return checkoutJSON{
		ID:           c.ID,
		WarehouseID:  c.WarehouseID,
		ProductID:    c.ProductID,
		ProductName:  c.ProductName,
		Amount:       c.Amount,
		UserEmail:    c.UserEmail,
		CheckedOutAt: c.CheckedOutAt,
	}
}

type warehouseJSON struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

func toWarehouseJSON(w core.Warehouse) warehouseJSON {
	return warehouseJSON{ID: w.ID, Name: w.Name, Location: w.Location, Capacity: w.Capacity, CreatedAt: w.CreatedAt}
}

type warehouseTotalJSON struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	TotalQuantity int64  `json:"total_quantity"`
	Capacity      int    `json:"capacity"`
}

type productJSON struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Category   *string         `json:"category"`
	SupplierID *int64          `json:"supplier_id"`
	CreatedAt  time.Time       `json:"created_at"`
}

func toProductJSON(p core.Product) productJSON {
	return productJSON{ID: p.ID, Name: p.Name, Price: p.Price, Category: p.Category, SupplierID: p.SupplierID, CreatedAt: p.CreatedAt}
}

type supplierJSON struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ContactEmail *string   `json:"contact_email"`
	Phone        *string   `json:"phone"`
	Address      *string   `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

func toSupplierJSON(s core.Supplier) supplierJSON {
	return supplierJSON{ID: s.ID, Name: s.Name, ContactEmail: s.ContactEmail, Phone: s.Phone, Address: s.Address, CreatedAt: s.CreatedAt}
}

// userJSON never carries the password hash.
type userJSON struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	JobTitle  *string   `json:"job_title"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserJSON(u core.User) userJSON {
	return userJSON{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, JobTitle: u.JobTitle, CreatedAt: u.CreatedAt}
}
