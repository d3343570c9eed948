package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"warehouse-inventory/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type catalogService struct {
	pool *pgxpool.Pool
}

// NewCatalogService constructs a CatalogService backed by PostgreSQL.
func NewCatalogService(pool *pgxpool.Pool) CatalogService {
	return &catalogService{pool: pool}
}

func toPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ── Warehouses ────────────────────────────────────────────────────────────────

const selectWarehouse = `SELECT id, name, location, capacity, created_at FROM warehouses`

func scanWarehouse(row pgx.Row) (*Warehouse, error) {
	w := &Warehouse{}
	if err := row.Scan(&w.ID, &w.Name, &w.Location, &w.Capacity, &w.CreatedAt); err != nil {
		return nil, err
	}
	return w, nil
}

// findWarehouse is shared by the processors that must resolve a warehouse
// inside their own transaction.
func findWarehouse(ctx context.Context, q querier, id int64) (*Warehouse, error) {
	w, err := scanWarehouse(q.QueryRow(ctx, selectWarehouse+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundID("warehouse", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch warehouse %d: %w", id, err)
	}
	return w, nil
}

func validateWarehouse(input WarehouseInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return invalidField("name", "warehouse name is required")
	}
	if strings.TrimSpace(input.Location) == "" {
		return invalidField("location", "warehouse location is required")
	}
	if input.Capacity < 0 {
		return &InvalidQuantityError{Quantity: input.Capacity, Reason: "capacity cannot be negative"}
	}
	if input.Capacity > MaxQuantity {
		return &InvalidQuantityError{Quantity: input.Capacity, Reason: fmt.Sprintf("capacity cannot exceed %d", MaxQuantity)}
	}
	return nil
}

func (s *catalogService) FindWarehouse(ctx context.Context, id int64) (*Warehouse, error) {
	return findWarehouse(ctx, s.pool, id)
}

func (s *catalogService) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	rows, err := s.pool.Query(ctx, selectWarehouse+" ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query warehouses: %w", err)
	}
	defer rows.Close()

	warehouses := []Warehouse{}
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan warehouse: %w", err)
		}
		warehouses = append(warehouses, *w)
	}
	return warehouses, rows.Err()
}

func (s *catalogService) CreateWarehouse(ctx context.Context, input WarehouseInput) (*Warehouse, error) {
	if err := validateWarehouse(input); err != nil {
		return nil, err
	}
	w, err := scanWarehouse(s.pool.QueryRow(ctx, `
		INSERT INTO warehouses (name, location, capacity)
		VALUES ($1, $2, $3)
		RETURNING id, name, location, capacity, created_at`,
		strings.TrimSpace(input.Name), strings.TrimSpace(input.Location), input.Capacity,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create warehouse %q: %w", input.Name, err)
	}
	return w, nil
}

func (s *catalogService) UpdateWarehouse(ctx context.Context, id int64, input WarehouseInput) (*Warehouse, error) {
	if err := validateWarehouse(input); err != nil {
		return nil, err
	}
	w, err := scanWarehouse(s.pool.QueryRow(ctx, `
		UPDATE warehouses SET name = $1, location = $2, capacity = $3
		WHERE id = $4
		RETURNING id, name, location, capacity, created_at`,
		strings.TrimSpace(input.Name), strings.TrimSpace(input.Location), input.Capacity, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundID("warehouse", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update warehouse %d: %w", id, err)
	}
	return w, nil
}

func (s *catalogService) DeleteWarehouse(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM warehouses WHERE id = $1", id)
	if db.ErrorCode(err) == db.CodeForeignKeyViolation {
		return &ConflictError{Reason: fmt.Sprintf("warehouse %d still has stock or order history", id)}
	}
	if err != nil {
		return fmt.Errorf("failed to delete warehouse %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundID("warehouse", id)
	}
	return nil
}

// ── Products ──────────────────────────────────────────────────────────────────

const selectProduct = `SELECT id, name, price, category, supplier_id, created_at FROM products`

func scanProduct(row pgx.Row) (*Product, error) {
	p := &Product{}
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.SupplierID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func findProduct(ctx context.Context, q querier, id int64) (*Product, error) {
	p, err := scanProduct(q.QueryRow(ctx, selectProduct+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundID("product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}
	return p, nil
}

func (s *catalogService) FindProduct(ctx context.Context, id int64) (*Product, error) {
	return findProduct(ctx, s.pool, id)
}

func (s *catalogService) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx, selectProduct+" ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func validateProduct(input ProductInput) (string, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", invalidField("name", "product name is required")
	}
	if input.Price.IsNegative() {
		return "", invalidField("price", "product price cannot be negative")
	}
	return name, nil
}

// productWriteError maps constraint violations from a product insert or
// update. It returns nil when err carries none of them.
func productWriteError(err error, name string, input ProductInput) error {
	switch db.ErrorCode(err) {
	case db.CodeUniqueViolation:
		return &DuplicateRecordError{Entity: "product", Key: fmt.Sprintf("%q", name)}
	case db.CodeForeignKeyViolation:
		var id int64
		if input.SupplierID != nil {
			id = *input.SupplierID
		}
		return &InvalidReferenceError{Reference: RefSupplier, ID: id}
	}
	return nil
}

func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	name, err := validateProduct(input)
	if err != nil {
		return nil, err
	}

	p, err := scanProduct(s.pool.QueryRow(ctx, `
		INSERT INTO products (name, price, category, supplier_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, price, category, supplier_id, created_at`,
		name, input.Price.Round(2), toPtr(input.Category), input.SupplierID,
	))
	if mapped := productWriteError(err, name, input); mapped != nil {
		return nil, mapped
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create product %q: %w", name, err)
	}
	return p, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id int64, input ProductInput) (*Product, error) {
	name, err := validateProduct(input)
	if err != nil {
		return nil, err
	}

	p, err := scanProduct(s.pool.QueryRow(ctx, `
		UPDATE products SET name = $1, price = $2, category = $3, supplier_id = $4
		WHERE id = $5
		RETURNING id, name, price, category, supplier_id, created_at`,
		name, input.Price.Round(2), toPtr(input.Category), input.SupplierID, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundID("product", id)
	}
	if mapped := productWriteError(err, name, input); mapped != nil {
		return nil, mapped
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	return p, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if db.ErrorCode(err) == db.CodeForeignKeyViolation {
		return &ConflictError{Reason: fmt.Sprintf("product %d still has stock or order history", id)}
	}
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundID("product", id)
	}
	return nil
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

const selectSupplier = `SELECT id, name, contact_email, phone, address, created_at FROM suppliers`

func scanSupplier(row pgx.Row) (*Supplier, error) {
	sp := &Supplier{}
	if err := row.Scan(&sp.ID, &sp.Name, &sp.ContactEmail, &sp.Phone, &sp.Address, &sp.CreatedAt); err != nil {
		return nil, err
	}
	return sp, nil
}

func (s *catalogService) FindSupplier(ctx context.Context, id int64) (*Supplier, error) {
	sp, err := scanSupplier(s.pool.QueryRow(ctx, selectSupplier+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundID("supplier", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supplier %d: %w", id, err)
	}
	return sp, nil
}

func (s *catalogService) ListSuppliers(ctx context.Context) ([]Supplier, error) {
	rows, err := s.pool.Query(ctx, selectSupplier+" ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []Supplier{}
	for rows.Next() {
		sp, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, *sp)
	}
	return suppliers, rows.Err()
}

func (s *catalogService) CreateSupplier(ctx context.Context, input SupplierInput) (*Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidField("name", "supplier name is required")
	}
	sp, err := scanSupplier(s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (name, contact_email, phone, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, contact_email, phone, address, created_at`,
		name, toPtr(input.ContactEmail), toPtr(input.Phone), toPtr(input.Address),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create supplier %q: %w", name, err)
	}
	return sp, nil
}

func (s *catalogService) UpdateSupplier(ctx context.Context, id int64, input SupplierInput) (*Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, invalidField("name", "supplier name is required")
	}
	sp, err := scanSupplier(s.pool.QueryRow(ctx, `
		UPDATE suppliers SET name = $1, contact_email = $2, phone = $3, address = $4
		WHERE id = $5
		RETURNING id, name, contact_email, phone, address, created_at`,
		name, toPtr(input.ContactEmail), toPtr(input.Phone), toPtr(input.Address), id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundID("supplier", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update supplier %d: %w", id, err)
	}
	return sp, nil
}

func (s *catalogService) DeleteSupplier(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete supplier %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundID("supplier", id)
	}
	return nil
}
