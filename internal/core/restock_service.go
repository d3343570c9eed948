package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"warehouse-inventory/internal/db"
	"warehouse-inventory/internal/metrics"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// RestockService receives stock into a warehouse and keeps an audit trail of
// every receipt.
type RestockService interface {
	// Restock adds amount units of the product to the warehouse, creating the
	// stock record on first receipt, and records a RestockOrder attributed to
	// orderedBy. Both writes commit together.
	Restock(ctx context.Context, warehouseID, productID int64, amount int, orderedBy string) (*RestockOrder, error)

	// ListRestockOrders returns every restock order, newest first.
	ListRestockOrders(ctx context.Context) ([]RestockOrder, error)

	// ListRestockOrdersByWarehouse returns the warehouse's restock orders, newest first.
	ListRestockOrdersByWarehouse(ctx context.Context, warehouseID int64) ([]RestockOrder, error)
}

type restockService struct {
	pool   *pgxpool.Pool
	ledger StockLedger
	log    *zap.Logger
}

// NewRestockService constructs a RestockService. The ledger performs the
// quantity change inside the restock transaction.
func NewRestockService(pool *pgxpool.Pool, ledger StockLedger, log *zap.Logger) RestockService {
	return &restockService{pool: pool, ledger: ledger, log: log}
}

func (s *restockService) Restock(ctx context.Context, warehouseID, productID int64, amount int, orderedBy string) (order *RestockOrder, err error) {
	defer func() { metrics.ObserveMutation(metrics.OpRestock, ErrorKind(err)) }()

	if amount <= 0 {
		return nil, &InvalidQuantityError{Quantity: amount, Reason: "restock amount must be positive"}
	}
	if amount > MaxQuantity {
		return nil, &InvalidQuantityError{Quantity: amount, Reason: fmt.Sprintf("restock amount exceeds %d", MaxQuantity)}
	}
	orderedBy = strings.TrimSpace(orderedBy)
	if orderedBy == "" {
		return nil, invalidField("ordered_by", "restock must be attributed to a user")
	}

	err = db.WithTx(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		order, txErr = s.restockTx(ctx, tx, warehouseID, productID, amount, orderedBy)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveUnits(metrics.OpRestock, amount)
	s.log.Info("stock restocked",
		zap.String("reference", order.Reference),
		zap.Int64("warehouse_id", warehouseID),
		zap.Int64("product_id", productID),
		zap.Int("amount", amount),
		zap.String("ordered_by", orderedBy),
	)
	return order, nil
}

func (s *restockService) restockTx(ctx context.Context, tx pgx.Tx, warehouseID, productID int64, amount int, orderedBy string) (*RestockOrder, error) {
	product, err := resolveReferences(ctx, tx, warehouseID, productID)
	if err != nil {
		return nil, err
	}

	// Upsert-then-lock: make sure the pair exists, then adjust it under the
	// ledger's row lock.
	if _, err := tx.Exec(ctx, `
		INSERT INTO stock_records (warehouse_id, product_id, quantity, minimum_stock, location, last_updated)
		VALUES ($1, $2, 0, 0, 0, NOW())
		ON CONFLICT (warehouse_id, product_id) DO NOTHING
	`, warehouseID, productID); err != nil {
		return nil, fmt.Errorf("failed to ensure stock record: %w", err)
	}
	if _, err := s.ledger.AdjustTx(ctx, tx, warehouseID, productID, amount); err != nil {
		return nil, err
	}

	order := &RestockOrder{
		Reference:   uuid.NewString(),
		WarehouseID: warehouseID,
		ProductID:   productID,
		SupplierID:  product.SupplierID,
		Amount:      amount,
		OrderedBy:   orderedBy,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO restock_orders (reference, warehouse_id, product_id, supplier_id, amount, ordered_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, ordered_at
	`, order.Reference, warehouseID, productID, order.SupplierID, amount, orderedBy,
	).Scan(&order.ID, &order.OrderedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert restock order: %w", err)
	}
	return order, nil
}

// resolveReferences turns a missing warehouse or product into an
// InvalidReferenceError naming which one is unknown, and returns the product.
func resolveReferences(ctx context.Context, q querier, warehouseID, productID int64) (*Product, error) {
	if _, err := findWarehouse(ctx, q, warehouseID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &InvalidReferenceError{Reference: RefWarehouse, ID: warehouseID}
		}
		return nil, err
	}
	product, err := findProduct(ctx, q, productID)
	if errors.Is(err, ErrNotFound) {
		return nil, &InvalidReferenceError{Reference: RefProduct, ID: productID}
	}
	return product, err
}

const selectRestockOrder = `
	SELECT id, reference, warehouse_id, product_id, supplier_id, amount, ordered_by, ordered_at
	FROM restock_orders`

func (s *restockService) ListRestockOrders(ctx context.Context) ([]RestockOrder, error) {
	rows, err := s.pool.Query(ctx, selectRestockOrder+" ORDER BY ordered_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query restock orders: %w", err)
	}
	return collectRestockOrders(rows)
}

func (s *restockService) ListRestockOrdersByWarehouse(ctx context.Context, warehouseID int64) ([]RestockOrder, error) {
	rows, err := s.pool.Query(ctx,
		selectRestockOrder+" WHERE warehouse_id = $1 ORDER BY ordered_at DESC, id DESC", warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query restock orders for warehouse %d: %w", warehouseID, err)
	}
	return collectRestockOrders(rows)
}

func collectRestockOrders(rows pgx.Rows) ([]RestockOrder, error) {
	defer rows.Close()
	orders := []RestockOrder{}
	for rows.Next() {
		var o RestockOrder
		if err := rows.Scan(&o.ID, &o.Reference, &o.WarehouseID, &o.ProductID,
			&o.SupplierID, &o.Amount, &o.OrderedBy, &o.OrderedAt); err != nil {
			return nil, fmt.Errorf("failed to scan restock order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restock orders: %w", err)
	}
	return orders, nil
}
