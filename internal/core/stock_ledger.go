package core

import (
	"context"
	"errors"
	"fmt"

	"warehouse-inventory/internal/db"
	"warehouse-inventory/internal/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StockLedger owns the authoritative quantity of every (warehouse, product)
// pair. Quantities never go negative: an adjustment that would do so is
// refused with InvalidQuantityError and nothing is written.
type StockLedger interface {
	// Standalone operations (manage their own transactions).

	// Get returns the record for the pair, or NotFoundError.
	Get(ctx context.Context, warehouseID, productID int64) (*StockRecord, error)
	GetByID(ctx context.Context, id int64) (*StockRecord, error)
	// List returns every record ordered by warehouse name, then product name.
	List(ctx context.Context) ([]StockRecord, error)
	// ListByWarehouse returns the warehouse's records ordered by product name.
	ListByWarehouse(ctx context.Context, warehouseID int64) ([]StockRecord, error)
	ListByProduct(ctx context.Context, productID int64) ([]StockRecord, error)

	// Adjust applies quantity += delta to an existing record. It never creates
	// a record, whatever the sign of delta.
	Adjust(ctx context.Context, warehouseID, productID int64, delta int) (*StockRecord, error)
	// Reduce is Adjust with -amount; amount must be positive.
	Reduce(ctx context.Context, warehouseID, productID int64, amount int) (*StockRecord, error)
	// Create inserts a record; DuplicateRecordError if the pair already has one.
	Create(ctx context.Context, input StockRecordInput) (*StockRecord, error)
	Delete(ctx context.Context, id int64) error
	// BelowMinimum returns every record whose quantity is under its minimum stock.
	BelowMinimum(ctx context.Context) ([]StockRecord, error)
	UpdateLocationAndMinimum(ctx context.Context, id int64, location, minimumStock int) (*StockRecord, error)

	// TX-scoped operations: work within a caller-provided transaction.
	// Used by the restock and checkout processors so the stock change commits
	// atomically with their audit row.

	// LockTx returns the pair's record locked FOR UPDATE until tx ends.
	LockTx(ctx context.Context, tx pgx.Tx, warehouseID, productID int64) (*StockRecord, error)
	// AdjustTx is Adjust inside tx.
	AdjustTx(ctx context.Context, tx pgx.Tx, warehouseID, productID int64, delta int) (*StockRecord, error)
}

type stockLedger struct {
	pool *pgxpool.Pool
}

func NewStockLedger(pool *pgxpool.Pool) StockLedger {
	return &stockLedger{pool: pool}
}

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const selectStockRecord = `
	SELECT sr.id, sr.warehouse_id, sr.product_id, sr.quantity, sr.minimum_stock,
	       sr.location, sr.last_updated, w.name, p.name
	FROM stock_records sr
	JOIN warehouses w ON w.id = sr.warehouse_id
	JOIN products p   ON p.id = sr.product_id`

func scanStockRecord(row pgx.Row) (*StockRecord, error) {
	var r StockRecord
	if err := row.Scan(
		&r.ID, &r.WarehouseID, &r.ProductID, &r.Quantity, &r.MinimumStock,
		&r.Location, &r.LastUpdated, &r.WarehouseName, &r.ProductName,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

func collectStockRecords(rows pgx.Rows) ([]StockRecord, error) {
	defer rows.Close()
	records := []StockRecord{}
	for rows.Next() {
		r, err := scanStockRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock record: %w", err)
		}
		records = append(records, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock records: %w", err)
	}
	return records, nil
}

func getStockRecordByID(ctx context.Context, q querier, id int64) (*StockRecord, error) {
	r, err := scanStockRecord(q.QueryRow(ctx, selectStockRecord+" WHERE sr.id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundID("stock record", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock record %d: %w", id, err)
	}
	return r, nil
}

// ── Standalone operations ─────────────────────────────────────────────────────

func (s *stockLedger) Get(ctx context.Context, warehouseID, productID int64) (*StockRecord, error) {
	r, err := scanStockRecord(s.pool.QueryRow(ctx,
		selectStockRecord+" WHERE sr.warehouse_id = $1 AND sr.product_id = $2",
		warehouseID, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundPair(warehouseID, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stock record: %w", err)
	}
	return r, nil
}

func (s *stockLedger) GetByID(ctx context.Context, id int64) (*StockRecord, error) {
	return getStockRecordByID(ctx, s.pool, id)
}

func (s *stockLedger) List(ctx context.Context) ([]StockRecord, error) {
	rows, err := s.pool.Query(ctx, selectStockRecord+" ORDER BY w.name, p.name, sr.id")
	if err != nil {
		return nil, fmt.Errorf("failed to query stock records: %w", err)
	}
	return collectStockRecords(rows)
}

func (s *stockLedger) ListByWarehouse(ctx context.Context, warehouseID int64) ([]StockRecord, error) {
	rows, err := s.pool.Query(ctx,
		selectStockRecord+" WHERE sr.warehouse_id = $1 ORDER BY p.name, sr.id", warehouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock for warehouse %d: %w", warehouseID, err)
	}
	return collectStockRecords(rows)
}

func (s *stockLedger) ListByProduct(ctx context.Context, productID int64) ([]StockRecord, error) {
	rows, err := s.pool.Query(ctx,
		selectStockRecord+" WHERE sr.product_id = $1 ORDER BY w.name, sr.id", productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock for product %d: %w", productID, err)
	}
	return collectStockRecords(rows)
}

func (s *stockLedger) Adjust(ctx context.Context, warehouseID, productID int64, delta int) (rec *StockRecord, err error) {
	defer func() { metrics.ObserveMutation(metrics.OpAdjust, ErrorKind(err)) }()

	err = db.WithTx(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		rec, txErr = s.AdjustTx(ctx, tx, warehouseID, productID, delta)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *stockLedger) Reduce(ctx context.Context, warehouseID, productID int64, amount int) (*StockRecord, error) {
	if amount <= 0 {
		return nil, &InvalidQuantityError{Quantity: amount, Reason: "reduction amount must be positive"}
	}
	if amount > MaxQuantity {
		return nil, &InvalidQuantityError{Quantity: amount, Reason: fmt.Sprintf("reduction amount exceeds %d", MaxQuantity)}
	}
	return s.Adjust(ctx, warehouseID, productID, -amount)
}

func (s *stockLedger) Create(ctx context.Context, input StockRecordInput) (rec *StockRecord, err error) {
	defer func() { metrics.ObserveMutation(metrics.OpCreate, ErrorKind(err)) }()

	if input.Quantity < 0 {
		return nil, &InvalidQuantityError{Quantity: input.Quantity, Reason: "initial quantity cannot be negative"}
	}
	if input.MinimumStock < 0 {
		return nil, &InvalidQuantityError{Quantity: input.MinimumStock, Reason: "minimum stock cannot be negative"}
	}
	if input.Quantity > MaxQuantity || input.MinimumStock > MaxQuantity {
		return nil, &InvalidQuantityError{Quantity: max(input.Quantity, input.MinimumStock), Reason: fmt.Sprintf("quantities cannot exceed %d", MaxQuantity)}
	}
	if !inInt32(input.Location) {
		return nil, invalidField("location", "bin location is out of range")
	}

	err = db.WithTx(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, `
			INSERT INTO stock_records (warehouse_id, product_id, quantity, minimum_stock, location, last_updated)
			VALUES ($1, $2, $3, $4, $5, NOW())
			RETURNING id
		`, input.WarehouseID, input.ProductID, input.Quantity, input.MinimumStock, input.Location).Scan(&id)
		if err != nil {
			return stockInsertError(err, input.WarehouseID, input.ProductID)
		}
		rec, err = getStockRecordByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// stockInsertError translates constraint violations on stock_records into
// domain errors.
func stockInsertError(err error, warehouseID, productID int64) error {
	switch db.ErrorCode(err) {
	case db.CodeUniqueViolation:
		return &DuplicateRecordError{
			Entity: "stock record",
			Key:    fmt.Sprintf("for warehouse=%d product=%d", warehouseID, productID),
		}
	case db.CodeForeignKeyViolation:
		if db.ConstraintName(err) == "stock_records_product_id_fkey" {
			return &InvalidReferenceError{Reference: RefProduct, ID: productID}
		}
		return &InvalidReferenceError{Reference: RefWarehouse, ID: warehouseID}
	}
	return fmt.Errorf("failed to insert stock record: %w", err)
}

func (s *stockLedger) Delete(ctx context.Context, id int64) (err error) {
	defer func() { metrics.ObserveMutation(metrics.OpDelete, ErrorKind(err)) }()

	tag, err := s.pool.Exec(ctx, "DELETE FROM stock_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete stock record %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundID("stock record", id)
	}
	return nil
}

func (s *stockLedger) BelowMinimum(ctx context.Context) ([]StockRecord, error) {
	rows, err := s.pool.Query(ctx,
		selectStockRecord+" WHERE sr.quantity < sr.minimum_stock ORDER BY sr.id")
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock: %w", err)
	}
	return collectStockRecords(rows)
}

func (s *stockLedger) UpdateLocationAndMinimum(ctx context.Context, id int64, location, minimumStock int) (rec *StockRecord, err error) {
	defer func() { metrics.ObserveMutation(metrics.OpUpdate, ErrorKind(err)) }()

	if minimumStock < 0 {
		return nil, &InvalidQuantityError{Quantity: minimumStock, Reason: "minimum stock cannot be negative"}
	}
	if minimumStock > MaxQuantity {
		return nil, &InvalidQuantityError{Quantity: minimumStock, Reason: fmt.Sprintf("minimum stock cannot exceed %d", MaxQuantity)}
	}
	if !inInt32(location) {
		return nil, invalidField("location", "bin location is out of range")
	}

	err = db.WithTx(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE stock_records
			SET location = $1, minimum_stock = $2, last_updated = NOW()
			WHERE id = $3
		`, location, minimumStock, id)
		if err != nil {
			return fmt.Errorf("failed to update stock record %d: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return notFoundID("stock record", id)
		}
		rec, err = getStockRecordByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ── TX-scoped operations ──────────────────────────────────────────────────────

func (s *stockLedger) LockTx(ctx context.Context, tx pgx.Tx, warehouseID, productID int64) (*StockRecord, error) {
	r, err := scanStockRecord(tx.QueryRow(ctx,
		selectStockRecord+" WHERE sr.warehouse_id = $1 AND sr.product_id = $2 FOR UPDATE OF sr",
		warehouseID, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundPair(warehouseID, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock stock record: %w", err)
	}
	return r, nil
}

func (s *stockLedger) AdjustTx(ctx context.Context, tx pgx.Tx, warehouseID, productID int64, delta int) (*StockRecord, error) {
	if delta > MaxQuantity || delta < -MaxQuantity {
		return nil, &InvalidQuantityError{Quantity: delta, Reason: fmt.Sprintf("adjustment exceeds %d units", MaxQuantity)}
	}
	rec, err := s.LockTx(ctx, tx, warehouseID, productID)
	if err != nil {
		return nil, err
	}

	newQty := rec.Quantity + delta
	if newQty < 0 {
		return nil, &InvalidQuantityError{
			Quantity: delta,
			Reason:   fmt.Sprintf("only %d on hand, adjustment would leave %d", rec.Quantity, newQty),
		}
	}
	if newQty > MaxQuantity {
		return nil, &InvalidQuantityError{
			Quantity: delta,
			Reason:   fmt.Sprintf("%d on hand, adjustment would exceed %d", rec.Quantity, MaxQuantity),
		}
	}

	err = tx.QueryRow(ctx, `
		UPDATE stock_records
		SET quantity = $1, last_updated = NOW()
		WHERE id = $2
		RETURNING last_updated
	`, newQty, rec.ID).Scan(&rec.LastUpdated)
	if err != nil {
		return nil, fmt.Errorf("failed to update stock record %d: %w", rec.ID, err)
	}
	rec.Quantity = newQty
	return rec, nil
}
