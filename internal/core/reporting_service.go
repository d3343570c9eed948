package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportingService provides read-only projections over the stock ledger.
type ReportingService interface {
	// WarehouseTotals returns one row per warehouse with the sum of its stock
	// quantities. Warehouses with no stock report zero. Rows are ordered by
	// name in byte order, then by id.
	WarehouseTotals(ctx context.Context) ([]WarehouseTotal, error)

	// WarehouseTotal returns the total for a single warehouse.
	WarehouseTotal(ctx context.Context, warehouseID int64) (*WarehouseTotal, error)

	// LowStock returns every stock record below its minimum, evaluated now.
	LowStock(ctx context.Context) ([]StockRecord, error)
}

type reportingService struct {
	pool   *pgxpool.Pool
	ledger StockLedger
}

// NewReportingService constructs a ReportingService backed by PostgreSQL.
func NewReportingService(pool *pgxpool.Pool, ledger StockLedger) ReportingService {
	return &reportingService{pool: pool, ledger: ledger}
}

const selectWarehouseTotals = `
	SELECT w.id, w.name, w.location, COALESCE(SUM(sr.quantity), 0)::BIGINT, w.capacity
	FROM warehouses w
	LEFT JOIN stock_records sr ON sr.warehouse_id = w.id`

func scanWarehouseTotal(row pgx.Row) (*WarehouseTotal, error) {
	t := &WarehouseTotal{}
	if err := row.Scan(&t.WarehouseID, &t.Name, &t.Location, &t.TotalQuantity, &t.Capacity); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *reportingService) WarehouseTotals(ctx context.Context) ([]WarehouseTotal, error) {
	rows, err := s.pool.Query(ctx, selectWarehouseTotals+`
		GROUP BY w.id, w.name, w.location, w.capacity
		ORDER BY w.name COLLATE "C", w.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query warehouse totals: %w", err)
	}
	defer rows.Close()

	totals := []WarehouseTotal{}
	for rows.Next() {
		t, err := scanWarehouseTotal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan warehouse total: %w", err)
		}
		totals = append(totals, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating warehouse totals: %w", err)
	}
	return totals, nil
}

func (s *reportingService) WarehouseTotal(ctx context.Context, warehouseID int64) (*WarehouseTotal, error) {
	t, err := scanWarehouseTotal(s.pool.QueryRow(ctx, selectWarehouseTotals+`
		WHERE w.id = $1
		GROUP BY w.id, w.name, w.location, w.capacity`, warehouseID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundID("warehouse", warehouseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compute total for warehouse %d: %w", warehouseID, err)
	}
	return t, nil
}

func (s *reportingService) LowStock(ctx context.Context) ([]StockRecord, error) {
	return s.ledger.BelowMinimum(ctx)
}
