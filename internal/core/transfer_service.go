package core

import (
	"context"
	"errors"
	"fmt"

	"warehouse-inventory/internal/db"
	"warehouse-inventory/internal/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TransferService moves stock of one product between warehouses.
type TransferService interface {
	// Transfer moves amount units from the stock record sourceRecordID to the
	// same product in destinationWarehouseID, creating the destination record
	// when the warehouse does not hold the product yet. Debit and credit commit
	// together or not at all.
	Transfer(ctx context.Context, sourceRecordID, destinationWarehouseID int64, amount int) (*TransferResult, error)
}

type transferService struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewTransferService constructs a TransferService backed by PostgreSQL.
func NewTransferService(pool *pgxpool.Pool, log *zap.Logger) TransferService {
	return &transferService{pool: pool, log: log}
}

func (s *transferService) Transfer(ctx context.Context, sourceRecordID, destinationWarehouseID int64, amount int) (res *TransferResult, err error) {
	defer func() { metrics.ObserveMutation(metrics.OpTransfer, ErrorKind(err)) }()

	if amount <= 0 {
		return nil, &InvalidTransferError{Amount: amount, Reason: "amount must be positive"}
	}
	if amount > MaxQuantity {
		return nil, &InvalidTransferError{Amount: amount, Reason: fmt.Sprintf("amount exceeds %d", MaxQuantity)}
	}

	err = db.WithTx(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		var txErr error
		res, txErr = s.transferTx(ctx, tx, sourceRecordID, destinationWarehouseID, amount)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveUnits(metrics.OpTransfer, amount)
	s.log.Info("stock transferred",
		zap.Int64("source_record_id", res.Source.ID),
		zap.Int64("product_id", res.Source.ProductID),
		zap.Int64("from_warehouse_id", res.Source.WarehouseID),
		zap.Int64("to_warehouse_id", res.Destination.WarehouseID),
		zap.Int("amount", amount),
		zap.Bool("destination_created", res.DestinationCreated),
	)
	return res, nil
}

func (s *transferService) transferTx(ctx context.Context, tx pgx.Tx, sourceID, destWarehouseID int64, amount int) (*TransferResult, error) {
	// Unlocked read to learn the product and the destination row id.
	src, err := getStockRecordByID(ctx, tx, sourceID)
	if err != nil {
		return nil, err
	}
	if _, err := findWarehouse(ctx, tx, destWarehouseID); err != nil {
		return nil, err
	}
	if destWarehouseID == src.WarehouseID {
		return nil, &InvalidTransferError{
			Amount:    amount,
			Available: src.Quantity,
			Reason:    "destination is the source warehouse",
		}
	}

	lockIDs := []int64{src.ID}
	var destID int64
	destQty := 0
	err = tx.QueryRow(ctx,
		"SELECT id FROM stock_records WHERE warehouse_id = $1 AND product_id = $2",
		destWarehouseID, src.ProductID).Scan(&destID)
	switch {
	case err == nil:
		lockIDs = append(lockIDs, destID)
	case errors.Is(err, pgx.ErrNoRows):
	default:
		return nil, fmt.Errorf("failed to look up destination record: %w", err)
	}

	locked, err := lockStockRecords(ctx, tx, lockIDs)
	if err != nil {
		return nil, err
	}
	src, ok := locked[sourceID]
	if !ok {
		return nil, notFoundID("stock record", sourceID)
	}
	if dest, ok := locked[destID]; ok {
		destQty = dest.Quantity
	}

	if amount > src.Quantity {
		return nil, &InvalidTransferError{
			Amount:    amount,
			Available: src.Quantity,
			Reason:    fmt.Sprintf("only %d available in source", src.Quantity),
		}
	}

	if destQty+amount > MaxQuantity {
		return nil, &InvalidTransferError{
			Amount:    amount,
			Available: src.Quantity,
			Reason:    fmt.Sprintf("destination holds %d, transfer would exceed %d", destQty, MaxQuantity),
		}
	}

	if _, err := tx.Exec(ctx, `
		UPDATE stock_records
		SET quantity = quantity - $1, last_updated = NOW()
		WHERE id = $2
	`, amount, src.ID); err != nil {
		return nil, fmt.Errorf("failed to debit stock record %d: %w", src.ID, err)
	}

	var created bool
	err = tx.QueryRow(ctx, `
		INSERT INTO stock_records (warehouse_id, product_id, quantity, minimum_stock, location, last_updated)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (warehouse_id, product_id) DO UPDATE
		    SET quantity = stock_records.quantity + EXCLUDED.quantity,
		        last_updated = NOW()
		RETURNING id, (xmax = 0) AS inserted
	`, destWarehouseID, src.ProductID, amount, src.MinimumStock, src.Location).Scan(&destID, &created)
	if db.ErrorCode(err) == db.CodeNumericOutOfRange {
		return nil, &InvalidTransferError{Amount: amount, Available: src.Quantity, Reason: fmt.Sprintf("destination would exceed %d", MaxQuantity)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to credit destination warehouse %d: %w", destWarehouseID, err)
	}

	srcAfter, err := getStockRecordByID(ctx, tx, src.ID)
	if err != nil {
		return nil, err
	}
	destAfter, err := getStockRecordByID(ctx, tx, destID)
	if err != nil {
		return nil, err
	}
	return &TransferResult{
		Source:             *srcAfter,
		Destination:        *destAfter,
		Amount:             amount,
		DestinationCreated: created,
	}, nil
}

// lockStockRecords locks the given rows in ascending id order so concurrent
// transfers between the same pair of records cannot deadlock each other.
func lockStockRecords(ctx context.Context, tx pgx.Tx, ids []int64) (map[int64]*StockRecord, error) {
	rows, err := tx.Query(ctx,
		selectStockRecord+" WHERE sr.id = ANY($1) ORDER BY sr.id FOR UPDATE OF sr", ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock stock records: %w", err)
	}
	records, err := collectStockRecords(rows)
	if err != nil {
		return nil, err
	}
	locked := make(map[int64]*StockRecord, len(records))
	for i := range records {
		locked[records[i].ID] = &records[i]
	}
	return locked, nil
}
