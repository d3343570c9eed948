package core

import (
	"context"
	"fmt"
	"strings"

	"warehouse-inventory/internal/db"
	"warehouse-inventory/internal/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CheckoutService takes stock out of a warehouse on behalf of a user.
type CheckoutService interface {
	// Checkout reduces the pair's stock by amount and records who took it.
	// A checkout that would leave negative stock writes nothing.
	Checkout(ctx context.Context, warehouseID, productID int64, amount int, userEmail string) (*Checkout, error)

	// ListCheckouts returns every checkout, newest first.
	ListCheckouts(ctx context.Context) ([]Checkout, error)
}

type checkoutService struct {
	pool   *pgxpool.Pool
	ledger StockLedger
	log    *zap.Logger
}

func NewCheckoutService(pool *pgxpool.Pool, ledger StockLedger, log *zap.Logger) CheckoutService {
	return &checkoutService{pool: pool, ledger: ledger, log: log}
}

func (s *checkoutService) Checkout(ctx context.Context, warehouseID, productID int64, amount int, userEmail string) (c *Checkout, err error) {
	defer func() { metrics.ObserveMutation(metrics.OpCheckout, ErrorKind(err)) }()

	if amount <= 0 {
		return nil, &InvalidQuantityError{Quantity: amount, Reason: "checkout amount must be positive"}
	}
	if amount > MaxQuantity {
		return nil, &InvalidQuantityError{Quantity: amount, Reason: fmt.Sprintf("checkout amount exceeds %d", MaxQuantity)}
	}
	userEmail = strings.TrimSpace(userEmail)
	if userEmail == "" {
		return nil, invalidField("user_email", "checkout must be attributed to a user")
	}

	err = db.WithTx(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := resolveReferences(ctx, tx, warehouseID, productID); err != nil {
			return err
		}
		rec, err := s.ledger.AdjustTx(ctx, tx, warehouseID, productID, -amount)
		if err != nil {
			return err
		}
		c = &Checkout{
			WarehouseID: warehouseID,
			ProductID:   productID,
			Amount:      amount,
			UserEmail:   userEmail,
			ProductName: rec.ProductName,
		}
		return tx.QueryRow(ctx, `
			INSERT INTO checkouts (warehouse_id, product_id, amount, user_email)
			VALUES ($1, $2, $3, $4)
			RETURNING id, checked_out_at
		`, warehouseID, productID, amount, userEmail).Scan(&c.ID, &c.CheckedOutAt)
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveUnits(metrics.OpCheckout, amount)
	s.log.Info("stock checked out",
		zap.Int64("warehouse_id", warehouseID),
		zap.Int64("product_id", productID),
		zap.Int("amount", amount),
		zap.String("user_email", userEmail),
	)
	return c, nil
}

func (s *checkoutService) ListCheckouts(ctx context.Context) ([]Checkout, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, c.warehouse_id, c.product_id, c.amount, c.user_email, c.checked_out_at, p.name
		FROM checkouts c
		JOIN products p ON p.id = c.product_id
		ORDER BY c.checked_out_at DESC, c.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query checkouts: %w", err)
	}
	defer rows.Close()

	checkouts := []Checkout{}
	for rows.Next() {
		var c Checkout
		if err := rows.Scan(&c.ID, &c.WarehouseID, &c.ProductID, &c.Amount,
			&c.UserEmail, &c.CheckedOutAt, &c.ProductName); err != nil {
			return nil, fmt.Errorf("failed to scan checkout: %w", err)
		}
		checkouts = append(checkouts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating checkouts: %w", err)
	}
	return checkouts, nil
}
