// verify-db connects to the configured database, brings the schema up to date
// and audits the stock ledger. It exits non-zero when any audit finds rows.
//
// Usage: go run ./cmd/verify-db
package main

import (
	"context"
	"log"
	"os"

	"warehouse-inventory/internal/config"
	"warehouse-inventory/internal/core"
	"warehouse-inventory/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// audit is a query that must return no rows on a consistent ledger. Each row
// it does return is one offending id.
type audit struct {
	name  string
	query string
}

var audits = []audit{
	{"negative quantity", `SELECT id FROM stock_records WHERE quantity < 0`},
	{"negative minimum stock", `SELECT id FROM stock_records WHERE minimum_stock < 0`},
	{"duplicate warehouse/product pair", `
		SELECT MIN(id) FROM stock_records
		GROUP BY warehouse_id, product_id
		HAVING COUNT(*) > 1`},
	{"non-positive restock amount", `SELECT id FROM restock_orders WHERE amount <= 0`},
	{"non-positive checkout amount", `SELECT id FROM checkouts WHERE amount <= 0`},
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("WMS_CONFIG"))
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("[CONNECT] %v", err)
	}
	defer pool.Close()
	log.Println("[CONNECT] success")

	if err := db.ApplySchema(ctx, pool); err != nil {
		log.Fatalf("[SCHEMA] %v", err)
	}
	log.Println("[SCHEMA] up to date")

	failed := 0
	for _, a := range audits {
		ids, err := runAudit(ctx, pool, a)
		if err != nil {
			log.Fatalf("[ERROR] %s: %v", a.name, err)
		}
		if len(ids) > 0 {
			failed++
			log.Printf("[FAIL] %s: ids %v", a.name, ids)
			continue
		}
		log.Printf("[OK] %s", a.name)
	}

	totals, err := core.NewReportingService(pool, core.NewStockLedger(pool)).WarehouseTotals(ctx)
	if err != nil {
		log.Fatalf("[ERROR] warehouse totals: %v", err)
	}
	for _, t := range totals {
		log.Printf("[TOTAL] %-20s %8d / %d", t.Name, t.TotalQuantity, t.Capacity)
	}

	if failed > 0 {
		pool.Close()
		log.Fatalf("[DONE] %d audit(s) failed", failed)
	}
	log.Println("[DONE] ledger consistent.")
}

func runAudit(ctx context.Context, pool *pgxpool.Pool, a audit) ([]int64, error) {
	rows, err := pool.Query(ctx, a.query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
