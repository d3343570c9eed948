// restore-seed is a one-shot tool that loads demo warehouses, suppliers,
// products and stock, plus an admin user. Every step is idempotent, so it is
// safe to re-run against a database that already holds the seed.
//
// Usage: go run ./cmd/restore-seed
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"warehouse-inventory/internal/config"
	"warehouse-inventory/internal/core"
	"warehouse-inventory/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("WMS_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	if err := db.ApplySchema(ctx, pool); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	err = db.WithTx(ctx, pool, func(ctx context.Context, tx pgx.Tx) error {
		log.Println("Restoring suppliers...")
		if _, err := tx.Exec(ctx, `
			INSERT INTO suppliers (name, contact_email, phone)
			SELECT v.name, v.email, v.phone
			FROM (VALUES
			    ('Northwind Supply', 'orders@northwind.example', '+1-555-0100'),
			    ('Contoso Parts',    'sales@contoso.example',    '+1-555-0142')
			) AS v(name, email, phone)
			WHERE NOT EXISTS (SELECT 1 FROM suppliers s WHERE s.name = v.name);
		`); err != nil {
			return err
		}

		log.Println("Restoring warehouses...")
		if _, err := tx.Exec(ctx, `
			INSERT INTO warehouses (name, location, capacity)
			SELECT v.name, v.location, v.capacity
			FROM (VALUES
			    ('Central', 'Springfield', 10000),
			    ('East',    'Shelbyville', 4000),
			    ('West',    'Capital City', 2500)
			) AS v(name, location, capacity)
			WHERE NOT EXISTS (SELECT 1 FROM warehouses w WHERE w.name = v.name);
		`); err != nil {
			return err
		}

		log.Println("Restoring products...")
		if _, err := tx.Exec(ctx, `
			INSERT INTO products (name, price, category, supplier_id)
			SELECT v.name, v.price, v.category, s.id
			FROM (VALUES
			    ('Pallet Wrap',     19.99::NUMERIC, 'packaging', 'Northwind Supply'),
			    ('Shipping Carton',  2.49::NUMERIC, 'packaging', 'Northwind Supply'),
			    ('Hex Bolt M8',      0.35::NUMERIC, 'hardware',  'Contoso Parts'),
			    ('Barcode Scanner', 149.00::NUMERIC, 'equipment', NULL)
			) AS v(name, price, category, supplier)
			LEFT JOIN suppliers s ON s.name = v.supplier
			WHERE TRUE
			ON CONFLICT (name) DO NOTHING;
		`); err != nil {
			return err
		}

		log.Println("Restoring stock records...")
		_, err := tx.Exec(ctx, `
			INSERT INTO stock_records (warehouse_id, product_id, quantity, minimum_stock, location)
			SELECT w.id, p.id, v.quantity, v.minimum, v.bin
			FROM (VALUES
			    ('Central', 'Pallet Wrap',     120, 40, 101),
			    ('Central', 'Shipping Carton', 900, 300, 102),
			    ('Central', 'Hex Bolt M8',    5000, 1000, 210),
			    ('East',    'Shipping Carton',  80, 150, 11),
			    ('West',    'Barcode Scanner',   6, 2, 1)
			) AS v(warehouse, product, quantity, minimum, bin)
			JOIN warehouses w ON w.name = v.warehouse
			JOIN products p   ON p.name = v.product
			WHERE TRUE
			ON CONFLICT (warehouse_id, product_id) DO NOTHING;
		`)
		return err
	})
	if err != nil {
		log.Fatalf("Failed to restore seed data: %v", err)
	}

	email := os.Getenv("WMS_SEED_ADMIN_EMAIL")
	password := os.Getenv("WMS_SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("WMS_SEED_ADMIN_EMAIL / WMS_SEED_ADMIN_PASSWORD not set, skipping admin user")
		log.Println("Seed restored.")
		return
	}

	log.Println("Restoring admin user...")
	_, err = core.NewUserService(pool).Create(ctx, core.UserInput{
		FirstName: "Warehouse",
		LastName:  "Admin",
		Email:     email,
		Password:  password,
		JobTitle:  "Administrator",
	})
	switch {
	case errors.Is(err, core.ErrDuplicateRecord):
		log.Printf("Admin user %s already exists", email)
	case err != nil:
		log.Fatalf("Failed to create admin user: %v", err)
	}
	log.Println("Seed restored.")
}
