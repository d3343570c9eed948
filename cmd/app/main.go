// app is the operator CLI: one-shot stock operations against the database.
//
// Usage: go run ./cmd/app <command> [args]
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"warehouse-inventory/internal/adapters/cli"
	"warehouse-inventory/internal/app"
	"warehouse-inventory/internal/config"
	"warehouse-inventory/internal/db"
	"warehouse-inventory/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, cli.Usage)
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("WMS_CONFIG"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg, err := logger.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		lg.Fatal("Unable to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := cli.Run(ctx, app.New(pool, lg), os.Args[1:], os.Stdout); err != nil {
		pool.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
