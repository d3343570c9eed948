package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"warehouse-inventory/internal/app"
	"warehouse-inventory/internal/core"
)

// Usage lists the available one-shot commands.
const Usage = `Usage: app <command> [args]

  restock   <warehouse-id> <product-id> <amount> <ordered-by>
  transfer  <stock-record-id> <destination-warehouse-id> <amount>
  reduce    <warehouse-id> <product-id> <amount>
  stock     [warehouse-id]
  low-stock
  totals`

// Run executes a one-shot CLI command, writing its report to out.
// args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given\n%s", Usage)
	}

	switch args[0] {
	case "restock", "rs":
		if len(args) != 5 {
			return fmt.Errorf("usage: app restock <warehouse-id> <product-id> <amount> <ordered-by>")
		}
		ids, err := parseInts(args[1:4])
		if err != nil {
			return err
		}
		order, err := svc.Restock(ctx, app.RestockRequest{
			WarehouseID: ids[0],
			ProductID:   ids[1],
			Amount:      int(ids[2]),
			OrderedBy:   args[4],
		})
		if err != nil {
			return fmt.Errorf("restock failed: %w", err)
		}
		fmt.Fprintf(out, "Restocked %d of product %d into warehouse %d (reference %s).\n",
			order.Amount, order.ProductID, order.WarehouseID, order.Reference)

	case "transfer", "tr":
		if len(args) != 4 {
			return fmt.Errorf("usage: app transfer <stock-record-id> <destination-warehouse-id> <amount>")
		}
		ids, err := parseInts(args[1:4])
		if err != nil {
			return err
		}
		res, err := svc.TransferStock(ctx, app.TransferRequest{
			SourceRecordID:         ids[0],
			DestinationWarehouseID: ids[1],
			Amount:                 int(ids[2]),
		})
		if err != nil {
			return fmt.Errorf("transfer failed: %w", err)
		}
		fmt.Fprintf(out, "Transferred %d units of %s.\n", res.Amount, res.Source.ProductName)
		printStock(out, []core.StockRecord{res.Source, res.Destination})

	case "reduce", "rd":
		if len(args) != 4 {
			return fmt.Errorf("usage: app reduce <warehouse-id> <product-id> <amount>")
		}
		ids, err := parseInts(args[1:4])
		if err != nil {
			return err
		}
		rec, err := svc.ReduceStock(ctx, app.ReduceStockRequest{
			WarehouseID: ids[0],
			ProductID:   ids[1],
			Amount:      int(ids[2]),
		})
		if err != nil {
			return fmt.Errorf("reduce failed: %w", err)
		}
		printStock(out, []core.StockRecord{*rec})

	case "stock", "st":
		var (
			result *app.StockListResult
			err    error
		)
		if len(args) > 1 {
			ids, perr := parseInts(args[1:2])
			if perr != nil {
				return perr
			}
			result, err = svc.ListStockByWarehouse(ctx, ids[0])
		} else {
			result, err = svc.ListStock(ctx)
		}
		if err != nil {
			return fmt.Errorf("failed to list stock: %w", err)
		}
		printStock(out, result.Records)

	case "low-stock", "low":
		result, err := svc.LowStock(ctx)
		if err != nil {
			return fmt.Errorf("failed to list low stock: %w", err)
		}
		if len(result.Records) == 0 {
			fmt.Fprintln(out, "No stock below minimum.")
			return nil
		}
		printStock(out, result.Records)

	case "totals", "tot":
		result, err := svc.WarehouseTotals(ctx)
		if err != nil {
			return fmt.Errorf("failed to compute totals: %w", err)
		}
		printTotals(out, result.Totals)

	default:
		return fmt.Errorf("unknown command: %s\n%s", args[0], Usage)
	}
	return nil
}

func parseInts(args []string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, a := range args {
		n, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = n
	}
	return out, nil
}

func printStock(out io.Writer, records []core.StockRecord) {
	fmt.Fprintln(out, strings.Repeat("=", 72))
	fmt.Fprintf(out, "  %-6s %-18s %-22s %8s %8s %4s\n", "ID", "WAREHOUSE", "PRODUCT", "QTY", "MIN", "")
	fmt.Fprintln(out, strings.Repeat("-", 72))
	for _, r := range records {
		flag := ""
		if r.BelowMinimum() {
			flag = "LOW"
		}
		fmt.Fprintf(out, "  %-6d %-18s %-22s %8d %8d %4s\n",
			r.ID, r.WarehouseName, r.ProductName, r.Quantity, r.MinimumStock, flag)
	}
	fmt.Fprintln(out, strings.Repeat("=", 72))
}

func printTotals(out io.Writer, totals []core.WarehouseTotal) {
	fmt.Fprintln(out, strings.Repeat("=", 62))
	fmt.Fprintf(out, "  %-20s %-16s %10s %10s\n", "WAREHOUSE", "LOCATION", "TOTAL", "CAPACITY")
	fmt.Fprintln(out, strings.Repeat("-", 62))
	for _, t := range totals {
		fmt.Fprintf(out, "  %-20s %-16s %10d %10d\n", t.Name, t.Location, t.TotalQuantity, t.Capacity)
	}
	fmt.Fprintln(out, strings.Repeat("=", 62))
}
