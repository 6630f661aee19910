package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghogue02/leora-admin-portal-sub016/config"
	inventoryService "github.com/ghogue02/leora-admin-portal-sub016/service/inventory"
)

var (
	stockFile   string
	stockTenant string
	stockBatch  int
)

var stockImportCmd = &cobra.Command{
	Use:   "stock:import",
	Short: "Import inventory ledger rows from CSV (sku,location,on_hand)",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(stockFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		items, warnings, err := readStockCSV(f, stockTenant)
		if err != nil {
			fmt.Printf("CSV parse failed: %v\n", err)
			return
		}

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		start := time.Now()
		res, err := inventoryService.ImportStock(db, items, stockBatch)
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range append(warnings, res.Warnings...) {
			fmt.Printf("  [warn] %s\n", w)
		}
		fmt.Printf(`
=== Stock Import Report ===
CSV rows:   %d
Imported:   %d
Skipped:    %d
Total time: %s
===========================
`, len(items), res.Imported, res.Skipped, time.Since(start).Round(time.Millisecond))
	},
}

func readStockCSV(r io.Reader, tenantID string) ([]inventoryService.StockItemInput, []string, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"sku", "on_hand"} {
		if _, ok := col[required]; !ok {
			return nil, nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var items []inventoryService.StockItemInput
	var warnings []string
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		onHand, err := strconv.Atoi(row[col["on_hand"]])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("line %d: invalid on_hand %q", line, row[col["on_hand"]]))
			continue
		}
		item := inventoryService.StockItemInput{
			TenantID: tenantID,
			SKU:      row[col["sku"]],
			OnHand:   onHand,
		}
		if ci, ok := col["location"]; ok && ci < len(row) {
			item.Location = row[ci]
		}
		items = append(items, item)
	}
	return items, warnings, nil
}

func init() {
	stockImportCmd.Flags().StringVarP(&stockFile, "file", "f", "", "CSV file with sku,location,on_hand columns")
	stockImportCmd.Flags().StringVarP(&stockTenant, "tenant", "t", "", "Tenant ID the rows belong to")
	stockImportCmd.Flags().IntVarP(&stockBatch, "batch", "b", 500, "Upsert batch size")
	_ = stockImportCmd.MarkFlagRequired("file")
	_ = stockImportCmd.MarkFlagRequired("tenant")
	rootCmd.AddCommand(stockImportCmd)
}
