package inventory

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventoryEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/inventory"
)

// StockItemInput is one ledger row to provision or restock.
type StockItemInput struct {
	TenantID string `json:"tenant_id"`
	SKU      string `json:"sku"`
	Location string `json:"location"`
	OnHand   int    `json:"on_hand"`
}

// ImportResult reports a stock import run.
type ImportResult struct {
	Imported int
	Skipped  int
	Warnings []string
}

// ImportStock bulk-upserts ledger rows keyed by (tenant, sku, location).
// Restocking an existing row replaces on_hand and leaves allocated alone;
// rows are never deleted through this path. Allocation state is owned by
// the fulfillment engine.
func ImportStock(db *gorm.DB, items []StockItemInput, batchSize int) (*ImportResult, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	res := &ImportResult{}

	rows := make([]inventoryEntity.Inventory, 0, len(items))
	for _, item := range items {
		sku := strings.TrimSpace(item.SKU)
		if sku == "" || item.TenantID == "" {
			res.Skipped++
			res.Warnings = append(res.Warnings, "row missing tenant_id or sku")
			continue
		}
		if item.OnHand < 0 {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("sku=%s: negative on_hand %d", sku, item.OnHand))
			continue
		}
		location := item.Location
		if location == "" {
			location = "main"
		}
		rows = append(rows, inventoryEntity.Inventory{
			TenantID: item.TenantID,
			SKU:      sku,
			Location: location,
			OnHand:   item.OnHand,
		})
	}
	if len(rows) == 0 {
		return res, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(rows); start += batchSize {
			end := start + batchSize
			if end > len(rows) {
				end = len(rows)
			}
			batch := rows[start:end]
			upsert := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "sku"}, {Name: "location"}},
				DoUpdates: clause.AssignmentColumns([]string{"on_hand"}),
			}).Create(&batch)
			if upsert.Error != nil {
				return upsert.Error
			}
			res.Imported += len(batch)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
