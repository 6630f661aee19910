package inventory

import (
	"errors"

	"gorm.io/gorm"

	inventoryEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/inventory"
)

// ErrOverRelease is returned when a release would drive allocated negative
// and the caller did not ask for clamping.
var ErrOverRelease = errors.New("inventory: release exceeds allocated")

// ErrStockUnderflow is returned when a fulfillment write would drive
// on_hand or allocated negative.
var ErrStockUnderflow = errors.New("inventory: write would drive counter negative")

// LedgerRepository owns the per-SKU-per-location stock counters. All counter
// writes are single guarded UPDATE statements so concurrent transactions
// serialize on the row instead of losing updates.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Snapshot returns, per SKU, the location rows ordered oldest-touched first.
// The updated_at ordering is the rotation rule: allocation consumes the
// location that has been idle longest, deterministically.
func (r *LedgerRepository) Snapshot(tx *gorm.DB, tenantID string, skus []string) (map[string][]inventoryEntity.Inventory, error) {
	if tx == nil {
		tx = r.db
	}
	var rows []inventoryEntity.Inventory
	err := tx.Where("tenant_id = ? AND sku IN ?", tenantID, skus).
		Order("updated_at ASC, inventory_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string][]inventoryEntity.Inventory, len(skus))
	for _, row := range rows {
		out[row.SKU] = append(out[row.SKU], row)
	}
	return out, nil
}

// AddAllocated atomically increments allocated on one row, guarded so the
// hold never exceeds on_hand. Returns false when the guard rejected the
// write, meaning the caller lost a race and must abort its transaction.
func (r *LedgerRepository) AddAllocated(tx *gorm.DB, inventoryID uint, qty int) (bool, error) {
	res := tx.Model(&inventoryEntity.Inventory{}).
		Where("inventory_id = ? AND allocated + ? <= on_hand", inventoryID, qty).
		Update("allocated", gorm.Expr("allocated + ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ReleaseAllocated atomically decrements allocated on one row. When the
// requested quantity exceeds the current hold the behavior depends on clamp:
// with clamp the hold is zeroed (legacy behavior), without it the call fails
// with ErrOverRelease. Returns the quantity actually released.
func (r *LedgerRepository) ReleaseAllocated(tx *gorm.DB, inventoryID uint, qty int, clamp bool) (int, error) {
	res := tx.Model(&inventoryEntity.Inventory{}).
		Where("inventory_id = ? AND allocated >= ?", inventoryID, qty).
		Update("allocated", gorm.Expr("allocated - ?", qty))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 1 {
		return qty, nil
	}
	if !clamp {
		return 0, ErrOverRelease
	}
	// Guard failed: requested > allocated. Clamp releases whatever is held.
	var row inventoryEntity.Inventory
	if err := tx.Where("inventory_id = ?", inventoryID).First(&row).Error; err != nil {
		return 0, err
	}
	res = tx.Model(&inventoryEntity.Inventory{}).
		Where("inventory_id = ? AND allocated = ?", inventoryID, row.Allocated).
		Update("allocated", 0)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected != 1 {
		// Row moved between read and write; under a transaction this means
		// a concurrent writer, report it instead of guessing.
		return 0, ErrStockUnderflow
	}
	return row.Allocated, nil
}

// ConsumeOnHand atomically removes fulfilled stock: on_hand and allocated
// both drop by qty on the (tenant, sku, location) row. Guarded so neither
// counter goes negative.
func (r *LedgerRepository) ConsumeOnHand(tx *gorm.DB, tenantID, sku, location string, qty int) error {
	res := tx.Model(&inventoryEntity.Inventory{}).
		Where("tenant_id = ? AND sku = ? AND location = ? AND on_hand >= ? AND allocated >= ?",
			tenantID, sku, location, qty, qty).
		Updates(map[string]interface{}{
			"on_hand":   gorm.Expr("on_hand - ?", qty),
			"allocated": gorm.Expr("allocated - ?", qty),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrStockUnderflow
	}
	return nil
}

// FindByID returns one ledger row.
func (r *LedgerRepository) FindByID(tx *gorm.DB, inventoryID uint) (*inventoryEntity.Inventory, error) {
	if tx == nil {
		tx = r.db
	}
	var row inventoryEntity.Inventory
	if err := tx.First(&row, inventoryID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
