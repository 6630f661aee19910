package inventory

import "time"

// Inventory is the per-SKU-per-location stock counter row. OnHand is the
// physical count, Allocated the soft holds against it. Both counters are
// mutated only through guarded atomic UPDATEs, never read-then-write.
// Invariant per row: 0 <= allocated <= on_hand.
type Inventory struct {
	InventoryID uint      `gorm:"column:inventory_id;primaryKey;autoIncrement" json:"inventory_id"`
	TenantID    string    `gorm:"column:tenant_id;type:varchar(36);not null;uniqueIndex:idx_inventory_tenant_sku_loc,priority:1" json:"tenant_id"`
	SKU         string    `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:idx_inventory_tenant_sku_loc,priority:2" json:"sku"`
	Location    string    `gorm:"column:location;type:varchar(64);not null;default:'main';uniqueIndex:idx_inventory_tenant_sku_loc,priority:3" json:"location"`
	OnHand      int       `gorm:"column:on_hand;not null;default:0" json:"on_hand"`
	Allocated   int       `gorm:"column:allocated;not null;default:0" json:"allocated"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Inventory) TableName() string {
	return "inventory"
}

// Free returns the unallocated units on the row, never negative.
func (i Inventory) Free() int {
	free := i.OnHand - i.Allocated
	if free < 0 {
		return 0
	}
	return free
}
