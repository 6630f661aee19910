package inventory

import "time"

// Reservation lifecycle states.
const (
	ReservationActive   = "ACTIVE"
	ReservationReleased = "RELEASED"
	ReservationExpired  = "EXPIRED"
)

// InventoryReservation ties an allocation to an order pending fulfillment.
// Created by the approval gate, closed by pick/deliver/cancel or the expiry
// sweep. The (sku, status, expires_at) index drives the sweep scan.
type InventoryReservation struct {
	ReservationID string    `gorm:"column:reservation_id;type:varchar(36);primaryKey" json:"reservation_id"`
	TenantID      string    `gorm:"column:tenant_id;type:varchar(36);not null;index" json:"tenant_id"`
	SKU           string    `gorm:"column:sku;type:varchar(64);not null;index:idx_reservation_sweep,priority:1" json:"sku"`
	OrderID       uint      `gorm:"column:order_id;not null;index" json:"order_id"`
	Quantity      int       `gorm:"column:quantity;not null" json:"quantity"`
	ExpiresAt     time.Time `gorm:"column:expires_at;not null;index:idx_reservation_sweep,priority:3" json:"expires_at"`
	Status        string    `gorm:"column:status;type:varchar(16);not null;default:'ACTIVE';index:idx_reservation_sweep,priority:2" json:"status"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (InventoryReservation) TableName() string {
	return "inventory_reservation"
}
