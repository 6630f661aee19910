package order

import "time"

// Order represents a sales order. Orders are never deleted; cancellation
// drives them to CANCELLED via a validated transition.
type Order struct {
	OrderID           uint       `gorm:"column:order_id;primaryKey;autoIncrement" json:"order_id"`
	TenantID          string     `gorm:"column:tenant_id;type:varchar(36);not null;index" json:"tenant_id"`
	CustomerID        uint       `gorm:"column:customer_id;not null;index" json:"customer_id"`
	Status            Status     `gorm:"column:status;type:varchar(32);not null;default:'DRAFT'" json:"status"`
	OrderedAt         time.Time  `gorm:"column:ordered_at" json:"ordered_at"`
	FulfilledAt       *time.Time `gorm:"column:fulfilled_at" json:"fulfilled_at,omitempty"`
	DeliveredAt       *time.Time `gorm:"column:delivered_at" json:"delivered_at,omitempty"`
	Currency          string     `gorm:"column:currency;type:varchar(3);not null;default:'USD'" json:"currency"`
	Total             float64    `gorm:"column:total;type:decimal(12,4);not null;default:0" json:"total"`
	RequiresApproval  bool       `gorm:"column:requires_approval;not null;default:false" json:"requires_approval"`
	ApprovedByID      *uint      `gorm:"column:approved_by_id" json:"approved_by_id,omitempty"`
	ApprovedAt        *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	WarehouseLocation string     `gorm:"column:warehouse_location;type:varchar(64);not null;default:'main'" json:"warehouse_location"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Lines []OrderLine `gorm:"foreignKey:OrderID;references:OrderID" json:"lines,omitempty"`
}

func (Order) TableName() string {
	return "sales_order"
}

// Warehouse returns the fulfillment location for the order, defaulting to
// "main" for rows created before per-order locations existed.
func (o *Order) Warehouse() string {
	if o.WarehouseLocation == "" {
		return "main"
	}
	return o.WarehouseLocation
}
