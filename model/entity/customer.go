package entity

import "time"

// Customer is a CRM account (restaurant, bar, retailer). Each customer is
// assigned to one sales rep; non-elevated actors may only touch orders of
// their assigned customers.
type Customer struct {
	CustomerID uint      `gorm:"column:customer_id;primaryKey;autoIncrement"`
	TenantID   string    `gorm:"column:tenant_id;type:varchar(36);not null;index"`
	Name       string    `gorm:"column:name;type:varchar(128);not null"`
	SalesRepID uint      `gorm:"column:sales_rep_id;not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string {
	return "customer"
}
