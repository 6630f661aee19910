package order

import "gorm.io/datatypes"

// OrderLine is one SKU position on an order. AppliedPricingRules carries the
// pricing engine's output as free-form JSON; once the order is approved the
// allocation engine merges its resolved location breakdown into the same blob
// under the "allocation" key.
type OrderLine struct {
	LineID              uint           `gorm:"column:line_id;primaryKey;autoIncrement" json:"line_id"`
	OrderID             uint           `gorm:"column:order_id;not null;index" json:"order_id"`
	SKU                 string         `gorm:"column:sku;type:varchar(64);not null" json:"sku"`
	Quantity            int            `gorm:"column:quantity;not null" json:"quantity"`
	UnitPrice           float64        `gorm:"column:unit_price;type:decimal(12,4);not null;default:0" json:"unit_price"`
	AppliedPricingRules datatypes.JSON `gorm:"column:applied_pricing_rules" json:"applied_pricing_rules,omitempty"`
	IsSample            bool           `gorm:"column:is_sample;not null;default:false" json:"is_sample"`
}

func (OrderLine) TableName() string {
	return "sales_order_line"
}
