package order

import (
	"gorm.io/gorm"

	orderEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/order"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindByID returns the order with its lines preloaded.
func (r *OrderRepository) FindByID(tx *gorm.DB, orderID uint) (*orderEntity.Order, error) {
	if tx == nil {
		tx = r.db
	}
	var o orderEntity.Order
	err := tx.Preload("Lines").First(&o, orderID).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Create(tx *gorm.DB, o *orderEntity.Order) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Create(o).Error
}

// Save persists the order row (not its lines).
func (r *OrderRepository) Save(tx *gorm.DB, o *orderEntity.Order) error {
	return tx.Omit("Lines").Save(o).Error
}

// SaveLine persists one order line.
func (r *OrderRepository) SaveLine(tx *gorm.DB, line *orderEntity.OrderLine) error {
	return tx.Save(line).Error
}
