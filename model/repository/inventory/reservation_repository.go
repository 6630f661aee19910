package inventory

import (
	"time"

	"gorm.io/gorm"

	inventoryEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/inventory"
)

// ReservationRepository persists the time-bounded holds created by the
// approval gate.
type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(tx *gorm.DB, res *inventoryEntity.InventoryReservation) error {
	return tx.Create(res).Error
}

// FindActiveByOrder returns the ACTIVE reservations belonging to an order.
func (r *ReservationRepository) FindActiveByOrder(tx *gorm.DB, orderID uint) ([]inventoryEntity.InventoryReservation, error) {
	if tx == nil {
		tx = r.db
	}
	var out []inventoryEntity.InventoryReservation
	err := tx.Where("order_id = ? AND status = ?", orderID, inventoryEntity.ReservationActive).
		Find(&out).Error
	return out, err
}

// ReleaseByOrder marks all ACTIVE reservations of an order RELEASED and
// returns how many were closed.
func (r *ReservationRepository) ReleaseByOrder(tx *gorm.DB, orderID uint) (int64, error) {
	res := tx.Model(&inventoryEntity.InventoryReservation{}).
		Where("order_id = ? AND status = ?", orderID, inventoryEntity.ReservationActive).
		Update("status", inventoryEntity.ReservationReleased)
	return res.RowsAffected, res.Error
}

// FindExpired returns ACTIVE reservations past their deadline, oldest first.
// Served by the (sku, status, expires_at) index.
func (r *ReservationRepository) FindExpired(now time.Time, limit int) ([]inventoryEntity.InventoryReservation, error) {
	var out []inventoryEntity.InventoryReservation
	err := r.db.Where("status = ? AND expires_at <= ?", inventoryEntity.ReservationActive, now).
		Order("expires_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MarkExpired flips one reservation ACTIVE -> EXPIRED. The status guard
// keeps the sweep from racing a concurrent pick/cancel on the same order.
func (r *ReservationRepository) MarkExpired(tx *gorm.DB, reservationID string) (bool, error) {
	res := tx.Model(&inventoryEntity.InventoryReservation{}).
		Where("reservation_id = ? AND status = ?", reservationID, inventoryEntity.ReservationActive).
		Update("status", inventoryEntity.ReservationExpired)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
