package fulfillment

import (
	"time"

	"gorm.io/gorm"

	inventoryEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/inventory"
)

// SweepExpiredReservations releases holds whose reservation deadline has
// passed and marks the reservations EXPIRED. Each reservation is handled in
// its own transaction with a status-guarded flip, so the sweep never races a
// live pick/cancel outside a transaction on the same rows. Returns how many
// reservations were swept.
func (e *Engine) SweepExpiredReservations(limit int) (int, error) {
	if limit <= 0 {
		limit = 100
	}
	expired, err := e.reservations.FindExpired(time.Now().UTC(), limit)
	if err != nil {
		return 0, err
	}
	swept := 0
	for _, res := range expired {
		res := res
		err := e.db.Transaction(func(tx *gorm.DB) error {
			ok, err := e.reservations.MarkExpired(tx, res.ReservationID)
			if err != nil {
				return err
			}
			if !ok {
				// A concurrent deliver/cancel closed it first.
				return nil
			}
			if err := e.releaseReservation(tx, &res); err != nil {
				return err
			}
			swept++
			return nil
		})
		if err != nil {
			return swept, err
		}
	}
	return swept, nil
}

// releaseReservation returns one expired hold to the pool, via the persisted
// line breakdown when present, recompute otherwise. The breakdown is cleared
// from the line so a later cancellation does not release twice.
func (e *Engine) releaseReservation(tx *gorm.DB, res *inventoryEntity.InventoryReservation) error {
	o, err := e.orders.FindByID(tx, res.OrderID)
	if err != nil {
		return err
	}
	// Several lines may carry the SKU; the first one still holding a
	// breakdown is the one this reservation backs.
	for i := range o.Lines {
		line := &o.Lines[i]
		if line.SKU != res.SKU {
			continue
		}
		details, err := DetailsFromLine(line)
		if err != nil {
			return err
		}
		if len(details) == 0 {
			continue
		}
		if err := e.Release(tx, details); err != nil {
			return err
		}
		if err := SetLineAllocation(line, nil); err != nil {
			return err
		}
		return e.orders.SaveLine(tx, line)
	}
	// No line with a breakdown left (legacy rows, or an orphaned
	// reservation): recompute what it held.
	return e.ReleaseByRecompute(tx, res.TenantID, []Request{{SKU: res.SKU, Quantity: res.Quantity}})
}
