package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ghogue02/leora-admin-portal-sub016/core/auth"
	inventoryEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/inventory"
	orderEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/order"
)

// Approve runs the manager approval gate on a DRAFT order flagged
// requires_approval: snapshot, availability check, allocation, reservation
// rows, then PENDING. Any failure rolls the whole transaction back: the
// order stays DRAFT with no partial allocation and no reservations.
func (e *Engine) Approve(orderID uint, actor *auth.Actor) (*orderEntity.Order, error) {
	var approved *orderEntity.Order
	err := e.db.Transaction(func(tx *gorm.DB) error {
		o, err := e.orders.FindByID(tx, orderID)
		if err != nil {
			return err
		}
		if err := e.authorize(actor, o); err != nil {
			return err
		}
		if !actor.Elevated() {
			return &ForbiddenError{ActorID: actor.ID, OrderID: o.OrderID}
		}
		if o.Status != orderEntity.StatusDraft || !o.RequiresApproval {
			return ErrApprovalNotPending
		}

		reqs := make([]Request, 0, len(o.Lines))
		for _, line := range o.Lines {
			reqs = append(reqs, Request{SKU: line.SKU, Quantity: line.Quantity})
		}
		allocations, err := e.Allocate(tx, o.TenantID, reqs)
		if err != nil {
			return err
		}

		// Allocate combines duplicate-SKU lines, so each line takes its own
		// share off the SKU's breakdown; the persisted details always sum to
		// the line quantity.
		expiresAt := time.Now().UTC().Add(e.opts.ReservationTTL)
		for i := range o.Lines {
			line := &o.Lines[i]
			var lineDetails []AllocationDetail
			lineDetails, allocations[line.SKU] = takeDetails(allocations[line.SKU], line.Quantity)
			if err := SetLineAllocation(line, lineDetails); err != nil {
				return err
			}
			if err := e.orders.SaveLine(tx, line); err != nil {
				return err
			}
			if err := e.reservations.Create(tx, &inventoryEntity.InventoryReservation{
				ReservationID: uuid.NewString(),
				TenantID:      o.TenantID,
				SKU:           line.SKU,
				OrderID:       o.OrderID,
				Quantity:      line.Quantity,
				ExpiresAt:     expiresAt,
				Status:        inventoryEntity.ReservationActive,
			}); err != nil {
				return err
			}
		}

		now := time.Now().UTC()
		previous := o.Status
		o.Status = orderEntity.StatusPending
		o.RequiresApproval = false
		o.ApprovedByID = &actor.ID
		o.ApprovedAt = &now
		if err := e.orders.Save(tx, o); err != nil {
			return err
		}
		e.emit(AuditEvent{
			OrderID:  o.OrderID,
			TenantID: o.TenantID,
			From:     previous,
			To:       o.Status,
			ActorID:  actor.ID,
			Note:     "approved",
		})
		approved = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

// Reject turns down an order awaiting approval, cancelling it and releasing
// whatever allocation residue it holds. The gate is the same as Approve's:
// only a DRAFT order flagged requires_approval may be rejected. Idempotent
// on an already-cancelled order; other terminal or in-flight orders return
// ErrApprovalNotPending and stay untouched.
func (e *Engine) Reject(orderID uint, actor *auth.Actor, reason string) (*orderEntity.Order, error) {
	var rejected *orderEntity.Order
	err := e.db.Transaction(func(tx *gorm.DB) error {
		o, err := e.orders.FindByID(tx, orderID)
		if err != nil {
			return err
		}
		if err := e.authorize(actor, o); err != nil {
			return err
		}
		if !actor.Elevated() {
			return &ForbiddenError{ActorID: actor.ID, OrderID: o.OrderID}
		}
		if o.Status.Terminal() {
			if o.Status == orderEntity.StatusCancelled {
				rejected = o
				return nil
			}
			return ErrApprovalNotPending
		}
		if o.Status != orderEntity.StatusDraft || !o.RequiresApproval {
			return ErrApprovalNotPending
		}

		if err := e.releaseHolds(tx, o); err != nil {
			return err
		}
		if _, err := e.reservations.ReleaseByOrder(tx, o.OrderID); err != nil {
			return err
		}
		previous := o.Status
		o.Status = orderEntity.StatusCancelled
		o.RequiresApproval = false
		if err := e.orders.Save(tx, o); err != nil {
			return err
		}
		e.emit(AuditEvent{
			OrderID:  o.OrderID,
			TenantID: o.TenantID,
			From:     previous,
			To:       o.Status,
			ActorID:  actor.ID,
			Note:     reason,
		})
		rejected = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}
