package fulfillment

import (
	"time"

	"gorm.io/gorm"

	"github.com/ghogue02/leora-admin-portal-sub016/core/auth"
	inventoryEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/inventory"
	orderEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/order"
)

// TransitionResult reports a committed lifecycle move.
type TransitionResult struct {
	Previous orderEntity.Status `json:"previous"`
	New      orderEntity.Status `json:"new"`
}

// Transition applies one validated single-order transition in its own
// transaction, using the strict policy.
func (e *Engine) Transition(orderID uint, target orderEntity.Status, actor *auth.Actor, note string) (*TransitionResult, error) {
	var result *TransitionResult
	err := e.db.Transaction(func(tx *gorm.DB) error {
		r, err := e.transitionInTx(tx, orderID, target, actor, note, StrictPolicy)
		result = r
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// transitionInTx validates and executes one transition inside tx.
// Authorization precedes state validation.
func (e *Engine) transitionInTx(tx *gorm.DB, orderID uint, target orderEntity.Status, actor *auth.Actor, note string, policy TransitionPolicy) (*TransitionResult, error) {
	o, err := e.orders.FindByID(tx, orderID)
	if err != nil {
		return nil, err
	}
	if err := e.authorize(actor, o); err != nil {
		return nil, err
	}
	if !target.Valid() || !policy.Allows(o.Status, target) {
		return nil, &InvalidTransitionError{
			Current:   o.Status,
			Requested: target,
			Allowed:   policy.Allowed(o.Status, target),
		}
	}

	previous := o.Status
	if err := e.applySideEffects(tx, o, target); err != nil {
		return nil, err
	}
	o.Status = target
	if err := e.orders.Save(tx, o); err != nil {
		return nil, err
	}

	var actorID uint
	if actor != nil {
		actorID = actor.ID
	}
	e.emit(AuditEvent{
		OrderID:  o.OrderID,
		TenantID: o.TenantID,
		From:     previous,
		To:       target,
		ActorID:  actorID,
		Note:     note,
	})
	return &TransitionResult{Previous: previous, New: target}, nil
}

// authorize checks that the actor is the customer's assigned rep or holds
// elevated scope within the order's tenant.
func (e *Engine) authorize(actor *auth.Actor, o *orderEntity.Order) error {
	if actor == nil || actor.TenantID != o.TenantID {
		var id uint
		if actor != nil {
			id = actor.ID
		}
		return &ForbiddenError{ActorID: id, OrderID: o.OrderID}
	}
	if actor.Elevated() || actor.HasCustomer(o.CustomerID) {
		return nil
	}
	return &ForbiddenError{ActorID: actor.ID, OrderID: o.OrderID}
}

func (e *Engine) applySideEffects(tx *gorm.DB, o *orderEntity.Order, target orderEntity.Status) error {
	now := time.Now().UTC()
	switch target {
	case orderEntity.StatusPicked:
		o.FulfilledAt = &now
	case orderEntity.StatusDelivered:
		o.DeliveredAt = &now
		if err := e.consumeStock(tx, o); err != nil {
			return err
		}
		if _, err := e.reservations.ReleaseByOrder(tx, o.OrderID); err != nil {
			return err
		}
	case orderEntity.StatusCancelled:
		if err := e.releaseHolds(tx, o); err != nil {
			return err
		}
		if _, err := e.reservations.ReleaseByOrder(tx, o.OrderID); err != nil {
			return err
		}
	}
	return nil
}

// consumeStock removes delivered units from on_hand. Lines with a persisted
// allocation breakdown consume at the allocated locations; older lines fall
// back to the order's warehouse location. Consumed breakdowns are cleared
// from the line so nothing downstream can release them a second time.
func (e *Engine) consumeStock(tx *gorm.DB, o *orderEntity.Order) error {
	for i := range o.Lines {
		line := &o.Lines[i]
		details, err := DetailsFromLine(line)
		if err != nil {
			return err
		}
		if len(details) > 0 {
			for _, d := range details {
				if err := e.ledger.ConsumeOnHand(tx, o.TenantID, line.SKU, d.Location, d.Quantity); err != nil {
					return err
				}
			}
			if err := SetLineAllocation(line, nil); err != nil {
				return err
			}
			if err := e.orders.SaveLine(tx, line); err != nil {
				return err
			}
			continue
		}
		if err := e.ledger.ConsumeOnHand(tx, o.TenantID, line.SKU, e.warehouseOf(o), line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// releaseHolds undoes the order's soft allocation. Persisted details are the
// preferred path; for lines without details the reservation rows tell us
// whether (and how much) stock was ever held, so a never-allocated order
// performs no inventory writes at all.
func (e *Engine) releaseHolds(tx *gorm.DB, o *orderEntity.Order) error {
	var undetailed []orderEntity.OrderLine
	for i := range o.Lines {
		line := o.Lines[i]
		details, err := DetailsFromLine(&line)
		if err != nil {
			return err
		}
		if len(details) > 0 {
			if err := e.Release(tx, details); err != nil {
				return err
			}
			continue
		}
		undetailed = append(undetailed, line)
	}
	if len(undetailed) == 0 {
		return nil
	}
	active, err := e.reservations.FindActiveByOrder(tx, o.OrderID)
	if err != nil {
		return err
	}
	if len(active) == 0 {
		return nil
	}
	reqs := recomputeRequests(undetailed, active)
	if len(reqs) == 0 {
		return nil
	}
	return e.ReleaseByRecompute(tx, o.TenantID, reqs)
}

// recomputeRequests maps active reservations onto the lines that lack a
// persisted breakdown, keyed by SKU.
func recomputeRequests(lines []orderEntity.OrderLine, active []inventoryEntity.InventoryReservation) []Request {
	held := make(map[string]int, len(active))
	for _, res := range active {
		held[res.SKU] += res.Quantity
	}
	var reqs []Request
	for _, line := range lines {
		if qty := held[line.SKU]; qty > 0 {
			reqs = append(reqs, Request{SKU: line.SKU, Quantity: qty})
			held[line.SKU] = 0
		}
	}
	return reqs
}

func (e *Engine) warehouseOf(o *orderEntity.Order) string {
	if o.WarehouseLocation == "" {
		return e.opts.DefaultLocation
	}
	return o.WarehouseLocation
}
