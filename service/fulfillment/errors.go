package fulfillment

import (
	"errors"
	"fmt"

	orderEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/order"
)

var (
	// ErrBulkLimitExceeded rejects bulk batches above the coordinator bound.
	ErrBulkLimitExceeded = errors.New("fulfillment: bulk transition accepts at most 100 orders")

	// ErrApprovalNotPending is returned by the approval gate for orders that
	// are not DRAFT with requires_approval set.
	ErrApprovalNotPending = errors.New("fulfillment: order is not awaiting approval")
)

// Shortfall describes one SKU whose free stock is below the request.
type Shortfall struct {
	SKU       string `json:"sku"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

// InsufficientInventoryError is the pre-mutation availability check failure.
// Never auto-retried; carries every failing SKU.
type InsufficientInventoryError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientInventoryError) Error() string {
	if len(e.Shortfalls) == 1 {
		s := e.Shortfalls[0]
		return fmt.Sprintf("insufficient inventory: sku %s available %d requested %d", s.SKU, s.Available, s.Requested)
	}
	return fmt.Sprintf("insufficient inventory for %d skus", len(e.Shortfalls))
}

// AllocationFailedError is a mid-allocation race: stock passed the
// availability check but was consumed before the guarded update landed.
// Always fatal to the transaction; callers may re-check and retry.
type AllocationFailedError struct {
	SKU       string
	Remaining int
}

func (e *AllocationFailedError) Error() string {
	return fmt.Sprintf("allocation failed: sku %s short %d units mid-transaction", e.SKU, e.Remaining)
}

// InvalidTransitionError reports an unreachable target state together with
// the transitions the policy would have accepted.
type InvalidTransitionError struct {
	Current   orderEntity.Status
	Requested orderEntity.Status
	Allowed   []orderEntity.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s (allowed: %v)", e.Current, e.Requested, e.Allowed)
}

// ForbiddenError reports an actor without scope over the order's customer.
type ForbiddenError struct {
	ActorID uint
	OrderID uint
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("actor %d is not allowed to act on order %d", e.ActorID, e.OrderID)
}
