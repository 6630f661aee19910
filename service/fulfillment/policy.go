package fulfillment

import (
	orderEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/order"
)

// TransitionPolicy decides which lifecycle moves are legal. Two policies
// exist on purpose: the strict per-order table and the permissive table the
// bulk coordinator uses so warehouse operators can skip intermediate states
// during batch runs. Unifying them is a policy swap, pending product
// sign-off.
type TransitionPolicy interface {
	Name() string
	Allows(current, target orderEntity.Status) bool
	// Allowed returns the acceptance set used in error reporting: target
	// states for the strict policy, predecessor states for the bulk one.
	Allowed(current, target orderEntity.Status) []orderEntity.Status
}

// strictPolicy is the canonical single-order table, keyed by current state.
type strictPolicy struct {
	table map[orderEntity.Status][]orderEntity.Status
}

func (strictPolicy) Name() string { return "strict" }

func (p strictPolicy) Allows(current, target orderEntity.Status) bool {
	for _, t := range p.table[current] {
		if t == target {
			return true
		}
	}
	return false
}

func (p strictPolicy) Allowed(current, _ orderEntity.Status) []orderEntity.Status {
	return append([]orderEntity.Status(nil), p.table[current]...)
}

// bulkPolicy is keyed by target state: any listed predecessor may jump
// straight to the target.
type bulkPolicy struct {
	predecessors map[orderEntity.Status][]orderEntity.Status
}

func (bulkPolicy) Name() string { return "bulk" }

func (p bulkPolicy) Allows(current, target orderEntity.Status) bool {
	for _, s := range p.predecessors[target] {
		if s == current {
			return true
		}
	}
	return false
}

func (p bulkPolicy) Allowed(_, target orderEntity.Status) []orderEntity.Status {
	return append([]orderEntity.Status(nil), p.predecessors[target]...)
}

// StrictPolicy validates single-order transitions.
var StrictPolicy TransitionPolicy = strictPolicy{table: map[orderEntity.Status][]orderEntity.Status{
	orderEntity.StatusDraft:          {orderEntity.StatusPending, orderEntity.StatusCancelled},
	orderEntity.StatusPending:        {orderEntity.StatusReadyToDeliver, orderEntity.StatusCancelled},
	orderEntity.StatusReadyToDeliver: {orderEntity.StatusPicked, orderEntity.StatusCancelled, orderEntity.StatusPending},
	orderEntity.StatusPicked:         {orderEntity.StatusDelivered, orderEntity.StatusCancelled},
	orderEntity.StatusDelivered:      {},
	orderEntity.StatusSubmitted:      {orderEntity.StatusReadyToDeliver, orderEntity.StatusFulfilled, orderEntity.StatusCancelled},
	orderEntity.StatusFulfilled:      {},
	orderEntity.StatusPartiallyFulfilled: {orderEntity.StatusFulfilled, orderEntity.StatusCancelled},
	orderEntity.StatusCancelled:          {},
}}

// BulkPolicy validates batch transitions. Deliberately more permissive than
// StrictPolicy (e.g. PENDING may go straight to DELIVERED, skipping PICKED).
var BulkPolicy TransitionPolicy = bulkPolicy{predecessors: map[orderEntity.Status][]orderEntity.Status{
	orderEntity.StatusPending:        {orderEntity.StatusDraft},
	orderEntity.StatusReadyToDeliver: {orderEntity.StatusDraft, orderEntity.StatusPending, orderEntity.StatusSubmitted},
	orderEntity.StatusPicked:         {orderEntity.StatusPending, orderEntity.StatusReadyToDeliver, orderEntity.StatusSubmitted},
	orderEntity.StatusDelivered:      {orderEntity.StatusPending, orderEntity.StatusReadyToDeliver, orderEntity.StatusPicked, orderEntity.StatusSubmitted},
	orderEntity.StatusFulfilled:      {orderEntity.StatusSubmitted, orderEntity.StatusPartiallyFulfilled},
	orderEntity.StatusCancelled: {
		orderEntity.StatusDraft, orderEntity.StatusPending, orderEntity.StatusReadyToDeliver,
		orderEntity.StatusPicked, orderEntity.StatusSubmitted, orderEntity.StatusPartiallyFulfilled,
	},
}}
