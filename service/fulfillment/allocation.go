package fulfillment

import (
	"gorm.io/gorm"

	inventoryEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/inventory"
)

// Allocate resolves the requested quantities into location-level holds
// inside tx. Requests for the same SKU are combined first; locations are
// consumed in snapshot order (oldest-touched first). The returned details
// per SKU sum exactly to that SKU's combined quantity, or the whole call
// fails; a partially allocated request is never left behind because the
// caller's transaction must roll back on error.
func (e *Engine) Allocate(tx *gorm.DB, tenantID string, reqs []Request) (map[string][]AllocationDetail, error) {
	reqs = aggregateRequests(reqs)
	snapshot, err := e.ledger.Snapshot(tx, tenantID, skusOf(reqs))
	if err != nil {
		return nil, err
	}
	if err := ensureAvailability(snapshot, reqs); err != nil {
		return nil, err
	}
	return e.allocateFromSnapshot(tx, snapshot, reqs)
}

// allocateFromSnapshot walks each request over its snapshot rows, taking
// min(free, remaining) per location through guarded increments. A rejected
// guard means a concurrent transaction consumed the stock between snapshot
// and update; that surfaces as AllocationFailedError, the final safety net
// against races.
func (e *Engine) allocateFromSnapshot(tx *gorm.DB, snapshot map[string][]inventoryEntity.Inventory, reqs []Request) (map[string][]AllocationDetail, error) {
	out := make(map[string][]AllocationDetail, len(reqs))
	for _, req := range reqs {
		remaining := req.Quantity
		var details []AllocationDetail
		for _, row := range snapshot[req.SKU] {
			if remaining == 0 {
				break
			}
			take := row.Free()
			if take > remaining {
				take = remaining
			}
			if take == 0 {
				continue
			}
			ok, err := e.ledger.AddAllocated(tx, row.InventoryID, take)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, &AllocationFailedError{SKU: req.SKU, Remaining: remaining}
			}
			details = append(details, AllocationDetail{
				InventoryID: row.InventoryID,
				Location:    row.Location,
				Quantity:    take,
			})
			remaining -= take
		}
		if remaining > 0 {
			return nil, &AllocationFailedError{SKU: req.SKU, Remaining: remaining}
		}
		out[req.SKU] = details
	}
	return out, nil
}

// Release is the exact inverse of Allocate over the persisted detail list,
// the preferred path. Over-release is a hard error unless the engine was
// built with ClampOverRelease.
func (e *Engine) Release(tx *gorm.DB, details []AllocationDetail) error {
	for _, d := range details {
		if _, err := e.ledger.ReleaseAllocated(tx, d.InventoryID, d.Quantity, e.opts.ClampOverRelease); err != nil {
			return err
		}
	}
	return nil
}

// ReleaseByRecompute is the fallback for lines persisted before allocation
// details existed: it walks the same snapshot order and releases
// min(allocated, remaining) per row. Always clamped, since there is no
// detail record to validate against.
func (e *Engine) ReleaseByRecompute(tx *gorm.DB, tenantID string, reqs []Request) error {
	reqs = aggregateRequests(reqs)
	snapshot, err := e.ledger.Snapshot(tx, tenantID, skusOf(reqs))
	if err != nil {
		return err
	}
	for _, req := range reqs {
		remaining := req.Quantity
		for _, row := range snapshot[req.SKU] {
			if remaining == 0 {
				break
			}
			qty := remaining
			if qty > row.Allocated {
				qty = row.Allocated
			}
			if qty == 0 {
				continue
			}
			released, err := e.ledger.ReleaseAllocated(tx, row.InventoryID, qty, true)
			if err != nil {
				return err
			}
			remaining -= released
		}
		// Anything still remaining was never held; nothing left to release.
	}
	return nil
}

// aggregateRequests merges duplicate SKUs into one request each, keeping
// first-seen order. Orders may carry several lines for one SKU (samples,
// split casing) and the ledger must see their combined demand, or the
// availability check and the allocation walk would count the same free
// units twice.
func aggregateRequests(reqs []Request) []Request {
	idx := make(map[string]int, len(reqs))
	out := make([]Request, 0, len(reqs))
	for _, r := range reqs {
		if i, ok := idx[r.SKU]; ok {
			out[i].Quantity += r.Quantity
			continue
		}
		idx[r.SKU] = len(out)
		out = append(out, r)
	}
	return out
}

// takeDetails splits qty units off the front of a SKU's combined breakdown,
// returning the taken share and what remains. A boundary detail is split in
// two so both sides keep exact location-level quantities.
func takeDetails(details []AllocationDetail, qty int) (taken, rest []AllocationDetail) {
	for _, d := range details {
		if qty == 0 {
			rest = append(rest, d)
			continue
		}
		if d.Quantity <= qty {
			taken = append(taken, d)
			qty -= d.Quantity
			continue
		}
		taken = append(taken, AllocationDetail{InventoryID: d.InventoryID, Location: d.Location, Quantity: qty})
		rest = append(rest, AllocationDetail{InventoryID: d.InventoryID, Location: d.Location, Quantity: d.Quantity - qty})
		qty = 0
	}
	return taken, rest
}
