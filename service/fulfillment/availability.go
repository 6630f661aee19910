package fulfillment

import (
	inventoryEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/inventory"
)

// CheckAvailability is the read-only availability check: per SKU it sums the
// free units over all locations and reports every shortfall. Duplicate-SKU
// requests are combined before checking. No mutation, no transaction.
func (e *Engine) CheckAvailability(tenantID string, reqs []Request) ([]Shortfall, error) {
	reqs = aggregateRequests(reqs)
	snapshot, err := e.ledger.Snapshot(nil, tenantID, skusOf(reqs))
	if err != nil {
		return nil, err
	}
	return shortfalls(snapshot, reqs), nil
}

// ensureAvailability is the pure pre-allocation check. Returns
// *InsufficientInventoryError listing every failing SKU.
func ensureAvailability(snapshot map[string][]inventoryEntity.Inventory, reqs []Request) error {
	if s := shortfalls(snapshot, reqs); len(s) > 0 {
		return &InsufficientInventoryError{Shortfalls: s}
	}
	return nil
}

func shortfalls(snapshot map[string][]inventoryEntity.Inventory, reqs []Request) []Shortfall {
	var out []Shortfall
	for _, req := range reqs {
		free := 0
		for _, row := range snapshot[req.SKU] {
			free += row.Free()
		}
		if free < req.Quantity {
			out = append(out, Shortfall{SKU: req.SKU, Available: free, Requested: req.Quantity})
		}
	}
	return out
}

func skusOf(reqs []Request) []string {
	skus := make([]string, 0, len(reqs))
	for _, r := range reqs {
		skus = append(skus, r.SKU)
	}
	return skus
}
