package fulfillment

import (
	"gorm.io/gorm"

	"github.com/ghogue02/leora-admin-portal-sub016/core/auth"
	orderEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/order"
)

// BulkError captures one order's failure inside a batch.
type BulkError struct {
	OrderID uint   `json:"order_id"`
	Error   string `json:"error"`
}

// BulkResult aggregates a batch run. Successes and failures are always both
// reported.
type BulkResult struct {
	Updated int         `json:"updated"`
	Failed  int         `json:"failed"`
	Errors  []BulkError `json:"errors,omitempty"`
}

// BulkTransition drives up to BulkLimit orders to one target status under
// the permissive bulk policy. Each order runs in its own transaction, so an
// invalid transition or an allocation race on one order never aborts its
// siblings.
func (e *Engine) BulkTransition(orderIDs []uint, target orderEntity.Status, actor *auth.Actor, note string) (*BulkResult, error) {
	if len(orderIDs) > e.opts.BulkLimit {
		return nil, ErrBulkLimitExceeded
	}
	result := &BulkResult{}
	for _, id := range orderIDs {
		err := e.db.Transaction(func(tx *gorm.DB) error {
			_, err := e.transitionInTx(tx, id, target, actor, note, BulkPolicy)
			return err
		})
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, BulkError{OrderID: id, Error: err.Error()})
			continue
		}
		result.Updated++
	}
	return result, nil
}
