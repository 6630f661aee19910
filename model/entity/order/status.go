package order

// Status is the closed set of order lifecycle states. The SUBMITTED,
// FULFILLED and PARTIALLY_FULFILLED values are legacy states that still
// exist on historical rows; they are stored verbatim and never remapped.
type Status string

const (
	StatusDraft          Status = "DRAFT"
	StatusPending        Status = "PENDING"
	StatusReadyToDeliver Status = "READY_TO_DELIVER"
	StatusPicked         Status = "PICKED"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"

	// Legacy states (pre state-machine rework).
	StatusSubmitted          Status = "SUBMITTED"
	StatusFulfilled          Status = "FULFILLED"
	StatusPartiallyFulfilled Status = "PARTIALLY_FULFILLED"
)

var allStatuses = map[Status]bool{
	StatusDraft:              true,
	StatusPending:            true,
	StatusReadyToDeliver:     true,
	StatusPicked:             true,
	StatusDelivered:          true,
	StatusCancelled:          true,
	StatusSubmitted:          true,
	StatusFulfilled:          true,
	StatusPartiallyFulfilled: true,
}

// Valid reports whether s is a member of the closed status set.
func (s Status) Valid() bool {
	return allStatuses[s]
}

// Terminal reports whether no transition can leave s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusFulfilled
}
