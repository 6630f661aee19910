package fulfillment

import (
	"time"

	"gorm.io/gorm"

	inventoryRepo "github.com/ghogue02/leora-admin-portal-sub016/model/repository/inventory"
	orderRepo "github.com/ghogue02/leora-admin-portal-sub016/model/repository/order"
)

// Request asks for a quantity of one SKU.
type Request struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// Options tune engine behavior. Zero values fall back to defaults.
type Options struct {
	// ClampOverRelease restores the legacy behavior of silently truncating
	// over-release requests to the current hold. Default is a hard error.
	ClampOverRelease bool
	// ReservationTTL bounds approval holds. Default 48h.
	ReservationTTL time.Duration
	// DefaultLocation is used for orders without a warehouse. Default "main".
	DefaultLocation string
	// BulkLimit caps a bulk transition batch. Default 100.
	BulkLimit int
}

// Engine is the order fulfillment and inventory allocation engine. One
// instance per process; every operation runs in its own transaction.
type Engine struct {
	db           *gorm.DB
	ledger       *inventoryRepo.LedgerRepository
	reservations *inventoryRepo.ReservationRepository
	orders       *orderRepo.OrderRepository
	audit        AuditSink
	opts         Options
}

func NewEngine(db *gorm.DB, audit AuditSink, opts Options) *Engine {
	if audit == nil {
		audit = LogSink{}
	}
	if opts.ReservationTTL <= 0 {
		opts.ReservationTTL = 48 * time.Hour
	}
	if opts.DefaultLocation == "" {
		opts.DefaultLocation = "main"
	}
	if opts.BulkLimit <= 0 {
		opts.BulkLimit = 100
	}
	return &Engine{
		db:           db,
		ledger:       inventoryRepo.NewLedgerRepository(db),
		reservations: inventoryRepo.NewReservationRepository(db),
		orders:       orderRepo.NewOrderRepository(db),
		audit:        audit,
		opts:         opts,
	}
}

// emit hands an event to the audit sink. Sink failures must never reach the
// business transaction, so panics are swallowed into the log by the sink
// contract and nothing is returned here.
func (e *Engine) emit(ev AuditEvent) {
	ev.OccurredAt = time.Now().UTC()
	e.audit.Emit(ev)
}
