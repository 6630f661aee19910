package jobs

import (
	"log"
	"strconv"

	"github.com/ghogue02/leora-admin-portal-sub016/config"
	"github.com/ghogue02/leora-admin-portal-sub016/cron"
	"github.com/ghogue02/leora-admin-portal-sub016/service/fulfillment"
)

func init() {
	cron.Register("reservationsweep", config.GetEnv("SWEEP_SCHEDULE", "@every 5m"), ReservationSweepJob)
}

// ReservationSweepJob expires stale approval holds and returns their stock
// to the pool. Optional first arg overrides the batch limit.
func ReservationSweepJob(args ...string) {
	limit := config.GetEnvInt("SWEEP_BATCH_LIMIT", 100)
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			limit = n
		}
	}

	db, err := config.NewDB()
	if err != nil {
		log.Printf("reservationsweep: db: %v", err)
		return
	}
	engine := fulfillment.NewEngine(db, fulfillment.NewSinkFromEnv(), fulfillment.Options{
		ClampOverRelease: config.GetEnv("RELEASE_CLAMP", "") == "legacy",
	})
	swept, err := engine.SweepExpiredReservations(limit)
	if err != nil {
		log.Printf("reservationsweep: swept %d, stopped: %v", swept, err)
		return
	}
	if swept > 0 {
		log.Printf("reservationsweep: expired %d reservations", swept)
	}
}
