package fulfillment

import (
	"errors"
	"testing"
	"time"

	inventoryRepo "github.com/ghogue02/leora-admin-portal-sub016/model/repository/inventory"
)

func TestAllocate_SplitsAcrossLocationsInRotationOrder(t *testing.T) {
	e := testEngine(t, Options{})
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mainID := seedStock(t, e, "CAB-2019", "main", 5, 0, base)
	cellarID := seedStock(t, e, "CAB-2019", "cellar", 10, 0, base.Add(time.Hour))

	details, err := e.Allocate(e.db, testTenant, []Request{{SKU: "CAB-2019", Quantity: 8}})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	got := details["CAB-2019"]
	if len(got) != 2 {
		t.Fatalf("details = %+v, want 2 locations", got)
	}
	if got[0].Location != "main" || got[0].Quantity != 5 {
		t.Errorf("details[0] = %+v, want main/5", got[0])
	}
	if got[1].Location != "cellar" || got[1].Quantity != 3 {
		t.Errorf("details[1] = %+v, want cellar/3", got[1])
	}

	if row := stockRow(t, e, mainID); row.Allocated != 5 {
		t.Errorf("main allocated = %d, want 5", row.Allocated)
	}
	if row := stockRow(t, e, cellarID); row.Allocated != 3 {
		t.Errorf("cellar allocated = %d, want 3", row.Allocated)
	}
}

func TestAllocate_ExactFitUsesSingleLocation(t *testing.T) {
	e := testEngine(t, Options{})
	now := time.Now().UTC()
	id := seedStock(t, e, "CAB-2019", "main", 6, 2, now)

	details, err := e.Allocate(e.db, testTenant, []Request{{SKU: "CAB-2019", Quantity: 4}})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	got := details["CAB-2019"]
	if len(got) != 1 || got[0].Quantity != 4 {
		t.Fatalf("details = %+v, want one detail of 4", got)
	}
	if row := stockRow(t, e, id); row.Allocated != 6 {
		t.Errorf("allocated = %d, want 6", row.Allocated)
	}
}

func TestAllocate_CombinesDuplicateSKURequests(t *testing.T) {
	e := testEngine(t, Options{})
	id := seedStock(t, e, "CAB-2019", "main", 5, 0, time.Now().UTC())

	details, err := e.Allocate(e.db, testTenant, []Request{
		{SKU: "CAB-2019", Quantity: 2},
		{SKU: "CAB-2019", Quantity: 3},
	})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	total := 0
	for _, d := range details["CAB-2019"] {
		total += d.Quantity
	}
	if total != 5 {
		t.Errorf("details sum %d, want the combined 5", total)
	}
	if row := stockRow(t, e, id); row.Allocated != 5 {
		t.Errorf("allocated = %d, want 5", row.Allocated)
	}
}

func TestAllocate_DuplicateSKUDemandCheckedCumulatively(t *testing.T) {
	e := testEngine(t, Options{})
	id := seedStock(t, e, "CAB-2019", "main", 5, 0, time.Now().UTC())

	// Each request alone fits into the 5 free units; together they do not.
	_, err := e.Allocate(e.db, testTenant, []Request{
		{SKU: "CAB-2019", Quantity: 3},
		{SKU: "CAB-2019", Quantity: 3},
	})
	var insufficient *InsufficientInventoryError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientInventoryError", err)
	}
	if len(insufficient.Shortfalls) != 1 {
		t.Fatalf("shortfalls = %+v, want one combined entry", insufficient.Shortfalls)
	}
	if s := insufficient.Shortfalls[0]; s.Available != 5 || s.Requested != 6 {
		t.Errorf("shortfall = %+v, want available 5 requested 6", s)
	}
	if row := stockRow(t, e, id); row.Allocated != 0 {
		t.Errorf("allocated = %d after failed check, want 0", row.Allocated)
	}
}

func TestAllocate_ReportsEveryShortfall(t *testing.T) {
	e := testEngine(t, Options{})
	now := time.Now().UTC()
	seedStock(t, e, "CAB-2019", "main", 5, 2, now)
	seedStock(t, e, "MER-2020", "main", 1, 0, now)

	_, err := e.Allocate(e.db, testTenant, []Request{
		{SKU: "CAB-2019", Quantity: 4},
		{SKU: "MER-2020", Quantity: 2},
		{SKU: "SYR-2018", Quantity: 1},
	})
	var insufficient *InsufficientInventoryError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientInventoryError", err)
	}
	if len(insufficient.Shortfalls) != 3 {
		t.Fatalf("shortfalls = %+v, want all 3 skus", insufficient.Shortfalls)
	}
	bySKU := map[string]Shortfall{}
	for _, s := range insufficient.Shortfalls {
		bySKU[s.SKU] = s
	}
	if s := bySKU["CAB-2019"]; s.Available != 3 || s.Requested != 4 {
		t.Errorf("CAB-2019 shortfall = %+v, want available 3 requested 4", s)
	}
	if s := bySKU["SYR-2018"]; s.Available != 0 || s.Requested != 1 {
		t.Errorf("SYR-2018 shortfall = %+v, want available 0 requested 1", s)
	}
}

func TestAllocate_ShortfallLeavesCountersUntouched(t *testing.T) {
	e := testEngine(t, Options{})
	now := time.Now().UTC()
	okID := seedStock(t, e, "CAB-2019", "main", 10, 0, now)
	seedStock(t, e, "MER-2020", "main", 1, 0, now)

	_, err := e.Allocate(e.db, testTenant, []Request{
		{SKU: "CAB-2019", Quantity: 4},
		{SKU: "MER-2020", Quantity: 5},
	})
	if err == nil {
		t.Fatal("Allocate succeeded, want shortfall")
	}
	if row := stockRow(t, e, okID); row.Allocated != 0 {
		t.Errorf("allocated = %d after failed check, want 0", row.Allocated)
	}
}

func TestAllocateFromSnapshot_StaleSnapshotFailsAllocation(t *testing.T) {
	e := testEngine(t, Options{})
	now := time.Now().UTC()
	id := seedStock(t, e, "CAB-2019", "main", 5, 0, now)

	snapshot, err := e.ledger.Snapshot(e.db, testTenant, []string{"CAB-2019"})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	// A concurrent writer takes the stock between snapshot and update.
	if ok, err := e.ledger.AddAllocated(e.db, id, 5); err != nil || !ok {
		t.Fatalf("concurrent hold: ok=%v err=%v", ok, err)
	}

	_, err = e.allocateFromSnapshot(e.db, snapshot, []Request{{SKU: "CAB-2019", Quantity: 3}})
	var failed *AllocationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("err = %v, want AllocationFailedError", err)
	}
	if failed.SKU != "CAB-2019" || failed.Remaining != 3 {
		t.Errorf("failure = %+v, want CAB-2019 short 3", failed)
	}
}

func TestRelease_RestoresHolds(t *testing.T) {
	e := testEngine(t, Options{})
	now := time.Now().UTC()
	id := seedStock(t, e, "CAB-2019", "main", 10, 0, now)

	details, err := e.Allocate(e.db, testTenant, []Request{{SKU: "CAB-2019", Quantity: 7}})
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if err := e.Release(e.db, details["CAB-2019"]); err != nil {
		t.Fatalf("Release: %v", err)
	}
	if row := stockRow(t, e, id); row.Allocated != 0 {
		t.Errorf("allocated = %d after release, want 0", row.Allocated)
	}
}

func TestRelease_OverReleaseIsHardErrorByDefault(t *testing.T) {
	e := testEngine(t, Options{})
	now := time.Now().UTC()
	id := seedStock(t, e, "CAB-2019", "main", 10, 2, now)

	err := e.Release(e.db, []AllocationDetail{{InventoryID: id, Location: "main", Quantity: 5}})
	if !errors.Is(err, inventoryRepo.ErrOverRelease) {
		t.Fatalf("err = %v, want ErrOverRelease", err)
	}
	if row := stockRow(t, e, id); row.Allocated != 2 {
		t.Errorf("allocated = %d after failed release, want 2", row.Allocated)
	}
}

func TestRelease_ClampOptionZeroesHold(t *testing.T) {
	e := testEngine(t, Options{ClampOverRelease: true})
	now := time.Now().UTC()
	id := seedStock(t, e, "CAB-2019", "main", 10, 2, now)

	err := e.Release(e.db, []AllocationDetail{{InventoryID: id, Location: "main", Quantity: 5}})
	if err != nil {
		t.Fatalf("Release: %v", err)
	}
	if row := stockRow(t, e, id); row.Allocated != 0 {
		t.Errorf("allocated = %d, want clamped to 0", row.Allocated)
	}
}

func TestReleaseByRecompute_WalksRotationOrderAndClamps(t *testing.T) {
	e := testEngine(t, Options{})
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mainID := seedStock(t, e, "CAB-2019", "main", 5, 3, base)
	cellarID := seedStock(t, e, "CAB-2019", "cellar", 10, 4, base.Add(time.Hour))

	// Asks for more than is held anywhere; recompute releases what exists.
	err := e.ReleaseByRecompute(e.db, testTenant, []Request{{SKU: "CAB-2019", Quantity: 9}})
	if err != nil {
		t.Fatalf("ReleaseByRecompute: %v", err)
	}
	if row := stockRow(t, e, mainID); row.Allocated != 0 {
		t.Errorf("main allocated = %d, want 0", row.Allocated)
	}
	if row := stockRow(t, e, cellarID); row.Allocated != 0 {
		t.Errorf("cellar allocated = %d, want 0", row.Allocated)
	}
}
