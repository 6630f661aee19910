package inventory

import (
	"testing"
	"time"

	inventoryEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/inventory"
)

func seedReservation(t *testing.T, repo *ReservationRepository, id string, orderID uint, sku string, qty int, status string, expiresAt time.Time) {
	t.Helper()
	err := repo.Create(repo.db, &inventoryEntity.InventoryReservation{
		ReservationID: id,
		TenantID:      "t1",
		SKU:           sku,
		OrderID:       orderID,
		Quantity:      qty,
		Status:        status,
		ExpiresAt:     expiresAt,
	})
	if err != nil {
		t.Fatalf("seed reservation %s: %v", id, err)
	}
}

func TestReservationRepository_FindActiveByOrder(t *testing.T) {
	db := testDB(t)
	repo := NewReservationRepository(db)
	later := time.Now().UTC().Add(time.Hour)

	seedReservation(t, repo, "r1", 7, "CAB-2019", 5, inventoryEntity.ReservationActive, later)
	seedReservation(t, repo, "r2", 7, "MER-2020", 2, inventoryEntity.ReservationReleased, later)
	seedReservation(t, repo, "r3", 8, "CAB-2019", 1, inventoryEntity.ReservationActive, later)

	active, err := repo.FindActiveByOrder(nil, 7)
	if err != nil {
		t.Fatalf("FindActiveByOrder: %v", err)
	}
	if len(active) != 1 || active[0].ReservationID != "r1" {
		t.Fatalf("active = %+v, want only r1", active)
	}
}

func TestReservationRepository_ReleaseByOrder(t *testing.T) {
	db := testDB(t)
	repo := NewReservationRepository(db)
	later := time.Now().UTC().Add(time.Hour)

	seedReservation(t, repo, "r1", 7, "CAB-2019", 5, inventoryEntity.ReservationActive, later)
	seedReservation(t, repo, "r2", 7, "MER-2020", 2, inventoryEntity.ReservationActive, later)
	seedReservation(t, repo, "r3", 7, "SYR-2018", 1, inventoryEntity.ReservationExpired, later)

	closed, err := repo.ReleaseByOrder(db, 7)
	if err != nil {
		t.Fatalf("ReleaseByOrder: %v", err)
	}
	if closed != 2 {
		t.Errorf("closed = %d, want 2", closed)
	}

	var expired inventoryEntity.InventoryReservation
	if err := db.First(&expired, "reservation_id = ?", "r3").Error; err != nil {
		t.Fatalf("fetch r3: %v", err)
	}
	if expired.Status != inventoryEntity.ReservationExpired {
		t.Errorf("r3 status = %s, EXPIRED rows must not be touched", expired.Status)
	}
}

func TestReservationRepository_FindExpiredOldestFirst(t *testing.T) {
	db := testDB(t)
	repo := NewReservationRepository(db)
	now := time.Now().UTC()

	seedReservation(t, repo, "r1", 1, "CAB-2019", 5, inventoryEntity.ReservationActive, now.Add(-time.Minute))
	seedReservation(t, repo, "r2", 2, "CAB-2019", 5, inventoryEntity.ReservationActive, now.Add(-time.Hour))
	seedReservation(t, repo, "r3", 3, "CAB-2019", 5, inventoryEntity.ReservationActive, now.Add(time.Hour))
	seedReservation(t, repo, "r4", 4, "CAB-2019", 5, inventoryEntity.ReservationReleased, now.Add(-time.Hour))

	expired, err := repo.FindExpired(now, 10)
	if err != nil {
		t.Fatalf("FindExpired: %v", err)
	}
	if len(expired) != 2 {
		t.Fatalf("expired = %d rows, want 2", len(expired))
	}
	if expired[0].ReservationID != "r2" || expired[1].ReservationID != "r1" {
		t.Errorf("order = [%s %s], want [r2 r1]", expired[0].ReservationID, expired[1].ReservationID)
	}
}

func TestReservationRepository_MarkExpiredIsGuarded(t *testing.T) {
	db := testDB(t)
	repo := NewReservationRepository(db)

	seedReservation(t, repo, "r1", 1, "CAB-2019", 5, inventoryEntity.ReservationActive, time.Now().UTC())

	ok, err := repo.MarkExpired(db, "r1")
	if err != nil {
		t.Fatalf("MarkExpired: %v", err)
	}
	if !ok {
		t.Fatal("MarkExpired rejected an ACTIVE reservation")
	}

	ok, err = repo.MarkExpired(db, "r1")
	if err != nil {
		t.Fatalf("MarkExpired: %v", err)
	}
	if ok {
		t.Fatal("MarkExpired flipped an already-EXPIRED reservation")
	}
}
