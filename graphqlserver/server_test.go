package graphqlserver

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	inventoryEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/inventory"
	orderEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/order"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&inventoryEntity.Inventory{},
		&orderEntity.Order{},
		&orderEntity.OrderLine{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSchema_Parses(t *testing.T) {
	if _, err := NewSchema(testDB(t)); err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
}

func TestQuery_Order(t *testing.T) {
	db := testDB(t)
	o := &orderEntity.Order{
		TenantID:   "t1",
		CustomerID: 42,
		Status:     orderEntity.StatusPending,
		OrderedAt:  time.Now().UTC(),
		Currency:   "USD",
		Total:      120.5,
		Lines:      []orderEntity.OrderLine{{SKU: "CAB-2019", Quantity: 6, UnitPrice: 20}},
	}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}

	schema, err := NewSchema(db)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	query := fmt.Sprintf(`{ order(id: %d) { orderId status total lines { sku quantity } } }`, o.OrderID)
	resp := schema.Exec(context.Background(), query, "", nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %v", resp.Errors)
	}
	var data struct {
		Order struct {
			OrderID int32   `json:"orderId"`
			Status  string  `json:"status"`
			Total   float64 `json:"total"`
			Lines   []struct {
				SKU      string `json:"sku"`
				Quantity int32  `json:"quantity"`
			} `json:"lines"`
		} `json:"order"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Order.Status != "PENDING" || data.Order.Total != 120.5 {
		t.Errorf("order = %+v", data.Order)
	}
	if len(data.Order.Lines) != 1 || data.Order.Lines[0].SKU != "CAB-2019" {
		t.Errorf("lines = %+v", data.Order.Lines)
	}
}

func TestQuery_OrderMissingIsNull(t *testing.T) {
	schema, err := NewSchema(testDB(t))
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	resp := schema.Exec(context.Background(), `{ order(id: 12345) { orderId } }`, "", nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %v", resp.Errors)
	}
	if string(resp.Data) != `{"order":null}` {
		t.Errorf("data = %s, want null order", resp.Data)
	}
}

func TestQuery_Availability(t *testing.T) {
	db := testDB(t)
	rows := []inventoryEntity.Inventory{
		{TenantID: "t1", SKU: "CAB-2019", Location: "main", OnHand: 5, Allocated: 2},
		{TenantID: "t1", SKU: "CAB-2019", Location: "cellar", OnHand: 4, Allocated: 0},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed stock: %v", err)
	}

	schema, err := NewSchema(db)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	resp := schema.Exec(context.Background(),
		`{ availability(tenantId: "t1", skus: ["CAB-2019", "GHOST"]) { sku onHand allocated free } }`, "", nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("errors: %v", resp.Errors)
	}
	var data struct {
		Availability []struct {
			SKU       string `json:"sku"`
			OnHand    int32  `json:"onHand"`
			Allocated int32  `json:"allocated"`
			Free      int32  `json:"free"`
		} `json:"availability"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.Availability) != 2 {
		t.Fatalf("availability = %+v", data.Availability)
	}
	if a := data.Availability[0]; a.OnHand != 9 || a.Allocated != 2 || a.Free != 7 {
		t.Errorf("CAB-2019 = %+v, want 9/2/7", a)
	}
	if a := data.Availability[1]; a.Free != 0 {
		t.Errorf("GHOST = %+v, want zeroes", a)
	}
}
