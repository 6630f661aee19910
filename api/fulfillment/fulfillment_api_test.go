package fulfillment

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ghogue02/leora-admin-portal-sub016/core/auth"
	inventoryEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/inventory"
	orderEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/order"
)

// The engine behind the routes is process-wide, so the whole HTTP surface is
// exercised against one database in one test.
func TestFulfillmentRoutes(t *testing.T) {
	t.Setenv("AUTH_TYPE", "")
	t.Setenv("API_USER", "ops")
	t.Setenv("API_PASS", "secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&inventoryEntity.Inventory{},
		&inventoryEntity.InventoryReservation{},
		&orderEntity.Order{},
		&orderEntity.OrderLine{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	e := echo.New()
	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware(db))
	RegisterFulfillmentRoutes(apiGroup, db)

	seed := func(rows ...interface{}) {
		for _, row := range rows {
			if err := db.Create(row).Error; err != nil {
				t.Fatalf("seed: %v", err)
			}
		}
	}
	do := func(method, path, body string, authed bool) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		if authed {
			req.SetBasicAuth("ops", "secret")
			req.Header.Set("X-Tenant-ID", "t1")
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	seed(&inventoryEntity.Inventory{TenantID: "t1", SKU: "CAB-2019", Location: "main", OnHand: 10})

	t.Run("unauthenticated is rejected", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/fulfillment/availability/check", `{"tenant_id":"t1","items":[{"sku":"CAB-2019","quantity":1}]}`, false)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rec.Code)
		}
	})

	t.Run("availability ok", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/fulfillment/availability/check", `{"tenant_id":"t1","items":[{"sku":"CAB-2019","quantity":8}]}`, true)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("availability shortfall", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/fulfillment/availability/check", `{"tenant_id":"t1","items":[{"sku":"CAB-2019","quantity":11}]}`, true)
		if rec.Code != http.StatusConflict {
			t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
		}
		var body struct {
			Insufficient []struct {
				SKU       string `json:"sku"`
				Available int    `json:"available"`
			} `json:"insufficient"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.Insufficient) != 1 || body.Insufficient[0].Available != 10 {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	order := &orderEntity.Order{
		TenantID:         "t1",
		CustomerID:       42,
		Status:           orderEntity.StatusDraft,
		OrderedAt:        time.Now().UTC(),
		Currency:         "USD",
		RequiresApproval: true,
		Lines:            []orderEntity.OrderLine{{SKU: "CAB-2019", Quantity: 4}},
	}
	seed(order)

	t.Run("approve", func(t *testing.T) {
		rec := do(http.MethodPost, fmt.Sprintf("/api/fulfillment/orders/%d/approve", order.OrderID), "", true)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
		}
		var body struct {
			Status string `json:"status"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Status != string(orderEntity.StatusPending) {
			t.Errorf("status = %s, want PENDING", body.Status)
		}
	})

	t.Run("invalid transition maps to 422", func(t *testing.T) {
		rec := do(http.MethodPost, fmt.Sprintf("/api/fulfillment/orders/%d/transition", order.OrderID), `{"target":"DELIVERED"}`, true)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("valid transition", func(t *testing.T) {
		rec := do(http.MethodPost, fmt.Sprintf("/api/fulfillment/orders/%d/transition", order.OrderID), `{"target":"READY_TO_DELIVER"}`, true)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("missing order maps to 404", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/fulfillment/orders/99999/transition", `{"target":"PENDING"}`, true)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
		}
	})

	t.Run("bulk transition reports per order", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/fulfillment/orders/bulk-transition",
			fmt.Sprintf(`{"order_ids":[%d,99999],"target":"DELIVERED"}`, order.OrderID), true)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
		}
		var body struct {
			Updated int `json:"updated"`
			Failed  int `json:"failed"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Updated != 1 || body.Failed != 1 {
			t.Errorf("body = %s, want 1 updated 1 failed", rec.Body.String())
		}
	})

	t.Run("bad order id maps to 400", func(t *testing.T) {
		rec := do(http.MethodPost, "/api/fulfillment/orders/abc/transition", `{"target":"PENDING"}`, true)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
		}
	})
}
