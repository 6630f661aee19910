package stock

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/ghogue02/leora-admin-portal-sub016/api"
	"github.com/ghogue02/leora-admin-portal-sub016/config"
	"github.com/ghogue02/leora-admin-portal-sub016/core/cache"
	inventoryRepo "github.com/ghogue02/leora-admin-portal-sub016/model/repository/inventory"
	inventoryService "github.com/ghogue02/leora-admin-portal-sub016/service/inventory"
)

func init() {
	api.RegisterModule(RegisterStockRoutes)
}

const availabilityCacheTTL = 30 * time.Second

// SKUAvailability is the per-SKU rollup across locations.
type SKUAvailability struct {
	SKU       string `json:"sku"`
	OnHand    int    `json:"on_hand"`
	Allocated int    `json:"allocated"`
	Free      int    `json:"free"`
}

// RegisterStockRoutes wires inventory endpoints under /api.
func RegisterStockRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/stock")
	ledger := inventoryRepo.NewLedgerRepository(db)

	// POST /api/stock/import
	g.POST("/import", func(c echo.Context) error {
		var body struct {
			Items []inventoryService.StockItemInput `json:"items"`
			Batch int                               `json:"batch"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items are required"})
		}
		res, err := inventoryService.ImportStock(db, body.Items, body.Batch)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		for _, tenant := range tenantsOf(body.Items) {
			cache.GetInstance().InvalidateTag("avail:" + tenant)
		}
		return c.JSON(http.StatusOK, res)
	})

	// GET /api/stock/availability?tenant_id=...&skus=a,b,c
	g.GET("/availability", func(c echo.Context) error {
		tenantID := c.QueryParam("tenant_id")
		skuParam := c.QueryParam("skus")
		if tenantID == "" || skuParam == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id and skus are required"})
		}
		skus := splitSKUs(skuParam)

		cacheKey := "stock:avail:" + tenantID + ":" + strings.Join(skus, ",")
		if config.RedisClient != nil {
			if cached, err := config.RedisClient.Get(config.RedisCtx(), cacheKey).Result(); err == nil {
				var out []SKUAvailability
				if json.Unmarshal([]byte(cached), &out) == nil {
					return c.JSON(http.StatusOK, echo.Map{"cached": true, "availability": out})
				}
			}
		} else if v, ok := cache.GetInstance().Get(cacheKey); ok {
			if out, ok := v.([]SKUAvailability); ok {
				return c.JSON(http.StatusOK, echo.Map{"cached": true, "availability": out})
			}
		}

		out := make([]SKUAvailability, len(skus))
		grp := new(errgroup.Group)
		grp.SetLimit(8)
		for i, sku := range skus {
			i, sku := i, sku
			grp.Go(func() error {
				rows, err := ledger.Snapshot(db, tenantID, []string{sku})
				if err != nil {
					return err
				}
				avail := SKUAvailability{SKU: sku}
				for _, row := range rows[sku] {
					avail.OnHand += row.OnHand
					avail.Allocated += row.Allocated
					avail.Free += row.Free()
				}
				out[i] = avail
				return nil
			})
		}
		if err := grp.Wait(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		if config.RedisClient != nil {
			if payload, err := json.Marshal(out); err == nil {
				config.RedisClient.Set(config.RedisCtx(), cacheKey, payload, availabilityCacheTTL)
			}
		} else {
			cache.GetInstance().Set(cacheKey, out, availabilityCacheTTL, "avail:"+tenantID)
		}
		return c.JSON(http.StatusOK, echo.Map{"cached": false, "availability": out})
	})
}

func tenantsOf(items []inventoryService.StockItemInput) []string {
	seen := make(map[string]bool, 1)
	var out []string
	for _, item := range items {
		if item.TenantID != "" && !seen[item.TenantID] {
			seen[item.TenantID] = true
			out = append(out, item.TenantID)
		}
	}
	return out
}

func splitSKUs(param string) []string {
	parts := strings.Split(param, ",")
	skus := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			skus = append(skus, s)
		}
	}
	return skus
}
