package fulfillment

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/ghogue02/leora-admin-portal-sub016/api"
	"github.com/ghogue02/leora-admin-portal-sub016/config"
	"github.com/ghogue02/leora-admin-portal-sub016/core/auth"
	orderEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/order"
	fulfillmentService "github.com/ghogue02/leora-admin-portal-sub016/service/fulfillment"
)

func init() {
	api.RegisterModule(RegisterFulfillmentRoutes)
}

var (
	engineInstance *fulfillmentService.Engine
	engineOnce     sync.Once
)

func getEngine(db *gorm.DB) *fulfillmentService.Engine {
	engineOnce.Do(func() {
		engineInstance = fulfillmentService.NewEngine(db, fulfillmentService.NewSinkFromEnv(), fulfillmentService.Options{
			ClampOverRelease: config.GetEnv("RELEASE_CLAMP", "") == "legacy",
		})
	})
	return engineInstance
}

// RegisterFulfillmentRoutes wires the order lifecycle endpoints under /api.
func RegisterFulfillmentRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/fulfillment")

	// POST /api/fulfillment/availability/check
	g.POST("/availability/check", func(c echo.Context) error {
		var body struct {
			TenantID string                       `json:"tenant_id"`
			Items    []fulfillmentService.Request `json:"items"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.TenantID == "" || len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "tenant_id and items are required"})
		}
		shortfalls, err := getEngine(db).CheckAvailability(body.TenantID, body.Items)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		if len(shortfalls) > 0 {
			return c.JSON(http.StatusConflict, echo.Map{"ok": false, "insufficient": shortfalls})
		}
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})

	// POST /api/fulfillment/orders/:id/transition
	g.POST("/orders/:id/transition", func(c echo.Context) error {
		orderID, err := parseOrderID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		var body struct {
			Target string `json:"target"`
			Note   string `json:"note"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		result, err := getEngine(db).Transition(orderID, orderEntity.Status(body.Target), auth.ActorFromContext(c), body.Note)
		if err != nil {
			return writeEngineError(c, err)
		}
		return c.JSON(http.StatusOK, result)
	})

	// POST /api/fulfillment/orders/bulk-transition
	g.POST("/orders/bulk-transition", func(c echo.Context) error {
		var body struct {
			OrderIDs []uint `json:"order_ids"`
			Target   string `json:"target"`
			Note     string `json:"note"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		result, err := getEngine(db).BulkTransition(body.OrderIDs, orderEntity.Status(body.Target), auth.ActorFromContext(c), body.Note)
		if err != nil {
			return writeEngineError(c, err)
		}
		return c.JSON(http.StatusOK, result)
	})

	// POST /api/fulfillment/orders/:id/approve
	g.POST("/orders/:id/approve", func(c echo.Context) error {
		orderID, err := parseOrderID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		o, err := getEngine(db).Approve(orderID, auth.ActorFromContext(c))
		if err != nil {
			return writeEngineError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"order_id": o.OrderID, "status": o.Status})
	})

	// POST /api/fulfillment/orders/:id/reject
	g.POST("/orders/:id/reject", func(c echo.Context) error {
		orderID, err := parseOrderID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		var body struct {
			Reason string `json:"reason"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		o, err := getEngine(db).Reject(orderID, auth.ActorFromContext(c), body.Reason)
		if err != nil {
			return writeEngineError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"order_id": o.OrderID, "status": o.Status})
	})
}

func parseOrderID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.New("order id must be a positive integer")
	}
	return uint(id), nil
}

// writeEngineError maps engine error types onto HTTP statuses.
func writeEngineError(c echo.Context, err error) error {
	var insufficient *fulfillmentService.InsufficientInventoryError
	var allocation *fulfillmentService.AllocationFailedError
	var invalid *fulfillmentService.InvalidTransitionError
	var forbidden *fulfillmentService.ForbiddenError
	switch {
	case errors.As(err, &insufficient):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "insufficient": insufficient.Shortfalls})
	case errors.As(err, &allocation):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error(), "retryable": true})
	case errors.As(err, &invalid):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":   err.Error(),
			"current": invalid.Current,
			"allowed": invalid.Allowed,
		})
	case errors.As(err, &forbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error()})
	case errors.Is(err, fulfillmentService.ErrBulkLimitExceeded),
		errors.Is(err, fulfillmentService.ErrApprovalNotPending):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
