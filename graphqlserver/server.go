package graphqlserver

import (
	"context"
	"errors"
	"time"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"github.com/ghogue02/leora-admin-portal-sub016/graphql"
	inventoryRepo "github.com/ghogue02/leora-admin-portal-sub016/model/repository/inventory"
	orderEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/order"
)

// RootResolver is the root for graphql-go. The read surface is intentionally
// query-only; all writes go through the REST endpoints.
type RootResolver struct {
	DB *gorm.DB
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{db: r.DB}
}

// QueryResolver implements Query fields.
type QueryResolver struct {
	db *gorm.DB
}

// --- GraphQL models (field names match schema via UseFieldResolvers) ---

type Order struct {
	OrderID           int32
	TenantID          string
	CustomerID        int32
	Status            string
	Currency          string
	Total             float64
	RequiresApproval  bool
	WarehouseLocation string
	OrderedAt         string
	DeliveredAt       *string
	Lines             []OrderLine
}

type OrderLine struct {
	LineID    int32
	SKU       string
	Quantity  int32
	UnitPrice float64
}

type SkuAvailability struct {
	SKU       string
	OnHand    int32
	Allocated int32
	Free      int32
}

type OrderArgs struct {
	ID int32
}

func (r *QueryResolver) Order(ctx context.Context, args OrderArgs) (*Order, error) {
	var row orderEntity.Order
	err := r.db.WithContext(ctx).Preload("Lines").First(&row, "order_id = ?", args.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapOrder(&row), nil
}

type OrdersArgs struct {
	TenantID string
	Status   *string
	Limit    *int32
}

func (r *QueryResolver) Orders(ctx context.Context, args OrdersArgs) ([]*Order, error) {
	limit := 50
	if args.Limit != nil && *args.Limit > 0 {
		limit = int(*args.Limit)
	}
	q := r.db.WithContext(ctx).Preload("Lines").
		Where("tenant_id = ?", args.TenantID).
		Order("order_id DESC").
		Limit(limit)
	if args.Status != nil && *args.Status != "" {
		q = q.Where("status = ?", *args.Status)
	}
	var rows []orderEntity.Order
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*Order, 0, len(rows))
	for i := range rows {
		out = append(out, mapOrder(&rows[i]))
	}
	return out, nil
}

type AvailabilityArgs struct {
	TenantID string
	Skus     []string
}

func (r *QueryResolver) Availability(ctx context.Context, args AvailabilityArgs) ([]*SkuAvailability, error) {
	ledger := inventoryRepo.NewLedgerRepository(r.db)
	rows, err := ledger.Snapshot(r.db.WithContext(ctx), args.TenantID, args.Skus)
	if err != nil {
		return nil, err
	}
	out := make([]*SkuAvailability, 0, len(args.Skus))
	for _, sku := range args.Skus {
		avail := &SkuAvailability{SKU: sku}
		for _, row := range rows[sku] {
			avail.OnHand += int32(row.OnHand)
			avail.Allocated += int32(row.Allocated)
			avail.Free += int32(row.Free())
		}
		out = append(out, avail)
	}
	return out, nil
}

func mapOrder(row *orderEntity.Order) *Order {
	o := &Order{
		OrderID:           int32(row.OrderID),
		TenantID:          row.TenantID,
		CustomerID:        int32(row.CustomerID),
		Status:            string(row.Status),
		Currency:          row.Currency,
		Total:             row.Total,
		RequiresApproval:  row.RequiresApproval,
		WarehouseLocation: row.Warehouse(),
		OrderedAt:         row.OrderedAt.Format(time.RFC3339),
		Lines:             make([]OrderLine, 0, len(row.Lines)),
	}
	if row.DeliveredAt != nil {
		s := row.DeliveredAt.Format(time.RFC3339)
		o.DeliveredAt = &s
	}
	for _, line := range row.Lines {
		o.Lines = append(o.Lines, OrderLine{
			LineID:    int32(line.LineID),
			SKU:       line.SKU,
			Quantity:  int32(line.Quantity),
			UnitPrice: line.UnitPrice,
		})
	}
	return o
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{DB: db}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
