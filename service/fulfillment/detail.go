package fulfillment

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
	"gorm.io/datatypes"

	orderEntity "github.com/ghogue02/leora-admin-portal-sub016/model/entity/order"
)

// AllocationDetail is one location-level commitment. The details for a line
// always sum exactly to the line quantity.
type AllocationDetail struct {
	InventoryID uint   `json:"inventory_id" mapstructure:"inventory_id"`
	Location    string `json:"location" mapstructure:"location"`
	Quantity    int    `json:"quantity" mapstructure:"quantity"`
}

// allocationKey is where the breakdown lives inside the line's
// applied_pricing_rules JSON, next to whatever the pricing engine wrote.
const allocationKey = "allocation"

// DetailsFromLine decodes the persisted allocation breakdown out of the
// line's pricing-rules blob. Returns nil when no allocation was persisted.
// The blob is written by several upstream versions, so decoding is weakly
// typed (JSON numbers arrive as float64).
func DetailsFromLine(line *orderEntity.OrderLine) ([]AllocationDetail, error) {
	if len(line.AppliedPricingRules) == 0 {
		return nil, nil
	}
	var blob map[string]interface{}
	if err := json.Unmarshal(line.AppliedPricingRules, &blob); err != nil {
		return nil, err
	}
	raw, ok := blob[allocationKey]
	if !ok || raw == nil {
		return nil, nil
	}
	var details []AllocationDetail
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &details,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}
	return details, nil
}

// SetLineAllocation merges the allocation breakdown into the line's
// pricing-rules blob, preserving the pricing engine's keys. Passing nil
// details removes the breakdown.
func SetLineAllocation(line *orderEntity.OrderLine, details []AllocationDetail) error {
	blob := map[string]interface{}{}
	if len(line.AppliedPricingRules) > 0 {
		if err := json.Unmarshal(line.AppliedPricingRules, &blob); err != nil {
			return err
		}
	}
	if details == nil {
		delete(blob, allocationKey)
	} else {
		blob[allocationKey] = details
	}
	b, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	line.AppliedPricingRules = datatypes.JSON(b)
	return nil
}
