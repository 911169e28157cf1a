package calc

import (
	"encoding/json"
	"fmt"
)

// Schema versions for persisted calculator state.
const (
	// SchemaLegacySingleProduct is the original flat single-product shape.
	SchemaLegacySingleProduct = 1
	// SchemaMultiProduct is the current multi-product shape.
	SchemaMultiProduct = 2
)

// legacyState mirrors the retired single-product state layout.
type legacyState struct {
	BaseCurrency           Currency    `json:"base_currency"`
	USDRate                float64     `json:"usd_rate"`
	ProductName            string      `json:"product_name"`
	Quantity               float64     `json:"quantity"`
	UnitSellPrice          float64     `json:"unit_sell_price"`
	UnitSupplierCost       float64     `json:"unit_supplier_cost"`
	UnitProductionOverhead float64     `json:"unit_production_overhead"`
	MarkupPct              float64     `json:"markup_pct"`
	Extras                 []ExtraCost `json:"extras"`
	TargetMarginPct        float64     `json:"target_margin_pct"`
}

// Normalize decodes persisted calculator state at the given schema version
// into the current CalcInput shape. Each known legacy shape has exactly one
// branch; unknown versions are rejected.
func Normalize(raw []byte, version int) (CalcInput, error) {
	switch version {
	case SchemaLegacySingleProduct:
		var st legacyState
		if err := json.Unmarshal(raw, &st); err != nil {
			return CalcInput{}, fmt.Errorf("calc: decode v1 state: %w", err)
		}
		return NormalizeInput(CalcInput{
			BaseCurrency:    st.BaseCurrency,
			USDRate:         st.USDRate,
			Extras:          st.Extras,
			TargetMarginPct: st.TargetMarginPct,
			Products: []ProductInput{{
				ID:                     "legacy",
				Name:                   st.ProductName,
				Quantity:               st.Quantity,
				UnitSellPrice:          st.UnitSellPrice,
				UnitSupplierCost:       st.UnitSupplierCost,
				UnitProductionOverhead: st.UnitProductionOverhead,
				MarkupPct:              st.MarkupPct,
			}},
		}), nil
	case SchemaMultiProduct:
		var input CalcInput
		if err := json.Unmarshal(raw, &input); err != nil {
			return CalcInput{}, fmt.Errorf("calc: decode v2 state: %w", err)
		}
		return NormalizeInput(input), nil
	default:
		return CalcInput{}, fmt.Errorf("calc: unknown schema version %d", version)
	}
}

// NormalizeInput applies input-time defaults once, before computation or
// persistence: the base currency defaults to NGN, the exchange rate falls
// back to 1, and every extra cost gets an explicit currency and allocation.
// Compute never re-defaults these fields.
func NormalizeInput(in CalcInput) CalcInput {
	if in.BaseCurrency == "" {
		in.BaseCurrency = NGN
	}
	if rate := Sanitize(in.USDRate); rate <= 0 {
		in.USDRate = 1
	}
	in.TargetMarginPct = Clamp(in.TargetMarginPct)

	extras := make([]ExtraCost, len(in.Extras))
	copy(extras, in.Extras)
	for i := range extras {
		if extras[i].Currency == "" {
			extras[i].Currency = in.BaseCurrency
		}
		if extras[i].Allocation == "" {
			extras[i].Allocation = PerOrder
		}
	}
	in.Extras = extras
	return in
}
