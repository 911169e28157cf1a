// Package calc implements the margin/profitability calculation engine.
// All compute functions are pure: they sanitise their numeric inputs at the
// boundary and never return errors for arithmetic edge cases.
package calc

// Currency enumerates the supported currencies.
type Currency string

const (
	NGN Currency = "NGN"
	USD Currency = "USD"
)

// CostKind distinguishes flat-amount extras from revenue-percentage extras.
type CostKind string

const (
	CostAmount  CostKind = "amount"
	CostPercent CostKind = "percent"
)

// Allocation is the policy for spreading an extra cost across an order.
type Allocation string

const (
	PerUnit  Allocation = "per-unit"
	PerOrder Allocation = "per-order"
)

// ExtraCost is an additional cost line such as shipping or duty, applied
// either as a flat currency amount or as a percentage of revenue.
type ExtraCost struct {
	ID         string     `json:"id"`
	Label      string     `json:"label"`
	Kind       CostKind   `json:"kind"`
	Amount     float64    `json:"amount,omitempty"`
	Currency   Currency   `json:"currency,omitempty"`
	Percent    float64    `json:"percent,omitempty"`
	Allocation Allocation `json:"allocation"`
}

// ProductInput is one product line in a margin calculation.
type ProductInput struct {
	ID                     string  `json:"id"`
	Name                   string  `json:"name,omitempty"`
	Quantity               float64 `json:"quantity"`
	UnitSellPrice          float64 `json:"unit_sell_price"`
	UnitSupplierCost       float64 `json:"unit_supplier_cost"`
	UnitProductionOverhead float64 `json:"unit_production_overhead"`
	MarkupPct              float64 `json:"markup_pct"`
}

// CalcInput is the complete input to one margin calculation.
type CalcInput struct {
	BaseCurrency    Currency       `json:"base_currency"`
	USDRate         float64        `json:"usd_rate"`
	Products        []ProductInput `json:"products"`
	Extras          []ExtraCost    `json:"extras"`
	TargetMarginPct float64        `json:"target_margin_pct"`
}

// ProductBreakdown is the derived per-product view of a calculation.
type ProductBreakdown struct {
	ProductID          string  `json:"product_id"`
	Name               string  `json:"name"`
	Quantity           float64 `json:"quantity"`
	Revenue            float64 `json:"revenue"`
	SupplierCost       float64 `json:"supplier_cost"`
	ProductionOverhead float64 `json:"production_overhead"`
	GrossProfit        float64 `json:"gross_profit"`
}

// Results is the aggregate outcome of a margin calculation. It is fully
// determined by its CalcInput and recomputed on every write.
type Results struct {
	Revenue           float64            `json:"revenue"`
	NetRevenue        float64            `json:"net_revenue"`
	Supplier          float64            `json:"supplier"`
	ProdOverhead      float64            `json:"prod_overhead"`
	ExtrasTotal       float64            `json:"extras_total"`
	WithholdingTax    float64            `json:"withholding_tax"`
	GrossProfit       float64            `json:"gross_profit"`
	MarginPct         float64            `json:"margin_pct"`
	ProfitPerUnit     float64            `json:"profit_per_unit"`
	NetRevenuePerUnit float64            `json:"net_revenue_per_unit"`
	RequiredUnitPrice float64            `json:"required_unit_price"`
	ProductBreakdown  []ProductBreakdown `json:"product_breakdown"`
}
