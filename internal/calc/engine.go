package calc

// WithholdingRate is the fixed statutory deduction applied to gross revenue
// before net-revenue and margin calculations. It also imposes the 100%
// target-margin ceiling in the required-price computation.
const WithholdingRate = 0.02

const netRevenueShare = 1 - WithholdingRate

// Compute derives the full profitability breakdown for one calculation.
// Numeric inputs are sanitised at this boundary: non-finite values become 0
// and quantities, amounts and percentages are clamped to 0 where negative.
// Division-by-zero situations (no quantity, target margin at or above the
// ceiling) produce zero values by domain policy, never errors.
func Compute(input CalcInput) Results {
	breakdown := make([]ProductBreakdown, 0, len(input.Products))

	var revenue, supplier, prodOverhead, totalQuantity float64
	for _, p := range input.Products {
		qty := Clamp(p.Quantity)
		name := p.Name
		if name == "" {
			name = "Product"
		}

		pb := ProductBreakdown{
			ProductID:          p.ID,
			Name:               name,
			Quantity:           qty,
			Revenue:            Sanitize(p.UnitSellPrice) * qty,
			SupplierCost:       Sanitize(p.UnitSupplierCost) * qty,
			ProductionOverhead: Sanitize(p.UnitProductionOverhead) * qty,
		}
		pb.GrossProfit = pb.Revenue - pb.SupplierCost - pb.ProductionOverhead
		breakdown = append(breakdown, pb)

		revenue += pb.Revenue
		supplier += pb.SupplierCost
		prodOverhead += pb.ProductionOverhead
		totalQuantity += qty
	}

	var extrasTotal float64
	for _, e := range input.Extras {
		if e.Kind == CostPercent {
			// Percent extras always apply to total revenue; allocation is
			// only meaningful for amount extras.
			extrasTotal += Clamp(e.Percent) / 100 * revenue
			continue
		}
		value := ToBase(Clamp(e.Amount), e.Currency, input.BaseCurrency, input.USDRate)
		if e.Allocation == PerUnit {
			value *= totalQuantity
		}
		extrasTotal += value
	}

	productionCost := supplier + prodOverhead + extrasTotal

	var withholding float64
	if revenue > 0 {
		withholding = revenue * WithholdingRate
	}
	netRevenue := revenue - withholding
	if netRevenue < 0 {
		netRevenue = 0
	}
	grossProfit := netRevenue - productionCost

	var marginPct float64
	if netRevenue > 0 {
		marginPct = grossProfit / netRevenue * 100
	}

	var profitPerUnit, netRevenuePerUnit float64
	if totalQuantity > 0 {
		profitPerUnit = grossProfit / totalQuantity
		netRevenuePerUnit = netRevenue / totalQuantity
	}

	targetMargin := Clamp(input.TargetMarginPct) / 100
	marginDenominator := (1 - targetMargin) * netRevenueShare
	var requiredUnitPrice float64
	if marginDenominator > 0 {
		requiredRevenue := productionCost / marginDenominator
		if requiredRevenue > 0 && totalQuantity > 0 {
			requiredUnitPrice = requiredRevenue / totalQuantity
		}
	}

	return Results{
		Revenue:           revenue,
		NetRevenue:        netRevenue,
		Supplier:          supplier,
		ProdOverhead:      prodOverhead,
		ExtrasTotal:       extrasTotal,
		WithholdingTax:    withholding,
		GrossProfit:       grossProfit,
		MarginPct:         marginPct,
		ProfitPerUnit:     profitPerUnit,
		NetRevenuePerUnit: netRevenuePerUnit,
		RequiredUnitPrice: requiredUnitPrice,
		ProductBreakdown:  breakdown,
	}
}
