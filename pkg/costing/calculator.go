// Package costing holds the pure cost arithmetic behind the API: unit
// prices from purchase data, yield-adjusted recipe line costs, menu
// profitability and cost-rate classification.
//
// Every function here is total. Malformed or non-positive inputs produce
// 0 (or the "none" evaluation) rather than an error, so callers must read
// a 0 from a guarded path as "not computable".
package costing

// UnitPrice is the price of one base unit. qty must already be normalized.
func UnitPrice(price, qty float64) float64 {
	p := ToSafeNumber(price)
	q := ToSafeNumber(qty)
	if q <= 0 {
		return 0
	}
	return p / q
}

// LineCost is the cost of one recipe line. Usage is inflated by the yield
// loss first (90% yield means usage/0.9 of raw material) and then
// normalized to the base unit the price is quoted in. The result is not
// rounded.
func LineCost(usageAmount float64, usageUnit string, yieldRate, baseUnitPrice float64) float64 {
	usage := ToSafeNumber(usageAmount)
	yield := ToSafeNumber(yieldRate)
	price := ToSafeNumber(baseUnitPrice)
	if yield <= 0 || price <= 0 || usage <= 0 {
		return 0
	}

	effective := usage / (yield / 100)
	return Normalize(effective, usageUnit) * price
}

// Line is the input of one recipe line to TotalCost.
type Line struct {
	UsageAmount   float64
	UsageUnit     string
	YieldRate     float64
	BaseUnitPrice float64
}

// Cost returns LineCost for l.
func (l Line) Cost() float64 {
	return LineCost(l.UsageAmount, l.UsageUnit, l.YieldRate, l.BaseUnitPrice)
}

// TotalCost sums the line costs of a menu.
func TotalCost(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.Cost()
	}
	return total
}

// Metrics is the profitability of a single menu.
type Metrics struct {
	SalesPrice  float64 `json:"sales_price"`
	TotalCost   float64 `json:"total_cost"`
	GrossProfit float64 `json:"gross_profit"`
	CostRate    float64 `json:"cost_rate"`
}

// CalculateMetrics derives gross profit and cost rate (percent). A menu
// without a positive sales price has a cost rate of 0. Gross profit is
// allowed to go negative.
func CalculateMetrics(salesPrice, totalCost any) Metrics {
	sp := ToSafeNumber(salesPrice)
	tc := ToSafeNumber(totalCost)

	m := Metrics{
		SalesPrice:  sp,
		TotalCost:   tc,
		GrossProfit: sp - tc,
	}
	if sp > 0 {
		m.CostRate = tc / sp * 100
	}
	return m
}
