package model

import "cost-calc-api/pkg/costing"

// Menu is a dish on sale. TotalCost, GrossProfit and CostRate are derived
// from its recipe lines and SalesPrice.
type Menu struct {
	BaseModel
	Owned
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	SalesPrice  float64 `gorm:"not null;default:0" json:"sales_price"`
	TotalCost   float64 `gorm:"not null;default:0" json:"total_cost"`
	GrossProfit float64 `gorm:"not null;default:0" json:"gross_profit"`
	CostRate    float64 `gorm:"not null;default:0" json:"cost_rate"`
	Image       string  `gorm:"type:text" json:"image,omitempty"` // data URL

	Recipes []Recipe `gorm:"foreignKey:MenuID" json:"recipes,omitempty"`
}

// ApplyMetrics stores m's derived fields.
func (m *Menu) ApplyMetrics(metrics costing.Metrics) {
	m.SalesPrice = metrics.SalesPrice
	m.TotalCost = metrics.TotalCost
	m.GrossProfit = metrics.GrossProfit
	m.CostRate = metrics.CostRate
}

// Metrics returns the stored derived fields.
func (m *Menu) Metrics() costing.Metrics {
	return costing.Metrics{
		SalesPrice:  m.SalesPrice,
		TotalCost:   m.TotalCost,
		GrossProfit: m.GrossProfit,
		CostRate:    m.CostRate,
	}
}
