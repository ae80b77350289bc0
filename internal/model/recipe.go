package model

import (
	"cost-calc-api/pkg/costing"

	"github.com/google/uuid"
)

const DefaultYieldRate = 100

// Recipe is one material line of a menu.
type Recipe struct {
	BaseModel
	Owned
	MenuID      uuid.UUID `gorm:"type:uuid;not null;index" json:"menu_id"`
	MaterialID  uuid.UUID `gorm:"type:uuid;not null;index" json:"material_id"`
	UsageAmount float64   `gorm:"not null;default:0" json:"usage_amount"`
	UsageUnit   string    `gorm:"type:varchar(20);not null;default:'g'" json:"usage_unit"`
	YieldRate   float64   `gorm:"not null;default:100" json:"yield_rate"`

	Material *Material `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
}

// Line builds the costing input for r, pricing it from the material's
// live unit price.
func (r *Recipe) Line(m *Material) costing.Line {
	line := costing.Line{
		UsageAmount: r.UsageAmount,
		UsageUnit:   r.UsageUnit,
		YieldRate:   r.YieldRate,
	}
	if m != nil {
		line.BaseUnitPrice = m.UnitPrice()
	}
	return line
}
