package model

import (
	"fmt"

	"cost-calc-api/pkg/costing"

	"gorm.io/gorm"
)

// Material is a purchased ingredient. PurchaseQuantity is stored already
// normalized to BaseUnit.
type Material struct {
	BaseModel
	Owned
	Name                string           `gorm:"type:varchar(255);not null;index" json:"name"`
	Category            string           `gorm:"type:varchar(100);index" json:"category"`
	PurchasePrice       float64          `gorm:"not null;default:0" json:"purchase_price"`
	PurchaseQuantity    float64          `gorm:"not null;default:0" json:"purchase_quantity"`
	BaseUnit            costing.BaseUnit `gorm:"type:varchar(10);not null;default:'g'" json:"base_unit"`
	CalculatedUnitPrice float64          `gorm:"not null;default:0" json:"calculated_unit_price"`
}

// UnitPrice recomputes the price per base unit from the purchase fields.
func (m *Material) UnitPrice() float64 {
	return costing.UnitPrice(m.PurchasePrice, m.PurchaseQuantity)
}

// Recalculate refreshes CalculatedUnitPrice.
func (m *Material) Recalculate() {
	m.CalculatedUnitPrice = m.UnitPrice()
}

// BeforeSave rejects unknown base units and keeps the stored unit price in
// step with the purchase fields.
func (m *Material) BeforeSave(tx *gorm.DB) error {
	if !m.BaseUnit.Valid() {
		return fmt.Errorf("invalid base unit %q", m.BaseUnit)
	}
	m.Recalculate()
	return nil
}
