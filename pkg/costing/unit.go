package costing

import "strings"

// BaseUnit is the canonical unit every quantity is normalized to before
// cost arithmetic.
type BaseUnit string

const (
	BaseGram       BaseUnit = "g"
	BaseMilliliter BaseUnit = "ml"
	BaseCount      BaseUnit = "count"
)

// scaleUnits lists the purchase/usage units that are a fixed multiple of
// a base unit. Keys are lower case.
var scaleUnits = map[string]float64{
	"kg": 1000,
	"l":  1000,
}

// Normalize returns amount expressed in the base unit of unit. Unknown
// units are taken as already being base units. Non-positive amounts
// normalize to 0.
func Normalize(amount float64, unit string) float64 {
	a := ToSafeNumber(amount)
	if a <= 0 {
		return 0
	}
	if m, ok := scaleUnits[strings.ToLower(strings.TrimSpace(unit))]; ok {
		return a * m
	}
	return a
}

// BaseUnitFor maps a purchase unit to the base unit its quantity is stored in.
func BaseUnitFor(unit string) BaseUnit {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kg", "g":
		return BaseGram
	case "l", "ml":
		return BaseMilliliter
	default:
		return BaseCount
	}
}

// Valid reports whether u is one of the known base units.
func (u BaseUnit) Valid() bool {
	return u == BaseGram || u == BaseMilliliter || u == BaseCount
}
