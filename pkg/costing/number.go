package costing

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ToSafeNumber converts loosely typed input (form values, JSON fields, DB
// columns) into a finite float64. It never fails: anything it cannot read
// becomes 0.
func ToSafeNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return finiteOrZero(n)
	case float32:
		return finiteOrZero(float64(n))
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case json.Number:
		return parseLoose(string(n))
	case string:
		return parseLoose(n)
	case *string:
		if n == nil {
			return 0
		}
		return parseLoose(*n)
	case *float64:
		if n == nil {
			return 0
		}
		return finiteOrZero(*n)
	case []byte:
		return parseLoose(string(n))
	default:
		return 0
	}
}

func parseLoose(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(f)
}

func finiteOrZero(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// toFinite is the strict counterpart used by the evaluator: it reports
// whether the input is a usable finite number at all instead of folding
// garbage into 0. Null reads as 0 and booleans as 0 or 1.
func toFinite(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case json.Number:
		return toFinite(string(n))
	case *float64:
		if n == nil {
			return 0, false
		}
		return toFinite(*n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case float32:
		return toFinite(float64(n))
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return ToSafeNumber(n), true
	default:
		return 0, false
	}
}
