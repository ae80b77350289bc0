package costing

import (
	"encoding/json"
	"strings"
)

// Number is a float64 that accepts JSON numbers or numeric strings
// ("1,200") and reads anything else as 0, the way ToSafeNumber does.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*n = Number(ToSafeNumber(str))
		return nil
	}
	*n = Number(ToSafeNumber(json.Number(s)))
	return nil
}

// Float returns n as a float64.
func (n Number) Float() float64 {
	return float64(n)
}

// FloatOr dereferences p, falling back to def when p is nil.
func FloatOr(p *Number, def float64) float64 {
	if p == nil {
		return def
	}
	return float64(*p)
}
