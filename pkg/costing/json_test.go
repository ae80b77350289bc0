package costing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	var body struct {
		Price    Number  `json:"price"`
		Quantity Number  `json:"quantity"`
		Bad      Number  `json:"bad"`
		Yield    *Number `json:"yield"`
		Missing  *Number `json:"missing"`
	}
	err := json.Unmarshal([]byte(`{"price":"1,200","quantity":2.5,"bad":true,"yield":"90"}`), &body)
	require.NoError(t, err)

	assert.Equal(t, 1200.0, body.Price.Float())
	assert.Equal(t, 2.5, body.Quantity.Float())
	assert.Equal(t, 0.0, body.Bad.Float())
	assert.Equal(t, 90.0, FloatOr(body.Yield, 100))
	assert.Equal(t, 100.0, FloatOr(body.Missing, 100))
}

func TestSettingsInput_AcceptsNumericStrings(t *testing.T) {
	var in SettingsInput
	require.NoError(t, json.Unmarshal([]byte(`{"targetCostRate":"35","dangerCostRate":"abc"}`), &in))

	require.NotNil(t, in.TargetCostRate)
	assert.Equal(t, 35.0, in.TargetCostRate.Float())
	assert.Nil(t, in.WarnCostRate)
	assert.Equal(t, Settings{35, 35, 35}, SanitizeSettings(in))
}
