package costing

import "math"

// SettingsKey is the key the cost-rate thresholds are persisted under.
const SettingsKey = "costCalcSettings"

const (
	DefaultTargetCostRate = 30
	DefaultWarnCostRate   = 35
	DefaultDangerCostRate = 40
)

// Settings are the cost-rate thresholds in percent.
// Sanitized settings always satisfy 0 <= Target <= Warn <= Danger <= 100.
type Settings struct {
	TargetCostRate float64 `json:"targetCostRate"`
	WarnCostRate   float64 `json:"warnCostRate"`
	DangerCostRate float64 `json:"dangerCostRate"`
}

// SettingsInput is a partial update; nil fields fall back to defaults.
// Values may arrive as numbers or numeric strings.
type SettingsInput struct {
	TargetCostRate *Number `json:"targetCostRate,omitempty"`
	WarnCostRate   *Number `json:"warnCostRate,omitempty"`
	DangerCostRate *Number `json:"dangerCostRate,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		TargetCostRate: DefaultTargetCostRate,
		WarnCostRate:   DefaultWarnCostRate,
		DangerCostRate: DefaultDangerCostRate,
	}
}

// Input returns s as a fully populated SettingsInput.
func (s Settings) Input() SettingsInput {
	t, w, d := Number(s.TargetCostRate), Number(s.WarnCostRate), Number(s.DangerCostRate)
	return SettingsInput{TargetCostRate: &t, WarnCostRate: &w, DangerCostRate: &d}
}

// Merge overlays the non-nil fields of changes on s without sanitizing.
func (s Settings) Merge(changes SettingsInput) SettingsInput {
	in := s.Input()
	if changes.TargetCostRate != nil {
		in.TargetCostRate = changes.TargetCostRate
	}
	if changes.WarnCostRate != nil {
		in.WarnCostRate = changes.WarnCostRate
	}
	if changes.DangerCostRate != nil {
		in.DangerCostRate = changes.DangerCostRate
	}
	return in
}

// SanitizeSettings clamps every threshold into [0,100] and then forces
// target <= warn <= danger by raising warn and danger. Inverted input is
// corrected, never rejected.
func SanitizeSettings(in SettingsInput) Settings {
	target := clampPercent(FloatOr(in.TargetCostRate, DefaultTargetCostRate))
	warn := clampPercent(FloatOr(in.WarnCostRate, DefaultWarnCostRate))
	danger := clampPercent(FloatOr(in.DangerCostRate, DefaultDangerCostRate))

	warn = math.Max(target, warn)
	danger = math.Max(warn, danger)

	return Settings{
		TargetCostRate: target,
		WarnCostRate:   warn,
		DangerCostRate: danger,
	}
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
