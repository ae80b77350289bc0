package costing

import (
	"math"
	"strconv"
)

// Tone drives the colour of a cost rate in the UI.
type Tone string

const (
	ToneNone   Tone = "none"
	ToneGood   Tone = "good"
	ToneWarn   Tone = "warn"
	ToneDanger Tone = "danger"
)

const (
	LabelGood    = "good"
	LabelCaution = "caution"
	LabelHigh    = "high"
)

// Evaluation is the display classification of a menu's cost rate.
// DisplayRate and Label are nil when the menu cannot be rated.
type Evaluation struct {
	DisplayRate       *string `json:"displayRate"`
	Label             *string `json:"label"`
	Tone              Tone    `json:"tone"`
	OverWarnThreshold bool    `json:"overWarnThreshold"`
}

// Evaluate classifies costRate against s. Menus without a finite positive
// sales price are unrated. The rate is rounded half up to one decimal
// before any comparison, and the danger threshold is checked first.
func Evaluate(costRate, salesPrice any, s Settings) Evaluation {
	sp, okPrice := toFinite(salesPrice)
	rate, okRate := toFinite(costRate)
	if !okPrice || sp <= 0 || !okRate {
		return Evaluation{Tone: ToneNone}
	}

	rounded := RoundRate(rate)
	display := strconv.FormatFloat(rounded, 'f', 1, 64)

	switch {
	case rounded >= s.DangerCostRate:
		return newEvaluation(display, LabelHigh, ToneDanger, true)
	case rounded > s.TargetCostRate:
		return newEvaluation(display, LabelCaution, ToneWarn, rounded >= s.WarnCostRate)
	default:
		return newEvaluation(display, LabelGood, ToneGood, false)
	}
}

// RoundRate rounds to one decimal place, halves going up.
func RoundRate(rate float64) float64 {
	return math.Floor(rate*10+0.5) / 10
}

func newEvaluation(display, label string, tone Tone, overWarn bool) Evaluation {
	return Evaluation{
		DisplayRate:       &display,
		Label:             &label,
		Tone:              tone,
		OverWarnThreshold: overWarn,
	}
}
