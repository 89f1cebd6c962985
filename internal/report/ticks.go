package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"cashflow/internal/core"
)

// Tick is one labelled y-axis value of the daily chart.
type Tick struct {
	Value core.Money `json:"value"`
	Label string     `json:"label"`
}

// Default axis spacing for the daily chart.
var (
	DefaultTickStep  = decimal.NewFromInt(500_000)
	DefaultTickRound = decimal.NewFromInt(1_000_000)
)

// AxisTicks returns evenly spaced ticks 0, step, 2*step, ... up to and including
// peak rounded up to the next multiple of round.
func AxisTicks(peak core.Money, step, round decimal.Decimal) ([]Tick, error) {
	if !step.IsPositive() || !round.IsPositive() {
		return nil, fmt.Errorf("tick step and round must be positive (step=%s, round=%s)", step, round)
	}
	top := decimal.Zero
	if peak.Amount.IsPositive() {
		top = peak.Amount.Div(round).Ceil().Mul(round)
	}
	var ticks []Tick
	for v := decimal.Zero; v.LessThanOrEqual(top); v = v.Add(step) {
		m := core.Money{Amount: v}
		ticks = append(ticks, Tick{Value: m, Label: m.Display()})
	}
	return ticks, nil
}

// MaxAmount returns the largest daily total, or zero for an empty series.
func MaxAmount(days []core.DailyTotal) core.Money {
	var peak core.Money
	for _, d := range days {
		if d.Amount.Cmp(peak) > 0 {
			peak = d.Amount
		}
	}
	return peak
}
