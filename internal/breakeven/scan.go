// Package breakeven finds the first month at which the cumulative cost of
// switching no longer exceeds the cumulative cost of staying.
package breakeven

import (
	"github.com/shopspring/decimal"

	"github.com/karimaz/switchcalc/internal/domain"
)

// Result reports the outcome of a scan. A missing break-even is an explicit
// state, never a sentinel month number.
type Result struct {
	Found bool `json:"found"`
	Month int  `json:"month,omitempty"`
}

// MonthOrNil converts the result to the nullable wire representation.
func (r Result) MonthOrNil() *int {
	if !r.Found {
		return nil
	}
	m := r.Month
	return &m
}

// Scan walks the two cumulative cash-out series left to right and returns
// the smallest month m (1-based) with cumulativeSwitch[m] <=
// cumulativeStay[m]. A linear scan, not a bisection: with scenario rate
// resets the switch curve is not guaranteed to cross the stay curve exactly
// once. The result is derived purely from the two series.
func Scan(cumulativeStay, cumulativeSwitch []decimal.Decimal) (Result, error) {
	if len(cumulativeStay) != len(cumulativeSwitch) {
		return Result{}, &domain.ComputationError{
			Operation: "break_even_scan",
			Message:   "cumulative series lengths differ",
		}
	}
	for i := range cumulativeStay {
		if cumulativeSwitch[i].LessThanOrEqual(cumulativeStay[i]) {
			return Result{Found: true, Month: i + 1}, nil
		}
	}
	return Result{}, nil
}
