package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/karimaz/switchcalc/internal/domain"
)

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// MonthlyPayment returns the fixed annuity installment for a principal at a
// periodic (monthly) rate over n months: P * r * (1+r)^n / ((1+r)^n - 1).
// A zero rate degenerates to straight-line principal / n.
func MonthlyPayment(principal, monthlyRate decimal.Decimal, months int) (decimal.Decimal, error) {
	if months <= 0 {
		return decimal.Zero, &domain.ComputationError{
			Operation: "monthly_payment",
			Message:   "no remaining months to amortize over",
		}
	}
	if monthlyRate.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(months))), nil
	}

	base := one.Add(monthlyRate)
	if !base.IsPositive() {
		return decimal.Zero, &domain.ComputationError{
			Operation: "monthly_payment",
			Message:   "annuity formula undefined for monthly rate <= -100%",
		}
	}

	factor := base.Pow(decimal.NewFromInt(int64(months)))
	denom := factor.Sub(one)
	if denom.IsZero() {
		return decimal.Zero, &domain.ComputationError{
			Operation: "monthly_payment",
			Message:   "degenerate annuity factor",
		}
	}
	return principal.Mul(monthlyRate).Mul(factor).Div(denom), nil
}

// MonthlyRate converts an annual fraction to the periodic rate.
func MonthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(twelve)
}
