package domain

import (
	"github.com/shopspring/decimal"
)

// InsuranceMethod selects how the monthly life insurance charge is derived.
type InsuranceMethod string

const (
	InsuranceNone                 InsuranceMethod = "none"
	InsuranceFixedMonthly         InsuranceMethod = "fixed_monthly"
	InsurancePercentOfOutstanding InsuranceMethod = "percent_of_outstanding"
)

// EarlySettlementTerms capture the current lender's early settlement policy.
// PercentOfOutstanding is a fraction (0.01 = 1%) applied to the outstanding
// balance at the time of the buyout; CapAED bounds the resulting penalty.
type EarlySettlementTerms struct {
	PercentOfOutstanding decimal.Decimal `json:"percent_of_outstanding" yaml:"percent_of_outstanding"`
	CapAED               decimal.Decimal `json:"cap_aed" yaml:"cap_aed"`
}

// LoanTerms describe one mortgage as priced by one lender. All rates are
// annual fractions (0.0425 = 4.25%). For the current loan Principal is the
// outstanding balance today; for the new offer it is the financed amount.
type LoanTerms struct {
	Bank         string          `json:"bank,omitempty" yaml:"bank,omitempty"`
	Principal    decimal.Decimal `json:"principal_aed" yaml:"principal_aed"`
	AnnualRate   decimal.Decimal `json:"annual_rate" yaml:"annual_rate"`
	TenureMonths int             `json:"tenure_months" yaml:"tenure_months"`

	// Optional simple rate curve for new offers: AnnualRate applies for the
	// first FixedMonths, ReversionRate afterwards. FixedMonths of zero means
	// AnnualRate for the whole tenure.
	FixedMonths   int             `json:"fixed_months,omitempty" yaml:"fixed_months,omitempty"`
	ReversionRate decimal.Decimal `json:"reversion_rate,omitempty" yaml:"reversion_rate,omitempty"`

	// RateFloor clamps the effective annual rate from below. Scenario deltas
	// can push a rate negative; the floor (default zero) keeps the annuity
	// formula finite.
	RateFloor decimal.Decimal `json:"rate_floor,omitempty" yaml:"rate_floor,omitempty"`

	// ResetFreqMonths is how often the installment is recomputed against the
	// remaining balance and tenure. Zero means the installment is fixed for
	// the life of the loan (recomputed only at the fixed-period boundary or
	// after a reduce_emi prepayment).
	ResetFreqMonths int `json:"reset_freq_months,omitempty" yaml:"reset_freq_months,omitempty"`

	// Recurring charges added to each month's cash-out.
	AdminFeeMonthly decimal.Decimal `json:"admin_fee_monthly,omitempty" yaml:"admin_fee_monthly,omitempty"`
	InsuranceMethod InsuranceMethod `json:"insurance_method,omitempty" yaml:"insurance_method,omitempty"`
	// InsuranceValue is a flat AED amount for fixed_monthly, or an annual
	// fraction of the outstanding balance for percent_of_outstanding.
	InsuranceValue decimal.Decimal `json:"insurance_value,omitempty" yaml:"insurance_value,omitempty"`

	// EarlySettlement is only meaningful on the current loan.
	EarlySettlement *EarlySettlementTerms `json:"early_settlement,omitempty" yaml:"early_settlement,omitempty"`
}

// EffectiveRate returns the annual rate in force at month m (1-based),
// shifted by delta and clamped at the floor. The delta models scenario
// sensitivity on new offers; callers pass decimal.Zero for locked-in loans.
func (lt *LoanTerms) EffectiveRate(month int, delta decimal.Decimal) decimal.Decimal {
	rate := lt.AnnualRate
	if lt.FixedMonths > 0 && month > lt.FixedMonths {
		rate = lt.ReversionRate
	}
	rate = rate.Add(delta)

	floor := lt.RateFloor
	if floor.IsNegative() {
		floor = decimal.Zero
	}
	if rate.LessThan(floor) {
		return floor
	}
	return rate
}

// MonthlyInsurance returns the insurance charge for one month given the
// outstanding balance after that month's payment.
func (lt *LoanTerms) MonthlyInsurance(outstanding decimal.Decimal) decimal.Decimal {
	switch lt.InsuranceMethod {
	case InsurancePercentOfOutstanding:
		return outstanding.Mul(lt.InsuranceValue).Div(decimal.NewFromInt(12))
	case InsuranceFixedMonthly:
		return lt.InsuranceValue
	default:
		return decimal.Zero
	}
}

// PrepaymentMethod selects what a prepayment shortens: the remaining term
// (installment unchanged) or the installment (term unchanged).
type PrepaymentMethod string

const (
	PrepayReduceTerm PrepaymentMethod = "reduce_term"
	PrepayReduceEMI  PrepaymentMethod = "reduce_emi"
)

// PrepaymentEvent is an extra principal payment applied in a given month on
// both paths. Amounts beyond the outstanding balance are truncated.
type PrepaymentEvent struct {
	Month  int              `json:"month" yaml:"month"`
	Amount decimal.Decimal  `json:"amount_aed" yaml:"amount_aed"`
	Method PrepaymentMethod `json:"method,omitempty" yaml:"method,omitempty"`
}
