package domain

import (
	"github.com/shopspring/decimal"
)

// InstallmentDetail is the per-month amortization record for one path.
type InstallmentDetail struct {
	Month              int             `json:"month" yaml:"month"`
	EMI                decimal.Decimal `json:"emi" yaml:"emi"`
	Interest           decimal.Decimal `json:"interest" yaml:"interest"`
	PrincipalPaid      decimal.Decimal `json:"principal_paid" yaml:"principal_paid"`
	RecurringFees      decimal.Decimal `json:"fees" yaml:"fees"`
	Insurance          decimal.Decimal `json:"insurance" yaml:"insurance"`
	RemainingPrincipal decimal.Decimal `json:"principal_remaining" yaml:"principal_remaining"`
}

// PathSchedule is the full schedule for one trajectory within one scenario.
type PathSchedule struct {
	Installments []InstallmentDetail `json:"installments" yaml:"installments"`
	UpfrontFees  decimal.Decimal     `json:"upfront_fees_aed" yaml:"upfront_fees_aed"`
	TotalCashOut decimal.Decimal     `json:"total_cash_out_aed" yaml:"total_cash_out_aed"`
}

// MonthlyEntry pairs the two paths' cash-out for one month, with running
// cumulative totals. The break-even month is re-derivable from the two
// cumulative columns alone.
type MonthlyEntry struct {
	Month            int             `json:"month" yaml:"month"`
	StayCashOut      decimal.Decimal `json:"stay_cash_out" yaml:"stay_cash_out"`
	SwitchCashOut    decimal.Decimal `json:"switch_cash_out" yaml:"switch_cash_out"`
	CumulativeStay   decimal.Decimal `json:"cumulative_stay" yaml:"cumulative_stay"`
	CumulativeSwitch decimal.Decimal `json:"cumulative_switch" yaml:"cumulative_switch"`
}

// ScenarioResult is the comparison outcome for one named scenario.
// BreakEvenMonth is nil when switching never becomes cheaper within the
// horizon; it is never a sentinel number.
type ScenarioResult struct {
	Name           string          `json:"name" yaml:"name"`
	RateDelta      decimal.Decimal `json:"rate_delta" yaml:"rate_delta"`
	Entries        []MonthlyEntry  `json:"monthly" yaml:"monthly"`
	BreakEvenMonth *int            `json:"break_even_month" yaml:"break_even_month"`
	Stay           PathSchedule    `json:"stay" yaml:"stay"`
	Switch         PathSchedule    `json:"switch" yaml:"switch"`
}

// StayTotal is the cumulative stay-path cash at the horizon's last month.
func (sr *ScenarioResult) StayTotal() decimal.Decimal {
	return sr.Stay.TotalCashOut
}

// SwitchTotal is the cumulative switch-path cash at the horizon's last month.
func (sr *ScenarioResult) SwitchTotal() decimal.Decimal {
	return sr.Switch.TotalCashOut
}

// Recommendation values for the summary.
const (
	RecommendStay   = "stay"
	RecommendSwitch = "switch"
)

// ComparisonSummary carries the headline numbers, taken from the base
// scenario (the first in request order when no scenario is named "base").
type ComparisonSummary struct {
	BaseScenario          string          `json:"base_scenario" yaml:"base_scenario"`
	StayTotalCashOutAED   decimal.Decimal `json:"stay_total_cash_out_aed" yaml:"stay_total_cash_out_aed"`
	SwitchTotalCashOutAED decimal.Decimal `json:"switch_total_cash_out_aed" yaml:"switch_total_cash_out_aed"`
	BreakEvenMonth        *int            `json:"break_even_month" yaml:"break_even_month"`
	Recommendation        string          `json:"recommendation" yaml:"recommendation"`
}

// ComparisonResult is the engine's full response.
type ComparisonResult struct {
	Summary       ComparisonSummary `json:"summary" yaml:"summary"`
	Scenarios     []ScenarioResult  `json:"scenarios" yaml:"scenarios"`
	Waterfall     FeeWaterfall      `json:"fees_waterfall" yaml:"fees_waterfall"`
	HorizonMonths int               `json:"horizon_months" yaml:"horizon_months"`
}

// ScenarioByName returns the result for a named scenario, if present.
func (cr *ComparisonResult) ScenarioByName(name string) (*ScenarioResult, bool) {
	for i := range cr.Scenarios {
		if cr.Scenarios[i].Name == name {
			return &cr.Scenarios[i], true
		}
	}
	return nil, false
}
