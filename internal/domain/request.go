package domain

import (
	"github.com/shopspring/decimal"
)

// Scenario names one sensitivity variant. RateDelta is a signed annual
// fraction applied to the new offer's rates; the current loan's pricing is
// already locked in and never shifted.
type Scenario struct {
	Name      string          `json:"name" yaml:"name"`
	RateDelta decimal.Decimal `json:"rate_delta" yaml:"rate_delta"`
}

// Scenario names used by the default set.
const (
	ScenarioBase         = "base"
	ScenarioOptimistic   = "optimistic"
	ScenarioConservative = "conservative"
)

// DefaultScenarios returns the Base/Optimistic/Conservative triple used when
// a request does not name its own scenarios.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: ScenarioBase, RateDelta: decimal.Zero},
		{Name: ScenarioOptimistic, RateDelta: decimal.NewFromFloat(-0.0025)},
		{Name: ScenarioConservative, RateDelta: decimal.NewFromFloat(0.005)},
	}
}

// RecomputePolicy controls when the installment is re-derived during a
// schedule run.
type RecomputePolicy string

const (
	RecomputeOnResetOnly RecomputePolicy = "on_reset_only"
	RecomputeMonthly     RecomputePolicy = "monthly"
)

// Assumptions hold the knobs that control estimation behavior.
type Assumptions struct {
	// AutoEstimateBuyoutFees enables the fee-default resolver for absent
	// line items. Nil means true.
	AutoEstimateBuyoutFees *bool `json:"auto_estimate_buyout_fees,omitempty" yaml:"auto_estimate_buyout_fees,omitempty"`

	// FeeOverrides are explicitly supplied waterfall amounts; the resolver
	// never replaces a supplied value.
	FeeOverrides []FeeOverride `json:"fee_overrides,omitempty" yaml:"fee_overrides,omitempty"`

	RecomputePolicy RecomputePolicy `json:"recompute_policy,omitempty" yaml:"recompute_policy,omitempty"`
}

// AutoEstimate resolves the nil-means-true flag.
func (a Assumptions) AutoEstimate() bool {
	return a.AutoEstimateBuyoutFees == nil || *a.AutoEstimateBuyoutFees
}

// DefaultHorizonMonths is used when a request omits the horizon.
const DefaultHorizonMonths = 36

// ComparisonRequest is the engine's full input: both trajectories, the
// horizon, the scenario set, and the estimation assumptions. Constructed
// fresh per request and discarded with the result.
type ComparisonRequest struct {
	CurrentLoan   LoanTerms         `json:"current_loan" yaml:"current_loan"`
	NewLoan       LoanTerms         `json:"new_loan" yaml:"new_loan"`
	HorizonMonths int               `json:"horizon_months,omitempty" yaml:"horizon_months,omitempty"`
	Scenarios     []Scenario        `json:"scenarios,omitempty" yaml:"scenarios,omitempty"`
	Assumptions   Assumptions       `json:"assumptions,omitempty" yaml:"assumptions,omitempty"`
	Prepayments   []PrepaymentEvent `json:"prepayment_plan,omitempty" yaml:"prepayment_plan,omitempty"`
}

// ApplyDefaults fills the documented wire-contract defaults: horizon 36,
// the Base/Optimistic/Conservative scenario triple, and on-reset-only
// installment recomputation.
func (r *ComparisonRequest) ApplyDefaults() {
	if r.HorizonMonths == 0 {
		r.HorizonMonths = DefaultHorizonMonths
	}
	if len(r.Scenarios) == 0 {
		r.Scenarios = DefaultScenarios()
	}
	if r.Assumptions.RecomputePolicy == "" {
		r.Assumptions.RecomputePolicy = RecomputeOnResetOnly
	}
}
