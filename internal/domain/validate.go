package domain

// Validate checks the whole request before any computation proceeds.
// Defaults should be applied first; an empty scenario list or zero horizon
// is rejected here rather than silently patched.
func (r *ComparisonRequest) Validate() error {
	if err := validateLoan("current_loan", &r.CurrentLoan); err != nil {
		return err
	}
	if err := validateLoan("new_loan", &r.NewLoan); err != nil {
		return err
	}

	if r.HorizonMonths <= 0 {
		return NewValidationError("horizon_months", "must be positive, got %d", r.HorizonMonths)
	}

	if len(r.Scenarios) == 0 {
		return NewValidationError("scenarios", "at least one scenario is required")
	}
	seen := make(map[string]bool, len(r.Scenarios))
	for i, sc := range r.Scenarios {
		if !knownScenarioName(sc.Name) {
			return NewValidationError("scenarios", "unknown scenario name %q at index %d", sc.Name, i)
		}
		if seen[sc.Name] {
			return NewValidationError("scenarios", "duplicate scenario %q", sc.Name)
		}
		seen[sc.Name] = true
	}

	if err := validateOverrides(r.Assumptions.FeeOverrides); err != nil {
		return err
	}

	switch r.Assumptions.RecomputePolicy {
	case RecomputeOnResetOnly, RecomputeMonthly:
	default:
		return NewValidationError("assumptions.recompute_policy", "unknown policy %q", r.Assumptions.RecomputePolicy)
	}

	for i, pp := range r.Prepayments {
		if pp.Month < 1 {
			return NewValidationError("prepayment_plan", "event %d: month must be >= 1, got %d", i, pp.Month)
		}
		if pp.Amount.IsNegative() {
			return NewValidationError("prepayment_plan", "event %d: amount must be non-negative", i)
		}
		switch pp.Method {
		case "", PrepayReduceTerm, PrepayReduceEMI:
		default:
			return NewValidationError("prepayment_plan", "event %d: unknown method %q", i, pp.Method)
		}
	}

	return nil
}

func knownScenarioName(name string) bool {
	switch name {
	case ScenarioBase, ScenarioOptimistic, ScenarioConservative:
		return true
	}
	return false
}

func validateLoan(field string, lt *LoanTerms) error {
	if lt.Principal.IsNegative() {
		return NewValidationError(field+".principal_aed", "must be non-negative")
	}
	if lt.TenureMonths < 1 {
		return NewValidationError(field+".tenure_months", "must be >= 1, got %d", lt.TenureMonths)
	}
	if lt.AnnualRate.IsNegative() {
		return NewValidationError(field+".annual_rate", "must be non-negative")
	}
	if lt.ReversionRate.IsNegative() {
		return NewValidationError(field+".reversion_rate", "must be non-negative")
	}
	if lt.FixedMonths < 0 {
		return NewValidationError(field+".fixed_months", "must be non-negative, got %d", lt.FixedMonths)
	}
	if lt.ResetFreqMonths < 0 {
		return NewValidationError(field+".reset_freq_months", "must be non-negative, got %d", lt.ResetFreqMonths)
	}
	if lt.AdminFeeMonthly.IsNegative() {
		return NewValidationError(field+".admin_fee_monthly", "must be non-negative")
	}
	switch lt.InsuranceMethod {
	case "", InsuranceNone, InsuranceFixedMonthly, InsurancePercentOfOutstanding:
	default:
		return NewValidationError(field+".insurance_method", "unknown method %q", lt.InsuranceMethod)
	}
	if lt.InsuranceValue.IsNegative() {
		return NewValidationError(field+".insurance_value", "must be non-negative")
	}
	if es := lt.EarlySettlement; es != nil {
		if es.PercentOfOutstanding.IsNegative() {
			return NewValidationError(field+".early_settlement.percent_of_outstanding", "must be non-negative")
		}
		if es.CapAED.IsNegative() {
			return NewValidationError(field+".early_settlement.cap_aed", "must be non-negative")
		}
	}
	return nil
}

func validateOverrides(overrides []FeeOverride) error {
	seen := make(map[FeeKind]bool, len(overrides))
	for i, ov := range overrides {
		if !KnownFeeKind(ov.Kind) {
			return NewValidationError("assumptions.fee_overrides", "override %d: unknown fee type %q", i, ov.Kind)
		}
		if seen[ov.Kind] {
			return NewValidationError("assumptions.fee_overrides", "duplicate override for %q", ov.Kind)
		}
		seen[ov.Kind] = true
		if ov.AmountAED.IsNegative() {
			return NewValidationError("assumptions.fee_overrides", "override %d (%s): amount must be non-negative", i, ov.Kind)
		}
		switch ov.Timing {
		case "", FeeTimingUpfront, FeeTimingMonthly, FeeTimingAnnual:
		default:
			return NewValidationError("assumptions.fee_overrides", "override %d (%s): unknown timing %q", i, ov.Kind, ov.Timing)
		}
	}
	return nil
}
