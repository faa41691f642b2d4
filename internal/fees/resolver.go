package fees

import (
	"github.com/shopspring/decimal"

	"github.com/karimaz/switchcalc/internal/domain"
)

// Resolver fills in absent waterfall line items from a Schedule.
type Resolver struct {
	schedule Schedule
}

// NewResolver creates a resolver over the given default schedule.
func NewResolver(schedule Schedule) *Resolver {
	return &Resolver{schedule: schedule}
}

// NewDefaultResolver creates a resolver over DefaultSchedule.
func NewDefaultResolver() *Resolver {
	return NewResolver(DefaultSchedule())
}

// ResolveInput carries everything the resolver needs: the new loan's
// financed amount (basis for processing and DLD), the old loan's
// outstanding balance and settlement terms (basis for the penalty), the
// caller's explicit overrides, and the estimation flag.
type ResolveInput struct {
	NewPrincipal    decimal.Decimal
	OldOutstanding  decimal.Decimal
	EarlySettlement *domain.EarlySettlementTerms
	Overrides       []domain.FeeOverride
	AutoEstimate    bool
}

// Resolve builds the fee waterfall in canonical order. Supplied overrides
// pass through untouched and are tagged supplied; the early-settlement
// penalty counts as supplied whenever the current loan carries its own
// settlement terms, since those terms are contractual data, not an absent
// line item. Remaining absent items are estimated and tagged estimated when
// AutoEstimate is set, and omitted entirely otherwise, never zero-filled.
func (r *Resolver) Resolve(in ResolveInput) (domain.FeeWaterfall, error) {
	if in.NewPrincipal.IsNegative() {
		return domain.FeeWaterfall{}, domain.NewValidationError("new_loan.principal_aed", "must be non-negative")
	}
	if in.OldOutstanding.IsNegative() {
		return domain.FeeWaterfall{}, domain.NewValidationError("current_loan.principal_aed", "must be non-negative")
	}
	if err := checkOverrides(in.Overrides); err != nil {
		return domain.FeeWaterfall{}, err
	}

	supplied := make(map[domain.FeeKind]domain.FeeOverride, len(in.Overrides))
	for _, ov := range in.Overrides {
		supplied[ov.Kind] = ov
	}

	var waterfall domain.FeeWaterfall
	for _, kind := range domain.WaterfallOrder {
		if ov, ok := supplied[kind]; ok {
			timing := ov.Timing
			if timing == "" {
				timing = domain.FeeTimingUpfront
			}
			waterfall.Items = append(waterfall.Items, domain.FeeLineItem{
				Kind:      kind,
				AmountAED: ov.AmountAED,
				Timing:    timing,
				Source:    domain.FeeSourceSupplied,
			})
			continue
		}
		if kind == domain.FeeEarlySettlement && in.EarlySettlement != nil {
			waterfall.Items = append(waterfall.Items, domain.FeeLineItem{
				Kind:      kind,
				AmountAED: r.earlySettlement(in),
				Timing:    domain.FeeTimingUpfront,
				Source:    domain.FeeSourceSupplied,
			})
			continue
		}
		if !in.AutoEstimate {
			continue
		}
		waterfall.Items = append(waterfall.Items, domain.FeeLineItem{
			Kind:      kind,
			AmountAED: r.estimate(kind, in),
			Timing:    domain.FeeTimingUpfront,
			Source:    domain.FeeSourceEstimated,
		})
	}

	return waterfall, nil
}

// estimate applies the default formula for one line item.
func (r *Resolver) estimate(kind domain.FeeKind, in ResolveInput) decimal.Decimal {
	s := r.schedule
	switch kind {
	case domain.FeeProcessing:
		return decimal.Min(in.NewPrincipal.Mul(s.ProcessingRate), s.ProcessingCapAED)
	case domain.FeeValuation:
		return s.ValuationAED
	case domain.FeeDLD:
		return in.NewPrincipal.Mul(s.DLDRate).Add(s.DLDFixedAED)
	case domain.FeeTrustee:
		return s.TrusteeAED
	case domain.FeeMortgageRegistration:
		return s.RegistrationAED
	case domain.FeeReleaseLetter:
		return s.ReleaseLetterAED
	case domain.FeeLiabilityLetter:
		return s.LiabilityAED
	case domain.FeeEarlySettlement:
		return r.earlySettlement(in)
	}
	return decimal.Zero
}

// earlySettlement computes the old bank's penalty against the outstanding
// balance, using the loan's own settlement terms when present and the
// schedule fallback otherwise.
func (r *Resolver) earlySettlement(in ResolveInput) decimal.Decimal {
	rate := r.schedule.EarlySettlementRate
	capAED := r.schedule.EarlySettlementCapAED
	if es := in.EarlySettlement; es != nil {
		rate = es.PercentOfOutstanding
		capAED = es.CapAED
	}
	penalty := in.OldOutstanding.Mul(rate)
	if capAED.IsPositive() {
		penalty = decimal.Min(penalty, capAED)
	}
	return penalty
}

func checkOverrides(overrides []domain.FeeOverride) error {
	seen := make(map[domain.FeeKind]bool, len(overrides))
	for i, ov := range overrides {
		if !domain.KnownFeeKind(ov.Kind) {
			return domain.NewValidationError("fee_overrides", "override %d: unknown fee type %q", i, ov.Kind)
		}
		if seen[ov.Kind] {
			return domain.NewValidationError("fee_overrides", "duplicate override for %q", ov.Kind)
		}
		seen[ov.Kind] = true
		if ov.AmountAED.IsNegative() {
			return domain.NewValidationError("fee_overrides", "override %d (%s): amount must be non-negative", i, ov.Kind)
		}
	}
	return nil
}
