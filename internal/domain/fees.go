package domain

import (
	"github.com/shopspring/decimal"
)

// FeeKind names one line item of the switching-fee waterfall.
type FeeKind string

const (
	FeeProcessing           FeeKind = "processing_fee"
	FeeValuation            FeeKind = "valuation_fee"
	FeeDLD                  FeeKind = "dld_fee"
	FeeTrustee              FeeKind = "trustee_fee"
	FeeMortgageRegistration FeeKind = "mortgage_registration_fee"
	FeeReleaseLetter        FeeKind = "release_letter_fee"
	FeeLiabilityLetter      FeeKind = "liability_letter_fee"
	FeeEarlySettlement      FeeKind = "early_settlement_penalty"
)

// WaterfallOrder is the canonical presentation order of fee line items.
// Resolution emits at most one item per kind, in this order.
var WaterfallOrder = []FeeKind{
	FeeProcessing,
	FeeValuation,
	FeeDLD,
	FeeTrustee,
	FeeMortgageRegistration,
	FeeReleaseLetter,
	FeeLiabilityLetter,
	FeeEarlySettlement,
}

// KnownFeeKind reports whether kind is one of the waterfall line items.
func KnownFeeKind(kind FeeKind) bool {
	for _, k := range WaterfallOrder {
		if k == kind {
			return true
		}
	}
	return false
}

// FeeSource records how a line item's amount was obtained.
type FeeSource string

const (
	FeeSourceSupplied  FeeSource = "supplied"
	FeeSourceEstimated FeeSource = "estimated"
)

// FeeTiming places a fee in the cash-flow timeline.
type FeeTiming string

const (
	FeeTimingUpfront FeeTiming = "upfront"
	FeeTimingMonthly FeeTiming = "monthly"
	FeeTimingAnnual  FeeTiming = "annual"
)

// FeeOverride is a caller-supplied fee amount that suppresses estimation for
// its kind. Timing defaults to upfront.
type FeeOverride struct {
	Kind      FeeKind         `json:"type" yaml:"type"`
	AmountAED decimal.Decimal `json:"amount_aed" yaml:"amount_aed"`
	Timing    FeeTiming       `json:"timing,omitempty" yaml:"timing,omitempty"`
}

// FeeLineItem is one resolved entry of the waterfall, tagged with its
// provenance so downstream consumers never have to guess whether an amount
// was invented.
type FeeLineItem struct {
	Kind      FeeKind         `json:"type" yaml:"type"`
	AmountAED decimal.Decimal `json:"amount_aed" yaml:"amount_aed"`
	Timing    FeeTiming       `json:"timing" yaml:"timing"`
	Source    FeeSource       `json:"source" yaml:"source"`
}

// FeeWaterfall is the resolved, ordered set of one-time and recurring fees
// incurred when switching lenders.
type FeeWaterfall struct {
	Items []FeeLineItem `json:"items" yaml:"items"`
}

// Lookup returns the line item for kind, if present.
func (w FeeWaterfall) Lookup(kind FeeKind) (FeeLineItem, bool) {
	for _, item := range w.Items {
		if item.Kind == kind {
			return item, true
		}
	}
	return FeeLineItem{}, false
}

// TotalUpfront sums all items charged once at switch time.
func (w FeeWaterfall) TotalUpfront() decimal.Decimal {
	return w.totalByTiming(FeeTimingUpfront)
}

// TotalMonthly sums all items charged every month.
func (w FeeWaterfall) TotalMonthly() decimal.Decimal {
	return w.totalByTiming(FeeTimingMonthly)
}

// TotalAnnual sums all items charged once per loan year.
func (w FeeWaterfall) TotalAnnual() decimal.Decimal {
	return w.totalByTiming(FeeTimingAnnual)
}

func (w FeeWaterfall) totalByTiming(timing FeeTiming) decimal.Decimal {
	total := decimal.Zero
	for _, item := range w.Items {
		if item.Timing == timing {
			total = total.Add(item.AmountAED)
		}
	}
	return total
}
