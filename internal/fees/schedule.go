// Package fees resolves the switching-fee waterfall: caller-supplied line
// items pass through untouched, absent items are estimated from a schedule
// of published UAE defaults when the caller permits it.
package fees

import (
	"github.com/shopspring/decimal"
)

// Schedule holds the default-formula constants. It is plain configuration
// passed into the resolver, so a deployment can override any constant (per
// emirate, per bank) without touching engine logic.
type Schedule struct {
	ProcessingRate   decimal.Decimal `mapstructure:"processing_rate" yaml:"processing_rate"`
	ProcessingCapAED decimal.Decimal `mapstructure:"processing_cap_aed" yaml:"processing_cap_aed"`
	ValuationAED     decimal.Decimal `mapstructure:"valuation_aed" yaml:"valuation_aed"`
	DLDRate          decimal.Decimal `mapstructure:"dld_rate" yaml:"dld_rate"`
	DLDFixedAED      decimal.Decimal `mapstructure:"dld_fixed_aed" yaml:"dld_fixed_aed"`
	TrusteeAED       decimal.Decimal `mapstructure:"trustee_aed" yaml:"trustee_aed"`
	RegistrationAED  decimal.Decimal `mapstructure:"registration_aed" yaml:"registration_aed"`
	ReleaseLetterAED decimal.Decimal `mapstructure:"release_letter_aed" yaml:"release_letter_aed"`
	LiabilityAED     decimal.Decimal `mapstructure:"liability_aed" yaml:"liability_aed"`

	// Fallback early-settlement policy when the current loan does not carry
	// its own terms.
	EarlySettlementRate   decimal.Decimal `mapstructure:"early_settlement_rate" yaml:"early_settlement_rate"`
	EarlySettlementCapAED decimal.Decimal `mapstructure:"early_settlement_cap_aed" yaml:"early_settlement_cap_aed"`
}

// DefaultSchedule returns the Dubai defaults: 1% processing capped at
// 10,000; 2,500 valuation; 0.25% + 290 DLD; 4,200 trustee; 2,000 mortgage
// registration; 1,000 release letter; 100 liability letter; 1% early
// settlement capped at 10,000.
func DefaultSchedule() Schedule {
	return Schedule{
		ProcessingRate:        decimal.NewFromFloat(0.01),
		ProcessingCapAED:      decimal.NewFromInt(10000),
		ValuationAED:          decimal.NewFromInt(2500),
		DLDRate:               decimal.NewFromFloat(0.0025),
		DLDFixedAED:           decimal.NewFromInt(290),
		TrusteeAED:            decimal.NewFromInt(4200),
		RegistrationAED:       decimal.NewFromInt(2000),
		ReleaseLetterAED:      decimal.NewFromInt(1000),
		LiabilityAED:          decimal.NewFromInt(100),
		EarlySettlementRate:   decimal.NewFromFloat(0.01),
		EarlySettlementCapAED: decimal.NewFromInt(10000),
	}
}
