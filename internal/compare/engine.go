// Package compare orchestrates a stay-vs-switch comparison: it resolves the
// switching-fee waterfall, runs the amortization schedules for every
// scenario, and aggregates the per-month cash flows and break-even months
// into a single result.
package compare

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/karimaz/switchcalc/internal/breakeven"
	"github.com/karimaz/switchcalc/internal/calculation"
	"github.com/karimaz/switchcalc/internal/domain"
	"github.com/karimaz/switchcalc/internal/fees"
)

// Engine is the comparison entry point. Pure and request-scoped: no field
// is mutated by Compare, so one Engine may serve concurrent requests.
type Engine struct {
	calc     *calculation.Engine
	resolver *fees.Resolver
	logger   *zap.Logger
}

// NewEngine creates a comparison engine over a fee-default schedule.
// A nil logger is replaced with a nop.
func NewEngine(schedule fees.Schedule, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		calc:     calculation.NewEngine(logger),
		resolver: fees.NewResolver(schedule),
		logger:   logger,
	}
}

// NewDefaultEngine creates an engine over the published UAE fee defaults.
func NewDefaultEngine(logger *zap.Logger) *Engine {
	return NewEngine(fees.DefaultSchedule(), logger)
}

// Compare runs the full comparison. Defaults are applied and the request is
// validated in full before any computation; a request that fails validation
// is never partially computed.
func (ce *Engine) Compare(ctx context.Context, req *domain.ComparisonRequest) (*domain.ComparisonResult, error) {
	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	waterfall, err := ce.resolver.Resolve(fees.ResolveInput{
		NewPrincipal:    req.NewLoan.Principal,
		OldOutstanding:  req.CurrentLoan.Principal,
		EarlySettlement: req.CurrentLoan.EarlySettlement,
		Overrides:       req.Assumptions.FeeOverrides,
		AutoEstimate:    req.Assumptions.AutoEstimate(),
	})
	if err != nil {
		return nil, err
	}

	// The stay path never sees a scenario delta, so it is computed once and
	// shared across scenarios.
	staySched, err := ce.calc.BuildSchedule(calculation.ScheduleInput{
		Terms:         &req.CurrentLoan,
		Delta:         decimal.Zero,
		HorizonMonths: req.HorizonMonths,
		Policy:        req.Assumptions.RecomputePolicy,
		Prepayments:   req.Prepayments,
	})
	if err != nil {
		return nil, err
	}

	result := &domain.ComparisonResult{
		Waterfall:     waterfall,
		HorizonMonths: req.HorizonMonths,
		Scenarios:     make([]domain.ScenarioResult, 0, len(req.Scenarios)),
	}

	for _, sc := range req.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switchSched, err := ce.calc.BuildSchedule(calculation.ScheduleInput{
			Terms:         &req.NewLoan,
			Delta:         sc.RateDelta,
			HorizonMonths: req.HorizonMonths,
			Policy:        req.Assumptions.RecomputePolicy,
			Prepayments:   req.Prepayments,
			Waterfall:     &waterfall,
		})
		if err != nil {
			return nil, err
		}

		entries, cumStay, cumSwitch := buildEntries(staySched, switchSched)
		be, err := breakeven.Scan(cumStay, cumSwitch)
		if err != nil {
			return nil, err
		}

		result.Scenarios = append(result.Scenarios, domain.ScenarioResult{
			Name:           sc.Name,
			RateDelta:      sc.RateDelta,
			Entries:        entries,
			BreakEvenMonth: be.MonthOrNil(),
			Stay:           staySched,
			Switch:         switchSched,
		})

		ce.logger.Debug("scenario computed",
			zap.String("scenario", sc.Name),
			zap.Bool("break_even_found", be.Found),
			zap.String("stay_total", staySched.TotalCashOut.StringFixed(2)),
			zap.String("switch_total", switchSched.TotalCashOut.StringFixed(2)))
	}

	result.Summary = summarize(result)
	return result, nil
}

// buildEntries zips the two schedules into per-month comparison rows. The
// switch path's month 1 carries the full upfront waterfall before any
// installment comparison.
func buildEntries(stay, sw domain.PathSchedule) ([]domain.MonthlyEntry, []decimal.Decimal, []decimal.Decimal) {
	n := len(stay.Installments)
	entries := make([]domain.MonthlyEntry, 0, n)
	cumStay := make([]decimal.Decimal, 0, n)
	cumSwitch := make([]decimal.Decimal, 0, n)

	runStay := decimal.Zero
	runSwitch := decimal.Zero
	for i := 0; i < n; i++ {
		stayCash := calculation.CashOut(stay.Installments[i])
		switchCash := calculation.CashOut(sw.Installments[i])
		if i == 0 {
			switchCash = switchCash.Add(sw.UpfrontFees)
		}
		runStay = runStay.Add(stayCash)
		runSwitch = runSwitch.Add(switchCash)

		entries = append(entries, domain.MonthlyEntry{
			Month:            i + 1,
			StayCashOut:      stayCash,
			SwitchCashOut:    switchCash,
			CumulativeStay:   runStay,
			CumulativeSwitch: runSwitch,
		})
		cumStay = append(cumStay, runStay)
		cumSwitch = append(cumSwitch, runSwitch)
	}
	return entries, cumStay, cumSwitch
}

// summarize lifts the headline numbers from the base scenario (or the first
// scenario when none is named "base").
func summarize(result *domain.ComparisonResult) domain.ComparisonSummary {
	base := &result.Scenarios[0]
	if sr, ok := result.ScenarioByName(domain.ScenarioBase); ok {
		base = sr
	}

	recommendation := domain.RecommendStay
	if base.SwitchTotal().LessThan(base.StayTotal()) {
		recommendation = domain.RecommendSwitch
	}

	return domain.ComparisonSummary{
		BaseScenario:          base.Name,
		StayTotalCashOutAED:   base.StayTotal(),
		SwitchTotalCashOutAED: base.SwitchTotal(),
		BreakEvenMonth:        base.BreakEvenMonth,
		Recommendation:        recommendation,
	}
}
