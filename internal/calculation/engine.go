// Package calculation builds month-by-month mortgage schedules: the fixed
// annuity installment, its interest/principal split, recurring charges, and
// the cash-out total over a comparison horizon.
package calculation

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/karimaz/switchcalc/internal/domain"
)

// Engine runs amortization schedules. It holds no per-request state; every
// call constructs, computes, and discards its own data.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a schedule engine. A nil logger is replaced with a nop.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// ScheduleInput describes one path of one scenario.
type ScheduleInput struct {
	Terms *domain.LoanTerms

	// Delta is the scenario's signed annual-rate shift. Zero for the stay
	// path: the current loan's pricing is already locked in.
	Delta decimal.Decimal

	HorizonMonths int
	Policy        domain.RecomputePolicy
	Prepayments   []domain.PrepaymentEvent

	// Waterfall is the resolved switching-fee set; nil on the stay path.
	// Upfront items land in month 1 before any installment, monthly and
	// annual items join the recurring charges.
	Waterfall *domain.FeeWaterfall
}

// BuildSchedule produces the full schedule for one path over the horizon.
// The schedule always has exactly HorizonMonths entries; months after the
// loan is retired (or past its tenure) carry zero cash-out, so cumulative
// totals stay monotonically non-decreasing.
func (e *Engine) BuildSchedule(in ScheduleInput) (domain.PathSchedule, error) {
	var sched domain.PathSchedule

	monthlyFees := decimal.Zero
	annualFees := decimal.Zero
	if in.Waterfall != nil {
		sched.UpfrontFees = in.Waterfall.TotalUpfront()
		monthlyFees = in.Waterfall.TotalMonthly()
		annualFees = in.Waterfall.TotalAnnual()
	}

	prepay := make(map[int]domain.PrepaymentEvent, len(in.Prepayments))
	for _, pp := range in.Prepayments {
		prepay[pp.Month] = pp
	}

	total := sched.UpfrontFees
	balance := in.Terms.Principal
	emi := decimal.Zero
	mrate := decimal.Zero

	sched.Installments = make([]domain.InstallmentDetail, 0, in.HorizonMonths)
	for m := 1; m <= in.HorizonMonths; m++ {
		det := domain.InstallmentDetail{Month: m}

		if m > in.Terms.TenureMonths || !balance.IsPositive() {
			// Loan retired: remaining months cost nothing on this path.
			det.RemainingPrincipal = balance
			sched.Installments = append(sched.Installments, det)
			continue
		}

		if e.shouldRecompute(in, m) {
			mrate = MonthlyRate(in.Terms.EffectiveRate(m, in.Delta))
			var err error
			emi, err = MonthlyPayment(balance, mrate, in.Terms.TenureMonths-(m-1))
			if err != nil {
				return domain.PathSchedule{}, err
			}
			e.logger.Debug("installment recomputed",
				zap.Int("month", m),
				zap.String("monthly_rate", mrate.String()),
				zap.String("emi", emi.StringFixed(2)))
		}

		interest := balance.Mul(mrate)
		principalPaid := emi.Sub(interest)
		paid := emi
		if principalPaid.IsNegative() {
			principalPaid = decimal.Zero
		}
		if principalPaid.GreaterThan(balance) {
			// Final installment: retire the balance exactly instead of
			// letting rounding drift push it negative.
			principalPaid = balance
			paid = interest.Add(balance)
		}
		balance = balance.Sub(principalPaid)

		// Insurance is priced on the balance after the installment but
		// before any prepayment in the same month lands.
		insurance := in.Terms.MonthlyInsurance(balance)

		if pp, ok := prepay[m]; ok && balance.IsPositive() {
			amount := decimal.Min(pp.Amount, balance)
			balance = balance.Sub(amount)
			paid = paid.Add(amount)
			principalPaid = principalPaid.Add(amount)
			if pp.Method == domain.PrepayReduceEMI && balance.IsPositive() && in.Terms.TenureMonths >= m {
				var err error
				emi, err = MonthlyPayment(balance, mrate, in.Terms.TenureMonths-(m-1))
				if err != nil {
					return domain.PathSchedule{}, err
				}
			}
		}

		recurring := in.Terms.AdminFeeMonthly.Add(monthlyFees)
		if m%12 == 1 {
			recurring = recurring.Add(annualFees)
		}

		det.EMI = paid
		det.Interest = interest
		det.PrincipalPaid = principalPaid
		det.RecurringFees = recurring
		det.Insurance = insurance
		det.RemainingPrincipal = balance

		total = total.Add(paid).Add(recurring).Add(det.Insurance)
		sched.Installments = append(sched.Installments, det)
	}

	sched.TotalCashOut = total
	return sched, nil
}

// shouldRecompute decides whether the installment is re-derived at month m.
// Month 1 and the fixed-to-reversion boundary always recompute; beyond that
// the recompute policy and the loan's reset frequency govern.
func (e *Engine) shouldRecompute(in ScheduleInput, m int) bool {
	if m == 1 {
		return true
	}
	if in.Policy == domain.RecomputeMonthly {
		return true
	}
	if in.Terms.FixedMonths > 0 && m == in.Terms.FixedMonths+1 {
		return true
	}
	if in.Terms.ResetFreqMonths > 0 && (m-1)%in.Terms.ResetFreqMonths == 0 {
		return true
	}
	return false
}

// CashOut is the total paid out of pocket in one month of a schedule.
func CashOut(det domain.InstallmentDetail) decimal.Decimal {
	return det.EMI.Add(det.RecurringFees).Add(det.Insurance)
}
