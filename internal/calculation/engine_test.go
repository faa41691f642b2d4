package calculation

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/karimaz/switchcalc/internal/domain"
)

var roundingTolerance = decimal.NewFromFloat(0.01)

func buildOrFail(t *testing.T, in ScheduleInput) domain.PathSchedule {
	t.Helper()
	sched, err := NewEngine(nil).BuildSchedule(in)
	if err != nil {
		t.Fatalf("BuildSchedule returned error: %v", err)
	}
	return sched
}

func TestBuildScheduleFullyAmortizes(t *testing.T) {
	cases := []struct {
		name   string
		terms  domain.LoanTerms
		tenure int
	}{
		{
			"interest bearing",
			domain.LoanTerms{
				Principal:    decimal.NewFromInt(500000),
				AnnualRate:   decimal.NewFromFloat(0.04),
				TenureMonths: 24,
			},
			24,
		},
		{
			"zero rate",
			domain.LoanTerms{
				Principal:    decimal.NewFromInt(360000),
				TenureMonths: 36,
			},
			36,
		},
		{
			"with rate resets",
			domain.LoanTerms{
				Principal:       decimal.NewFromInt(250000),
				AnnualRate:      decimal.NewFromFloat(0.055),
				TenureMonths:    18,
				ResetFreqMonths: 3,
			},
			18,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sched := buildOrFail(t, ScheduleInput{
				Terms:         &tc.terms,
				HorizonMonths: tc.tenure,
				Policy:        domain.RecomputeOnResetOnly,
			})

			repaid := decimal.Zero
			for _, det := range sched.Installments {
				repaid = repaid.Add(det.PrincipalPaid)
			}
			if repaid.Sub(tc.terms.Principal).Abs().GreaterThan(roundingTolerance) {
				t.Errorf("cumulative principal repaid %s differs from principal %s by more than 0.01",
					repaid, tc.terms.Principal)
			}

			final := sched.Installments[len(sched.Installments)-1].RemainingPrincipal
			if final.Abs().GreaterThan(roundingTolerance) {
				t.Errorf("residual balance %s after full tenure", final)
			}
			if final.IsNegative() {
				t.Errorf("balance went negative: %s", final)
			}
		})
	}
}

func TestBuildScheduleRetiredLoanCostsNothing(t *testing.T) {
	terms := domain.LoanTerms{
		Principal:    decimal.NewFromInt(120000),
		TenureMonths: 12,
	}
	sched := buildOrFail(t, ScheduleInput{
		Terms:         &terms,
		HorizonMonths: 24,
		Policy:        domain.RecomputeOnResetOnly,
	})

	if len(sched.Installments) != 24 {
		t.Fatalf("expected 24 entries, got %d", len(sched.Installments))
	}
	for _, det := range sched.Installments[12:] {
		if !CashOut(det).IsZero() {
			t.Errorf("month %d: expected zero cash-out after payoff, got %s", det.Month, CashOut(det))
		}
	}
}

func TestBuildScheduleInsurancePercentOfOutstanding(t *testing.T) {
	terms := domain.LoanTerms{
		Principal:       decimal.NewFromInt(600000),
		AnnualRate:      decimal.NewFromFloat(0.04),
		TenureMonths:    240,
		InsuranceMethod: domain.InsurancePercentOfOutstanding,
		InsuranceValue:  decimal.NewFromFloat(0.006),
	}
	sched := buildOrFail(t, ScheduleInput{
		Terms:         &terms,
		HorizonMonths: 2,
		Policy:        domain.RecomputeOnResetOnly,
	})

	first := sched.Installments[0]
	want := first.RemainingPrincipal.Mul(decimal.NewFromFloat(0.006)).Div(decimal.NewFromInt(12))
	if !first.Insurance.Equal(want) {
		t.Errorf("expected insurance %s, got %s", want, first.Insurance)
	}
	if !sched.Installments[1].Insurance.LessThan(first.Insurance) {
		t.Errorf("insurance should shrink with the balance")
	}
}

func TestBuildScheduleFixedMonthlyInsuranceAndAdminFee(t *testing.T) {
	terms := domain.LoanTerms{
		Principal:       decimal.NewFromInt(600000),
		AnnualRate:      decimal.NewFromFloat(0.04),
		TenureMonths:    240,
		AdminFeeMonthly: decimal.NewFromInt(50),
		InsuranceMethod: domain.InsuranceFixedMonthly,
		InsuranceValue:  decimal.NewFromInt(300),
	}
	sched := buildOrFail(t, ScheduleInput{
		Terms:         &terms,
		HorizonMonths: 3,
		Policy:        domain.RecomputeOnResetOnly,
	})

	for _, det := range sched.Installments {
		if !det.Insurance.Equal(decimal.NewFromInt(300)) {
			t.Errorf("month %d: expected insurance 300, got %s", det.Month, det.Insurance)
		}
		if !det.RecurringFees.Equal(decimal.NewFromInt(50)) {
			t.Errorf("month %d: expected recurring fees 50, got %s", det.Month, det.RecurringFees)
		}
	}
}

func TestBuildSchedulePrepaymentReduceEMI(t *testing.T) {
	terms := domain.LoanTerms{
		Principal:    decimal.NewFromInt(500000),
		AnnualRate:   decimal.NewFromFloat(0.04),
		TenureMonths: 120,
	}
	plain := buildOrFail(t, ScheduleInput{
		Terms:         &terms,
		HorizonMonths: 12,
		Policy:        domain.RecomputeOnResetOnly,
	})
	prepaid := buildOrFail(t, ScheduleInput{
		Terms:         &terms,
		HorizonMonths: 12,
		Policy:        domain.RecomputeOnResetOnly,
		Prepayments: []domain.PrepaymentEvent{
			{Month: 6, Amount: decimal.NewFromInt(100000), Method: domain.PrepayReduceEMI},
		},
	})

	if !prepaid.Installments[5].PrincipalPaid.GreaterThan(plain.Installments[5].PrincipalPaid) {
		t.Error("prepayment month should repay more principal")
	}
	if !prepaid.Installments[6].EMI.LessThan(plain.Installments[6].EMI) {
		t.Errorf("expected reduced installment after reduce_emi prepayment: %s vs %s",
			prepaid.Installments[6].EMI, plain.Installments[6].EMI)
	}

	// The recomputed installment amortizes the post-prepayment balance over
	// tenure minus months elapsed (120 - 5).
	want, err := MonthlyPayment(prepaid.Installments[5].RemainingPrincipal,
		MonthlyRate(terms.AnnualRate), terms.TenureMonths-5)
	if err != nil {
		t.Fatalf("MonthlyPayment returned error: %v", err)
	}
	if !prepaid.Installments[6].EMI.Equal(want) {
		t.Errorf("expected recomputed installment %s, got %s", want, prepaid.Installments[6].EMI)
	}
	if !prepaid.Installments[11].RemainingPrincipal.LessThan(plain.Installments[11].RemainingPrincipal) {
		t.Error("prepaid balance should stay below the plain schedule")
	}
}

func TestBuildScheduleInsurancePricedBeforePrepayment(t *testing.T) {
	terms := domain.LoanTerms{
		Principal:       decimal.NewFromInt(600000),
		AnnualRate:      decimal.NewFromFloat(0.04),
		TenureMonths:    240,
		InsuranceMethod: domain.InsurancePercentOfOutstanding,
		InsuranceValue:  decimal.NewFromFloat(0.006),
	}
	amount := decimal.NewFromInt(50000)
	sched := buildOrFail(t, ScheduleInput{
		Terms:         &terms,
		HorizonMonths: 3,
		Policy:        domain.RecomputeOnResetOnly,
		Prepayments: []domain.PrepaymentEvent{
			{Month: 2, Amount: amount, Method: domain.PrepayReduceTerm},
		},
	})

	// Insurance in the prepayment month is priced on the balance after the
	// installment but before the prepayment reduces it.
	second := sched.Installments[1]
	prePrepay := second.RemainingPrincipal.Add(amount)
	want := prePrepay.Mul(decimal.NewFromFloat(0.006)).Div(decimal.NewFromInt(12))
	if !second.Insurance.Equal(want) {
		t.Errorf("month 2: expected insurance %s on pre-prepayment balance, got %s",
			want, second.Insurance)
	}

	// The following month prices on the reduced balance.
	third := sched.Installments[2]
	if !third.Insurance.Equal(terms.MonthlyInsurance(third.RemainingPrincipal)) {
		t.Errorf("month 3: expected insurance on post-prepayment balance, got %s", third.Insurance)
	}
}

func TestBuildScheduleFixedPeriodReversion(t *testing.T) {
	// 1.99% for 12 months, reverting to 5.5%: the installment must step up
	// at month 13.
	terms := domain.LoanTerms{
		Principal:     decimal.NewFromInt(800000),
		AnnualRate:    decimal.NewFromFloat(0.0199),
		TenureMonths:  240,
		FixedMonths:   12,
		ReversionRate: decimal.NewFromFloat(0.055),
	}
	sched := buildOrFail(t, ScheduleInput{
		Terms:         &terms,
		HorizonMonths: 14,
		Policy:        domain.RecomputeOnResetOnly,
	})

	if !sched.Installments[12].EMI.GreaterThan(sched.Installments[11].EMI) {
		t.Errorf("expected installment to step up at reversion: month 12 %s, month 13 %s",
			sched.Installments[11].EMI, sched.Installments[12].EMI)
	}
}

func TestBuildScheduleDeltaFlooredAtZero(t *testing.T) {
	// An optimistic delta larger than the rate must not drive the effective
	// rate negative.
	terms := domain.LoanTerms{
		Principal:    decimal.NewFromInt(120000),
		AnnualRate:   decimal.NewFromFloat(0.001),
		TenureMonths: 12,
	}
	sched := buildOrFail(t, ScheduleInput{
		Terms:         &terms,
		Delta:         decimal.NewFromFloat(-0.01),
		HorizonMonths: 12,
		Policy:        domain.RecomputeOnResetOnly,
	})

	first := sched.Installments[0]
	if !first.Interest.IsZero() {
		t.Errorf("expected zero interest at floored rate, got %s", first.Interest)
	}
	if !first.EMI.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("expected straight-line installment 10000, got %s", first.EMI)
	}
}

func TestBuildScheduleUpfrontFeesCountedOnce(t *testing.T) {
	terms := domain.LoanTerms{
		Principal:    decimal.NewFromInt(120000),
		TenureMonths: 12,
	}
	waterfall := domain.FeeWaterfall{Items: []domain.FeeLineItem{
		{Kind: domain.FeeProcessing, AmountAED: decimal.NewFromInt(1000), Timing: domain.FeeTimingUpfront, Source: domain.FeeSourceEstimated},
		{Kind: domain.FeeValuation, AmountAED: decimal.NewFromInt(2500), Timing: domain.FeeTimingUpfront, Source: domain.FeeSourceEstimated},
	}}
	sched := buildOrFail(t, ScheduleInput{
		Terms:         &terms,
		HorizonMonths: 12,
		Policy:        domain.RecomputeOnResetOnly,
		Waterfall:     &waterfall,
	})

	if !sched.UpfrontFees.Equal(decimal.NewFromInt(3500)) {
		t.Errorf("expected upfront fees 3500, got %s", sched.UpfrontFees)
	}
	// Total = upfront once + 12 straight-line installments of 10,000.
	want := decimal.NewFromInt(3500 + 120000)
	if !sched.TotalCashOut.Equal(want) {
		t.Errorf("expected total %s, got %s", want, sched.TotalCashOut)
	}
}
