package calculations

import (
	"fmt"
	"math"
	"time"

	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// Generate рассчитывает аннуитетный график платежей с досрочным погашением.
// Последний период закрывает ровно оставшийся долг, досрочный платеж в нем не учитывается.
func Generate(terms LoanTerms) (*Schedule, error) {
	if err := validateTerms(terms); err != nil {
		return nil, err
	}

	P := terms.Principal
	n := terms.NominalPeriods()
	r := terms.MonthlyRate()
	monthlyPayment := levelPayment(P, r, n)
	firstDate := firstPaymentDate(terms.StartDate)

	schedule := make([]Period, 0, n)
	cumP := 0.0

	for m := 1; m <= n; m++ {
		remaining := P - cumP
		interest := remaining * r
		principalComponent := monthlyPayment - interest
		extra := terms.ExtraPayment
		monthly := monthlyPayment

		// Период погашения: платеж закрывает остаток целиком.
		// На последнем номинальном периоде сюда же попадает погрешность float64.
		payoff := cumP+principalComponent+extra >= P || m == n
		if payoff {
			principalComponent = remaining
			extra = 0
			monthly = principalComponent + interest
			cumP = P
		} else {
			cumP += principalComponent + extra
		}

		schedule = append(schedule, Period{
			Index:               m,
			Date:                addMonths(firstDate, m-1),
			Payment:             monthly,
			Principal:           principalComponent,
			Interest:            interest,
			ExtraPrincipal:      extra,
			CumulativePrincipal: cumP,
			Balance:             math.Max(P-cumP, 0),
		})

		if payoff {
			break
		}
	}

	return &Schedule{
		Terms:          terms,
		LevelPayment:   monthlyPayment,
		NominalPeriods: n,
		Periods:        schedule,
	}, nil
}

// PaymentForPeriod рассчитывает разбивку платежа для произвольного периода без построения графика
func PaymentForPeriod(annualRatePercent float64, period, termYears int, principal float64) (*PeriodSplit, error) {
	terms := LoanTerms{
		AnnualRatePercent: annualRatePercent,
		TermYears:         termYears,
		Principal:         principal,
	}
	if err := validateTerms(terms); err != nil {
		return nil, err
	}

	n := terms.NominalPeriods()
	if period < 1 || period > n {
		return nil, fmt.Errorf("%w: period must be in [1; %d], got %d", ErrInvalidInput, n, period)
	}

	P := principal
	r := terms.MonthlyRate()
	monthlyPayment := levelPayment(P, r, n)

	var balance float64
	if r == 0.0 {
		balance = P - float64(period-1)*monthlyPayment
	} else {
		growthMinusOne := math.Expm1(float64(period-1) * math.Log1p(r))
		balance = P*(1.0+growthMinusOne) - monthlyPayment*growthMinusOne/r
	}

	interest := balance * r
	principalComponent := monthlyPayment - interest

	return &PeriodSplit{
		Period:         period,
		Interest:       interest,
		Principal:      principalComponent,
		Payment:        monthlyPayment,
		InterestShare:  interest / monthlyPayment,
		PrincipalShare: principalComponent / monthlyPayment,
	}, nil
}

// MaxTermYears верхняя граница срока, не дает переполнить число периодов
const MaxTermYears = 1000

func levelPayment(principal, r float64, n int) float64 {
	if r == 0.0 {
		return principal / float64(n)
	}
	// 1 - (1+r)^-n через Expm1/Log1p: при малых r 1+r округляется до 1
	return r * principal / -math.Expm1(-float64(n)*math.Log1p(r))
}

func validateTerms(terms LoanTerms) error {
	switch {
	case !utils.IsFinite(terms.Principal) || terms.Principal <= 0:
		return fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidInput, terms.Principal)
	case terms.TermYears <= 0 || terms.TermYears > MaxTermYears:
		return fmt.Errorf("%w: term_years must be in [1; %d], got %d", ErrInvalidInput, MaxTermYears, terms.TermYears)
	case !utils.IsFinite(terms.AnnualRatePercent) || terms.AnnualRatePercent < 0:
		return fmt.Errorf("%w: annual_rate_percent must be non-negative, got %v", ErrInvalidInput, terms.AnnualRatePercent)
	case !utils.IsFinite(terms.ExtraPayment) || terms.ExtraPayment < 0:
		return fmt.Errorf("%w: extra_payment must be non-negative, got %v", ErrInvalidInput, terms.ExtraPayment)
	}
	return nil
}

// firstPaymentDate приводит дату к первому числу месяца; дата не с первого числа переносится на следующий месяц
func firstPaymentDate(start time.Time) time.Time {
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	if start.Day() != 1 {
		first = addMonths(first, 1)
	}
	return first
}

func addMonths(first time.Time, months int) time.Time {
	return time.Date(first.Year(), first.Month()+time.Month(months), 1, 0, 0, 0, 0, first.Location())
}
