package calculations

import (
	"errors"
	"time"
)

// ErrInvalidInput возвращается, когда условия кредита вне допустимой области
var ErrInvalidInput = errors.New("invalid input")

// LoanTerms описывает условия кредита с фиксированной ставкой
type LoanTerms struct {
	StartDate         time.Time `json:"start_date"`
	AnnualRatePercent float64   `json:"annual_rate_percent"`
	TermYears         int       `json:"term_years"`
	Principal         float64   `json:"principal"`
	ExtraPayment      float64   `json:"extra_payment"`
}

// NominalPeriods возвращает количество периодов без досрочного погашения
func (t LoanTerms) NominalPeriods() int {
	return t.TermYears * 12
}

// MonthlyRate возвращает месячную ставку в долях
func (t LoanTerms) MonthlyRate() float64 {
	return t.AnnualRatePercent / 100.0 / 12.0
}

// Period представляет одну строку графика платежей
type Period struct {
	Index               int       `json:"period_index"`
	Date                time.Time `json:"date"`
	Payment             float64   `json:"payment"`
	Principal           float64   `json:"principal"`
	Interest            float64   `json:"interest"`
	ExtraPrincipal      float64   `json:"extra_principal"`
	CumulativePrincipal float64   `json:"cumulative_principal"`
	Balance             float64   `json:"balance"`
}

// Schedule представляет упорядоченный график платежей
type Schedule struct {
	Terms          LoanTerms `json:"terms"`
	LevelPayment   float64   `json:"level_payment"`
	NominalPeriods int       `json:"nominal_periods"`
	Periods        []Period  `json:"periods"`
}

// Len возвращает фактическое число периодов
func (s *Schedule) Len() int {
	return len(s.Periods)
}

// Period возвращает период по номеру (нумерация с 1)
func (s *Schedule) Period(index int) (Period, bool) {
	if index < 1 || index > len(s.Periods) {
		return Period{}, false
	}
	return s.Periods[index-1], true
}

// Last возвращает последний период графика
func (s *Schedule) Last() (Period, bool) {
	return s.Period(len(s.Periods))
}

// TotalInterest суммирует проценты за весь срок
func (s *Schedule) TotalInterest() float64 {
	total := 0.0
	for _, p := range s.Periods {
		total += p.Interest
	}
	return total
}

// TotalExtraPrincipal суммирует досрочные платежи
func (s *Schedule) TotalExtraPrincipal() float64 {
	total := 0.0
	for _, p := range s.Periods {
		total += p.ExtraPrincipal
	}
	return total
}

// TotalPaid суммирует все платежи вместе с досрочными
func (s *Schedule) TotalPaid() float64 {
	total := 0.0
	for _, p := range s.Periods {
		total += p.Payment + p.ExtraPrincipal
	}
	return total
}

// PaidOffEarly сообщает, закрыт ли кредит раньше номинального срока
func (s *Schedule) PaidOffEarly() bool {
	return len(s.Periods) < s.NominalPeriods
}

// PayoffDate возвращает дату последнего платежа
func (s *Schedule) PayoffDate() time.Time {
	last, ok := s.Last()
	if !ok {
		return time.Time{}
	}
	return last.Date
}

// Balances возвращает ряд остатков для построения графика
func (s *Schedule) Balances() []float64 {
	out := make([]float64, len(s.Periods))
	for i, p := range s.Periods {
		out[i] = p.Balance
	}
	return out
}

// PeriodSplit представляет разбивку платежа за один период
type PeriodSplit struct {
	Period         int     `json:"period"`
	Interest       float64 `json:"interest"`
	Principal      float64 `json:"principal"`
	Payment        float64 `json:"payment"`
	InterestShare  float64 `json:"interest_share"`
	PrincipalShare float64 `json:"principal_share"`
}

// ExtraPaymentComparison сравнивает график с досрочными платежами и без них
type ExtraPaymentComparison struct {
	Baseline        *Schedule `json:"baseline"`
	WithExtra       *Schedule `json:"with_extra"`
	PeriodsSaved    int       `json:"periods_saved"`
	InterestSaved   float64   `json:"interest_saved"`
	BaselinePayoff  time.Time `json:"baseline_payoff"`
	WithExtraPayoff time.Time `json:"with_extra_payoff"`
}
