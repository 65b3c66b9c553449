package tools

import (
	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// ScheduleSummary сводка по графику, суммы округлены до копеек
type ScheduleSummary struct {
	Principal           float64 `json:"principal"`
	AnnualRatePercent   float64 `json:"annual_rate_percent"`
	TermYears           int     `json:"term_years"`
	NominalPeriods      int     `json:"nominal_periods"`
	Periods             int     `json:"periods"`
	MonthlyPayment      float64 `json:"monthly_payment"`
	ExtraPayment        float64 `json:"extra_payment"`
	TotalInterest       float64 `json:"total_interest"`
	TotalExtraPrincipal float64 `json:"total_extra_principal"`
	TotalPaid           float64 `json:"total_paid"`
	PaidOffEarly        bool    `json:"paid_off_early"`
	FirstPaymentDate    string  `json:"first_payment_date"`
	PayoffDate          string  `json:"payoff_date"`
}

// ScheduleRow строка графика для ответа инструмента
type ScheduleRow struct {
	Index               int     `json:"period_index"`
	Date                string  `json:"date"`
	Payment             float64 `json:"payment"`
	Principal           float64 `json:"principal"`
	Interest            float64 `json:"interest"`
	ExtraPrincipal      float64 `json:"extra_principal"`
	CumulativePrincipal float64 `json:"cumulative_principal"`
	Balance             float64 `json:"balance"`
}

// ScheduleResult представляет результат расчета графика
type ScheduleResult struct {
	Summary  ScheduleSummary `json:"summary"`
	Schedule []ScheduleRow   `json:"schedule"`
}

// PeriodSplitResult представляет разбивку платежа за период
type PeriodSplitResult struct {
	Period           int     `json:"period"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	Payment          float64 `json:"payment"`
	InterestPercent  float64 `json:"interest_percent"`
	PrincipalPercent float64 `json:"principal_percent"`
}

// ComparisonResult представляет сравнение графиков с досрочными платежами и без них
type ComparisonResult struct {
	Baseline      ScheduleSummary `json:"baseline"`
	WithExtra     ScheduleSummary `json:"with_extra"`
	PeriodsSaved  int             `json:"periods_saved"`
	InterestSaved float64         `json:"interest_saved"`
	// Ряды остатков для построения графика на стороне клиента
	BaselineBalances  []float64 `json:"baseline_balances"`
	WithExtraBalances []float64 `json:"with_extra_balances"`
}

func NewScheduleResult(s *calculations.Schedule) *ScheduleResult {
	rows := make([]ScheduleRow, 0, s.Len())
	for _, p := range s.Periods {
		rows = append(rows, ScheduleRow{
			Index:               p.Index,
			Date:                p.Date.Format(dateLayout),
			Payment:             utils.Round2(p.Payment),
			Principal:           utils.Round2(p.Principal),
			Interest:            utils.Round2(p.Interest),
			ExtraPrincipal:      utils.Round2(p.ExtraPrincipal),
			CumulativePrincipal: utils.Round2(p.CumulativePrincipal),
			Balance:             utils.Round2(p.Balance),
		})
	}
	return &ScheduleResult{
		Summary:  summarize(s),
		Schedule: rows,
	}
}

func NewPeriodSplitResult(split *calculations.PeriodSplit) *PeriodSplitResult {
	return &PeriodSplitResult{
		Period:           split.Period,
		Interest:         utils.Round2(split.Interest),
		Principal:        utils.Round2(split.Principal),
		Payment:          utils.Round2(split.Payment),
		InterestPercent:  utils.Round2(split.InterestShare * 100),
		PrincipalPercent: utils.Round2(split.PrincipalShare * 100),
	}
}

func NewComparisonResult(c *calculations.ExtraPaymentComparison) *ComparisonResult {
	return &ComparisonResult{
		Baseline:          summarize(c.Baseline),
		WithExtra:         summarize(c.WithExtra),
		PeriodsSaved:      c.PeriodsSaved,
		InterestSaved:     utils.Round2(c.InterestSaved),
		BaselineBalances:  roundAll(c.Baseline.Balances()),
		WithExtraBalances: roundAll(c.WithExtra.Balances()),
	}
}

func summarize(s *calculations.Schedule) ScheduleSummary {
	summary := ScheduleSummary{
		Principal:           utils.Round2(s.Terms.Principal),
		AnnualRatePercent:   utils.Round2(s.Terms.AnnualRatePercent),
		TermYears:           s.Terms.TermYears,
		NominalPeriods:      s.NominalPeriods,
		Periods:             s.Len(),
		MonthlyPayment:      utils.Round2(s.LevelPayment),
		ExtraPayment:        utils.Round2(s.Terms.ExtraPayment),
		TotalInterest:       utils.Round2(s.TotalInterest()),
		TotalExtraPrincipal: utils.Round2(s.TotalExtraPrincipal()),
		TotalPaid:           utils.Round2(s.TotalPaid()),
		PaidOffEarly:        s.PaidOffEarly(),
	}
	if first, ok := s.Period(1); ok {
		summary.FirstPaymentDate = first.Date.Format(dateLayout)
	}
	if s.Len() > 0 {
		summary.PayoffDate = s.PayoffDate().Format(dateLayout)
	}
	return summary
}

func roundAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = utils.Round2(v)
	}
	return out
}
