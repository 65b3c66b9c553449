package tools

import (
	"fmt"
	"math"
	"time"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
)

// Параметры приходят из JSON, поэтому числа всегда float64

func floatParam(params map[string]interface{}, name string) (float64, error) {
	value, ok := params[name].(float64)
	if !ok {
		return 0, fmt.Errorf("invalid parameter: %s", name)
	}
	return value, nil
}

func optionalFloatParam(params map[string]interface{}, name string, defaultValue float64) (float64, error) {
	if _, present := params[name]; !present {
		return defaultValue, nil
	}
	return floatParam(params, name)
}

func intParam(params map[string]interface{}, name string) (int, error) {
	value, err := floatParam(params, name)
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return 0, fmt.Errorf("invalid parameter: %s must be an integer", name)
	}
	return int(value), nil
}

func dateParam(params map[string]interface{}, name string) (time.Time, error) {
	raw, ok := params[name].(string)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid parameter: %s", name)
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid parameter: %s must be YYYY-MM-DD", name)
	}
	return date, nil
}

func loanTermsFromParams(params map[string]interface{}) (calculations.LoanTerms, error) {
	startDate, err := dateParam(params, "start_date")
	if err != nil {
		return calculations.LoanTerms{}, err
	}
	principal, err := floatParam(params, "principal")
	if err != nil {
		return calculations.LoanTerms{}, err
	}
	annualRatePercent, err := floatParam(params, "annual_rate_percent")
	if err != nil {
		return calculations.LoanTerms{}, err
	}
	termYears, err := intParam(params, "term_years")
	if err != nil {
		return calculations.LoanTerms{}, err
	}
	extra, err := optionalFloatParam(params, "extra_payment", 0)
	if err != nil {
		return calculations.LoanTerms{}, err
	}

	return calculations.LoanTerms{
		StartDate:         startDate,
		AnnualRatePercent: annualRatePercent,
		TermYears:         termYears,
		Principal:         principal,
		ExtraPayment:      extra,
	}, nil
}
