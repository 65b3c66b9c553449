package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/cloud-ru/mcp-amortization-go/internal/config"
	"github.com/cloud-ru/mcp-amortization-go/internal/log"
	"github.com/cloud-ru/mcp-amortization-go/internal/metrics"
)

func testRegistry(t *testing.T) map[string]ToolHandler {
	t.Helper()
	cfg, _ := config.LoadConfig()
	return Registry(cfg, noop.NewTracerProvider().Tracer("test"), log.Discard())
}

func mortgageParams() map[string]interface{} {
	return map[string]interface{}{
		"start_date":          "2024-01-01",
		"principal":           100000.0,
		"annual_rate_percent": 6.0,
		"term_years":          30.0,
	}
}

func TestAmortizationScheduleHandler(t *testing.T) {
	tests := []struct {
		name      string
		params    func() map[string]interface{}
		wantError bool
		check     func(*testing.T, *ScheduleResult)
	}{
		{
			name:   "without extra payment",
			params: mortgageParams,
			check: func(t *testing.T, r *ScheduleResult) {
				if r.Summary.Periods != 360 || len(r.Schedule) != 360 {
					t.Errorf("expected 360 periods, got %d/%d", r.Summary.Periods, len(r.Schedule))
				}
				if r.Summary.MonthlyPayment != 599.55 {
					t.Errorf("expected monthly payment 599.55, got %v", r.Summary.MonthlyPayment)
				}
				first := r.Schedule[0]
				if first.Interest != 500 || first.Principal != 99.55 || first.Balance != 99900.45 {
					t.Errorf("unexpected first row %+v", first)
				}
				if r.Summary.FirstPaymentDate != "2024-01-01" || r.Summary.PayoffDate != "2053-12-01" {
					t.Errorf("unexpected dates %s .. %s", r.Summary.FirstPaymentDate, r.Summary.PayoffDate)
				}
				if r.Summary.PaidOffEarly {
					t.Error("should not be paid off early")
				}
			},
		},
		{
			name: "with extra payment",
			params: func() map[string]interface{} {
				p := mortgageParams()
				p["extra_payment"] = 500.0
				return p
			},
			check: func(t *testing.T, r *ScheduleResult) {
				if !r.Summary.PaidOffEarly || r.Summary.Periods >= 360 {
					t.Errorf("expected early payoff, got %d periods", r.Summary.Periods)
				}
				last := r.Schedule[len(r.Schedule)-1]
				if last.Balance != 0 || last.ExtraPrincipal != 0 {
					t.Errorf("unexpected last row %+v", last)
				}
			},
		},
		{
			name: "missing start date",
			params: func() map[string]interface{} {
				p := mortgageParams()
				delete(p, "start_date")
				return p
			},
			wantError: true,
		},
		{
			name: "malformed start date",
			params: func() map[string]interface{} {
				p := mortgageParams()
				p["start_date"] = "01/01/2024"
				return p
			},
			wantError: true,
		},
		{
			name: "fractional term",
			params: func() map[string]interface{} {
				p := mortgageParams()
				p["term_years"] = 2.5
				return p
			},
			wantError: true,
		},
		{
			name: "negative extra payment",
			params: func() map[string]interface{} {
				p := mortgageParams()
				p["extra_payment"] = -10.0
				return p
			},
			wantError: true,
		},
		{
			name: "zero principal",
			params: func() map[string]interface{} {
				p := mortgageParams()
				p["principal"] = 0.0
				return p
			},
			wantError: true,
		},
	}

	handler := testRegistry(t)[ToolAmortizationSchedule]
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := handler(context.Background(), tt.params())
			if (err != nil) != tt.wantError {
				t.Fatalf("handler error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError {
				if !errors.Is(err, ErrInvalidParams) {
					t.Errorf("expected ErrInvalidParams, got %v", err)
				}
				return
			}
			tt.check(t, got.(*ScheduleResult))
		})
	}
}

func TestPaymentForPeriodHandler(t *testing.T) {
	handler := testRegistry(t)[ToolPaymentForPeriod]

	got, err := handler(context.Background(), map[string]interface{}{
		"principal":           100000.0,
		"annual_rate_percent": 6.0,
		"term_years":          30.0,
		"period":              1.0,
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	split := got.(*PeriodSplitResult)
	if split.Interest != 500 || split.Principal != 99.55 || split.Payment != 599.55 {
		t.Errorf("unexpected split %+v", split)
	}
	if split.InterestPercent != 83.4 || split.PrincipalPercent != 16.6 {
		t.Errorf("unexpected percentages %+v", split)
	}

	_, err = handler(context.Background(), map[string]interface{}{
		"principal":           100000.0,
		"annual_rate_percent": 6.0,
		"term_years":          30.0,
		"period":              361.0,
	})
	if !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for period past term, got %v", err)
	}
}

func TestCompareExtraPaymentHandler(t *testing.T) {
	handler := testRegistry(t)[ToolCompareExtraPayment]

	params := mortgageParams()
	params["extra_payment"] = 500.0
	got, err := handler(context.Background(), params)
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	r := got.(*ComparisonResult)
	if r.Baseline.Periods != 360 {
		t.Errorf("baseline should have 360 periods, got %d", r.Baseline.Periods)
	}
	if r.PeriodsSaved != 360-r.WithExtra.Periods || r.PeriodsSaved <= 0 {
		t.Errorf("unexpected periods saved %d", r.PeriodsSaved)
	}
	if r.InterestSaved <= 0 {
		t.Errorf("expected interest saved, got %v", r.InterestSaved)
	}
	if len(r.BaselineBalances) != 360 || len(r.WithExtraBalances) != r.WithExtra.Periods {
		t.Error("balance series do not match schedule lengths")
	}
}

func TestToolMetrics(t *testing.T) {
	handler := testRegistry(t)[ToolAmortizationSchedule]
	success := metrics.ToolCalls.WithLabelValues(ToolAmortizationSchedule, "success")
	rejected := metrics.ToolCalls.WithLabelValues(ToolAmortizationSchedule, "validation_error")
	successBefore := testutil.ToFloat64(success)
	rejectedBefore := testutil.ToFloat64(rejected)

	if _, err := handler(context.Background(), mortgageParams()); err != nil {
		t.Fatal(err)
	}
	if _, err := handler(context.Background(), map[string]interface{}{}); err == nil {
		t.Fatal("expected error for empty params")
	}

	if got := testutil.ToFloat64(success) - successBefore; got != 1 {
		t.Errorf("expected 1 success, got %v", got)
	}
	if got := testutil.ToFloat64(rejected) - rejectedBefore; got != 1 {
		t.Errorf("expected 1 rejection, got %v", got)
	}
}

func TestNames(t *testing.T) {
	names := Names(testRegistry(t))
	want := []string{ToolAmortizationSchedule, ToolCompareExtraPayment, ToolPaymentForPeriod}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
