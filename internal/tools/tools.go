package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/internal/config"
	"github.com/cloud-ru/mcp-amortization-go/internal/log"
	"github.com/cloud-ru/mcp-amortization-go/internal/metrics"
	"github.com/cloud-ru/mcp-amortization-go/internal/validators"
)

const (
	ToolAmortizationSchedule = "amortization_schedule"
	ToolPaymentForPeriod     = "payment_for_period"
	ToolCompareExtraPayment  = "compare_extra_payment"
)

const dateLayout = "2006-01-02"

// ErrInvalidParams возвращается при отсутствующих или неверных параметрах
var ErrInvalidParams = errors.New("неверные параметры")

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Registry возвращает все инструменты по именам
func Registry(cfg *config.Config, tracer trace.Tracer, logger *log.Logger) map[string]ToolHandler {
	logger = logger.WithComponent(log.ComponentTools)
	return map[string]ToolHandler{
		ToolAmortizationSchedule: AmortizationScheduleHandler(cfg, tracer, logger),
		ToolPaymentForPeriod:     PaymentForPeriodHandler(cfg, tracer, logger),
		ToolCompareExtraPayment:  CompareExtraPaymentHandler(cfg, tracer, logger),
	}
}

// Names возвращает отсортированный список имен инструментов
func Names(registry map[string]ToolHandler) []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AmortizationScheduleHandler обрабатывает запрос на расчет графика с досрочными платежами
func AmortizationScheduleHandler(cfg *config.Config, tracer trace.Tracer, logger *log.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		c := startCall(ctx, tracer, logger, ToolAmortizationSchedule)
		defer c.span.End()

		terms, err := loanTermsFromParams(params)
		if err != nil {
			return nil, c.fail("validation_error", "validation", err)
		}
		c.setTermsAttributes(terms)

		if err := validateTerms(cfg, terms); err != nil {
			return nil, c.fail("validation_error", "validation", err)
		}

		schedule, err := calculations.Generate(terms)
		if err != nil {
			return nil, c.calculationFailed(err)
		}
		observeSchedule(schedule)

		result := NewScheduleResult(schedule)
		c.span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("monthly_payment", result.Summary.MonthlyPayment),
			attribute.Int("periods", result.Summary.Periods),
			attribute.Bool("paid_off_early", result.Summary.PaidOffEarly),
		)
		c.succeed(log.FieldPeriods, schedule.Len())

		return result, nil
	}
}

// PaymentForPeriodHandler обрабатывает запрос на разбивку платежа за один период
func PaymentForPeriodHandler(cfg *config.Config, tracer trace.Tracer, logger *log.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		c := startCall(ctx, tracer, logger, ToolPaymentForPeriod)
		defer c.span.End()

		principal, err := floatParam(params, "principal")
		if err != nil {
			return nil, c.fail("validation_error", "validation", err)
		}
		annualRatePercent, err := floatParam(params, "annual_rate_percent")
		if err != nil {
			return nil, c.fail("validation_error", "validation", err)
		}
		termYears, err := intParam(params, "term_years")
		if err != nil {
			return nil, c.fail("validation_error", "validation", err)
		}
		period, err := intParam(params, "period")
		if err != nil {
			return nil, c.fail("validation_error", "validation", err)
		}

		c.span.SetAttributes(
			attribute.Float64("principal", principal),
			attribute.Float64("annual_rate_percent", annualRatePercent),
			attribute.Int("term_years", termYears),
			attribute.Int("period", period),
		)

		if err := validators.CheckPrincipal(cfg, principal); err != nil {
			return nil, c.fail("validation_error", "validation", err)
		}
		if err := validators.CheckRate(cfg, annualRatePercent); err != nil {
			return nil, c.fail("validation_error", "validation", err)
		}
		if err := validators.CheckTermYears(cfg, termYears); err != nil {
			return nil, c.fail("validation_error", "validation", err)
		}
		if err := validators.CheckPeriod(period, termYears); err != nil {
			return nil, c.fail("validation_error", "validation", err)
		}

		split, err := calculations.PaymentForPeriod(annualRatePercent, period, termYears, principal)
		if err != nil {
			return nil, c.calculationFailed(err)
		}

		result := NewPeriodSplitResult(split)
		c.span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("payment", result.Payment),
		)
		c.succeed("period", period)

		return result, nil
	}
}

// CompareExtraPaymentHandler обрабатывает запрос на сравнение графиков с досрочными платежами и без
func CompareExtraPaymentHandler(cfg *config.Config, tracer trace.Tracer, logger *log.Logger) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		c := startCall(ctx, tracer, logger, ToolCompareExtraPayment)
		defer c.span.End()

		terms, err := loanTermsFromParams(params)
		if err != nil {
			return nil, c.fail("validation_error", "validation", err)
		}
		c.setTermsAttributes(terms)

		if err := validateTerms(cfg, terms); err != nil {
			return nil, c.fail("validation_error", "validation", err)
		}

		comparison, err := calculations.CompareExtraPayment(terms)
		if err != nil {
			return nil, c.calculationFailed(err)
		}
		observeSchedule(comparison.WithExtra)

		result := NewComparisonResult(comparison)
		c.span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("periods_saved", result.PeriodsSaved),
			attribute.Float64("interest_saved", result.InterestSaved),
		)
		c.succeed("periods_saved", result.PeriodsSaved)

		return result, nil
	}
}

// call хранит состояние одного вызова инструмента: спан, логгер и время начала
type call struct {
	ctx     context.Context
	name    string
	span    trace.Span
	logger  *log.Logger
	started time.Time
}

func startCall(ctx context.Context, tracer trace.Tracer, logger *log.Logger, toolName string) *call {
	ctx, span := tracer.Start(ctx, toolName)
	metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()
	return &call{
		ctx:     ctx,
		name:    toolName,
		span:    span,
		logger:  logger.With(log.FieldTool, toolName),
		started: time.Now(),
	}
}

func (c *call) setTermsAttributes(terms calculations.LoanTerms) {
	c.span.SetAttributes(
		attribute.Float64("principal", terms.Principal),
		attribute.Float64("annual_rate_percent", terms.AnnualRatePercent),
		attribute.Int("term_years", terms.TermYears),
		attribute.Float64("extra_payment", terms.ExtraPayment),
		attribute.String("start_date", terms.StartDate.Format(dateLayout)),
	)
}

func (c *call) fail(status, errorType string, err error) error {
	c.span.SetAttributes(attribute.String("error", status))
	c.span.SetStatus(codes.Error, err.Error())
	metrics.ToolCalls.WithLabelValues(c.name, status).Inc()
	metrics.CalculationErrors.WithLabelValues(c.name, errorType).Inc()
	metrics.APICalls.WithLabelValues("mcp", c.name, "error").Inc()
	c.logger.WarnContext(c.ctx, "tool call rejected", log.FieldError, err)
	return fmt.Errorf("%w: %w", ErrInvalidParams, err)
}

func (c *call) calculationFailed(err error) error {
	if errors.Is(err, calculations.ErrInvalidInput) {
		return c.fail("validation_error", "validation", err)
	}
	c.span.SetAttributes(attribute.String("error", "calculation_error"))
	c.span.SetStatus(codes.Error, err.Error())
	metrics.ToolCalls.WithLabelValues(c.name, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.name, "calculation").Inc()
	metrics.APICalls.WithLabelValues("mcp", c.name, "error").Inc()
	c.logger.ErrorContext(c.ctx, "calculation failed", log.FieldError, err)
	return fmt.Errorf("ошибка при выполнении расчета: %w", err)
}

func (c *call) succeed(args ...any) {
	metrics.ToolCalls.WithLabelValues(c.name, "success").Inc()
	metrics.APICalls.WithLabelValues("mcp", c.name, "success").Inc()
	args = append(args, log.FieldDuration, time.Since(c.started).Milliseconds())
	c.logger.DebugContext(c.ctx, "tool call completed", args...)
}

func observeSchedule(s *calculations.Schedule) {
	metrics.SchedulePeriods.Observe(float64(s.Len()))
	if s.PaidOffEarly() {
		metrics.EarlyPayoffs.Inc()
	}
}

func validateTerms(cfg *config.Config, terms calculations.LoanTerms) error {
	if err := validators.CheckPrincipal(cfg, terms.Principal); err != nil {
		return err
	}
	if err := validators.CheckRate(cfg, terms.AnnualRatePercent); err != nil {
		return err
	}
	if err := validators.CheckTermYears(cfg, terms.TermYears); err != nil {
		return err
	}
	return validators.CheckExtraPayment(cfg, terms.ExtraPayment)
}
