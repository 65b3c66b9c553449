package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// APICalls счетчик вызовов API
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "Вызовы API инструментов",
		},
		[]string{"service", "endpoint", "status"},
	)

	// SchedulePeriods распределение фактической длины графиков
	SchedulePeriods = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schedule_periods",
			Help:    "Количество периодов в рассчитанных графиках",
			Buckets: []float64{12, 36, 60, 120, 180, 240, 300, 360, 480, 600},
		},
	)

	// EarlyPayoffs счетчик графиков, погашенных досрочно
	EarlyPayoffs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "early_payoffs_total",
			Help: "Графики, закрытые раньше номинального срока",
		},
	)

	// CacheLookups счетчик обращений к кэшу ответов
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Обращения к кэшу ответов инструментов",
		},
		[]string{"result"},
	)
)
