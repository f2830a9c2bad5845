package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for indicator calculations.
type Metrics struct {
	CalculationsTotal *prometheus.CounterVec   // labels: indicator
	ErrorsTotal       *prometheus.CounterVec   // labels: indicator, kind
	CalculationDur    *prometheus.HistogramVec // labels: indicator
	InputLength       *prometheus.HistogramVec // labels: indicator
}

// NewMetrics creates the collectors and registers them on reg. A nil reg
// leaves them unregistered. If reg already holds the same collectors (another
// Calculator registered them) those are reused, so counts accumulate.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		CalculationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indicators_calculations_total",
			Help: "Total indicator calculations requested",
		}, []string{"indicator"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "indicators_errors_total",
			Help: "Indicator calculations that returned an error, by error kind",
		}, []string{"indicator", "kind"}),
		CalculationDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "indicators_calculation_duration_seconds",
			Help:    "Indicator calculation latency per call",
			Buckets: []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}, []string{"indicator"}),
		InputLength: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "indicators_input_length",
			Help:    "Number of prices passed to an indicator calculation",
			Buckets: prometheus.ExponentialBuckets(8, 4, 8),
		}, []string{"indicator"}),
	}

	if reg == nil {
		return m, nil
	}

	var err error
	if m.CalculationsTotal, err = register(reg, m.CalculationsTotal); err != nil {
		return nil, err
	}
	if m.ErrorsTotal, err = register(reg, m.ErrorsTotal); err != nil {
		return nil, err
	}
	if m.CalculationDur, err = register(reg, m.CalculationDur); err != nil {
		return nil, err
	}
	if m.InputLength, err = register(reg, m.InputLength); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}
