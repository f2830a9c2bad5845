// Package instrument runs the indicator calculations with configured windows,
// structured logging and Prometheus metrics. Results and errors are returned
// exactly as the indicators package produces them.
package instrument

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"equity-indicators/config"
	"equity-indicators/internal/logger"
	"equity-indicators/internal/metrics"
	"equity-indicators/pkg/indicators"
)

// Calculator is safe for concurrent use.
type Calculator struct {
	params  config.Params
	log     *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Calculator.
type Option func(*calculatorOptions)

type calculatorOptions struct {
	log *slog.Logger
	out io.Writer
	reg prometheus.Registerer
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *calculatorOptions) { o.log = l }
}

// WithLogOutput logs JSON to w at the configured LogLevel. WithLogger takes
// precedence.
func WithLogOutput(w io.Writer) Option {
	return func(o *calculatorOptions) { o.out = w }
}

// WithRegisterer registers the calculator's metrics on reg. By default the
// metrics are kept but not registered anywhere.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *calculatorOptions) { o.reg = reg }
}

// New creates a Calculator using the windows in p.
func New(p config.Params, opts ...Option) (*Calculator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var o calculatorOptions
	for _, opt := range opts {
		opt(&o)
	}

	log := o.log
	switch {
	case log != nil:
	case o.out != nil:
		level, _ := logger.ParseLevel(p.LogLevel)
		log = logger.New(o.out, "calculator", level)
	default:
		log = logger.Discard()
	}

	m, err := metrics.NewMetrics(o.reg)
	if err != nil {
		return nil, err
	}

	return &Calculator{
		params:  p,
		log:     log,
		metrics: m,
	}, nil
}

// Params returns the configured windows.
func (c *Calculator) Params() config.Params { return c.params }

// RSI computes the RSI of prices with the configured window.
func (c *Calculator) RSI(prices []float64) ([]float64, error) {
	name := "rsi"
	start := c.begin(name, len(prices))
	out, err := indicators.CalculateRSI(prices, c.params.RSIWindow)
	c.end(name, start, err, slog.Int("window", c.params.RSIWindow))
	return out, err
}

// EMA computes the EMA of prices with the configured window.
func (c *Calculator) EMA(prices []float64) ([]float64, error) {
	name := "ema"
	start := c.begin(name, len(prices))
	out, err := indicators.CalculateEMA(prices, c.params.EMAWindow)
	c.end(name, start, err, slog.Int("window", c.params.EMAWindow))
	return out, err
}

// MACD computes the MACD line, signal line and histogram of prices with the
// configured windows.
func (c *Calculator) MACD(prices []float64) (macd, signal, histogram []float64, err error) {
	name := "macd"
	start := c.begin(name, len(prices))
	macd, signal, histogram, err = indicators.CalculateMACD(prices,
		c.params.MACDShort, c.params.MACDLong, c.params.MACDSignal)
	c.end(name, start, err,
		slog.Int("short", c.params.MACDShort),
		slog.Int("long", c.params.MACDLong),
		slog.Int("signal", c.params.MACDSignal))
	return macd, signal, histogram, err
}

// Engine returns a streaming engine for the configured windows.
func (c *Calculator) Engine() (*indicators.Engine, error) {
	return indicators.NewEngine(c.params.EngineConfigs()...)
}

func (c *Calculator) begin(name string, n int) time.Time {
	c.metrics.CalculationsTotal.WithLabelValues(name).Inc()
	c.metrics.InputLength.WithLabelValues(name).Observe(float64(n))
	return time.Now()
}

func (c *Calculator) end(name string, start time.Time, err error, attrs ...any) {
	c.metrics.CalculationDur.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err == nil {
		return
	}

	kind := "unknown"
	var ie *indicators.IndicatorError
	if errors.As(err, &ie) {
		kind = ie.Kind.String()
	}
	c.metrics.ErrorsTotal.WithLabelValues(name, kind).Inc()
	c.log.Debug("indicator calculation failed",
		append([]any{slog.String("indicator", name), slog.String("kind", kind), slog.Any("error", err)}, attrs...)...)
}
