package indicators

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Config specifies a single indicator to compute.
type Config struct {
	Type   string // "SMA", "EMA", "SMMA", "RSI", "MACD"
	Window int    // SMA, EMA, SMMA, RSI

	// MACD windows
	Short  int
	Long   int
	Signal int
}

func (c Config) typ() string { return strings.ToUpper(c.Type) }

// Name returns the name of the indicator the config builds, e.g. "RSI_14".
func (c Config) Name() string {
	if c.typ() == "MACD" {
		return windowName("MACD", c.Short, c.Long, c.Signal)
	}
	return windowName(c.typ(), c.Window)
}

func (c Config) build() (Snapshottable, error) {
	switch c.typ() {
	case "SMA":
		return NewSMA(c.Window)
	case "EMA":
		return NewEMA(c.Window)
	case "SMMA":
		return NewSMMA(c.Window)
	case "RSI":
		return NewRSI(c.Window)
	case "MACD":
		return NewMACD(c.Short, c.Long, c.Signal)
	default:
		return nil, invalidInput("unknown indicator type %q", c.Type)
	}
}

// checkDuplicates reports every config whose name repeats an earlier one.
// Indicators are keyed by name, so two configs with one name cannot coexist.
func checkDuplicates(configs []Config) error {
	var errs error
	seen := make(map[string]struct{}, len(configs))
	for _, c := range configs {
		name := c.Name()
		if _, dup := seen[name]; dup {
			errs = multierr.Append(errs, invalidInput("duplicate indicator %s", name))
			continue
		}
		seen[name] = struct{}{}
	}
	return errs
}

// Result is one indicator value produced by the engine.
type Result struct {
	Name  string
	Value float64
	Ready bool
	Live  bool // produced by Peek, state not advanced
}

// Engine computes a fixed set of streaming indicators over one price stream.
// Designed for single-goroutine usage, so there are no locks.
type Engine struct {
	configs    []Config
	indicators []Snapshottable
}

// NewEngine creates an engine with one indicator per config. Every invalid
// config, and every repeated indicator name, is reported in the returned error.
func NewEngine(configs ...Config) (*Engine, error) {
	e := &Engine{
		configs:    configs,
		indicators: make([]Snapshottable, 0, len(configs)),
	}

	errs := checkDuplicates(configs)
	for _, c := range configs {
		ind, err := c.build()
		if err != nil {
			errs = multierr.Append(errs, errors.Wrap(err, c.Name()))
			continue
		}
		e.indicators = append(e.indicators, ind)
	}
	if errs != nil {
		return nil, errs
	}
	return e, nil
}

// Reload replaces the engine's configs. Indicators whose name is unchanged
// keep their accumulated state; new ones start cold. Repeated names are
// rejected. On error the engine is left unchanged.
func (e *Engine) Reload(configs ...Config) (preserved, created int, err error) {
	err = checkDuplicates(configs)
	existing := make(map[string]Snapshottable, len(e.indicators))
	for _, ind := range e.indicators {
		existing[ind.Name()] = ind
	}

	next := make([]Snapshottable, 0, len(configs))
	for _, c := range configs {
		if ind, ok := existing[c.Name()]; ok {
			next = append(next, ind)
			preserved++
			continue
		}
		ind, buildErr := c.build()
		if buildErr != nil {
			err = multierr.Append(err, errors.Wrap(buildErr, c.Name()))
			continue
		}
		next = append(next, ind)
		created++
	}
	if err != nil {
		return 0, 0, err
	}

	e.configs = configs
	e.indicators = next
	return preserved, created, nil
}

// Update feeds a price to every indicator and returns their results in
// config order (including not-ready indicators with Ready=false).
func (e *Engine) Update(price float64) []Result {
	results := make([]Result, 0, len(e.indicators))
	for _, ind := range e.indicators {
		ind.Update(price)
		results = append(results, Result{
			Name:  ind.Name(),
			Value: ind.Value(),
			Ready: ind.Ready(),
		})
	}
	return results
}

// Peek computes the values every indicator would have if price were the next
// update. Does NOT mutate indicator state.
func (e *Engine) Peek(price float64) []Result {
	results := make([]Result, 0, len(e.indicators))
	for _, ind := range e.indicators {
		results = append(results, Result{
			Name:  ind.Name(),
			Value: ind.Peek(price),
			Ready: ind.Ready(),
			Live:  true,
		})
	}
	return results
}

// Snapshot captures the state of every indicator, in config order.
func (e *Engine) Snapshot() []State {
	states := make([]State, 0, len(e.indicators))
	for _, ind := range e.indicators {
		states = append(states, ind.Snapshot())
	}
	return states
}

// Restore loads states into the engine. It is tolerant of config changes:
// states are matched to indicators by name, indicators without a matching
// state are reset (cold), and states for removed indicators are skipped.
// It returns how many indicators were restored; a state that fails to load
// leaves its indicator cold and is reported in the error.
func (e *Engine) Restore(states []State) (int, error) {
	lookup := make(map[string]State, len(states))
	for _, s := range states {
		lookup[s.Name()] = s
	}

	var errs error
	restored := 0
	for _, ind := range e.indicators {
		s, found := lookup[ind.Name()]
		if !found {
			resetIndicator(ind)
			continue
		}
		if err := ind.Restore(s); err != nil {
			resetIndicator(ind)
			errs = multierr.Append(errs, errors.Wrap(err, ind.Name()))
			continue
		}
		restored++
	}
	return restored, errs
}

func resetIndicator(ind Indicator) {
	if r, ok := ind.(interface{ Reset() }); ok {
		r.Reset()
	}
}

// Compute evaluates every config over s with the batch functions and
// returns the results keyed by indicator name. MACD adds three entries:
// the line under its name, and "<name>_signal" and "<name>_hist".
// Repeated names are rejected. If any config fails, Compute returns no results and an error combining
// every failure; errors.Is and errors.As still reach each *IndicatorError.
func Compute(s Series, configs ...Config) (map[string][]float64, error) {
	out := make(map[string][]float64, len(configs))

	errs := checkDuplicates(configs)
	for _, c := range configs {
		name := c.Name()
		switch c.typ() {
		case "EMA":
			v, err := CalculateEMASeries(s, c.Window)
			errs = multierr.Append(errs, errors.Wrap(err, name))
			out[name] = v
		case "RSI":
			v, err := CalculateRSISeries(s, c.Window)
			errs = multierr.Append(errs, errors.Wrap(err, name))
			out[name] = v
		case "MACD":
			line, signal, hist, err := CalculateMACDSeries(s, c.Short, c.Long, c.Signal)
			errs = multierr.Append(errs, errors.Wrap(err, name))
			out[name] = line
			out[name+"_signal"] = signal
			out[name+"_hist"] = hist
		default:
			v, err := collect(s, c)
			errs = multierr.Append(errs, errors.Wrap(err, name))
			out[name] = v
		}
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

// collect runs a streaming indicator over s and keeps its ready values.
func collect(s Series, c Config) ([]float64, error) {
	ind, err := c.build()
	if err != nil {
		return nil, err
	}
	n := s.Len()
	if n < c.Window {
		return nil, notEnoughData("%s needs at least %d prices, got %d", c.typ(), c.Window, n)
	}

	out := make([]float64, 0, n-c.Window+1)
	for i := 0; i < n; i++ {
		ind.Update(s.At(i))
		if ind.Ready() {
			out = append(out, ind.Value())
		}
	}
	return out, nil
}
