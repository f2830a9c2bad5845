package indicators

import "slices"

// Snapshottable is implemented by indicators that support state capture.
type Snapshottable interface {
	Indicator
	Snapshot() State
	Restore(s State) error
}

// State holds the captured state of a single streaming indicator. It is
// JSON-tagged so callers can keep it wherever they like; this package only
// builds and consumes the value.
type State struct {
	Type    string `json:"type"`    // "SMA", "EMA", "SMMA", "RSI", "MACD"
	Windows []int  `json:"windows"` // MACD: short, long, signal

	Count   int     `json:"count"`
	Sum     float64 `json:"sum,omitempty"`
	Current float64 `json:"current"`

	// SMA fields
	Buf []float64 `json:"buf,omitempty"`
	Idx int       `json:"idx,omitempty"`

	// RSI fields
	PrevPrice float64 `json:"prev_price,omitempty"`

	// Nested indicators: RSI gain/loss averages, MACD short/long/signal EMAs.
	Parts []State `json:"parts,omitempty"`
}

// Name returns the indicator name the state was captured from.
func (s State) Name() string {
	return windowName(s.Type, s.Windows...)
}

func (s State) check(typ string, windows ...int) error {
	if s.Type != typ || !slices.Equal(s.Windows, windows) {
		return invalidInput("cannot restore %s into %s", s.Name(), windowName(typ, windows...))
	}
	if s.Count < 0 {
		return invalidInput("%s state has negative count", s.Name())
	}
	return nil
}
