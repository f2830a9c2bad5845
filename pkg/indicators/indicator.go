// Package indicators computes RSI, EMA and MACD over price series.
//
// Each indicator comes in two forms. The batch functions (CalculateEMA,
// CalculateRSI, CalculateMACD) take a whole series and return a freshly
// allocated result, or an *IndicatorError if the series is too short. They
// are pure and safe for concurrent use. The streaming types (EMA, RSI, MACD,
// SMA, SMMA) are fed one price at a time in O(1) and are not safe for
// concurrent use. The batch EMA and RSI are driven by the streaming types, so
// both forms produce bit-identical values.
package indicators

import "strconv"

// Indicator is the interface for all streaming indicators.
type Indicator interface {
	// Name returns the indicator name (e.g., "SMA_20", "EMA_9").
	Name() string

	// Update feeds the next price and recalculates.
	Update(price float64)

	// Value returns the current calculated value. Returns 0 if not enough data.
	Value() float64

	// Ready returns true when enough data has been accumulated.
	Ready() bool

	// Peek computes what Value() would be if price were added next,
	// WITHOUT mutating internal state.
	Peek(price float64) float64
}

func windowName(typ string, windows ...int) string {
	b := []byte(typ)
	for _, w := range windows {
		b = append(b, '_')
		b = strconv.AppendInt(b, int64(w), 10)
	}
	return string(b)
}
