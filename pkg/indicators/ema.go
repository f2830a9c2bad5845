package indicators

// EMA calculates Exponential Moving Average.
// O(1) per update, no window storage needed.
type EMA struct {
	window     int
	multiplier float64
	current    float64
	count      int
	sum        float64
}

// NewEMA creates a new EMA indicator with the given window.
func NewEMA(window int) (*EMA, error) {
	if err := checkWindow("window", window); err != nil {
		return nil, err
	}
	return newEMA(window), nil
}

func newEMA(window int) *EMA {
	return &EMA{
		window:     window,
		multiplier: 2.0 / (float64(window) + 1.0),
	}
}

func (e *EMA) Name() string { return windowName("EMA", e.window) }

func (e *EMA) Update(price float64) {
	e.count++

	if e.count <= e.window {
		// Accumulate for initial SMA seed
		e.sum += price
		if e.count == e.window {
			e.current = e.sum / float64(e.window)
		}
		return
	}

	e.current = e.next(price)
}

// next applies the EMA recurrence. The conversion rounds the product, so it
// is never fused into a multiply-add.
func (e *EMA) next(price float64) float64 {
	return float64((price-e.current)*e.multiplier) + e.current
}

func (e *EMA) Value() float64 { return e.current }
func (e *EMA) Ready() bool    { return e.count >= e.window }

// Peek computes what Value() would be with an additional price without mutating state.
func (e *EMA) Peek(price float64) float64 {
	switch {
	case e.count+1 < e.window:
		return 0
	case e.count+1 == e.window:
		return (e.sum + price) / float64(e.window)
	}
	return e.next(price)
}

// Reset clears the EMA state for reuse.
func (e *EMA) Reset() {
	e.current = 0
	e.count = 0
	e.sum = 0
}

// Snapshot captures the EMA state.
func (e *EMA) Snapshot() State {
	return State{
		Type:    "EMA",
		Windows: []int{e.window},
		Current: e.current,
		Count:   e.count,
		Sum:     e.sum,
	}
}

// Restore loads a state captured from an EMA with the same window.
func (e *EMA) Restore(s State) error {
	if err := s.check("EMA", e.window); err != nil {
		return err
	}
	e.current = s.Current
	e.count = s.Count
	e.sum = s.Sum
	return nil
}

// CalculateEMA computes the exponential moving average of prices. The first
// value is the mean of the first window prices; each later value applies
// ema = (price - prev) * 2/(window+1) + prev. The result has
// len(prices)-window+1 values.
func CalculateEMA(prices []float64, window int) ([]float64, error) {
	return CalculateEMASeries(Slice[float64](prices), window)
}

// CalculateEMASeries is CalculateEMA over any Series.
func CalculateEMASeries(s Series, window int) ([]float64, error) {
	if err := checkWindow("window", window); err != nil {
		return nil, err
	}
	n := s.Len()
	if n < window {
		return nil, notEnoughData("EMA needs at least %d prices, got %d", window, n)
	}

	e := newEMA(window)
	out := make([]float64, 0, n-window+1)
	for i := 0; i < n; i++ {
		e.Update(s.At(i))
		if e.Ready() {
			out = append(out, e.Value())
		}
	}
	return out, nil
}
