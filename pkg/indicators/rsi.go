package indicators

import "math"

// RSI calculates the Relative Strength Index using Wilder's smoothing method.
// Update is O(1) per price, no history scans.
//
// When the seed window completes, the last seeding change is smoothed in once
// more before the first value is produced. This keeps the streaming values
// identical to CalculateRSI.
type RSI struct {
	window    int
	count     int
	prevPrice float64
	gain      SMMA
	loss      SMMA
	current   float64
}

// NewRSI creates a new RSI indicator with the given window (typically 14).
func NewRSI(window int) (*RSI, error) {
	if err := checkWindow("window", window); err != nil {
		return nil, err
	}
	return newRSI(window), nil
}

func newRSI(window int) *RSI {
	return &RSI{
		window: window,
		gain:   SMMA{window: window},
		loss:   SMMA{window: window},
	}
}

func (r *RSI) Name() string { return windowName("RSI", r.window) }

func (r *RSI) Update(price float64) {
	r.count++

	if r.count == 1 {
		// First price: just record it, no change yet
		r.prevPrice = price
		return
	}

	gain, loss := split(price - r.prevPrice)
	r.prevPrice = price

	r.gain.Update(gain)
	r.loss.Update(loss)
	if r.count == r.window+1 {
		r.gain.Update(gain)
		r.loss.Update(loss)
	}

	if r.count > r.window {
		r.current = relativeStrength(r.gain.Value(), r.loss.Value())
	}
}

func (r *RSI) Value() float64 { return r.current }
func (r *RSI) Ready() bool    { return r.count > r.window }

// Peek computes what RSI would be with an additional price without mutating state.
func (r *RSI) Peek(price float64) float64 {
	if r.count < r.window {
		return 0
	}
	gain, loss := split(price - r.prevPrice)
	g, l := r.gain, r.loss
	g.Update(gain)
	l.Update(loss)
	if r.count+1 == r.window+1 {
		g.Update(gain)
		l.Update(loss)
	}
	return relativeStrength(g.Value(), l.Value())
}

// Reset clears the RSI state for reuse.
func (r *RSI) Reset() {
	r.count = 0
	r.prevPrice = 0
	r.current = 0
	r.gain.Reset()
	r.loss.Reset()
}

// Snapshot captures the RSI state.
func (r *RSI) Snapshot() State {
	return State{
		Type:      "RSI",
		Windows:   []int{r.window},
		Count:     r.count,
		PrevPrice: r.prevPrice,
		Current:   r.current,
		Parts:     []State{r.gain.Snapshot(), r.loss.Snapshot()},
	}
}

// Restore loads a state captured from an RSI with the same window.
func (r *RSI) Restore(s State) error {
	if err := s.check("RSI", r.window); err != nil {
		return err
	}
	if len(s.Parts) != 2 {
		return invalidInput("RSI state has %d parts, want 2", len(s.Parts))
	}
	gain, loss := r.gain, r.loss
	if err := gain.Restore(s.Parts[0]); err != nil {
		return err
	}
	if err := loss.Restore(s.Parts[1]); err != nil {
		return err
	}
	r.gain, r.loss = gain, loss
	r.count = s.Count
	r.prevPrice = s.PrevPrice
	r.current = s.Current
	return nil
}

func split(delta float64) (gain, loss float64) {
	if delta > 0 {
		gain = delta
	}
	if delta < 0 {
		loss = -delta
	}
	return gain, loss
}

// relativeStrength maps smoothed gain/loss averages to RSI. A zero average
// loss gives RS = +Inf, which evaluates to exactly 100.
func relativeStrength(avgGain, avgLoss float64) float64 {
	rs := math.Inf(1)
	if avgLoss > 0 {
		rs = avgGain / avgLoss
	}
	return 100 - 100/(1+rs)
}

// CalculateRSI computes the Relative Strength Index of prices using Wilder
// smoothing. The result has len(prices)-window values, each in [0, 100].
func CalculateRSI(prices []float64, window int) ([]float64, error) {
	return CalculateRSISeries(Slice[float64](prices), window)
}

// CalculateRSISeries is CalculateRSI over any Series.
func CalculateRSISeries(s Series, window int) ([]float64, error) {
	if err := checkWindow("window", window); err != nil {
		return nil, err
	}
	n := s.Len()
	if n <= window {
		return nil, notEnoughData("RSI needs more than %d prices, got %d", window, n)
	}

	r := newRSI(window)
	out := make([]float64, 0, n-window)
	for i := 0; i < n; i++ {
		r.Update(s.At(i))
		if r.Ready() {
			out = append(out, r.Value())
		}
	}
	return out, nil
}
