package indicators

// SMMA calculates Smoothed Moving Average (Wilder-style smoothing).
// First value is SMA(window), then SMMA = (prev*(window-1) + price) / window.
type SMMA struct {
	window  int
	count   int
	sum     float64
	current float64
}

// NewSMMA creates a new SMMA indicator with the given window.
func NewSMMA(window int) (*SMMA, error) {
	if err := checkWindow("window", window); err != nil {
		return nil, err
	}
	return &SMMA{window: window}, nil
}

func (s *SMMA) Name() string { return windowName("SMMA", s.window) }

func (s *SMMA) Update(price float64) {
	s.count++

	if s.count <= s.window {
		// Accumulate for initial SMA seed
		s.sum += price
		if s.count == s.window {
			s.current = s.sum / float64(s.window)
		}
		return
	}

	s.current = s.next(price)
}

func (s *SMMA) next(price float64) float64 {
	return (float64(s.current*float64(s.window-1)) + price) / float64(s.window)
}

func (s *SMMA) Value() float64 { return s.current }
func (s *SMMA) Ready() bool    { return s.count >= s.window }

// Peek computes what Value() would be with an additional price without mutating state.
func (s *SMMA) Peek(price float64) float64 {
	switch {
	case s.count+1 < s.window:
		return 0
	case s.count+1 == s.window:
		return (s.sum + price) / float64(s.window)
	}
	return s.next(price)
}

// Reset clears the SMMA state for reuse.
func (s *SMMA) Reset() {
	s.count = 0
	s.sum = 0
	s.current = 0
}

// Snapshot captures the SMMA state.
func (s *SMMA) Snapshot() State {
	return State{
		Type:    "SMMA",
		Windows: []int{s.window},
		Count:   s.count,
		Sum:     s.sum,
		Current: s.current,
	}
}

// Restore loads a state captured from an SMMA with the same window.
func (s *SMMA) Restore(st State) error {
	if err := st.check("SMMA", s.window); err != nil {
		return err
	}
	s.count = st.Count
	s.sum = st.Sum
	s.current = st.Current
	return nil
}
