package indicators

// SMA calculates Simple Moving Average over a rolling window.
// Uses a preallocated circular buffer for zero-allocation hot path.
type SMA struct {
	window  int
	buf     []float64 // preallocated circular buffer
	idx     int       // current write position
	count   int       // total values received
	sum     float64
	current float64
}

// NewSMA creates a new SMA indicator with the given window.
func NewSMA(window int) (*SMA, error) {
	if err := checkWindow("window", window); err != nil {
		return nil, err
	}
	return &SMA{
		window: window,
		buf:    make([]float64, window),
	}, nil
}

func (s *SMA) Name() string { return windowName("SMA", s.window) }

func (s *SMA) Update(price float64) {
	if s.count >= s.window {
		// Subtract the oldest value being overwritten
		s.sum -= s.buf[s.idx]
	}

	s.buf[s.idx] = price
	s.sum += price
	s.idx = (s.idx + 1) % s.window
	s.count++

	if s.count >= s.window {
		s.current = s.sum / float64(s.window)
	}
}

func (s *SMA) Value() float64 { return s.current }
func (s *SMA) Ready() bool    { return s.count >= s.window }

// Peek computes what Value() would be with an additional price without mutating state.
func (s *SMA) Peek(price float64) float64 {
	if s.count+1 < s.window {
		return 0
	}
	if s.count < s.window {
		return (s.sum + price) / float64(s.window)
	}
	// Preview: replace the oldest value (at idx) with new price
	return (s.sum - s.buf[s.idx] + price) / float64(s.window)
}

// Reset clears the SMA state for reuse.
func (s *SMA) Reset() {
	s.idx = 0
	s.count = 0
	s.sum = 0
	s.current = 0
	clear(s.buf)
}

// Snapshot captures the SMA state, including a copy of its buffer.
func (s *SMA) Snapshot() State {
	bufCopy := make([]float64, len(s.buf))
	copy(bufCopy, s.buf)
	return State{
		Type:    "SMA",
		Windows: []int{s.window},
		Buf:     bufCopy,
		Idx:     s.idx,
		Count:   s.count,
		Sum:     s.sum,
		Current: s.current,
	}
}

// Restore loads a state captured from an SMA with the same window.
func (s *SMA) Restore(st State) error {
	if err := st.check("SMA", s.window); err != nil {
		return err
	}
	if len(st.Buf) != s.window || st.Idx < 0 || st.Idx >= s.window {
		return invalidInput("SMA state buffer does not match window %d", s.window)
	}
	copy(s.buf, st.Buf)
	s.idx = st.Idx
	s.count = st.Count
	s.sum = st.Sum
	s.current = st.Current
	return nil
}
