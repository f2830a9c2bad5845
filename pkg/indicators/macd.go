package indicators

// MACD calculates Moving Average Convergence Divergence from three EMAs.
// Value() is the histogram; Line() and Signal() expose the other two lines.
type MACD struct {
	short  *EMA
	long   *EMA
	signal *EMA

	line float64
	sig  float64
	hist float64
}

// NewMACD creates a MACD indicator. longWindow must not be shorter than
// shortWindow.
func NewMACD(shortWindow, longWindow, signalWindow int) (*MACD, error) {
	if err := checkMACDWindows(shortWindow, longWindow, signalWindow); err != nil {
		return nil, err
	}
	return &MACD{
		short:  newEMA(shortWindow),
		long:   newEMA(longWindow),
		signal: newEMA(signalWindow),
	}, nil
}

func checkMACDWindows(short, long, signal int) error {
	if err := checkWindow("short window", short); err != nil {
		return err
	}
	if err := checkWindow("long window", long); err != nil {
		return err
	}
	if err := checkWindow("signal window", signal); err != nil {
		return err
	}
	if long < short {
		return invalidWindow("long window %d is shorter than short window %d", long, short)
	}
	return nil
}

func (m *MACD) Name() string {
	return windowName("MACD", m.short.window, m.long.window, m.signal.window)
}

func (m *MACD) Update(price float64) {
	m.short.Update(price)
	m.long.Update(price)
	if !m.long.Ready() {
		return
	}

	m.line = m.short.Value() - m.long.Value()
	m.signal.Update(m.line)
	if m.signal.Ready() {
		m.sig = m.signal.Value()
		m.hist = m.line - m.sig
	}
}

func (m *MACD) Value() float64 { return m.hist }
func (m *MACD) Ready() bool    { return m.signal.Ready() }

// Line returns the short EMA minus the long EMA. It is set as soon as the
// long EMA is ready, before the signal line is.
func (m *MACD) Line() float64 { return m.line }

// Signal returns the EMA of the MACD line.
func (m *MACD) Signal() float64 { return m.sig }

// Histogram returns Line() - Signal().
func (m *MACD) Histogram() float64 { return m.hist }

// Peek computes the histogram value an additional price would give without
// mutating state.
func (m *MACD) Peek(price float64) float64 {
	if m.long.count+1 < m.long.window {
		return 0
	}
	line := m.short.Peek(price) - m.long.Peek(price)
	if m.signal.count+1 < m.signal.window {
		return 0
	}
	return line - m.signal.Peek(line)
}

// Reset clears the MACD state for reuse.
func (m *MACD) Reset() {
	m.short.Reset()
	m.long.Reset()
	m.signal.Reset()
	m.line, m.sig, m.hist = 0, 0, 0
}

// Snapshot captures the MACD state.
func (m *MACD) Snapshot() State {
	return State{
		Type:    "MACD",
		Windows: []int{m.short.window, m.long.window, m.signal.window},
		Count:   m.short.count,
		Current: m.hist,
		Parts:   []State{m.short.Snapshot(), m.long.Snapshot(), m.signal.Snapshot()},
	}
}

// Restore loads a state captured from a MACD with the same windows.
func (m *MACD) Restore(s State) error {
	if err := s.check("MACD", m.short.window, m.long.window, m.signal.window); err != nil {
		return err
	}
	if len(s.Parts) != 3 {
		return invalidInput("MACD state has %d parts, want 3", len(s.Parts))
	}
	short, long, signal := *m.short, *m.long, *m.signal
	for i, e := range []*EMA{&short, &long, &signal} {
		if err := e.Restore(s.Parts[i]); err != nil {
			return err
		}
	}
	*m.short, *m.long, *m.signal = short, long, signal

	m.line, m.sig, m.hist = 0, 0, 0
	if m.long.Ready() {
		m.line = m.short.Value() - m.long.Value()
	}
	if m.signal.Ready() {
		m.sig = m.signal.Value()
		m.hist = m.line - m.sig
	}
	return nil
}

// CalculateMACD computes the MACD line, signal line and histogram of prices.
//
// The short and long EMAs are aligned on the long EMA's first value, the MACD
// line is their difference, and the signal line is the EMA of the MACD line.
// The MACD line is then trimmed from the front to the signal line's length,
// so all three results have len(prices)-longWindow-signalWindow+2 values.
// An error from any of the three EMAs is returned unchanged.
func CalculateMACD(prices []float64, shortWindow, longWindow, signalWindow int) (macd, signal, histogram []float64, err error) {
	return CalculateMACDSeries(Slice[float64](prices), shortWindow, longWindow, signalWindow)
}

// CalculateMACDSeries is CalculateMACD over any Series.
func CalculateMACDSeries(s Series, shortWindow, longWindow, signalWindow int) (macd, signal, histogram []float64, err error) {
	if err := checkMACDWindows(shortWindow, longWindow, signalWindow); err != nil {
		return nil, nil, nil, err
	}

	emaShort, err := CalculateEMASeries(s, shortWindow)
	if err != nil {
		return nil, nil, nil, err
	}
	emaLong, err := CalculateEMASeries(s, longWindow)
	if err != nil {
		return nil, nil, nil, err
	}
	emaShort = emaShort[longWindow-shortWindow:]

	line := make([]float64, len(emaLong))
	for i := range emaLong {
		line[i] = emaShort[i] - emaLong[i]
	}

	signal, err = CalculateEMA(line, signalWindow)
	if err != nil {
		return nil, nil, nil, err
	}
	macd = line[len(line)-len(signal):]

	histogram = make([]float64, len(signal))
	for i := range signal {
		histogram[i] = macd[i] - signal[i]
	}
	return macd, signal, histogram, nil
}
