package indicators

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestEngine_SMA20(t *testing.T) {
	engine, err := NewEngine(Config{Type: "SMA", Window: 20})
	require.NoError(t, err)

	// Feed 25 prices at 100.00
	for i := 0; i < 25; i++ {
		results := engine.Update(100)
		require.Len(t, results, 1)
		assert.Equal(t, "SMA_20", results[0].Name)
		assert.Equal(t, i >= 19, results[0].Ready, "price %d", i)
		if results[0].Ready {
			assertClose(t, "SMA_20", results[0].Value, 100.0, 0.001)
		}
	}
}

func TestEngine_MultiIndicator(t *testing.T) {
	engine, err := NewEngine(
		Config{Type: "SMA", Window: 5},
		Config{Type: "ema", Window: 5},
		Config{Type: "RSI", Window: 14},
		Config{Type: "SMMA", Window: 3},
		Config{Type: "MACD", Short: 3, Long: 6, Signal: 2},
	)
	require.NoError(t, err)

	var results []Result
	for i := 0; i < 20; i++ {
		results = engine.Update(float64(100 + i))
		require.Len(t, results, 5)
	}

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
		assert.True(t, r.Ready, r.Name)
		assert.False(t, r.Live, r.Name)
	}
	assert.Equal(t, []string{"SMA_5", "EMA_5", "RSI_14", "SMMA_3", "MACD_3_6_2"}, names)
	assert.Equal(t, 100.0, results[2].Value) // RSI of a rising series
}

func TestEngine_MatchesBatch(t *testing.T) {
	prices := wave(70)
	engine, err := NewEngine(
		Config{Type: "EMA", Window: 10},
		Config{Type: "RSI", Window: 14},
	)
	require.NoError(t, err)

	var ema, rsi []float64
	for _, p := range prices {
		results := engine.Update(p)
		if results[0].Ready {
			ema = append(ema, results[0].Value)
		}
		if results[1].Ready {
			rsi = append(rsi, results[1].Value)
		}
	}

	wantEMA, err := CalculateEMA(prices, 10)
	require.NoError(t, err)
	wantRSI, err := CalculateRSI(prices, 14)
	require.NoError(t, err)
	assert.Equal(t, wantEMA, ema)
	assert.Equal(t, wantRSI, rsi)
}

func TestEngine_Peek(t *testing.T) {
	engine, err := NewEngine(Config{Type: "EMA", Window: 3}, Config{Type: "RSI", Window: 3})
	require.NoError(t, err)
	for _, p := range []float64{10, 11, 12, 11, 13} {
		engine.Update(p)
	}
	before := engine.Snapshot()

	peek := engine.Peek(14)
	require.Len(t, peek, 2)
	for _, r := range peek {
		assert.True(t, r.Live)
	}

	assert.Equal(t, before, engine.Snapshot())

	results := engine.Update(14)
	for i := range results {
		assert.Equal(t, results[i].Value, peek[i].Value)
	}
}

func TestNewEngine_CollectsErrors(t *testing.T) {
	_, err := NewEngine(
		Config{Type: "EMA", Window: 0},
		Config{Type: "RSI", Window: 14},
		Config{Type: "VWAP", Window: 5},
		Config{Type: "MACD", Short: 26, Long: 12, Signal: 9},
	)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.ErrorIs(t, err, ErrInvalidWindow)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "VWAP_5")
}

func TestEngine_SnapshotRestore(t *testing.T) {
	configs := []Config{
		{Type: "SMA", Window: 5},
		{Type: "RSI", Window: 5},
		{Type: "MACD", Short: 3, Long: 6, Signal: 2},
	}
	prices := wave(40)

	engine, err := NewEngine(configs...)
	require.NoError(t, err)
	for _, p := range prices[:25] {
		engine.Update(p)
	}

	// States survive a JSON round trip.
	raw, err := json.Marshal(engine.Snapshot())
	require.NoError(t, err)
	var states []State
	require.NoError(t, json.Unmarshal(raw, &states))

	restored, err := NewEngine(configs...)
	require.NoError(t, err)
	n, err := restored.Restore(states)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, p := range prices[25:] {
		assert.Equal(t, engine.Update(p), restored.Update(p))
	}
}

func TestEngine_Restore_ConfigChanged(t *testing.T) {
	old, err := NewEngine(Config{Type: "EMA", Window: 5}, Config{Type: "RSI", Window: 5})
	require.NoError(t, err)
	for _, p := range wave(10) {
		old.Update(p)
	}

	// EMA_5 kept, RSI_5 removed, SMA_3 added.
	engine, err := NewEngine(Config{Type: "EMA", Window: 5}, Config{Type: "SMA", Window: 3})
	require.NoError(t, err)
	engine.Update(1)

	n, err := engine.Restore(old.Snapshot())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	snap := engine.Snapshot()
	assert.Equal(t, old.Snapshot()[0], snap[0])
	assert.Equal(t, 0, snap[1].Count) // cold
}

func TestEngine_Restore_BadState(t *testing.T) {
	engine, err := NewEngine(Config{Type: "SMA", Window: 3})
	require.NoError(t, err)
	engine.Update(1)

	bad := State{Type: "SMA", Windows: []int{3}, Count: 1, Buf: []float64{1}}
	n, err := engine.Restore([]State{bad})
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 0, engine.Snapshot()[0].Count)
}

func TestEngine_Reload(t *testing.T) {
	engine, err := NewEngine(Config{Type: "EMA", Window: 3}, Config{Type: "RSI", Window: 3})
	require.NoError(t, err)
	for _, p := range []float64{1, 2, 3, 4} {
		engine.Update(p)
	}

	preserved, created, err := engine.Reload(
		Config{Type: "EMA", Window: 3},
		Config{Type: "SMA", Window: 2},
	)
	require.NoError(t, err)
	assert.Equal(t, 1, preserved)
	assert.Equal(t, 1, created)

	results := engine.Update(5)
	require.Len(t, results, 2)
	assert.Equal(t, "EMA_3", results[0].Name)
	assert.Equal(t, 4.0, results[0].Value) // warm: same as CalculateEMA([1..5], 3)
	assert.Equal(t, "SMA_2", results[1].Name)
	assert.False(t, results[1].Ready)
}

func TestEngine_Reload_InvalidKeepsEngine(t *testing.T) {
	engine, err := NewEngine(Config{Type: "EMA", Window: 3})
	require.NoError(t, err)

	_, _, err = engine.Reload(Config{Type: "RSI", Window: 0})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	results := engine.Update(1)
	require.Len(t, results, 1)
	assert.Equal(t, "EMA_3", results[0].Name)
}

func TestNewEngine_RejectsDuplicateNames(t *testing.T) {
	_, err := NewEngine(
		Config{Type: "EMA", Window: 3},
		Config{Type: "ema", Window: 3},
		Config{Type: "RSI", Window: 3},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "duplicate indicator EMA_3")
}

func TestEngine_Reload_DuplicateNames(t *testing.T) {
	engine, err := NewEngine(Config{Type: "EMA", Window: 3})
	require.NoError(t, err)

	_, _, err = engine.Reload(Config{Type: "EMA", Window: 3}, Config{Type: "EMA", Window: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// The engine keeps a single EMA_3 advanced once per price.
	var results []Result
	for _, p := range []float64{1, 2, 3, 4, 5} {
		results = engine.Update(p)
	}
	require.Len(t, results, 1)
	assert.Equal(t, 4.0, results[0].Value)
}

// ────────────────────────────────────────────────────────────
// Compute
// ────────────────────────────────────────────────────────────

func TestCompute(t *testing.T) {
	prices := wave(60)
	out, err := Compute(Slice[float64](prices),
		Config{Type: "RSI", Window: 14},
		Config{Type: "EMA", Window: 20},
		Config{Type: "MACD", Short: 12, Long: 26, Signal: 9},
		Config{Type: "SMA", Window: 10},
	)
	require.NoError(t, err)

	rsi, _ := CalculateRSI(prices, 14)
	ema, _ := CalculateEMA(prices, 20)
	line, signal, hist, _ := CalculateMACD(prices, 12, 26, 9)

	assert.Equal(t, rsi, out["RSI_14"])
	assert.Equal(t, ema, out["EMA_20"])
	assert.Equal(t, line, out["MACD_12_26_9"])
	assert.Equal(t, signal, out["MACD_12_26_9_signal"])
	assert.Equal(t, hist, out["MACD_12_26_9_hist"])
	assert.Len(t, out["SMA_10"], len(prices)-10+1)
	assert.Len(t, out, 6)
}

func TestCompute_NoPartialResult(t *testing.T) {
	prices := wave(10)
	out, err := Compute(Slice[float64](prices),
		Config{Type: "EMA", Window: 5},
		Config{Type: "RSI", Window: 10},
		Config{Type: "SMMA", Window: 11},
	)
	assert.Nil(t, out)
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.ErrorIs(t, e, ErrNotEnoughData)
	}
	assert.Contains(t, errs[0].Error(), "RSI_10")
	assert.Contains(t, errs[1].Error(), "SMMA_11")
}

func TestCompute_RejectsDuplicateNames(t *testing.T) {
	out, err := Compute(Slice[float64](wave(30)),
		Config{Type: "SMA", Window: 5},
		Config{Type: "SMA", Window: 5},
	)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
