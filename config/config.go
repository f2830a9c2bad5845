package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"equity-indicators/internal/logger"
	"equity-indicators/pkg/indicators"
)

// Params holds the default indicator windows and logging level, loaded from
// environment variables.
type Params struct {
	RSIWindow int
	EMAWindow int

	MACDShort  int
	MACDLong   int
	MACDSignal int

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string
}

// Default returns the conventional windows: RSI 14, EMA 20, MACD 12/26/9.
func Default() Params {
	return Params{
		RSIWindow:  14,
		EMAWindow:  20,
		MACDShort:  12,
		MACDLong:   26,
		MACDSignal: 9,
		LogLevel:   "info",
	}
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Params {
	d := Default()
	return Params{
		RSIWindow:  getEnvInt("INDICATORS_RSI_WINDOW", d.RSIWindow),
		EMAWindow:  getEnvInt("INDICATORS_EMA_WINDOW", d.EMAWindow),
		MACDShort:  getEnvInt("INDICATORS_MACD_SHORT", d.MACDShort),
		MACDLong:   getEnvInt("INDICATORS_MACD_LONG", d.MACDLong),
		MACDSignal: getEnvInt("INDICATORS_MACD_SIGNAL", d.MACDSignal),
		LogLevel:   strings.ToLower(getEnv("INDICATORS_LOG_LEVEL", d.LogLevel)),
	}
}

// Validate checks that every window is usable.
func (p Params) Validate() error {
	for _, w := range []struct {
		name string
		v    int
	}{
		{"RSIWindow", p.RSIWindow},
		{"EMAWindow", p.EMAWindow},
		{"MACDShort", p.MACDShort},
		{"MACDLong", p.MACDLong},
		{"MACDSignal", p.MACDSignal},
	} {
		if w.v < 1 {
			return fmt.Errorf("config: %s must be >= 1, got %d", w.name, w.v)
		}
	}
	if p.MACDLong < p.MACDShort {
		return fmt.Errorf("config: MACDLong (%d) is shorter than MACDShort (%d)", p.MACDLong, p.MACDShort)
	}
	if _, ok := logger.ParseLevel(p.LogLevel); !ok {
		return fmt.Errorf("config: unknown LogLevel %q", p.LogLevel)
	}
	return nil
}

// EngineConfigs returns the engine configs for the configured windows.
func (p Params) EngineConfigs() []indicators.Config {
	return []indicators.Config{
		{Type: "RSI", Window: p.RSIWindow},
		{Type: "EMA", Window: p.EMAWindow},
		{Type: "MACD", Short: p.MACDShort, Long: p.MACDLong, Signal: p.MACDSignal},
	}
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		log.Printf("[config] ignoring invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
