package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "BTC-USD", cfg.Book.Symbol)

	min, err := cfg.Book.MinAmountDecimal()
	require.NoError(t, err)
	assert.Equal(t, "100", min.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MATCHBOOK_SERVER_PORT", "9090")
	t.Setenv("MATCHBOOK_LOG_LEVEL", "debug")
	t.Setenv("MATCHBOOK_BOOK_SYMBOL", "ETH-USD")
	t.Setenv("MATCHBOOK_BOOK_MIN_AMOUNT", "0.001")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "ETH-USD", cfg.Book.Symbol)

	min, err := cfg.Book.MinAmountDecimal()
	require.NoError(t, err)
	assert.Equal(t, "0.001", min.String())
}

func TestLoad_RejectsBadLogLevel(t *testing.T) {
	t.Setenv("MATCHBOOK_LOG_LEVEL", "loud")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsBadMinAmount(t *testing.T) {
	t.Setenv("MATCHBOOK_BOOK_MIN_AMOUNT", "lots")

	_, err := Load()
	assert.Error(t, err)
}

func TestMinAmountDecimal_RejectsNegative(t *testing.T) {
	b := BookConfig{Symbol: "BTC-USD", MinAmount: "-1"}

	_, err := b.MinAmountDecimal()
	assert.Error(t, err)
}
