package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h2plan/h2plan/pkg/logging"
	"github.com/h2plan/h2plan/pkg/scenario"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, logging.InfoLevel, cfg.Level())
	assert.Equal(t, "highs", cfg.Settings.Solver.Name)
}

func TestLoadConfig_OverlaysDefaults(t *testing.T) {
	body := `
log_level: debug
settings:
  carbon:
    price_usd_per_ton: 50
  prices:
    enabled: true
    start: 1
    stop: 3
    step: 0.5
    hubs: [alpha]
`
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, logging.DebugLevel, cfg.Level())
	assert.Equal(t, 50.0, cfg.Settings.Carbon.PriceUSDPerTon)
	assert.True(t, cfg.Settings.Prices.Enabled)
	assert.Equal(t, []string{"alpha"}, cfg.Settings.Prices.Hubs)

	// Keys the file does not mention keep their defaults.
	assert.Equal(t, 20, cfg.Settings.Finance.PeriodYears)
	assert.Equal(t, 8.9, cfg.Settings.Carbon.BaselineSMRRate)
	assert.Equal(t, 0.01, cfg.Settings.Prices.ProbeDemand)
	assert.Equal(t, scenario.TieBreakLowest, cfg.Settings.Prices.TieBreak)
	assert.Equal(t, "highs", cfg.Settings.Solver.Name)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseConfig_BadYAML(t *testing.T) {
	_, err := ParseConfig([]byte("settings: ["))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestParseConfig_InvalidSettings(t *testing.T) {
	_, err := ParseConfig([]byte("settings:\n  finance:\n    interest_rate: -1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InterestRate")
}

func TestParseConfig_BadLogLevel(t *testing.T) {
	_, err := ParseConfig([]byte("log_level: chatty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogLevel")
}
