package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DEV_MODE", "true")
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("STRICT_INPUT", "")
	t.Setenv("API_KEY", "")
	t.Setenv("SALE_COST_RATE", "")
	t.Setenv("IRR_MAX_ITERATIONS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.StrictInput)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, 3.0, cfg.Rates.SaleCostRatePercent)
	assert.Equal(t, 20.315, cfg.Rates.LongTermGainsPercent)
	assert.Equal(t, 39.63, cfg.Rates.ShortTermGainsPercent)
	assert.Equal(t, 200, cfg.Rates.IRRMaxIterations)
	assert.Equal(t, 22, cfg.Rates.StatutoryLifeYears["wood"])
	assert.Equal(t, 47, cfg.Rates.StatutoryLifeYears["rc"])
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DEV_MODE", "true")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STRICT_INPUT", "true")
	t.Setenv("SALE_COST_RATE", "4.5")
	t.Setenv("IRR_MAX_ITERATIONS", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.StrictInput)
	assert.Equal(t, 4.5, cfg.Rates.SaleCostRatePercent)
	assert.Equal(t, 500, cfg.Rates.IRRMaxIterations)
}

func TestLoad_ProductionRefusesDefaultSecret(t *testing.T) {
	t.Setenv("DEV_MODE", "false")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_ProductionAcceptsRealSecret(t *testing.T) {
	t.Setenv("DEV_MODE", "false")
	t.Setenv("JWT_SECRET", "a-real-secret-value")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.DevMode)
}

func TestValidate_PortRange(t *testing.T) {
	cfg := &Config{Port: 0, DevMode: true, Rates: DefaultRates()}
	assert.Error(t, cfg.Validate())

	cfg.Port = 70000
	assert.Error(t, cfg.Validate())

	cfg.Port = 8080
	assert.NoError(t, cfg.Validate())
}

func TestLoadRatesFile_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	content := []byte("sale_cost_rate_percent: 5.0\nirr_max_iterations: 300\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	rates := DefaultRates()
	require.NoError(t, loadRatesFile(path, &rates))

	// Overridden fields
	assert.Equal(t, 5.0, rates.SaleCostRatePercent)
	assert.Equal(t, 300, rates.IRRMaxIterations)

	// Untouched fields keep their defaults
	assert.Equal(t, 20.315, rates.LongTermGainsPercent)
	assert.Equal(t, 22, rates.StatutoryLifeYears["wood"])
}

func TestLoadRatesFile_Missing(t *testing.T) {
	rates := DefaultRates()
	assert.Error(t, loadRatesFile("/nonexistent/rates.yaml", &rates))
}

func TestLoadRatesFile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sale_cost_rate_percent: [oops"), 0o644))

	rates := DefaultRates()
	assert.Error(t, loadRatesFile(path, &rates))
}
