package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// defaultJWTSecret is the development-only placeholder. Production refuses to
// start while it is in effect.
const defaultJWTSecret = "dev-secret-change-me"

// Rates holds the frozen financial constants passed into the simulator.
// Loaded once at startup; mutation after start is undefined.
type Rates struct {
	// SaleCostRatePercent is the default sale cost as a percentage of the
	// sale price (brokerage and transfer costs). Callers may override per
	// request.
	SaleCostRatePercent float64 `yaml:"sale_cost_rate_percent"`

	// Capital gains scalars (譲渡所得税). Long-term applies from the fifth
	// holding year.
	LongTermGainsPercent  float64 `yaml:"long_term_gains_percent"`
	ShortTermGainsPercent float64 `yaml:"short_term_gains_percent"`

	// BuildingUnitAssessedPrice is the assessed construction price in
	// yen per square metre used by the LTV denominator. Zero means no
	// assessment is available and LTV falls back to the purchase price.
	BuildingUnitAssessedPrice float64 `yaml:"building_unit_assessed_price"`

	// IRR solver limits.
	IRRMaxIterations int     `yaml:"irr_max_iterations"`
	IRRToleranceYen  float64 `yaml:"irr_tolerance_yen"`

	// StatutoryLifeYears maps building structure to its legal useful life,
	// used when the request omits depreciation years.
	StatutoryLifeYears map[string]int `yaml:"statutory_life_years"`
}

// Config holds application configuration
type Config struct {
	Port        int
	DevMode     bool
	LogLevel    string
	StrictInput bool
	RatesFile   string
	APIKey      string
	JWTSecret   string
	Rates       Rates
}

// DefaultRates returns the built-in financial constants. The YAML rates file
// overrides these field by field.
func DefaultRates() Rates {
	return Rates{
		SaleCostRatePercent:       3.0,
		LongTermGainsPercent:      20.315,
		ShortTermGainsPercent:     39.63,
		BuildingUnitAssessedPrice: 0,
		IRRMaxIterations:          200,
		IRRToleranceYen:           1.0,
		StatutoryLifeYears: map[string]int{
			"wood":  22,
			"steel": 34,
			"rc":    47,
			"src":   47,
			"other": 47,
		},
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnvAsInt("PORT", 8080),
		DevMode:     getEnvAsBool("DEV_MODE", false),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		StrictInput: getEnvAsBool("STRICT_INPUT", false),
		RatesFile:   getEnv("RATES_FILE", ""),
		APIKey:      getEnv("API_KEY", ""),
		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		Rates:       DefaultRates(),
	}

	// Environment overrides for individual rate values
	cfg.Rates.SaleCostRatePercent = getEnvAsFloat("SALE_COST_RATE", cfg.Rates.SaleCostRatePercent)
	cfg.Rates.LongTermGainsPercent = getEnvAsFloat("LONG_TERM_GAINS_RATE", cfg.Rates.LongTermGainsPercent)
	cfg.Rates.ShortTermGainsPercent = getEnvAsFloat("SHORT_TERM_GAINS_RATE", cfg.Rates.ShortTermGainsPercent)
	cfg.Rates.BuildingUnitAssessedPrice = getEnvAsFloat("BUILDING_UNIT_ASSESSED_PRICE", cfg.Rates.BuildingUnitAssessedPrice)
	cfg.Rates.IRRMaxIterations = getEnvAsInt("IRR_MAX_ITERATIONS", cfg.Rates.IRRMaxIterations)

	if cfg.RatesFile != "" {
		if err := loadRatesFile(cfg.RatesFile, &cfg.Rates); err != nil {
			return nil, fmt.Errorf("loading rates file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration can run safely. Production mode
// refuses placeholder secrets.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be 1-65535, got %d", c.Port)
	}

	if !c.DevMode {
		if c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set to a non-default value in production")
		}
	}

	if c.Rates.IRRMaxIterations < 1 {
		return fmt.Errorf("IRR_MAX_ITERATIONS must be >= 1")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
