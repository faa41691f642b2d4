package server

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/karimaz/switchcalc/internal/fees"
)

// LoggingConfig controls the zap logger built by the entrypoint.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FeeScheduleConfig overrides individual fee-default constants. Zero values
// keep the published default, so a config file only needs to list the
// constants that differ in its jurisdiction.
type FeeScheduleConfig struct {
	ProcessingRate        float64 `mapstructure:"processing_rate"`
	ProcessingCapAED      float64 `mapstructure:"processing_cap_aed"`
	ValuationAED          float64 `mapstructure:"valuation_aed"`
	DLDRate               float64 `mapstructure:"dld_rate"`
	DLDFixedAED           float64 `mapstructure:"dld_fixed_aed"`
	TrusteeAED            float64 `mapstructure:"trustee_aed"`
	RegistrationAED       float64 `mapstructure:"registration_aed"`
	ReleaseLetterAED      float64 `mapstructure:"release_letter_aed"`
	LiabilityAED          float64 `mapstructure:"liability_aed"`
	EarlySettlementRate   float64 `mapstructure:"early_settlement_rate"`
	EarlySettlementCapAED float64 `mapstructure:"early_settlement_cap_aed"`
}

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address      string            `mapstructure:"address"`
	MaxBodyBytes int64             `mapstructure:"max_body_bytes"`
	Logging      LoggingConfig     `mapstructure:"logging"`
	Fees         FeeScheduleConfig `mapstructure:"fees"`
}

// DefaultMaxBodyBytes bounds a compare request payload.
const DefaultMaxBodyBytes = 1 << 20

// LoadConfig loads server configuration from an optional file plus
// SWITCHCALC_* environment variables. An empty path returns defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("address", ":8080")
	v.SetDefault("max_body_bytes", DefaultMaxBodyBytes)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetEnvPrefix("SWITCHCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read server config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	return &cfg, nil
}

// FeeSchedule materializes the fee defaults with any configured overrides
// applied on top of the published schedule.
func (c *Config) FeeSchedule() fees.Schedule {
	s := fees.DefaultSchedule()
	applyOverride(&s.ProcessingRate, c.Fees.ProcessingRate)
	applyOverride(&s.ProcessingCapAED, c.Fees.ProcessingCapAED)
	applyOverride(&s.ValuationAED, c.Fees.ValuationAED)
	applyOverride(&s.DLDRate, c.Fees.DLDRate)
	applyOverride(&s.DLDFixedAED, c.Fees.DLDFixedAED)
	applyOverride(&s.TrusteeAED, c.Fees.TrusteeAED)
	applyOverride(&s.RegistrationAED, c.Fees.RegistrationAED)
	applyOverride(&s.ReleaseLetterAED, c.Fees.ReleaseLetterAED)
	applyOverride(&s.LiabilityAED, c.Fees.LiabilityAED)
	applyOverride(&s.EarlySettlementRate, c.Fees.EarlySettlementRate)
	applyOverride(&s.EarlySettlementCapAED, c.Fees.EarlySettlementCapAED)
	return s
}

func applyOverride(dst *decimal.Decimal, value float64) {
	if value != 0 {
		*dst = decimal.NewFromFloat(value)
	}
}
