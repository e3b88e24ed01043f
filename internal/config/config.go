// Package config loads engine configuration from a YAML file, ATS_ environment
// variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonathan/resume-ats/internal/llm"
)

const (
	// FileName is the config file looked up in the working directory.
	FileName = "ats-engine"
	// EnvPrefix prefixes every environment override, e.g. ATS_SERVER_PORT.
	EnvPrefix = "ATS"
)

// Config is the full engine configuration.
type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Oracle   OracleConfig   `mapstructure:"oracle"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	Rank     RankConfig     `mapstructure:"rank"`
}

// LogConfig selects the logger encoding and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// OracleConfig controls the optional LLM parser.
type OracleConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Provider  string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	APIKey    string        `mapstructure:"api_key" validate:"required_if=Enabled true"`
	ModelTier string        `mapstructure:"model_tier" validate:"omitempty,oneof=lite standard advanced"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// DatabaseConfig points at the job requirement store.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Port      int     `mapstructure:"port" validate:"min=1,max=65535"`
	RateLimit float64 `mapstructure:"rate_limit" validate:"gt=0"`
	Burst     int     `mapstructure:"burst" validate:"min=1"`
}

// RankConfig configures batch ranking.
type RankConfig struct {
	Workers int `mapstructure:"workers" validate:"min=1,max=64"`
}

// SetDefaults registers every key with its default so environment overrides
// are visible to Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.json", false)
	v.SetDefault("log.debug", false)
	v.SetDefault("oracle.enabled", false)
	v.SetDefault("oracle.provider", string(llm.ProviderGemini))
	v.SetDefault("oracle.api_key", "")
	v.SetDefault("oracle.model_tier", string(llm.TierStandard))
	v.SetDefault("oracle.timeout", 30*time.Second)
	v.SetDefault("database.url", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 5.0)
	v.SetDefault("server.burst", 10)
	v.SetDefault("rank.workers", 4)
}

// Load reads configuration into v and returns the validated result. An empty
// path searches the working directory for ats-engine.yaml and tolerates its
// absence; an explicit path must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("oracle.api_key", "ATS_ORACLE_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding oracle api key: %w", err)
	}
	if err := v.BindEnv("database.url", "ATS_DATABASE_URL", "DATABASE_URL"); err != nil {
		return nil, fmt.Errorf("binding database url: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct constraints on the configuration.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range fieldErrs {
		out.Problems = append(out.Problems, describe(fe))
	}
	return out
}

// Tier returns the configured oracle model tier.
func (o OracleConfig) Tier() (llm.ModelTier, error) {
	return llm.ParseTier(o.ModelTier)
}

// LLMConfig returns the provider configuration for the oracle client.
func (o OracleConfig) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if o.Provider != "" {
		cfg.Provider = llm.Provider(o.Provider)
	}
	return cfg
}

// LoadDotEnv loads a .env file into the process environment. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required_if":
		return fmt.Sprintf("%s is required when the oracle is enabled", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fmt.Sprint(fe.Value()))
	default:
		return fmt.Sprintf("%s failed %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value())
	}
}
