package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/visionflow/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic   AnthropicConfig   `yaml:"anthropic" mapstructure:"anthropic"`
	Orchestrate OrchestrateConfig `yaml:"orchestrate" mapstructure:"orchestrate"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Store       store.Config      `yaml:"store" mapstructure:"store"`
	Fetch       FetchConfig       `yaml:"fetch" mapstructure:"fetch"`
	Retry       RetryConfig       `yaml:"retry" mapstructure:"retry"`
	Inspection  InspectionConfig  `yaml:"inspection" mapstructure:"inspection"`
	Label       LabelConfig       `yaml:"label" mapstructure:"label"`
	SeedsPath   string            `yaml:"seeds_path" mapstructure:"seeds_path"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds vision model API settings.
type AnthropicConfig struct {
	Key       string  `yaml:"key" mapstructure:"key"`
	Model     string  `yaml:"model" mapstructure:"model"`
	MaxTokens int64   `yaml:"max_tokens" mapstructure:"max_tokens"`
	RPS       float64 `yaml:"rps" mapstructure:"rps"`
}

// OrchestrateConfig holds watsonx Orchestrate relay settings.
type OrchestrateConfig struct {
	Key      string `yaml:"key" mapstructure:"key"`
	TokenURL string `yaml:"token_url" mapstructure:"token_url"`
	RunsURL  string `yaml:"runs_url" mapstructure:"runs_url"`
}

// ServerConfig holds the listen ports for the two services.
type ServerConfig struct {
	ProcurementPort int `yaml:"procurement_port" mapstructure:"procurement_port"`
	SupplychainPort int `yaml:"supplychain_port" mapstructure:"supplychain_port"`
}

// FetchConfig configures image retrieval.
type FetchConfig struct {
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RPS         float64 `yaml:"rps" mapstructure:"rps"`
}

// RetryConfig configures rate-limit retry behavior on model calls.
type RetryConfig struct {
	MaxAttempts        int `yaml:"max_attempts" mapstructure:"max_attempts"`
	InitialBackoffSecs int `yaml:"initial_backoff_secs" mapstructure:"initial_backoff_secs"`
}

// InspectionConfig holds box inspection thresholds.
type InspectionConfig struct {
	TempMin    float64 `yaml:"temp_min" mapstructure:"temp_min"`
	TempMax    float64 `yaml:"temp_max" mapstructure:"temp_max"`
	BatchLimit int     `yaml:"batch_limit" mapstructure:"batch_limit"`
}

// LabelConfig holds VAS label verification thresholds.
type LabelConfig struct {
	AestheticMin  float64 `yaml:"aesthetic_min" mapstructure:"aesthetic_min"`
	ConfidenceMin float64 `yaml:"confidence_min" mapstructure:"confidence_min"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	// ExperimentalBindStruct matches viper >= 1.21 default behavior, where
	// Unmarshal binds env vars for keys without defaults.
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("VISIONFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "memory")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.procurement_port", 8000)
	v.SetDefault("server.supplychain_port", 8001)
	v.SetDefault("anthropic.model", "claude-sonnet-4-5-20250929")
	v.SetDefault("anthropic.max_tokens", 2048)
	v.SetDefault("anthropic.rps", 2.0)
	v.SetDefault("fetch.timeout_secs", 30)
	v.SetDefault("fetch.rps", 5.0)
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.initial_backoff_secs", 1)
	v.SetDefault("inspection.temp_min", 15.0)
	v.SetDefault("inspection.temp_max", 25.0)
	v.SetDefault("inspection.batch_limit", 4)
	v.SetDefault("label.aesthetic_min", 0.9)
	v.SetDefault("label.confidence_min", 0.7)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for a service before it starts.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.ProcurementPort <= 0 {
		problems = append(problems, "server.procurement_port must be > 0")
	}
	if c.Server.SupplychainPort <= 0 {
		problems = append(problems, "server.supplychain_port must be > 0")
	}
	if c.Retry.MaxAttempts < 1 {
		problems = append(problems, "retry.max_attempts must be >= 1")
	}
	if c.Inspection.TempMin >= c.Inspection.TempMax {
		problems = append(problems, "inspection.temp_min must be below inspection.temp_max")
	}
	if c.Inspection.BatchLimit < 1 {
		problems = append(problems, "inspection.batch_limit must be >= 1")
	}
	if c.Label.AestheticMin < 0 || c.Label.AestheticMin > 1 {
		problems = append(problems, "label.aesthetic_min must be in [0, 1]")
	}
	if c.Label.ConfidenceMin < 0 || c.Label.ConfidenceMin > 1 {
		problems = append(problems, "label.confidence_min must be in [0, 1]")
	}

	if len(problems) > 0 {
		return eris.New("config: " + strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
