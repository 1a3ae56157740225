// Package config loads application configuration and initializes logging.
package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	SERP      SERPConfig      `yaml:"serp" mapstructure:"serp"`
	Wikipedia WikipediaConfig `yaml:"wikipedia" mapstructure:"wikipedia"`
	Source    SourceConfig    `yaml:"source" mapstructure:"source"`
	Research  ResearchConfig  `yaml:"research" mapstructure:"research"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// SERPConfig holds search-engine API settings.
type SERPConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// WikipediaConfig holds Wikipedia API settings.
type WikipediaConfig struct {
	BaseURL       string  `yaml:"base_url" mapstructure:"base_url"`
	UserAgent     string  `yaml:"user_agent" mapstructure:"user_agent"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
}

// SourceConfig configures per-source lookup behavior. The disambiguation
// suffixes steer encyclopedia lookups for names that mean more than one
// thing ("Apple", "Shell"); SuffixFile optionally overrides the built-in
// table with a YAML mapping of name to suffix.
type SourceConfig struct {
	TimeoutSecs int               `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Suffixes    map[string]string `yaml:"suffixes" mapstructure:"suffixes"`
	SuffixFile  string            `yaml:"suffix_file" mapstructure:"suffix_file"`
	Vocabulary  []string          `yaml:"vocabulary" mapstructure:"vocabulary"`
	NewsEnabled bool              `yaml:"news_enabled" mapstructure:"news_enabled"`
}

// ResearchConfig configures batch research behavior.
type ResearchConfig struct {
	MaxConcurrentEntities int `yaml:"max_concurrent_entities" mapstructure:"max_concurrent_entities"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultSuffixes is the built-in name disambiguation table for entities
// whose bare name resolves to the wrong encyclopedia page.
func DefaultSuffixes() map[string]string {
	return map[string]string{
		"Apple":     " Inc. technology company",
		"Microsoft": " Corporation software company",
		"Google":    " technology company",
		"Amazon":    " company Jeff Bezos",
		"Tesla":     " electric vehicle company Elon Musk",
		"Shell":     " oil company",
		"Target":    " retail corporation",
		"Orange":    " telecommunications company",
		"Disney":    " entertainment company",
		"Delta":     " airline company",
		"General":   " Electric company",
		"Ford":      " Motor Company",
		"Nike":      " sportswear company",
		"Uber":      " ride-sharing company",
		"Lyft":      " ride-sharing company",
		"Oracle":    " software company",
		"Intel":     " semiconductor company",
		"Coca-Cola": " beverage company",
		"OpenAI":    " AI research company",
		"Stripe":    " payment processing company",
	}
}

// DefaultVocabulary is the built-in industry term list scanned against
// encyclopedia summaries.
func DefaultVocabulary() []string {
	return []string{
		"technology", "software", "artificial intelligence", "AI",
		"machine learning", "finance", "fintech", "healthcare", "biotech",
		"automotive", "retail", "media", "telecommunications", "e-commerce",
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("STARTUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "startups.db")
	v.SetDefault("serp.base_url", "https://serpapi.com")
	v.SetDefault("serp.key", "demo")
	v.SetDefault("wikipedia.base_url", "https://en.wikipedia.org/w/api.php")
	v.SetDefault("wikipedia.user_agent", "startup-research/1.0")
	v.SetDefault("wikipedia.rate_per_second", 5)
	v.SetDefault("source.timeout_secs", 10)
	v.SetDefault("source.news_enabled", true)
	v.SetDefault("research.max_concurrent_entities", 5)
	v.SetDefault("server.port", 8000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

	if len(cfg.Source.Suffixes) == 0 {
		cfg.Source.Suffixes = DefaultSuffixes()
	}
	if len(cfg.Source.Vocabulary) == 0 {
		cfg.Source.Vocabulary = DefaultVocabulary()
	}
	if cfg.Source.SuffixFile != "" {
		overrides, err := loadSuffixFile(cfg.Source.SuffixFile)
		if err != nil {
			return nil, err
		}
		for name, suffix := range overrides {
			cfg.Source.Suffixes[name] = suffix
		}
	}

	return &cfg, nil
}

// loadSuffixFile reads a YAML name-to-suffix mapping.
func loadSuffixFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read suffix file %s", path)
	}
	var m map[string]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrapf(err, "config: parse suffix file %s", path)
	}
	return m, nil
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
