package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manustarter/manustarter/internal/llm/common"

	"github.com/spf13/viper"
)

const (
	envPrefix = "MANUSTARTER"
	appDir    = ".manustarter"
)

// Config holds the application configuration
type Config struct {
	Provider         string        `mapstructure:"provider"`
	APIKey           string        `mapstructure:"api_key"`
	AuthHeader       string        `mapstructure:"auth_header"`
	BaseURL          string        `mapstructure:"base_url"`
	Model            string        `mapstructure:"model"`
	Temperature      float64       `mapstructure:"temperature"`
	MaxTokens        int           `mapstructure:"max_tokens"`
	StructuredOutput bool          `mapstructure:"structured_output"`
	SiteURL          string        `mapstructure:"site_url"`
	SiteName         string        `mapstructure:"site_name"`
	Environment      string        `mapstructure:"environment"`
	Host             string        `mapstructure:"host"`
	Port             int           `mapstructure:"port"`
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
}

// Legacy variable names accepted alongside the MANUSTARTER_ prefixed ones
var legacyEnv = map[string][]string{
	"api_key":         {"OPENROUTER_API_KEY"},
	"allowed_origins": {"ALLOWED_ORIGINS"},
	"allowed_methods": {"ALLOWED_METHODS"},
	"allowed_headers": {"ALLOWED_HEADERS"},
	"host":            {"HOST"},
	"port":            {"PORT"},
	"site_url":        {"SITE_URL"},
	"site_name":       {"SITE_NAME"},
	"environment":     {"ENVIRONMENT"},
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("provider", "openrouter")
	v.SetDefault("api_key", "")
	v.SetDefault("auth_header", "")
	v.SetDefault("base_url", "")
	v.SetDefault("model", "qwen/qwen-2.5-72b-instruct:free")
	v.SetDefault("temperature", 0.3)
	v.SetDefault("max_tokens", 4000)
	v.SetDefault("structured_output", false)
	v.SetDefault("site_url", "http://localhost:3000")
	v.SetDefault("site_name", "Manual Testing AI Agent")
	v.SetDefault("environment", "development")
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 3000)
	v.SetDefault("allowed_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000", "https://manustarter.vercel.app"})
	v.SetDefault("allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("allowed_headers", []string{"*"})
	v.SetDefault("request_timeout", 2*time.Minute)
}

// configDir returns the per-user config directory
func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, appDir), nil
}

// New returns a viper instance wired with defaults, env bindings and the
// config file search path. configFile overrides the search when non-empty.
func New(configFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		_ = v.BindEnv(append([]string{key, GetEnvVarName(key)}, names...)...)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}
	return v
}

// Load reads the config file if one exists and decodes v into a Config
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.AllowedOrigins = splitList(cfg.AllowedOrigins)
	cfg.AllowedMethods = splitList(cfg.AllowedMethods)
	cfg.AllowedHeaders = splitList(cfg.AllowedHeaders)

	return &cfg, nil
}

// splitList flattens comma-separated entries, as env vars arrive as one string
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Addr returns host:port for the HTTP listener
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ProviderConfig maps the LLM settings onto common.ProviderConfig
func (c *Config) ProviderConfig() common.ProviderConfig {
	return common.ProviderConfig{
		Provider:   c.Provider,
		APIKey:     c.APIKey,
		AuthHeader: c.AuthHeader,
		BaseURL:    c.BaseURL,
		Model:      c.Model,
		Timeout:    c.RequestTimeout,
		SiteURL:    c.SiteURL,
		SiteName:   c.SiteName,
	}
}

// GetEnvVarName returns the environment variable name for a config key
func GetEnvVarName(key string) string {
	return envPrefix + "_" + strings.ToUpper(key)
}
