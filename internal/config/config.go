package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultGNewsURL = "https://gnews.io/api/v4/top-headlines"

type OllamaConfig struct {
	BaseURL string        `mapstructure:"base_url" json:"base_url"`
	Model   string        `mapstructure:"model" json:"model"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

type GNewsConfig struct {
	URL         string        `mapstructure:"url" json:"url"`
	APIKey      string        `mapstructure:"api_key" json:"-"`
	Language    string        `mapstructure:"language" json:"language"`
	MaxArticles int           `mapstructure:"max_articles" json:"max_articles"`
	Timeout     time.Duration `mapstructure:"timeout" json:"timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
	Output string `mapstructure:"output" json:"output"`
}

type Config struct {
	Server struct {
		Host           string   `mapstructure:"host" json:"host"`
		Port           int      `mapstructure:"port" json:"port"`
		Subpath        string   `mapstructure:"subpath" json:"subpath"`
		AllowedOrigins []string `mapstructure:"allowed_origins" json:"allowed_origins"`
	} `mapstructure:"server"`
	Ollama  OllamaConfig  `mapstructure:"ollama"`
	GNews   GNewsConfig   `mapstructure:"gnews"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// env names each key is read from; they override the config file
var envKeys = map[string]string{
	"server.host":            "SERVER_HOST",
	"server.port":            "SERVER_PORT",
	"server.subpath":         "SERVER_SUBPATH",
	"server.allowed_origins": "CORS_ALLOWED_ORIGINS",
	"ollama.base_url":        "OLLAMA_BASE_URL",
	"ollama.model":           "OLLAMA_MODEL",
	"ollama.timeout":         "OLLAMA_TIMEOUT",
	"gnews.url":              "GNEWS_BASE_URL",
	"gnews.api_key":          "GNEWS_API_KEY",
	"gnews.timeout":          "GNEWS_TIMEOUT",
	"logging.level":          "LOG_LEVEL",
	"logging.format":         "LOG_FORMAT",
	"logging.output":         "LOG_OUTPUT",
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig builds the process config once: defaults, then the optional
// JSON file at path, then .env and the environment.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		_ = godotenv.Load()

		v := viper.New()
		setDefaults(v)
		for key, env := range envKeys {
			if err := v.BindEnv(key, env); err != nil {
				cfgErr = fmt.Errorf("failed to bind %s: %w", env, err)
				return
			}
		}

		if path != "" {
			v.SetConfigFile(path)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				cfgErr = fmt.Errorf("invalid config format: %w", err)
				return
			}
		}

		var c Config
		if err := v.Unmarshal(&c); err != nil {
			cfgErr = fmt.Errorf("failed to decode config: %w", err)
			return
		}
		cfg = &c
	})
	return cfg, cfgErr
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.subpath", "")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.model", "")
	v.SetDefault("ollama.timeout", 120*time.Second)

	v.SetDefault("gnews.url", DefaultGNewsURL)
	v.SetDefault("gnews.api_key", "")
	v.SetDefault("gnews.language", "en")
	v.SetDefault("gnews.max_articles", 5)
	v.SetDefault("gnews.timeout", 30*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
