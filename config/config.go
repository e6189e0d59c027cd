package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the workflow service
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Providers ProvidersConfig `mapstructure:"providers"`
	Storage   StorageConfig   `mapstructure:"storage"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Listen         string        `mapstructure:"listen"`
	Debug          bool          `mapstructure:"debug"`
	DefaultTimeout time.Duration `mapstructure:"default_timeout"`
}

// ProvidersConfig groups every external collaborator credential and endpoint.
type ProvidersConfig struct {
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	Weather WeatherConfig `mapstructure:"weather"`
	Github  GithubConfig  `mapstructure:"github"`
	NewsAPI NewsAPIConfig `mapstructure:"newsapi"`
}

// OpenAIConfig contains chat-completion generator settings. UseMock forces the
// deterministic local generator even when an API key is present.
type OpenAIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	Endpoint        string        `mapstructure:"endpoint"`
	CompletionModel string        `mapstructure:"completion_model"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Temperature     float64       `mapstructure:"temperature"`
	Timeout         time.Duration `mapstructure:"timeout"`
	UseMock         bool          `mapstructure:"use_mock"`
}

// WeatherConfig contains weatherapi.com settings
type WeatherConfig struct {
	APIKey          string `mapstructure:"api_key"`
	Endpoint        string `mapstructure:"endpoint"`
	DefaultLocation string `mapstructure:"default_location"`
}

// GithubConfig contains repository search settings. Token is optional; the
// search endpoint accepts unauthenticated calls at a lower rate limit.
type GithubConfig struct {
	Token    string `mapstructure:"token"`
	Endpoint string `mapstructure:"endpoint"`
}

// NewsAPIConfig contains NewsAPI top-headlines settings
type NewsAPIConfig struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
	Country  string `mapstructure:"country"`
	PageSize int    `mapstructure:"page_size"`
}

// StorageConfig contains storage and persistence settings
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig contains Postgres connection settings
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (p PostgresConfig) Validate() error {
	if strings.TrimSpace(p.URL) != "" {
		return nil
	}
	if strings.TrimSpace(p.Host) == "" {
		return fmt.Errorf("storage.postgres.host required when url is not provided")
	}
	if strings.TrimSpace(p.DBName) == "" {
		return fmt.Errorf("storage.postgres.dbname required when url is not provided")
	}
	return nil
}

// DSN builds a postgres connection string from either the url field or the
// individual host/port/user fields.
func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl)
}

// RedisConfig contains optional provider-cache settings. An empty host
// disables the cache entirely.
type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

func (r RedisConfig) Enabled() bool { return strings.TrimSpace(r.Host) != "" }

func (r RedisConfig) Addr() string {
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return fmt.Sprintf("%s:%s", r.Host, port)
}

// LoadConfig loads config from file, falling back to defaults plus
// PROMPTFLOW_* environment variables when no file is present.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.SetDefault("general.listen", ":10010")
	viper.SetDefault("general.default_timeout", 10*time.Second)
	viper.SetDefault("providers.openai.endpoint", "https://openrouter.ai/api/v1/chat/completions")
	viper.SetDefault("providers.openai.completion_model", "mistralai/mistral-small-3.2-24b-instruct:free")
	viper.SetDefault("providers.openai.max_tokens", 60)
	viper.SetDefault("providers.openai.temperature", 0.7)
	viper.SetDefault("providers.openai.timeout", 10*time.Second)
	viper.SetDefault("providers.weather.endpoint", "http://api.weatherapi.com/v1/current.json")
	viper.SetDefault("providers.weather.default_location", "Delhi,India")
	viper.SetDefault("providers.github.endpoint", "https://api.github.com")
	viper.SetDefault("providers.newsapi.endpoint", "https://newsapi.org/v2/top-headlines")
	viper.SetDefault("providers.newsapi.country", "us")
	viper.SetDefault("providers.newsapi.page_size", 3)
	viper.SetDefault("storage.redis.ttl", 5*time.Minute)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("PROMPTFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		// no file is fine; credentials usually arrive via PROMPTFLOW_* env
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.Storage.Postgres.Validate(); err != nil {
		panic(err)
	}
	return &config
}
