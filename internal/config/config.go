package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	Server   Server   `mapstructure:"server"`
	AI       AI       `mapstructure:"ai"`
	YouTube  YouTube  `mapstructure:"youtube"`
	Blog     Blog     `mapstructure:"blog"`
	Research Research `mapstructure:"research"`
	Storage  Storage  `mapstructure:"storage"`
	Delivery Delivery `mapstructure:"delivery"`
	Logging  Logging  `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug  bool   `mapstructure:"debug"`
	Editor string `mapstructure:"editor"`
}

// Server holds HTTP server configuration
type Server struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RequestTimeout string   `mapstructure:"request_timeout"`
}

// AI holds AI/LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	ImageModel string `mapstructure:"image_model"`
	Timeout    string `mapstructure:"timeout"`
}

// YouTube holds video catalog provider configuration
type YouTube struct {
	APIKey     string `mapstructure:"api_key"`
	ChannelID  string `mapstructure:"channel_id"`
	MaxResults int    `mapstructure:"max_results"`
}

// Blog holds blog feed provider configuration
type Blog struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// Research holds research/search provider configuration
type Research struct {
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
	Timeout   string `mapstructure:"timeout"`
}

// Storage holds object storage configuration for drafts and images
type Storage struct {
	Endpoint      string `mapstructure:"endpoint"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// Delivery holds email and CRM delivery configuration
type Delivery struct {
	SendGrid SendGridConfig `mapstructure:"sendgrid"`
	CRM      CRMConfig      `mapstructure:"crm"`
}

// SendGridConfig holds review email delivery configuration
type SendGridConfig struct {
	APIKey    string `mapstructure:"api_key"`
	FromEmail string `mapstructure:"from_email"`
	FromName  string `mapstructure:"from_name"`
}

// CRMConfig holds CRM message push configuration
type CRMConfig struct {
	BaseURL string `mapstructure:"base_url"`
	AppID   string `mapstructure:"app_id"`
	APIKey  string `mapstructure:"api_key"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	// Configure viper
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".facet")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	// App defaults
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.editor", "default")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", []string{"*"})
	viper.SetDefault("server.request_timeout", "120s")

	// AI defaults
	viper.SetDefault("ai.gemini.model", "gemini-2.0-flash")
	viper.SetDefault("ai.gemini.image_model", "imagen-3.0-generate-002")
	viper.SetDefault("ai.gemini.timeout", "45s")

	// YouTube defaults
	viper.SetDefault("youtube.max_results", 10)

	// Blog defaults
	viper.SetDefault("blog.timeout", "15s")

	// Research defaults
	viper.SetDefault("research.base_url", "https://api.perplexity.ai")
	viper.SetDefault("research.model", "sonar")
	viper.SetDefault("research.max_tokens", 2000)
	viper.SetDefault("research.timeout", "30s")

	// Storage defaults
	viper.SetDefault("storage.region", "auto")

	// Delivery defaults
	viper.SetDefault("delivery.sendgrid.from_name", "Newsletter Preview")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.pretty", false)
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("youtube.api_key", []string{
		"YOUTUBE_API_KEY",
		"GOOGLE_YOUTUBE_API_KEY",
	})

	bindEnvKeys("youtube.channel_id", []string{
		"YOUTUBE_CHANNEL_ID",
	})

	bindEnvKeys("blog.base_url", []string{
		"BLOG_BASE_URL",
		"WORDPRESS_BASE_URL",
	})

	bindEnvKeys("research.api_key", []string{
		"PERPLEXITY_API_KEY",
		"RESEARCH_API_KEY",
	})

	bindEnvKeys("storage.endpoint", []string{"STORAGE_ENDPOINT", "S3_ENDPOINT"})
	bindEnvKeys("storage.bucket", []string{"STORAGE_BUCKET", "S3_BUCKET"})
	bindEnvKeys("storage.access_key", []string{"STORAGE_ACCESS_KEY", "AWS_ACCESS_KEY_ID"})
	bindEnvKeys("storage.secret_key", []string{"STORAGE_SECRET_KEY", "AWS_SECRET_ACCESS_KEY"})
	bindEnvKeys("storage.public_base_url", []string{"STORAGE_PUBLIC_BASE_URL"})

	bindEnvKeys("delivery.sendgrid.api_key", []string{"SENDGRID_API_KEY"})
	bindEnvKeys("delivery.sendgrid.from_email", []string{"SENDGRID_FROM_EMAIL", "PREVIEW_FROM_EMAIL"})
	bindEnvKeys("delivery.crm.base_url", []string{"CRM_BASE_URL", "ONTRAPORT_BASE_URL"})
	bindEnvKeys("delivery.crm.app_id", []string{"CRM_APP_ID", "ONTRAPORT_APP_ID"})
	bindEnvKeys("delivery.crm.api_key", []string{"CRM_API_KEY", "ONTRAPORT_API_KEY"})

	bindEnvKeys("app.debug", []string{"DEBUG", "FACET_DEBUG"})
	bindEnvKeys("app.editor", []string{"NEWSLETTER_EDITOR"})
	bindEnvKeys("server.port", []string{"PORT"})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// validateConfig ensures configuration values are well formed. Missing
// provider credentials are not fatal here: each adapter reports itself
// unavailable at request time so the rest of the system keeps working.
func validateConfig(config *Config) error {
	var errors []string

	durations := map[string]string{
		"server.request_timeout": config.Server.RequestTimeout,
		"ai.gemini.timeout":      config.AI.Gemini.Timeout,
		"blog.timeout":           config.Blog.Timeout,
		"research.timeout":       config.Research.Timeout,
	}
	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				errors = append(errors, fmt.Sprintf("invalid duration for %s: %s", key, duration))
			}
		}
	}

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid server port: %d", config.Server.Port))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Duration parses a duration string with a fallback default.
func Duration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// Convenience getters for commonly used configuration values
func GetGeminiAPIKey() string  { return Get().AI.Gemini.APIKey }
func GetGeminiModel() string   { return Get().AI.Gemini.Model }
func GetYouTubeAPIKey() string { return Get().YouTube.APIKey }
func IsDebugMode() bool        { return Get().App.Debug }

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
