package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Dialogflow DialogflowConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	WebDir         string   `mapstructure:"web_dir"`
}

// DialogflowConfig holds Dialogflow CX agent configuration
type DialogflowConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	Location        string `mapstructure:"location"`
	AgentID         string `mapstructure:"agent_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
	LanguageCode    string `mapstructure:"language_code"`
	MaxProducts     int    `mapstructure:"max_products"`
	// Endpoint overrides the regional API endpoint; used by tests.
	Endpoint string `mapstructure:"endpoint"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/storechat/")

	// Environment variable settings
	v.SetEnvPrefix("STORECHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.web_dir", "./web")

	// Dialogflow defaults. The empty defaults register the keys with viper
	// so environment-only values survive Unmarshal.
	v.SetDefault("dialogflow.project_id", "")
	v.SetDefault("dialogflow.agent_id", "")
	v.SetDefault("dialogflow.credentials_file", "")
	v.SetDefault("dialogflow.endpoint", "")
	v.SetDefault("dialogflow.location", "global")
	v.SetDefault("dialogflow.language_code", "en")
	v.SetDefault("dialogflow.max_products", 5)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Dialogflow.ProjectID == "" {
		return fmt.Errorf("Dialogflow project ID is required (set STORECHAT_DIALOGFLOW_PROJECT_ID)")
	}

	if config.Dialogflow.AgentID == "" {
		return fmt.Errorf("Dialogflow agent ID is required (set STORECHAT_DIALOGFLOW_AGENT_ID)")
	}

	if config.Dialogflow.MaxProducts < 1 {
		return fmt.Errorf("dialogflow max_products must be positive, got: %d", config.Dialogflow.MaxProducts)
	}

	return nil
}
