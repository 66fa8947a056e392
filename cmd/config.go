package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Port          int           `mapstructure:"port" validate:"min=1,max=65535"`
	UploadDir     string        `mapstructure:"upload-dir" validate:"required"`
	MaxUploadSize int           `mapstructure:"max-upload-size" validate:"gt=0"`
	CORSOrigins   []string      `mapstructure:"cors-origins"`
	HTTPTimeout   time.Duration `mapstructure:"http-timeout" validate:"gt=0"`

	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Adzuna  AdzunaConfig  `mapstructure:"adzuna"`
	JSearch JSearchConfig `mapstructure:"jsearch"`
}

type GeminiConfig struct {
	APIKey       string  `mapstructure:"api-key"`
	APIKeyFile   string  `mapstructure:"api-key-file"`
	Model        string  `mapstructure:"model" validate:"required"`
	Temperature  float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxLogLength int     `mapstructure:"max-log-length" validate:"gte=0"`
}

type AdzunaConfig struct {
	AppID      string `mapstructure:"app-id"`
	AppKey     string `mapstructure:"app-key"`
	Country    string `mapstructure:"country" validate:"required,len=2"`
	Where      string `mapstructure:"where" validate:"required"`
	APIURL     string `mapstructure:"api-url" validate:"omitempty,url"`
	MaxResults int    `mapstructure:"max-results" validate:"gt=0"`
}

type JSearchConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Country    string `mapstructure:"country" validate:"required,len=2"`
	Region     string `mapstructure:"region" validate:"required"`
	APIURL     string `mapstructure:"api-url" validate:"omitempty,url"`
	MaxResults int    `mapstructure:"max-results" validate:"gt=0"`
}

// envBindings maps config keys onto the environment variables that set them.
var envBindings = map[string]string{
	"port":                 "PORT",
	"upload-dir":           "UPLOAD_DIR",
	"cors-origins":         "CORS_ORIGINS",
	"gemini.api-key":       "GEMINI_API_KEY",
	"gemini.api-key-file":  "GEMINI_API_KEY_FILE",
	"gemini.model":         "GEMINI_MODEL",
	"adzuna.app-id":        "ADZUNA_APP_ID",
	"adzuna.app-key":       "ADZUNA_APP_KEY",
	"adzuna.country":       "ADZUNA_COUNTRY",
	"jsearch.api-key":      "JSEARCH_API_KEY",
	"jsearch.api-key-file": "JSEARCH_API_KEY_FILE",
}

func bindEnv() {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}
}

func setDefaults() {
	viper.SetDefault("port", 5000)
	viper.SetDefault("upload-dir", "uploads")
	viper.SetDefault("max-upload-size", 10<<20)
	viper.SetDefault("cors-origins", []string{"http://localhost:3000", "https://careerup.vercel.app", "https://*.vercel.app"})
	viper.SetDefault("http-timeout", 10*time.Second)

	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.temperature", 0.3)
	viper.SetDefault("gemini.max-log-length", 200)

	viper.SetDefault("adzuna.country", "in")
	viper.SetDefault("adzuna.where", "india")
	viper.SetDefault("adzuna.max-results", 15)

	viper.SetDefault("jsearch.country", "in")
	viper.SetDefault("jsearch.region", "India")
	viper.SetDefault("jsearch.max-results", 10)
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks ranges and formats. Missing credentials are not errors,
// they disable the matching service.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
