package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
// It is built once at startup and handed to constructors; nothing mutates it afterwards.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	AI        AIConfig        `mapstructure:"ai"`
	Database  DatabaseConfig  `mapstructure:"database"`
	S3        S3Config        `mapstructure:"s3"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Address        string        `mapstructure:"address"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

type LogConfig struct {
	Mode string `mapstructure:"mode"` // "dev" or "prod"
}

// AIConfig configures the generative-AI provider used by the meal-plan and photo-critique routes.
type AIConfig struct {
	Provider        string        `mapstructure:"provider"` // "openai" or "gemini"
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	MealPlanModel   string        `mapstructure:"meal_plan_model"`
	VisionModel     string        `mapstructure:"vision_model"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	VisionMaxTokens int           `mapstructure:"vision_max_tokens"`
	Temperature     float64       `mapstructure:"temperature"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig is optional. An empty URI keeps every log/history route in mock mode.
type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// Enabled reports whether a MongoDB backend was configured.
func (d DatabaseConfig) Enabled() bool {
	return strings.TrimSpace(d.URI) != ""
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
}

// Enabled reports whether progress photos should be written to object storage.
func (s S3Config) Enabled() bool {
	return strings.TrimSpace(s.BucketName) != ""
}

type TelemetryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (Config, error) {
	var config Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, ai.api_key -> AI_API_KEY
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	// Provider keys are commonly exported under their vendor names.
	_ = v.BindEnv("ai.api_key", "AI_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, err
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, err
	}
	config.AI.Provider = strings.ToLower(strings.TrimSpace(config.AI.Provider))
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	// Must outlive ai.timeout so the vision call can finish writing its response.
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.max_upload_bytes", 10<<20)

	v.SetDefault("log.mode", "dev")

	v.SetDefault("ai.provider", "openai")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.meal_plan_model", "gpt-3.5-turbo")
	v.SetDefault("ai.vision_model", "gpt-4o")
	v.SetDefault("ai.max_tokens", 800)
	v.SetDefault("ai.vision_max_tokens", 600)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.timeout", "60s")

	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "pocket_coach")

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.presign_expiry", "15m")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "pocket-coach-api")
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.insecure", false)
	v.SetDefault("telemetry.sample_ratio", 0.1)
}
