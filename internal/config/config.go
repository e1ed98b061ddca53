package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	OCR      OCRConfig      `mapstructure:"ocr"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type StorageConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	BaseURL   string `mapstructure:"base_url"`
}

type OCRConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Languages    string        `mapstructure:"languages"`
}

// Load reads configuration from the environment, with .env as a local
// convenience. Missing .env is not an error; missing required values is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("server.allowed_origins", "ALLOWED_ORIGINS")
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("auth.jwt_secret", "JWT_SECRET")
	viper.BindEnv("storage.endpoint", "R2_ENDPOINT")
	viper.BindEnv("storage.access_key", "R2_ACCESS_KEY")
	viper.BindEnv("storage.secret_key", "R2_SECRET_KEY")
	viper.BindEnv("storage.bucket", "R2_BUCKET_NAME")
	viper.BindEnv("storage.base_url", "R2_PUBLIC_BASE_URL")
	viper.BindEnv("ocr.poll_interval", "OCR_POLL_INTERVAL")
	viper.BindEnv("ocr.languages", "OCR_LANGUAGES")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if raw := viper.GetString("server.allowed_origins"); raw != "" {
		cfg.Server.AllowedOrigins = splitOrigins(raw)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.allowed_origins", "http://localhost:3000,http://localhost:5173")
	viper.SetDefault("ocr.poll_interval", "2s")
	viper.SetDefault("ocr.languages", "nor+eng")
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func validate(cfg *Config) error {
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}
