package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the gateway.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Auth   AuthConfig
	Demo   DemoConfig
	Upload UploadConfig
	Assets AssetsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines token issuance parameters.
type AuthConfig struct {
	JWTSecret              string
	AccessTokenTTLMinutes  int
	RefreshTokenTTLMinutes int
	BcryptCost             int
}

// DemoConfig seeds the single mock account the gateway authenticates.
type DemoConfig struct {
	UserID   string
	Email    string
	Username string
	Plan     string
	Password string
}

// UploadConfig shapes the canned upload descriptor.
type UploadConfig struct {
	PublicBaseURL string
	LinkTTLHours  int
}

// AssetsConfig selects the static-asset collaborator.
type AssetsConfig struct {
	Mode        string
	Dir         string
	UpstreamURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	mode := getEnv("ASSETS_MODE", "dir")
	if mode != "dir" && mode != "upstream" {
		return nil, fmt.Errorf("invalid ASSETS_MODE %q: want dir or upstream", mode)
	}
	if mode == "upstream" && os.Getenv("ASSETS_UPSTREAM_URL") == "" {
		return nil, fmt.Errorf("ASSETS_MODE=upstream requires ASSETS_UPSTREAM_URL")
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "znapfile-edge-gateway"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:              getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes:  getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			RefreshTokenTTLMinutes: getEnvAsInt("AUTH_REFRESH_TOKEN_TTL_MINUTES", 7*24*60),
			BcryptCost:             getEnvAsInt("AUTH_BCRYPT_COST", 10),
		},
		Demo: DemoConfig{
			UserID:   getEnv("DEMO_USER_ID", "admin-001"),
			Email:    getEnv("DEMO_USER_EMAIL", "admin@znapfile.com"),
			Username: getEnv("DEMO_USER_USERNAME", "admin"),
			Plan:     getEnv("DEMO_USER_PLAN", "max"),
			Password: getEnv("DEMO_USER_PASSWORD", "SecurePass123!"),
		},
		Upload: UploadConfig{
			PublicBaseURL: getEnv("UPLOAD_PUBLIC_BASE_URL", "https://znapfile.com"),
			LinkTTLHours:  getEnvAsInt("UPLOAD_LINK_TTL_HOURS", 24),
		},
		Assets: AssetsConfig{
			Mode:        mode,
			Dir:         getEnv("ASSETS_DIR", "./web/dist"),
			UpstreamURL: os.Getenv("ASSETS_UPSTREAM_URL"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// LinkTTL returns how long minted download links stay valid.
func (u UploadConfig) LinkTTL() time.Duration {
	if u.LinkTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(u.LinkTTLHours) * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
