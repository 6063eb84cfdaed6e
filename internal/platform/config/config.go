package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Remote workspace backend
	BackendURL     string        `mapstructure:"BACKEND_URL"`
	BackendTimeout time.Duration `mapstructure:"BACKEND_TIMEOUT"`

	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`

	// Session cookie issued by the backend
	AccessTokenCookieName string `mapstructure:"ACCESS_TOKEN_COOKIE_NAME"`
	AccessTokenSecret     string `mapstructure:"ACCESS_TOKEN_SECRET"`
	AuthEntryURL          string `mapstructure:"AUTH_ENTRY_URL"`

	// Ceilings
	MaxWorkspaces    int `mapstructure:"MAX_WORKSPACES"`
	MaxSharedMembers int `mapstructure:"MAX_SHARED_MEMBERS"`

	// Optional stores; empty disables them
	DatabaseURL           string        `mapstructure:"PGSQL_URL"`
	EnableDBCheck         bool          `mapstructure:"ENABLE_DB_CHECK"`
	RedisURL              string        `mapstructure:"REDIS_URL"`
	WorkspaceListCacheTTL time.Duration `mapstructure:"WORKSPACE_LIST_CACHE_TTL"`

	PosthogAPIKey   string `mapstructure:"POSTHOG_API_KEY"`
	PosthogEndpoint string `mapstructure:"POSTHOG_ENDPOINT"`

	// AIRateLimit is a ulule/limiter formatted rate, e.g. "20-M".
	AIRateLimit string `mapstructure:"AI_RATE_LIMIT"`
}

const (
	defaultPort             = "8080"
	defaultBackendURL       = "http://localhost:5000"
	defaultBackendTimeout   = 30 * time.Second
	defaultCookieName       = "access_token"
	defaultMaxWorkspaces    = 3
	defaultMaxSharedMembers = 5
	defaultListCacheTTL     = time.Minute
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("BACKEND_URL", defaultBackendURL)
	v.SetDefault("BACKEND_TIMEOUT", defaultBackendTimeout.String())
	v.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	v.SetDefault("ACCESS_TOKEN_COOKIE_NAME", defaultCookieName)
	v.SetDefault("ACCESS_TOKEN_SECRET", "")
	v.SetDefault("AUTH_ENTRY_URL", "http://localhost:3000/login")
	v.SetDefault("MAX_WORKSPACES", defaultMaxWorkspaces)
	v.SetDefault("MAX_SHARED_MEMBERS", defaultMaxSharedMembers)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("WORKSPACE_LIST_CACHE_TTL", defaultListCacheTTL.String())
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "")
	v.SetDefault("AI_RATE_LIMIT", "20-M")

	// Environment variables override .env values, which override the defaults.
	v.AutomaticEnv()

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Port:                  v.GetString("PORT"),
		IsProduction:          v.GetBool("IS_PRODUCTION"),
		BackendURL:            v.GetString("BACKEND_URL"),
		FrontendBaseURL:       v.GetString("FRONTEND_BASE_URL"),
		AccessTokenCookieName: v.GetString("ACCESS_TOKEN_COOKIE_NAME"),
		AccessTokenSecret:     v.GetString("ACCESS_TOKEN_SECRET"),
		AuthEntryURL:          v.GetString("AUTH_ENTRY_URL"),
		MaxWorkspaces:         v.GetInt("MAX_WORKSPACES"),
		MaxSharedMembers:      v.GetInt("MAX_SHARED_MEMBERS"),
		DatabaseURL:           v.GetString("PGSQL_URL"),
		EnableDBCheck:         v.GetBool("ENABLE_DB_CHECK"),
		RedisURL:              v.GetString("REDIS_URL"),
		PosthogAPIKey:         v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:       v.GetString("POSTHOG_ENDPOINT"),
		AIRateLimit:           v.GetString("AI_RATE_LIMIT"),
	}
	cfg.BackendTimeout = durationOrDefault(v.GetString("BACKEND_TIMEOUT"), "BACKEND_TIMEOUT", defaultBackendTimeout)
	cfg.WorkspaceListCacheTTL = durationOrDefault(v.GetString("WORKSPACE_LIST_CACHE_TTL"), "WORKSPACE_LIST_CACHE_TTL", defaultListCacheTTL)

	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = defaultBackendURL
		log.Printf("Warning: BACKEND_URL not set. Defaulting to %s\n", cfg.BackendURL)
	}
	if cfg.AccessTokenCookieName == "" {
		cfg.AccessTokenCookieName = defaultCookieName
	}
	if cfg.MaxWorkspaces <= 0 {
		log.Printf("Warning: Invalid MAX_WORKSPACES (%d). Defaulting to %d.\n", cfg.MaxWorkspaces, defaultMaxWorkspaces)
		cfg.MaxWorkspaces = defaultMaxWorkspaces
	}
	if cfg.MaxSharedMembers <= 0 {
		log.Printf("Warning: Invalid MAX_SHARED_MEMBERS (%d). Defaulting to %d.\n", cfg.MaxSharedMembers, defaultMaxSharedMembers)
		cfg.MaxSharedMembers = defaultMaxSharedMembers
	}
	if cfg.AccessTokenSecret == "" {
		log.Println("Warning: ACCESS_TOKEN_SECRET not set. Each session cookie is confirmed with the backend before it is trusted.")
	}
	return cfg
}

func durationOrDefault(raw, key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
