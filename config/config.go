package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds environment driven configuration values.
type Config struct {
	Port               string
	GinMode            string
	AllowedOrigins     []string
	RateLimitPerMinute int

	Database    DatabaseConfig
	AuthService AuthServiceConfig
	Redis       RedisConfig
	Log         LogConfig
}

type DatabaseConfig struct {
	Driver       string
	URL          string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// AuthServiceConfig describes the external identity service.
type AuthServiceConfig struct {
	BaseURL         string
	LoginPath       string
	ValidatePath    string
	UserDetailsPath string
	UsersPath       string
	DeleteUserPath  string
	Timeout         time.Duration
	AdminRole       string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type LogConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "release"),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "*")),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 30),
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			URL:          os.Getenv("DATABASE_URL"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         os.Getenv("DB_PORT"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     os.Getenv("DB_PASSWORD"),
			Name:         getEnv("DB_NAME", "blog"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 5),
		},
		AuthService: AuthServiceConfig{
			BaseURL:         strings.TrimRight(os.Getenv("AUTH_SERVICE_BASE_URL"), "/"),
			LoginPath:       getEnv("AUTH_LOGIN_PATH", "/api/auth/login"),
			ValidatePath:    getEnv("AUTH_VALIDATE_PATH", "/api/auth/validate"),
			UserDetailsPath: getEnv("AUTH_USER_DETAILS_PATH", "/api/users/me"),
			UsersPath:       getEnv("AUTH_USERS_PATH", "/api/users"),
			DeleteUserPath:  getEnv("AUTH_DELETE_USER_PATH", "/api/users/"),
			Timeout:         getDuration("AUTH_TIMEOUT", 10*time.Second),
			AdminRole:       getEnv("AUTH_ADMIN_ROLE", "ROLE_ADMIN"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
			TTL:      getDuration("CACHE_TTL", 5*time.Minute),
		},
		Log: LogConfig{
			Level:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Path:       os.Getenv("LOG_PATH"),
			MaxSizeMB:  getInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getInt("LOG_MAX_AGE_DAYS", 7),
			Compress:   getBool("LOG_COMPRESS", false),
		},
	}

	if cfg.Database.Port == "" {
		cfg.Database.Port = defaultDBPort(cfg.Database.Driver)
	}

	if cfg.AuthService.BaseURL == "" {
		return Config{}, errors.New("AUTH_SERVICE_BASE_URL must be set")
	}
	switch cfg.Database.Driver {
	case "postgres", "mysql":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	return cfg, nil
}

func (c AuthServiceConfig) LoginURL() string {
	return c.BaseURL + c.LoginPath
}

func (c AuthServiceConfig) ValidateURL() string {
	return c.BaseURL + c.ValidatePath
}

func (c AuthServiceConfig) UserDetailsURL() string {
	return c.BaseURL + c.UserDetailsPath
}

func (c AuthServiceConfig) UsersURL() string {
	return c.BaseURL + c.UsersPath
}

// DeleteUserURL appends the path-escaped username to the delete path.
func (c AuthServiceConfig) DeleteUserURL(username string) string {
	return c.BaseURL + c.DeleteUserPath + url.PathEscape(username)
}

func defaultDBPort(driver string) string {
	if driver == "mysql" {
		return "3306"
	}
	return "5432"
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
