package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode    string
	Port       string
	LogLevel   string
	Database   DatabaseConfig
	JWT        JWTConfig
	Cookie     CookieConfig
	Mail       MailConfig
	Moderation ModerationConfig
	Workflow   WorkflowConfig
	Redis      RedisConfig
	Scheduler  SchedulerConfig
	SuperAdmin SuperAdminConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string // postgres or mysql
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// MailConfig holds SMTP configuration for the rejection notifier
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether an SMTP host is configured
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

// ModerationConfig holds red flag and ban thresholds
type ModerationConfig struct {
	RedFlagThreshold int
	BanDays          int
}

// WorkflowConfig holds job request workflow switches
type WorkflowConfig struct {
	// AllowRetransition lets approve/reject run on requests that are no
	// longer pending.
	AllowRetransition bool
}

// RedisConfig holds the optional rate limiter store
type RedisConfig struct {
	URL string
}

// SchedulerConfig holds cron specs for background jobs
type SchedulerConfig struct {
	JobCompletionSpec string
	TokenCleanupSpec  string
}

// SuperAdminConfig holds the seeded admin account
type SuperAdminConfig struct {
	Email    string
	Password string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Missing .env is fine in production
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	config, err := FromEnv()
	if err != nil {
		return nil, err
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", config.AppMode)
	return config, nil
}

// FromEnv builds a Config from the process environment only
func FromEnv() (*Config, error) {
	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	database, err := loadDatabaseConfig(appMode)
	if err != nil {
		return nil, err
	}

	moderation, err := loadModerationConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		AppMode:    appMode,
		Port:       getEnv("PORT", "3000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		Database:   database,
		JWT:        loadJWTConfig(appMode),
		Cookie:     loadCookieConfig(appMode),
		Mail:       loadMailConfig(),
		Moderation: moderation,
		Workflow: WorkflowConfig{
			AllowRetransition: getEnvBool("ALLOW_RETRANSITION", false),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Scheduler: SchedulerConfig{
			JobCompletionSpec: getEnv("JOB_COMPLETION_CRON", "@daily"),
			TokenCleanupSpec:  getEnv("TOKEN_CLEANUP_CRON", "@every 6h"),
		},
		SuperAdmin: SuperAdminConfig{
			Email:    getEnv("SUPERADMIN_EMAIL", ""),
			Password: getEnv("SUPERADMIN_PASSWORD", ""),
		},
	}, nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) (DatabaseConfig, error) {
	prefix := modePrefix(mode)

	driver := strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	defaultPort := "5432"
	switch driver {
	case "postgres":
	case "mysql":
		defaultPort = "3306"
	default:
		return DatabaseConfig{}, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'postgres' or 'mysql')", driver)
	}

	sslDefault := "disable"
	if mode == "prod" {
		sslDefault = "require"
	}

	return DatabaseConfig{
		Driver:   driver,
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", defaultPort),
		User:     getEnv(prefix+"DB_USER", "postgres"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "eventhire"),
		SSLMode:  getEnv(prefix+"DB_SSLMODE", sslDefault),
	}, nil
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := modePrefix(mode)

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  getEnvInt("ACCESS_TOKEN_MINUTES", 15),
		RefreshTokenDays: getEnvInt("REFRESH_TOKEN_DAYS", 7),
	}
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	return CookieConfig{
		Secure:   getEnvBool(modePrefix(mode)+"COOKIE_SECURE", false),
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadMailConfig() MailConfig {
	return MailConfig{
		Host:     getEnv("MAIL_HOST", ""),
		Port:     getEnvInt("MAIL_PORT", 587),
		Username: getEnv("MAIL_USERNAME", ""),
		Password: getEnv("MAIL_PASSWORD", ""),
		From:     getEnv("MAIL_FROM", "no-reply@eventhire.app"),
	}
}

func loadModerationConfig() (ModerationConfig, error) {
	cfg := ModerationConfig{
		RedFlagThreshold: getEnvInt("RED_FLAG_THRESHOLD", 3),
		BanDays:          getEnvInt("BAN_DAYS", 30),
	}
	if cfg.RedFlagThreshold < 1 {
		return cfg, fmt.Errorf("invalid RED_FLAG_THRESHOLD: %d (must be >= 1)", cfg.RedFlagThreshold)
	}
	if cfg.BanDays < 1 {
		return cfg, fmt.Errorf("invalid BAN_DAYS: %d (must be >= 1)", cfg.BanDays)
	}
	return cfg, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://eventhire.app"
	}
	return origins
}
