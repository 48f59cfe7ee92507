package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the bridge. It is constructed
// once at startup and passed by reference into every component; nothing reads
// the environment after Load returns.
type Config struct {
	App          AppConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Slack        SlackConfig
	Jira         JiraConfig
	Flows        FlowsConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
	ShutdownGraceSeconds  int
}

// RedisConfig holds connection values for the correlation store backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// SlackConfig holds chat platform credentials and workspace identity.
type SlackConfig struct {
	BotToken   string
	TeamDomain string
}

// JiraConfig holds tracker API credentials.
type JiraConfig struct {
	BaseURL  string
	Email    string
	APIToken string
}

// FlowsConfig carries the per-domain tracker project keys.
type FlowsConfig struct {
	SupportProjectKey string
	ProductProjectKey string
}

// NotificationConfig holds the optional audit webhook endpoint.
type NotificationConfig struct {
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "issue-bridge"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			ShutdownGraceSeconds:  getEnvAsInt("SHUTDOWN_GRACE_SECONDS", 15),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Slack: SlackConfig{
			BotToken:   os.Getenv("SLACK_BOT_TOKEN"),
			TeamDomain: getEnv("SLACK_TEAM_DOMAIN", "workspace"),
		},
		Jira: JiraConfig{
			BaseURL:  os.Getenv("JIRA_BASE_URL"),
			Email:    os.Getenv("JIRA_EMAIL"),
			APIToken: os.Getenv("JIRA_API_TOKEN"),
		},
		Flows: FlowsConfig{
			SupportProjectKey: getEnv("FLOW_SUPPORT_PROJECT_KEY", "SUP"),
			ProductProjectKey: getEnv("FLOW_PRODUCT_PROJECT_KEY", "PROD"),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
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

// ShutdownGrace returns how long shutdown waits for detached work to drain.
func (a AppConfig) ShutdownGrace() time.Duration {
	if a.ShutdownGraceSeconds <= 0 {
		return 0
	}
	return time.Duration(a.ShutdownGraceSeconds) * time.Second
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
