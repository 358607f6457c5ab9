package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	CMS        CMSConfig
	EmailJS    EmailJSConfig
	Resend     ResendConfig
	Slack      SlackConfig
	FAQ        FAQConfig
	S3         S3Config
	RateLimit  RateLimitConfig
	Revalidate RevalidateConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// CMSConfig holds the headless CMS connection used by the catalog reader.
type CMSConfig struct {
	ServiceDomain     string
	APIKey            string
	BaseURL           string // overrides https://{ServiceDomain}.microcms.io when set
	RevalidateSeconds int
	TimeoutSeconds    int
}

// EmailJSConfig holds the EmailJS channel credentials.
type EmailJSConfig struct {
	ServiceID       string
	TemplateAdmin   string
	TemplateConfirm string
	PublicKey       string
	PrivateKey      string
	Endpoint        string
}

// ResendConfig holds the Resend channel credentials.
type ResendConfig struct {
	APIKey   string
	From     string
	To       string
	Endpoint string
}

// SlackConfig holds the chat webhook channel.
type SlackConfig struct {
	WebhookURL string
}

// FAQConfig locates the FAQ content file.
type FAQConfig struct {
	Path string
}

// S3Config holds AWS S3 configuration for the FAQ content file.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "content/")
}

// RateLimitConfig bounds submissions per client address.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// RevalidateConfig guards the on-demand catalog revalidation endpoint.
type RevalidateConfig struct {
	APIKey string
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first when present;
// variables already set in the process win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		CMS: CMSConfig{
			ServiceDomain:     getEnv("MICROCMS_SERVICE_DOMAIN", ""),
			APIKey:            getEnv("MICROCMS_API_KEY", ""),
			BaseURL:           getEnv("MICROCMS_BASE_URL", ""),
			RevalidateSeconds: getEnvAsInt("CATALOG_REVALIDATE_SECONDS", 60),
			TimeoutSeconds:    getEnvAsInt("CMS_TIMEOUT_SECONDS", 10),
		},
		EmailJS: EmailJSConfig{
			ServiceID:       getEnv("EMAILJS_SERVICE_ID", ""),
			TemplateAdmin:   getEnv("EMAILJS_TEMPLATE_ID_ADMIN", ""),
			TemplateConfirm: getEnv("EMAILJS_TEMPLATE_ID_CONFIRM", ""),
			PublicKey:       getEnv("EMAILJS_PUBLIC_KEY", ""),
			PrivateKey:      getEnv("EMAILJS_PRIVATE_KEY", ""),
			Endpoint:        getEnv("EMAILJS_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
		},
		Resend: ResendConfig{
			APIKey:   getEnv("RESEND_API_KEY", ""),
			From:     getEnv("FROM_EMAIL", ""),
			To:       getEnv("TO_EMAIL", ""),
			Endpoint: getEnv("RESEND_ENDPOINT", "https://api.resend.com/emails"),
		},
		Slack: SlackConfig{
			WebhookURL: getEnv("SLACK_WEBHOOK_URL", ""),
		},
		FAQ: FAQConfig{
			Path: getEnv("FAQ_PATH", "data/faq.yaml"),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "ap-northeast-1"),
			Prefix:  getEnv("S3_PREFIX", "content/"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 10),
			Burst:             getEnvAsInt("RATE_LIMIT_BURST", 5),
		},
		Revalidate: RevalidateConfig{
			APIKey: getEnv("REVALIDATE_API_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.CMS.ServiceDomain == "" && c.CMS.BaseURL == "" {
		return fmt.Errorf("CMS service domain is required")
	}

	if c.CMS.APIKey == "" {
		return fmt.Errorf("CMS API key is required")
	}

	if c.CMS.RevalidateSeconds < 0 {
		return fmt.Errorf("catalog revalidate seconds cannot be negative")
	}

	if c.CMS.TimeoutSeconds < 1 {
		return fmt.Errorf("CMS timeout must be at least 1 second")
	}

	if err := c.EmailJS.validate(); err != nil {
		return err
	}

	if err := c.Resend.validate(); err != nil {
		return err
	}

	if c.RateLimit.RequestsPerMinute < 1 {
		return fmt.Errorf("rate limit must allow at least 1 request per minute")
	}

	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// Enabled reports whether any EmailJS setting is present.
func (c *EmailJSConfig) Enabled() bool {
	return c.ServiceID != "" || c.TemplateAdmin != "" || c.TemplateConfirm != ""
}

func (c *EmailJSConfig) validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.ServiceID == "" {
		return fmt.Errorf("EmailJS service ID is required when EmailJS is configured")
	}
	if c.TemplateAdmin == "" || c.TemplateConfirm == "" {
		return fmt.Errorf("EmailJS admin and confirm template IDs are required when EmailJS is configured")
	}
	if c.PrivateKey == "" && c.PublicKey == "" {
		return fmt.Errorf("EmailJS private or public key is required when EmailJS is configured")
	}
	return nil
}

// Enabled reports whether any Resend setting is present.
func (c *ResendConfig) Enabled() bool {
	return c.APIKey != "" || c.From != "" || c.To != ""
}

func (c *ResendConfig) validate() error {
	if !c.Enabled() {
		return nil
	}
	if c.APIKey == "" || c.From == "" || c.To == "" {
		return fmt.Errorf("Resend API key, from and to addresses are all required when Resend is configured")
	}
	return nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Endpoint returns the CMS API base URL.
func (c *CMSConfig) Endpoint() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("https://%s.microcms.io/api/v1", c.ServiceDomain)
}

// RevalidateInterval returns the catalog revalidation window.
func (c *CMSConfig) RevalidateInterval() time.Duration {
	return time.Duration(c.RevalidateSeconds) * time.Second
}

// Timeout returns the CMS request timeout.
func (c *CMSConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
