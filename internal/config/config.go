package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the portfolio site.
type Config struct {
	AppEnv  string
	AppPort string

	EmailJS EmailJS

	DatabasePath       string
	SessionTTL         time.Duration
	AnalyticsRetention time.Duration

	AdminUsername string
	AdminPassword string
}

// EmailJS identifies the account, service and template messages are relayed through.
type EmailJS struct {
	Endpoint    string
	ServiceID   string
	TemplateID  string
	PublicKey   string
	AccessToken string
	// Timeout bounds a single send. Zero means no timeout.
	Timeout time.Duration
}

// IsDevelopment reports whether the site runs with development defaults.
func (c Config) IsDevelopment() bool {
	return c.AppEnv == "" || c.AppEnv == "development"
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PORTFOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("emailjs.endpoint", "https://api.emailjs.com")
	v.SetDefault("emailjs.service_id", "service_epfrhjz")
	v.SetDefault("emailjs.template_id", "template_16ok1do")
	v.SetDefault("emailjs.public_key", "WO6jJaEuLIOCsGULq")
	v.SetDefault("emailjs.access_token", "")
	v.SetDefault("emailjs.timeout", "0s")
	v.SetDefault("database.path", "portfolio.db")
	v.SetDefault("session.ttl", "2h")
	v.SetDefault("analytics.retention", "8760h")

	durations := map[string]time.Duration{}
	for _, key := range []string{"emailjs.timeout", "session.ttl", "analytics.retention"} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", key, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("invalid %s: must not be negative", key)
		}
		durations[key] = d
	}

	cfg := Config{
		AppEnv:  strings.ToLower(v.GetString("app.env")),
		AppPort: v.GetString("app.port"),
		EmailJS: EmailJS{
			Endpoint:    strings.TrimRight(v.GetString("emailjs.endpoint"), "/"),
			ServiceID:   v.GetString("emailjs.service_id"),
			TemplateID:  v.GetString("emailjs.template_id"),
			PublicKey:   v.GetString("emailjs.public_key"),
			AccessToken: v.GetString("emailjs.access_token"),
			Timeout:     durations["emailjs.timeout"],
		},
		DatabasePath:       v.GetString("database.path"),
		SessionTTL:         durations["session.ttl"],
		AnalyticsRetention: durations["analytics.retention"],
		AdminUsername:      v.GetString("admin.username"),
		AdminPassword:      v.GetString("admin.password"),
	}

	// Hosting platforms usually hand out the port as plain PORT.
	if port := os.Getenv("PORT"); port != "" && os.Getenv("PORTFOLIO_APP_PORT") == "" {
		cfg.AppPort = port
	}

	if cfg.EmailJS.ServiceID == "" || cfg.EmailJS.TemplateID == "" || cfg.EmailJS.PublicKey == "" {
		return Config{}, fmt.Errorf("emailjs service id, template id and public key must be provided")
	}

	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		if !cfg.IsDevelopment() {
			return Config{}, fmt.Errorf("admin credentials must be provided outside development")
		}
		if cfg.AdminUsername == "" {
			cfg.AdminUsername = "admin"
		}
		if cfg.AdminPassword == "" {
			cfg.AdminPassword = "admin123"
		}
	}

	return cfg, nil
}
