package config

import (
	"log"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env holds runtime configuration. Values come from the environment, with an
// optional .env file loaded first for local development.
type Env struct {
	AppAddr string `env:"APP_ADDR" envDefault:":8080"`
	GinMode string `env:"GIN_MODE"`

	DBUser string `env:"DB_USER" envDefault:"root"`
	DBPass string `env:"DB_PASSWORD"`
	DBHost string `env:"DB_HOST" envDefault:"127.0.0.1:3306"`
	DBName string `env:"DB_NAME" envDefault:"uts_ticketing"`

	JWTSecret   string `env:"JWT_SECRET" envDefault:"super-secret-key-change-me"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`

	// Loan / late fee policy.
	LoanDurationDays int   `env:"LOAN_DURATION_DAYS" envDefault:"14"`
	LateFeePerDay    int64 `env:"LATE_FEE_PER_DAY" envDefault:"50"`

	// Payment gateway.
	GatewayBaseURL        string `env:"GATEWAY_BASE_URL"`
	GatewaySecretKey      string `env:"GATEWAY_SECRET_KEY"`
	GatewayPublishableKey string `env:"GATEWAY_PUBLISHABLE_KEY"`
	GatewayWebhookSecret  string `env:"GATEWAY_WEBHOOK_SECRET"`
	GatewayMinAmount      int64  `env:"GATEWAY_MIN_AMOUNT" envDefault:"50"`

	// Used only by the one-shot admin provisioning step.
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@gmail.com"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// LoadEnv reads configuration from .env (when present) and the environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	cfg := Env{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to parse environment: %v", err)
	}

	cfg.AppAddr = strings.TrimSpace(cfg.AppAddr)
	if cfg.AppAddr == "" {
		cfg.AppAddr = ":8080"
	}
	if cfg.LoanDurationDays <= 0 {
		cfg.LoanDurationDays = 14
	}
	if cfg.LateFeePerDay <= 0 {
		cfg.LateFeePerDay = 50
	}

	return cfg
}

// AllowedOrigins splits the CORS origin list, falling back to common local
// frontend ports when unset.
func (e Env) AllowedOrigins() []string {
	raw := strings.TrimSpace(e.CORSAllowedOrigins)
	if raw == "" {
		return []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}
	out := []string{}
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
