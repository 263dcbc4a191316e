package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort            string   `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL         string   `env:"DATABASE_URL,required"`
	AutoMigrate         bool     `env:"AUTO_MIGRATE" envDefault:"false"`
	JWTSecret           string   `env:"JWT_SECRET_KEY"`
	JWTAccessTTLMinutes int      `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"30"`
	CookieSecure        bool     `env:"COOKIE_SECURE" envDefault:"false"`
	CORSOrigins         []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost,http://localhost:3000"`
	RedisAddr           string   `env:"REDIS_ADDR"`
	RedisPassword       string   `env:"REDIS_PASSWORD"`
	RedisDB             int      `env:"REDIS_DB" envDefault:"0"`
	SigninMaxAttempts   int      `env:"SIGNIN_MAX_ATTEMPTS" envDefault:"5"`
	SigninWindowMinutes int      `env:"SIGNIN_WINDOW_MINUTES" envDefault:"15"`
	Currency            string   `env:"PORTFOLIO_CURRENCY" envDefault:"INR"`
	LegacyDependents    bool     `env:"SCORING_LEGACY_DEPENDENTS" envDefault:"false"`
	SMTPHost            string   `env:"SMTP_HOST"`
	SMTPPort            int      `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser            string   `env:"SMTP_USER"`
	SMTPPass            string   `env:"SMTP_PASS"`
	SMTPFrom            string   `env:"SMTP_FROM"`
	SMTPFromName        string   `env:"SMTP_FROM_NAME"`
	SMTPUseTLS          bool     `env:"SMTP_USE_TLS" envDefault:"false"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
