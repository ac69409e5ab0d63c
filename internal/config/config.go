package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	DiagnosticAPIKey         string `env:"DIAGNOSTIC_API_KEY,required"`
	DiagnosticBaseURL        string `env:"DIAGNOSTIC_BASE_URL" envDefault:"https://api.skinly-diagnostics.com/v1"`
	DiagnosticTimeoutSeconds int    `env:"DIAGNOSTIC_TIMEOUT_SECONDS" envDefault:"120"`
	DiagnosticLocale         string `env:"DIAGNOSTIC_LOCALE" envDefault:"en"`

	StorageBaseURL      string `env:"STORAGE_BASE_URL,required"`
	StorageServiceKey   string `env:"STORAGE_SERVICE_KEY,required"`
	SignedURLTTLSeconds int    `env:"SIGNED_URL_TTL_SECONDS" envDefault:"600"`

	MonthlyAnalysisLimit int `env:"MONTHLY_ANALYSIS_LIMIT" envDefault:"1000"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret            string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes  int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`
	JWTRefreshTTLMinutes int    `env:"JWT_REFRESH_TTL_MINUTES" envDefault:"43200"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
