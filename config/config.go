// Package config loads process configuration from the environment. The
// deployment mode is an explicit enumerated value injected at startup; it is
// never inferred from the machine's identity.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DeployEnv is the deployment mode.
type DeployEnv string

const (
	// EnvProd selects the production cookie policy and database.
	EnvProd DeployEnv = "prod"
	// EnvDev is everything that is not production.
	EnvDev DeployEnv = "dev"
)

// UnmarshalText implements encoding.TextUnmarshaler for DeployEnv.
func (e *DeployEnv) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "prod", "dev":
		*e = DeployEnv(v)
		return nil
	default:
		return fmt.Errorf("invalid DeployEnv: %q (valid options: prod, dev)", v)
	}
}

// MySQLConfig describes the relational storage connection.
type MySQLConfig struct {
	User     string `env:"USER,required"`
	Password string `env:"PASSWORD,required"`
	Host     string `env:"HOST"     envDefault:"127.0.0.1"`
	Port     int    `env:"PORT"     envDefault:"3306"`
	Database string `env:"DATABASE,required"`
}

// DSN renders the go-sql-driver connection string.
func (c MySQLConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", c.User, c.Password, c.Host, c.Port, c.Database)
}

// GoogleConfig carries the OAuth client credentials.
type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID,required"`
	ClientSecret string `env:"CLIENT_SECRET,required"`
	RedirectURI  string `env:"REDIRECT_URI,required"`
}

// Config is the process-wide configuration, immutable after Load.
type Config struct {
	Env DeployEnv `env:"APP_ENV" envDefault:"dev"`

	// HTTPAddr is the listen address for the API server.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8000"`

	// JWTSecret signs every session token.
	JWTSecret string `env:"JWT_SECRET,required"`

	// CookieDomain scopes the session cookies in production.
	CookieDomain string `env:"COOKIE_DOMAIN" envDefault:"kokomiu.net"`

	MySQL  MySQLConfig  `envPrefix:"MYSQL_"`
	Google GoogleConfig `envPrefix:"GOOGLE_"`

	// OpenAIAPIKey authenticates the AI file-storage collaborator.
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments configure the environment.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}
