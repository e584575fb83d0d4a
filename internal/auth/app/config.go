package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Owner sources for the token endpoint.
const (
	OwnerSourceSubject = "subject" // "sub" claim looked up in the owner registry
	OwnerSourceSession = "session" // header set by an authenticating proxy
)

type Config struct {
	JWTSecret           string        `env:"AUTH_JWT_SECRET"`                 // HMAC secret for assertions
	JWTKeyFile          string        `env:"AUTH_JWT_KEY_FILE"`               // PEM or JWK file, public or private
	JWTKeyPassphrase    string        `env:"AUTH_JWT_KEY_PASSPHRASE"`         // for an encrypted private key
	UseIssuerAsClientID bool          `env:"AUTH_JWT_USE_ISSUER_AS_CLIENT_ID" envDefault:"true"`
	JWTLeeway           time.Duration `env:"AUTH_JWT_LEEWAY" envDefault:"0s"` // clock skew allowed on exp/nbf

	Scopes        string `env:"AUTH_SCOPES" envDefault:"read"` // space or comma separated
	DefaultScopes string `env:"AUTH_DEFAULT_SCOPES"`           // granted when a request names none

	AccessTokenTTL    time.Duration `env:"AUTH_ACCESS_TOKEN_TTL" envDefault:"15m"`
	AccessTokenMaxTTL time.Duration `env:"AUTH_ACCESS_TOKEN_MAX_TTL" envDefault:"1h"`
	ReuseAccessToken  bool          `env:"AUTH_REUSE_ACCESS_TOKEN" envDefault:"true"`

	OwnerSource string `env:"AUTH_OWNER_SOURCE" envDefault:"subject"`
	OwnerHeader string `env:"AUTH_OWNER_HEADER" envDefault:"X-Authenticated-User"`
	ProxySecret string `env:"AUTH_PROXY_SECRET"`

	IntrospectionSecret string `env:"AUTH_INTROSPECTION_SECRET"` // empty disables introspection
	RedisURL            string `env:"AUTH_REDIS_URL"`            // enables the distributed issuance lock

	DatabaseFile         string        `env:"AUTH_DATABASE_FILE" envDefault:"assertgrant.db"`
	Env                  string        `env:"ENV" envDefault:"dev"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                 int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod  time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	TokenRetention       time.Duration `env:"AUTH_TOKEN_RETENTION" envDefault:"24h"` // dead tokens stay introspectable this long
}

// LoadConfig reads the configuration from the environment after loading an
// optional .env file from the working directory.
func LoadConfig() (Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks settings that do not depend on loading anything.
func (c Config) Validate() error {
	var errs []error

	switch {
	case c.JWTSecret == "" && c.JWTKeyFile == "":
		errs = append(errs, errors.New("one of AUTH_JWT_SECRET or AUTH_JWT_KEY_FILE is required"))
	case c.JWTSecret != "" && c.JWTKeyFile != "":
		errs = append(errs, errors.New("AUTH_JWT_SECRET and AUTH_JWT_KEY_FILE are mutually exclusive"))
	}

	switch c.OwnerSource {
	case OwnerSourceSubject:
	case OwnerSourceSession:
		if c.OwnerHeader == "" || c.ProxySecret == "" {
			errs = append(errs, errors.New("session owner source needs AUTH_OWNER_HEADER and AUTH_PROXY_SECRET"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_OWNER_SOURCE %q", c.OwnerSource))
	}

	if len(c.ServerScopes()) == 0 {
		errs = append(errs, errors.New("AUTH_SCOPES must name at least one scope"))
	}

	return errors.Join(errs...)
}

// ServerScopes splits AUTH_SCOPES on spaces and commas.
func (c Config) ServerScopes() []string {
	return splitScopes(c.Scopes)
}

func (c Config) DefaultScopeList() []string {
	return splitScopes(c.DefaultScopes)
}

func splitScopes(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
