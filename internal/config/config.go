package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront-app/internal/secret"

	"github.com/joho/godotenv"
)

// Config holds all configuration required by the API process.
// Values come from env; a local .env file is loaded first when present.
// No business logic should depend on raw environment variables.
type Config struct {
	App         AppConfig
	DB          DBConfig
	Redis       RedisConfig
	Auth        AuthConfig
	BigCommerce BigCommerceConfig
}

type AppConfig struct {
	Env  string
	Port int

	// BaseURL is the public URL of this app; the OAuth redirect_uri is derived from it.
	BaseURL string
}

// DBConfig is optional outside production. An empty Host selects the in-memory store.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password secret.String
	Name     string

	// Accepts: disable, require, verify-ca, verify-full
	SSLMode string
}

// RedisConfig is optional. An empty Host disables the store cache.
type RedisConfig struct {
	Host string
	Port int
}

type AuthConfig struct {
	// JWTSecret signs app-issued session tokens (HS512).
	JWTSecret secret.String
}

type BigCommerceConfig struct {
	APIBaseURL   string
	LoginBaseURL string
	ClientID     string

	// ClientSecret is shared with the platform. It authenticates the OAuth exchange
	// and verifies platform-signed load payloads (HS256).
	ClientSecret secret.String

	Timeout time.Duration
}

const (
	defaultAPIBaseURL   = "https://api.bigcommerce.com"
	defaultLoginBaseURL = "https://login.bigcommerce.com"
	defaultTimeout      = 10 * time.Second
)

func Load() (Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	c := Config{}
	var parseErrs []error

	c.App.Env = strings.TrimSpace(os.Getenv("APP_ENV"))
	{
		n, err := mustInt("APP_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.App.Port = n
	}
	c.App.BaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("APP_BASE_URL")), "/")

	c.DB.Host = strings.TrimSpace(os.Getenv("DB_HOST"))
	if c.DB.Host != "" {
		n, err := mustInt("DB_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.DB.Port = n
	}
	c.DB.User = strings.TrimSpace(os.Getenv("DB_USER"))
	c.DB.Password = secret.New(os.Getenv("DB_PASSWORD"))
	c.DB.Name = strings.TrimSpace(os.Getenv("DB_NAME"))
	c.DB.SSLMode = strings.TrimSpace(os.Getenv("DB_SSLMODE"))

	c.Redis.Host = strings.TrimSpace(os.Getenv("REDIS_HOST"))
	if c.Redis.Host != "" {
		n, err := mustInt("REDIS_PORT")
		n, parseErrs = appendParseErr(parseErrs, n, err)
		c.Redis.Port = n
	}

	c.Auth.JWTSecret = secret.New(os.Getenv("JWT_SECRET"))

	c.BigCommerce.APIBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("BC_API_BASE_URL")), "/")
	c.BigCommerce.LoginBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("BC_LOGIN_BASE_URL")), "/")
	c.BigCommerce.ClientID = strings.TrimSpace(os.Getenv("BC_CLIENT_ID"))
	c.BigCommerce.ClientSecret = secret.New(os.Getenv("BC_CLIENT_SECRET"))
	{
		d, err := optionalDuration("BC_TIMEOUT")
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		c.BigCommerce.Timeout = d
	}

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks required values and fills defaults in place.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("APP_PORT must be a valid port, got %d", c.App.Port))
	}
	if c.App.BaseURL == "" {
		errs = append(errs, errors.New("APP_BASE_URL is required"))
	} else if !isAbsoluteURL(c.App.BaseURL) {
		errs = append(errs, fmt.Errorf("APP_BASE_URL must be an absolute URL, got %q", c.App.BaseURL))
	}

	if c.DB.Host == "" {
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_HOST is required in production"))
		}
	} else {
		if c.DB.Port <= 0 || c.DB.Port > 65535 {
			errs = append(errs, fmt.Errorf("DB_PORT must be a valid port, got %d", c.DB.Port))
		}
		if c.DB.User == "" {
			errs = append(errs, errors.New("DB_USER is required"))
		}
		if c.DB.Name == "" {
			errs = append(errs, errors.New("DB_NAME is required"))
		}
		if c.DB.SSLMode == "" {
			if c.IsProduction() {
				errs = append(errs, errors.New("DB_SSLMODE is required in production"))
			} else {
				c.DB.SSLMode = "disable"
			}
		}
		if c.DB.SSLMode != "" && !isValidSSLMode(c.DB.SSLMode) {
			errs = append(errs, fmt.Errorf("DB_SSLMODE must be one of disable, require, verify-ca, verify-full, got %q", c.DB.SSLMode))
		}
	}

	if c.Redis.Host != "" && (c.Redis.Port <= 0 || c.Redis.Port > 65535) {
		errs = append(errs, fmt.Errorf("REDIS_PORT must be a valid port, got %d", c.Redis.Port))
	}

	if c.Auth.JWTSecret.IsEmpty() {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	if c.BigCommerce.ClientID == "" {
		errs = append(errs, errors.New("BC_CLIENT_ID is required"))
	}
	if c.BigCommerce.ClientSecret.IsEmpty() {
		errs = append(errs, errors.New("BC_CLIENT_SECRET is required"))
	}
	if c.BigCommerce.APIBaseURL == "" {
		c.BigCommerce.APIBaseURL = defaultAPIBaseURL
	}
	if c.BigCommerce.LoginBaseURL == "" {
		c.BigCommerce.LoginBaseURL = defaultLoginBaseURL
	}
	if c.BigCommerce.Timeout <= 0 {
		c.BigCommerce.Timeout = defaultTimeout
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func (c Config) HasPostgres() bool { return c.DB.Host != "" }

func (c Config) HasRedis() bool { return c.Redis.Host != "" }

// PostgresDSN embeds the database password. Never log it.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password.Expose(),
		c.DB.Name,
		c.DB.SSLMode,
	)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func mustInt(key string) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func optionalDuration(key string) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration, got %q", key, v)
	}
	return d, nil
}

func appendParseErr(errs []error, n int, err error) (int, []error) {
	if err != nil {
		errs = append(errs, err)
	}
	return n, errs
}

func isAbsoluteURL(v string) bool {
	u, err := url.Parse(v)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func isValidSSLMode(v string) bool {
	switch v {
	case "disable", "require", "verify-ca", "verify-full":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
