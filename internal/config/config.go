package config

import (
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development" env-description:"deployment environment name"`
		Port      int    `env:"APP_PORT" env-default:"8080" env-description:"HTTP listen port"`
		TimeZone  string `env:"APP_TIMEZONE" env-default:"Local" env-description:"IANA zone used to group videos by day"`
		LogLevel  string `env:"LOG_LEVEL" env-default:"info" env-description:"debug, info, warn or error"`
		SentryDSN string `env:"SENTRY_DSN" env-description:"Sentry DSN; empty disables error reporting"`

		TrustedProxies []string `env:"APP_TRUSTED_PROXIES" env-separator:"," env-description:"addresses or CIDRs whose X-Forwarded-For is honoured"`
	}
	Database struct {
		Type    string `env:"DB_TYPE" env-default:"sqlite" env-description:"sqlite or postgres"`
		Path    string `env:"DB_PATH" env-default:"./videogrid.db" env-description:"SQLite database file"`
		Host    string `env:"DB_HOST" env-default:"localhost"`
		Port    int    `env:"DB_PORT" env-default:"5432"`
		User    string `env:"DB_USER" env-default:"videogrid"`
		Pass    string `env:"DB_PASSWORD"`
		Name    string `env:"DB_NAME" env-default:"videogrid"`
		SslMode string `env:"DB_SSL_MODE" env-default:"disable"`
	}
	Admin struct {
		User           string        `env:"ADMIN_USER" env-default:"admin"`
		PasswordHash   string        `env:"ADMIN_PASSWORD_HASH" env-description:"bcrypt hash, see videogridctl hash-password"`
		SessionTTL     time.Duration `env:"ADMIN_SESSION_TTL" env-default:"12h"`
		SweepInterval  time.Duration `env:"ADMIN_SESSION_SWEEP" env-default:"5m"`
		CookieSecure   bool          `env:"ADMIN_COOKIE_SECURE" env-default:"false"`
		LoginPerMinute int           `env:"ADMIN_LOGIN_PER_MINUTE" env-default:"5"`
		LoginBurst     int           `env:"ADMIN_LOGIN_BURST" env-default:"5"`
	}
	Telegram struct {
		Token   string `env:"TELEGRAM_TOKEN"`
		Channel string `env:"TELEGRAM_CHANNEL" env-description:"@channel username that receives new videos"`
	}
}

// New reads the configuration from the environment. Variables from a .env
// file in the working directory fill in whatever the environment leaves unset.
func New() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		help, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("failed to read configuration: %w\n%s", err, help)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Type {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database type: %s", c.Database.Type)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return err
	}
	if c.Admin.LoginPerMinute <= 0 {
		return fmt.Errorf("ADMIN_LOGIN_PER_MINUTE must be positive, got %d", c.Admin.LoginPerMinute)
	}
	return nil
}

// Location resolves APP_TIMEZONE. "Local" and the empty string map to time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.App.TimeZone == "" || c.App.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.App.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.TimeZone, err)
	}
	return loc, nil
}

// TrustedProxyPrefixes parses APP_TRUSTED_PROXIES. A bare address becomes a
// single-host prefix.
func (c *Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.App.TrustedProxies))
	for _, raw := range c.App.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid APP_TRUSTED_PROXIES entry %q: %w", raw, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid APP_TRUSTED_PROXIES entry %q: %w", raw, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// DSN returns the postgres connection URL with user and password escaped.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Pass),
		Host:     net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port)),
		Path:     "/" + c.Database.Name,
		RawQuery: url.Values{"sslmode": {c.Database.SslMode}}.Encode(),
	}
	return u.String()
}
