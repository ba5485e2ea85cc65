package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Backend selects where records and identities live.
type Backend string

const (
	// BackendHosted talks to the hosted backend service over HTTPS.
	BackendHosted Backend = "hosted"
	// BackendPostgres reads and writes a PostgreSQL database directly and
	// signs users in with Google.
	BackendPostgres Backend = "postgres"
)

type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	PublicBaseURL   string        `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	Backend         Backend       `env:"BACKEND" envDefault:"hosted"`
	SessionSecret   string        `env:"SESSION_SECRET,required,notEmpty"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SecureCookies   bool          `env:"SECURE_COOKIES" envDefault:"false"`
	AllowOrigins    []string      `env:"ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
	LogstashTCPAddr string        `env:"LOGSTASH_TCP_ADDR"`
	LoginRateLimit  float64       `env:"LOGIN_RATE_LIMIT" envDefault:"5"`

	HostedBaseURL     string        `env:"HOSTED_BASE_URL"`
	HostedAuthURL     string        `env:"HOSTED_AUTH_URL"`
	HostedProjectKey  string        `env:"HOSTED_PROJECT_KEY"`
	HostedHTTPTimeout time.Duration `env:"HOSTED_HTTP_TIMEOUT" envDefault:"10s"`

	DatabaseURL    string `env:"DATABASE_URL"`
	GoogleAudience string `env:"GOOGLE_AUDIENCE"`
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`

	MinIOEndpoint     string `env:"MINIO_ENDPOINT"`
	MinIOAccessKey    string `env:"MINIO_ACCESS_KEY"`
	MinIOSecretKey    string `env:"MINIO_SECRET_KEY"`
	MinIOUseSSL       bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	MinIOBucketAvatar string `env:"MINIO_BUCKET_AVATARS" envDefault:"ecotravel-avatars"`
	MinIOPublicURL    string `env:"MINIO_PUBLIC_URL"`
	AvatarMaxBytes    int64  `env:"AVATAR_MAX_BYTES" envDefault:"2097152"`
	FFMPEGPath        string `env:"FFMPEG_PATH" envDefault:"ffmpeg"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
	AgencyInbox  string `env:"AGENCY_INBOX"`
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}
	return Parse()
}

// Parse reads the configuration from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.AllowOrigins = splitAndTrim(cfg.AllowOrigins)
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendHosted:
		if strings.TrimSpace(c.HostedBaseURL) == "" {
			return errors.New("missing env: HOSTED_BASE_URL")
		}
		if strings.TrimSpace(c.HostedProjectKey) == "" {
			return errors.New("missing env: HOSTED_PROJECT_KEY")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("missing env: DATABASE_URL")
		}
		if strings.TrimSpace(c.GoogleAudience) == "" {
			return errors.New("missing env: GOOGLE_AUDIENCE")
		}
	default:
		return fmt.Errorf("unknown BACKEND %q", c.Backend)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	return nil
}

// AuthURL is where login and logout redirects point in hosted mode. It
// defaults to the backend base URL.
func (c Config) AuthURL() string {
	if strings.TrimSpace(c.HostedAuthURL) != "" {
		return strings.TrimRight(c.HostedAuthURL, "/")
	}
	return strings.TrimRight(c.HostedBaseURL, "/")
}

func (c Config) ObjectStorageEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOAccessKey != "" && c.MinIOSecretKey != ""
}

func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPPort != "" && c.SMTPFrom != "" && c.AgencyInbox != ""
}

func splitAndTrim(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
