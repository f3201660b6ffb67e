package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/kv"
	"github.com/AlexMobiCraft/FREESPORT-B2B-sub002/internal/storage"
)

// SMTP configures the outbound mailer. Defaults suit a local MailHog.
type SMTP struct {
	Host          string `default:"localhost"`
	Port          string `default:"1025"`
	User          string
	Pass          string
	TLSMode       string `split_words:"true" default:"none"` // none, tls, starttls
	SkipVerifyTLS bool   `split_words:"true" default:"false"`
	FromName      string `split_words:"true" default:"FREESPORT"`
	From          string `default:"no-reply@freesport.local"`
}

// Remote holds the base URLs of the collaborator services.
type Remote struct {
	CartBaseURL     string `split_words:"true" required:"true"`
	CatalogBaseURL  string `split_words:"true" required:"true"`
	AccountsBaseURL string `split_words:"true" required:"true"`
}

// Config is the full storefront configuration, sourced from environment
// variables (a .env file is loaded for local runs).
type Config struct {
	Addr   string `default:":8080"`
	DBDSN  string `envconfig:"DB_DSN" required:"true"`
	Secure bool   `default:"false"` // secure cookies; on behind TLS

	CookieSecret      string `split_words:"true" required:"true"`
	AdminToken        string `split_words:"true"` // enables the content admin endpoints when set
	SessionCookieName string `split_words:"true" default:"freesport_session"`
	GuestCookieName   string `split_words:"true" default:"freesport_guest"`
	FlashCookieName   string `split_words:"true" default:"freesport_flash"`

	SessionTTL     time.Duration `split_words:"true" default:"720h"`
	SearchDebounce time.Duration `split_words:"true" default:"300ms"`

	Redis  kv.Config
	Remote Remote
	SMTP   SMTP
	Media  storage.Config
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("freesport", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
