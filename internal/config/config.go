package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	OIDC struct {
		Issuer       string
		ClientID     string
		ClientSecret string
		RedirectURL  string
	}

	// LegacySuperAdmins are emails granted super_admin when no profile row
	// exists. Kept for accounts that predate the profiles table.
	LegacySuperAdmins []string

	SessionLifetime time.Duration
}

// defaultLegacySuperAdmins is the historical allow-list carried over from the
// first deployment. Overridable via OMAHUB_LEGACY_SUPER_ADMINS.
var defaultLegacySuperAdmins = []string{
	"eloka.agu@icloud.com",
	"shannons.jackson@gmail.com",
}

// Load reads config from environment (OMAHUB_ prefix) and optional omahub.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("OMAHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("omahub")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("session.lifetime", "720h")
	v.SetDefault("legacy_super_admins", strings.Join(defaultLegacySuperAdmins, ","))

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.OIDC.Issuer = v.GetString("oidc.issuer")
	cfg.OIDC.ClientID = v.GetString("oidc.client_id")
	cfg.OIDC.ClientSecret = v.GetString("oidc.client_secret")
	cfg.OIDC.RedirectURL = v.GetString("oidc.redirect_url")

	for _, email := range strings.Split(v.GetString("legacy_super_admins"), ",") {
		if email = strings.TrimSpace(email); email != "" {
			cfg.LegacySuperAdmins = append(cfg.LegacySuperAdmins, email)
		}
	}

	lifetime, err := time.ParseDuration(v.GetString("session.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid OMAHUB_SESSION_LIFETIME: %w", err)
	}
	cfg.SessionLifetime = lifetime

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("OMAHUB_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("OMAHUB_DB_DSN is required")
	}
	if cfg.OIDC.Issuer == "" {
		return nil, fmt.Errorf("OMAHUB_OIDC_ISSUER is required")
	}
	if cfg.OIDC.ClientID == "" {
		return nil, fmt.Errorf("OMAHUB_OIDC_CLIENT_ID is required")
	}
	if cfg.OIDC.ClientSecret == "" {
		return nil, fmt.Errorf("OMAHUB_OIDC_CLIENT_SECRET is required")
	}
	if cfg.OIDC.RedirectURL == "" {
		return nil, fmt.Errorf("OMAHUB_OIDC_REDIRECT_URL is required")
	}

	return cfg, nil
}
