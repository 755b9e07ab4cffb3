package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration. An empty
// path falls back to config.yml in the working directory; a missing file is
// not an error and leaves every default in place.
func LoadAppConfig(path string) error {
	var cfg AppConfig
	if path == "" {
		path = "config.yml"
		if _, err := os.Stat(path); err != nil {
			applyDefaults(&cfg)
			Config = cfg
			return nil
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}
	applyDefaults(&cfg)
	Config = cfg
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = "https://api-v3.amtraker.com/v3"
	}
	if cfg.Upstream.TimeoutMS == 0 {
		cfg.Upstream.TimeoutMS = 25000
	}
	if cfg.Auth.AccountsFile == "" {
		cfg.Auth.AccountsFile = "accounts.json"
	}
	if cfg.Auth.CookieName == "" {
		cfg.Auth.CookieName = "amtrak_session"
	}
	if cfg.Auth.SessionTTLMinutes == 0 {
		cfg.Auth.SessionTTLMinutes = 8 * 60
	}
	if cfg.Content.PublicDir == "" {
		cfg.Content.PublicDir = "public"
	}
	if cfg.Content.DataDir == "" {
		cfg.Content.DataDir = "data"
	}
}
