package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// UpstreamConfig contains the realtime upstream API configuration
type UpstreamConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"omitempty,url"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// AuthConfig contains account store and session configuration
type AuthConfig struct {
	AccountsFile      string `yaml:"accountsFile"`
	CookieName        string `yaml:"cookieName"`
	SessionTTLMinutes int    `yaml:"sessionTTLMinutes" validate:"gte=0"`
}

// ContentConfig contains the locations of served content
type ContentConfig struct {
	PublicDir string `yaml:"publicDir"`
	DataDir   string `yaml:"dataDir"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Auth     AuthConfig     `yaml:"auth"`
	Content  ContentConfig  `yaml:"content"`
}
