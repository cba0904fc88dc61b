package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config is the static process configuration. Everything here is read once
// at startup; nothing is reloaded at runtime.
type Config struct {
	BotToken     string  `envconfig:"BOT_TOKEN" required:"true"`
	DatabasePath string  `envconfig:"DATABASE_PATH" default:"earthvpn.db"`
	AdminIDs     []int64 `envconfig:"ADMIN_IDS"`
	CatalogPath  string  `envconfig:"CATALOG_PATH"`

	RateLimit       int `envconfig:"RATE_LIMIT" default:"5"`
	RateLimitWindow int `envconfig:"RATE_LIMIT_WINDOW" default:"60"` // seconds

	OpenVPNHost   string `envconfig:"OPENVPN_HOST" default:"vpn.earthvpn.com"`
	OpenVPNPort   int    `envconfig:"OPENVPN_PORT" default:"1194"`
	WireguardHost string `envconfig:"WIREGUARD_ENDPOINT" default:"wg.earthvpn.com:51820"`
	SupportURL    string `envconfig:"SUPPORT_URL" default:"https://t.me/earthvpn_support"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process environment")
	}
	return &cfg, nil
}

// IsAdmin reports whether id is on the operator allow-list.
func (c *Config) IsAdmin(id int64) bool {
	for _, admin := range c.AdminIDs {
		if admin == id {
			return true
		}
	}
	return false
}
