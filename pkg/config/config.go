// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/small-frappuccino/modsheet/pkg/util"
)

// Row store backends.
const (
	BackendSheets = "sheets"
	BackendSQLite = "sqlite"
)

// Config is the process-wide configuration.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN"`
	GuildID      string `env:"MODSHEET_GUILD_ID"`

	NexusAPIKey  string        `env:"DISCORD_NEXUS_API_KEY"`
	NexusAPIURL  string        `env:"NEXUS_API_URL" envDefault:"https://api.nexusmods.com/v1"`
	NexusSiteURL string        `env:"NEXUS_SITE_URL" envDefault:"https://www.nexusmods.com"`
	NexusGame    string        `env:"NEXUS_GAME" envDefault:"stardewvalley"`
	NexusTimeout time.Duration `env:"NEXUS_TIMEOUT" envDefault:"10s"`

	Backend         string `env:"MODSHEET_BACKEND" envDefault:"sheets"`
	GoogleCreds     string `env:"GOOGLE_CREDENTIALS"`
	SpreadsheetID   string `env:"MODSHEET_SPREADSHEET_ID"`
	SpreadsheetName string `env:"MODSHEET_SPREADSHEET_NAME" envDefault:"MODS STARDEW"`
	Worksheet       string `env:"MODSHEET_WORKSHEET" envDefault:"MODS"`
	SQLitePath      string `env:"MODSHEET_SQLITE_PATH" envDefault:"modsheet.db"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`
	LogDir   string `env:"MODSHEET_LOG_DIR" envDefault:"logs"`
}

// Load reads the .env fallbacks and parses the environment.
func Load() (Config, error) {
	if _, err := util.LoadEnvFallbacks(util.EnvFallbackFiles()...); err != nil {
		return Config{}, fmt.Errorf("load env files: %w", err)
	}
	return Parse(env.Options{})
}

// Parse parses the environment (or opts.Environment when set) into a Config.
func Parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	switch cfg.Backend {
	case BackendSheets, BackendSQLite:
	default:
		return Config{}, fmt.Errorf("parse env: unknown MODSHEET_BACKEND %q", cfg.Backend)
	}
	return cfg, nil
}

// Validate returns a warning for each missing setting. Missing settings degrade
// the features that need them; they never stop startup.
func (c Config) Validate() []string {
	var warnings []string
	if c.DiscordToken == "" {
		warnings = append(warnings, "DISCORD_TOKEN not set; the bot cannot connect to Discord")
	}
	if c.NexusAPIKey == "" {
		warnings = append(warnings, "DISCORD_NEXUS_API_KEY not set; /addmod is disabled")
	}
	if c.Backend == BackendSheets {
		if c.GoogleCreds == "" {
			warnings = append(warnings, "GOOGLE_CREDENTIALS not set; the mod sheet is unavailable")
		}
		if c.SpreadsheetID == "" && c.SpreadsheetName == "" {
			warnings = append(warnings, "neither MODSHEET_SPREADSHEET_ID nor MODSHEET_SPREADSHEET_NAME set")
		}
	}
	return warnings
}
