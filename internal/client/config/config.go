package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/giftbox/internal/confx"
)

const (
	ModeLocal  = "local"
	ModeHosted = "hosted"
)

// Config holds runtime settings for the giftbox CLI.
//
// Fields:
//   - Mode: "local" keeps gifts in an SQLite file, "hosted" talks to the backend.
//   - ServerEndpointAddr / APIKey: gRPC endpoint and key for hosted mode.
//   - LocalDSN / DataDir: SQLite file for local mode; an empty DSN means
//     giftbox.db inside DataDir.
//   - PublicOrigin / RevealPath: how share links are printed.
//   - RecorderCommand: external program used for voice capture.
//   - EntranceDelay: how long each reveal step takes to enter.
type Config struct {
	Mode               string        `env:"GIFTBOX_MODE" validate:"oneof=local hosted"`
	ServerEndpointAddr string        `env:"GIFTBOX_SERVER_ADDR" validate:"required_if=Mode hosted"`
	APIKey             string        `env:"GIFTBOX_API_KEY" validate:"required_if=Mode hosted"`
	LocalDSN           string        `env:"GIFTBOX_LOCAL_DSN"`
	DataDir            string        `env:"GIFTBOX_DATA_DIR" validate:"required"`
	PublicOrigin       string        `env:"GIFTBOX_PUBLIC_ORIGIN" validate:"required,url"`
	RevealPath         string        `env:"GIFTBOX_REVEAL_PATH" validate:"required,startswith=/"`
	RecorderCommand    string        `env:"GIFTBOX_RECORDER_COMMAND"`
	EntranceDelay      time.Duration `env:"GIFTBOX_ENTRANCE_DELAY" validate:"gte=0"`
	LogBackend         string        `env:"GIFTBOX_LOG_BACKEND" validate:"oneof=slog zap"`
	LogLevel           string        `env:"GIFTBOX_LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// LoadDefaults populates c with defaults for a local, single-user setup.
func (c *Config) LoadDefaults() {
	c.Mode = ModeLocal
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DataDir = defaultDataDir()
	c.PublicOrigin = "http://localhost:8080"
	c.RevealPath = "/open"
	c.EntranceDelay = 600 * time.Millisecond
	c.LogBackend = "slog"
	c.LogLevel = "warn"
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".giftbox"
	}
	return filepath.Join(home, ".giftbox")
}

// DSN returns the SQLite location for local mode.
func (c *Config) DSN() string {
	if c.LocalDSN != "" {
		return c.LocalDSN
	}
	return filepath.Join(c.DataDir, "giftbox.db")
}

// Validate checks the merged configuration. Call it after flags are parsed.
func (c *Config) Validate() error {
	return confx.Validate(c)
}

// Load applies, in order: defaults, the dotenv files and environment, and
// the file named by -c/-config in args. Flags are bound separately by the
// CLI (see BindFlags) so they land on top.
func Load(args []string, dotenv ...string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := confx.LoadDotEnv(dotenv...); err != nil {
		return nil, err
	}
	if err := confx.ParseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
