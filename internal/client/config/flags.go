package config

import "github.com/spf13/pflag"

// BindFlags registers the CLI flags on fs with the already loaded values as
// defaults, so a flag only overrides when given.
//
//	-c, --config    config file (read by Load, declared here for help output)
//	-m, --mode      local | hosted
//	-a, --server    backend gRPC address
//	-k, --api-key   backend API key
//	-d, --dsn       SQLite file for local mode
//	    --data-dir  directory for local data
//	-o, --origin    public origin for share links
//	-r, --reveal-path
//	    --recorder  voice recorder command
//	    --entrance  reveal step entrance delay
//	    --log-backend, --log-level
func BindFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringP("config", "c", "", "path to a JSON or YAML config file")
	fs.StringVarP(&cfg.Mode, "mode", "m", cfg.Mode, "storage mode: local or hosted")
	fs.StringVarP(&cfg.ServerEndpointAddr, "server", "a", cfg.ServerEndpointAddr, "address and port of the giftbox server")
	fs.StringVarP(&cfg.APIKey, "api-key", "k", cfg.APIKey, "API key for the giftbox server")
	fs.StringVarP(&cfg.LocalDSN, "dsn", "d", cfg.LocalDSN, "SQLite database for local mode")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for local data")
	fs.StringVarP(&cfg.PublicOrigin, "origin", "o", cfg.PublicOrigin, "public origin used in share links")
	fs.StringVarP(&cfg.RevealPath, "reveal-path", "r", cfg.RevealPath, "path of the reveal page")
	fs.StringVar(&cfg.RecorderCommand, "recorder", cfg.RecorderCommand, "voice recorder command")
	fs.DurationVar(&cfg.EntranceDelay, "entrance", cfg.EntranceDelay, "entrance time of each reveal step")
	fs.StringVar(&cfg.LogBackend, "log-backend", cfg.LogBackend, "log backend: slog or zap")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
}
