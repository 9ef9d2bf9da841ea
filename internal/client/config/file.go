package config

import (
	"github.com/dmitrijs2005/giftbox/internal/confx"
	"github.com/dmitrijs2005/giftbox/internal/flagx"
	"github.com/dmitrijs2005/giftbox/internal/timex"
)

// FileConfig is the on-disk shape of the CLI config.
type FileConfig struct {
	Mode               string         `json:"mode" yaml:"mode"`
	ServerEndpointAddr string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	APIKey             string         `json:"api_key" yaml:"api_key"`
	LocalDSN           string         `json:"local_dsn" yaml:"local_dsn"`
	DataDir            string         `json:"data_dir" yaml:"data_dir"`
	PublicOrigin       string         `json:"public_origin" yaml:"public_origin"`
	RevealPath         string         `json:"reveal_path" yaml:"reveal_path"`
	RecorderCommand    string         `json:"recorder_command" yaml:"recorder_command"`
	EntranceDelay      timex.Duration `json:"entrance_delay" yaml:"entrance_delay"`
	LogBackend         string         `json:"log_backend" yaml:"log_backend"`
	LogLevel           string         `json:"log_level" yaml:"log_level"`
}

func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	c := &FileConfig{}
	if err := confx.LoadFile(path, c); err != nil {
		return err
	}
	c.apply(config)
	return nil
}

func (c *FileConfig) apply(config *Config) {
	for dst, v := range map[*string]string{
		&config.Mode:               c.Mode,
		&config.ServerEndpointAddr: c.ServerEndpointAddr,
		&config.APIKey:             c.APIKey,
		&config.LocalDSN:           c.LocalDSN,
		&config.DataDir:            c.DataDir,
		&config.PublicOrigin:       c.PublicOrigin,
		&config.RevealPath:         c.RevealPath,
		&config.RecorderCommand:    c.RecorderCommand,
		&config.LogBackend:         c.LogBackend,
		&config.LogLevel:           c.LogLevel,
	} {
		if v != "" {
			*dst = v
		}
	}
	if c.EntranceDelay.Duration != 0 {
		config.EntranceDelay = c.EntranceDelay.Duration
	}
}
