package config

import (
	"github.com/dmitrijs2005/giftbox/internal/confx"
	"github.com/dmitrijs2005/giftbox/internal/flagx"
	"github.com/dmitrijs2005/giftbox/internal/timex"
)

// FileConfig is the on-disk shape of the server config. Durations accept
// "15m" style strings or integer nanoseconds. Keys left out of the file do
// not override earlier layers.
type FileConfig struct {
	GRPCAddr           string         `json:"grpc_addr" yaml:"grpc_addr"`
	HTTPAddr           string         `json:"http_addr" yaml:"http_addr"`
	DatabaseDSN        string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey          string         `json:"secret_key" yaml:"secret_key"`
	S3RootUser         string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword     string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket           string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region           string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint     string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3PublicBaseURL    string         `json:"s3_public_base_url" yaml:"s3_public_base_url"`
	PresignExpiry      timex.Duration `json:"presign_expiry" yaml:"presign_expiry"`
	PublicOrigin       string         `json:"public_origin" yaml:"public_origin"`
	RevealPath         string         `json:"reveal_path" yaml:"reveal_path"`
	AllowOpenedUpdates *bool          `json:"allow_opened_updates" yaml:"allow_opened_updates"`
	RedisAddr          string         `json:"redis_addr" yaml:"redis_addr"`
	CacheTTL           timex.Duration `json:"cache_ttl" yaml:"cache_ttl"`
	LogBackend         string         `json:"log_backend" yaml:"log_backend"`
	LogLevel           string         `json:"log_level" yaml:"log_level"`
	OTelEndpoint       string         `json:"otel_endpoint" yaml:"otel_endpoint"`
}

// parseFile loads the file named by -c/-config, if any, into config.
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
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)
	setString(&config.PublicOrigin, c.PublicOrigin)
	setString(&config.RevealPath, c.RevealPath)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.LogBackend, c.LogBackend)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.OTelEndpoint, c.OTelEndpoint)

	if c.PresignExpiry.Duration != 0 {
		config.PresignExpiry = c.PresignExpiry.Duration
	}
	if c.CacheTTL.Duration != 0 {
		config.CacheTTL = c.CacheTTL.Duration
	}
	if c.AllowOpenedUpdates != nil {
		config.AllowOpenedUpdates = *c.AllowOpenedUpdates
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
