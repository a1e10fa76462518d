// Package config handles configuration for the upload service, including
// defaults, JSON overlay, command-line flags and environment variables.
package config

import (
	"time"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/storage"
	"github.com/dmitrijs2005/reportdrop/internal/validator"
)

// Config holds runtime settings for the ReportDrop service.
//
// Fields:
//   - ListenAddr: HTTP bind address.
//   - DatabasePath: SQLite credential directory used when DirectoryDSN is empty.
//   - DirectoryDSN: Postgres DSN (pgx) of a shared credential directory.
//   - SecretKey: HMAC secret for signing bearer tokens (HS256). Do not use the default in prod.
//   - TokenValidityDuration: bearer token lifetime.
//   - MaxRequestBytes: cap on a multipart upload request body.
//   - Account / AccessToken / Container / Region / Endpoint: object storage.
//   - MaxFileSizeBytes: per-file size ceiling.
//   - UploadTimeout: per-file transfer limit.
//   - AuthRatePerMinute: login/register attempts allowed per client IP.
//   - CORSOrigins: allowed browser origins; empty means any.
type Config struct {
	ListenAddr            string
	DatabasePath          string
	DirectoryDSN          string
	SecretKey             string
	TokenValidityDuration time.Duration
	MaxRequestBytes       int64
	Account               string
	AccessToken           string
	Container             string
	Region                string
	Endpoint              string
	MaxFileSizeBytes      int64
	UploadTimeout         time.Duration
	AuthRatePerMinute     int
	CORSOrigins           []string
	LogLevel              string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.DatabasePath = "reportdrop-server.db"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 12 * time.Hour
	c.Container = "reports"
	c.Region = "us-east-1"
	c.MaxFileSizeBytes = common.DefaultMaxFileSizeBytes
	c.MaxRequestBytes = 10 * common.DefaultMaxFileSizeBytes
	c.UploadTimeout = 10 * time.Minute
	c.AuthRatePerMinute = 20
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, command-line flags and the environment.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}

func (c *Config) Storage() storage.Config {
	return storage.Config{
		Account:     c.Account,
		AccessToken: c.AccessToken,
		Container:   c.Container,
		Region:      c.Region,
		Endpoint:    c.Endpoint,
		Timeout:     c.UploadTimeout,
	}
}

func (c *Config) Policy() validator.Policy {
	p := validator.DefaultPolicy()
	if c.MaxFileSizeBytes > 0 {
		p.MaxSizeBytes = c.MaxFileSizeBytes
	}
	return p
}
