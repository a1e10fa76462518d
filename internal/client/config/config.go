package config

import (
	"time"

	"github.com/dmitrijs2005/reportdrop/internal/common"
	"github.com/dmitrijs2005/reportdrop/internal/storage"
	"github.com/dmitrijs2005/reportdrop/internal/validator"
)

// Config holds runtime settings for the ReportDrop CLI.
//
// Fields:
//   - DatabasePath: local SQLite file with the session and, by default, the
//     credential directory.
//   - DirectoryDSN: when set (postgres://...), credentials live in a shared
//     Postgres directory instead of the local file.
//   - Account, AccessToken, Container, Region, Endpoint: object storage.
//   - MaxFileSizeBytes: upload size ceiling.
//   - UploadTimeout: limit for a single file transfer.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	DatabasePath     string
	DirectoryDSN     string
	Account          string
	AccessToken      string
	Container        string
	Region           string
	Endpoint         string
	MaxFileSizeBytes int64
	UploadTimeout    time.Duration
	LogLevel         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "reportdrop.db"
	c.Container = "reports"
	c.Region = "us-east-1"
	c.MaxFileSizeBytes = common.DefaultMaxFileSizeBytes
	c.UploadTimeout = 10 * time.Minute
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), command-line flags (if present) and the environment.
// Later sources take precedence over earlier ones.
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
