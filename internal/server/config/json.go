package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/reportdrop/internal/flagx"
	"github.com/dmitrijs2005/reportdrop/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Durations accept "1s"-style
// strings or integer nanoseconds.
type JsonConfig struct {
	ListenAddr            string         `json:"listen_addr"`
	DatabasePath          string         `json:"database_path"`
	DirectoryDSN          string         `json:"directory_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	MaxRequestBytes       int64          `json:"max_request_bytes"`
	Account               string         `json:"account"`
	AccessToken           string         `json:"access_token"`
	Container             string         `json:"container"`
	Region                string         `json:"region"`
	Endpoint              string         `json:"endpoint"`
	MaxFileSizeBytes      int64          `json:"max_file_size_bytes"`
	UploadTimeout         timex.Duration `json:"upload_timeout"`
	AuthRatePerMinute     int            `json:"auth_rate_per_minute"`
	CORSOrigins           []string       `json:"cors_origins"`
	LogLevel              string         `json:"log_level"`
}

// parseJson overlays config with the fields present in the file named by
// -c/-config. Panics if the file cannot be read or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.ListenAddr, c.ListenAddr)
	setString(&config.DatabasePath, c.DatabasePath)
	setString(&config.DirectoryDSN, c.DirectoryDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Account, c.Account)
	setString(&config.AccessToken, c.AccessToken)
	setString(&config.Container, c.Container)
	setString(&config.Region, c.Region)
	setString(&config.Endpoint, c.Endpoint)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenValidityDuration.Duration > 0 {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.UploadTimeout.Duration > 0 {
		config.UploadTimeout = c.UploadTimeout.Duration
	}
	if c.MaxRequestBytes > 0 {
		config.MaxRequestBytes = c.MaxRequestBytes
	}
	if c.MaxFileSizeBytes > 0 {
		config.MaxFileSizeBytes = c.MaxFileSizeBytes
	}
	if c.AuthRatePerMinute > 0 {
		config.AuthRatePerMinute = c.AuthRatePerMinute
	}
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
