package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/reportdrop/internal/flagx"
	"github.com/dmitrijs2005/reportdrop/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	DatabasePath     string         `json:"database_path"`
	DirectoryDSN     string         `json:"directory_dsn"`
	Account          string         `json:"account"`
	AccessToken      string         `json:"access_token"`
	Container        string         `json:"container"`
	Region           string         `json:"region"`
	Endpoint         string         `json:"endpoint"`
	MaxFileSizeBytes int64          `json:"max_file_size_bytes"`
	UploadTimeout    timex.Duration `json:"upload_timeout"`
	LogLevel         string         `json:"log_level"`
}

// parseJson overlays Config with the fields present in the file given by
// -c/-config. Absent fields keep their current value. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.DirectoryDSN, jc.DirectoryDSN)
	setString(&cfg.Account, jc.Account)
	setString(&cfg.AccessToken, jc.AccessToken)
	setString(&cfg.Container, jc.Container)
	setString(&cfg.Region, jc.Region)
	setString(&cfg.Endpoint, jc.Endpoint)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.MaxFileSizeBytes > 0 {
		cfg.MaxFileSizeBytes = jc.MaxFileSizeBytes
	}
	if jc.UploadTimeout.Duration > 0 {
		cfg.UploadTimeout = jc.UploadTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
