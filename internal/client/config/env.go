package config

import (
	"github.com/dmitrijs2005/reportdrop/internal/envx"
)

// parseEnv applies REPORTDROP_* variables last. Panics on malformed numbers.
func parseEnv(cfg *Config) {
	envx.String(&cfg.Account, "REPORTDROP_ACCOUNT")
	envx.String(&cfg.AccessToken, "REPORTDROP_ACCESS_TOKEN")
	envx.String(&cfg.Container, "REPORTDROP_CONTAINER")
	envx.String(&cfg.Region, "REPORTDROP_REGION")
	envx.String(&cfg.Endpoint, "REPORTDROP_ENDPOINT")
	envx.String(&cfg.DirectoryDSN, "REPORTDROP_DIRECTORY_DSN")
	envx.String(&cfg.DatabasePath, "REPORTDROP_DATABASE")

	if err := envx.Int64(&cfg.MaxFileSizeBytes, "REPORTDROP_MAX_FILE_SIZE"); err != nil {
		panic(err)
	}
	if err := envx.Duration(&cfg.UploadTimeout, "REPORTDROP_UPLOAD_TIMEOUT"); err != nil {
		panic(err)
	}
}
