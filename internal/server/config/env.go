package config

import (
	"strings"

	"github.com/dmitrijs2005/reportdrop/internal/envx"
)

// parseEnv applies REPORTDROP_* variables last. Panics on malformed values.
func parseEnv(config *Config) {
	envx.String(&config.Account, "REPORTDROP_ACCOUNT")
	envx.String(&config.AccessToken, "REPORTDROP_ACCESS_TOKEN")
	envx.String(&config.Container, "REPORTDROP_CONTAINER")
	envx.String(&config.Region, "REPORTDROP_REGION")
	envx.String(&config.Endpoint, "REPORTDROP_ENDPOINT")
	envx.String(&config.DirectoryDSN, "REPORTDROP_DIRECTORY_DSN")
	envx.String(&config.SecretKey, "REPORTDROP_SECRET_KEY")
	envx.String(&config.ListenAddr, "REPORTDROP_LISTEN_ADDR")

	if err := envx.Int64(&config.MaxFileSizeBytes, "REPORTDROP_MAX_FILE_SIZE"); err != nil {
		panic(err)
	}
	if err := envx.Duration(&config.TokenValidityDuration, "REPORTDROP_TOKEN_VALIDITY"); err != nil {
		panic(err)
	}

	var origins string
	envx.String(&origins, "REPORTDROP_CORS_ORIGINS")
	if origins != "" {
		config.CORSOrigins = strings.Split(origins, ",")
	}
}
