package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("REPORTDROP_ACCOUNT", "acct")
	t.Setenv("REPORTDROP_ACCESS_TOKEN", "tok")
	t.Setenv("REPORTDROP_CONTAINER", "")
	t.Setenv("REPORTDROP_MAX_FILE_SIZE", "1000")
	t.Setenv("REPORTDROP_UPLOAD_TIMEOUT", "2m")
	t.Setenv("REPORTDROP_DIRECTORY_DSN", "postgres://db/rd")

	cfg := &Config{Container: "reports"}
	parseEnv(cfg)

	assert.Equal(t, "acct", cfg.Account)
	assert.Equal(t, "tok", cfg.AccessToken)
	assert.Equal(t, "reports", cfg.Container, "empty variable keeps the current value")
	assert.Equal(t, int64(1000), cfg.MaxFileSizeBytes)
	assert.Equal(t, 2*time.Minute, cfg.UploadTimeout)
	assert.Equal(t, "postgres://db/rd", cfg.DirectoryDSN)
}

func TestParseEnv_Malformed(t *testing.T) {
	t.Setenv("REPORTDROP_MAX_FILE_SIZE", "thirty")
	assert.Panics(t, func() { parseEnv(&Config{}) })
}
