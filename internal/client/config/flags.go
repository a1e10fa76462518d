package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/reportdrop/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   local database file
//	-dsn string shared Postgres credential directory
//	-b string   destination bucket
//	-e string   custom storage endpoint
//	-r string   storage region
//	-m int      maximum file size in bytes
//	-t int      per-file upload timeout in seconds
//	-l string   log level
//
// Credentials are deliberately not accepted as flags; use JSON or env.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-dsn", "-b", "-e", "-r", "-m", "-t", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.StringVar(&cfg.DirectoryDSN, "dsn", cfg.DirectoryDSN, "shared credential directory DSN")
	fs.StringVar(&cfg.Container, "b", cfg.Container, "destination bucket")
	fs.StringVar(&cfg.Endpoint, "e", cfg.Endpoint, "storage endpoint")
	fs.StringVar(&cfg.Region, "r", cfg.Region, "storage region")
	fs.Int64Var(&cfg.MaxFileSizeBytes, "m", cfg.MaxFileSizeBytes, "maximum file size (bytes)")
	timeout := fs.Int("t", int(cfg.UploadTimeout.Seconds()), "upload timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.UploadTimeout = time.Duration(*timeout) * time.Second
}
