package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/reportdrop/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-f string   SQLite credential directory file
//	-d string   Postgres credential directory DSN
//	-s string   token HMAC secret key
//	-t int      token validity, minutes
//	-b string   storage bucket
//	-g string   storage region
//	-e string   storage endpoint (e.g., "http://127.0.0.1:9000")
//	-m int      maximum file size in bytes
//	-r int      auth attempts per minute per IP
//
// Storage credentials are read from JSON or the environment only.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-d", "-s", "-t", "-b", "-g", "-e", "-m", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to run server")
	fs.StringVar(&config.DatabasePath, "f", config.DatabasePath, "sqlite credential directory")
	fs.StringVar(&config.DirectoryDSN, "d", config.DirectoryDSN, "postgres credential directory DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity duration (in minutes)")

	fs.StringVar(&config.Container, "b", config.Container, "storage bucket")
	fs.StringVar(&config.Region, "g", config.Region, "storage region")
	fs.StringVar(&config.Endpoint, "e", config.Endpoint, "storage endpoint")
	fs.Int64Var(&config.MaxFileSizeBytes, "m", config.MaxFileSizeBytes, "maximum file size (bytes)")
	fs.IntVar(&config.AuthRatePerMinute, "r", config.AuthRatePerMinute, "auth requests per minute per IP")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
}
