package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/reportdrop/internal/buildinfo"
	"github.com/dmitrijs2005/reportdrop/internal/client/cli"
	"github.com/dmitrijs2005/reportdrop/internal/client/config"
	"github.com/dmitrijs2005/reportdrop/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
