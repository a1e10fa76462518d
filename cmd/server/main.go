package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/reportdrop/internal/buildinfo"
	"github.com/dmitrijs2005/reportdrop/internal/logging"
	"github.com/dmitrijs2005/reportdrop/internal/server"
	"github.com/dmitrijs2005/reportdrop/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
