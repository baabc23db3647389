package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/depotwatch/depotwatch/pkg/api"
	"github.com/depotwatch/depotwatch/pkg/dataimporter"
	"github.com/depotwatch/depotwatch/pkg/events"
	"github.com/depotwatch/depotwatch/pkg/monitor"

	_ "time/tzdata"
)

func main() {
	godotenv.Load()

	if os.Getenv("DEPOTWATCH_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("DEPOTWATCH_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "depotwatch",
		Description: "Single binary of truth for depotwatch - runs all the services",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			monitor.RegisterCLI(),
			events.RegisterCLI(),
			dataimporter.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
