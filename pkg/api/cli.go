package api

import (
	"github.com/urfave/cli/v2"

	"github.com/depotwatch/depotwatch/pkg/api/routes"
	"github.com/depotwatch/depotwatch/pkg/database"
	"github.com/depotwatch/depotwatch/pkg/redis_client"
	"github.com/depotwatch/depotwatch/pkg/upstream"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the dashboard web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					upstreamClient := upstream.NewClient()
					upstreamClient.TimetableCache = upstream.NewRedisTimetableCache()

					eventsQueue, err := redis_client.QueueConnection.OpenQueue("events-queue")
					if err != nil {
						return err
					}

					routes.Setup(upstreamClient, eventsQueue)

					return SetupServer(c.String("listen"))
				},
			},
		},
	}
}
