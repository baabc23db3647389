package monitor

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/depotwatch/depotwatch/pkg/database"
	"github.com/depotwatch/depotwatch/pkg/railcar"
	"github.com/depotwatch/depotwatch/pkg/redis_client"
	"github.com/depotwatch/depotwatch/pkg/resolver"
	"github.com/depotwatch/depotwatch/pkg/upstream"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "monitor",
		Usage: "Fleet status refresh engine",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "continuously refresh the fleet's statuses",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "interval",
						Value: 1 * time.Minute,
						Usage: "time between fleet refresh cycles",
					},
				},
				Action: func(c *cli.Context) error {
					refresher, err := setup()
					if err != nil {
						return err
					}

					go refresher.Run(c.Duration("interval"))

					signals := make(chan os.Signal, 1)
					signal.Notify(signals, syscall.SIGINT)
					defer signal.Stop(signals)

					<-signals // wait for signal
					go func() {
						<-signals // hard exit on second signal (in case shutdown gets stuck)
						os.Exit(1)
					}()

					return nil
				},
			},
			{
				Name:  "once",
				Usage: "run a single fleet refresh cycle",
				Action: func(c *cli.Context) error {
					refresher, err := setup()
					if err != nil {
						return err
					}

					return refresher.RefreshAll(context.Background())
				},
			},
		},
	}
}

func setup() (*Refresher, error) {
	if err := database.Connect(); err != nil {
		return nil, err
	}
	if err := redis_client.Connect(); err != nil {
		return nil, err
	}

	if database.GlobalGorm != nil {
		if err := database.GlobalGorm.AutoMigrate(&railcar.StatusTransition{}); err != nil {
			return nil, err
		}
	}

	upstreamClient := upstream.NewClient()
	upstreamClient.TimetableCache = upstream.NewRedisTimetableCache()

	statusResolver := resolver.NewResolver(upstreamClient, upstreamClient)

	return NewRefresher(statusResolver, NewStationDirectory(), NewMongoFleetStore())
}
