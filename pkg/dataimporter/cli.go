package dataimporter

import (
	"github.com/urfave/cli/v2"

	"github.com/depotwatch/depotwatch/pkg/database"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Seed fleet configuration into the backing store",
		Subcommands: []*cli.Command{
			{
				Name:  "fleet",
				Usage: "Import a fleet definition file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Usage:    "path of the fleet definition YAML file",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}

					fleetFile, err := LoadFleetFile(c.String("file"))
					if err != nil {
						return err
					}

					return ImportFleet(fleetFile)
				},
			},
		},
	}
}
