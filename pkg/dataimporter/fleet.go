package dataimporter

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"

	"github.com/depotwatch/depotwatch/pkg/database"
	"github.com/depotwatch/depotwatch/pkg/railcar"
)

type FleetFile struct {
	Groups   []FleetGroup   `yaml:"groups"`
	Stations []FleetStation `yaml:"stations"`
}

type FleetGroup struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	Trains []FleetTrain `yaml:"trains"`
}

type FleetTrain struct {
	ID     string `yaml:"id"`
	Driver string `yaml:"driver"`

	Schedule []string `yaml:"schedule"`
}

type FleetStation struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

func LoadFleetFile(path string) (*FleetFile, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fleetFile FleetFile
	if err := yaml.Unmarshal(fileBytes, &fleetFile); err != nil {
		return nil, err
	}

	return &fleetFile, nil
}

// ImportFleet upserts trains, their daily schedule assignments, and the
// station directory. Existing statuses are preserved so a reseed doesn't
// clobber manual maintenance assignments.
func ImportFleet(fleetFile *FleetFile) error {
	trainsCollection := database.GetCollection("trains")
	trainSchedulesCollection := database.GetCollection("train_schedules")
	stationsCollection := database.GetCollection("train_station_details")

	upsert := options.Update().SetUpsert(true)

	for _, group := range fleetFile.Groups {
		for _, train := range group.Trains {
			_, err := trainsCollection.UpdateOne(context.Background(),
				bson.M{"primaryidentifier": train.ID},
				bson.M{
					"$set": bson.M{
						"groupid": group.ID,
						"driver":  train.Driver,
					},
					"$setOnInsert": bson.M{
						"status":           railcar.TrainStatusAwaitingDeparture,
						"creationdatetime": time.Now(),
					},
				}, upsert)
			if err != nil {
				return err
			}

			// Assignments are replaced wholesale; order in the file is the
			// assignment order the resolver trusts
			if _, err := trainSchedulesCollection.DeleteMany(context.Background(), bson.M{"trainid": train.ID}); err != nil {
				return err
			}

			for sequence, serviceNumber := range train.Schedule {
				assignment := railcar.ScheduleAssignment{
					TrainID:       train.ID,
					ServiceNumber: serviceNumber,
					Sequence:      sequence,
				}

				if _, err := trainSchedulesCollection.InsertOne(context.Background(), assignment); err != nil {
					return err
				}
			}

			log.Info().Str("train", train.ID).Int("services", len(train.Schedule)).Msg("Imported train")
		}
	}

	for _, station := range fleetFile.Stations {
		_, err := stationsCollection.UpdateOne(context.Background(),
			bson.M{"stationid": station.ID},
			bson.M{"$set": bson.M{
				"stationid":   station.ID,
				"stationname": station.Name,
			}}, upsert)
		if err != nil {
			return err
		}
	}

	log.Info().Int("stations", len(fleetFile.Stations)).Msg("Imported station directory")

	return nil
}
