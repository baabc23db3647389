package monitor

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/depotwatch/depotwatch/pkg/database"
	"github.com/depotwatch/depotwatch/pkg/railcar"
)

// FleetStore is the persistence boundary of the refresh cycle.
type FleetStore interface {
	AllTrains(ctx context.Context) ([]*railcar.Train, error)
	Schedule(ctx context.Context, trainID string) ([]string, error)
	UpdateTrain(ctx context.Context, trainID string, update TrainUpdate) error
}

type MongoFleetStore struct{}

func NewMongoFleetStore() *MongoFleetStore {
	return &MongoFleetStore{}
}

func (s *MongoFleetStore) AllTrains(ctx context.Context) ([]*railcar.Train, error) {
	trainsCollection := database.GetCollection("trains")

	cursor, err := trainsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var trains []*railcar.Train

	for cursor.Next(ctx) {
		var train *railcar.Train
		if err := cursor.Decode(&train); err != nil {
			log.Error().Err(err).Msg("Failed to decode Train")
			continue
		}

		trains = append(trains, train)
	}

	return trains, cursor.Err()
}

func (s *MongoFleetStore) Schedule(ctx context.Context, trainID string) ([]string, error) {
	train := railcar.Train{PrimaryIdentifier: trainID}

	if err := train.GetSchedule(); err != nil {
		return nil, err
	}

	return train.Schedule, nil
}

func (s *MongoFleetStore) UpdateTrain(ctx context.Context, trainID string, update TrainUpdate) error {
	trainsCollection := database.GetCollection("trains")

	updateOperation := func() error {
		_, err := trainsCollection.UpdateOne(ctx,
			bson.M{"primaryidentifier": trainID},
			bson.M{"$set": bson.M{
				"status":               update.Status,
				"currentservice":       update.CurrentService,
				"prepareservice":       update.PrepareService,
				"currentstation":       update.CurrentStation,
				"nextstation":          update.NextStation,
				"scheduleddeparture":   update.ScheduledDeparture,
				"estimatedarrival":     update.EstimatedArrival,
				"modificationdatetime": time.Now(),
			}})

		return err
	}

	return backoff.Retry(updateOperation, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3))
}
