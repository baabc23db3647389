package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func createIndexes() {
	createTrainsIndexes()
	createScheduleIndexes()
	createStationIndexes()
}

func createTrainsIndexes() {
	trainsCollection := GetCollection("trains")
	trainsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "groupid", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := trainsCollection.Indexes().CreateMany(context.Background(), trainsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createScheduleIndexes() {
	trainSchedulesCollection := GetCollection("train_schedules")
	trainSchedulesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "trainid", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "servicenumber", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := trainSchedulesCollection.Indexes().CreateMany(context.Background(), trainSchedulesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func createStationIndexes() {
	stationsCollection := GetCollection("train_station_details")
	stationsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "stationid", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := stationsCollection.Indexes().CreateMany(context.Background(), stationsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
