package railcar

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/depotwatch/depotwatch/pkg/database"
)

type Station struct {
	StationID   string `groups:"basic"`
	StationName string `groups:"basic"`
}

// GetStationDirectory returns the station id to display name lookup table.
func GetStationDirectory() (map[string]string, error) {
	stationsCollection := database.GetCollection("train_station_details")

	cursor, err := stationsCollection.Find(context.Background(), bson.M{})
	if err != nil {
		return nil, err
	}

	directory := map[string]string{}

	for cursor.Next(context.Background()) {
		var station *Station
		if err := cursor.Decode(&station); err != nil {
			continue
		}

		directory[station.StationID] = station.StationName
	}

	return directory, nil
}
