package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/depotwatch/depotwatch/pkg/database"
	"github.com/depotwatch/depotwatch/pkg/railcar"
)

func StationsRouter(router fiber.Router) {
	router.Get("/", listStations)
}

func listStations(c *fiber.Ctx) error {
	stations := []railcar.Station{}

	stationsCollection := database.GetCollection("train_station_details")
	cursor, _ := stationsCollection.Find(context.Background(), bson.M{})

	for cursor.Next(context.Background()) {
		var station *railcar.Station
		err := cursor.Decode(&station)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode Station")
			continue
		}

		stations = append(stations, *station)
	}

	return c.JSON(stations)
}
