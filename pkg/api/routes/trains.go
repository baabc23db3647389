package routes

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/depotwatch/depotwatch/pkg/database"
	"github.com/depotwatch/depotwatch/pkg/railcar"
)

func TrainsRouter(router fiber.Router) {
	router.Get("/", listTrains)
	router.Get("/:identifier", getTrain)
	router.Post("/:identifier/status", overrideTrainStatus)
}

func listTrains(c *fiber.Ctx) error {
	groupID := c.Query("group")

	query := bson.M{}
	if groupID != "" {
		query["groupid"] = groupID
	}

	trains := []railcar.Train{}

	trainsCollection := database.GetCollection("trains")
	cursor, _ := trainsCollection.Find(context.Background(), query)

	for cursor.Next(context.Background()) {
		var train *railcar.Train
		err := cursor.Decode(&train)
		if err != nil {
			log.Error().Err(err).Msg("Failed to decode Train")
			continue
		}

		train.UpdateDerivedFields()

		trains = append(trains, *train)
	}

	trainsReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, trains)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sorry an internal server error occured",
		})
	}

	return c.JSON(trainsReduced)
}

func getTrain(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	trainsCollection := database.GetCollection("trains")
	var train *railcar.Train
	trainsCollection.FindOne(context.Background(), bson.M{"primaryidentifier": identifier}).Decode(&train)

	if train == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Train matching Identifier",
		})
	}

	train.UpdateDerivedFields()

	if err := train.GetSchedule(); err != nil {
		log.Error().Err(err).Str("train", identifier).Msg("Failed to load Train schedule")

		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to load Train schedule",
		})
	}

	trainReduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic", "detailed"},
	}, train)

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Sorry an internal server error occured",
		})
	}

	return c.JSON(trainReduced)
}

type statusOverrideRequest struct {
	Status string `json:"status"`
}

// Operations staff take a train out of automatic resolution by assigning a
// maintenance or standby status. Those statuses stick until cleared by the
// fleet seed or another override.
func overrideTrainStatus(c *fiber.Ctx) error {
	identifier := c.Params("identifier")

	var request statusOverrideRequest
	if err := json.Unmarshal(c.Body(), &request); err != nil {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	status := railcar.TrainStatus(request.Status)

	if !status.IsManual() {
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": "Only depot-assigned statuses can be set manually",
		})
	}

	trainsCollection := database.GetCollection("trains")

	var train *railcar.Train
	trainsCollection.FindOne(context.Background(), bson.M{"primaryidentifier": identifier}).Decode(&train)

	if train == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"error": "Could not find Train matching Identifier",
		})
	}

	_, err := trainsCollection.UpdateOne(context.Background(),
		bson.M{"primaryidentifier": identifier},
		bson.M{"$set": bson.M{
			"status":               status,
			"currentservice":       "",
			"prepareservice":       "",
			"currentstation":       "",
			"nextstation":          "",
			"scheduleddeparture":   "",
			"estimatedarrival":     "",
			"modificationdatetime": time.Now(),
		}})

	if err != nil {
		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error": "Failed to update Train status",
		})
	}

	publishOverrideEvent(train, status)

	return c.JSON(fiber.Map{
		"status": status,
	})
}

func publishOverrideEvent(train *railcar.Train, status railcar.TrainStatus) {
	if eventsQueue == nil {
		return
	}

	event := railcar.Event{
		Type:      railcar.EventTypeTrainStatusOverridden,
		Timestamp: time.Now(),
		Body: map[string]interface{}{
			"TrainID":        train.PrimaryIdentifier,
			"PreviousStatus": train.Status,
			"Status":         status,
		},
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return
	}

	if err := eventsQueue.PublishBytes(eventBytes); err != nil {
		log.Error().Err(err).Msg("Failed to publish status override event")
	}
}
