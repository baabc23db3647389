package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

func LiveRouter(router fiber.Router) {
	router.Get("/:number", getLive)
}

func getLive(c *fiber.Ctx) error {
	serviceNumber := c.Params("number")

	liveData, err := upstreamClient.Live(c.Context(), serviceNumber)
	if err != nil {
		log.Error().Err(err).Str("service", serviceNumber).Msg("Failed to fetch live data")

		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error":          "Failed to fetch live data",
			"details":        err.Error(),
			"trainLiveMap":   fiber.Map{},
			"stationLiveMap": fiber.Map{},
		})
	}

	return c.JSON(liveData)
}
