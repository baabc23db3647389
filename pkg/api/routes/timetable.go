package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/depotwatch/depotwatch/pkg/railcar"
)

func TimetableRouter(router fiber.Router) {
	router.Get("/:number", getTimetable)
}

// Proxies the timetable provider. Failures return an envelope with an empty
// stop list so dashboard clients can degrade instead of blowing up.
func getTimetable(c *fiber.Ctx) error {
	serviceNumber := c.Params("number")

	timetable, err := upstreamClient.Timetable(c.Context(), serviceNumber)
	if err != nil {
		log.Error().Err(err).Str("service", serviceNumber).Msg("Failed to fetch service timetable")

		c.SendStatus(fiber.StatusInternalServerError)
		return c.JSON(fiber.Map{
			"error":     "Failed to fetch service timetable",
			"details":   err.Error(),
			"no":        serviceNumber,
			"stopTimes": []railcar.StopTime{},
		})
	}

	return c.JSON(timetable)
}
