package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/depotwatch/depotwatch/pkg/api/routes"
)

func SetupServer(listen string) error {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.TrainsRouter(group.Group("/trains"))
	routes.TimetableRouter(group.Group("/timetable"))
	routes.LiveRouter(group.Group("/live"))
	routes.StationsRouter(group.Group("/stations"))

	return webApp.Listen(listen)
}
