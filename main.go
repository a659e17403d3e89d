package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/zedule/zedule-server/cron"
	"github.com/zedule/zedule-server/db"
	"github.com/zedule/zedule-server/redis"
	"github.com/zedule/zedule-server/routes"
)

func main() {
	app := fiber.New()
	db.Init()

	if os.Getenv("REDIS_ADDR") != "" {
		redis.InitRedis()
	} else {
		log.Println("REDIS_ADDR not set, slug lookups will skip the cache")
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Zedule API")
	})

	routes.SetupAuthRoutes(app)
	routes.SetupOnboardingRoutes(app)
	routes.SetupDashboardRoutes(app)
	routes.SetupBookingRoutes(app)

	cron.StartCronJobs()

	if err := app.Listen(":8000"); err != nil {
		log.Fatal(err)
	}
}
