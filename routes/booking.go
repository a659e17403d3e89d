package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zedule/zedule-server/controllers"
)

// SetupBookingRoutes configures the public booking page routes. These are
// addressed by raw provider id or public slug and need no authentication.
func SetupBookingRoutes(app *fiber.App) {
	booking := app.Group("/booking")
	booking.Get("/:idOrSlug", controllers.GetBookingPage)
	booking.Get("/:idOrSlug/slots", controllers.GetAvailableSlots)
	booking.Post("/:idOrSlug", controllers.CreateBooking)
}
