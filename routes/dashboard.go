package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zedule/zedule-server/controllers"
	"github.com/zedule/zedule-server/middleware"
)

// SetupDashboardRoutes configures the owner-facing routes.
func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/dashboard", middleware.Protected())

	dashboard.Get("/appointments", controllers.ListAppointments)
	dashboard.Post("/appointments", controllers.CreateManualAppointment)
	dashboard.Patch("/appointments/:id/cancel", controllers.CancelAppointment)
	dashboard.Post("/appointments/demo", controllers.GenerateDemoData)

	dashboard.Get("/clients", controllers.GetClients)

	dashboard.Get("/settings", controllers.GetSettings)
	dashboard.Put("/settings", controllers.SaveSettings)
	dashboard.Post("/profile/photo", controllers.UploadProfilePhoto)
}
