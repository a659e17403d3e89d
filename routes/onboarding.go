package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zedule/zedule-server/controllers"
	"github.com/zedule/zedule-server/middleware"
)

// SetupOnboardingRoutes configures the chat-driven setup flow for fresh
// registrations.
func SetupOnboardingRoutes(app *fiber.App) {
	onboarding := app.Group("/onboarding", middleware.Protected())
	onboarding.Post("/chat", controllers.OnboardingChat)
}
