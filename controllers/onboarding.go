package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zedule/zedule-server/ai"
	"github.com/zedule/zedule-server/db"
	"github.com/zedule/zedule-server/models"
	"github.com/zedule/zedule-server/utils"
)

var assistant = ai.NewAssistant()

// OnboardingChat advances the setup conversation by one assistant turn. When
// the assistant emits its completion payload the collected profile is
// persisted and the response carries done=true; the raw payload JSON is never
// shown to the user.
func OnboardingChat(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Messages []ai.Message `json:"messages"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if len(req.Messages) == 0 {
		return c.JSON(fiber.Map{
			"message": ai.Greeting,
			"done":    false,
		})
	}

	reply := assistant.NextReply(c.Context(), req.Messages)

	data, done := ai.ExtractCompletion(reply)
	if !done {
		return c.JSON(fiber.Map{
			"message": reply,
			"done":    false,
		})
	}

	if err := saveOnboarding(userID, data); err != nil {
		log.Printf("Failed to save onboarding for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save your profile, please try again",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Perfect! I've gathered everything I need. Your profile is being created right now.",
		"done":    true,
	})
}

// saveOnboarding writes the collected profile in one transaction: business
// name and services on the user, one availability row per named day, and the
// onboarded flag last.
func saveOnboarding(userID uint, data *ai.OnboardingData) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"business_name": data.BusinessName,
			"is_onboarded":  true,
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Unscoped().Where("provider_id = ?", userID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		for _, s := range data.Services {
			duration := s.Duration
			if duration <= 0 {
				duration = models.DefaultDuration
			}
			service := models.Service{ProviderID: userID, Name: s.Name, Duration: duration}
			if err := tx.Create(&service).Error; err != nil {
				return err
			}
		}

		for _, day := range data.Availability {
			if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
				continue
			}
			record := models.WeeklyAvailability{
				ProviderID: userID,
				DayOfWeek:  models.DayOfWeek(day.DayOfWeek),
				StartTime:  day.StartTime,
				EndTime:    day.EndTime,
				Active:     true,
			}
			if err := tx.Where("provider_id = ? AND day_of_week = ?", userID, day.DayOfWeek).
				Assign(map[string]interface{}{
					"start_time": day.StartTime,
					"end_time":   day.EndTime,
					"active":     true,
				}).
				FirstOrCreate(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
