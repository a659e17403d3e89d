package controllers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zedule/zedule-server/db"
	"github.com/zedule/zedule-server/models"
	"github.com/zedule/zedule-server/redis"
	"github.com/zedule/zedule-server/scheduler"
	"github.com/zedule/zedule-server/utils"
)

// GetSettings returns the owner's bookable configuration: services, buffer,
// slug and the full 7-day schedule. Days without a stored record come back as
// an inactive 09:00-17:00 default so the client always sees a complete week.
func GetSettings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Profile not found",
		})
	}

	services, availability := loadBookingData(userID)

	stored := map[models.DayOfWeek]models.WeeklyAvailability{}
	for _, a := range availability {
		stored[a.DayOfWeek] = a
	}
	schedule := make([]models.WeeklyAvailability, 0, 7)
	for _, day := range []models.DayOfWeek{
		models.Monday, models.Tuesday, models.Wednesday, models.Thursday,
		models.Friday, models.Saturday, models.Sunday,
	} {
		if a, ok := stored[day]; ok {
			schedule = append(schedule, a)
		} else {
			schedule = append(schedule, models.WeeklyAvailability{
				ProviderID: userID,
				DayOfWeek:  day,
				StartTime:  "09:00",
				EndTime:    "17:00",
				Active:     false,
			})
		}
	}

	return c.JSON(fiber.Map{
		"business_name": user.BusinessName,
		"buffer_time":   user.BufferTime,
		"slug":          user.Slug,
		"services":      services,
		"schedule":      schedule,
	})
}

// SettingsRequest is the dashboard save payload.
type SettingsRequest struct {
	BusinessName string `json:"business_name"`
	BufferTime   int    `json:"buffer_time"`
	Slug         string `json:"slug"`
	Services     []struct {
		Name     string `json:"name"`
		Duration int    `json:"duration"`
	} `json:"services"`
	Schedule []struct {
		DayOfWeek int    `json:"day_of_week"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
		Active    bool   `json:"active"`
	} `json:"schedule"`
}

// SaveSettings persists the whole configuration in one transaction, so a
// failure midway cannot leave the profile and the schedule out of step.
// A slug already claimed by another owner is rejected with 409.
func SaveSettings(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req SettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if req.BufferTime < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "buffer_time must not be negative",
		})
	}
	for _, s := range req.Services {
		if s.Name == "" || s.Duration <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "every service needs a name and a positive duration",
			})
		}
	}
	for _, d := range req.Schedule {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "day_of_week must be 0-6",
			})
		}
		if !d.Active {
			continue
		}
		start, err := scheduler.ParseClock(d.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid schedule", Error: err.Error(),
			})
		}
		end, err := scheduler.ParseClock(d.EndTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: "Invalid schedule", Error: err.Error(),
			})
		}
		if !start.Before(end) {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: fmt.Sprintf("day %d: start_time must be before end_time", d.DayOfWeek),
			})
		}
	}

	slug := utils.NormalizeSlug(req.Slug)

	var previousSlug string
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		previousSlug = user.Slug

		if slug != "" && slug != user.Slug {
			var taken models.User
			if tx.Where("slug = ? AND id <> ?", slug, userID).First(&taken).RowsAffected > 0 {
				return errSlugTaken
			}
		}

		updates := map[string]interface{}{
			"business_name": req.BusinessName,
			"buffer_time":   req.BufferTime,
			"slug":          slug,
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}

		// Services are a plain list on the settings page; replace wholesale.
		if err := tx.Unscoped().Where("provider_id = ?", userID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		for _, s := range req.Services {
			service := models.Service{ProviderID: userID, Name: s.Name, Duration: s.Duration}
			if err := tx.Create(&service).Error; err != nil {
				return err
			}
		}

		// Per-day upsert keeps availability row ids stable.
		for _, d := range req.Schedule {
			var existing models.WeeklyAvailability
			err := tx.Where("provider_id = ? AND day_of_week = ?", userID, d.DayOfWeek).First(&existing).Error
			switch {
			case err == nil:
				existing.StartTime = d.StartTime
				existing.EndTime = d.EndTime
				existing.Active = d.Active
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
			case errors.Is(err, gorm.ErrRecordNotFound):
				if !d.Active {
					continue
				}
				record := models.WeeklyAvailability{
					ProviderID: userID,
					DayOfWeek:  models.DayOfWeek(d.DayOfWeek),
					StartTime:  d.StartTime,
					EndTime:    d.EndTime,
					Active:     true,
				}
				if err := tx.Create(&record).Error; err != nil {
					return err
				}
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errSlugTaken) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "That booking link is already taken",
			})
		}
		log.Printf("Settings save failed for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save settings",
		})
	}

	if previousSlug != "" && previousSlug != slug {
		redis.ForgetSlug(previousSlug)
	}

	return c.JSON(fiber.Map{
		"message": "Settings saved successfully",
		"slug":    slug,
	})
}

var errSlugTaken = errors.New("slug already taken")

// UploadProfilePhoto stores the owner's profile picture and records the URL.
func UploadProfilePhoto(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "photo file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to read upload",
			Error:   err.Error(),
		})
	}
	defer file.Close()

	url, err := utils.UploadProfilePhoto(c.Context(), file, fmt.Sprintf("user-%d", userID))
	if err != nil {
		log.Printf("Photo upload failed for user %d: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to upload photo",
		})
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("photo_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save photo URL",
		})
	}

	return c.JSON(fiber.Map{"photo_url": url})
}
