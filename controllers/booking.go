package controllers

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/zedule/zedule-server/db"
	"github.com/zedule/zedule-server/models"
	"github.com/zedule/zedule-server/redis"
	"github.com/zedule/zedule-server/scheduler"
	"github.com/zedule/zedule-server/utils"
)

const dateLayout = "2006-01-02"

var errSlotTaken = errors.New("time slot not available")

// resolveProvider turns the :idOrSlug path segment into an owner account.
// Numeric values are treated as raw provider ids, anything else as a public
// slug (normalized before lookup, cached in Redis).
func resolveProvider(idOrSlug string) (*models.User, error) {
	var provider models.User

	if id, err := strconv.ParseUint(idOrSlug, 10, 64); err == nil {
		if err := db.DB.First(&provider, uint(id)).Error; err != nil {
			return nil, err
		}
		return &provider, nil
	}

	slug := utils.NormalizeSlug(idOrSlug)
	if slug == "" {
		return nil, gorm.ErrRecordNotFound
	}

	if id := redis.LookupSlug(slug); id != 0 {
		if err := db.DB.First(&provider, id).Error; err == nil {
			return &provider, nil
		}
		redis.ForgetSlug(slug)
	}

	if err := db.DB.Where("slug = ?", slug).First(&provider).Error; err != nil {
		return nil, err
	}
	redis.CacheSlug(slug, provider.ID)
	return &provider, nil
}

// loadBookingData fetches the provider's services and weekly availability. A
// failed read degrades to an empty list so the page renders instead of
// blocking; the booking re-check catches anything stale.
func loadBookingData(providerID uint) ([]models.Service, []models.WeeklyAvailability) {
	var services []models.Service
	if err := db.DB.Where("provider_id = ?", providerID).Order("id asc").Find(&services).Error; err != nil {
		log.Printf("Failed to load services for provider %d: %v", providerID, err)
		services = []models.Service{}
	}

	var availability []models.WeeklyAvailability
	if err := db.DB.Where("provider_id = ?", providerID).Order("day_of_week asc").Find(&availability).Error; err != nil {
		log.Printf("Failed to load availability for provider %d: %v", providerID, err)
		availability = []models.WeeklyAvailability{}
	}

	return services, availability
}

// GetBookingPage returns everything the public booking page needs: the owner's
// public profile, their services and their weekly availability.
func GetBookingPage(c *fiber.Ctx) error {
	provider, err := resolveProvider(c.Params("idOrSlug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "This scheduling link is invalid or has expired.",
		})
	}

	services, availability := loadBookingData(provider.ID)

	return c.JSON(fiber.Map{
		"owner":        provider.PublicProfile(),
		"services":     services,
		"availability": availability,
	})
}

// activeAvailabilityFor returns the provider's active window for a weekday, or
// nil when the day is closed.
func activeAvailabilityFor(providerID uint, day time.Weekday) *models.WeeklyAvailability {
	var avail models.WeeklyAvailability
	err := db.DB.Where("provider_id = ? AND day_of_week = ? AND active = ?", providerID, int(day), true).
		First(&avail).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Failed to load availability for provider %d: %v", providerID, err)
		}
		return nil
	}
	return &avail
}

func serviceByName(providerID uint, name string) *models.Service {
	var service models.Service
	if err := db.DB.Where("provider_id = ? AND name = ?", providerID, name).First(&service).Error; err != nil {
		return nil
	}
	return &service
}

// occupyingAppointments loads every appointment that could overlap the target
// date. The generator skips cancelled rows itself; the status filter just
// keeps the result set small.
func occupyingAppointments(tx *gorm.DB, providerID uint, date time.Time) ([]models.Appointment, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	// An appointment started late yesterday can still reach into today.
	from := dayStart.Add(-24 * time.Hour)
	to := dayStart.Add(24 * time.Hour)

	var appointments []models.Appointment
	err := tx.Where("provider_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
		providerID, models.StatusCancelled, from, to).
		Find(&appointments).Error
	return appointments, err
}

// GetAvailableSlots computes the bookable start times for a date and service.
func GetAvailableSlots(c *fiber.Ctx) error {
	provider, err := resolveProvider(c.Params("idOrSlug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "This scheduling link is invalid or has expired.",
		})
	}

	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid or missing date, expected YYYY-MM-DD",
		})
	}

	service := serviceByName(provider.ID, c.Query("service"))
	if service == nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unknown or missing service",
		})
	}

	appointments, err := occupyingAppointments(db.DB, provider.ID, date)
	if err != nil {
		// Degraded read: offer the open grid rather than failing the page.
		log.Printf("Failed to load appointments for provider %d: %v", provider.ID, err)
		appointments = []models.Appointment{}
	}

	avail := activeAvailabilityFor(provider.ID, date.Weekday())
	slots, err := scheduler.GenerateSlots(date, avail, service, provider.BufferTime, appointments, time.Now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Could not compute slots",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"date":    date.Format(dateLayout),
		"service": service.Name,
		"slots":   slots,
	})
}

// BookingRequest is the public booking submission.
type BookingRequest struct {
	ClientName    string          `json:"client_name"`
	ClientEmail   string          `json:"client_email"`
	ClientPhone   string          `json:"client_phone"`
	ClientAddress string          `json:"client_address"`
	Service       string          `json:"service"`
	StartTime     models.FlexTime `json:"start_time"`
}

// CreateBooking books a slot for a client. The requested start instant is
// re-validated against current appointments inside the transaction, so two
// clients racing for the same slot cannot both win.
func CreateBooking(c *fiber.Ctx) error {
	provider, err := resolveProvider(c.Params("idOrSlug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "This scheduling link is invalid or has expired.",
		})
	}

	var req BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if req.ClientName == "" || req.ClientEmail == "" || req.StartTime.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "client_name, client_email and start_time are required",
		})
	}

	service := serviceByName(provider.ID, req.Service)
	if service == nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Unknown or missing service",
		})
	}

	start := req.StartTime.Time()
	appointment := models.Appointment{
		ProviderID:    provider.ID,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientPhone:   req.ClientPhone,
		ClientAddress: req.ClientAddress,
		Service:       service.Name,
		StartTime:     req.StartTime,
		Duration:      service.Duration,
		Status:        models.StatusBooked,
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		appointments, err := occupyingAppointments(tx, provider.ID, start)
		if err != nil {
			return err
		}

		avail := activeAvailabilityFor(provider.ID, start.Weekday())
		slots, err := scheduler.GenerateSlots(start, avail, service, provider.BufferTime, appointments, time.Now())
		if err != nil {
			return err
		}

		offered := false
		for _, slot := range slots {
			if slot.Equal(start) {
				offered = true
				break
			}
		}
		if !offered {
			return errSlotTaken
		}

		return tx.Create(&appointment).Error
	})
	if err != nil {
		if errors.Is(err, errSlotTaken) {
			return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
				Message: "Time slot not available",
			})
		}
		log.Printf("Booking write failed for provider %d: %v", provider.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to book appointment",
		})
	}

	go sendBookingConfirmation(provider, &appointment)

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func sendBookingConfirmation(provider *models.User, appointment *models.Appointment) {
	business := provider.BusinessName
	if business == "" {
		business = provider.Name
	}
	subject := fmt.Sprintf("Confirmed: %s with %s", appointment.Service, business)
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your appointment is confirmed.</p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>With:</strong> %s</li>
			<li><strong>When:</strong> %s</li>
			<li><strong>Length:</strong> %d minutes</li>
		</ul>
		<p>See you then!</p>
	`, appointment.ClientName, appointment.Service, business,
		appointment.StartTime.Time().Format("Monday, January 2 2006 at 15:04"),
		appointment.Duration)

	if err := utils.SendEmail(appointment.ClientEmail, subject, body); err != nil {
		log.Printf("Failed to send confirmation for appointment %d: %v", appointment.ID, err)
	}
}
