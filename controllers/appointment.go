package controllers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/zedule/zedule-server/db"
	"github.com/zedule/zedule-server/models"
	"github.com/zedule/zedule-server/utils"
)

// ListAppointments returns the owner's upcoming appointments, soonest first.
func ListAppointments(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	limit := 50
	if c.Query("limit") != "" {
		if parsedLimit := c.QueryInt("limit"); parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	now := time.Now()
	startDate := now
	endDate := now.AddDate(0, 1, 0)

	dateFilter := c.Query("filter", "month")
	switch dateFilter {
	case "today":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	case "tomorrow":
		tomorrow := now.AddDate(0, 0, 1)
		startDate = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 23, 59, 59, 0, now.Location())
	case "week":
		endDate = now.AddDate(0, 0, 7)
	case "month":
		endDate = now.AddDate(0, 1, 0)
	case "all":
		startDate = time.Time{}
		endDate = now.AddDate(1, 0, 0)
	}

	var appointments []models.Appointment
	query := db.DB.
		Where("provider_id = ?", userID).
		Where("start_time >= ? AND start_time <= ?", startDate, endDate).
		Order("start_time asc").
		Limit(limit)

	if c.Query("include_cancelled") != "true" {
		query = query.Where("status <> ?", models.StatusCancelled)
	}

	if err := query.Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
		"filter":       dateFilter,
		"start_date":   startDate.Format(dateLayout),
		"end_date":     endDate.Format(dateLayout),
	})
}

// CreateManualAppointment lets the owner enter a booking by hand, bypassing
// the public slot grid. No conflict check: the owner is trusted to manage
// their own calendar, same as the original manual-entry modal.
func CreateManualAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if appointment.ClientName == "" || appointment.StartTime.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "client_name and start_time are required",
		})
	}

	appointment.ProviderID = userID
	appointment.Status = models.StatusBooked
	if appointment.Duration <= 0 {
		if service := serviceByName(userID, appointment.Service); service != nil {
			appointment.Duration = service.Duration
		} else {
			appointment.Duration = models.DefaultDuration
		}
	}

	if err := db.DB.Create(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create appointment",
			Error:   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// CancelAppointment flips an appointment to cancelled. Records are never
// deleted, so the slot frees up while the history stays visible.
func CancelAppointment(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	id := c.Params("id")

	var appointment models.Appointment
	if err := db.DB.Where("provider_id = ?", userID).First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
		})
	}

	if err := appointment.Cancel(db.DB); err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Failed to cancel appointment",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// GetClients derives the owner's client directory from their appointment
// history: one entry per distinct client email, with visit count and the most
// recent appointment.
func GetClients(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var appointments []models.Appointment
	if err := db.DB.Where("provider_id = ?", userID).
		Order("start_time desc").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch clients",
			Error:   err.Error(),
		})
	}

	type client struct {
		Name      string          `json:"name"`
		Email     string          `json:"email"`
		Phone     string          `json:"phone"`
		Visits    int             `json:"visits"`
		LastVisit models.FlexTime `json:"last_visit"`
	}

	byEmail := map[string]*client{}
	order := []string{}
	for i := range appointments {
		a := &appointments[i]
		key := a.ClientEmail
		if key == "" {
			key = a.ClientName
		}
		if key == "" {
			continue
		}
		entry, ok := byEmail[key]
		if !ok {
			entry = &client{
				Name:      a.ClientName,
				Email:     a.ClientEmail,
				Phone:     a.ClientPhone,
				LastVisit: a.StartTime,
			}
			byEmail[key] = entry
			order = append(order, key)
		}
		entry.Visits++
	}

	clients := make([]client, 0, len(order))
	for _, key := range order {
		clients = append(clients, *byEmail[key])
	}

	return c.JSON(fiber.Map{
		"clients": clients,
		"count":   len(clients),
	})
}

// GenerateDemoData seeds five demo bookings over the coming days so a new
// dashboard has something to show.
func GenerateDemoData(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	clients := []string{"Isabela Martinez", "Carlos Thompson", "Maria Rodriguez", "James Wilson", "Elena Smith"}
	services := []string{"Strategy Consultation", "Branding Audit", "Quick Check-in"}
	now := time.Now()

	created := make([]models.Appointment, 0, 5)
	for i := 0; i < 5; i++ {
		start := time.Date(now.Year(), now.Month(), now.Day(), 10+i, 0, 0, 0, now.Location()).AddDate(0, 0, i)
		appointment := models.Appointment{
			ProviderID:  userID,
			ClientName:  clients[i%len(clients)],
			ClientEmail: fmt.Sprintf("client%d@example.com", i),
			Service:     services[i%len(services)],
			StartTime:   models.NewFlexTime(start),
			Duration:    60,
			Status:      models.StatusBooked,
		}
		if err := db.DB.Create(&appointment).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
				Message: "Failed to generate demo data",
				Error:   err.Error(),
			})
		}
		created = append(created, appointment)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"appointments": created,
		"count":        len(created),
	})
}
