package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCancelled AppointmentStatus = "cancelled"
)

// DefaultDuration is assumed for appointments stored without one.
const DefaultDuration = 30

// Appointment is a booked time interval against a provider's calendar. Records
// are never deleted; cancelling flips the status so the slot frees up while the
// history stays intact. Any status other than "cancelled" occupies its interval.
type Appointment struct {
	gorm.Model
	ProviderID    uint              `json:"provider_id"`
	ClientName    string            `json:"client_name"`
	ClientEmail   string            `json:"client_email"`
	ClientPhone   string            `json:"client_phone"`
	ClientAddress string            `json:"client_address"`
	Service       string            `json:"service"`
	StartTime     FlexTime          `json:"start_time"`
	Duration      int               `json:"duration"` // minutes, 0 means DefaultDuration
	Status        AppointmentStatus `json:"status"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusBooked
	}
	return nil
}

// DurationOrDefault returns the appointment length, falling back to 30 minutes
// when the record carries none.
func (a *Appointment) DurationOrDefault() time.Duration {
	if a.Duration <= 0 {
		return DefaultDuration * time.Minute
	}
	return time.Duration(a.Duration) * time.Minute
}

// Interval returns the half-open [start, end) occupied by the appointment.
func (a *Appointment) Interval() (time.Time, time.Time) {
	start := a.StartTime.Time()
	return start, start.Add(a.DurationOrDefault())
}

// Cancel transitions the appointment to cancelled and persists it. Cancelling
// twice is rejected.
func (a *Appointment) Cancel(tx *gorm.DB) error {
	if a.Status == StatusCancelled {
		return fmt.Errorf("appointment %d is already cancelled", a.ID)
	}
	a.Status = StatusCancelled
	return tx.Save(a).Error
}
