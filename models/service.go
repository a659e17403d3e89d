package models

import (
	"gorm.io/gorm"
)

// Service is something a provider offers for booking. Duration is in minutes
// and drives both the slot length and the slot-grid step on the booking page.
type Service struct {
	gorm.Model
	ProviderID uint   `json:"provider_id"`
	Name       string `json:"name"`
	Duration   int    `json:"duration"`
}
