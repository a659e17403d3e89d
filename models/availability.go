package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeeklyAvailability is one recurring working-hours window per day of week.
// Times are wall-clock "HH:MM" strings in 24h format, interpreted in the
// provider's local day. Inactive days contribute no slots.
type WeeklyAvailability struct {
	gorm.Model
	ProviderID uint      `json:"provider_id" gorm:"uniqueIndex:idx_availability_provider_day"`
	DayOfWeek  DayOfWeek `json:"day_of_week" gorm:"uniqueIndex:idx_availability_provider_day"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Active     bool      `json:"active" gorm:"default:true"`
}
