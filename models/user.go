package models

import (
	"time"
)

// User is a business owner account. Every service, availability window and
// appointment belongs to exactly one user.
type User struct {
	ID           uint                 `json:"id" gorm:"primaryKey"`
	Name         string               `json:"name"`
	Email        string               `json:"email" gorm:"unique"`
	Password     string               `json:"password,omitempty"`
	BusinessName string               `json:"business_name"`
	Slug         string               `json:"slug" gorm:"uniqueIndex:idx_users_slug,where:slug <> ''"`
	BufferTime   int                  `json:"buffer_time"` // minutes between slot-grid entries
	IsOnboarded  bool                 `json:"is_onboarded" gorm:"default:false"`
	PhotoURL     string               `json:"photo_url"`
	Services     []Service            `json:"services,omitempty" gorm:"foreignKey:ProviderID"`
	Availability []WeeklyAvailability `json:"availability,omitempty" gorm:"foreignKey:ProviderID"`
	Appointments []Appointment        `json:"appointments,omitempty" gorm:"foreignKey:ProviderID"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// PublicProfile strips everything a booking client has no business seeing.
func (u *User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":            u.ID,
		"name":          u.Name,
		"business_name": u.BusinessName,
		"photo_url":     u.PhotoURL,
		"buffer_time":   u.BufferTime,
	}
}
