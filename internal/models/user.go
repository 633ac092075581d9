package models

// User is an authenticated user of the tracker.
type User struct {
	Base
	Email    string `gorm:"not null;uniqueIndex" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Name     string `json:"name,omitempty"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}
