package course

import "gorm.io/gorm"

// CourseSubscription grants a student access to a course's gated content.
// Cancelling flips IsActive off; the row is never deleted once created, so
// re-subscribing reuses it and UpdatedAt reflects the latest transition.
type CourseSubscription struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_subscription_user_course"`
	CourseID uint `json:"course_id" gorm:"not null;uniqueIndex:idx_subscription_user_course"`
	IsActive bool `json:"is_active" gorm:"default:true"`

	Course Course `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
