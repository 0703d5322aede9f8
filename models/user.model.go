package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Role-gated handlers match on these constants only.
const (
	RoleProfessor = "PROFESSOR"
	RoleStudent   = "STUDENT"
)

type User struct {
	gorm.Model
	FirstName           string     `json:"first_name" gorm:"default:''"`
	LastName            string     `json:"last_name" gorm:"default:''"`
	Email               string     `json:"email" gorm:"unique;not null"`
	Password            string     `json:"-" gorm:"not null"`
	Role                string     `json:"role" gorm:"default:'STUDENT'"` // PROFESSOR, STUDENT
	LastLogin           time.Time  `json:"last_login" gorm:"default:NULL"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"-"`
	IsLocked            bool       `json:"is_locked" gorm:"default:false"`

	// Platform subscription window, disabled by the daily scheduler when
	// SubscriptionEnd passes.
	HasPlatformSubscription bool       `json:"has_platform_subscription" gorm:"default:false"`
	SubscriptionStart       *time.Time `json:"subscription_start"`
	SubscriptionEnd         *time.Time `json:"subscription_end"`

	IsDeleted bool `json:"-" gorm:"default:false"`
}
