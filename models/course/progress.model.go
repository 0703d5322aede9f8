package course

import (
	"time"

	"gorm.io/gorm"
)

// Course progress states
const (
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// LessonProgress is the per (user, lesson) completion record. CompletedAt
// is set exactly when Completed transitions false to true and cleared when
// it transitions back.
type LessonProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_lesson_progress_user_lesson"`
	LessonID    uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_lesson_progress_user_lesson"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`

	Lesson Lesson `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// CourseProgress is the materialized aggregate over LessonProgress rows for
// one (user, course) pair. It is only ever written by
// RecomputeCourseProgress, never directly by a client.
type CourseProgress struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_course_progress_user_course"`
	CourseID         uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_course_progress_user_course"`
	CompletedLessons int        `json:"completed_lessons" gorm:"default:0"`
	TotalLessons     int        `json:"total_lessons" gorm:"default:0"`
	Status           string     `json:"status" gorm:"default:'in_progress'"` // in_progress, completed
	CompletedAt      *time.Time `json:"completed_at"`

	Course Course `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
