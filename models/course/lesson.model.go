package course

import "gorm.io/gorm"

// Lesson is an ordered content unit within a course. (course_id, order) is
// unique, and at most one lesson per course may be game-linked; both are
// enforced with indexes in database.Migrate so concurrent writers cannot
// commit conflicting rows.
type Lesson struct {
	gorm.Model
	CourseID     uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_lesson_course_order"`
	Title        string `json:"title" gorm:"not null"`
	Content      string `json:"content,omitempty" gorm:"type:text"` // gated
	FileURL      string `json:"file_url,omitempty"`                 // gated
	Order        int    `json:"order" gorm:"column:order;not null;uniqueIndex:idx_lesson_course_order"`
	IsGameLinked bool   `json:"is_game_linked" gorm:"default:false"`

	Course Course `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
