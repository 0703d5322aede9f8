package course

import "gorm.io/gorm"

// Course levels
const (
	LevelBasic        = "basic"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// Publication states
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Gamification kinds. Memory-matching is the only kind supported.
const GamificationMemory = "memory"

// Course represents a learning course owned by a professor
type Course struct {
	gorm.Model
	ProfessorID      uint   `json:"professor_id" gorm:"index;not null"` // immutable after creation
	PublicCode       string `json:"public_code" gorm:"uniqueIndex;not null"`
	Title            string `json:"title" gorm:"not null"`
	ShortDescription string `json:"short_description" gorm:"type:text"`
	LongDescription  string `json:"long_description" gorm:"type:text"`
	Category         string `json:"category"`
	Level            string `json:"level"`                            // basic, intermediate, advanced
	DurationHours    int    `json:"duration_hours" gorm:"default:0"`  // duration in hours
	CoverImageURL    string `json:"cover_image_url"`
	Status           string `json:"status" gorm:"default:'draft'"` // draft, published

	// GamificationType must be non-null whenever GamificationEnabled is true.
	// Backed by a CHECK constraint in database.Migrate.
	GamificationEnabled bool   `json:"gamification_enabled" gorm:"default:false"`
	GamificationType    string `json:"gamification_type" gorm:"default:'';check:chk_course_gamification_type,gamification_enabled = false OR gamification_type <> ''"`
}

// IsOwnedBy reports whether userID is the owning professor.
func (c *Course) IsOwnedBy(userID uint) bool {
	return c.ProfessorID == userID
}
