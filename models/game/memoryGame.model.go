package game

import (
	courseModels "learnhub/models/course"

	"gorm.io/gorm"
)

// Positions a memory game can occupy within its course
const (
	PositionStart  = "start"
	PositionMiddle = "middle"
	PositionEnd    = "end"
)

// MemoryGame is the memory-matching game attached to a gamified course.
// One game per course.
type MemoryGame struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"uniqueIndex;not null"`
	Name     string `json:"name" gorm:"not null"`
	Position string `json:"position"` // start, middle, end
	GridSize string `json:"grid_size"`

	Course courseModels.Course `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// MemoryGamePair is one question/answer card pair of a memory game
type MemoryGamePair struct {
	gorm.Model
	GameID       uint   `json:"game_id" gorm:"index;not null"`
	QuestionText string `json:"question_text"`
	AnswerText   string `json:"answer_text" gorm:"not null"`

	Game MemoryGame `json:"-" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"`
}
