package controllers

import (
	"learnhub/models"
	courseModels "learnhub/models/course"

	"gorm.io/gorm"
)

// IsCourseUnlocked decides whether gated fields of a course (lesson content,
// lesson files, game payload) are visible to the viewer. Pure read, no side
// effects. Call it once per detail render and apply the result to every
// gated field of that response.
//
// Owning professor: always unlocked, published or not. Student: unlocked
// iff an active subscription row exists. Anything else: locked.
func IsCourseUnlocked(db *gorm.DB, viewer *models.User, crs *courseModels.Course) bool {
	if viewer == nil {
		return false
	}

	switch viewer.Role {
	case models.RoleProfessor:
		return crs.IsOwnedBy(viewer.ID)
	case models.RoleStudent:
		var sub courseModels.CourseSubscription
		err := db.Where("user_id = ? AND course_id = ? AND is_active = ?", viewer.ID, crs.ID, true).
			First(&sub).Error
		return err == nil
	}

	return false
}
