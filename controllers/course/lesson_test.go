package controllers_test

import (
	"testing"

	controllers "learnhub/controllers/course"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestResolveLessonOrderAutoAssign(t *testing.T) {
	db := setupTestDB(t)

	professor := createUser(t, db, "prof@example.com", models.RoleProfessor)
	crs := createCourse(t, db, professor.ID, "crs-order", false)

	order, errs := controllers.ResolveLessonOrder(db, crs, nil, false, 0)
	assert.Empty(t, errs)
	assert.Equal(t, 1, order, "first lesson of an empty course gets order 1")

	createLesson(t, db, crs.ID, 1)
	createLesson(t, db, crs.ID, 2)
	createLesson(t, db, crs.ID, 3)

	order, errs = controllers.ResolveLessonOrder(db, crs, nil, false, 0)
	assert.Empty(t, errs)
	assert.Equal(t, 4, order, "auto-assign continues after the max")
}

func TestResolveLessonOrderDuplicateRejected(t *testing.T) {
	db := setupTestDB(t)

	professor := createUser(t, db, "prof@example.com", models.RoleProfessor)
	crs := createCourse(t, db, professor.ID, "crs-dup", false)
	lesson := createLesson(t, db, crs.ID, 1)
	createLesson(t, db, crs.ID, 2)

	_, errs := controllers.ResolveLessonOrder(db, crs, intPtr(2), false, 0)
	assert.Contains(t, errs, "order")

	// Keeping a lesson's own order on update is not a conflict.
	order, errs := controllers.ResolveLessonOrder(db, crs, intPtr(1), false, lesson.ID)
	assert.Empty(t, errs)
	assert.Equal(t, 1, order)

	_, errs = controllers.ResolveLessonOrder(db, crs, intPtr(0), false, 0)
	assert.Contains(t, errs, "order")

	// The same order is free in a different course.
	other := createCourse(t, db, professor.ID, "crs-dup-2", false)
	order, errs = controllers.ResolveLessonOrder(db, other, intPtr(2), false, 0)
	assert.Empty(t, errs)
	assert.Equal(t, 2, order)
}

func TestResolveLessonOrderGameLink(t *testing.T) {
	db := setupTestDB(t)

	professor := createUser(t, db, "prof@example.com", models.RoleProfessor)
	plain := createCourse(t, db, professor.ID, "crs-plain", false)
	gamified := createCourse(t, db, professor.ID, "crs-game", true)

	_, errs := controllers.ResolveLessonOrder(db, plain, nil, true, 0)
	assert.Contains(t, errs, "is_game_linked", "game link requires a gamified course")

	_, errs = controllers.ResolveLessonOrder(db, gamified, nil, true, 0)
	assert.Empty(t, errs)

	carrier := &courseModels.Lesson{CourseID: gamified.ID, Title: "Carrier", Order: 1, IsGameLinked: true}
	require.NoError(t, db.Create(carrier).Error)

	_, errs = controllers.ResolveLessonOrder(db, gamified, nil, true, 0)
	assert.Contains(t, errs, "is_game_linked", "only one lesson may carry the game")

	// The carrier itself may keep its link on update.
	_, errs = controllers.ResolveLessonOrder(db, gamified, intPtr(1), true, carrier.ID)
	assert.Empty(t, errs)

	// Unlinking frees the slot for another lesson.
	carrier.IsGameLinked = false
	require.NoError(t, db.Save(carrier).Error)

	_, errs = controllers.ResolveLessonOrder(db, gamified, nil, true, 0)
	assert.Empty(t, errs)
}

func TestLessonOrderUniqueIndexBacksValidation(t *testing.T) {
	db := setupTestDB(t)

	professor := createUser(t, db, "prof@example.com", models.RoleProfessor)
	crs := createCourse(t, db, professor.ID, "crs-idx", false)
	createLesson(t, db, crs.ID, 1)

	dup := &courseModels.Lesson{CourseID: crs.ID, Title: "Dup", Order: 1}
	err := db.Create(dup).Error
	require.Error(t, err, "store rejects a duplicate order even when validation is bypassed")
}

func TestDeleteLessonFreesOrderSlot(t *testing.T) {
	db := setupTestDB(t)

	professor := createUser(t, db, "prof@example.com", models.RoleProfessor)
	crs := createCourse(t, db, professor.ID, "crs-free", false)
	lesson := createLesson(t, db, crs.ID, 1)

	require.NoError(t, db.Unscoped().Delete(lesson).Error)

	again := &courseModels.Lesson{CourseID: crs.ID, Title: "Again", Order: 1}
	require.NoError(t, db.Create(again).Error, "hard delete frees the order slot")
}
