package controllers_test

import (
	"testing"

	controllers "learnhub/controllers/course"
	"learnhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCourseUnlocked(t *testing.T) {
	db := setupTestDB(t)

	owner := createUser(t, db, "owner@example.com", models.RoleProfessor)
	otherProf := createUser(t, db, "other@example.com", models.RoleProfessor)
	subscriber := createUser(t, db, "sub@example.com", models.RoleStudent)
	stranger := createUser(t, db, "stranger@example.com", models.RoleStudent)

	crs := createCourse(t, db, owner.ID, "crs-gate", false)
	subscribe(t, db, subscriber.ID, crs.ID)

	assert.True(t, controllers.IsCourseUnlocked(db, owner, crs), "owner always unlocked")
	assert.False(t, controllers.IsCourseUnlocked(db, otherProf, crs), "non-owning professor locked")
	assert.True(t, controllers.IsCourseUnlocked(db, subscriber, crs), "active subscriber unlocked")
	assert.False(t, controllers.IsCourseUnlocked(db, stranger, crs), "student without subscription locked")
	assert.False(t, controllers.IsCourseUnlocked(db, nil, crs), "anonymous locked")
}

func TestIsCourseUnlockedOwnerOfDraft(t *testing.T) {
	db := setupTestDB(t)

	owner := createUser(t, db, "owner@example.com", models.RoleProfessor)
	crs := createCourse(t, db, owner.ID, "crs-draft", false)
	require.NoError(t, db.Model(crs).Update("status", "draft").Error)
	crs.Status = "draft"

	assert.True(t, controllers.IsCourseUnlocked(db, owner, crs), "draft status does not lock the owner out")
}

func TestIsCourseUnlockedFollowsSubscriptionState(t *testing.T) {
	db := setupTestDB(t)

	owner := createUser(t, db, "owner@example.com", models.RoleProfessor)
	student := createUser(t, db, "student@example.com", models.RoleStudent)
	crs := createCourse(t, db, owner.ID, "crs-cycle", false)

	assert.False(t, controllers.IsCourseUnlocked(db, student, crs))

	sub := subscribe(t, db, student.ID, crs.ID)
	assert.True(t, controllers.IsCourseUnlocked(db, student, crs))

	sub.IsActive = false
	require.NoError(t, db.Save(sub).Error)
	assert.False(t, controllers.IsCourseUnlocked(db, student, crs), "cancelled subscription locks again")

	sub.IsActive = true
	require.NoError(t, db.Save(sub).Error)
	assert.True(t, controllers.IsCourseUnlocked(db, student, crs), "reactivated subscription unlocks again")
}
