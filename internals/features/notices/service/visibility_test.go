package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/notices/model"
)

func publishedNotice(audience ...string) *model.NoticeModel {
	return &model.NoticeModel{
		ID:             uuid.New(),
		IsPublished:    true,
		TargetAudience: pq.StringArray(audience),
	}
}

func TestVisibleTo_Audience(t *testing.T) {
	now := time.Now()
	student := Viewer{UserID: uuid.New(), Role: constants.RoleStudent}
	teacher := Viewer{UserID: uuid.New(), Role: constants.RoleTeacher}

	t.Run("all admits every role", func(t *testing.T) {
		n := publishedNotice("All")
		assert.True(t, VisibleTo(n, student, now))
		assert.True(t, VisibleTo(n, teacher, now))
	})

	t.Run("teachers-only notice stays hidden from students", func(t *testing.T) {
		n := publishedNotice("Teachers")
		assert.True(t, VisibleTo(n, teacher, now))
		assert.False(t, VisibleTo(n, student, now))
	})

	t.Run("audience names are case-insensitive", func(t *testing.T) {
		n := publishedNotice("students")
		assert.True(t, VisibleTo(n, student, now))
	})
}

func TestVisibleTo_Publication(t *testing.T) {
	now := time.Now()
	student := Viewer{UserID: uuid.New(), Role: constants.RoleStudent}
	admin := Viewer{UserID: uuid.New(), Role: constants.RoleAdmin}

	t.Run("draft hidden from everyone but admins", func(t *testing.T) {
		n := publishedNotice("All")
		n.IsPublished = false
		assert.False(t, VisibleTo(n, student, now))
		assert.True(t, VisibleTo(n, admin, now))
	})

	t.Run("future publish date hides", func(t *testing.T) {
		n := publishedNotice("All")
		future := now.AddDate(0, 0, 2)
		n.PublishDate = &future
		assert.False(t, VisibleTo(n, student, now))
	})

	t.Run("past expiry hides immediately", func(t *testing.T) {
		n := publishedNotice("All")
		expiry := now.Add(-2 * time.Hour)
		n.ExpiryDate = &expiry
		assert.False(t, VisibleTo(n, student, now))

		future := now.Add(2 * time.Hour)
		n.ExpiryDate = &future
		assert.True(t, VisibleTo(n, student, now))
	})

	t.Run("include expired overrides only the expiry rule", func(t *testing.T) {
		n := publishedNotice("All")
		expiry := now.AddDate(0, 0, -3)
		n.ExpiryDate = &expiry

		curious := student
		curious.IncludeExpired = true
		assert.True(t, VisibleTo(n, curious, now))

		n.IsPublished = false
		assert.False(t, VisibleTo(n, curious, now), "drafts stay hidden regardless")
	})
}

func TestVisibleTo_ClassTargeting(t *testing.T) {
	now := time.Now()
	classA := uuid.New()
	classB := uuid.New()

	n := publishedNotice("Students")
	n.TargetClassIDs = pq.StringArray{classA.String()}

	inClassA := Viewer{UserID: uuid.New(), Role: constants.RoleStudent, ClassID: &classA}
	inClassB := Viewer{UserID: uuid.New(), Role: constants.RoleStudent, ClassID: &classB}
	noClass := Viewer{UserID: uuid.New(), Role: constants.RoleStudent}

	assert.True(t, VisibleTo(n, inClassA, now))
	assert.False(t, VisibleTo(n, inClassB, now))
	assert.False(t, VisibleTo(n, noClass, now))

	t.Run("teachers ignore class targeting", func(t *testing.T) {
		tn := publishedNotice("Teachers")
		tn.TargetClassIDs = pq.StringArray{classA.String()}
		teacher := Viewer{UserID: uuid.New(), Role: constants.RoleTeacher}
		assert.True(t, VisibleTo(tn, teacher, now))
	})
}
