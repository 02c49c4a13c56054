package completion

import (
	"testing"
	"time"

	"Backend-ScholarDB/src/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func stagedSet(t *testing.T, op mongo.WriteModel) bson.M {
	t.Helper()
	model, ok := op.(*mongo.UpdateOneModel)
	assert.True(t, ok)
	update, ok := model.Update.(bson.M)
	assert.True(t, ok)
	set, ok := update["$set"].(bson.M)
	assert.True(t, ok)
	return set
}

func TestStageStatusUpdates(t *testing.T) {
	fieldID := primitive.NewObjectID()
	fields := []models.ScholarField{buildField(fieldID, models.Question{
		QuestionID:   "q1",
		QuestionType: models.QuestionShortAnswer,
	})}
	now := time.Now()

	answered := models.FormData{fieldID.Hex(): map[string]interface{}{"q1": "ตอบแล้ว"}}
	unanswered := models.FormData{}

	t.Run("UnchangedStatusesStageNothing", func(t *testing.T) {
		students := []models.Student{
			{ID: primitive.NewObjectID(), FormData: answered, Status: models.StudentStatusCompleted},
			{ID: primitive.NewObjectID(), FormData: answered, Status: models.StudentStatusCompleted},
			{ID: primitive.NewObjectID(), FormData: unanswered, Status: models.StudentStatusIncomplete},
		}

		ops := stageStatusUpdates(students, fields, now)
		assert.Empty(t, ops)
	})

	t.Run("OnlyChangedStudentsAreStaged", func(t *testing.T) {
		flipped := models.Student{ID: primitive.NewObjectID(), FormData: answered, Status: models.StudentStatusIncomplete}
		students := []models.Student{
			flipped,
			{ID: primitive.NewObjectID(), FormData: unanswered, Status: models.StudentStatusIncomplete},
		}

		ops := stageStatusUpdates(students, fields, now)
		assert.Len(t, ops, 1)

		set := stagedSet(t, ops[0])
		assert.Equal(t, models.StudentStatusCompleted, set["status"])
		assert.Equal(t, now, set["updated_at"])
	})

	t.Run("SubmittedAtSetOnFirstCompletion", func(t *testing.T) {
		students := []models.Student{
			{ID: primitive.NewObjectID(), FormData: answered, Status: models.StudentStatusIncomplete},
		}

		ops := stageStatusUpdates(students, fields, now)
		assert.Len(t, ops, 1)
		assert.Equal(t, now, stagedSet(t, ops[0])["submitted_at"])
	})

	t.Run("SubmittedAtNeverOverwritten", func(t *testing.T) {
		earlier := now.Add(-time.Hour)
		students := []models.Student{
			{
				ID:          primitive.NewObjectID(),
				FormData:    answered,
				Status:      models.StudentStatusIncomplete,
				SubmittedAt: &earlier,
			},
		}

		ops := stageStatusUpdates(students, fields, now)
		assert.Len(t, ops, 1)

		set := stagedSet(t, ops[0])
		assert.Equal(t, models.StudentStatusCompleted, set["status"])
		assert.NotContains(t, set, "submitted_at")
	})

	t.Run("SubmittedAtKeptWhenSchemaGrowsStricter", func(t *testing.T) {
		// schema เพิ่มคำถาม คนที่เคยส่งแล้วตกเป็น incomplete
		// แต่ submitted_at เดิมต้องไม่ถูกแตะ
		earlier := now.Add(-time.Hour)
		students := []models.Student{
			{
				ID:          primitive.NewObjectID(),
				FormData:    unanswered,
				Status:      models.StudentStatusCompleted,
				SubmittedAt: &earlier,
			},
		}

		ops := stageStatusUpdates(students, fields, now)
		assert.Len(t, ops, 1)

		set := stagedSet(t, ops[0])
		assert.Equal(t, models.StudentStatusIncomplete, set["status"])
		assert.NotContains(t, set, "submitted_at")
	})

	t.Run("NoStudents", func(t *testing.T) {
		assert.Empty(t, stageStatusUpdates(nil, fields, now))
	})
}
