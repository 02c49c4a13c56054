package completion

import (
	"testing"

	"Backend-ScholarDB/src/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func buildField(id primitive.ObjectID, questions ...models.Question) models.ScholarField {
	return models.ScholarField{
		ID:         id,
		FieldName:  "personal_info",
		FieldLabel: "ข้อมูลส่วนตัว",
		Questions:  questions,
	}
}

func TestIsComplete(t *testing.T) {
	fieldID := primitive.NewObjectID()

	t.Run("NoFieldsIsAlwaysComplete", func(t *testing.T) {
		assert.True(t, IsComplete(models.FormData{}, nil))
		assert.True(t, IsComplete(nil, []models.ScholarField{}))
	})

	t.Run("EmptyFormIsIncomplete", func(t *testing.T) {
		fields := []models.ScholarField{buildField(fieldID, models.Question{
			QuestionID:   "q1",
			QuestionType: models.QuestionShortAnswer,
		})}

		assert.False(t, IsComplete(models.FormData{}, fields))
		assert.False(t, IsComplete(nil, fields))
	})

	t.Run("AllQuestionsAnswered", func(t *testing.T) {
		fields := []models.ScholarField{buildField(fieldID,
			models.Question{QuestionID: "q1", QuestionType: models.QuestionShortAnswer},
			models.Question{QuestionID: "q2", QuestionType: models.QuestionRadio},
		)}
		formData := models.FormData{
			fieldID.Hex(): map[string]interface{}{
				"q1": "สมชาย",
				"q2": "option_a",
			},
		}

		assert.True(t, IsComplete(formData, fields))
	})

	t.Run("RequiredFlagIsIgnored", func(t *testing.T) {
		// ทุกคำถามเป็นข้อบังคับเสมอ แม้ required จะเป็น false
		fields := []models.ScholarField{buildField(fieldID, models.Question{
			QuestionID:   "q1",
			QuestionType: models.QuestionShortAnswer,
			Required:     false,
		})}

		assert.False(t, IsComplete(models.FormData{fieldID.Hex(): map[string]interface{}{}}, fields))
	})

	t.Run("EmptyStringAndEmptyListFail", func(t *testing.T) {
		fields := []models.ScholarField{buildField(fieldID, models.Question{
			QuestionID:   "q1",
			QuestionType: models.QuestionCheckbox,
		})}

		empty := models.FormData{fieldID.Hex(): map[string]interface{}{"q1": ""}}
		assert.False(t, IsComplete(empty, fields))

		emptyList := models.FormData{fieldID.Hex(): map[string]interface{}{"q1": []interface{}{}}}
		assert.False(t, IsComplete(emptyList, fields))

		filled := models.FormData{fieldID.Hex(): map[string]interface{}{"q1": []interface{}{"a"}}}
		assert.True(t, IsComplete(filled, fields))
	})

	t.Run("OtherAnswerNeedsFreeText", func(t *testing.T) {
		fields := []models.ScholarField{buildField(fieldID, models.Question{
			QuestionID:   "q1",
			QuestionType: models.QuestionRadio,
			AllowOther:   true,
		})}

		withoutText := models.FormData{fieldID.Hex(): map[string]interface{}{"q1": "other"}}
		assert.False(t, IsComplete(withoutText, fields))

		blankText := models.FormData{fieldID.Hex(): map[string]interface{}{
			"q1":       "other",
			"q1_other": "   ",
		}}
		assert.False(t, IsComplete(blankText, fields))

		withText := models.FormData{fieldID.Hex(): map[string]interface{}{
			"q1":       "other",
			"q1_other": "ทุนอื่นๆ",
		}}
		assert.True(t, IsComplete(withText, fields))
	})

	t.Run("OtherInCheckboxList", func(t *testing.T) {
		fields := []models.ScholarField{buildField(fieldID, models.Question{
			QuestionID:   "q1",
			QuestionType: models.QuestionCheckbox,
			AllowOther:   true,
		})}

		missing := models.FormData{fieldID.Hex(): map[string]interface{}{
			"q1": []interface{}{"a", "other"},
		}}
		assert.False(t, IsComplete(missing, fields))

		present := models.FormData{fieldID.Hex(): map[string]interface{}{
			"q1":       []interface{}{"a", "other"},
			"q1_other": "คำตอบอิสระ",
		}}
		assert.True(t, IsComplete(present, fields))
	})

	t.Run("TableDataCells", func(t *testing.T) {
		fields := []models.ScholarField{buildField(fieldID, models.Question{
			QuestionID:   "tbl",
			QuestionType: models.QuestionTable,
			TableConfig:  &models.TableConfig{Rows: 2, Columns: 2},
		})}

		// แถว 0 / คอลัมน์ 0 เป็น header มีช่องข้อมูลเดียวคือ 1_1
		complete := models.FormData{fieldID.Hex(): map[string]interface{}{
			"tbl": map[string]interface{}{"1_1": "x"},
		}}
		assert.True(t, IsComplete(complete, fields))

		blankCell := models.FormData{fieldID.Hex(): map[string]interface{}{
			"tbl": map[string]interface{}{"1_1": "  "},
		}}
		assert.False(t, IsComplete(blankCell, fields))
	})

	t.Run("TableWithOnlyHeaders", func(t *testing.T) {
		fields := []models.ScholarField{buildField(fieldID, models.Question{
			QuestionID:   "tbl",
			QuestionType: models.QuestionTable,
			TableConfig:  &models.TableConfig{Rows: 1, Columns: 3},
		})}

		// ตารางไม่มีช่องข้อมูล แค่มีคำตอบ scalar ก็ถือว่าครบ
		formData := models.FormData{fieldID.Hex(): map[string]interface{}{"tbl": "seen"}}
		assert.True(t, IsComplete(formData, fields))
	})

	t.Run("Deterministic", func(t *testing.T) {
		fields := []models.ScholarField{buildField(fieldID,
			models.Question{QuestionID: "q1", QuestionType: models.QuestionShortAnswer},
			models.Question{QuestionID: "q2", QuestionType: models.QuestionDropdown},
		)}
		formData := models.FormData{
			fieldID.Hex(): map[string]interface{}{"q1": "a"},
		}

		first := IsComplete(formData, fields)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, IsComplete(formData, fields))
		}
	})
}
