package export

import (
	"strings"
	"testing"

	"Backend-ScholarDB/src/models"

	"github.com/stretchr/testify/assert"
)

func TestConvertToCSVString(t *testing.T) {
	t.Run("PlainValues", func(t *testing.T) {
		out := ConvertToCSVString([]string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}})
		assert.Equal(t, "a,b\n1,2\n3,4", out)
	})

	t.Run("CommaTriggersQuoting", func(t *testing.T) {
		out := ConvertToCSVString([]string{"h"}, [][]string{{"a, b"}})
		assert.Equal(t, "h\n\"a, b\"", out)
	})

	t.Run("QuotesAreDoubled", func(t *testing.T) {
		out := ConvertToCSVString([]string{"h"}, [][]string{{`say "hi"`}})
		assert.Equal(t, "h\n\"say \"\"hi\"\"\"", out)
	})

	t.Run("NewlineTriggersQuoting", func(t *testing.T) {
		out := ConvertToCSVString([]string{"h"}, [][]string{{"line1\nline2"}})
		assert.Equal(t, "h\n\"line1\nline2\"", out)
	})

	t.Run("EmptyRows", func(t *testing.T) {
		out := ConvertToCSVString([]string{"a", "b"}, [][]string{})
		assert.Equal(t, "a,b", out)
	})
}

func TestAnswerCell(t *testing.T) {
	t.Run("ScalarAnswer", func(t *testing.T) {
		formData := models.FormData{
			"field1": map[string]interface{}{"q1": "คำตอบ"},
		}
		assert.Equal(t, "คำตอบ", answerCell(formData, "q1"))
	})

	t.Run("MissingKeyIsEmpty", func(t *testing.T) {
		formData := models.FormData{
			"field1": map[string]interface{}{"q1": "a"},
		}
		assert.Equal(t, "", answerCell(formData, "q2"))
	})

	t.Run("ListJoinedWithComma", func(t *testing.T) {
		formData := models.FormData{
			"field1": map[string]interface{}{"q1": []interface{}{"A", "B"}},
		}
		assert.Equal(t, "A, B", answerCell(formData, "q1"))
	})

	t.Run("OtherInListSubstituted", func(t *testing.T) {
		formData := models.FormData{
			"field1": map[string]interface{}{
				"q1":       []interface{}{"A", "other"},
				"q1_other": "Scholarship essay",
			},
		}
		assert.Equal(t, "A, Scholarship essay", answerCell(formData, "q1"))
	})

	t.Run("OtherScalarSubstituted", func(t *testing.T) {
		formData := models.FormData{
			"field1": map[string]interface{}{
				"q1":       "other",
				"q1_other": "ทุนอื่น",
			},
		}
		assert.Equal(t, "ทุนอื่น", answerCell(formData, "q1"))

		// ไม่มีข้อความอิสระ คงค่า "other" ไว้ตามเดิม
		noText := models.FormData{
			"field1": map[string]interface{}{"q1": "other"},
		}
		assert.Equal(t, "other", answerCell(noText, "q1"))
	})

	t.Run("FileValuesSkipped", func(t *testing.T) {
		formData := models.FormData{
			"field1": map[string]interface{}{
				"q1": "http://files/storage/file/doc.pdf",
			},
		}
		assert.Equal(t, "", answerCell(formData, "q1"))
	})

	t.Run("TableCellsJoined", func(t *testing.T) {
		formData := models.FormData{
			"field1": map[string]interface{}{
				"tbl": map[string]interface{}{"1_1": "a", "1_2": "b"},
			},
		}
		assert.Equal(t, "a; b", answerCell(formData, "tbl"))
	})

	t.Run("FalsyValuesSkipped", func(t *testing.T) {
		formData := models.FormData{
			"field1": map[string]interface{}{"q1": ""},
			"field2": map[string]interface{}{"q1": false},
		}
		assert.Equal(t, "", answerCell(formData, "q1"))
	})
}

func TestHasValue(t *testing.T) {
	assert.False(t, hasValue(nil))
	assert.False(t, hasValue(""))
	assert.False(t, hasValue(false))
	assert.False(t, hasValue(float64(0)))

	assert.True(t, hasValue("a"))
	assert.True(t, hasValue(true))
	assert.True(t, hasValue(float64(1)))
	// array ว่างยังถือว่ามีค่า (ตาม truthiness ของ object)
	assert.True(t, hasValue([]interface{}{}))
	assert.True(t, hasValue(map[string]interface{}{}))
}

func TestNumericOrLexLess(t *testing.T) {
	assert.True(t, numericOrLexLess("2", "10"))
	assert.True(t, numericOrLexLess("apple", "banana"))
	assert.False(t, numericOrLexLess("10", "2"))
}

func TestEscapeCSVValue(t *testing.T) {
	cases := map[string]string{
		"plain":       "plain",
		"a,b":         "\"a,b\"",
		"a\"b":        "\"a\"\"b\"",
		"multi\nline": "\"multi\nline\"",
		"":            "",
	}
	for in, want := range cases {
		assert.Equal(t, want, escapeCSVValue(in))
	}

	// quote ซ้อนหลายตัว
	assert.True(t, strings.HasPrefix(escapeCSVValue(`""`), "\""))
}
