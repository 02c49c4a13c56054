package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseAnswer(t *testing.T) {
	t.Run("EmptyValues", func(t *testing.T) {
		assert.Equal(t, AnswerEmpty, ParseAnswer(nil).Kind)
		assert.Equal(t, AnswerEmpty, ParseAnswer("").Kind)
		assert.Equal(t, AnswerEmpty, ParseAnswer([]interface{}{}).Kind)
	})

	t.Run("Scalar", func(t *testing.T) {
		answer := ParseAnswer("คำตอบ")
		assert.Equal(t, AnswerScalar, answer.Kind)
		assert.Equal(t, "คำตอบ", answer.Scalar)

		// ตัวเลขจาก JSON decode มาเป็น float64
		answer = ParseAnswer(float64(42))
		assert.Equal(t, AnswerScalar, answer.Kind)
		assert.Equal(t, "42", answer.Scalar)
	})

	t.Run("FileURL", func(t *testing.T) {
		answer := ParseAnswer("http://files/storage/file/a.pdf")
		assert.Equal(t, AnswerFile, answer.Kind)
		assert.Equal(t, "http://files/storage/file/a.pdf", answer.File)
	})

	t.Run("List", func(t *testing.T) {
		answer := ParseAnswer([]interface{}{"a", float64(2)})
		assert.Equal(t, AnswerList, answer.Kind)
		assert.Equal(t, []string{"a", "2"}, answer.List)

		// BSON array decode มาเป็น primitive.A
		answer = ParseAnswer(primitive.A{"x", "y"})
		assert.Equal(t, AnswerList, answer.Kind)
		assert.Equal(t, []string{"x", "y"}, answer.List)
	})

	t.Run("Table", func(t *testing.T) {
		answer := ParseAnswer(map[string]interface{}{"1_1": "a", "1_2": float64(5)})
		assert.Equal(t, AnswerTable, answer.Kind)
		assert.Equal(t, "a", answer.Table["1_1"])
		assert.Equal(t, "5", answer.Table["1_2"])
	})

	t.Run("FileObject", func(t *testing.T) {
		answer := ParseAnswer(map[string]interface{}{"filename": "doc.pdf", "size": float64(10)})
		assert.Equal(t, AnswerFile, answer.Kind)
		assert.Equal(t, "doc.pdf", answer.File)
	})
}

func TestIsFileValue(t *testing.T) {
	assert.True(t, IsFileValue("http://files/storage/a.pdf"))
	assert.True(t, IsFileValue(map[string]interface{}{"filename": "a.pdf"}))
	assert.True(t, IsFileValue(primitive.M{"filename": "a.pdf"}))

	assert.False(t, IsFileValue("plain text"))
	assert.False(t, IsFileValue(map[string]interface{}{"1_1": "x"}))
	assert.False(t, IsFileValue(nil))
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "text", Stringify("text"))
	assert.Equal(t, "42", Stringify(float64(42)))
	assert.Equal(t, "3.14", Stringify(3.14))
	assert.Equal(t, "7", Stringify(int64(7)))
	assert.Equal(t, "true", Stringify(true))
}
