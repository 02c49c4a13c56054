package formdata

import (
	"testing"

	"Backend-ScholarDB/src/models"

	"github.com/stretchr/testify/assert"
)

func TestMerge(t *testing.T) {
	t.Run("EmptyUpdateKeepsExistingData", func(t *testing.T) {
		existing := models.FormData{
			"field1": map[string]interface{}{"q1": "a", "q2": []interface{}{"x", "y"}},
		}

		merged := Merge(existing, models.FormData{})
		assert.Equal(t, existing, merged)

		merged = Merge(existing, nil)
		assert.Equal(t, existing, merged)
	})

	t.Run("DeepMergeSections", func(t *testing.T) {
		existing := models.FormData{
			"field1": map[string]interface{}{"q1": "a", "q2": "b"},
		}
		incoming := models.FormData{
			"field1": map[string]interface{}{"q2": "updated", "q3": "c"},
		}

		merged := Merge(existing, incoming)
		section, ok := models.AsMap(merged["field1"])
		assert.True(t, ok)
		assert.Equal(t, "a", section["q1"])
		assert.Equal(t, "updated", section["q2"])
		assert.Equal(t, "c", section["q3"])
	})

	t.Run("ArraysReplaceWholesale", func(t *testing.T) {
		existing := models.FormData{
			"field1": map[string]interface{}{"q1": []interface{}{"a", "b", "c"}},
		}
		incoming := models.FormData{
			"field1": map[string]interface{}{"q1": []interface{}{"d"}},
		}

		merged := Merge(existing, incoming)
		section, _ := models.AsMap(merged["field1"])
		assert.Equal(t, []interface{}{"d"}, section["q1"])
	})

	t.Run("ScalarReplacesMap", func(t *testing.T) {
		existing := models.FormData{
			"field1": map[string]interface{}{"q1": map[string]interface{}{"1_1": "x"}},
		}
		incoming := models.FormData{
			"field1": map[string]interface{}{"q1": "flat"},
		}

		merged := Merge(existing, incoming)
		section, _ := models.AsMap(merged["field1"])
		assert.Equal(t, "flat", section["q1"])
	})

	t.Run("TableCellsMergePerKey", func(t *testing.T) {
		existing := models.FormData{
			"field1": map[string]interface{}{
				"tbl": map[string]interface{}{"1_1": "a", "1_2": "b"},
			},
		}
		incoming := models.FormData{
			"field1": map[string]interface{}{
				"tbl": map[string]interface{}{"1_2": "updated", "2_1": "c"},
			},
		}

		merged := Merge(existing, incoming)
		section, _ := models.AsMap(merged["field1"])
		table, ok := models.AsMap(section["tbl"])
		assert.True(t, ok)
		assert.Equal(t, "a", table["1_1"])
		assert.Equal(t, "updated", table["1_2"])
		assert.Equal(t, "c", table["2_1"])
	})

	t.Run("DoesNotMutateInputs", func(t *testing.T) {
		existing := models.FormData{
			"field1": map[string]interface{}{"q1": "a"},
		}
		incoming := models.FormData{
			"field1": map[string]interface{}{"q1": "b"},
		}

		Merge(existing, incoming)
		section, _ := models.AsMap(existing["field1"])
		assert.Equal(t, "a", section["q1"])
	})
}

func TestSetNested(t *testing.T) {
	t.Run("DottedKeyCreatesNestedMaps", func(t *testing.T) {
		data := models.FormData{}
		SetNested(data, "field1.q1", "http://files/storage/file/a.pdf")

		section, ok := models.AsMap(data["field1"])
		assert.True(t, ok)
		assert.Equal(t, "http://files/storage/file/a.pdf", section["q1"])
	})

	t.Run("ExistingSectionIsReused", func(t *testing.T) {
		data := models.FormData{
			"field1": map[string]interface{}{"q1": "keep"},
		}
		SetNested(data, "field1.q2", "url")

		section, _ := models.AsMap(data["field1"])
		assert.Equal(t, "keep", section["q1"])
		assert.Equal(t, "url", section["q2"])
	})

	t.Run("PlainKeyWithoutDots", func(t *testing.T) {
		data := models.FormData{}
		SetNested(data, "profile_image", "url")
		assert.Equal(t, "url", data["profile_image"])
	})
}

func TestExtractFullname(t *testing.T) {
	t.Run("NameAndSurname", func(t *testing.T) {
		formData := models.FormData{
			"field1": map[string]interface{}{
				"name_q":    "สมชาย",
				"surname_q": "ใจดี",
			},
		}
		assert.Equal(t, "สมชาย ใจดี", ExtractFullname(formData))
	})

	t.Run("NameOnly", func(t *testing.T) {
		formData := models.FormData{
			"field1": map[string]interface{}{"first_name": "สมชาย"},
		}
		assert.Equal(t, "สมชาย", ExtractFullname(formData))
	})

	t.Run("SurnameKeyDoesNotCountAsName", func(t *testing.T) {
		formData := models.FormData{
			"field1": map[string]interface{}{"surname_q": "ใจดี"},
		}
		assert.Equal(t, "ใจดี", ExtractFullname(formData))
	})

	t.Run("NoMatchingKeys", func(t *testing.T) {
		formData := models.FormData{
			"field1": map[string]interface{}{"q1": "a"},
		}
		assert.Equal(t, "", ExtractFullname(formData))
	})

	t.Run("SpansMultipleSections", func(t *testing.T) {
		formData := models.FormData{
			"a_field": map[string]interface{}{"name_q": "สมหญิง"},
			"b_field": map[string]interface{}{"surname_q": "รักดี"},
		}
		assert.Equal(t, "สมหญิง รักดี", ExtractFullname(formData))
	})
}
