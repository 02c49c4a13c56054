package export

import (
	"fmt"
	"testing"

	"Backend-ScholarDB/src/models"

	"github.com/stretchr/testify/assert"
)

func scalarResponses(values ...string) []models.AnswerValue {
	out := make([]models.AnswerValue, 0, len(values))
	for _, v := range values {
		out = append(out, models.AnswerValue{Kind: models.AnswerScalar, Scalar: v})
	}
	return out
}

func TestSkipForAnalytics(t *testing.T) {
	assert.True(t, skipForAnalytics(models.Question{QuestionType: models.QuestionFileUpload, QuestionLabel: "Transcript"}))
	assert.True(t, skipForAnalytics(models.Question{QuestionType: models.QuestionShortAnswer, QuestionLabel: "First Name"}))
	assert.True(t, skipForAnalytics(models.Question{QuestionType: models.QuestionShortAnswer, QuestionLabel: "ชื่อจริง"}))
	assert.True(t, skipForAnalytics(models.Question{QuestionType: models.QuestionShortAnswer, QuestionLabel: "นามสกุล"}))

	assert.False(t, skipForAnalytics(models.Question{QuestionType: models.QuestionShortAnswer, QuestionLabel: "GPA"}))
	assert.False(t, skipForAnalytics(models.Question{QuestionType: models.QuestionRadio, QuestionLabel: "คณะ"}))
}

func TestCollectResponses(t *testing.T) {
	t.Run("SkipsMissingAndFalsy", func(t *testing.T) {
		students := []models.Student{
			{FormData: models.FormData{"f1": map[string]interface{}{"q1": "a"}}},
			{FormData: models.FormData{"f1": map[string]interface{}{"q1": ""}}},
			{FormData: models.FormData{"f1": map[string]interface{}{"q2": "b"}}},
		}

		responses := collectResponses(students, "q1")
		assert.Len(t, responses, 1)
		assert.Equal(t, "a", responses[0].Scalar)
	})

	t.Run("OtherSubstitutedBeforeCounting", func(t *testing.T) {
		students := []models.Student{
			{FormData: models.FormData{"f1": map[string]interface{}{
				"q1":       "other",
				"q1_other": "วิศวกรรม",
			}}},
			{FormData: models.FormData{"f1": map[string]interface{}{
				"q1":       []interface{}{"a", "other"},
				"q1_other": "อื่นๆ",
			}}},
		}

		responses := collectResponses(students, "q1")
		assert.Len(t, responses, 2)
		assert.Equal(t, "วิศวกรรม", responses[0].Scalar)
		assert.Equal(t, []string{"a", "อื่นๆ"}, responses[1].List)
	})
}

func TestAnalyzeQuestion(t *testing.T) {
	t.Run("RadioIsDoughnutWithSortedOptions", func(t *testing.T) {
		q := models.Question{QuestionID: "q1", QuestionType: models.QuestionRadio, QuestionLabel: "คณะ"}
		out := analyzeQuestion(q, scalarResponses("b", "a", "a"))

		assert.Equal(t, "doughnut", out.ChartType)
		assert.Equal(t, 3, out.TotalResponses)
		assert.Equal(t, []string{"a", "b"}, out.ChartData.Labels)
		assert.Equal(t, []int{2, 1}, out.ChartData.Datasets[0].Data)
	})

	t.Run("CheckboxCountsEveryItem", func(t *testing.T) {
		q := models.Question{QuestionID: "q1", QuestionType: models.QuestionCheckbox}
		responses := []models.AnswerValue{
			{Kind: models.AnswerList, List: []string{"a", "b"}},
			{Kind: models.AnswerList, List: []string{"b"}},
		}
		out := analyzeQuestion(q, responses)

		assert.Equal(t, "bar", out.ChartType)
		assert.Equal(t, []string{"a", "b"}, out.ChartData.Labels)
		assert.Equal(t, []int{1, 2}, out.ChartData.Datasets[0].Data)
	})

	t.Run("NumericOptionsSortNumerically", func(t *testing.T) {
		q := models.Question{QuestionID: "q1", QuestionType: models.QuestionDropdown}
		out := analyzeQuestion(q, scalarResponses("10", "2", "2"))

		assert.Equal(t, []string{"2", "10"}, out.ChartData.Labels)
	})

	t.Run("DateBucketsByMonth", func(t *testing.T) {
		q := models.Question{QuestionID: "q1", QuestionType: models.QuestionDate}
		out := analyzeQuestion(q, scalarResponses("2025-01-15", "2025-01-20", "2025-02-01", "not-a-date"))

		assert.Equal(t, "line", out.ChartType)
		assert.Equal(t, []string{"2025-01", "2025-02"}, out.ChartData.Labels)
		assert.Equal(t, []int{2, 1}, out.ChartData.Datasets[0].Data)
		assert.Equal(t, "#36A2EB", out.ChartData.Datasets[0].BorderColor)
	})

	t.Run("TimeBucketsByHour", func(t *testing.T) {
		q := models.Question{QuestionID: "q1", QuestionType: models.QuestionTime}
		out := analyzeQuestion(q, scalarResponses("09:15", "09:45", "14:00"))

		assert.Equal(t, []string{"09:00", "14:00"}, out.ChartData.Labels)
		assert.Equal(t, []int{2, 1}, out.ChartData.Datasets[0].Data)
	})

	t.Run("TableHasCountAndNote", func(t *testing.T) {
		q := models.Question{QuestionID: "q1", QuestionType: models.QuestionTable}
		responses := []models.AnswerValue{
			{Kind: models.AnswerTable, Table: map[string]string{"1_1": "x"}},
		}
		out := analyzeQuestion(q, responses)

		assert.Equal(t, []string{"Table Responses"}, out.ChartData.Labels)
		assert.Equal(t, []int{1}, out.ChartData.Datasets[0].Data)
		assert.Equal(t, "Table data requires custom analysis", out.Note)
	})
}

func TestAnalyzeFreeText(t *testing.T) {
	t.Run("AllNumericBuildsHistogram", func(t *testing.T) {
		values := make([]string, 0, 20)
		for i := 1; i <= 20; i++ {
			values = append(values, fmt.Sprintf("%d", i))
		}

		var out models.QuestionAnalytics
		analyzeFreeText(&out, scalarResponses(values...))

		assert.NotNil(t, out.IsNumeric)
		assert.True(t, *out.IsNumeric)
		assert.NotNil(t, out.Statistics)
		assert.Equal(t, 1.0, out.Statistics.Min)
		assert.Equal(t, 20.0, out.Statistics.Max)
		assert.Equal(t, 10.5, out.Statistics.Average)
		assert.Equal(t, 20, out.Statistics.Count)

		binCount := len(out.ChartData.Labels)
		assert.GreaterOrEqual(t, binCount, 5)
		assert.LessOrEqual(t, binCount, 10)

		total := 0
		for _, count := range out.ChartData.Datasets[0].Data {
			total += count
		}
		assert.Equal(t, 20, total)
	})

	t.Run("IdenticalNumbersLandInFirstBin", func(t *testing.T) {
		var out models.QuestionAnalytics
		analyzeFreeText(&out, scalarResponses("5", "5", "5"))

		assert.True(t, *out.IsNumeric)
		assert.Equal(t, 3, out.ChartData.Datasets[0].Data[0])
		for _, count := range out.ChartData.Datasets[0].Data[1:] {
			assert.Equal(t, 0, count)
		}
	})

	t.Run("MixedTextTakesTopTen", func(t *testing.T) {
		values := []string{"b", "a", "a", "a", "c", "c"}
		for i := 0; i < 12; i++ {
			values = append(values, fmt.Sprintf("unique%02d", i))
		}

		var out models.QuestionAnalytics
		analyzeFreeText(&out, scalarResponses(values...))

		assert.False(t, *out.IsNumeric)
		assert.Len(t, out.ChartData.Labels, 10)
		assert.Equal(t, "a", out.ChartData.Labels[0])
		assert.Equal(t, "c", out.ChartData.Labels[1])
		assert.Equal(t, 3, out.ChartData.Datasets[0].Data[0])
	})

	t.Run("NumbersMixedWithTextAreNotNumeric", func(t *testing.T) {
		var out models.QuestionAnalytics
		analyzeFreeText(&out, scalarResponses("1", "2", "abc"))

		assert.False(t, *out.IsNumeric)
		assert.Nil(t, out.Statistics)
	})
}

func TestMonthBucket(t *testing.T) {
	month, ok := monthBucket("2025-03-09")
	assert.True(t, ok)
	assert.Equal(t, "2025-03", month)

	month, ok = monthBucket("2025-03-09T10:00:00Z")
	assert.True(t, ok)
	assert.Equal(t, "2025-03", month)

	_, ok = monthBucket("yesterday")
	assert.False(t, ok)
}
