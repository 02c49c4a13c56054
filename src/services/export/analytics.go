package export

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"Backend-ScholarDB/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const analyticsCacheTTL = 2 * time.Minute

// chartPalette ชุดสีประจำของ bar/doughnut chart ฝั่ง frontend
var chartPalette = []string{
	"#FF6384", "#36A2EB", "#FFCE56", "#4BC0C0", "#9966FF",
	"#FF9F40", "#FF6384", "#C9CBCF", "#4BC0C0", "#FF6384",
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// GenerateAnalytics สรุปคำตอบของทุกคำถามในทุนเป็นข้อมูลพร้อมวาดกราฟ
// ข้ามคำถามชื่อ/นามสกุลกับคำถามแนบไฟล์ ผลลัพธ์ cache ใน Redis สองนาที
func (s *Service) GenerateAnalytics(ctx context.Context, scholarID primitive.ObjectID) (*models.AnalyticsResult, error) {
	cacheKey := "analytics:" + scholarID.Hex()
	var cached models.AnalyticsResult
	if s.getCache(cacheKey, &cached) {
		return &cached, nil
	}

	students, err := s.loadStudents(ctx, scholarID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return &models.AnalyticsResult{Questions: []models.QuestionAnalytics{}}, nil
	}

	fields, err := s.loadFields(ctx, scholarID)
	if err != nil {
		return nil, err
	}

	result := &models.AnalyticsResult{
		TotalStudents: len(students),
		Questions:     []models.QuestionAnalytics{},
	}
	for _, student := range students {
		if student.Status == models.StudentStatusCompleted {
			result.CompletedStudents++
		} else {
			result.IncompleteStudents++
		}
	}

	for _, field := range fields {
		for _, question := range field.Questions {
			if skipForAnalytics(question) {
				continue
			}
			responses := collectResponses(students, question.QuestionID)
			result.Questions = append(result.Questions, analyzeQuestion(question, responses))
		}
	}

	s.setCache(cacheKey, result, analyticsCacheTTL)
	return result, nil
}

// คำถามชื่อ/นามสกุลเป็นข้อมูลระบุตัวตน ไม่มีประโยชน์เชิงสถิติ
func skipForAnalytics(question models.Question) bool {
	if question.QuestionType == models.QuestionFileUpload {
		return true
	}
	label := strings.ToLower(question.QuestionLabel)
	return strings.Contains(label, "name") || strings.Contains(label, "surname") ||
		strings.Contains(label, "ชื่อ") || strings.Contains(label, "นามสกุล")
}

// collectResponses รวบรวมคำตอบของ question id จากทุก section ของทุกคน
// พร้อมแทนคำตอบ "other" ด้วยข้อความอิสระก่อนนับ
func collectResponses(students []models.Student, questionID string) []models.AnswerValue {
	var responses []models.AnswerValue
	for _, student := range students {
		sectionKeys := make([]string, 0, len(student.FormData))
		for k := range student.FormData {
			sectionKeys = append(sectionKeys, k)
		}
		sort.Strings(sectionKeys)

		for _, sectionKey := range sectionKeys {
			section, ok := models.AsMap(student.FormData[sectionKey])
			if !ok {
				continue
			}
			raw, exists := section[questionID]
			if !exists || !hasValue(raw) {
				continue
			}

			answer := models.ParseAnswer(raw)
			otherText := models.Stringify(section[questionID+"_other"])
			if otherText != "" {
				if answer.Kind == models.AnswerScalar && answer.Scalar == "other" {
					answer.Scalar = otherText
				} else if answer.Kind == models.AnswerList {
					for i, item := range answer.List {
						if item == "other" {
							answer.List[i] = otherText
						}
					}
				}
			}
			responses = append(responses, answer)
		}
	}
	return responses
}

func analyzeQuestion(question models.Question, responses []models.AnswerValue) models.QuestionAnalytics {
	analytics := models.QuestionAnalytics{
		QuestionID:     question.QuestionID,
		QuestionLabel:  question.QuestionLabel,
		QuestionType:   question.QuestionType,
		TotalResponses: len(responses),
		ChartType:      "bar",
	}

	switch question.QuestionType {
	case models.QuestionRadio, models.QuestionDropdown:
		analytics.ChartType = "doughnut"
		counts := make(map[string]int)
		for _, response := range responses {
			if value := scalarText(response); value != "" {
				counts[value]++
			}
		}
		analytics.ChartData = frequencyChart(counts)

	case models.QuestionCheckbox:
		counts := make(map[string]int)
		for _, response := range responses {
			if response.Kind != models.AnswerList {
				continue
			}
			for _, item := range response.List {
				if item != "" {
					counts[item]++
				}
			}
		}
		analytics.ChartData = frequencyChart(counts)

	case models.QuestionShortAnswer, models.QuestionLongAnswer:
		analyzeFreeText(&analytics, responses)

	case models.QuestionDate:
		analytics.ChartType = "line"
		counts := make(map[string]int)
		for _, response := range responses {
			value := scalarText(response)
			if value == "" {
				continue
			}
			if month, ok := monthBucket(value); ok {
				counts[month]++
			}
		}
		labels := sortedKeysOf(counts)
		analytics.ChartData = models.ChartData{
			Labels: labels,
			Datasets: []models.Dataset{{
				Label:           "Responses",
				Data:            countsInOrder(counts, labels),
				BorderColor:     "#36A2EB",
				BackgroundColor: "rgba(54, 162, 235, 0.2)",
			}},
		}

	case models.QuestionTime:
		counts := make(map[string]int)
		for _, response := range responses {
			value := scalarText(response)
			if value == "" {
				continue
			}
			hour := strings.SplitN(value, ":", 2)[0]
			if hour != "" {
				counts[hour+":00"]++
			}
		}
		labels := sortedKeysOf(counts)
		analytics.ChartData = chartWith(labels, countsInOrder(counts, labels))

	case models.QuestionTable:
		analytics.ChartData = chartWith([]string{"Table Responses"}, []int{len(responses)})
		analytics.Note = "Table data requires custom analysis"

	default:
		analytics.ChartData = chartWith([]string{"Responses"}, []int{len(responses)})
	}

	return analytics
}

// analyzeFreeText แยกสองกรณี: คำตอบเป็นตัวเลขล้วนทำ histogram พร้อมสถิติ
// ไม่งั้นนับความถี่แล้วเอา 10 อันดับแรก
func analyzeFreeText(analytics *models.QuestionAnalytics, responses []models.AnswerValue) {
	values := make([]string, 0, len(responses))
	for _, response := range responses {
		if value := scalarText(response); value != "" {
			values = append(values, value)
		}
	}

	numbers := make([]float64, 0, len(values))
	for _, value := range values {
		if num, err := strconv.ParseFloat(value, 64); err == nil {
			numbers = append(numbers, num)
		}
	}

	if len(numbers) > 0 && len(numbers) == len(values) {
		isNumeric := true
		analytics.IsNumeric = &isNumeric

		min, max, sum := numbers[0], numbers[0], 0.0
		for _, num := range numbers {
			if num < min {
				min = num
			}
			if num > max {
				max = num
			}
			sum += num
		}

		binCount := int(math.Round(math.Sqrt(float64(len(numbers)))))
		if binCount < 5 {
			binCount = 5
		}
		if binCount > 10 {
			binCount = 10
		}
		binSize := (max - min) / float64(binCount)

		labels := make([]string, binCount)
		data := make([]int, binCount)
		for i := 0; i < binCount; i++ {
			labels[i] = fmt.Sprintf("%.1f-%.1f",
				min+float64(i)*binSize, min+float64(i+1)*binSize)
		}
		for _, num := range numbers {
			idx := 0
			if binSize > 0 {
				idx = int((num - min) / binSize)
				if idx >= binCount {
					idx = binCount - 1
				}
			}
			data[idx]++
		}

		analytics.ChartData = chartWith(labels, data)
		analytics.Statistics = &models.Statistics{
			Min:     min,
			Max:     max,
			Average: sum / float64(len(numbers)),
			Count:   len(numbers),
		}
		return
	}

	isNumeric := false
	analytics.IsNumeric = &isNumeric

	counts := make(map[string]int)
	for _, value := range values {
		counts[value]++
	}

	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	// ความถี่มากก่อน เสมอกันใช้กติกาตัวเลข/ตัวอักษร
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return numericOrLexLess(keys[i], keys[j])
	})
	if len(keys) > 10 {
		keys = keys[:10]
	}

	analytics.ChartData = chartWith(keys, countsInOrder(counts, keys))
}

// scalarText แปลงคำตอบเป็นข้อความเดียวสำหรับการนับความถี่
func scalarText(answer models.AnswerValue) string {
	switch answer.Kind {
	case models.AnswerScalar:
		return answer.Scalar
	case models.AnswerList:
		return strings.Join(answer.List, ",")
	case models.AnswerFile:
		return answer.File
	}
	return ""
}

func monthBucket(value string) (string, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01"), true
		}
	}
	return "", false
}

func frequencyChart(counts map[string]int) models.ChartData {
	labels := make([]string, 0, len(counts))
	for key := range counts {
		labels = append(labels, key)
	}
	sort.Slice(labels, func(i, j int) bool {
		return numericOrLexLess(labels[i], labels[j])
	})
	return chartWith(labels, countsInOrder(counts, labels))
}

func chartWith(labels []string, data []int) models.ChartData {
	return models.ChartData{
		Labels: labels,
		Datasets: []models.Dataset{{
			Label:           "Responses",
			Data:            data,
			BackgroundColor: chartPalette,
		}},
	}
}

func sortedKeysOf(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func countsInOrder(counts map[string]int, labels []string) []int {
	data := make([]int, len(labels))
	for i, label := range labels {
		data[i] = counts[label]
	}
	return data
}
