package export

import (
	"context"
	"sort"
	"strings"
	"time"

	"Backend-ScholarDB/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fixedCSVHeaders คอลัมน์ประจำที่นำหน้าคอลัมน์คำถามเสมอ
var fixedCSVHeaders = []string{
	"ID",
	"Full Name",
	"Status",
	"Created At",
	"Updated At",
	"Submitted At",
	"Scholar Name",
}

// GenerateCSVData แปลงคำตอบของนักเรียนทุกคนในทุนเป็นตาราง header + rows
// คอลัมน์คำถามมาจาก union ของ question_id ทุกตัวที่ปรากฏใน form_data
// (ไม่รวมค่าไฟล์, key "_other" และ sentinel "initialized")
// เรียงตามตัวอักษรเพื่อให้ลำดับคอลัมน์คงที่
func (s *Service) GenerateCSVData(ctx context.Context, scholarID primitive.ObjectID) ([]string, [][]string, error) {
	students, err := s.loadStudents(ctx, scholarID)
	if err != nil {
		return nil, nil, err
	}
	if len(students) == 0 {
		return []string{}, [][]string{}, nil
	}

	fields, err := s.loadFields(ctx, scholarID)
	if err != nil {
		return nil, nil, err
	}

	// map question_id -> question_label ไว้ทำ header
	labels := make(map[string]string)
	for _, field := range fields {
		for _, question := range field.Questions {
			if question.QuestionID != "" && question.QuestionLabel != "" {
				labels[question.QuestionID] = question.QuestionLabel
			}
		}
	}

	scholarName := ""
	if scholar, err := s.loadScholar(ctx, scholarID); err == nil {
		scholarName = scholar.Name
	}

	keySet := make(map[string]bool)
	for _, student := range students {
		for _, sectionValue := range student.FormData {
			section, ok := models.AsMap(sectionValue)
			if !ok {
				continue
			}
			for key, value := range section {
				if hasValue(value) && models.IsFileValue(value) {
					continue
				}
				if key == "initialized" || strings.HasSuffix(key, "_other") {
					continue
				}
				keySet[key] = true
			}
		}
	}

	sortedKeys := make([]string, 0, len(keySet))
	for key := range keySet {
		sortedKeys = append(sortedKeys, key)
	}
	sort.Strings(sortedKeys)

	headers := make([]string, 0, len(fixedCSVHeaders)+len(sortedKeys))
	headers = append(headers, fixedCSVHeaders...)
	for _, key := range sortedKeys {
		// คำถามที่ถูกลบจาก schema ไปแล้ว fallback เป็น id ดิบ
		if label, ok := labels[key]; ok {
			headers = append(headers, label)
		} else {
			headers = append(headers, key)
		}
	}

	rows := make([][]string, 0, len(students))
	for _, student := range students {
		row := []string{
			student.ID.Hex(),
			student.Fullname,
			student.Status,
			student.CreatedAt.Format(time.RFC3339),
			student.UpdatedAt.Format(time.RFC3339),
			"",
			scholarName,
		}
		if student.SubmittedAt != nil {
			row[5] = student.SubmittedAt.Format(time.RFC3339)
		}

		for _, key := range sortedKeys {
			row = append(row, answerCell(student.FormData, key))
		}
		rows = append(rows, row)
	}

	return headers, rows, nil
}

// answerCell หาค่าของ question id จากทุก section แล้ว format เป็นข้อความ
// ค่าไฟล์ถูกข้าม ส่วนคำตอบ "other" แทนด้วยข้อความอิสระจาก key คู่ "_other"
func answerCell(formData models.FormData, key string) string {
	sectionKeys := make([]string, 0, len(formData))
	for k := range formData {
		sectionKeys = append(sectionKeys, k)
	}
	sort.Strings(sectionKeys)

	value := ""
	for _, sectionKey := range sectionKeys {
		section, ok := models.AsMap(formData[sectionKey])
		if !ok {
			continue
		}
		raw, exists := section[key]
		if !exists || !hasValue(raw) || models.IsFileValue(raw) {
			continue
		}

		answer := models.ParseAnswer(raw)
		switch answer.Kind {
		case models.AnswerList:
			items := make([]string, 0, len(answer.List))
			for _, item := range answer.List {
				if models.IsFileValue(item) {
					continue
				}
				items = append(items, item)
			}
			otherText := models.Stringify(section[key+"_other"])
			if otherText != "" {
				for i, item := range items {
					if item == "other" {
						items[i] = otherText
					}
				}
			}
			value = strings.Join(items, ", ")
		case models.AnswerScalar:
			if answer.Scalar == "other" {
				if otherText := models.Stringify(section[key+"_other"]); otherText != "" {
					value = otherText
				} else {
					value = "other"
				}
			} else {
				value = answer.Scalar
			}
		case models.AnswerTable:
			cellKeys := make([]string, 0, len(answer.Table))
			for cellKey := range answer.Table {
				cellKeys = append(cellKeys, cellKey)
			}
			sort.Strings(cellKeys)
			cells := make([]string, 0, len(cellKeys))
			for _, cellKey := range cellKeys {
				cells = append(cells, answer.Table[cellKey])
			}
			value = strings.Join(cells, "; ")
		}
	}
	return value
}

// ConvertToCSVString แปลง header + rows เป็นข้อความ CSV
// quote เฉพาะช่องที่มี comma, quote หรือขึ้นบรรทัดใหม่ (escape quote ด้วยการซ้ำ)
func ConvertToCSVString(headers []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, joinCSVLine(headers))
	for _, row := range rows {
		lines = append(lines, joinCSVLine(row))
	}
	return strings.Join(lines, "\n")
}

func joinCSVLine(values []string) string {
	escaped := make([]string, len(values))
	for i, value := range values {
		escaped[i] = escapeCSVValue(value)
	}
	return strings.Join(escaped, ",")
}

func escapeCSVValue(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return "\"" + strings.ReplaceAll(value, "\"", "\"\"") + "\""
	}
	return value
}
