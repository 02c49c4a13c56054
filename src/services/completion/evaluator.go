package completion

import (
	"fmt"
	"strings"

	"Backend-ScholarDB/src/models"
)

// IsComplete ตัดสินว่า form_data ของนักเรียนตอบครบทุกคำถามของทุก field หรือไม่
// ทุกคำถามถือเป็นข้อบังคับทั้งหมด ไม่สนใจ flag required ใน schema
// (พฤติกรรมตั้งใจของระบบ ไม่ใช่ bug - flag ถูกเก็บไว้ให้ UI แสดงเท่านั้น)
// ฟังก์ชันนี้ pure: อ่านอย่างเดียว ไม่แก้อะไรเลย
func IsComplete(formData models.FormData, fields []models.ScholarField) bool {
	for _, field := range fields {
		fieldData, _ := models.AsMap(formData[field.ID.Hex()])

		for _, question := range field.Questions {
			if !isAnswered(fieldData, question) {
				return false
			}
		}
	}

	return true
}

func isAnswered(fieldData map[string]interface{}, q models.Question) bool {
	var raw interface{}
	if fieldData != nil {
		raw = fieldData[q.QuestionID]
	}

	answer := models.ParseAnswer(raw)

	// ค่าว่าง / array ว่าง ตกทันที
	if answer.Kind == models.AnswerEmpty {
		return false
	}

	// คำตอบ "other" ต้องมีข้อความอิสระประกอบใน "{question_id}_other"
	if q.AllowOther && containsOther(answer) {
		otherText := models.Stringify(fieldData[q.QuestionID+"_other"])
		if strings.TrimSpace(otherText) == "" {
			return false
		}
	}

	// ตาราง: ทุกช่องข้อมูล (ไม่รวมแถว/คอลัมน์ header) ต้องไม่ว่าง
	if q.QuestionType == models.QuestionTable && q.TableConfig != nil {
		return tableComplete(answer, q.TableConfig)
	}

	return true
}

func containsOther(answer models.AnswerValue) bool {
	switch answer.Kind {
	case models.AnswerScalar:
		return answer.Scalar == "other"
	case models.AnswerList:
		for _, item := range answer.List {
			if item == "other" {
				return true
			}
		}
	}
	return false
}

// tableComplete ตรวจช่องข้อมูล row ใน [1, rows) และ col ใน [1, columns)
// แถว 0 และคอลัมน์ 0 เป็น header เสมอ ไม่นับ
func tableComplete(answer models.AnswerValue, cfg *models.TableConfig) bool {
	if answer.Kind != models.AnswerTable {
		// ถ้าไม่มีช่องข้อมูลเลย (ตาราง 1x1 หรือเล็กกว่า) ถือว่าครบ
		return cfg.Rows <= 1 || cfg.Columns <= 1
	}

	for row := 1; row < cfg.Rows; row++ {
		for col := 1; col < cfg.Columns; col++ {
			cellKey := fmt.Sprintf("%d_%d", row, col)
			if strings.TrimSpace(answer.Table[cellKey]) == "" {
				return false
			}
		}
	}

	return true
}
