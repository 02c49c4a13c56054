package formdata

import (
	"strings"

	"Backend-ScholarDB/src/models"
)

// Merge รวม form_data เดิมกับ partial update ที่ส่งเข้ามา
// กติกาตามชนิดค่า: object (เช่น field map, table cells) merge รายคีย์,
// ส่วน array / scalar / file URL แทนที่ทั้งก้อน
// การ merge กับ update ว่างต้องได้ข้อมูลเดิมกลับมาไม่เปลี่ยน
func Merge(existing, incoming models.FormData) models.FormData {
	result := make(models.FormData, len(existing)+len(incoming))
	for k, v := range existing {
		result[k] = v
	}

	for k, v := range incoming {
		incomingMap, incomingIsMap := models.AsMap(v)
		if !incomingIsMap {
			result[k] = v
			continue
		}

		existingMap, existingIsMap := models.AsMap(result[k])
		if !existingIsMap {
			result[k] = v
			continue
		}

		result[k] = mergeMaps(existingMap, incomingMap)
	}

	return result
}

func mergeMaps(existing, incoming map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(existing)+len(incoming))
	for k, v := range existing {
		result[k] = v
	}

	for k, v := range incoming {
		incomingMap, incomingIsMap := models.AsMap(v)
		if !incomingIsMap {
			result[k] = v
			continue
		}

		existingMap, existingIsMap := models.AsMap(result[k])
		if !existingIsMap {
			result[k] = v
			continue
		}

		result[k] = mergeMaps(existingMap, incomingMap)
	}

	return result
}

// SetNested ใส่ค่าใน form_data ตาม dotted key เช่น "field_id.question_id"
// ใช้ตอนแปลงไฟล์ที่อัปโหลดจาก multipart part ให้เป็น URL ในตำแหน่งที่ถูกต้อง
func SetNested(data models.FormData, key string, value interface{}) {
	keys := strings.Split(key, ".")
	current := map[string]interface{}(data)

	for i := 0; i < len(keys)-1; i++ {
		k := keys[i]
		next, ok := models.AsMap(current[k])
		if !ok {
			next = make(map[string]interface{})
			current[k] = next
		}
		current = next
	}

	current[keys[len(keys)-1]] = value
}
