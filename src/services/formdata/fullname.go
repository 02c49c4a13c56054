package formdata

import (
	"sort"
	"strings"

	"Backend-ScholarDB/src/models"
)

// ExtractFullname หาชื่อ-นามสกุลจาก form_data โดยดูคีย์ระดับคำถาม:
// คีย์แรกที่มีคำว่า "name" (แต่ไม่ใช่ "surname") เป็นชื่อ
// คีย์แรกที่มีคำว่า "surname" เป็นนามสกุล แล้วต่อเป็น "{name} {surname}"
// เดินคีย์แบบเรียงลำดับเพื่อให้ผลลัพธ์ deterministic
func ExtractFullname(formData models.FormData) string {
	var name, surname string
	foundName, foundSurname := false, false

	for _, fieldKey := range sortedKeys(formData) {
		if foundName && foundSurname {
			break
		}

		section, ok := models.AsMap(formData[fieldKey])
		if !ok {
			continue
		}

		for _, k := range sortedMapKeys(section) {
			if foundName && foundSurname {
				break
			}

			lower := strings.ToLower(k)
			if strings.Contains(lower, "name") && !strings.Contains(lower, "surname") && !foundName {
				name = models.Stringify(section[k])
				foundName = true
			}
			if strings.Contains(lower, "surname") && !foundSurname {
				surname = models.Stringify(section[k])
				foundSurname = true
			}
		}
	}

	return strings.TrimSpace(name + " " + surname)
}

func sortedKeys(m models.FormData) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedMapKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
