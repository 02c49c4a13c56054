package models

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnswerKind ชนิดของคำตอบหลัง parse จาก form_data ดิบ
type AnswerKind int

const (
	AnswerEmpty AnswerKind = iota
	AnswerScalar
	AnswerList
	AnswerTable
	AnswerFile
)

// storageFileMarker ใช้แยกค่า string ที่เป็น URL ไฟล์บน storage service
const storageFileMarker = "/storage/file/"

// storagePathMarker ใช้กรองคอลัมน์ไฟล์ออกจาก CSV (กว้างกว่า marker ด้านบน)
const storagePathMarker = "/storage/"

// AnswerValue คือ typed view ของค่าหนึ่งช่องใน form_data
// รูปแบบบน wire/storage ยังเป็น JSON หลวมๆ เหมือนเดิม ตัวนี้ใช้เฉพาะตอนอ่าน
type AnswerValue struct {
	Kind   AnswerKind
	Scalar string            // AnswerScalar
	List   []string          // AnswerList
	Table  map[string]string // AnswerTable (key "row_col")
	File   string            // AnswerFile (URL หรือชื่อไฟล์)
}

// ParseAnswer แปลงค่าดิบจาก form_data (ผ่าน JSON หรือ BSON decode)
// ให้เป็น AnswerValue ตามชนิดจริงของมัน
func ParseAnswer(v interface{}) AnswerValue {
	switch val := v.(type) {
	case nil:
		return AnswerValue{Kind: AnswerEmpty}
	case string:
		if val == "" {
			return AnswerValue{Kind: AnswerEmpty}
		}
		if strings.Contains(val, storageFileMarker) {
			return AnswerValue{Kind: AnswerFile, File: val}
		}
		return AnswerValue{Kind: AnswerScalar, Scalar: val}
	case []string:
		return listAnswer(stringSlice(val))
	case []interface{}:
		return listAnswer(stringifySlice(val))
	case primitive.A:
		return listAnswer(stringifySlice(val))
	case map[string]interface{}:
		return mapAnswer(val)
	case primitive.M:
		return mapAnswer(val)
	case FormData:
		return mapAnswer(val)
	default:
		// ตัวเลข / boolean จาก JSON ถือเป็น scalar
		return AnswerValue{Kind: AnswerScalar, Scalar: Stringify(val)}
	}
}

// IsFileValue ตรวจว่าค่าดิบเป็นไฟล์หรือไม่ (string ที่มี storage path
// หรือ object ที่มี attribute "filename")
func IsFileValue(v interface{}) bool {
	switch val := v.(type) {
	case string:
		return strings.Contains(val, storagePathMarker)
	case map[string]interface{}:
		_, ok := val["filename"]
		return ok
	case primitive.M:
		_, ok := val["filename"]
		return ok
	}
	return false
}

// IsStorageFileURL ตรวจว่า string เป็น URL ไฟล์ที่ลบจาก storage ได้
func IsStorageFileURL(s string) bool {
	return strings.Contains(s, storageFileMarker)
}

// AsMap normalize ค่า map จาก BSON/JSON ให้เป็น map[string]interface{}
func AsMap(v interface{}) (map[string]interface{}, bool) {
	switch val := v.(type) {
	case map[string]interface{}:
		return val, true
	case primitive.M:
		return val, true
	case FormData:
		return val, true
	}
	return nil, false
}

// Stringify แปลงค่า scalar ใดๆ เป็น string แบบเดียวกับที่ frontend ส่งมา
func Stringify(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// ตัด .0 ของจำนวนเต็มที่ JSON decode มาเป็น float64
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	case int32:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func listAnswer(items []string) AnswerValue {
	if len(items) == 0 {
		return AnswerValue{Kind: AnswerEmpty}
	}
	return AnswerValue{Kind: AnswerList, List: items}
}

func mapAnswer(m map[string]interface{}) AnswerValue {
	if _, ok := m["filename"]; ok {
		return AnswerValue{Kind: AnswerFile, File: Stringify(m["filename"])}
	}
	cells := make(map[string]string, len(m))
	for k, v := range m {
		cells[k] = Stringify(v)
	}
	return AnswerValue{Kind: AnswerTable, Table: cells}
}

func stringSlice(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}

func stringifySlice(items []interface{}) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, Stringify(it))
	}
	return out
}
