package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ชนิดคำถามทั้งหมดที่ form renderer รองรับ
const (
	QuestionShortAnswer = "short_answer"
	QuestionLongAnswer  = "long_answer"
	QuestionRadio       = "radio"
	QuestionCheckbox    = "checkbox"
	QuestionDropdown    = "dropdown"
	QuestionTable       = "table"
	QuestionDate        = "date"
	QuestionTime        = "time"
	QuestionFileUpload  = "file_upload"
)

// ValidationRule ถูกเก็บใน schema และส่งให้ frontend แสดงผล
// แต่ completion evaluator ไม่บังคับใช้ (พฤติกรรมเดิมของระบบ)
type ValidationRule struct {
	MinLength         *int       `bson:"min_length,omitempty" json:"min_length,omitempty"`
	MaxLength         *int       `bson:"max_length,omitempty" json:"max_length,omitempty"`
	RequiredFiles     *int       `bson:"required_files,omitempty" json:"required_files,omitempty"`
	MaxFileSize       *int       `bson:"max_file_size,omitempty" json:"max_file_size,omitempty"`
	AllowedExtensions []string   `bson:"allowed_extensions,omitempty" json:"allowed_extensions,omitempty"`
	MinDate           *time.Time `bson:"min_date,omitempty" json:"min_date,omitempty"`
	MaxDate           *time.Time `bson:"max_date,omitempty" json:"max_date,omitempty"`
}

// TableConfig โครงตาราง - แถว 0 และคอลัมน์ 0 เป็น header เสมอ ไม่ใช่ช่องข้อมูล
type TableConfig struct {
	Rows         int      `bson:"rows" json:"rows"`
	Columns      int      `bson:"columns" json:"columns"`
	RowLabels    []string `bson:"row_labels,omitempty" json:"row_labels,omitempty"`
	ColumnLabels []string `bson:"column_labels,omitempty" json:"column_labels,omitempty"`
}

// Question หนึ่งคำถามใน field - question_id ไม่ซ้ำกันภายใน field เดียวกัน
type Question struct {
	QuestionID    string          `bson:"question_id" json:"question_id" validate:"required"`
	QuestionType  string          `bson:"question_type" json:"question_type" validate:"required,oneof=short_answer long_answer radio checkbox dropdown table date time file_upload"`
	QuestionLabel string          `bson:"question_label" json:"question_label" validate:"required"`
	Required      bool            `bson:"required" json:"required"`
	Options       []string        `bson:"options,omitempty" json:"options,omitempty"`
	AllowOther    bool            `bson:"allow_other,omitempty" json:"allow_other,omitempty"`
	Validation    *ValidationRule `bson:"validation,omitempty" json:"validation,omitempty"`
	Placeholder   string          `bson:"placeholder,omitempty" json:"placeholder,omitempty"`
	HelpText      string          `bson:"help_text,omitempty" json:"help_text,omitempty"`
	TableConfig   *TableConfig    `bson:"table_config,omitempty" json:"table_config,omitempty"`
	FileTypes     []string        `bson:"file_types,omitempty" json:"file_types,omitempty"`
	AllowMultiple bool            `bson:"allow_multiple,omitempty" json:"allow_multiple,omitempty"`
	Order         int             `bson:"order" json:"order" validate:"gte=0"`
}

// ScholarField หนึ่ง section ของฟอร์ม - กลุ่มคำถามที่มีลำดับ
type ScholarField struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ScholarID        primitive.ObjectID `bson:"scholar_id" json:"scholar_id"`
	FieldName        string             `bson:"field_name" json:"field_name"`
	FieldLabel       string             `bson:"field_label" json:"field_label"`
	FieldDescription string             `bson:"field_description,omitempty" json:"field_description,omitempty"`
	Order            int                `bson:"order" json:"order"`
	Questions        []Question         `bson:"questions" json:"questions"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// --- Payloads ---

type CreateFieldPayload struct {
	ScholarID        string     `json:"scholar_id" validate:"required"`
	FieldName        string     `json:"field_name" validate:"required"`
	FieldLabel       string     `json:"field_label" validate:"required"`
	FieldDescription string     `json:"field_description,omitempty"`
	Order            int        `json:"order" validate:"gte=0"`
	Questions        []Question `json:"questions" validate:"required,min=1,dive"`
}

type UpdateFieldPayload struct {
	FieldName        *string     `json:"field_name,omitempty"`
	FieldLabel       *string     `json:"field_label,omitempty"`
	FieldDescription *string     `json:"field_description,omitempty"`
	Order            *int        `json:"order,omitempty"`
	Questions        *[]Question `json:"questions,omitempty"`
}

// UpdateQuestionPayload ใช้ patch semantics - อัปเดตเฉพาะ attribute ที่ส่งมา
type UpdateQuestionPayload struct {
	QuestionType  *string         `json:"question_type,omitempty" validate:"omitempty,oneof=short_answer long_answer radio checkbox dropdown table date time file_upload"`
	QuestionLabel *string         `json:"question_label,omitempty"`
	Required      *bool           `json:"required,omitempty"`
	Options       *[]string       `json:"options,omitempty"`
	AllowOther    *bool           `json:"allow_other,omitempty"`
	Validation    *ValidationRule `json:"validation,omitempty"`
	Placeholder   *string         `json:"placeholder,omitempty"`
	HelpText      *string         `json:"help_text,omitempty"`
	TableConfig   *TableConfig    `json:"table_config,omitempty"`
	FileTypes     *[]string       `json:"file_types,omitempty"`
	AllowMultiple *bool           `json:"allow_multiple,omitempty"`
	Order         *int            `json:"order,omitempty" validate:"omitempty,gte=0"`
}

type FieldOrder struct {
	ID    string `json:"id" validate:"required"`
	Order int    `json:"order" validate:"gte=0"`
}

type ReorderFieldsPayload struct {
	ScholarID   string       `json:"scholar_id" validate:"required"`
	FieldOrders []FieldOrder `json:"field_orders" validate:"required,min=1,dive"`
}

type QuestionOrder struct {
	QuestionID string `json:"question_id" validate:"required"`
	Order      int    `json:"order" validate:"gte=0"`
}

type ReorderQuestionsPayload struct {
	FieldID        string          `json:"field_id" validate:"required"`
	QuestionOrders []QuestionOrder `json:"question_orders" validate:"required,min=1,dive"`
}
