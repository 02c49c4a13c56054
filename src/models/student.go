package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StudentStatusIncomplete = "incomplete"
	StudentStatusCompleted  = "completed"
)

// FormData คำตอบของนักเรียน: field_id -> question_id -> value
// โครงสร้างภายในเป็น JSON อิสระ ฝั่ง storage ไม่บังคับ type ใดๆ
// (การตีความทำที่ completion evaluator และ export ผ่าน AnswerValue)
type FormData map[string]interface{}

// Student ผู้สมัครทุนหนึ่งคน สังกัดทุนเดียว
type Student struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ScholarID    primitive.ObjectID `bson:"scholar_id" json:"scholar_id"`
	FormData     FormData           `bson:"form_data" json:"form_data"`
	Fullname     string             `bson:"fullname,omitempty" json:"fullname,omitempty"`
	ProfileImage string             `bson:"profile_image,omitempty" json:"profile_image,omitempty"`
	Status       string             `bson:"status" json:"status"` // incomplete | completed
	SubmittedAt  *time.Time         `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// --- Payloads ---

type CreateStudentPayload struct {
	ScholarID string   `json:"scholar_id" validate:"required"`
	FormData  FormData `json:"form_data,omitempty"`
}

type UpdateStudentPayload struct {
	FormData FormData `json:"form_data,omitempty"`
	Status   *string  `json:"status,omitempty" validate:"omitempty,oneof=incomplete completed"`
	Fullname *string  `json:"fullname,omitempty"`
}

type SubmitFormPayload struct {
	FormData FormData `json:"form_data" validate:"required"`
}

type GenerateTempPermissionPayload struct {
	StudentID string `json:"student_id" validate:"required"`
	ExpiresIn int64  `json:"expires_in,omitempty" validate:"omitempty,gt=0"`
}

type VerifyTempPermissionPayload struct {
	Token     string `json:"token" validate:"required"`
	StudentID string `json:"student_id" validate:"required"`
}
