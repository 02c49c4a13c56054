package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ScholarStatusActive   = "active"
	ScholarStatusInactive = "inactive"
)

// DocumentFile เอกสารประกอบทุนที่อัปโหลดไว้บน storage service
type DocumentFile struct {
	DocumentID string    `bson:"document_id" json:"document_id"`
	FileName   string    `bson:"file_name" json:"file_name"`
	FileURL    string    `bson:"file_url" json:"file_url"`
	FileType   string    `bson:"file_type" json:"file_type"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

// Scholar ทุนการศึกษา - เจ้าของ schema (ScholarField) และนักเรียนทั้งหมด
type Scholar struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Status      string             `bson:"status" json:"status"` // active | inactive
	Documents   []DocumentFile     `bson:"documents" json:"documents"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// --- Payloads ---

type CreateScholarPayload struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type UpdateScholarPayload struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}
