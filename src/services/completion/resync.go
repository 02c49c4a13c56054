package completion

import (
	"context"
	"log"
	"time"

	"Backend-ScholarDB/src/database"
	"Backend-ScholarDB/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Service รัน completion evaluator ซ้ำกับนักเรียนทุกคนของทุนหลัง schema เปลี่ยน
type Service struct {
	students *mongo.Collection
	fields   *mongo.Collection
}

func NewService(db *database.DB) *Service {
	return &Service{
		students: db.StudentCollection,
		fields:   db.ScholarFieldCollection,
	}
}

// LoadFields ดึง field ทั้งหมดของทุน เรียงตาม order
func (s *Service) LoadFields(ctx context.Context, scholarID primitive.ObjectID) ([]models.ScholarField, error) {
	cursor, err := s.fields.Find(ctx, bson.M{"scholar_id": scholarID},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var fields []models.ScholarField
	if err := cursor.All(ctx, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Resync โหลด schema ปัจจุบันแล้วประเมินสถานะนักเรียนทุกคนใหม่
func (s *Service) Resync(ctx context.Context, scholarID primitive.ObjectID) error {
	fields, err := s.LoadFields(ctx, scholarID)
	if err != nil {
		return err
	}
	return s.ResyncStudents(ctx, scholarID, fields)
}

// ResyncStudents ประเมินนักเรียนทุกคนของทุนกับ field set ที่ให้มา
// แล้วเขียนเฉพาะคนที่สถานะเปลี่ยนเป็น batch เดียว (ไม่มีอะไรเปลี่ยน = ไม่เขียนเลย)
func (s *Service) ResyncStudents(ctx context.Context, scholarID primitive.ObjectID, fields []models.ScholarField) error {
	cursor, err := s.students.Find(ctx, bson.M{"scholar_id": scholarID})
	if err != nil {
		return err
	}

	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return err
	}

	ops := stageStatusUpdates(students, fields, time.Now())
	if len(ops) == 0 {
		return nil
	}

	if _, err := s.students.BulkWrite(ctx, ops); err != nil {
		return err
	}

	log.Printf("✅ Resynced %d student statuses for scholar %s", len(ops), scholarID.Hex())
	return nil
}

// stageStatusUpdates ประเมินนักเรียนแต่ละคนแล้วคืนเฉพาะ update ของคนที่
// สถานะเปลี่ยนจริง สถานะเดิมถูกต้องอยู่แล้วไม่แตะ document เลย
// submitted_at บันทึกครั้งแรกที่ completed เท่านั้น ไม่เขียนทับ
func stageStatusUpdates(students []models.Student, fields []models.ScholarField, now time.Time) []mongo.WriteModel {
	var ops []mongo.WriteModel

	for _, student := range students {
		newStatus := models.StudentStatusIncomplete
		if IsComplete(student.FormData, fields) {
			newStatus = models.StudentStatusCompleted
		}

		if student.Status == newStatus {
			continue
		}

		set := bson.M{
			"status":     newStatus,
			"updated_at": now,
		}
		if newStatus == models.StudentStatusCompleted && student.SubmittedAt == nil {
			set["submitted_at"] = now
		}

		ops = append(ops, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": student.ID}).
			SetUpdate(bson.M{"$set": set}))
	}

	return ops
}
