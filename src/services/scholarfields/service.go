package scholarfields

import (
	"context"
	"fmt"
	"sort"
	"time"

	"Backend-ScholarDB/src/database"
	"Backend-ScholarDB/src/jobs"
	"Backend-ScholarDB/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Service จัดการ schema ของฟอร์ม (field และคำถาม)
// ทุกการแก้ไขที่กระทบความครบถ้วนของฟอร์มจะ trigger re-evaluate
// สถานะนักเรียนของทุนนั้นผ่าน resyncer (ไม่ block response)
type Service struct {
	fields   *mongo.Collection
	resyncer *jobs.Resyncer
}

func NewService(db *database.DB, resyncer *jobs.Resyncer) *Service {
	return &Service{
		fields:   db.ScholarFieldCollection,
		resyncer: resyncer,
	}
}

func (s *Service) Create(ctx context.Context, payload models.CreateFieldPayload) (*models.ScholarField, error) {
	scholarID, err := primitive.ObjectIDFromHex(payload.ScholarID)
	if err != nil {
		return nil, fmt.Errorf("invalid scholar id: %w", err)
	}

	if err := uniqueQuestionIDs(payload.Questions); err != nil {
		return nil, err
	}

	now := time.Now()
	field := models.ScholarField{
		ID:               primitive.NewObjectID(),
		ScholarID:        scholarID,
		FieldName:        payload.FieldName,
		FieldLabel:       payload.FieldLabel,
		FieldDescription: payload.FieldDescription,
		Order:            payload.Order,
		Questions:        payload.Questions,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := s.fields.InsertOne(ctx, field); err != nil {
		return nil, err
	}

	s.resyncer.Trigger(scholarID)
	return &field, nil
}

func (s *Service) GetByScholarID(ctx context.Context, scholarID primitive.ObjectID) ([]models.ScholarField, error) {
	cursor, err := s.fields.Find(ctx, bson.M{"scholar_id": scholarID},
		options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, err
	}

	fields := []models.ScholarField{}
	if err := cursor.All(ctx, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ScholarField, error) {
	var field models.ScholarField
	if err := s.fields.FindOne(ctx, bson.M{"_id": id}).Decode(&field); err != nil {
		return nil, err
	}
	return &field, nil
}

func (s *Service) Update(ctx context.Context, id primitive.ObjectID, payload models.UpdateFieldPayload) (*models.ScholarField, error) {
	set := bson.M{"updated_at": time.Now()}
	if payload.FieldName != nil {
		set["field_name"] = *payload.FieldName
	}
	if payload.FieldLabel != nil {
		set["field_label"] = *payload.FieldLabel
	}
	if payload.FieldDescription != nil {
		set["field_description"] = *payload.FieldDescription
	}
	if payload.Order != nil {
		set["order"] = *payload.Order
	}
	if payload.Questions != nil {
		if err := uniqueQuestionIDs(*payload.Questions); err != nil {
			return nil, err
		}
		set["questions"] = *payload.Questions
	}

	field, err := s.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}

	s.resyncer.Trigger(field.ScholarID)
	return field, nil
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (*models.ScholarField, error) {
	field, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.fields.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return nil, err
	}

	s.resyncer.Trigger(field.ScholarID)
	return field, nil
}

// ReorderFields เขียนลำดับใหม่ของหลาย field เป็น batch เดียว
// filter ผูกกับ scholar_id กันไม่ให้แก้ field ข้ามทุน
func (s *Service) ReorderFields(ctx context.Context, payload models.ReorderFieldsPayload) error {
	scholarID, err := primitive.ObjectIDFromHex(payload.ScholarID)
	if err != nil {
		return fmt.Errorf("invalid scholar id: %w", err)
	}

	now := time.Now()
	ops := make([]mongo.WriteModel, 0, len(payload.FieldOrders))
	for _, fieldOrder := range payload.FieldOrders {
		fieldID, err := primitive.ObjectIDFromHex(fieldOrder.ID)
		if err != nil {
			return fmt.Errorf("invalid field id: %w", err)
		}
		ops = append(ops, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": fieldID, "scholar_id": scholarID}).
			SetUpdate(bson.M{"$set": bson.M{
				"order":      fieldOrder.Order,
				"updated_at": now,
			}}))
	}

	if _, err := s.fields.BulkWrite(ctx, ops); err != nil {
		return err
	}

	s.resyncer.Trigger(scholarID)
	return nil
}

// --- Questions ---

func (s *Service) AddQuestion(ctx context.Context, fieldID primitive.ObjectID, question models.Question) (*models.ScholarField, error) {
	existing, err := s.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}
	for _, q := range existing.Questions {
		if q.QuestionID == question.QuestionID {
			return nil, fmt.Errorf("duplicate question id: %s", question.QuestionID)
		}
	}

	field, err := s.findOneAndUpdate(ctx, bson.M{"_id": fieldID}, bson.M{
		"$push": bson.M{"questions": question},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return nil, err
	}

	s.resyncer.Trigger(field.ScholarID)
	return field, nil
}

// UpdateQuestion patch เฉพาะ attribute ที่ส่งมา ผ่าน positional operator
func (s *Service) UpdateQuestion(ctx context.Context, fieldID primitive.ObjectID, questionID string, payload models.UpdateQuestionPayload) (*models.ScholarField, error) {
	set := bson.M{"updated_at": time.Now()}
	applyQuestionPatch(set, payload)

	field, err := s.findOneAndUpdate(ctx,
		bson.M{"_id": fieldID, "questions.question_id": questionID},
		bson.M{"$set": set})
	if err != nil {
		return nil, err
	}

	s.resyncer.Trigger(field.ScholarID)
	return field, nil
}

func (s *Service) RemoveQuestion(ctx context.Context, fieldID primitive.ObjectID, questionID string) (*models.ScholarField, error) {
	field, err := s.findOneAndUpdate(ctx, bson.M{"_id": fieldID}, bson.M{
		"$pull": bson.M{"questions": bson.M{"question_id": questionID}},
		"$set":  bson.M{"updated_at": time.Now()},
	})
	if err != nil {
		return nil, err
	}

	s.resyncer.Trigger(field.ScholarID)
	return field, nil
}

// ReorderQuestions ใส่ order ใหม่ให้คำถามใน field เดียว
// แล้วบันทึกทั้งรายการแบบเรียงตาม order เพื่อให้ลำดับใน document ตรงกับหน้าจอ
func (s *Service) ReorderQuestions(ctx context.Context, payload models.ReorderQuestionsPayload) (*models.ScholarField, error) {
	fieldID, err := primitive.ObjectIDFromHex(payload.FieldID)
	if err != nil {
		return nil, fmt.Errorf("invalid field id: %w", err)
	}

	field, err := s.GetByID(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	newOrders := make(map[string]int, len(payload.QuestionOrders))
	for _, questionOrder := range payload.QuestionOrders {
		newOrders[questionOrder.QuestionID] = questionOrder.Order
	}

	for i := range field.Questions {
		if order, ok := newOrders[field.Questions[i].QuestionID]; ok {
			field.Questions[i].Order = order
		}
	}
	sort.SliceStable(field.Questions, func(i, j int) bool {
		return field.Questions[i].Order < field.Questions[j].Order
	})

	updated, err := s.findOneAndUpdate(ctx, bson.M{"_id": fieldID}, bson.M{"$set": bson.M{
		"questions":  field.Questions,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return nil, err
	}

	s.resyncer.Trigger(updated.ScholarID)
	return updated, nil
}

func (s *Service) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*models.ScholarField, error) {
	var field models.ScholarField
	err := s.fields.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&field)
	if err != nil {
		return nil, err
	}
	return &field, nil
}

func uniqueQuestionIDs(questions []models.Question) error {
	seen := make(map[string]bool, len(questions))
	for _, question := range questions {
		if seen[question.QuestionID] {
			return fmt.Errorf("duplicate question id: %s", question.QuestionID)
		}
		seen[question.QuestionID] = true
	}
	return nil
}

func applyQuestionPatch(set bson.M, payload models.UpdateQuestionPayload) {
	const prefix = "questions.$."
	if payload.QuestionType != nil {
		set[prefix+"question_type"] = *payload.QuestionType
	}
	if payload.QuestionLabel != nil {
		set[prefix+"question_label"] = *payload.QuestionLabel
	}
	if payload.Required != nil {
		set[prefix+"required"] = *payload.Required
	}
	if payload.Options != nil {
		set[prefix+"options"] = *payload.Options
	}
	if payload.AllowOther != nil {
		set[prefix+"allow_other"] = *payload.AllowOther
	}
	if payload.Validation != nil {
		set[prefix+"validation"] = *payload.Validation
	}
	if payload.Placeholder != nil {
		set[prefix+"placeholder"] = *payload.Placeholder
	}
	if payload.HelpText != nil {
		set[prefix+"help_text"] = *payload.HelpText
	}
	if payload.TableConfig != nil {
		set[prefix+"table_config"] = *payload.TableConfig
	}
	if payload.FileTypes != nil {
		set[prefix+"file_types"] = *payload.FileTypes
	}
	if payload.AllowMultiple != nil {
		set[prefix+"allow_multiple"] = *payload.AllowMultiple
	}
	if payload.Order != nil {
		set[prefix+"order"] = *payload.Order
	}
}
