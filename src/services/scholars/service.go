package scholars

import (
	"context"
	"io"
	"log"
	"time"

	"Backend-ScholarDB/src/database"
	"Backend-ScholarDB/src/models"
	"Backend-ScholarDB/src/services/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Service จัดการทุนการศึกษาและเอกสารประกอบทุน
// การลบทุน cascade ไปถึงนักเรียน (รวมไฟล์ใน storage) และ field ทั้งหมดของทุน
type Service struct {
	scholars *mongo.Collection
	fields   *mongo.Collection
	students *mongo.Collection
	storage  *storage.Client
}

func NewService(db *database.DB, storageClient *storage.Client) *Service {
	return &Service{
		scholars: db.ScholarCollection,
		fields:   db.ScholarFieldCollection,
		students: db.StudentCollection,
		storage:  storageClient,
	}
}

func (s *Service) Create(ctx context.Context, payload models.CreateScholarPayload) (*models.Scholar, error) {
	now := time.Now()
	scholar := models.Scholar{
		ID:          primitive.NewObjectID(),
		Name:        payload.Name,
		Description: payload.Description,
		Status:      models.ScholarStatusActive,
		Documents:   []models.DocumentFile{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.scholars.InsertOne(ctx, scholar); err != nil {
		return nil, err
	}
	return &scholar, nil
}

func (s *Service) GetAll(ctx context.Context) ([]models.Scholar, error) {
	return s.find(ctx, bson.M{})
}

// GetActive ดึงเฉพาะทุนที่เปิดรับสมัครอยู่ (หน้า public ของนักเรียน)
func (s *Service) GetActive(ctx context.Context) ([]models.Scholar, error) {
	return s.find(ctx, bson.M{"status": models.ScholarStatusActive})
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Scholar, error) {
	var scholar models.Scholar
	if err := s.scholars.FindOne(ctx, bson.M{"_id": id}).Decode(&scholar); err != nil {
		return nil, err
	}
	return &scholar, nil
}

func (s *Service) Update(ctx context.Context, id primitive.ObjectID, payload models.UpdateScholarPayload) (*models.Scholar, error) {
	set := bson.M{"updated_at": time.Now()}
	if payload.Name != nil {
		set["name"] = *payload.Name
	}
	if payload.Description != nil {
		set["description"] = *payload.Description
	}
	if payload.Status != nil {
		set["status"] = *payload.Status
	}

	return s.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

func (s *Service) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Scholar, error) {
	return s.findOneAndUpdate(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}})
}

// Delete ลบทุนพร้อมข้อมูลที่เกี่ยวข้องทั้งหมดตามลำดับ:
// ไฟล์ของนักเรียนใน storage -> นักเรียน -> field -> ตัวทุนเอง
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) (*models.Scholar, error) {
	scholar, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cursor, err := s.students.Find(ctx, bson.M{"scholar_id": id})
	if err != nil {
		return nil, err
	}
	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}

	for _, student := range students {
		for _, url := range storage.ExtractFileURLs(student.FormData) {
			filename := storage.ExtractFilename(url)
			if filename == "" {
				continue
			}
			if err := s.storage.Delete(filename); err != nil {
				log.Println("⚠️ Failed to delete file:", filename, err)
			}
		}
	}

	if _, err := s.students.DeleteMany(ctx, bson.M{"scholar_id": id}); err != nil {
		return nil, err
	}
	if _, err := s.fields.DeleteMany(ctx, bson.M{"scholar_id": id}); err != nil {
		return nil, err
	}
	if _, err := s.scholars.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return nil, err
	}

	log.Println("✅ Deleted scholar and related data:", id.Hex())
	return scholar, nil
}

// --- Documents ---

func (s *Service) GetDocuments(ctx context.Context, id primitive.ObjectID) ([]models.DocumentFile, error) {
	scholar, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if scholar.Documents == nil {
		return []models.DocumentFile{}, nil
	}
	return scholar.Documents, nil
}

// UploadDocument อัปโหลดไฟล์เอกสารขึ้น storage แล้วผูกเข้ากับทุน
func (s *Service) UploadDocument(ctx context.Context, id primitive.ObjectID, filename, contentType string, r io.Reader) (*models.Scholar, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	uploaded, err := s.storage.Upload(filename, contentType, r)
	if err != nil {
		return nil, err
	}

	document := models.DocumentFile{
		DocumentID: uuid.NewString(),
		FileName:   filename,
		FileURL:    uploaded.URL,
		FileType:   contentType,
		UploadedAt: time.Now(),
	}

	return s.findOneAndUpdate(ctx, id, bson.M{
		"$push": bson.M{"documents": document},
		"$set":  bson.M{"updated_at": time.Now()},
	})
}

// DeleteDocument ถอดเอกสารออกจากทุนแล้วลบไฟล์จาก storage แบบ best-effort
func (s *Service) DeleteDocument(ctx context.Context, id primitive.ObjectID, documentID string) (*models.Scholar, error) {
	scholar, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, document := range scholar.Documents {
		if document.DocumentID != documentID {
			continue
		}
		if filename := storage.ExtractFilename(document.FileURL); filename != "" {
			if err := s.storage.Delete(filename); err != nil {
				log.Println("⚠️ Failed to delete document file:", filename, err)
			}
		}
	}

	return s.findOneAndUpdate(ctx, id, bson.M{
		"$pull": bson.M{"documents": bson.M{"document_id": documentID}},
		"$set":  bson.M{"updated_at": time.Now()},
	})
}

func (s *Service) find(ctx context.Context, filter bson.M) ([]models.Scholar, error) {
	cursor, err := s.scholars.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}

	scholars := []models.Scholar{}
	if err := cursor.All(ctx, &scholars); err != nil {
		return nil, err
	}
	return scholars, nil
}

func (s *Service) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Scholar, error) {
	var scholar models.Scholar
	err := s.scholars.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&scholar)
	if err != nil {
		return nil, err
	}
	return &scholar, nil
}
