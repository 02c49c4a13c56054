package students

import (
	"context"
	"log"
	"strings"
	"time"

	"Backend-ScholarDB/src/database"
	"Backend-ScholarDB/src/models"
	"Backend-ScholarDB/src/services/completion"
	"Backend-ScholarDB/src/services/formdata"
	"Backend-ScholarDB/src/services/storage"
	"Backend-ScholarDB/src/utils"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTempPermissionTTL = time.Hour

// Service จัดการข้อมูลผู้สมัครทุนและ pipeline การบันทึกฟอร์ม:
// deep merge คำตอบใหม่เข้ากับของเดิม เก็บกวาดไฟล์ที่ไม่ถูกอ้างถึงแล้ว
// หาชื่อ-นามสกุล แล้วประเมินสถานะความครบถ้วนเป็น write แยก
type Service struct {
	students *mongo.Collection
	fields   *mongo.Collection
	storage  *storage.Client
	jwt      *utils.JWTManager
	redis    *redis.Client
}

func NewService(db *database.DB, storageClient *storage.Client, jwtManager *utils.JWTManager, redisClient *redis.Client) *Service {
	return &Service{
		students: db.StudentCollection,
		fields:   db.ScholarFieldCollection,
		storage:  storageClient,
		jwt:      jwtManager,
		redis:    redisClient,
	}
}

// TempPermission token ชั่วคราวให้นักเรียนคนเดียวแก้ไขฟอร์มตัวเอง
type TempPermission struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	StudentID string    `json:"student_id"`
}

type TempPermissionCheck struct {
	Valid     bool            `json:"valid"`
	StudentID string          `json:"student_id"`
	ExpiresAt time.Time       `json:"expires_at"`
	Student   *models.Student `json:"student"`
}

func (s *Service) Create(ctx context.Context, scholarID primitive.ObjectID, formData models.FormData) (*models.Student, error) {
	if formData == nil {
		formData = models.FormData{}
	}

	now := time.Now()
	student := models.Student{
		ID:        primitive.NewObjectID(),
		ScholarID: scholarID,
		FormData:  formData,
		Fullname:  formdata.ExtractFullname(formData),
		Status:    models.StudentStatusIncomplete,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.students.InsertOne(ctx, student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *Service) GetAll(ctx context.Context) ([]models.Student, error) {
	return s.find(ctx, bson.M{})
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	var student models.Student
	if err := s.students.FindOne(ctx, bson.M{"_id": id}).Decode(&student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *Service) GetByScholar(ctx context.Context, scholarID primitive.ObjectID) ([]models.Student, error) {
	return s.find(ctx, bson.M{"scholar_id": scholarID})
}

func (s *Service) GetByStatus(ctx context.Context, status string) ([]models.Student, error) {
	return s.find(ctx, bson.M{"status": status})
}

func (s *Service) CountByScholar(ctx context.Context, scholarID primitive.ObjectID) (int64, error) {
	return s.students.CountDocuments(ctx, bson.M{"scholar_id": scholarID})
}

// Update บันทึก draft: merge คำตอบใหม่เข้ากับของเดิมแล้วประเมินสถานะ
// ถ้าโหลด schema มาประเมินไม่ได้ จะคงสถานะเดิมไว้ (ไม่เดาว่าครบ)
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, payload models.UpdateStudentPayload) (*models.Student, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now()}
	if payload.Status != nil {
		set["status"] = *payload.Status
	}
	if payload.Fullname != nil {
		set["fullname"] = *payload.Fullname
	}

	var merged models.FormData
	if payload.FormData != nil {
		merged = formdata.Merge(existing.FormData, payload.FormData)
		s.storage.CleanupOldFiles(existing.FormData, merged)
		set["form_data"] = merged

		if fullname := formdata.ExtractFullname(merged); fullname != "" {
			set["fullname"] = fullname
		}
	}

	student, err := s.findOneAndUpdate(ctx, id, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if payload.FormData == nil {
		return student, nil
	}

	fields, err := s.loadFields(ctx, student.ScholarID)
	if err != nil {
		log.Println("⚠️ Failed to load fields for completion check:", err)
		return student, nil
	}

	status := models.StudentStatusIncomplete
	if completion.IsComplete(merged, fields) {
		status = models.StudentStatusCompleted
	}
	return s.SetStatus(ctx, id, status)
}

// SubmitForm ส่งฟอร์มรอบสุดท้าย ใช้ pipeline เดียวกับ draft
// แต่ถ้าประเมินความครบถ้วนไม่ได้ จะถือว่าส่งสำเร็จเป็น completed
// (การส่งฟอร์มต้องไม่ล้มเพราะระบบประเมินมีปัญหา)
func (s *Service) SubmitForm(ctx context.Context, id primitive.ObjectID, formData models.FormData) (*models.Student, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := formdata.Merge(existing.FormData, formData)
	s.storage.CleanupOldFiles(existing.FormData, merged)

	set := bson.M{
		"form_data":  merged,
		"updated_at": time.Now(),
	}
	if fullname := formdata.ExtractFullname(merged); fullname != "" {
		set["fullname"] = fullname
	}

	if _, err := s.findOneAndUpdate(ctx, id, bson.M{"$set": set}); err != nil {
		return nil, err
	}

	fields, err := s.loadFields(ctx, existing.ScholarID)
	if err != nil {
		log.Println("⚠️ Failed to check completion on submit, marking completed:", err)
		return s.SetStatus(ctx, id, models.StudentStatusCompleted)
	}

	status := models.StudentStatusIncomplete
	if completion.IsComplete(merged, fields) {
		status = models.StudentStatusCompleted
	}
	return s.SetStatus(ctx, id, status)
}

// SetStatus เปลี่ยนสถานะนักเรียน submitted_at บันทึกเฉพาะครั้งแรกที่ completed
func (s *Service) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Student, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if status == models.StudentStatusCompleted && existing.SubmittedAt == nil {
		set["submitted_at"] = time.Now()
	}

	return s.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

// Delete ลบนักเรียนพร้อมไฟล์ทั้งหมดที่ฟอร์มอ้างถึง
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, url := range storage.ExtractFileURLs(existing.FormData) {
		filename := storage.ExtractFilename(url)
		if filename == "" {
			continue
		}
		if err := s.storage.Delete(filename); err != nil {
			log.Println("⚠️ Failed to delete file:", filename, err)
		}
	}

	_, err = s.students.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Search ค้นหาจาก fullname และทุก key/value ใน form_data
func (s *Service) Search(ctx context.Context, keyword string) ([]models.Student, error) {
	students, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return filterByKeyword(students, keyword), nil
}

func (s *Service) SearchByScholar(ctx context.Context, scholarID primitive.ObjectID, keyword string) ([]models.Student, error) {
	students, err := s.GetByScholar(ctx, scholarID)
	if err != nil {
		return nil, err
	}
	return filterByKeyword(students, keyword), nil
}

// --- Temp Permission ---

// GenerateTempPermission ออก token ชั่วคราวให้นักเรียนแก้ไขฟอร์มตัวเอง
func (s *Service) GenerateTempPermission(ctx context.Context, payload models.GenerateTempPermissionPayload) (*TempPermission, error) {
	studentID, err := primitive.ObjectIDFromHex(payload.StudentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	ttl := defaultTempPermissionTTL
	if payload.ExpiresIn > 0 {
		ttl = time.Duration(payload.ExpiresIn) * time.Second
	}

	token, expiresAt, err := s.jwt.GenerateTempPermissionToken(payload.StudentID, ttl)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		s.redis.Set(ctx, "temp_permission:"+payload.StudentID, token, ttl)
	}

	return &TempPermission{
		Token:     token,
		ExpiresAt: expiresAt,
		StudentID: payload.StudentID,
	}, nil
}

// VerifyTempPermission ตรวจ token ว่ายังใช้ได้และผูกกับนักเรียนคนที่อ้าง
func (s *Service) VerifyTempPermission(ctx context.Context, payload models.VerifyTempPermissionPayload) (*TempPermissionCheck, error) {
	claims, err := s.jwt.ParseTempPermissionToken(payload.Token)
	if err != nil {
		return nil, err
	}
	if claims.StudentID != payload.StudentID {
		return &TempPermissionCheck{Valid: false}, nil
	}

	studentID, err := primitive.ObjectIDFromHex(payload.StudentID)
	if err != nil {
		return nil, err
	}
	student, err := s.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return &TempPermissionCheck{
		Valid:     true,
		StudentID: claims.StudentID,
		ExpiresAt: claims.ExpiresAt.Time,
		Student:   student,
	}, nil
}

func (s *Service) find(ctx context.Context, filter bson.M) ([]models.Student, error) {
	cursor, err := s.students.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}

	students := []models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (s *Service) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Student, error) {
	var student models.Student
	err := s.students.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&student)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *Service) loadFields(ctx context.Context, scholarID primitive.ObjectID) ([]models.ScholarField, error) {
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

func filterByKeyword(students []models.Student, keyword string) []models.Student {
	matched := []models.Student{}
	for _, student := range students {
		if matchesKeyword(student, keyword) {
			matched = append(matched, student)
		}
	}
	return matched
}

func matchesKeyword(student models.Student, keyword string) bool {
	lower := strings.ToLower(keyword)
	if strings.Contains(strings.ToLower(student.Fullname), lower) {
		return true
	}
	return searchValue(map[string]interface{}(student.FormData), lower)
}

// searchValue ไล่หา keyword ทั้งใน key และ value ของ form_data ทุกชั้น
func searchValue(v interface{}, keyword string) bool {
	switch val := v.(type) {
	case map[string]interface{}:
		return searchMap(val, keyword)
	case primitive.M:
		return searchMap(val, keyword)
	case []interface{}:
		for _, item := range val {
			if searchValue(item, keyword) {
				return true
			}
		}
	case primitive.A:
		for _, item := range val {
			if searchValue(item, keyword) {
				return true
			}
		}
	default:
		return strings.Contains(strings.ToLower(models.Stringify(v)), keyword)
	}
	return false
}

func searchMap(m map[string]interface{}, keyword string) bool {
	for key, value := range m {
		if strings.Contains(strings.ToLower(key), keyword) {
			return true
		}
		if searchValue(value, keyword) {
			return true
		}
	}
	return false
}
