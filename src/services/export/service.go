package export

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"Backend-ScholarDB/src/database"
	"Backend-ScholarDB/src/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Service สร้าง derivation แบบอ่านอย่างเดียวจาก schema + คำตอบนักเรียน
// (CSV export และ analytics) ไม่แตะ status ของใครทั้งสิ้น
type Service struct {
	scholars *mongo.Collection
	fields   *mongo.Collection
	students *mongo.Collection
	redis    *redis.Client
}

func NewService(db *database.DB, redisClient *redis.Client) *Service {
	return &Service{
		scholars: db.ScholarCollection,
		fields:   db.ScholarFieldCollection,
		students: db.StudentCollection,
		redis:    redisClient,
	}
}

func (s *Service) loadScholar(ctx context.Context, scholarID primitive.ObjectID) (*models.Scholar, error) {
	var scholar models.Scholar
	err := s.scholars.FindOne(ctx, bson.M{"_id": scholarID}).Decode(&scholar)
	if err != nil {
		return nil, err
	}
	return &scholar, nil
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

func (s *Service) loadStudents(ctx context.Context, scholarID primitive.ObjectID) ([]models.Student, error) {
	cursor, err := s.students.Find(ctx, bson.M{"scholar_id": scholarID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

// --- Redis Cache Helper ---

func (s *Service) setCache(key string, value interface{}, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	b, _ := json.Marshal(value)
	s.redis.Set(context.Background(), key, b, ttl)
}

func (s *Service) getCache(key string, dest interface{}) bool {
	if s.redis == nil {
		return false
	}
	val, err := s.redis.Get(context.Background(), key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

// hasValue เทียบกับ truthiness ของค่าที่มาจาก JSON
// (nil, "", 0, false ถือว่าไม่มีค่า แต่ array ว่างถือว่ามี)
func hasValue(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case int32:
		return val != 0
	case int64:
		return val != 0
	}
	return true
}

// numericOrLexLess เรียงตัวเลขก่อนถ้า parse ได้ทั้งคู่ ไม่งั้นเรียงตามตัวอักษร
func numericOrLexLess(a, b string) bool {
	aNum, aErr := strconv.ParseFloat(a, 64)
	bNum, bErr := strconv.ParseFloat(b, 64)
	if aErr == nil && bErr == nil {
		return aNum < bNum
	}
	return a < b
}
