package users

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"Backend-ScholarDB/src/database"
	"Backend-ScholarDB/src/models"
	"Backend-ScholarDB/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken    = errors.New("ชื่อผู้ใช้นี้มีอยู่แล้ว")
	ErrWrongPassword    = errors.New("รหัสผ่านไม่ถูกต้อง")
	ErrSelfModification = errors.New("ไม่สามารถแก้ไขบัญชีของตนเองได้")
)

const generatedPasswordLength = 20

// Service จัดการผู้ใช้ระบบหลังบ้าน (admin / maintainer)
type Service struct {
	users *mongo.Collection
	jwt   *utils.JWTManager
}

func NewService(db *database.DB, jwtManager *utils.JWTManager) *Service {
	return &Service{users: db.UserCollection, jwt: jwtManager}
}

// LoginResult ข้อมูลที่ส่งกลับหลัง login สำเร็จ
type LoginResult struct {
	Role     string `json:"role"`
	Token    string `json:"token"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Create สร้างผู้ใช้ใหม่ตาม role ที่กำหนด
func (s *Service) Create(ctx context.Context, payload models.CreateUserPayload, role string) (*models.User, error) {
	return s.create(ctx, payload.Username, payload.Password, payload.Firstname, payload.Lastname, role)
}

// CreateWithGeneratedPassword admin สร้างบัญชีให้คนอื่นโดยระบบสุ่มรหัสผ่านให้
// คืนรหัสผ่านดิบกลับไปแสดงครั้งเดียว
func (s *Service) CreateWithGeneratedPassword(ctx context.Context, payload models.CreateUserByAdminPayload, role string) (*models.User, string, error) {
	password, err := randomPassword(generatedPasswordLength)
	if err != nil {
		return nil, "", err
	}

	user, err := s.create(ctx, payload.Username, password, payload.Firstname, payload.Lastname, role)
	if err != nil {
		return nil, "", err
	}
	return user, password, nil
}

func (s *Service) create(ctx context.Context, username, password, firstname, lastname, role string) (*models.User, error) {
	if existing, _ := s.GetByUsername(ctx, username); existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:          primitive.NewObjectID(),
		Username:    username,
		Password:    string(hashed),
		Firstname:   firstname,
		Lastname:    lastname,
		Role:        role,
		IsFirstTime: true,
		CreatedAt:   time.Now(),
	}

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) Login(ctx context.Context, payload models.LoginPayload) (*LoginResult, error) {
	user, err := s.GetByUsername(ctx, payload.Username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		return nil, ErrWrongPassword
	}

	token, err := s.jwt.GenerateAuthToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Role:     user.Role,
		Token:    token,
		Name:     user.Firstname,
		Username: user.Username,
	}, nil
}

// ChangePassword ครั้งแรกหลังถูกสร้างบัญชีไม่ต้องยืนยันรหัสผ่านเดิม
func (s *Service) ChangePassword(ctx context.Context, userID primitive.ObjectID, payload models.ChangePasswordPayload) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.IsFirstTime {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.CurrentPassword)); err != nil {
			return ErrWrongPassword
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = s.users.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{
		"password":      string(hashed),
		"is_first_time": false,
	}})
	return err
}

func (s *Service) GetAll(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete ลบผู้ใช้ (ห้ามลบบัญชีตัวเอง)
func (s *Service) Delete(ctx context.Context, currentUserID string, id primitive.ObjectID) (*models.User, error) {
	if currentUserID == id.Hex() {
		return nil, ErrSelfModification
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangeRole เปลี่ยน role ผู้ใช้ (ห้ามเปลี่ยนของตัวเอง)
func (s *Service) ChangeRole(ctx context.Context, currentUserID string, id primitive.ObjectID, role string) (*models.User, error) {
	if currentUserID == id.Hex() {
		return nil, ErrSelfModification
	}

	var user models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": role}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomPassword(length int) (string, error) {
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}
