package middleware

import (
	"context"
	"strings"
	"time"

	"Backend-ScholarDB/src/database"
	"Backend-ScholarDB/src/models"
	"Backend-ScholarDB/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuthUser ข้อมูลผู้ใช้ที่ middleware ใส่ไว้ใน c.Locals("user")
type AuthUser struct {
	ID          string
	Username    string
	Firstname   string
	Lastname    string
	Role        string
	IsFirstTime bool
}

// Auth ตรวจ Bearer token แล้ว resolve ผู้ใช้จาก database
type Auth struct {
	jwt   *utils.JWTManager
	users *mongo.Collection
}

func NewAuth(jwtManager *utils.JWTManager, db *database.DB) *Auth {
	return &Auth{jwt: jwtManager, users: db.UserCollection}
}

// RequireAuth ต้อง login เท่านั้น
func (a *Auth) RequireAuth(c *fiber.Ctx) error {
	user, err := a.resolveUser(c)
	if err != nil {
		return utils.FailedResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	c.Locals("user", user)
	return c.Next()
}

// AdminOnly ต้องเป็น admin เท่านั้น (ใช้ต่อจาก RequireAuth)
func (a *Auth) AdminOnly(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*AuthUser)
	if !ok || user == nil {
		return utils.FailedResponse(c, "ไม่พบข้อมูลผู้ใช้งาน", fiber.StatusUnauthorized)
	}

	if user.Role != models.RoleAdmin {
		return utils.FailedResponse(c, "ไม่มีสิทธิ์เข้าถึงข้อมูลนี้", fiber.StatusForbidden)
	}

	return c.Next()
}

// AuthOrTempPermission ยอมรับทั้ง token login ปกติ และ temp_permission token
// ที่ student_id ตรงกับ :id ใน path (นักเรียนแก้ไขฟอร์มของตัวเอง)
func (a *Auth) AuthOrTempPermission(c *fiber.Ctx) error {
	tokenStr, err := bearerToken(c)
	if err != nil {
		return utils.FailedResponse(c, err.Error(), fiber.StatusUnauthorized)
	}

	// ลองเป็น token login ก่อน
	if claims, err := a.jwt.ParseAuthToken(tokenStr); err == nil {
		if user, err := a.lookupUser(c.Context(), claims.UserID); err == nil {
			c.Locals("user", user)
			return c.Next()
		}
	}

	// ไม่ใช่ผู้ใช้ระบบ - ตรวจเป็น temp permission
	claims, err := a.jwt.ParseTempPermissionToken(tokenStr)
	if err != nil {
		return utils.FailedResponse(c, "Invalid or expired token", fiber.StatusUnauthorized)
	}

	if claims.StudentID != c.Params("id") {
		return utils.FailedResponse(c, "Token ไม่ตรงกับ Student ID", fiber.StatusForbidden)
	}

	c.Locals("tempStudentId", claims.StudentID)
	return c.Next()
}

func (a *Auth) resolveUser(c *fiber.Ctx) (*AuthUser, error) {
	tokenStr, err := bearerToken(c)
	if err != nil {
		return nil, err
	}

	claims, err := a.jwt.ParseAuthToken(tokenStr)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
	}

	return a.lookupUser(c.Context(), claims.UserID)
}

func (a *Auth) lookupUser(ctx context.Context, userID string) (*AuthUser, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Token ไม่ถูกต้อง")
	}

	findCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var user models.User
	if err := a.users.FindOne(findCtx, bson.M{"_id": oid}).Decode(&user); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "ไม่พบผู้ใช้งาน")
	}

	return &AuthUser{
		ID:          user.ID.Hex(),
		Username:    user.Username,
		Firstname:   user.Firstname,
		Lastname:    user.Lastname,
		Role:        user.Role,
		IsFirstTime: user.IsFirstTime,
	}, nil
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing or invalid Authorization header")
	}
	return strings.TrimPrefix(authHeader, "Bearer "), nil
}
