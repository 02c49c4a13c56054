package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeTempPermission token ชั่วคราวให้นักเรียนแก้ไขฟอร์มตัวเองโดยไม่ต้อง login
const TokenTypeTempPermission = "temp_permission"

// JWTManager ออกและตรวจสอบ token ทั้งสองชนิด (login / temp_permission)
type JWTManager struct {
	secret []byte
}

func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret)}
}

// AuthClaims claims ของ token จากการ login
type AuthClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// TempPermissionClaims claims ของ token ชั่วคราว ผูกกับนักเรียนคนเดียว
type TempPermissionClaims struct {
	StudentID string `json:"student_id"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// GenerateAuthToken ออก token อายุ 24 ชั่วโมงให้ผู้ใช้ที่ login สำเร็จ
func (m *JWTManager) GenerateAuthToken(userID string) (string, error) {
	claims := AuthClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseAuthToken ตรวจสอบ token login และคืน claims
func (m *JWTManager) ParseAuthToken(tokenStr string) (*AuthClaims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("empty token string")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &AuthClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || token == nil {
		return nil, fmt.Errorf("token parsing failed: %v", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}

// GenerateTempPermissionToken ออก token ชั่วคราวผูกกับ student_id
func (m *JWTManager) GenerateTempPermissionToken(studentID string, expiresIn time.Duration) (string, time.Time, error) {
	expiresAt := time.Now().Add(expiresIn)
	claims := TempPermissionClaims{
		StudentID: studentID,
		Type:      TokenTypeTempPermission,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseTempPermissionToken ตรวจสอบ token ชั่วคราว (ชนิดและวันหมดอายุ)
func (m *JWTManager) ParseTempPermissionToken(tokenStr string) (*TempPermissionClaims, error) {
	if tokenStr == "" {
		return nil, fmt.Errorf("empty token string")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &TempPermissionClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || token == nil {
		return nil, fmt.Errorf("token parsing failed: %v", err)
	}

	claims, ok := token.Claims.(*TempPermissionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims.Type != TokenTypeTempPermission {
		return nil, fmt.Errorf("invalid token type")
	}

	return claims, nil
}
