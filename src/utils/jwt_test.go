package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test_secret")

	token, err := m.GenerateAuthToken("user123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.ParseAuthToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user123", claims.UserID)
}

func TestAuthTokenWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret_a").GenerateAuthToken("user123")
	assert.NoError(t, err)

	_, err = NewJWTManager("secret_b").ParseAuthToken(token)
	assert.Error(t, err)
}

func TestTempPermissionTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("test_secret")

	token, expiresAt, err := m.GenerateTempPermissionToken("student123", time.Hour)
	assert.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := m.ParseTempPermissionToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "student123", claims.StudentID)
	assert.Equal(t, TokenTypeTempPermission, claims.Type)
}

func TestTempPermissionTokenExpired(t *testing.T) {
	m := NewJWTManager("test_secret")

	token, _, err := m.GenerateTempPermissionToken("student123", -time.Minute)
	assert.NoError(t, err)

	_, err = m.ParseTempPermissionToken(token)
	assert.Error(t, err)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("test_secret")

	authToken, err := m.GenerateAuthToken("user123")
	assert.NoError(t, err)

	// token login ไม่มี type เป็น temp_permission ต้องตกที่การตรวจชนิด
	_, err = m.ParseTempPermissionToken(authToken)
	assert.Error(t, err)
}

func TestParseEmptyToken(t *testing.T) {
	m := NewJWTManager("test_secret")

	_, err := m.ParseAuthToken("")
	assert.Error(t, err)

	_, err = m.ParseTempPermissionToken("")
	assert.Error(t, err)
}
