package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin      = "admin"
	RoleMaintainer = "maintainer"
)

// User ผู้ใช้งานระบบหลังบ้าน (ไม่ใช่นักเรียน)
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username    string             `bson:"username" json:"username"`
	Password    string             `bson:"password" json:"-"`
	Firstname   string             `bson:"firstname" json:"firstname"`
	Lastname    string             `bson:"lastname" json:"lastname"`
	Role        string             `bson:"role" json:"role"` // admin | maintainer
	IsFirstTime bool               `bson:"is_first_time" json:"is_first_time"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// --- Payloads ---

type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateUserPayload struct {
	Username  string `json:"username" validate:"required,min=4"`
	Password  string `json:"password" validate:"required,min=8"`
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
}

// CreateUserByAdminPayload ไม่ต้องส่งรหัสผ่าน ระบบสุ่มให้
type CreateUserByAdminPayload struct {
	Username  string `json:"username" validate:"required,min=4"`
	Firstname string `json:"firstname" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
}

type ChangePasswordPayload struct {
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type ChangeRolePayload struct {
	Role string `json:"role" validate:"required,oneof=admin maintainer"`
}
