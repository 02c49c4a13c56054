package controllers

import (
	"errors"

	"Backend-ScholarDB/src/middleware"
	"Backend-ScholarDB/src/models"
	"Backend-ScholarDB/src/services/users"
	"Backend-ScholarDB/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserController struct {
	users *users.Service
}

func NewUserController(svc *users.Service) *UserController {
	return &UserController{users: svc}
}

// Login - เข้าสู่ระบบ
// @Summary      Login with username and password
// @Description  Login with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.LoginPayload true "Login credentials"
// @Success      200  {object}  models.BaseResponse
// @Failure      400  {object}  models.BaseResponse
// @Router       /auth/login [post]
func (ctl *UserController) Login(c *fiber.Ctx) error {
	var payload models.LoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	result, err := ctl.users.Login(c.Context(), payload)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบผู้ใช้งาน")
		}
		if errors.Is(err, users.ErrWrongPassword) {
			return utils.FailedResponse(c, "รหัสผ่านไม่ถูกต้อง", fiber.StatusGone)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "เข้าสู่ระบบสำเร็จ", result)
}

// Verify - ตรวจสอบ token และคืนข้อมูลผู้ใช้ปัจจุบัน
// @Summary      Verify current auth token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.BaseResponse
// @Failure      401  {object}  models.BaseResponse
// @Router       /auth/verify [get]
func (ctl *UserController) Verify(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*middleware.AuthUser)
	if !ok || user == nil {
		return utils.FailedResponse(c, "ไม่พบข้อมูลผู้ใช้งาน")
	}

	return utils.SuccessResponse(c, "ตรวจสอบผู้ใช้งานสำเร็จ", fiber.Map{
		"id":            user.ID,
		"name":          user.Firstname,
		"role":          user.Role,
		"is_first_time": user.IsFirstTime,
	})
}

// CreateUser - สร้างผู้ใช้ใหม่ตาม role (?admin=1 ให้ระบบสุ่มรหัสผ่าน)
// @Summary      Create a new admin or maintainer user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        role  path   string  true  "User role (admin or maintainer)"
// @Param        admin query  string  false "Set when an admin creates the account (password is generated)"
// @Param        body  body   models.CreateUserPayload true "User data"
// @Success      200  {object}  models.BaseResponse
// @Failure      400  {object}  models.BaseResponse
// @Router       /auth/register/{role} [post]
func (ctl *UserController) CreateUser(c *fiber.Ctx) error {
	role := c.Params("role")
	if role != models.RoleAdmin && role != models.RoleMaintainer {
		return utils.FailedResponse(c, "ชนิดผู้ใช้ไม่ถูกต้อง")
	}

	msg := "สร้างผู้ดูแลข้อมูลสำเร็จ!"
	if role == models.RoleAdmin {
		msg = "สร้างผู้ดูแลระบบสำเร็จ!"
	}

	if c.Query("admin") != "" {
		var payload models.CreateUserByAdminPayload
		if err := c.BodyParser(&payload); err != nil {
			return utils.FailedResponse(c, "Invalid input")
		}
		if err := utils.ValidateStruct(payload); err != nil {
			return utils.FailedResponse(c, err.Error())
		}

		user, password, err := ctl.users.CreateWithGeneratedPassword(c.Context(), payload, role)
		if err != nil {
			if errors.Is(err, users.ErrUsernameTaken) {
				return utils.FailedResponse(c, err.Error())
			}
			return utils.ErrorResponse(c, err)
		}

		return utils.SuccessResponse(c, msg, fiber.Map{
			"user":              user,
			"generatedPassword": password,
		})
	}

	var payload models.CreateUserPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	user, err := ctl.users.Create(c.Context(), payload, role)
	if err != nil {
		if errors.Is(err, users.ErrUsernameTaken) {
			return utils.FailedResponse(c, err.Error())
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, msg, user)
}

// ChangePassword - เปลี่ยนรหัสผ่านของผู้ใช้ปัจจุบัน
// @Summary      Change current user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.ChangePasswordPayload true "Password data"
// @Success      200  {object}  models.BaseResponse
// @Failure      400  {object}  models.BaseResponse
// @Router       /auth/change-password [put]
func (ctl *UserController) ChangePassword(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*middleware.AuthUser)
	if !ok || user == nil {
		return utils.FailedResponse(c, "ไม่พบข้อมูลผู้ใช้งาน")
	}

	var payload models.ChangePasswordPayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return utils.FailedResponse(c, "ไม่พบผู้ใช้งาน")
	}

	if err := ctl.users.ChangePassword(c.Context(), userID, payload); err != nil {
		if errors.Is(err, users.ErrWrongPassword) {
			return utils.FailedResponse(c, "รหัสผ่านปัจจุบันไม่ถูกต้อง", fiber.StatusGone)
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบผู้ใช้งาน", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "เปลี่ยนรหัสผ่านสำเร็จ!", nil)
}

// GetUsers - ดึงผู้ใช้ทั้งหมด (admin เท่านั้น)
// @Summary      Get all users
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.BaseResponse
// @Router       /auth/users [get]
func (ctl *UserController) GetUsers(c *fiber.Ctx) error {
	all, err := ctl.users.GetAll(c.Context())
	if err != nil {
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ดึงข้อมูลผู้ใช้งานทั้งหมดสำเร็จ", all)
}

// DeleteUser - ลบผู้ใช้ (ลบบัญชีตัวเองไม่ได้)
// @Summary      Delete a user
// @Tags         auth
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /auth/users/{id} [delete]
func (ctl *UserController) DeleteUser(c *fiber.Ctx) error {
	current, ok := c.Locals("user").(*middleware.AuthUser)
	if !ok || current == nil {
		return utils.FailedResponse(c, "ไม่พบข้อมูลผู้ใช้งาน")
	}

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ผู้ใช้งานไม่ถูกต้อง")
	}

	deleted, err := ctl.users.Delete(c.Context(), current.ID, id)
	if err != nil {
		if errors.Is(err, users.ErrSelfModification) {
			return utils.FailedResponse(c, "ไม่สามารถลบบัญชีของตนเองได้")
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบผู้ใช้งาน", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "ลบผู้ใช้งานสำเร็จ!", fiber.Map{
		"id":        deleted.ID.Hex(),
		"username":  deleted.Username,
		"firstname": deleted.Firstname,
		"lastname":  deleted.Lastname,
	})
}

// ChangeUserRole - เปลี่ยน role ผู้ใช้ (เปลี่ยนของตัวเองไม่ได้)
// @Summary      Change a user's role
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        id   path string true "User ID"
// @Param        body body models.ChangeRolePayload true "New role"
// @Success      200  {object}  models.BaseResponse
// @Failure      404  {object}  models.BaseResponse
// @Router       /auth/users/{id}/role [patch]
func (ctl *UserController) ChangeUserRole(c *fiber.Ctx) error {
	current, ok := c.Locals("user").(*middleware.AuthUser)
	if !ok || current == nil {
		return utils.FailedResponse(c, "ไม่พบข้อมูลผู้ใช้งาน")
	}

	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.FailedResponse(c, "รูปแบบ ID ผู้ใช้งานไม่ถูกต้อง")
	}

	var payload models.ChangeRolePayload
	if err := c.BodyParser(&payload); err != nil {
		return utils.FailedResponse(c, "Invalid input")
	}
	if err := utils.ValidateStruct(payload); err != nil {
		return utils.FailedResponse(c, err.Error())
	}

	updated, err := ctl.users.ChangeRole(c.Context(), current.ID, id, payload.Role)
	if err != nil {
		if errors.Is(err, users.ErrSelfModification) {
			return utils.FailedResponse(c, "ไม่สามารถเปลี่ยนบทบาทของตนเองได้")
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.FailedResponse(c, "ไม่พบผู้ใช้งาน", fiber.StatusNotFound)
		}
		return utils.ErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, "เปลี่ยนบทบาทผู้ใช้งานสำเร็จ!", updated)
}
