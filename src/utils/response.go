package utils

import (
	"fmt"

	"Backend-ScholarDB/src/models"

	"github.com/gofiber/fiber/v2"
)

// SuccessResponse ตอบกลับแบบสำเร็จ (200) ด้วย envelope มาตรฐาน
func SuccessResponse(c *fiber.Ctx, msg string, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(models.BaseResponse{
		Success: true,
		Msg:     msg,
		Data:    data,
	})
}

// FailedResponse ตอบกลับ validation error (400) หรือ status ที่ระบุ เช่น 404
func FailedResponse(c *fiber.Ctx, msg string, status ...int) error {
	code := fiber.StatusBadRequest
	if len(status) > 0 {
		code = status[0]
	}
	return c.Status(code).JSON(models.BaseResponse{
		Success: false,
		Msg:     msg,
		Data:    nil,
	})
}

// ErrorResponse ตอบกลับ internal error (500)
func ErrorResponse(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(models.BaseResponse{
		Success: false,
		Msg:     fmt.Sprintf("%v", err),
		Data:    nil,
	})
}
