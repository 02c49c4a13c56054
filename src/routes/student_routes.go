package routes

import (
	"Backend-ScholarDB/src/controllers"
	"Backend-ScholarDB/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// studentRoutes กำหนดเส้นทางสำหรับ Student API
// PUT /:id และ POST /:id/submit ยอมรับ temp permission token ด้วย
// เพื่อให้นักเรียนแก้ไขและส่งฟอร์มของตัวเองได้โดยไม่ต้องมีบัญชีระบบ
func studentRoutes(router fiber.Router, auth *middleware.Auth, ctl *controllers.StudentController) {
	studentGroup := router.Group("/student")

	studentGroup.Post("/temp-permission/verify", ctl.VerifyTempPermission) // ตรวจสอบ token ชั่วคราว (public)

	studentGroup.Post("/temp-permission", auth.RequireAuth, ctl.GenerateTempPermission)

	// route เฉพาะต้องมาก่อน /:id
	studentGroup.Get("/", auth.RequireAuth, ctl.GetAll)
	studentGroup.Get("/search", auth.RequireAuth, ctl.Search)
	studentGroup.Get("/status/:status", auth.RequireAuth, ctl.GetByStatus)
	studentGroup.Get("/scholar/:scholarId", auth.RequireAuth, ctl.GetByScholar)
	studentGroup.Get("/scholar/:scholarId/count", auth.RequireAuth, ctl.GetCountByScholar)
	studentGroup.Get("/scholar/:scholarId/search", auth.RequireAuth, ctl.SearchByScholar)

	studentGroup.Post("/", auth.RequireAuth, ctl.Create)
	studentGroup.Get("/:id", auth.RequireAuth, ctl.GetByID)
	studentGroup.Put("/:id", auth.AuthOrTempPermission, ctl.Update)
	studentGroup.Delete("/:id", auth.RequireAuth, ctl.Delete)
	studentGroup.Patch("/:id/status/:status", auth.RequireAuth, ctl.SetStatus)
	studentGroup.Post("/:id/submit", auth.AuthOrTempPermission, ctl.SubmitForm)
}
