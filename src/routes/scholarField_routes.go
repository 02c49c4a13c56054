package routes

import (
	"Backend-ScholarDB/src/controllers"
	"Backend-ScholarDB/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// scholarFieldRoutes กำหนดเส้นทางสำหรับ ScholarField API
func scholarFieldRoutes(router fiber.Router, auth *middleware.Auth, ctl *controllers.ScholarFieldController) {
	fieldGroup := router.Group("/scholar-field")
	fieldGroup.Use(auth.RequireAuth)

	// route reorder ต้องมาก่อน /:id
	fieldGroup.Post("/", ctl.Create)
	fieldGroup.Put("/reorder", ctl.ReorderFields)
	fieldGroup.Put("/question/reorder", ctl.ReorderQuestions)
	fieldGroup.Get("/scholar/:scholarId", ctl.GetByScholarID)
	fieldGroup.Get("/:id", ctl.GetByID)
	fieldGroup.Put("/:id", ctl.Update)
	fieldGroup.Delete("/:id", ctl.Delete)

	// จัดการคำถามรายข้อภายในฟิลด์
	fieldGroup.Post("/:fieldId/question", ctl.AddQuestion)
	fieldGroup.Put("/:fieldId/question/:questionId", ctl.UpdateQuestion)
	fieldGroup.Delete("/:fieldId/question/:questionId", ctl.RemoveQuestion)
}
