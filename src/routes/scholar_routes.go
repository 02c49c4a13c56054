package routes

import (
	"Backend-ScholarDB/src/controllers"
	"Backend-ScholarDB/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// scholarRoutes กำหนดเส้นทางสำหรับ Scholar API
func scholarRoutes(router fiber.Router, auth *middleware.Auth, ctl *controllers.ScholarController) {
	scholarGroup := router.Group("/scholar")
	scholarGroup.Use(auth.RequireAuth)

	// route เฉพาะต้องมาก่อน /:id
	scholarGroup.Get("/", ctl.GetAll)
	scholarGroup.Get("/active", ctl.GetActive)
	scholarGroup.Get("/csv/:id", ctl.GenerateCSV)
	scholarGroup.Get("/analytics/:id", ctl.GetAnalytics)
	scholarGroup.Get("/:id", ctl.GetByID)

	scholarGroup.Post("/", ctl.Create)
	scholarGroup.Put("/:id", ctl.Update)
	scholarGroup.Delete("/:id", ctl.Delete)
	scholarGroup.Patch("/:id/status/:status", ctl.SetStatus)

	// เอกสารแนบของทุน
	scholarGroup.Get("/:id/documents", ctl.GetDocuments)
	scholarGroup.Post("/:id/documents", ctl.UploadDocument)
	scholarGroup.Delete("/:id/documents/:documentId", ctl.DeleteDocument)
}
