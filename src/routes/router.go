package routes

import (
	"Backend-ScholarDB/src/controllers"
	"Backend-ScholarDB/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// InitRoutes ลงทะเบียน route ทั้งหมดภายใต้ /api/v1
func InitRoutes(
	app *fiber.App,
	auth *middleware.Auth,
	userCtl *controllers.UserController,
	scholarCtl *controllers.ScholarController,
	fieldCtl *controllers.ScholarFieldController,
	studentCtl *controllers.StudentController,
) {
	api := app.Group("/api/v1")

	authRoutes(api, auth, userCtl)
	scholarRoutes(api, auth, scholarCtl)
	scholarFieldRoutes(api, auth, fieldCtl)
	studentRoutes(api, auth, studentCtl)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}
