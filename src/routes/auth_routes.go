package routes

import (
	"Backend-ScholarDB/src/controllers"
	"Backend-ScholarDB/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// authRoutes กำหนดเส้นทางสำหรับ Auth API
func authRoutes(router fiber.Router, auth *middleware.Auth, ctl *controllers.UserController) {
	authGroup := router.Group("/auth")

	authGroup.Post("/login", ctl.Login)

	authGroup.Get("/verify", auth.RequireAuth, ctl.Verify)
	authGroup.Put("/change-password", auth.RequireAuth, ctl.ChangePassword)
	authGroup.Post("/register/:role", auth.RequireAuth, ctl.CreateUser)

	// จัดการผู้ใช้ (admin เท่านั้น)
	authGroup.Get("/users", auth.RequireAuth, auth.AdminOnly, ctl.GetUsers)
	authGroup.Delete("/users/:id", auth.RequireAuth, auth.AdminOnly, ctl.DeleteUser)
	authGroup.Patch("/users/:id/role", auth.RequireAuth, auth.AdminOnly, ctl.ChangeUserRole)
}
