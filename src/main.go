package main

import (
	"fmt"
	"log"

	_ "Backend-ScholarDB/docs"
	"Backend-ScholarDB/src/config"
	"Backend-ScholarDB/src/controllers"
	"Backend-ScholarDB/src/database"
	"Backend-ScholarDB/src/jobs"
	"Backend-ScholarDB/src/middleware"
	"Backend-ScholarDB/src/routes"
	"Backend-ScholarDB/src/services/completion"
	"Backend-ScholarDB/src/services/export"
	"Backend-ScholarDB/src/services/scholarfields"
	"Backend-ScholarDB/src/services/scholars"
	"Backend-ScholarDB/src/services/storage"
	"Backend-ScholarDB/src/services/students"
	"Backend-ScholarDB/src/services/users"
	"Backend-ScholarDB/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
)

// @title        ScholarDB API
// @version      1.0
// @description  Scholarship application management API
// @BasePath     /api/v1
func main() {
	cfg := config.Load()

	// เชื่อมต่อกับ MongoDB
	db, err := database.ConnectMongoDB(cfg)
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}

	redisClient := database.NewRedisClient(cfg.RedisURI)
	asynqClient := database.NewAsynqClient(cfg.RedisURI)

	jwtManager := utils.NewJWTManager(cfg.JWTSecret)
	storageClient := storage.NewClient(cfg.StorageURL, cfg.PublicStorageURL)

	// resync สถานะนักเรียนเมื่อ schema ของฟอร์มเปลี่ยน
	completionSvc := completion.NewService(db)
	resyncer := jobs.NewResyncer(asynqClient, completionSvc)
	if cfg.RedisURI != "" {
		jobs.StartWorker(cfg.RedisURI, completionSvc)
	}

	userSvc := users.NewService(db, jwtManager)
	scholarSvc := scholars.NewService(db, storageClient)
	fieldSvc := scholarfields.NewService(db, resyncer)
	studentSvc := students.NewService(db, storageClient, jwtManager, redisClient)
	exportSvc := export.NewService(db, redisClient)

	auth := middleware.NewAuth(jwtManager, db)

	userCtl := controllers.NewUserController(userSvc)
	scholarCtl := controllers.NewScholarController(scholarSvc, exportSvc)
	fieldCtl := controllers.NewScholarFieldController(fieldSvc)
	studentCtl := controllers.NewStudentController(studentSvc, storageClient)

	// สร้าง app instance
	app := fiber.New()

	// ✅ เปิดใช้งาน CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false, // ❌ ต้องเป็น false ถ้าใช้ "*"
	}))

	// เปิดใช้งาน Swagger ที่ URL /swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	// รวม routes จากแต่ละ module
	routes.InitRoutes(app, auth, userCtl, scholarCtl, fieldCtl, studentCtl)

	// เริ่มเซิร์ฟเวอร์
	log.Println("Server is running on port " + cfg.Port)
	if err := app.Listen(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatal(err)
	}
}
