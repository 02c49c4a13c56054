package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config รวมค่า environment ทั้งหมดไว้ที่เดียว แล้วส่งต่อให้แต่ละ service
// ผ่าน constructor แทนการอ่าน os.Getenv กระจายทั่วโค้ด
type Config struct {
	Port             string
	AllowedOrigins   string
	MongoURI         string
	MongoDBName      string
	RedisURI         string
	JWTSecret        string
	StorageURL       string
	PublicStorageURL string
}

// Load โหลดค่าจากไฟล์ .env (ถ้ามี) แล้วอ่าน environment variables
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	cfg := &Config{
		Port:             getEnv("PORT", "8888"),
		AllowedOrigins:   getEnv("ALLOWED_ORIGINS", "*"),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDBName:      getEnv("MONGO_DB_NAME", "ScholarDB"),
		RedisURI:         os.Getenv("REDIS_URI"),
		JWTSecret:        getEnv("JWT_SECRET", "your_secret_key"),
		StorageURL:       os.Getenv("STORAGE_URL"),
		PublicStorageURL: os.Getenv("PUBLIC_STORAGE_URL"),
	}

	if cfg.MongoURI == "" {
		log.Fatal("❌ MONGO_URI environment variable not set. Please create a .env file and set it.")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
