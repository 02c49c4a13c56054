package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient สร้าง Redis client ถ้าไม่ได้ตั้งค่า REDIS_URI จะคืน nil
// (dev mode - feature ที่ใช้ Redis จะข้ามไปเอง)
func NewRedisClient(redisURI string) *redis.Client {
	if redisURI == "" {
		log.Println("⚠️ REDIS_URI not set. Redis features disabled.")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisURI,
		Password: "",
		DB:       0,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Println("⚠️ Failed to connect Redis:", err)
		return nil
	}

	log.Println("✅ Redis connected successfully")
	return client
}
