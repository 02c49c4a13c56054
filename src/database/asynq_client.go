package database

import (
	"log"

	"github.com/hibiken/asynq"
)

// NewAsynqClient สร้าง Asynq client เมื่อมี Redis เท่านั้น
func NewAsynqClient(redisURI string) *asynq.Client {
	if redisURI == "" {
		log.Println("⚠️ Redis not available. Asynq client will not be initialized.")
		return nil
	}

	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisURI})
	log.Println("✅ Asynq Client initialized successfully")
	return client
}
