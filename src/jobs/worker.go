package jobs

import (
	"context"
	"encoding/json"
	"log"

	"Backend-ScholarDB/src/services/completion"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleResyncScholarTask ประเมินสถานะนักเรียนทุกคนของทุนใหม่หลัง schema เปลี่ยน
func HandleResyncScholarTask(svc *completion.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ResyncScholarPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			log.Println("❌ Payload decode error:", err)
			return err
		}

		scholarID, err := primitive.ObjectIDFromHex(payload.ScholarID)
		if err != nil {
			// payload เสีย retry ไปก็ไม่หาย
			log.Println("⚠️ Invalid scholar id in resync task:", payload.ScholarID)
			return nil
		}

		if err := svc.Resync(ctx, scholarID); err != nil {
			log.Println("❌ Resync failed for scholar:", payload.ScholarID, err)
			return err
		}

		return nil
	}
}

// StartWorker รัน asynq worker สำหรับงาน resync ควบคู่กับ API server
func StartWorker(redisURI string, svc *completion.Service) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisURI},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.Handle(TypeResyncScholar, HandleResyncScholarTask(svc))

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Println("❌ Asynq worker stopped:", err)
		}
	}()

	log.Println("✅ Asynq worker started")
}
