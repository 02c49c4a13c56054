package jobs

import (
	"context"
	"errors"
	"log"
	"time"

	"Backend-ScholarDB/src/services/completion"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type taskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Resyncer ส่งงาน resync เข้า queue หลังทุกการแก้ไข field/question
// ความผิดพลาดของ cascade ไม่ย้อนกลับไปทำให้ mutation หลักล้มเหลว
// (best-effort เสมอ - แค่ log)
type Resyncer struct {
	enq taskEnqueuer
	svc *completion.Service
}

func NewResyncer(client *asynq.Client, svc *completion.Service) *Resyncer {
	r := &Resyncer{svc: svc}
	if client != nil {
		r.enq = client
	}
	return r
}

// Trigger ส่ง task เข้า asynq พร้อม retry ถ้าเข้าคิวไม่ได้
// (ไม่มี Redis หรือ enqueue ล้มเหลว) จะประเมินใน goroutine แทน
// เพื่อให้ทุก mutation ตามด้วยการประเมินกับ schema ของตัวเองเสมอ
func (r *Resyncer) Trigger(scholarID primitive.ObjectID) {
	if r.tryEnqueue(scholarID) {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		if err := r.svc.Resync(ctx, scholarID); err != nil {
			log.Println("❌ Error updating student statuses for scholar:", scholarID.Hex(), err)
		}
	}()
}

// tryEnqueue คืน true เฉพาะเมื่องานเข้าคิวแล้วจริง
// TaskID ซ้ำไม่นับว่าสำเร็จ: งานเดิมอาจถูก worker หยิบไปรันกับ schema
// ก่อนหน้าแล้ว mutation รอบนี้ต้องได้การประเมินของตัวเอง
func (r *Resyncer) tryEnqueue(scholarID primitive.ObjectID) bool {
	if r.enq == nil {
		return false
	}

	task, err := NewResyncScholarTask(scholarID.Hex())
	if err != nil {
		log.Println("⚠️ Failed to build resync task, falling back to inline:", err)
		return false
	}

	_, err = r.enq.Enqueue(task,
		asynq.TaskID("resync-"+scholarID.Hex()),
		asynq.MaxRetry(3),
	)
	if err != nil {
		if !errors.Is(err, asynq.ErrTaskIDConflict) {
			log.Println("⚠️ Failed to enqueue resync task, falling back to inline:", err)
		}
		return false
	}

	return true
}
