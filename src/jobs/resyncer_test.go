package jobs

import (
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubEnqueuer struct {
	err   error
	calls int
}

func (s *stubEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &asynq.TaskInfo{}, nil
}

func TestTryEnqueue(t *testing.T) {
	scholarID := primitive.NewObjectID()

	t.Run("SuccessfulEnqueue", func(t *testing.T) {
		enq := &stubEnqueuer{}
		r := &Resyncer{enq: enq}

		assert.True(t, r.tryEnqueue(scholarID))
		assert.Equal(t, 1, enq.calls)
	})

	t.Run("TaskIDConflictFallsBackInline", func(t *testing.T) {
		// TaskID ยังถือว่าถูกจองอยู่ระหว่าง worker กำลังรันงานเดิม
		// conflict จึงอาจหมายถึงงานที่ประเมินกับ schema เก่าไปแล้ว
		// ต้อง fallback เพื่อให้ mutation รอบนี้ได้การประเมินของตัวเอง
		enq := &stubEnqueuer{err: asynq.ErrTaskIDConflict}
		r := &Resyncer{enq: enq}

		assert.False(t, r.tryEnqueue(scholarID))
		assert.Equal(t, 1, enq.calls)
	})

	t.Run("OtherEnqueueErrorFallsBackInline", func(t *testing.T) {
		enq := &stubEnqueuer{err: errors.New("redis down")}
		r := &Resyncer{enq: enq}

		assert.False(t, r.tryEnqueue(scholarID))
	})

	t.Run("NoClientConfigured", func(t *testing.T) {
		r := NewResyncer(nil, nil)
		assert.False(t, r.tryEnqueue(scholarID))
	})
}
