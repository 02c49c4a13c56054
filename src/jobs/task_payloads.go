package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeResyncScholar = "scholar:resync"

type ResyncScholarPayload struct {
	ScholarID string `json:"scholar_id"`
}

func NewResyncScholarTask(scholarID string) (*asynq.Task, error) {
	payload, err := json.Marshal(ResyncScholarPayload{ScholarID: scholarID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeResyncScholar, payload), nil
}
