package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskQueueOfferReminder = "leads.queue.offer_reminder"

type QueueOfferReminderPayload struct {
	LeadID string `json:"leadId"`
}

func NewQueueOfferReminderTask(payload QueueOfferReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQueueOfferReminder, data), nil
}

func ParseQueueOfferReminderPayload(task *asynq.Task) (QueueOfferReminderPayload, error) {
	var payload QueueOfferReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return QueueOfferReminderPayload{}, err
	}
	return payload, nil
}
