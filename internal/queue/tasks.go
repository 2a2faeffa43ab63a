package queue

import (
	"encoding/json"

	"github.com/meiduo-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCartCleanup 下单后购物车清理补偿任务
	TaskCartCleanup = constants.TaskCartCleanup
)

// CartCleanupPayload 购物车清理任务载荷
type CartCleanupPayload struct {
	UserID     uint   `json:"user_id"`
	ProductIDs []uint `json:"product_ids"`
}

// NewCartCleanupTask 创建购物车清理任务
func NewCartCleanupTask(payload CartCleanupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartCleanup, body), nil
}
