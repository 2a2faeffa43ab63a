package worker

import (
	"context"
	"encoding/json"

	"github.com/meiduo-next/internal/logger"
	"github.com/meiduo-next/internal/provider"
	"github.com/meiduo-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCartCleanup, c.handleCartCleanup)
}

// handleCartCleanup 下单后同步清理失败时的购物车兜底清理
func (c *Consumer) handleCartCleanup(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_cart_cleanup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CartCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_cart_cleanup_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 || len(payload.ProductIDs) == 0 {
		logger.Debugw("worker_cart_cleanup_skip_invalid_payload", "user_id", payload.UserID, "product_count", len(payload.ProductIDs))
		return nil
	}
	if c.CartStore == nil {
		logger.Warnw("worker_cart_cleanup_skip_store_nil", "user_id", payload.UserID)
		return nil
	}
	if err := c.CartStore.RemoveItems(ctx, payload.UserID, payload.ProductIDs); err != nil {
		logger.Warnw("worker_cart_cleanup_failed", "user_id", payload.UserID, "product_ids", payload.ProductIDs, "error", err)
		return err
	}
	logger.Infow("worker_cart_cleanup_done", "user_id", payload.UserID, "product_ids", payload.ProductIDs)
	return nil
}
