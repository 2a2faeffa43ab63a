package worker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/meiduo-next/internal/provider"
	"github.com/meiduo-next/internal/queue"

	"github.com/hibiken/asynq"
)

type recordingCartStore struct {
	removedUser uint
	removedIDs  []uint
	calls       int
}

func (s *recordingCartStore) IncrementQuantity(ctx context.Context, userID, productID uint, delta int, selected bool) error {
	return nil
}

func (s *recordingCartStore) SetQuantity(ctx context.Context, userID, productID uint, quantity int, selected bool) error {
	return nil
}

func (s *recordingCartStore) Remove(ctx context.Context, userID, productID uint) error {
	return nil
}

func (s *recordingCartStore) RemoveItems(ctx context.Context, userID uint, productIDs []uint) error {
	s.calls++
	s.removedUser = userID
	s.removedIDs = append([]uint(nil), productIDs...)
	return nil
}

func (s *recordingCartStore) SetSelected(ctx context.Context, userID, productID uint, selected bool) error {
	return nil
}

func (s *recordingCartStore) SelectAll(ctx context.Context, userID uint, productIDs []uint, selected bool) error {
	return nil
}

func (s *recordingCartStore) ReadAll(ctx context.Context, userID uint) (map[uint]int, map[uint]bool, error) {
	return map[uint]int{}, map[uint]bool{}, nil
}

func (s *recordingCartStore) Merge(ctx context.Context, userID uint, quantities map[uint]int, selected []uint, unselected []uint) error {
	return nil
}

func newCartCleanupTask(t *testing.T, payload queue.CartCleanupPayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return asynq.NewTask(queue.TaskCartCleanup, data)
}

func TestHandleCartCleanup(t *testing.T) {
	store := &recordingCartStore{}
	consumer := NewConsumer(&provider.Container{CartStore: store})

	task := newCartCleanupTask(t, queue.CartCleanupPayload{UserID: 7, ProductIDs: []uint{3, 5}})
	if err := consumer.handleCartCleanup(context.Background(), task); err != nil {
		t.Fatalf("handle cart cleanup failed: %v", err)
	}
	if store.removedUser != 7 {
		t.Fatalf("user id want 7 got %d", store.removedUser)
	}
	if len(store.removedIDs) != 2 || store.removedIDs[0] != 3 || store.removedIDs[1] != 5 {
		t.Fatalf("unexpected removed ids: %v", store.removedIDs)
	}
}

func TestHandleCartCleanupInvalidPayload(t *testing.T) {
	store := &recordingCartStore{}
	consumer := NewConsumer(&provider.Container{CartStore: store})

	task := newCartCleanupTask(t, queue.CartCleanupPayload{UserID: 0, ProductIDs: []uint{1}})
	if err := consumer.handleCartCleanup(context.Background(), task); err != nil {
		t.Fatalf("invalid payload should be skipped without error, got %v", err)
	}
	if store.calls != 0 {
		t.Fatalf("store should not be called for invalid payload, calls %d", store.calls)
	}

	badTask := asynq.NewTask(queue.TaskCartCleanup, []byte("{not json"))
	if err := consumer.handleCartCleanup(context.Background(), badTask); err == nil {
		t.Fatalf("malformed payload should return error for retry")
	}
}
