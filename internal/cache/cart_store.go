package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ErrRedisDisabled Redis 未启用时购物车存储不可用
var ErrRedisDisabled = errors.New("redis disabled")

// RedisCartStore 登录用户购物车的 Redis 存储
// 数量存 hash（cart:<uid>，field 为商品ID），勾选状态存 set（cart:selected:<uid>）
type RedisCartStore struct{}

// NewRedisCartStore 创建购物车存储
func NewRedisCartStore() *RedisCartStore {
	return &RedisCartStore{}
}

func cartKey(userID uint) string {
	return buildKey(fmt.Sprintf("cart:%d", userID))
}

func cartSelectedKey(userID uint) string {
	return buildKey(fmt.Sprintf("cart:selected:%d", userID))
}

func productField(productID uint) string {
	return strconv.FormatUint(uint64(productID), 10)
}

// IncrementQuantity 累加商品数量，新增行按 selected 维护勾选集合
func (s *RedisCartStore) IncrementQuantity(ctx context.Context, userID, productID uint, delta int, selected bool) error {
	client := Client()
	if client == nil {
		return ErrRedisDisabled
	}
	_, err := client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, cartKey(userID), productField(productID), int64(delta))
		if selected {
			pipe.SAdd(ctx, cartSelectedKey(userID), productField(productID))
		}
		return nil
	})
	return err
}

// SetQuantity 覆盖商品数量并同步勾选状态
func (s *RedisCartStore) SetQuantity(ctx context.Context, userID, productID uint, quantity int, selected bool) error {
	client := Client()
	if client == nil {
		return ErrRedisDisabled
	}
	_, err := client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, cartKey(userID), productField(productID), quantity)
		if selected {
			pipe.SAdd(ctx, cartSelectedKey(userID), productField(productID))
		} else {
			pipe.SRem(ctx, cartSelectedKey(userID), productField(productID))
		}
		return nil
	})
	return err
}

// Remove 删除单个商品行
func (s *RedisCartStore) Remove(ctx context.Context, userID, productID uint) error {
	return s.RemoveItems(ctx, userID, []uint{productID})
}

// RemoveItems 批量删除商品行（数量与勾选状态一并清除）
func (s *RedisCartStore) RemoveItems(ctx context.Context, userID uint, productIDs []uint) error {
	client := Client()
	if client == nil {
		return ErrRedisDisabled
	}
	if len(productIDs) == 0 {
		return nil
	}
	fields := make([]string, 0, len(productIDs))
	members := make([]interface{}, 0, len(productIDs))
	for _, id := range productIDs {
		fields = append(fields, productField(id))
		members = append(members, productField(id))
	}
	_, err := client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HDel(ctx, cartKey(userID), fields...)
		pipe.SRem(ctx, cartSelectedKey(userID), members...)
		return nil
	})
	return err
}

// SetSelected 设置单个商品行的勾选状态
func (s *RedisCartStore) SetSelected(ctx context.Context, userID, productID uint, selected bool) error {
	client := Client()
	if client == nil {
		return ErrRedisDisabled
	}
	if selected {
		return client.SAdd(ctx, cartSelectedKey(userID), productField(productID)).Err()
	}
	return client.SRem(ctx, cartSelectedKey(userID), productField(productID)).Err()
}

// SelectAll 批量设置勾选状态（全选/全不选）
func (s *RedisCartStore) SelectAll(ctx context.Context, userID uint, productIDs []uint, selected bool) error {
	client := Client()
	if client == nil {
		return ErrRedisDisabled
	}
	if len(productIDs) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(productIDs))
	for _, id := range productIDs {
		members = append(members, productField(id))
	}
	if selected {
		return client.SAdd(ctx, cartSelectedKey(userID), members...).Err()
	}
	return client.SRem(ctx, cartSelectedKey(userID), members...).Err()
}

// ReadAll 读取全部购物车行与勾选集合
func (s *RedisCartStore) ReadAll(ctx context.Context, userID uint) (map[uint]int, map[uint]bool, error) {
	client := Client()
	if client == nil {
		return nil, nil, ErrRedisDisabled
	}
	var hashCmd *redis.MapStringStringCmd
	var setCmd *redis.StringSliceCmd
	_, err := client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		hashCmd = pipe.HGetAll(ctx, cartKey(userID))
		setCmd = pipe.SMembers(ctx, cartSelectedKey(userID))
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	quantities := make(map[uint]int)
	for field, raw := range hashCmd.Val() {
		productID, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		quantity, err := strconv.Atoi(raw)
		if err != nil || quantity <= 0 {
			continue
		}
		quantities[uint(productID)] = quantity
	}

	selected := make(map[uint]bool)
	for _, member := range setCmd.Val() {
		productID, err := strconv.ParseUint(member, 10, 64)
		if err != nil {
			continue
		}
		selected[uint(productID)] = true
	}
	return quantities, selected, nil
}

// Merge 将 Cookie 购物车合并进 Redis
// 数量按商品ID整体覆盖，勾选为真加入集合，勾选为假则主动移出集合
func (s *RedisCartStore) Merge(ctx context.Context, userID uint, quantities map[uint]int, selected []uint, unselected []uint) error {
	client := Client()
	if client == nil {
		return ErrRedisDisabled
	}
	if len(quantities) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(quantities)*2)
	for productID, quantity := range quantities {
		values = append(values, productField(productID), quantity)
	}
	_, err := client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, cartKey(userID), values...)
		if len(selected) > 0 {
			members := make([]interface{}, 0, len(selected))
			for _, id := range selected {
				members = append(members, productField(id))
			}
			pipe.SAdd(ctx, cartSelectedKey(userID), members...)
		}
		if len(unselected) > 0 {
			members := make([]interface{}, 0, len(unselected))
			for _, id := range unselected {
				members = append(members, productField(id))
			}
			pipe.SRem(ctx, cartSelectedKey(userID), members...)
		}
		return nil
	})
	return err
}
