package service

import (
	"context"
)

// MergeCookieCart 登录成功后把 Cookie 购物车合并进 Redis
// 数量按商品ID整体覆盖，勾选状态以 Cookie 侧为准（未勾选会主动移出勾选集合）
// 返回值表示 Cookie 是否可以清除；合并失败时 Cookie 保留，等下次登录重试
func (s *CartService) MergeCookieCart(ctx context.Context, userID uint, rawCookie string) (bool, error) {
	if userID == 0 {
		return false, ErrUserNotFound
	}
	cart := DecodeCartCookie(rawCookie)
	if len(cart) == 0 {
		// 没有可合并的内容，Cookie 直接清除
		return true, nil
	}

	quantities := make(map[uint]int, len(cart))
	var selected []uint
	var unselected []uint
	for productID, line := range cart {
		quantities[productID] = line.Quantity
		if line.Selected {
			selected = append(selected, productID)
		} else {
			unselected = append(unselected, productID)
		}
	}

	if err := s.store.Merge(ctx, userID, quantities, selected, unselected); err != nil {
		return false, err
	}
	return true, nil
}
