package service

import (
	"context"
	"testing"
)

func encodeCart(t *testing.T, cart Cart) string {
	t.Helper()
	encoded, err := EncodeCartCookie(cart)
	if err != nil {
		t.Fatalf("encode cart failed: %v", err)
	}
	return encoded
}

func TestMergeCookieCartOverwrites(t *testing.T) {
	store := newFakeCartStore()
	svc := NewCartService(store, newFakeProductRepo())
	ctx := context.Background()

	// 登录前 Redis 里已有内容：商品1 数量5 已勾选，商品2 数量2 已勾选
	_ = store.SetQuantity(ctx, 1, 1, 5, true)
	_ = store.SetQuantity(ctx, 1, 2, 2, true)

	// Cookie：商品1 数量3 未勾选（覆盖并取消勾选），商品9 数量1 已勾选（新增）
	cookie := encodeCart(t, Cart{
		1: {Quantity: 3, Selected: false},
		9: {Quantity: 1, Selected: true},
	})

	cleared, err := svc.MergeCookieCart(ctx, 1, cookie)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if !cleared {
		t.Fatalf("successful merge should allow cookie clear")
	}

	quantities, selected, err := store.ReadAll(ctx, 1)
	if err != nil {
		t.Fatalf("read all failed: %v", err)
	}
	if quantities[1] != 3 {
		t.Fatalf("cookie quantity should overwrite, want 3 got %d", quantities[1])
	}
	if selected[1] {
		t.Fatalf("unselected cookie line should remove selection")
	}
	if quantities[2] != 2 || !selected[2] {
		t.Fatalf("untouched line should keep quantity and selection, got qty %d selected %v", quantities[2], selected[2])
	}
	if quantities[9] != 1 || !selected[9] {
		t.Fatalf("new cookie line should be added selected, got qty %d selected %v", quantities[9], selected[9])
	}
}

func TestMergeCookieCartIdempotent(t *testing.T) {
	store := newFakeCartStore()
	svc := NewCartService(store, newFakeProductRepo())
	ctx := context.Background()

	cookie := encodeCart(t, Cart{
		4: {Quantity: 2, Selected: true},
		5: {Quantity: 6, Selected: false},
	})

	for i := 0; i < 2; i++ {
		if _, err := svc.MergeCookieCart(ctx, 2, cookie); err != nil {
			t.Fatalf("merge round %d failed: %v", i+1, err)
		}
	}

	quantities, selected, err := store.ReadAll(ctx, 2)
	if err != nil {
		t.Fatalf("read all failed: %v", err)
	}
	if quantities[4] != 2 || quantities[5] != 6 {
		t.Fatalf("repeat merge must not accumulate, got %v", quantities)
	}
	if !selected[4] || selected[5] {
		t.Fatalf("selection should match cookie, got %v", selected)
	}
}

func TestMergeCookieCartEmptyOrCorrupt(t *testing.T) {
	store := newFakeCartStore()
	svc := NewCartService(store, newFakeProductRepo())
	ctx := context.Background()

	cleared, err := svc.MergeCookieCart(ctx, 3, "")
	if err != nil || !cleared {
		t.Fatalf("empty cookie should clear without error, cleared=%v err=%v", cleared, err)
	}

	cleared, err = svc.MergeCookieCart(ctx, 3, "!!!not-a-cookie!!!")
	if err != nil || !cleared {
		t.Fatalf("corrupt cookie decodes to empty cart, cleared=%v err=%v", cleared, err)
	}

	quantities, _, err := store.ReadAll(ctx, 3)
	if err != nil {
		t.Fatalf("read all failed: %v", err)
	}
	if len(quantities) != 0 {
		t.Fatalf("nothing should be written for empty merges, got %v", quantities)
	}
}

func TestMergeCookieCartStoreFailureKeepsCookie(t *testing.T) {
	store := newFakeCartStore()
	store.failAll = true
	svc := NewCartService(store, newFakeProductRepo())

	cookie := encodeCart(t, Cart{1: {Quantity: 1, Selected: true}})
	cleared, err := svc.MergeCookieCart(context.Background(), 4, cookie)
	if err == nil {
		t.Fatalf("store failure should surface error")
	}
	if cleared {
		t.Fatalf("cookie must be kept when merge fails")
	}
}
