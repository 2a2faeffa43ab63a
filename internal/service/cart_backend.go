package service

import "context"

// CartStore 登录用户购物车存储接口（Redis 实现见 internal/cache）
type CartStore interface {
	IncrementQuantity(ctx context.Context, userID, productID uint, delta int, selected bool) error
	SetQuantity(ctx context.Context, userID, productID uint, quantity int, selected bool) error
	Remove(ctx context.Context, userID, productID uint) error
	RemoveItems(ctx context.Context, userID uint, productIDs []uint) error
	SetSelected(ctx context.Context, userID, productID uint, selected bool) error
	SelectAll(ctx context.Context, userID uint, productIDs []uint, selected bool) error
	ReadAll(ctx context.Context, userID uint) (map[uint]int, map[uint]bool, error)
	Merge(ctx context.Context, userID uint, quantities map[uint]int, selected []uint, unselected []uint) error
}

// CartBackend 按请求认证状态选择的购物车后端
// 登录用户走 Redis，匿名用户走 Cookie（内存态，由 handler 负责回写）
type CartBackend interface {
	Add(ctx context.Context, productID uint, quantity int) error
	Replace(ctx context.Context, productID uint, quantity int, selected bool) error
	Remove(ctx context.Context, productID uint) error
	SetSelected(ctx context.Context, productID uint, selected bool) error
	SelectAll(ctx context.Context, selected bool) error
	Snapshot(ctx context.Context) (Cart, error)
	Prune(ctx context.Context, productIDs []uint) error
}

// storeBackend Redis 购物车后端
type storeBackend struct {
	store  CartStore
	userID uint
}

// NewStoreBackend 创建登录用户购物车后端
func NewStoreBackend(store CartStore, userID uint) CartBackend {
	return &storeBackend{store: store, userID: userID}
}

func (b *storeBackend) Add(ctx context.Context, productID uint, quantity int) error {
	// 新增行默认勾选
	return b.store.IncrementQuantity(ctx, b.userID, productID, quantity, true)
}

func (b *storeBackend) Replace(ctx context.Context, productID uint, quantity int, selected bool) error {
	return b.store.SetQuantity(ctx, b.userID, productID, quantity, selected)
}

func (b *storeBackend) Remove(ctx context.Context, productID uint) error {
	return b.store.Remove(ctx, b.userID, productID)
}

func (b *storeBackend) SetSelected(ctx context.Context, productID uint, selected bool) error {
	return b.store.SetSelected(ctx, b.userID, productID, selected)
}

func (b *storeBackend) SelectAll(ctx context.Context, selected bool) error {
	quantities, _, err := b.store.ReadAll(ctx, b.userID)
	if err != nil {
		return err
	}
	productIDs := make([]uint, 0, len(quantities))
	for productID := range quantities {
		productIDs = append(productIDs, productID)
	}
	return b.store.SelectAll(ctx, b.userID, productIDs, selected)
}

func (b *storeBackend) Snapshot(ctx context.Context) (Cart, error) {
	quantities, selected, err := b.store.ReadAll(ctx, b.userID)
	if err != nil {
		return nil, err
	}
	cart := make(Cart, len(quantities))
	for productID, quantity := range quantities {
		cart[productID] = CartLine{Quantity: quantity, Selected: selected[productID]}
	}
	return cart, nil
}

func (b *storeBackend) Prune(ctx context.Context, productIDs []uint) error {
	return b.store.RemoveItems(ctx, b.userID, productIDs)
}

// CookieCartBackend 匿名购物车后端，对解码后的内存购物车操作
type CookieCartBackend struct {
	cart    Cart
	changed bool
}

// NewCookieBackend 从 Cookie 原始值创建匿名购物车后端
func NewCookieBackend(rawCookie string) *CookieCartBackend {
	return &CookieCartBackend{cart: DecodeCartCookie(rawCookie)}
}

func (b *CookieCartBackend) Add(_ context.Context, productID uint, quantity int) error {
	line := b.cart[productID]
	line.Quantity += quantity
	line.Selected = true
	b.cart[productID] = line
	b.changed = true
	return nil
}

func (b *CookieCartBackend) Replace(_ context.Context, productID uint, quantity int, selected bool) error {
	b.cart[productID] = CartLine{Quantity: quantity, Selected: selected}
	b.changed = true
	return nil
}

func (b *CookieCartBackend) Remove(_ context.Context, productID uint) error {
	delete(b.cart, productID)
	b.changed = true
	return nil
}

func (b *CookieCartBackend) SetSelected(_ context.Context, productID uint, selected bool) error {
	line, ok := b.cart[productID]
	if !ok {
		return ErrCartItemNotFound
	}
	line.Selected = selected
	b.cart[productID] = line
	b.changed = true
	return nil
}

func (b *CookieCartBackend) SelectAll(_ context.Context, selected bool) error {
	for productID, line := range b.cart {
		line.Selected = selected
		b.cart[productID] = line
	}
	b.changed = true
	return nil
}

func (b *CookieCartBackend) Snapshot(_ context.Context) (Cart, error) {
	snapshot := make(Cart, len(b.cart))
	for productID, line := range b.cart {
		snapshot[productID] = line
	}
	return snapshot, nil
}

func (b *CookieCartBackend) Prune(_ context.Context, productIDs []uint) error {
	for _, productID := range productIDs {
		delete(b.cart, productID)
	}
	b.changed = true
	return nil
}

// Changed 购物车内容是否发生变化（决定是否回写 Cookie）
func (b *CookieCartBackend) Changed() bool {
	return b.changed
}

// CookieValue 渲染当前购物车的 Cookie 值，空购物车返回空串
func (b *CookieCartBackend) CookieValue() (string, error) {
	return EncodeCartCookie(b.cart)
}
