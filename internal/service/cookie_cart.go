package service

import (
	"encoding/base64"
	"encoding/json"

	"github.com/meiduo-next/internal/constants"
)

// CartLine 购物车单行
type CartLine struct {
	Quantity int  `json:"q"`
	Selected bool `json:"s"`
}

// Cart 购物车内容（商品ID -> 行）
type Cart map[uint]CartLine

// cookieCartPayload Cookie 载荷，带版本号以兼容后续格式演进
type cookieCartPayload struct {
	Version int               `json:"v"`
	Items   map[uint]CartLine `json:"items"`
}

// EncodeCartCookie 将购物车编码为 Cookie 值
// 数量非正的行会被剔除，空购物车编码为空串（调用方据此清除 Cookie）
func EncodeCartCookie(cart Cart) (string, error) {
	items := make(map[uint]CartLine, len(cart))
	for productID, line := range cart {
		if productID == 0 || line.Quantity <= 0 {
			continue
		}
		items[productID] = line
	}
	if len(items) == 0 {
		return "", nil
	}
	payload := cookieCartPayload{
		Version: constants.CartCookieVersion,
		Items:   items,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// DecodeCartCookie 解析 Cookie 购物车
// 任何形式的损坏（错误的 base64、JSON、版本号、非法数量）都降级为空购物车
func DecodeCartCookie(value string) Cart {
	cart := make(Cart)
	if value == "" {
		return cart
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return make(Cart)
	}
	var payload cookieCartPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return make(Cart)
	}
	if payload.Version != constants.CartCookieVersion {
		return make(Cart)
	}
	for productID, line := range payload.Items {
		if productID == 0 || line.Quantity <= 0 {
			continue
		}
		cart[productID] = line
	}
	return cart
}
