package service

import "errors"

// 业务错误定义，handler 层统一映射为 HTTP 响应
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserDisabled        = errors.New("user disabled")
	ErrUsernameTaken       = errors.New("username taken")
	ErrEmailTaken          = errors.New("email taken")
	ErrUserNotFound        = errors.New("user not found")
	ErrTokenInvalid        = errors.New("token invalid")
	ErrProductNotAvailable = errors.New("product not available")
	ErrCartQuantityInvalid = errors.New("cart quantity invalid")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrCartEmpty           = errors.New("cart empty")
	ErrStockInsufficient   = errors.New("stock insufficient")
	ErrAddressNotFound     = errors.New("address not found")
	ErrAddressInvalid      = errors.New("address invalid")
	ErrPayMethodInvalid    = errors.New("pay method invalid")
	ErrOrderNotFound       = errors.New("order not found")
)
