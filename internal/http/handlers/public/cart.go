package public

import (
	"github.com/meiduo-next/internal/http/response"
	"github.com/meiduo-next/internal/service"

	"github.com/gin-gonic/gin"
)

// addCartItemRequest 加购请求
type addCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// updateCartItemRequest 购物车行覆盖请求
type updateCartItemRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required"`
	Selected  *bool `json:"selected"`
}

// removeCartItemRequest 删除购物车行请求
type removeCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// selectCartItemRequest 单行勾选请求
type selectCartItemRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	Selected  *bool `json:"selected" binding:"required"`
}

// selectAllCartRequest 全选请求
type selectAllCartRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

// cartRequestBackend 按认证状态选择购物车后端
// 登录用户走 Redis；匿名用户从 Cookie 解码，变更后由 finish 回写
func (h *Handler) cartRequestBackend(c *gin.Context) (service.CartBackend, func()) {
	if userID, ok := getOptionalUserID(c); ok {
		return h.CartService.StoreBackend(userID), func() {}
	}

	raw, _ := c.Cookie(h.Config.Cart.CookieName)
	backend := h.CartService.CookieBackend(raw)
	finish := func() {
		if !backend.Changed() {
			return
		}
		value, err := backend.CookieValue()
		if err != nil {
			respondError(c, response.CodeInternal, "cart cookie encode failed", err)
			c.Abort()
			return
		}
		h.writeCartCookie(c, value)
	}
	return backend, finish
}

// writeCartCookie 回写购物车 Cookie，空值表示清除
func (h *Handler) writeCartCookie(c *gin.Context, value string) {
	maxAge := h.Config.Cart.CookieMaxAge
	if value == "" {
		maxAge = -1
	}
	c.SetCookie(h.Config.Cart.CookieName, value, maxAge, "/", "", h.Config.Cart.CookieSecure, true)
}

// ListCart 获取购物车
func (h *Handler) ListCart(c *gin.Context) {
	backend, finish := h.cartRequestBackend(c)
	items, err := h.CartService.List(c.Request.Context(), backend)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart list failed")
		return
	}
	finish()
	if c.IsAborted() {
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddCartItem 加入购物车（数量累加）
func (h *Handler) AddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	backend, finish := h.cartRequestBackend(c)
	if err := h.CartService.Add(c.Request.Context(), backend, req.ProductID, req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart add failed")
		return
	}
	finish()
	if c.IsAborted() {
		return
	}
	response.Success(c, nil)
}

// UpdateCartItem 覆盖购物车行（数量与勾选）
func (h *Handler) UpdateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	selected := true
	if req.Selected != nil {
		selected = *req.Selected
	}
	backend, finish := h.cartRequestBackend(c)
	if err := h.CartService.Replace(c.Request.Context(), backend, req.ProductID, req.Quantity, selected); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart update failed")
		return
	}
	finish()
	if c.IsAborted() {
		return
	}
	response.Success(c, nil)
}

// RemoveCartItem 删除购物车行
func (h *Handler) RemoveCartItem(c *gin.Context) {
	var req removeCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	backend, finish := h.cartRequestBackend(c)
	if err := h.CartService.Remove(c.Request.Context(), backend, req.ProductID); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart remove failed")
		return
	}
	finish()
	if c.IsAborted() {
		return
	}
	response.Success(c, nil)
}

// SelectCartItem 设置单行勾选状态
func (h *Handler) SelectCartItem(c *gin.Context) {
	var req selectCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	backend, finish := h.cartRequestBackend(c)
	if err := h.CartService.SetSelected(c.Request.Context(), backend, req.ProductID, *req.Selected); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart select failed")
		return
	}
	finish()
	if c.IsAborted() {
		return
	}
	response.Success(c, nil)
}

// SelectAllCart 全选/全不选
func (h *Handler) SelectAllCart(c *gin.Context) {
	var req selectAllCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	backend, finish := h.cartRequestBackend(c)
	if err := h.CartService.SelectAll(c.Request.Context(), backend, *req.Selected); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart select all failed")
		return
	}
	finish()
	if c.IsAborted() {
		return
	}
	response.Success(c, nil)
}
