package public

import (
	"github.com/meiduo-next/internal/http/response"
	"github.com/meiduo-next/internal/logger"
	"github.com/meiduo-next/internal/service"

	"github.com/gin-gonic/gin"
)

// registerRequest 注册请求
type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Mobile   string `json:"mobile"`
}

// loginRequest 登录请求
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	user, err := h.UserAuthService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Mobile:   req.Mobile,
	})
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "register failed")
		return
	}
	response.Success(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
	})
}

// Login 用户登录，成功后把匿名购物车并入 Redis
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	user, token, expiresAt, err := h.UserAuthService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeUnauthorized, "login failed")
		return
	}

	// 合并失败不影响登录结果，Cookie 留待下次重试
	if rawCookie, cookieErr := c.Cookie(h.Config.Cart.CookieName); cookieErr == nil && rawCookie != "" {
		merged, mergeErr := h.CartService.MergeCookieCart(c.Request.Context(), user.ID, rawCookie)
		if mergeErr != nil {
			logger.Warnw("cart_merge_failed", "user_id", user.ID, "error", mergeErr)
		} else if merged {
			h.writeCartCookie(c, "")
		}
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Profile 当前用户信息
func (h *Handler) Profile(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetProfile(userID)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "profile query failed")
		return
	}
	response.Success(c, gin.H{
		"id":                 user.ID,
		"username":           user.Username,
		"email":              user.Email,
		"mobile":             user.Mobile,
		"default_address_id": user.DefaultAddressID,
	})
}
