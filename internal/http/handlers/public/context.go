package public

import (
	handlershared "github.com/meiduo-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithMsgs(c, "user_id", "user id invalid", "user id type invalid")
}

// getOptionalUserID 读取可选登录态，匿名请求返回 (0, false) 且不产生响应
func getOptionalUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	if userID, ok := value.(uint); ok && userID > 0 {
		return userID, true
	}
	return 0, false
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}
