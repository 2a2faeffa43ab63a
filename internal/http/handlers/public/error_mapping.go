package public

import (
	"errors"

	"github.com/meiduo-next/internal/http/response"
	"github.com/meiduo-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrCartQuantityInvalid, code: response.CodeBadRequest, msg: "cart quantity invalid"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, msg: "stock insufficient"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "cart item not found"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "cart empty"},
	{target: service.ErrAddressNotFound, code: response.CodeBadRequest, msg: "address not found"},
	{target: service.ErrPayMethodInvalid, code: response.CodeBadRequest, msg: "pay method invalid"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "product not available"},
	{target: service.ErrStockInsufficient, code: response.CodeBadRequest, msg: "stock insufficient"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
}

var addressErrorRules = []mappedHandlerError{
	{target: service.ErrAddressInvalid, code: response.CodeBadRequest, msg: "address invalid"},
	{target: service.ErrAddressNotFound, code: response.CodeNotFound, msg: "address not found"},
}

var userAuthErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCredentials, code: response.CodeBadRequest, msg: "invalid credentials"},
	{target: service.ErrUsernameTaken, code: response.CodeBadRequest, msg: "username taken"},
	{target: service.ErrEmailTaken, code: response.CodeBadRequest, msg: "email taken"},
	{target: service.ErrUserDisabled, code: response.CodeUnauthorized, msg: "user disabled"},
	{target: service.ErrUserNotFound, code: response.CodeNotFound, msg: "user not found"},
}
