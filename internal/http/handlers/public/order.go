package public

import (
	"strconv"

	"github.com/meiduo-next/internal/http/handlers/shared"
	"github.com/meiduo-next/internal/http/response"
	"github.com/meiduo-next/internal/service"

	"github.com/gin-gonic/gin"
)

// createOrderRequest 提交订单请求
type createOrderRequest struct {
	AddressID uint   `json:"address_id" binding:"required"`
	PayMethod string `json:"pay_method" binding:"required"`
}

// Settlement 结算页数据，仅读取勾选的购物车行
func (h *Handler) Settlement(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	result, err := h.OrderService.Settlement(c.Request.Context(), userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "settlement failed")
		return
	}
	addresses, err := h.AddressService.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "settlement failed", err)
		return
	}
	response.Success(c, gin.H{
		"addresses":    addresses,
		"items":        result.Lines,
		"total_count":  result.TotalCount,
		"goods_amount": result.GoodsAmount,
		"freight":      result.FreightAmount,
		"total_amount": result.TotalAmount,
	})
}

// CreateOrder 提交订单
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	order, err := h.OrderService.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		UserID:    userID,
		AddressID: req.AddressID,
		PayMethod: req.PayMethod,
		ClientIP:  c.ClientIP(),
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "order create failed")
		return
	}
	response.Success(c, gin.H{
		"order_id":     order.ID,
		"order_no":     order.OrderNo,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
	})
}

// ListOrders 当前用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByUser(userID, page, pageSize, c.Query("status"))
	if err != nil {
		respondError(c, response.CodeInternal, "order list failed", err)
		return
	}
	response.Success(c, gin.H{
		"list":      orders,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", err)
		return
	}
	order, err := h.OrderService.GetByIDAndUser(uint(id), userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "order query failed")
		return
	}
	response.Success(c, order)
}

// GetOrderByNo 根据订单号获取订单详情
func (h *Handler) GetOrderByNo(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetByOrderNo(c.Param("order_no"), userID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "order query failed")
		return
	}
	response.Success(c, order)
}
