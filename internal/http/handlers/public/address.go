package public

import (
	"strconv"

	"github.com/meiduo-next/internal/http/response"
	"github.com/meiduo-next/internal/service"

	"github.com/gin-gonic/gin"
)

// addressRequest 收货地址请求
type addressRequest struct {
	Title    string `json:"title"`
	Receiver string `json:"receiver" binding:"required"`
	Province string `json:"province" binding:"required"`
	City     string `json:"city" binding:"required"`
	District string `json:"district" binding:"required"`
	Place    string `json:"place" binding:"required"`
	Mobile   string `json:"mobile" binding:"required"`
	Tel      string `json:"tel"`
	Email    string `json:"email"`
}

func (r addressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		Title:    r.Title,
		Receiver: r.Receiver,
		Province: r.Province,
		City:     r.City,
		District: r.District,
		Place:    r.Place,
		Mobile:   r.Mobile,
		Tel:      r.Tel,
		Email:    r.Email,
	}
}

func parseAddressID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid address id", err)
		return 0, false
	}
	return uint(id), true
}

// ListAddresses 当前用户地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addresses, err := h.AddressService.ListByUser(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "address list failed", err)
		return
	}
	response.Success(c, gin.H{"list": addresses})
}

// CreateAddress 新增收货地址
func (h *Handler) CreateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	address, err := h.AddressService.Create(userID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "address create failed")
		return
	}
	response.Success(c, address)
}

// UpdateAddress 修改收货地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseAddressID(c)
	if !ok {
		return
	}
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}
	address, err := h.AddressService.Update(userID, addressID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "address update failed")
		return
	}
	response.Success(c, address)
}

// DeleteAddress 删除收货地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseAddressID(c)
	if !ok {
		return
	}
	if err := h.AddressService.Delete(userID, addressID); err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "address delete failed")
		return
	}
	response.Success(c, nil)
}

// SetDefaultAddress 设置默认收货地址
func (h *Handler) SetDefaultAddress(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, ok := parseAddressID(c)
	if !ok {
		return
	}
	if err := h.AddressService.SetDefault(userID, addressID); err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "address set default failed")
		return
	}
	response.Success(c, nil)
}
