package public

import (
	"strconv"

	"github.com/meiduo-next/internal/http/handlers/shared"
	"github.com/meiduo-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListProducts 上架商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = shared.NormalizePagination(page, pageSize)

	products, total, err := h.ProductService.List(page, pageSize, c.Query("search"))
	if err != nil {
		respondError(c, response.CodeInternal, "product list failed", err)
		return
	}
	response.Success(c, gin.H{
		"list":      products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", err)
		return
	}
	product, err := h.ProductService.GetByID(uint(id))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "product query failed")
		return
	}
	response.Success(c, product)
}
