package service

import (
	"context"
	"sort"

	"github.com/meiduo-next/internal/constants"
	"github.com/meiduo-next/internal/models"
	"github.com/meiduo-next/internal/repository"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ProductID  uint         `json:"product_id"`
	Name       string       `json:"name"`
	ImageURL   string       `json:"image_url"`
	UnitPrice  models.Money `json:"unit_price"`
	Quantity   int          `json:"quantity"`
	Selected   bool         `json:"selected"`
	Stock      int          `json:"stock"`
	TotalPrice models.Money `json:"total_price"`
}

// CartService 购物车服务
// 读写前校验商品有效性与库存，具体存储由 CartBackend 决定
type CartService struct {
	store       CartStore
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(store CartStore, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		store:       store,
		productRepo: productRepo,
	}
}

// StoreBackend 返回登录用户的购物车后端
func (s *CartService) StoreBackend(userID uint) CartBackend {
	return NewStoreBackend(s.store, userID)
}

// CookieBackend 返回匿名用户的购物车后端
func (s *CartService) CookieBackend(rawCookie string) *CookieCartBackend {
	return NewCookieBackend(rawCookie)
}

// Add 添加商品（数量累加，新行默认勾选）
func (s *CartService) Add(ctx context.Context, backend CartBackend, productID uint, quantity int) error {
	if _, err := s.validateLine(productID, quantity); err != nil {
		return err
	}
	return backend.Add(ctx, productID, quantity)
}

// Replace 覆盖商品数量与勾选状态
func (s *CartService) Replace(ctx context.Context, backend CartBackend, productID uint, quantity int, selected bool) error {
	if _, err := s.validateLine(productID, quantity); err != nil {
		return err
	}
	return backend.Replace(ctx, productID, quantity, selected)
}

// Remove 删除商品行
func (s *CartService) Remove(ctx context.Context, backend CartBackend, productID uint) error {
	if productID == 0 {
		return ErrCartItemNotFound
	}
	return backend.Remove(ctx, productID)
}

// SetSelected 设置单行勾选状态
func (s *CartService) SetSelected(ctx context.Context, backend CartBackend, productID uint, selected bool) error {
	if productID == 0 {
		return ErrCartItemNotFound
	}
	return backend.SetSelected(ctx, productID, selected)
}

// SelectAll 全选或全不选
func (s *CartService) SelectAll(ctx context.Context, backend CartBackend, selected bool) error {
	return backend.SelectAll(ctx, selected)
}

// List 获取购物车详情，失效商品静默剔除并从后端清理
func (s *CartService) List(ctx context.Context, backend CartBackend) ([]CartItemDetail, error) {
	cart, err := backend.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return []CartItemDetail{}, nil
	}

	productIDs := make([]uint, 0, len(cart))
	for productID := range cart {
		productIDs = append(productIDs, productID)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	products, err := s.productRepo.ListByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint]*models.Product, len(products))
	for i := range products {
		productByID[products[i].ID] = &products[i]
	}

	details := make([]CartItemDetail, 0, len(cart))
	var stale []uint
	for _, productID := range productIDs {
		line := cart[productID]
		product, ok := productByID[productID]
		if !ok || !product.IsActive {
			stale = append(stale, productID)
			continue
		}
		details = append(details, CartItemDetail{
			ProductID:  productID,
			Name:       product.Name,
			ImageURL:   product.DefaultImageURL,
			UnitPrice:  product.PriceAmount,
			Quantity:   line.Quantity,
			Selected:   line.Selected,
			Stock:      product.Stock,
			TotalPrice: product.PriceAmount.MulInt(line.Quantity),
		})
	}
	if len(stale) > 0 {
		if err := backend.Prune(ctx, stale); err != nil {
			return nil, err
		}
	}
	return details, nil
}

// validateLine 校验商品存在、上架且数量在库存范围内
func (s *CartService) validateLine(productID uint, quantity int) (*models.Product, error) {
	if productID == 0 {
		return nil, ErrProductNotAvailable
	}
	if quantity < constants.CartQuantityMin || quantity > constants.CartQuantityMax {
		return nil, ErrCartQuantityInvalid
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}
	if quantity > product.Stock {
		return nil, ErrStockInsufficient
	}
	return product, nil
}
