package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/meiduo-next/internal/config"
	"github.com/meiduo-next/internal/constants"
	"github.com/meiduo-next/internal/logger"
	"github.com/meiduo-next/internal/models"
	"github.com/meiduo-next/internal/queue"
	"github.com/meiduo-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultFreight = "10.00"

// SettlementLine 结算页单行
type SettlementLine struct {
	ProductID  uint         `json:"product_id"`
	Name       string       `json:"name"`
	ImageURL   string       `json:"image_url"`
	UnitPrice  models.Money `json:"unit_price"`
	Quantity   int          `json:"quantity"`
	TotalPrice models.Money `json:"total_price"`
}

// SettlementResult 结算页预览结果
type SettlementResult struct {
	Lines         []SettlementLine `json:"lines"`
	TotalCount    int              `json:"total_count"`
	GoodsAmount   models.Money     `json:"goods_amount"`
	FreightAmount models.Money     `json:"freight_amount"`
	TotalAmount   models.Money     `json:"total_amount"`
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID    uint
	AddressID uint
	PayMethod string
	ClientIP  string
}

// OrderService 订单服务
type OrderService struct {
	cfg         *config.Config
	store       CartStore
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	addressRepo repository.AddressRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(
	cfg *config.Config,
	store CartStore,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	addressRepo repository.AddressRepository,
	queueClient *queue.Client,
) *OrderService {
	return &OrderService{
		cfg:         cfg,
		store:       store,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		queueClient: queueClient,
	}
}

// Settlement 订单结算页预览（只读，不落库不清购物车）
// 仅包含勾选的行，已下架或删除的商品静默跳过
func (s *OrderService) Settlement(ctx context.Context, userID uint) (*SettlementResult, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	quantities, selected, err := s.store.ReadAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uint, 0, len(quantities))
	for productID := range quantities {
		if selected[productID] {
			productIDs = append(productIDs, productID)
		}
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

	result := &SettlementResult{Lines: []SettlementLine{}}
	goodsAmount := decimal.Zero
	for _, productID := range productIDs {
		product, ok := productByID[productID]
		if !ok || !product.IsActive {
			continue
		}
		quantity := quantities[productID]
		totalPrice := product.PriceAmount.MulInt(quantity)
		result.Lines = append(result.Lines, SettlementLine{
			ProductID:  productID,
			Name:       product.Name,
			ImageURL:   product.DefaultImageURL,
			UnitPrice:  product.PriceAmount,
			Quantity:   quantity,
			TotalPrice: totalPrice,
		})
		result.TotalCount += quantity
		goodsAmount = goodsAmount.Add(totalPrice.Decimal)
	}

	result.GoodsAmount = models.NewMoneyFromDecimal(goodsAmount)
	result.FreightAmount = models.NewMoneyFromDecimal(s.freightAmount())
	result.TotalAmount = result.GoodsAmount.AddMoney(result.FreightAmount)
	return result, nil
}

// CreateOrder 提交订单
// 整个过程一个事务：逐行条件扣库存，任何一行失败整单回滚；
// 提交成功后再清理购物车中已消费的行，清理失败走队列补偿，不影响订单结果
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrUserNotFound
	}
	status, err := resolveOrderStatus(input.PayMethod)
	if err != nil {
		return nil, err
	}
	address, err := s.addressRepo.GetByIDAndUser(input.AddressID, input.UserID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}

	quantities, selected, err := s.store.ReadAll(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	productIDs := make([]uint, 0, len(quantities))
	for productID := range quantities {
		if selected[productID] {
			productIDs = append(productIDs, productID)
		}
	}
	if len(productIDs) == 0 {
		return nil, ErrCartEmpty
	}
	// 固定加锁顺序，避免并发下单互相死锁
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	freight := s.freightAmount()
	order := &models.Order{
		OrderNo:       generateOrderNo(input.UserID),
		UserID:        input.UserID,
		AddressID:     address.ID,
		Receiver:      address.Receiver,
		Place:         fmt.Sprintf("%s%s%s %s", address.Province, address.City, address.District, address.Place),
		Mobile:        address.Mobile,
		Status:        status,
		PayMethod:     normalizePayMethod(input.PayMethod),
		FreightAmount: models.NewMoneyFromDecimal(freight),
		ClientIP:      input.ClientIP,
	}

	var items []models.OrderItem
	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		txProductRepo := s.productRepo.WithTx(tx)
		txOrderRepo := s.orderRepo.WithTx(tx)

		goodsAmount := decimal.Zero
		totalCount := 0
		items = items[:0]
		for _, productID := range productIDs {
			quantity := quantities[productID]
			product, err := txProductRepo.GetByID(productID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return ErrProductNotAvailable
			}
			affected, err := txProductRepo.ApplyStockDelta(productID, quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrStockInsufficient
			}
			totalPrice := product.PriceAmount.MulInt(quantity)
			items = append(items, models.OrderItem{
				ProductID:   productID,
				ProductName: product.Name,
				ImageURL:    product.DefaultImageURL,
				UnitPrice:   product.PriceAmount,
				Quantity:    quantity,
				TotalPrice:  totalPrice,
			})
			totalCount += quantity
			goodsAmount = goodsAmount.Add(totalPrice.Decimal)
		}

		order.TotalCount = totalCount
		order.GoodsAmount = models.NewMoneyFromDecimal(goodsAmount)
		order.TotalAmount = order.GoodsAmount.AddMoney(order.FreightAmount)
		return txOrderRepo.Create(order, items)
	})
	if err != nil {
		return nil, err
	}
	order.Items = items

	s.cleanupCartAfterOrder(ctx, input.UserID, order.OrderNo, productIDs)
	return order, nil
}

// cleanupCartAfterOrder 清理已消费的购物车行，失败时入队补偿
func (s *OrderService) cleanupCartAfterOrder(ctx context.Context, userID uint, orderNo string, productIDs []uint) {
	err := s.store.RemoveItems(ctx, userID, productIDs)
	if err == nil {
		return
	}
	logger.Errorw("order_cart_cleanup_failed",
		"user_id", userID,
		"order_no", orderNo,
		"error", err,
	)
	if err := s.queueClient.EnqueueCartCleanup(queue.CartCleanupPayload{
		UserID:     userID,
		ProductIDs: productIDs,
	}); err != nil {
		logger.Errorw("order_cart_cleanup_enqueue_failed",
			"user_id", userID,
			"order_no", orderNo,
			"error", err,
		)
	}
}

// GetByIDAndUser 获取用户订单详情
func (s *OrderService) GetByIDAndUser(id uint, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByOrderNo 根据订单号获取用户订单详情
func (s *OrderService) GetByOrderNo(orderNo string, userID uint) (*models.Order, error) {
	orderNo = strings.TrimSpace(orderNo)
	if orderNo == "" {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser 分页查询用户订单
func (s *OrderService) ListByUser(userID uint, page, pageSize int, status string) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
		Status:   status,
	})
}

func (s *OrderService) freightAmount() decimal.Decimal {
	raw := defaultFreight
	if s.cfg != nil && strings.TrimSpace(s.cfg.Order.Freight) != "" {
		raw = strings.TrimSpace(s.cfg.Order.Freight)
	}
	freight, err := decimal.NewFromString(raw)
	if err != nil || freight.IsNegative() {
		freight, _ = decimal.NewFromString(defaultFreight)
	}
	return freight
}

func normalizePayMethod(payMethod string) string {
	return strings.ToLower(strings.TrimSpace(payMethod))
}

// resolveOrderStatus 按支付方式确定初始状态：货到付款待发货，在线支付待支付
func resolveOrderStatus(payMethod string) (string, error) {
	switch normalizePayMethod(payMethod) {
	case constants.PayMethodCash:
		return constants.OrderStatusUnsent, nil
	case constants.PayMethodOnline:
		return constants.OrderStatusUnpaid, nil
	default:
		return "", ErrPayMethodInvalid
	}
}

// generateOrderNo 生成时间有序订单号：时间戳 + 用户ID
func generateOrderNo(userID uint) string {
	return time.Now().Format("20060102150405") + fmt.Sprintf("%09d", userID)
}
