package repository

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/meiduo-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "repo.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id uint, stock int, active bool) {
	t.Helper()
	product := models.Product{
		ID:          id,
		Name:        "测试商品",
		PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString("9.90")),
		Stock:       stock,
		IsActive:    active,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
}

func TestApplyStockDelta(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	seedProduct(t, db, 1, 5, true)

	affected, err := repo.ApplyStockDelta(1, 3)
	if err != nil {
		t.Fatalf("apply stock delta failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected rows want 1 got %d", affected)
	}

	product, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if product.Stock != 2 || product.Sales != 3 {
		t.Fatalf("stock/sales want 2/3 got %d/%d", product.Stock, product.Sales)
	}
}

func TestApplyStockDeltaInsufficient(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	seedProduct(t, db, 1, 2, true)

	// 条件更新不满足时返回零行，库存保持不变
	affected, err := repo.ApplyStockDelta(1, 3)
	if err != nil {
		t.Fatalf("apply stock delta failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("insufficient stock should affect zero rows, got %d", affected)
	}

	product, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if product.Stock != 2 || product.Sales != 0 {
		t.Fatalf("stock/sales must be untouched, got %d/%d", product.Stock, product.Sales)
	}
}

func TestApplyStockDeltaNeverGoesNegative(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	seedProduct(t, db, 1, 5, true)

	// 反复扣减直至库存耗尽，任何一次都不能把库存扣成负数
	granted := 0
	for i := 0; i < 10; i++ {
		affected, err := repo.ApplyStockDelta(1, 2)
		if err != nil {
			t.Fatalf("apply stock delta failed: %v", err)
		}
		granted += int(affected) * 2
	}

	product, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if product.Stock < 0 {
		t.Fatalf("stock must never go negative, got %d", product.Stock)
	}
	if granted != 4 || product.Stock != 1 {
		t.Fatalf("with stock 5 and step 2 only two decrements fit, granted %d remaining %d", granted, product.Stock)
	}
}

func TestApplyStockDeltaConcurrentCheckouts(t *testing.T) {
	db := newTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db failed: %v", err)
	}
	// sqlite 单写连接，靠连接池串行化并发写入
	sqlDB.SetMaxOpenConns(1)

	repo := NewProductRepository(db)
	seedProduct(t, db, 1, 5, true)

	// 16 个并发买家抢 5 件库存，条件更新保证恰好 5 次扣减成功
	var granted int64
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			affected, err := repo.ApplyStockDelta(1, 1)
			if err != nil {
				t.Errorf("apply stock delta failed: %v", err)
				return
			}
			atomic.AddInt64(&granted, affected)
		}()
	}
	wg.Wait()

	product, err := repo.GetByID(1)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if product.Stock < 0 {
		t.Fatalf("stock must never go negative, got %d", product.Stock)
	}
	if granted != 5 {
		t.Fatalf("with stock 5 exactly five decrements may win, granted %d", granted)
	}
	if product.Stock != 0 || product.Sales != 5 {
		t.Fatalf("stock/sales want 0/5 got %d/%d", product.Stock, product.Sales)
	}
}

func TestApplyStockDeltaInvalidParams(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)

	if _, err := repo.ApplyStockDelta(0, 1); err == nil {
		t.Fatalf("zero product id should be rejected")
	}
	if _, err := repo.ApplyStockDelta(1, 0); err == nil {
		t.Fatalf("zero quantity should be rejected")
	}
	if _, err := repo.ApplyStockDelta(1, -2); err == nil {
		t.Fatalf("negative quantity should be rejected")
	}
}

func TestListByIDsSkipsMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	seedProduct(t, db, 1, 5, true)
	seedProduct(t, db, 2, 5, false)

	products, err := repo.ListByIDs([]uint{1, 2, 99})
	if err != nil {
		t.Fatalf("list by ids failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("missing ids should be skipped, got %d products", len(products))
	}

	empty, err := repo.ListByIDs(nil)
	if err != nil {
		t.Fatalf("list by empty ids failed: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty input should return empty slice")
	}
}
