package main

import (
	"github.com/meiduo-next/internal/config"
	"github.com/meiduo-next/internal/logger"
	"github.com/meiduo-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加演示商品
	products := []models.Product{
		{
			Name:            "Apple iPhone 15 Pro 256GB",
			Caption:         "钛金属机身，A17 Pro 芯片",
			PriceAmount:     money("8999.00"),
			Stock:           50,
			DefaultImageURL: "/uploads/products/iphone-15-pro.jpg",
			IsActive:        true,
			SortOrder:       10,
		},
		{
			Name:            "华为 MateBook X Pro",
			Caption:         "3.1K 原色全面屏，轻至 980g",
			PriceAmount:     money("9999.00"),
			Stock:           30,
			DefaultImageURL: "/uploads/products/matebook-x-pro.jpg",
			IsActive:        true,
			SortOrder:       20,
		},
		{
			Name:            "小米手环 9",
			Caption:         "1.62 英寸 AMOLED 屏，21 天续航",
			PriceAmount:     money("249.00"),
			Stock:           500,
			DefaultImageURL: "/uploads/products/mi-band-9.jpg",
			IsActive:        true,
			SortOrder:       30,
		},
		{
			Name:            "索尼 WH-1000XM5 降噪耳机",
			Caption:         "行业领先降噪，30 小时续航",
			PriceAmount:     money("2399.00"),
			Stock:           80,
			DefaultImageURL: "/uploads/products/sony-wh1000xm5.jpg",
			IsActive:        true,
			SortOrder:       40,
		},
		{
			Name:            "罗技 MX Master 3S 鼠标",
			Caption:         "8K DPI 传感器，静音按键",
			PriceAmount:     money("699.00"),
			Stock:           120,
			DefaultImageURL: "/uploads/products/mx-master-3s.jpg",
			IsActive:        true,
			SortOrder:       50,
		},
		{
			Name:            "已下架测试商品",
			Caption:         "仅用于验证下架商品不可购买",
			PriceAmount:     money("1.00"),
			Stock:           0,
			DefaultImageURL: "",
			IsActive:        false,
			SortOrder:       999,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s", product.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Name)
		}
	}

	// 添加演示用户
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("demo123456"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash demo password: %v", err)
	}
	demoUser := models.User{
		Username:     "demo",
		Email:        "demo@example.com",
		PasswordHash: string(passwordHash),
		Mobile:       "13800138000",
	}
	var existingUser models.User
	if err := models.DB.Where("username = ?", demoUser.Username).First(&existingUser).Error; err != nil {
		if err := models.DB.Create(&demoUser).Error; err != nil {
			stdLog.Printf("Failed to create demo user: %v", err)
		} else {
			stdLog.Printf("Created demo user: %s (password demo123456)", demoUser.Username)

			// 给演示用户一个默认收货地址
			address := models.Address{
				UserID:   demoUser.ID,
				Title:    "家",
				Receiver: "张三",
				Province: "广东省",
				City:     "深圳市",
				District: "南山区",
				Place:    "科技园南区 8 栋 101",
				Mobile:   "13800138000",
			}
			if err := models.DB.Create(&address).Error; err != nil {
				stdLog.Printf("Failed to create demo address: %v", err)
			} else {
				demoUser.DefaultAddressID = &address.ID
				if err := models.DB.Save(&demoUser).Error; err != nil {
					stdLog.Printf("Failed to set default address: %v", err)
				}
			}
		}
	} else {
		stdLog.Printf("Demo user already exists: %s", demoUser.Username)
	}

	stdLog.Printf("Seed finished")
}

func money(amount string) models.Money {
	return models.NewMoneyFromDecimal(decimal.RequireFromString(amount))
}
