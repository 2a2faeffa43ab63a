package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                       // 主键
	Name            string         `gorm:"type:varchar(200);not null;index" json:"name"`               // 商品名称
	Caption         string         `gorm:"type:varchar(200)" json:"caption"`                           // 副标题
	PriceAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`  // 单价
	Stock           int            `gorm:"not null;default:0" json:"stock"`                            // 库存
	Sales           int            `gorm:"not null;default:0" json:"sales"`                            // 销量
	DefaultImageURL string         `gorm:"type:varchar(500)" json:"default_image_url"`                 // 默认图片
	IsActive        bool           `gorm:"default:true;index" json:"is_active"`                        // 是否上架
	SortOrder       int            `gorm:"default:0;index" json:"sort_order"`                          // 排序权重
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt       time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
