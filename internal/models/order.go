package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                         // 主键
	OrderNo       string         `gorm:"uniqueIndex;not null" json:"order_no"`                         // 订单编号
	UserID        uint           `gorm:"index;not null" json:"user_id"`                                // 用户ID
	AddressID     uint           `gorm:"index;not null" json:"address_id"`                             // 收货地址ID
	Receiver      string         `gorm:"type:varchar(50);not null" json:"receiver"`                    // 收件人快照
	Place         string         `gorm:"type:varchar(400);not null" json:"place"`                      // 收货地址快照
	Mobile        string         `gorm:"type:varchar(20);not null" json:"mobile"`                      // 手机号快照
	Status        string         `gorm:"index;not null" json:"status"`                                 // 订单状态
	PayMethod     string         `gorm:"type:varchar(20);not null" json:"pay_method"`                  // 支付方式
	TotalCount    int            `gorm:"not null;default:0" json:"total_count"`                        // 商品总件数
	GoodsAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"goods_amount"`    // 商品金额
	FreightAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"freight_amount"`  // 运费
	TotalAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`    // 实付金额
	ClientIP      string         `gorm:"type:varchar(64)" json:"client_ip,omitempty"`                  // 下单客户端IP
	PaidAt        *time.Time     `gorm:"index" json:"paid_at"`                                         // 支付时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
