package models

import (
	"time"

	"gorm.io/gorm"
)

// Address 收货地址表
type Address struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	UserID    uint           `gorm:"index;not null" json:"user_id"`           // 用户ID
	Title     string         `gorm:"type:varchar(50)" json:"title"`           // 地址备注名
	Receiver  string         `gorm:"type:varchar(50);not null" json:"receiver"` // 收件人
	Province  string         `gorm:"type:varchar(50);not null" json:"province"` // 省
	City      string         `gorm:"type:varchar(50);not null" json:"city"`     // 市
	District  string         `gorm:"type:varchar(50);not null" json:"district"` // 区县
	Place     string         `gorm:"type:varchar(200);not null" json:"place"`   // 详细地址
	Mobile    string         `gorm:"type:varchar(20);not null" json:"mobile"`   // 手机号
	Tel       string         `gorm:"type:varchar(30)" json:"tel"`             // 固定电话
	Email     string         `gorm:"type:varchar(100)" json:"email"`          // 邮箱
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Address) TableName() string {
	return "addresses"
}
