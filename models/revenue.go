package models

import (
	"time"

	"gorm.io/gorm"
)

// Revenue 营收记录模型
// CustomerID 为可选外键；Customer 字段保留客户名称快照用于展示，
// 统计时优先按 CustomerID 归属，避免客户改名后历史营收丢失归属
type Revenue struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Date        time.Time      `json:"date" gorm:"not null;index"`
	Amount      float64        `json:"amount" gorm:"type:decimal(12,2);not null"`
	Customer    string         `json:"customer" gorm:"size:100;not null"`
	CustomerID  *uint          `json:"customer_id" gorm:"index"`
	Description string         `json:"description" gorm:"size:255"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName 设置表名
func (Revenue) TableName() string {
	return "revenues"
}
