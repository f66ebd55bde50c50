package models

import (
	"time"

	"gorm.io/gorm"
)

// Expense 支出记录模型
type Expense struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Date        time.Time      `json:"date" gorm:"not null;index"`
	Amount      float64        `json:"amount" gorm:"type:decimal(12,2);not null"`
	Vendor      string         `json:"vendor" gorm:"size:100;not null"`
	Description string         `json:"description" gorm:"size:255"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Expense) TableName() string {
	return "expenses"
}
