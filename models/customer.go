package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 客户模型
type Customer struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:100;not null"`
	Category  string         `json:"category" gorm:"size:30;not null"`
	Type      string         `json:"type" gorm:"size:30;not null"`
	Email     string         `json:"email" gorm:"size:100"`
	Phone     string         `json:"phone" gorm:"size:30"`
	Address   string         `json:"address" gorm:"size:255"`
	PICName   string         `json:"pic_name" gorm:"column:pic_name;size:100"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Customer) TableName() string {
	return "customers"
}

// 客户分组常量
const (
	CustomerCategoryPerorangan = "Perorangan"
	CustomerCategoryPerusahaan = "Perusahaan"
	CustomerCategoryVIP        = "VIP"
	CustomerCategoryMitra      = "Mitra"
)

// 客户类型常量
const (
	CustomerTypeB2B      = "B2B"
	CustomerTypeB2C      = "B2C"
	CustomerTypeReseller = "Reseller"
)

// GetCustomerCategories 获取所有客户分组
func GetCustomerCategories() []string {
	return []string{
		CustomerCategoryPerorangan,
		CustomerCategoryPerusahaan,
		CustomerCategoryVIP,
		CustomerCategoryMitra,
	}
}

// GetCustomerTypes 获取所有客户类型
func GetCustomerTypes() []string {
	return []string{
		CustomerTypeB2B,
		CustomerTypeB2C,
		CustomerTypeReseller,
	}
}

// IsValidCustomerCategory 判断客户分组是否合法
func IsValidCustomerCategory(category string) bool {
	for _, c := range GetCustomerCategories() {
		if c == category {
			return true
		}
	}
	return false
}

// IsValidCustomerType 判断客户类型是否合法
func IsValidCustomerType(typ string) bool {
	for _, t := range GetCustomerTypes() {
		if t == typ {
			return true
		}
	}
	return false
}
