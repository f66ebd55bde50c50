package models

import (
	"time"

	"gorm.io/gorm"
)

// Employee 员工模型
// 被 Appointment/Task 的 assigned_to 引用；删除员工不级联清理引用
type Employee struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"size:100;not null"`
	Position  string         `json:"position" gorm:"size:100;not null"`
	Email     string         `json:"email" gorm:"size:100;not null"`
	Phone     string         `json:"phone" gorm:"size:30"`
	Salary    float64        `json:"salary" gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}
