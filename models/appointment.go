package models

import (
	"time"

	"gorm.io/gorm"
)

// Appointment 日程预约模型
// 约束 end_date >= start_date 在接口参数校验层保证，存储层不做检查
type Appointment struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	StartDate   time.Time      `json:"start_date" gorm:"not null;index"`
	EndDate     time.Time      `json:"end_date" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"size:100;not null"`
	Description string         `json:"description" gorm:"size:255"`
	AssignedTo  *uint          `json:"assigned_to" gorm:"index"`
	Category    string         `json:"category" gorm:"size:20;not null"`
	Status      string         `json:"status" gorm:"size:20;not null;default:planned"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// 日程类别常量
const (
	AppointmentCategoryMeeting  = "meeting"
	AppointmentCategoryDeadline = "deadline"
	AppointmentCategoryWork     = "work"
	AppointmentCategoryPersonal = "personal"
)

// 日程状态常量
const (
	AppointmentStatusPlanned   = "planned"
	AppointmentStatusOngoing   = "ongoing"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
)

// GetAppointmentCategories 获取所有日程类别
func GetAppointmentCategories() []string {
	return []string{
		AppointmentCategoryMeeting,
		AppointmentCategoryDeadline,
		AppointmentCategoryWork,
		AppointmentCategoryPersonal,
	}
}

// GetAppointmentStatuses 获取所有日程状态
func GetAppointmentStatuses() []string {
	return []string{
		AppointmentStatusPlanned,
		AppointmentStatusOngoing,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
	}
}

// IsValidAppointmentCategory 判断日程类别是否合法
func IsValidAppointmentCategory(category string) bool {
	for _, c := range GetAppointmentCategories() {
		if c == category {
			return true
		}
	}
	return false
}

// IsValidAppointmentStatus 判断日程状态是否合法
func IsValidAppointmentStatus(status string) bool {
	for _, s := range GetAppointmentStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
