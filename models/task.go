package models

import (
	"time"

	"gorm.io/gorm"
)

// Task 看板任务模型
// 全部任务构成一个按 position 排序的扁平列表，列内顺序就是
// 扁平列表按 column_id 过滤后的相对顺序；拖拽排序只改写
// column_id 与 position，不会增删记录
type Task struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"size:100;not null"`
	Description string         `json:"description" gorm:"size:255"`
	ColumnID    string         `json:"column_id" gorm:"size:20;not null;index;default:todo"`
	Position    int            `json:"position" gorm:"not null;index"`
	StartDate   *time.Time     `json:"start_date"`
	EndDate     *time.Time     `json:"end_date"`
	Priority    string         `json:"priority" gorm:"size:20"`
	AssignedTo  *uint          `json:"assigned_to" gorm:"index"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Task) TableName() string {
	return "tasks"
}

// 看板列常量
const (
	TaskColumnTodo       = "todo"
	TaskColumnInProgress = "inprogress"
	TaskColumnInReview   = "inreview"
	TaskColumnDone       = "done"
)

// 任务优先级常量
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

// GetTaskColumns 获取所有看板列（按展示顺序）
func GetTaskColumns() []string {
	return []string{
		TaskColumnTodo,
		TaskColumnInProgress,
		TaskColumnInReview,
		TaskColumnDone,
	}
}

// GetTaskPriorities 获取所有任务优先级
func GetTaskPriorities() []string {
	return []string{
		TaskPriorityLow,
		TaskPriorityMedium,
		TaskPriorityHigh,
		TaskPriorityUrgent,
	}
}

// IsValidTaskColumn 判断看板列是否合法
func IsValidTaskColumn(columnID string) bool {
	for _, c := range GetTaskColumns() {
		if c == columnID {
			return true
		}
	}
	return false
}

// IsValidTaskPriority 判断任务优先级是否合法
func IsValidTaskPriority(priority string) bool {
	for _, p := range GetTaskPriorities() {
		if p == priority {
			return true
		}
	}
	return false
}
