package models

import (
	"time"

	"gorm.io/gorm"
)

// InsightReport AI经营洞察报告
// 保存每次生成的结果与当时的营收/支出总额，便于回看历史
type InsightReport struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	StartDate       string         `json:"start_date" gorm:"size:10"`
	EndDate         string         `json:"end_date" gorm:"size:10"`
	RevenueTotal    float64        `json:"revenue_total" gorm:"type:decimal(14,2)"`
	ExpenseTotal    float64        `json:"expense_total" gorm:"type:decimal(14,2)"`
	Insights        string         `json:"insights" gorm:"type:text"`
	Recommendations string         `json:"recommendations" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

func (InsightReport) TableName() string {
	return "insight_reports"
}
