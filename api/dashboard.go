package api

import (
	"time"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// MonthlyPoint 按月汇总点
type MonthlyPoint struct {
	Month   string  `json:"month" example:"2024-06"`
	Revenue float64 `json:"revenue"`
	Expense float64 `json:"expense"`
}

// TopCustomer 营收贡献前列客户
type TopCustomer struct {
	Customer string  `json:"customer"`
	Total    float64 `json:"total"`
}

// DashboardSummary 仪表盘汇总数据
type DashboardSummary struct {
	RevenueTotal  float64        `json:"revenue_total"`
	ExpenseTotal  float64        `json:"expense_total"`
	Profit        float64        `json:"profit"`
	Monthly       []MonthlyPoint `json:"monthly"`
	TopCustomers  []TopCustomer  `json:"top_customers"`
	CustomerCount int64          `json:"customer_count"`
	EmployeeCount int64          `json:"employee_count"`
	ProductCount  int64          `json:"product_count"`
	LowStockCount int64          `json:"low_stock_count"`
}

const lowStockThreshold = 10

// Summary 获取仪表盘汇总
// @Summary 获取仪表盘汇总
// @Description 返回营收/支出总额、利润、近6个月趋势、前5客户以及各实体数量
// @Tags 仪表盘
// @Produce json
// @Success 200 {object} Response{data=DashboardSummary} "获取成功"
// @Router /api/v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	var summary DashboardSummary

	if err := database.DB.Model(&models.Revenue{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.RevenueTotal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "统计营收失败"))
		return
	}
	if err := database.DB.Model(&models.Expense{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&summary.ExpenseTotal).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "统计支出失败"))
		return
	}
	summary.Profit = summary.RevenueTotal - summary.ExpenseTotal

	summary.Monthly = h.monthlySeries(time.Now())
	summary.TopCustomers = h.topCustomers(5)

	database.DB.Model(&models.Customer{}).Count(&summary.CustomerCount)
	database.DB.Model(&models.Employee{}).Count(&summary.EmployeeCount)
	database.DB.Model(&models.Product{}).Count(&summary.ProductCount)
	database.DB.Model(&models.Product{}).
		Where("quantity < ?", lowStockThreshold).Count(&summary.LowStockCount)

	Success(c, summary)
}

// monthlySeries 最近6个月的营收/支出序列，包含无数据的月份
func (h *DashboardHandler) monthlySeries(now time.Time) []MonthlyPoint {
	points := make([]MonthlyPoint, 0, 6)
	firstMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -5, 0)
	for i := 0; i < 6; i++ {
		monthStart := firstMonth.AddDate(0, i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

		var revenue, expense float64
		database.DB.Model(&models.Revenue{}).
			Where("date >= ? AND date <= ?", monthStart, monthEnd).
			Select("COALESCE(SUM(amount), 0)").Scan(&revenue)
		database.DB.Model(&models.Expense{}).
			Where("date >= ? AND date <= ?", monthStart, monthEnd).
			Select("COALESCE(SUM(amount), 0)").Scan(&expense)

		points = append(points, MonthlyPoint{
			Month:   monthStart.Format("2006-01"),
			Revenue: revenue,
			Expense: expense,
		})
	}
	return points
}

// topCustomers 按营收总额倒序的前N名客户
func (h *DashboardHandler) topCustomers(limit int) []TopCustomer {
	top := make([]TopCustomer, 0, limit)
	database.DB.Model(&models.Revenue{}).
		Select("customer, COALESCE(SUM(amount), 0) as total").
		Group("customer").
		Order("total DESC").
		Limit(limit).
		Scan(&top)
	return top
}
