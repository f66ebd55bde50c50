package api

import (
	"encoding/json"
	"log"
	"strconv"

	"erp/database"
	"erp/models"
	"erp/service"

	"github.com/gin-gonic/gin"
)

// InsightHandler AI经营洞察处理器
type InsightHandler struct {
	client *service.InsightClient
}

func NewInsightHandler(client *service.InsightClient) *InsightHandler {
	return &InsightHandler{client: client}
}

// GenerateInsightRequest 洞察生成请求
// 不传时间范围则分析全部数据
type GenerateInsightRequest struct {
	StartTime string `json:"start_time" example:"2024-01-01"`
	EndTime   string `json:"end_time" example:"2024-12-31"`
}

// insightRevenueRecord 提交给模型的营收记录精简形式
type insightRevenueRecord struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Customer    string  `json:"customer"`
	Description string  `json:"description,omitempty"`
}

// insightExpenseRecord 提交给模型的支出记录精简形式
type insightExpenseRecord struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Vendor      string  `json:"vendor"`
	Description string  `json:"description,omitempty"`
}

// Generate 生成经营洞察
// @Summary 生成经营洞察
// @Description 把当前营收/支出数据序列化后提交给生成式模型，返回洞察与建议并保存历史。单次请求，无重试
// @Tags 洞察
// @Accept json
// @Produce json
// @Param request body GenerateInsightRequest true "时间范围（可选）"
// @Success 200 {object} Response{data=models.InsightReport} "生成成功"
// @Failure 400 {object} Response "没有可分析的数据"
// @Failure 502 {object} Response "AI服务失败"
// @Router /api/v1/insights [post]
func (h *InsightHandler) Generate(c *gin.Context) {
	var req GenerateInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	revQuery := database.DB.Model(&models.Revenue{})
	expQuery := database.DB.Model(&models.Expense{})
	if req.StartTime != "" && req.EndTime != "" {
		start, end, err := parseDateRange(req.StartTime, req.EndTime)
		if err != nil {
			BadRequest(c, "时间格式错误，应为: 2006-01-02")
			return
		}
		revQuery = revQuery.Where("date >= ? AND date <= ?", start, end)
		expQuery = expQuery.Where("date >= ? AND date <= ?", start, end)
	}

	var revenues []models.Revenue
	if err := revQuery.Order("date").Find(&revenues).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询营收失败"))
		return
	}
	var expenses []models.Expense
	if err := expQuery.Order("date").Find(&expenses).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询支出失败"))
		return
	}
	if len(revenues) == 0 && len(expenses) == 0 {
		BadRequest(c, "该时间范围内没有可分析的数据")
		return
	}

	var revenueTotal, expenseTotal float64
	revRecords := make([]insightRevenueRecord, 0, len(revenues))
	for _, r := range revenues {
		revenueTotal += r.Amount
		revRecords = append(revRecords, insightRevenueRecord{
			Date:        r.Date.Format(dateLayout),
			Amount:      r.Amount,
			Customer:    r.Customer,
			Description: r.Description,
		})
	}
	expRecords := make([]insightExpenseRecord, 0, len(expenses))
	for _, e := range expenses {
		expenseTotal += e.Amount
		expRecords = append(expRecords, insightExpenseRecord{
			Date:        e.Date.Format(dateLayout),
			Amount:      e.Amount,
			Vendor:      e.Vendor,
			Description: e.Description,
		})
	}

	revData, _ := json.Marshal(revRecords)
	expData, _ := json.Marshal(expRecords)

	result, err := h.client.Generate(service.InsightInput{
		RevenueData: string(revData),
		ExpenseData: string(expData),
	})
	if err != nil {
		log.Printf("AI洞察生成失败: %v", err)
		BadGateway(c, "AI洞察生成失败，请稍后再试")
		return
	}

	report := models.InsightReport{
		StartDate:       req.StartTime,
		EndDate:         req.EndTime,
		RevenueTotal:    revenueTotal,
		ExpenseTotal:    expenseTotal,
		Insights:        result.Insights,
		Recommendations: result.Recommendations,
	}
	if err := database.DB.Create(&report).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "保存洞察历史失败"))
		return
	}
	SuccessWithMessage(c, "生成成功", report)
}

// History 获取洞察历史
// @Summary 获取洞察历史
// @Description 按生成时间倒序分页返回历史洞察报告
// @Tags 洞察
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} Response{data=PageResponse{list=[]models.InsightReport}} "获取成功"
// @Router /api/v1/insights/history [get]
func (h *InsightHandler) History(c *gin.Context) {
	var req struct {
		Page     int `form:"page"`
		PageSize int `form:"page_size"`
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	page, pageSize := parsePage(req.Page, req.PageSize)

	query := database.DB.Model(&models.InsightReport{})
	var total int64
	query.Count(&total)

	var list []models.InsightReport
	offset := (page - 1) * pageSize
	if err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: list})
}

// DeleteHistory 删除洞察历史
// @Summary 删除洞察历史
// @Description 软删除指定的历史洞察报告
// @Tags 洞察
// @Produce json
// @Param id path int true "报告ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/insights/history/{id} [delete]
func (h *InsightHandler) DeleteHistory(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var report models.InsightReport
	if err := database.DB.First(&report, uint(id)).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	if err := database.DB.Delete(&report).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
