package api

import (
	"strconv"
	"time"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
)

// ExpenseHandler 支出记录处理器
type ExpenseHandler struct{}

func NewExpenseHandler() *ExpenseHandler {
	return &ExpenseHandler{}
}

type CreateExpenseRequest struct {
	Date        string  `json:"date" binding:"required" example:"2024-11-01"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"50.00"`
	Vendor      string  `json:"vendor" binding:"required" example:"Software Inc."`
	Description string  `json:"description" example:"Monthly Subscription"`
}

type UpdateExpenseRequest struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount" binding:"omitempty,gt=0"`
	Vendor      string  `json:"vendor"`
	Description *string `json:"description"`
}

type ExpenseListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"20"`
	Vendor    string `form:"vendor" example:"Software Inc."`
	StartTime string `form:"start_time" example:"2024-01-01"`
	EndTime   string `form:"end_time" example:"2024-12-31"`
}

// Create 创建支出记录
// @Summary 创建支出记录
// @Description 创建一条新的支出记录
// @Tags 支出
// @Accept json
// @Produce json
// @Param request body CreateExpenseRequest true "支出信息"
// @Success 200 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	t, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}
	exp := models.Expense{
		Date:        t,
		Amount:      req.Amount,
		Vendor:      req.Vendor,
		Description: req.Description,
	}
	if err := database.DB.Create(&exp).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建支出记录失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", exp)
}

// List 获取支出记录列表
// @Summary 获取支出记录列表
// @Description 获取支出记录列表，支持分页、时间范围、供应商筛选
// @Tags 支出
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param vendor query string false "供应商（模糊匹配）"
// @Param start_time query string false "开始日期 (2024-01-01)"
// @Param end_time query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Expense}} "获取成功"
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	var req ExpenseListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	page, pageSize := parsePage(req.Page, req.PageSize)

	query := database.DB.Model(&models.Expense{})
	if req.Vendor != "" {
		query = query.Where("vendor LIKE ?", "%"+req.Vendor+"%")
	}
	if req.StartTime != "" {
		if t, err := time.ParseInLocation(dateLayout, req.StartTime, time.Local); err == nil {
			query = query.Where("date >= ?", t)
		}
	}
	if req.EndTime != "" {
		if t, err := time.ParseInLocation(dateLayout, req.EndTime, time.Local); err == nil {
			t = t.Add(24*time.Hour - time.Second)
			query = query.Where("date <= ?", t)
		}
	}

	var total int64
	query.Count(&total)
	var list []models.Expense
	offset := (page - 1) * pageSize
	if err := query.Order("date DESC, id DESC").Offset(offset).Limit(pageSize).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: list})
}

// Get 获取单条支出记录
// @Summary 获取单条支出记录
// @Description 根据ID获取支出记录详情
// @Tags 支出
// @Produce json
// @Param id path int true "支出记录ID"
// @Success 200 {object} Response{data=models.Expense} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var exp models.Expense
	if err := database.DB.First(&exp, uint(id)).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	Success(c, exp)
}

// Update 更新支出记录
// @Summary 更新支出记录
// @Description 更新指定的支出记录，未传字段保持不变
// @Tags 支出
// @Accept json
// @Produce json
// @Param id path int true "支出记录ID"
// @Param request body UpdateExpenseRequest true "支出信息"
// @Success 200 {object} Response{data=models.Expense} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var exp models.Expense
	if err := database.DB.First(&exp, uint(id)).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	updates := map[string]interface{}{}
	if req.Date != "" {
		t, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
		if err != nil {
			BadRequest(c, "日期格式错误，应为: 2006-01-02")
			return
		}
		updates["date"] = t
	}
	if req.Amount > 0 {
		updates["amount"] = req.Amount
	}
	if req.Vendor != "" {
		updates["vendor"] = req.Vendor
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if err := database.DB.Model(&exp).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&exp, exp.ID)
	SuccessWithMessage(c, "更新成功", exp)
}

// Delete 删除支出记录
// @Summary 删除支出记录
// @Description 删除指定的支出记录
// @Tags 支出
// @Produce json
// @Param id path int true "支出记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var exp models.Expense
	if err := database.DB.First(&exp, uint(id)).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	if err := database.DB.Delete(&exp).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
