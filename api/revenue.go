package api

import (
	"strconv"
	"time"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
)

// RevenueHandler 营收记录处理器
type RevenueHandler struct{}

func NewRevenueHandler() *RevenueHandler {
	return &RevenueHandler{}
}

type CreateRevenueRequest struct {
	Date        string  `json:"date" binding:"required" example:"2024-11-15"`
	Amount      float64 `json:"amount" binding:"required,gt=0" example:"1200.00"`
	Customer    string  `json:"customer" binding:"required" example:"Client A"`
	CustomerID  *uint   `json:"customer_id"`
	Description string  `json:"description" example:"Web Design Project"`
}

type UpdateRevenueRequest struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount" binding:"omitempty,gt=0"`
	Customer    string  `json:"customer"`
	CustomerID  *uint   `json:"customer_id"`
	Description *string `json:"description"`
}

type RevenueListRequest struct {
	Page       int    `form:"page" example:"1"`
	PageSize   int    `form:"page_size" example:"20"`
	Customer   string `form:"customer" example:"Client A"`
	CustomerID uint   `form:"customer_id"`
	StartTime  string `form:"start_time" example:"2024-01-01"`
	EndTime    string `form:"end_time" example:"2024-12-31"`
}

// Create 创建营收记录
// @Summary 创建营收记录
// @Description 创建一条新的营收记录，可选关联客户ID
// @Tags 营收
// @Accept json
// @Produce json
// @Param request body CreateRevenueRequest true "营收信息"
// @Success 200 {object} Response{data=models.Revenue} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "客户不存在"
// @Router /api/v1/revenues [post]
func (h *RevenueHandler) Create(c *gin.Context) {
	var req CreateRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	t, err := time.ParseInLocation(dateLayout, req.Date, time.Local)
	if err != nil {
		BadRequest(c, "日期格式错误，应为: 2006-01-02")
		return
	}
	if req.CustomerID != nil {
		var customer models.Customer
		if err := database.DB.First(&customer, *req.CustomerID).Error; err != nil {
			NotFound(c, "客户不存在")
			return
		}
	}
	rev := models.Revenue{
		Date:        t,
		Amount:      req.Amount,
		Customer:    req.Customer,
		CustomerID:  req.CustomerID,
		Description: req.Description,
	}
	if err := database.DB.Create(&rev).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建营收记录失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", rev)
}

// List 获取营收记录列表
// @Summary 获取营收记录列表
// @Description 获取营收记录列表，支持分页、时间范围、客户筛选
// @Tags 营收
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param customer query string false "客户名称（模糊匹配）"
// @Param customer_id query int false "客户ID筛选"
// @Param start_time query string false "开始日期 (2024-01-01)"
// @Param end_time query string false "结束日期 (2024-12-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Revenue}} "获取成功"
// @Router /api/v1/revenues [get]
func (h *RevenueHandler) List(c *gin.Context) {
	var req RevenueListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	page, pageSize := parsePage(req.Page, req.PageSize)

	query := database.DB.Model(&models.Revenue{})
	if req.Customer != "" {
		query = query.Where("customer LIKE ?", "%"+req.Customer+"%")
	}
	if req.CustomerID > 0 {
		query = query.Where("customer_id = ?", req.CustomerID)
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
	var list []models.Revenue
	offset := (page - 1) * pageSize
	if err := query.Order("date DESC, id DESC").Offset(offset).Limit(pageSize).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: list})
}

// Get 获取单条营收记录
// @Summary 获取单条营收记录
// @Description 根据ID获取营收记录详情
// @Tags 营收
// @Produce json
// @Param id path int true "营收记录ID"
// @Success 200 {object} Response{data=models.Revenue} "获取成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/revenues/{id} [get]
func (h *RevenueHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var rev models.Revenue
	if err := database.DB.First(&rev, uint(id)).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	Success(c, rev)
}

// Update 更新营收记录
// @Summary 更新营收记录
// @Description 更新指定的营收记录，未传字段保持不变
// @Tags 营收
// @Accept json
// @Produce json
// @Param id path int true "营收记录ID"
// @Param request body UpdateRevenueRequest true "营收信息"
// @Success 200 {object} Response{data=models.Revenue} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/revenues/{id} [put]
func (h *RevenueHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var rev models.Revenue
	if err := database.DB.First(&rev, uint(id)).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	var req UpdateRevenueRequest
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
	if req.Customer != "" {
		updates["customer"] = req.Customer
	}
	if req.CustomerID != nil {
		var customer models.Customer
		if err := database.DB.First(&customer, *req.CustomerID).Error; err != nil {
			NotFound(c, "客户不存在")
			return
		}
		updates["customer_id"] = *req.CustomerID
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if err := database.DB.Model(&rev).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&rev, rev.ID)
	SuccessWithMessage(c, "更新成功", rev)
}

// Delete 删除营收记录
// @Summary 删除营收记录
// @Description 删除指定的营收记录
// @Tags 营收
// @Produce json
// @Param id path int true "营收记录ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "记录不存在"
// @Router /api/v1/revenues/{id} [delete]
func (h *RevenueHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var rev models.Revenue
	if err := database.DB.First(&rev, uint(id)).Error; err != nil {
		NotFound(c, "记录不存在")
		return
	}
	if err := database.DB.Delete(&rev).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
