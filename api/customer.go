package api

import (
	"strconv"
	"strings"
	"time"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
)

// CustomerHandler 客户处理器
type CustomerHandler struct{}

func NewCustomerHandler() *CustomerHandler {
	return &CustomerHandler{}
}

type CreateCustomerRequest struct {
	Name     string `json:"name" binding:"required" example:"Client A"`
	Category string `json:"category" binding:"required" example:"Perusahaan"`
	Type     string `json:"type" binding:"required" example:"B2B"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	PICName  string `json:"pic_name"`
}

type UpdateCustomerRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	PICName  *string `json:"pic_name"`
}

type CustomerListRequest struct {
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"20"`
	Name     string `form:"name"`
	Category string `form:"category"`
	Type     string `form:"type"`
}

// Create 创建客户
// @Summary 创建客户
// @Description 创建一条新的客户记录，分组与类型必须在预设范围内
// @Tags 客户
// @Accept json
// @Produce json
// @Param request body CreateCustomerRequest true "客户信息"
// @Success 200 {object} Response{data=models.Customer} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	if !models.IsValidCustomerCategory(req.Category) {
		BadRequest(c, "无效的客户分组，可选: "+strings.Join(models.GetCustomerCategories(), ", "))
		return
	}
	if !models.IsValidCustomerType(req.Type) {
		BadRequest(c, "无效的客户类型，可选: "+strings.Join(models.GetCustomerTypes(), ", "))
		return
	}
	cust := models.Customer{
		Name:     req.Name,
		Category: req.Category,
		Type:     req.Type,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		PICName:  req.PICName,
	}
	if err := database.DB.Create(&cust).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建客户失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", cust)
}

// List 获取客户列表
// @Summary 获取客户列表
// @Description 获取客户列表，支持分页与名称/分组/类型筛选
// @Tags 客户
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param name query string false "客户名称（模糊匹配）"
// @Param category query string false "客户分组筛选"
// @Param type query string false "客户类型筛选"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Customer}} "获取成功"
// @Router /api/v1/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	var req CustomerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	page, pageSize := parsePage(req.Page, req.PageSize)

	query := database.DB.Model(&models.Customer{})
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Type != "" {
		query = query.Where("type = ?", req.Type)
	}

	var total int64
	query.Count(&total)
	var list []models.Customer
	offset := (page - 1) * pageSize
	if err := query.Order("id").Offset(offset).Limit(pageSize).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: list})
}

// Get 获取单个客户
// @Summary 获取单个客户
// @Description 根据ID获取客户详情
// @Tags 客户
// @Produce json
// @Param id path int true "客户ID"
// @Success 200 {object} Response{data=models.Customer} "获取成功"
// @Failure 404 {object} Response "客户不存在"
// @Router /api/v1/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var cust models.Customer
	if err := database.DB.First(&cust, uint(id)).Error; err != nil {
		NotFound(c, "客户不存在")
		return
	}
	Success(c, cust)
}

// Update 更新客户
// @Summary 更新客户
// @Description 更新指定客户，未传字段保持不变。历史营收按 customer_id 归属，改名不影响统计
// @Tags 客户
// @Accept json
// @Produce json
// @Param id path int true "客户ID"
// @Param request body UpdateCustomerRequest true "客户信息"
// @Success 200 {object} Response{data=models.Customer} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "客户不存在"
// @Router /api/v1/customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var cust models.Customer
	if err := database.DB.First(&cust, uint(id)).Error; err != nil {
		NotFound(c, "客户不存在")
		return
	}
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Category != "" {
		if !models.IsValidCustomerCategory(req.Category) {
			BadRequest(c, "无效的客户分组，可选: "+strings.Join(models.GetCustomerCategories(), ", "))
			return
		}
		updates["category"] = req.Category
	}
	if req.Type != "" {
		if !models.IsValidCustomerType(req.Type) {
			BadRequest(c, "无效的客户类型，可选: "+strings.Join(models.GetCustomerTypes(), ", "))
			return
		}
		updates["type"] = req.Type
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.PICName != nil {
		updates["pic_name"] = *req.PICName
	}
	if err := database.DB.Model(&cust).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&cust, cust.ID)
	SuccessWithMessage(c, "更新成功", cust)
}

// Delete 删除客户
// @Summary 删除客户
// @Description 删除指定客户，历史营收记录保留
// @Tags 客户
// @Produce json
// @Param id path int true "客户ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "客户不存在"
// @Router /api/v1/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var cust models.Customer
	if err := database.DB.First(&cust, uint(id)).Error; err != nil {
		NotFound(c, "客户不存在")
		return
	}
	if err := database.DB.Delete(&cust).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}

// CustomerStats 单个客户的营收统计
type CustomerStats struct {
	CustomerID   uint       `json:"customer_id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Type         string     `json:"type"`
	RevenueTotal float64    `json:"revenue_total"`
	RevenueCount int        `json:"revenue_count"`
	FirstSeen    *time.Time `json:"first_seen,omitempty"`
	Active       bool       `json:"active"`
}

// CustomerAnalyticsResponse 客户分析汇总
type CustomerAnalyticsResponse struct {
	TotalCustomers   int             `json:"total_customers"`
	NewThisMonth     int             `json:"new_this_month"`
	ActiveLast30Days int             `json:"active_last_30_days"`
	ByCategory       map[string]int  `json:"by_category"`
	Customers        []CustomerStats `json:"customers"`
}

// revenueBelongsTo 判断营收记录是否归属该客户
// 优先按 customer_id 外键匹配；无外键的历史记录退回名称精确匹配
func revenueBelongsTo(rev models.Revenue, cust models.Customer) bool {
	if rev.CustomerID != nil {
		return *rev.CustomerID == cust.ID
	}
	return rev.Customer == cust.Name
}

// computeCustomerAnalytics 客户分析的纯计算部分
// first_seen 取最早归属营收的日期；active 表示最近30天内有营收；
// new_this_month 统计 first_seen 落在 now 所在自然月的客户数
func computeCustomerAnalytics(customers []models.Customer, revenues []models.Revenue, now time.Time) CustomerAnalyticsResponse {
	resp := CustomerAnalyticsResponse{
		TotalCustomers: len(customers),
		ByCategory:     make(map[string]int),
		Customers:      make([]CustomerStats, 0, len(customers)),
	}
	activeCutoff := now.AddDate(0, 0, -30)

	for _, cust := range customers {
		resp.ByCategory[cust.Category]++

		stats := CustomerStats{
			CustomerID: cust.ID,
			Name:       cust.Name,
			Category:   cust.Category,
			Type:       cust.Type,
		}
		for _, rev := range revenues {
			if !revenueBelongsTo(rev, cust) {
				continue
			}
			stats.RevenueTotal += rev.Amount
			stats.RevenueCount++
			if stats.FirstSeen == nil || rev.Date.Before(*stats.FirstSeen) {
				d := rev.Date
				stats.FirstSeen = &d
			}
			if !rev.Date.Before(activeCutoff) && !rev.Date.After(now) {
				stats.Active = true
			}
		}
		if stats.FirstSeen != nil &&
			stats.FirstSeen.Year() == now.Year() && stats.FirstSeen.Month() == now.Month() {
			resp.NewThisMonth++
		}
		if stats.Active {
			resp.ActiveLast30Days++
		}
		resp.Customers = append(resp.Customers, stats)
	}
	return resp
}

// Analytics 客户分析
// @Summary 客户分析
// @Description 按客户统计营收总额、首次成交日期、最近30天活跃情况，并汇总分组分布与本月新增客户数
// @Tags 客户
// @Produce json
// @Success 200 {object} Response{data=CustomerAnalyticsResponse} "获取成功"
// @Router /api/v1/customers/analytics [get]
func (h *CustomerHandler) Analytics(c *gin.Context) {
	var customers []models.Customer
	if err := database.DB.Order("id").Find(&customers).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询客户失败"))
		return
	}
	var revenues []models.Revenue
	if err := database.DB.Find(&revenues).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询营收失败"))
		return
	}
	Success(c, computeCustomerAnalytics(customers, revenues, time.Now()))
}
