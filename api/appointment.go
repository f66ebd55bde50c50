package api

import (
	"strconv"
	"strings"
	"time"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler 日程预约处理器
type AppointmentHandler struct{}

func NewAppointmentHandler() *AppointmentHandler {
	return &AppointmentHandler{}
}

type CreateAppointmentRequest struct {
	StartDate   string `json:"start_date" binding:"required" example:"2024-07-20 10:00:00"`
	EndDate     string `json:"end_date" binding:"required" example:"2024-07-20 11:00:00"`
	Title       string `json:"title" binding:"required" example:"Project Kick-off"`
	Description string `json:"description"`
	AssignedTo  *uint  `json:"assigned_to"`
	Category    string `json:"category" binding:"required" example:"meeting"`
	Status      string `json:"status" example:"planned"`
}

type UpdateAppointmentRequest struct {
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	AssignedTo  *uint   `json:"assigned_to"`
	Category    string  `json:"category"`
	Status      string  `json:"status"`
}

type AppointmentListRequest struct {
	Page      int    `form:"page" example:"1"`
	PageSize  int    `form:"page_size" example:"20"`
	Category  string `form:"category"`
	Status    string `form:"status"`
	StartTime string `form:"start_time" example:"2024-07-01"`
	EndTime   string `form:"end_time" example:"2024-07-31"`
}

// Create 创建日程
// @Summary 创建日程
// @Description 创建一条新的日程预约，结束时间不能早于开始时间
// @Tags 日程
// @Accept json
// @Produce json
// @Param request body CreateAppointmentRequest true "日程信息"
// @Success 200 {object} Response{data=models.Appointment} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "员工不存在"
// @Router /api/v1/appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	start, err := time.ParseInLocation(dateTimeLayout, req.StartDate, time.Local)
	if err != nil {
		BadRequest(c, "开始时间格式错误，应为: 2006-01-02 15:04:05")
		return
	}
	end, err := time.ParseInLocation(dateTimeLayout, req.EndDate, time.Local)
	if err != nil {
		BadRequest(c, "结束时间格式错误，应为: 2006-01-02 15:04:05")
		return
	}
	if end.Before(start) {
		BadRequest(c, "结束时间不能早于开始时间")
		return
	}
	if !models.IsValidAppointmentCategory(req.Category) {
		BadRequest(c, "无效的日程类别，可选: "+strings.Join(models.GetAppointmentCategories(), ", "))
		return
	}
	status := req.Status
	if status == "" {
		status = models.AppointmentStatusPlanned
	}
	if !models.IsValidAppointmentStatus(status) {
		BadRequest(c, "无效的日程状态，可选: "+strings.Join(models.GetAppointmentStatuses(), ", "))
		return
	}
	if req.AssignedTo != nil {
		var emp models.Employee
		if err := database.DB.First(&emp, *req.AssignedTo).Error; err != nil {
			NotFound(c, "员工不存在")
			return
		}
	}
	app := models.Appointment{
		StartDate:   start,
		EndDate:     end,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Category:    req.Category,
		Status:      status,
	}
	if err := database.DB.Create(&app).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建日程失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", app)
}

// List 获取日程列表
// @Summary 获取日程列表
// @Description 获取日程列表，支持分页、类别、状态与时间范围筛选
// @Tags 日程
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param category query string false "类别筛选"
// @Param status query string false "状态筛选"
// @Param start_time query string false "开始日期 (2024-07-01)"
// @Param end_time query string false "结束日期 (2024-07-31)"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Appointment}} "获取成功"
// @Router /api/v1/appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	var req AppointmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	page, pageSize := parsePage(req.Page, req.PageSize)

	query := database.DB.Model(&models.Appointment{})
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	// 时间范围筛选取与窗口有交集的日程
	if req.StartTime != "" {
		if t, err := time.ParseInLocation(dateLayout, req.StartTime, time.Local); err == nil {
			query = query.Where("end_date >= ?", t)
		}
	}
	if req.EndTime != "" {
		if t, err := time.ParseInLocation(dateLayout, req.EndTime, time.Local); err == nil {
			t = t.Add(24*time.Hour - time.Second)
			query = query.Where("start_date <= ?", t)
		}
	}

	var total int64
	query.Count(&total)
	var list []models.Appointment
	offset := (page - 1) * pageSize
	if err := query.Order("start_date").Offset(offset).Limit(pageSize).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: list})
}

// Get 获取单条日程
// @Summary 获取单条日程
// @Description 根据ID获取日程详情
// @Tags 日程
// @Produce json
// @Param id path int true "日程ID"
// @Success 200 {object} Response{data=models.Appointment} "获取成功"
// @Failure 404 {object} Response "日程不存在"
// @Router /api/v1/appointments/{id} [get]
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var app models.Appointment
	if err := database.DB.First(&app, uint(id)).Error; err != nil {
		NotFound(c, "日程不存在")
		return
	}
	Success(c, app)
}

// Update 更新日程
// @Summary 更新日程
// @Description 更新指定日程，未传字段保持不变；更新后的时间区间仍需满足结束不早于开始
// @Tags 日程
// @Accept json
// @Produce json
// @Param id path int true "日程ID"
// @Param request body UpdateAppointmentRequest true "日程信息"
// @Success 200 {object} Response{data=models.Appointment} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "日程不存在"
// @Router /api/v1/appointments/{id} [put]
func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var app models.Appointment
	if err := database.DB.First(&app, uint(id)).Error; err != nil {
		NotFound(c, "日程不存在")
		return
	}
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	// 先算出更新后的时间区间再校验次序
	start, end := app.StartDate, app.EndDate
	updates := map[string]interface{}{}
	if req.StartDate != "" {
		t, err := time.ParseInLocation(dateTimeLayout, req.StartDate, time.Local)
		if err != nil {
			BadRequest(c, "开始时间格式错误，应为: 2006-01-02 15:04:05")
			return
		}
		start = t
		updates["start_date"] = t
	}
	if req.EndDate != "" {
		t, err := time.ParseInLocation(dateTimeLayout, req.EndDate, time.Local)
		if err != nil {
			BadRequest(c, "结束时间格式错误，应为: 2006-01-02 15:04:05")
			return
		}
		end = t
		updates["end_date"] = t
	}
	if end.Before(start) {
		BadRequest(c, "结束时间不能早于开始时间")
		return
	}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.AssignedTo != nil {
		var emp models.Employee
		if err := database.DB.First(&emp, *req.AssignedTo).Error; err != nil {
			NotFound(c, "员工不存在")
			return
		}
		updates["assigned_to"] = *req.AssignedTo
	}
	if req.Category != "" {
		if !models.IsValidAppointmentCategory(req.Category) {
			BadRequest(c, "无效的日程类别，可选: "+strings.Join(models.GetAppointmentCategories(), ", "))
			return
		}
		updates["category"] = req.Category
	}
	if req.Status != "" {
		if !models.IsValidAppointmentStatus(req.Status) {
			BadRequest(c, "无效的日程状态，可选: "+strings.Join(models.GetAppointmentStatuses(), ", "))
			return
		}
		updates["status"] = req.Status
	}
	if err := database.DB.Model(&app).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&app, app.ID)
	SuccessWithMessage(c, "更新成功", app)
}

// Delete 删除日程
// @Summary 删除日程
// @Description 删除指定日程
// @Tags 日程
// @Produce json
// @Param id path int true "日程ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "日程不存在"
// @Router /api/v1/appointments/{id} [delete]
func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var app models.Appointment
	if err := database.DB.First(&app, uint(id)).Error; err != nil {
		NotFound(c, "日程不存在")
		return
	}
	if err := database.DB.Delete(&app).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
