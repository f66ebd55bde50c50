package api

import (
	"strconv"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler 员工处理器
type EmployeeHandler struct{}

func NewEmployeeHandler() *EmployeeHandler {
	return &EmployeeHandler{}
}

type CreateEmployeeRequest struct {
	Name     string  `json:"name" binding:"required" example:"Budi Santoso"`
	Position string  `json:"position" binding:"required" example:"Sales Manager"`
	Email    string  `json:"email" binding:"required,email" example:"budi@example.com"`
	Phone    string  `json:"phone" example:"0812-1111-2222"`
	Salary   float64 `json:"salary" binding:"required,gt=0" example:"8500000"`
}

type UpdateEmployeeRequest struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Email    string  `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Salary   float64 `json:"salary" binding:"omitempty,gt=0"`
}

type EmployeeListRequest struct {
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"20"`
	Name     string `form:"name"`
	Position string `form:"position"`
}

// Create 创建员工
// @Summary 创建员工
// @Description 创建一条新的员工记录
// @Tags 员工
// @Accept json
// @Produce json
// @Param request body CreateEmployeeRequest true "员工信息"
// @Success 200 {object} Response{data=models.Employee} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	emp := models.Employee{
		Name:     req.Name,
		Position: req.Position,
		Email:    req.Email,
		Phone:    req.Phone,
		Salary:   req.Salary,
	}
	if err := database.DB.Create(&emp).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建员工失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", emp)
}

// List 获取员工列表
// @Summary 获取员工列表
// @Description 获取员工列表，支持分页与姓名/职位筛选
// @Tags 员工
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param name query string false "姓名（模糊匹配）"
// @Param position query string false "职位（模糊匹配）"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Employee}} "获取成功"
// @Router /api/v1/employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	var req EmployeeListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	page, pageSize := parsePage(req.Page, req.PageSize)

	query := database.DB.Model(&models.Employee{})
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}
	if req.Position != "" {
		query = query.Where("position LIKE ?", "%"+req.Position+"%")
	}

	var total int64
	query.Count(&total)
	var list []models.Employee
	offset := (page - 1) * pageSize
	if err := query.Order("id").Offset(offset).Limit(pageSize).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: list})
}

// Get 获取单个员工
// @Summary 获取单个员工
// @Description 根据ID获取员工详情
// @Tags 员工
// @Produce json
// @Param id path int true "员工ID"
// @Success 200 {object} Response{data=models.Employee} "获取成功"
// @Failure 404 {object} Response "员工不存在"
// @Router /api/v1/employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var emp models.Employee
	if err := database.DB.First(&emp, uint(id)).Error; err != nil {
		NotFound(c, "员工不存在")
		return
	}
	Success(c, emp)
}

// Update 更新员工
// @Summary 更新员工
// @Description 更新指定员工，未传字段保持不变
// @Tags 员工
// @Accept json
// @Produce json
// @Param id path int true "员工ID"
// @Param request body UpdateEmployeeRequest true "员工信息"
// @Success 200 {object} Response{data=models.Employee} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "员工不存在"
// @Router /api/v1/employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var emp models.Employee
	if err := database.DB.First(&emp, uint(id)).Error; err != nil {
		NotFound(c, "员工不存在")
		return
	}
	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Position != "" {
		updates["position"] = req.Position
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Salary > 0 {
		updates["salary"] = req.Salary
	}
	if err := database.DB.Model(&emp).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&emp, emp.ID)
	SuccessWithMessage(c, "更新成功", emp)
}

// Delete 删除员工
// @Summary 删除员工
// @Description 删除指定员工。被 Appointment/Task 引用的员工不会被级联清理，引用保持原样
// @Tags 员工
// @Produce json
// @Param id path int true "员工ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "员工不存在"
// @Router /api/v1/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var emp models.Employee
	if err := database.DB.First(&emp, uint(id)).Error; err != nil {
		NotFound(c, "员工不存在")
		return
	}
	if err := database.DB.Delete(&emp).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
