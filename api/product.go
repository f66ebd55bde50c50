package api

import (
	"strconv"

	"erp/database"
	"erp/models"

	"github.com/gin-gonic/gin"
)

// ProductHandler 商品处理器
type ProductHandler struct{}

func NewProductHandler() *ProductHandler {
	return &ProductHandler{}
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required" example:"Paket Website UMKM"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0" example:"2500000"`
	Quantity    *int    `json:"quantity" binding:"required,gte=0" example:"20"`
}

type UpdateProductRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       float64  `json:"price" binding:"omitempty,gt=0"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=0"`
}

type ProductListRequest struct {
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"20"`
	Name     string `form:"name"`
}

// Create 创建商品
// @Summary 创建商品
// @Description 创建一个新的商品（含库存数量）
// @Tags 商品
// @Accept json
// @Produce json
// @Param request body CreateProductRequest true "商品信息"
// @Success 200 {object} Response{data=models.Product} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	p := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    *req.Quantity,
	}
	if err := database.DB.Create(&p).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建商品失败"))
		return
	}
	SuccessWithMessage(c, "创建成功", p)
}

// List 获取商品列表
// @Summary 获取商品列表
// @Description 获取商品列表，支持分页与名称模糊搜索
// @Tags 商品
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Param name query string false "商品名称（模糊匹配）"
// @Success 200 {object} Response{data=PageResponse{list=[]models.Product}} "获取成功"
// @Router /api/v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var req ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	page, pageSize := parsePage(req.Page, req.PageSize)

	query := database.DB.Model(&models.Product{})
	if req.Name != "" {
		query = query.Where("name LIKE ?", "%"+req.Name+"%")
	}

	var total int64
	query.Count(&total)
	var list []models.Product
	offset := (page - 1) * pageSize
	if err := query.Order("id").Offset(offset).Limit(pageSize).Find(&list).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询失败"))
		return
	}
	Success(c, PageResponse{Total: total, Page: page, PageSize: pageSize, List: list})
}

// Get 获取单个商品
// @Summary 获取单个商品
// @Description 根据ID获取商品详情
// @Tags 商品
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} Response{data=models.Product} "获取成功"
// @Failure 404 {object} Response "商品不存在"
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var p models.Product
	if err := database.DB.First(&p, uint(id)).Error; err != nil {
		NotFound(c, "商品不存在")
		return
	}
	Success(c, p)
}

// Update 更新商品
// @Summary 更新商品
// @Description 更新指定商品，未传字段保持不变
// @Tags 商品
// @Accept json
// @Produce json
// @Param id path int true "商品ID"
// @Param request body UpdateProductRequest true "商品信息"
// @Success 200 {object} Response{data=models.Product} "更新成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 404 {object} Response "商品不存在"
// @Router /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var p models.Product
	if err := database.DB.First(&p, uint(id)).Error; err != nil {
		NotFound(c, "商品不存在")
		return
	}
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price > 0 {
		updates["price"] = req.Price
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if err := database.DB.Model(&p).Updates(updates).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "更新失败"))
		return
	}
	database.DB.First(&p, p.ID)
	SuccessWithMessage(c, "更新成功", p)
}

// Delete 删除商品
// @Summary 删除商品
// @Description 删除指定商品
// @Tags 商品
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} Response "删除成功"
// @Failure 404 {object} Response "商品不存在"
// @Router /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		BadRequest(c, "无效的ID")
		return
	}
	var p models.Product
	if err := database.DB.First(&p, uint(id)).Error; err != nil {
		NotFound(c, "商品不存在")
		return
	}
	if err := database.DB.Delete(&p).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "删除失败"))
		return
	}
	SuccessWithMessage(c, "删除成功", nil)
}
