package api

import (
	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
// 当前版本不做真实校验，仅保留接口形状，后续接入真实用户体系
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"password123"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50" example:"admin"`
	Password string `json:"password" binding:"required,min=6,max=50" example:"password123"`
	Email    string `json:"email" binding:"omitempty,email" example:"admin@example.com"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Username string `json:"username"`
}

// Login 用户登录
// @Summary 用户登录
// @Description 登录接口，当前不校验凭据，任何提交均视为成功
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	SuccessWithMessage(c, "登录成功", LoginResponse{Username: req.Username})
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册接口，当前不持久化用户，仅返回成功
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册信息"
// @Success 200 {object} Response "注册成功"
// @Failure 400 {object} Response "请求参数错误"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	SuccessWithMessage(c, "注册成功", gin.H{"username": req.Username})
}
