package router

import (
	"time"

	"erp/api"
	"erp/config"
	_ "erp/docs"
	"erp/middleware"
	"erp/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由
		authHandler := api.NewAuthHandler()
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// 营收记录
		revenueHandler := api.NewRevenueHandler()
		revenues := v1.Group("/revenues")
		{
			revenues.POST("", revenueHandler.Create)
			revenues.GET("", revenueHandler.List)
			revenues.GET("/:id", revenueHandler.Get)
			revenues.PUT("/:id", revenueHandler.Update)
			revenues.DELETE("/:id", revenueHandler.Delete)
		}

		// 支出记录
		expenseHandler := api.NewExpenseHandler()
		expenses := v1.Group("/expenses")
		{
			expenses.POST("", expenseHandler.Create)
			expenses.GET("", expenseHandler.List)
			expenses.GET("/:id", expenseHandler.Get)
			expenses.PUT("/:id", expenseHandler.Update)
			expenses.DELETE("/:id", expenseHandler.Delete)
		}

		// 产品库存
		productHandler := api.NewProductHandler()
		products := v1.Group("/products")
		{
			products.POST("", productHandler.Create)
			products.GET("", productHandler.List)
			products.GET("/:id", productHandler.Get)
			products.PUT("/:id", productHandler.Update)
			products.DELETE("/:id", productHandler.Delete)
		}

		// 员工管理
		employeeHandler := api.NewEmployeeHandler()
		employees := v1.Group("/employees")
		{
			employees.POST("", employeeHandler.Create)
			employees.GET("", employeeHandler.List)
			employees.GET("/:id", employeeHandler.Get)
			employees.PUT("/:id", employeeHandler.Update)
			employees.DELETE("/:id", employeeHandler.Delete)
		}

		// 客户管理
		customerHandler := api.NewCustomerHandler()
		customers := v1.Group("/customers")
		{
			customers.POST("", customerHandler.Create)
			customers.GET("", customerHandler.List)
			customers.GET("/analytics", customerHandler.Analytics)
			customers.GET("/:id", customerHandler.Get)
			customers.PUT("/:id", customerHandler.Update)
			customers.DELETE("/:id", customerHandler.Delete)
		}

		// 日程预约
		appointmentHandler := api.NewAppointmentHandler()
		appointments := v1.Group("/appointments")
		{
			appointments.POST("", appointmentHandler.Create)
			appointments.GET("", appointmentHandler.List)
			appointments.GET("/:id", appointmentHandler.Get)
			appointments.PUT("/:id", appointmentHandler.Update)
			appointments.DELETE("/:id", appointmentHandler.Delete)
		}

		// 看板任务
		taskHandler := api.NewTaskHandler()
		tasks := v1.Group("/tasks")
		{
			tasks.POST("", taskHandler.Create)
			tasks.GET("", taskHandler.List)
			tasks.POST("/move", taskHandler.Move)
			tasks.GET("/analytics", taskHandler.Analytics)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PUT("/:id", taskHandler.Update)
			tasks.DELETE("/:id", taskHandler.Delete)
		}

		// 日历聚合
		holidayClient := service.NewHolidayClient(cfg.Holiday)
		calendarHandler := api.NewCalendarHandler(holidayClient)
		calendar := v1.Group("/calendar")
		{
			calendar.GET("/events", calendarHandler.Events)
			calendar.GET("/holidays", calendarHandler.Holidays)
		}

		// 仪表盘
		dashboardHandler := api.NewDashboardHandler()
		v1.GET("/dashboard/summary", dashboardHandler.Summary)

		// AI 洞察
		insightClient := service.NewInsightClient(cfg.AI)
		insightHandler := api.NewInsightHandler(insightClient)
		insights := v1.Group("/insights")
		{
			insights.POST("", middleware.RateLimit(5, time.Minute), insightHandler.Generate)
			insights.GET("/history", insightHandler.History)
			insights.DELETE("/history/:id", insightHandler.DeleteHistory)
		}

		// 导出相关
		exportHandler := api.NewExportHandler()
		export := v1.Group("/export")
		{
			export.GET("/csv", exportHandler.ExportCSV)
			export.GET("/json", exportHandler.ExportJSON)
			export.GET("/excel", exportHandler.ExportExcel)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
