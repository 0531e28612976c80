package router

import (
	"time"

	"github.com/bagy391/budget-tracker/api"
	"github.com/bagy391/budget-tracker/config"
	_ "github.com/bagy391/budget-tracker/docs"
	"github.com/bagy391/budget-tracker/middleware"

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
	// 请求ID，便于日志串联
	r.Use(middleware.RequestID())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 登录类接口限流：每 IP 每分钟 10 次
	authLimit := middleware.AuthRateLimit(10, time.Minute)

	v1 := r.Group("/api/v1")
	{
		authHandler := api.NewAuthHandler(cfg)
		passwordResetHandler := api.NewPasswordResetHandler(cfg)

		// 认证相关路由（无需登录）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authLimit, authHandler.Register)
			auth.POST("/login", authLimit, authHandler.Login)

			// 密码重置
			auth.POST("/password/request-reset", authLimit, passwordResetHandler.RequestReset)
			auth.GET("/password/verify-token", passwordResetHandler.VerifyToken)
			auth.POST("/password/reset", passwordResetHandler.ResetPassword)
		}

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)
			authorized.PUT("/me/family", authHandler.SelectFamily)

			// 家庭及成员管理
			familyHandler := api.NewFamilyHandler(cfg)
			families := authorized.Group("/families")
			{
				families.POST("", familyHandler.Create)
				families.GET("", familyHandler.List)
				families.DELETE("/:id", familyHandler.Delete)

				families.GET("/:id/members", familyHandler.ListMembers)
				families.POST("/:id/members", familyHandler.AddMember)
				families.PUT("/:id/members/:uid/role", familyHandler.UpdateMemberRole)
				families.DELETE("/:id/members/:uid", familyHandler.RemoveMember)

				// 消费记录
				expenseHandler := api.NewExpenseHandler()
				families.POST("/:id/expenses", expenseHandler.Create)
				families.GET("/:id/expenses", expenseHandler.List)
				families.GET("/:id/expenses/:eid", expenseHandler.Get)
				families.PUT("/:id/expenses/:eid", expenseHandler.Update)
				families.DELETE("/:id/expenses/:eid", expenseHandler.Delete)

				// 收入记录
				incomeHandler := api.NewIncomeHandler()
				families.POST("/:id/incomes", incomeHandler.Create)
				families.GET("/:id/incomes", incomeHandler.List)
				families.PUT("/:id/incomes/:iid", incomeHandler.Update)
				families.DELETE("/:id/incomes/:iid", incomeHandler.Delete)

				// 类别
				categoryHandler := api.NewCategoryHandler()
				families.GET("/:id/categories", categoryHandler.List)
				families.POST("/:id/categories", categoryHandler.Create)
				families.PUT("/:id/categories/:cid", categoryHandler.Update)
				families.DELETE("/:id/categories/:cid", categoryHandler.Delete)

				// 支付方式
				paymentMethodHandler := api.NewPaymentMethodHandler()
				families.GET("/:id/payment-methods", paymentMethodHandler.List)
				families.POST("/:id/payment-methods", paymentMethodHandler.Create)
				families.PUT("/:id/payment-methods/:pid", paymentMethodHandler.Update)
				families.DELETE("/:id/payment-methods/:pid", paymentMethodHandler.Delete)

				// 预算
				budgetHandler := api.NewBudgetHandler()
				families.POST("/:id/budget", budgetHandler.Save)
				families.GET("/:id/budget", budgetHandler.Current)
				families.GET("/:id/budget/history", budgetHandler.History)

				// 统计
				statisticsHandler := api.NewStatisticsHandler()
				families.GET("/:id/statistics/overview", statisticsHandler.Overview)
				families.GET("/:id/statistics/dashboard", statisticsHandler.Dashboard)

				// 导出
				exportHandler := api.NewExportHandler()
				families.GET("/:id/export/csv", exportHandler.ExportCSV)
				families.GET("/:id/export/excel", exportHandler.ExportExcel)
			}

			// 财富资产（归属用户，家庭上下文由 family_id 参数给出）
			wealthHandler := api.NewWealthHandler()
			wealth := authorized.Group("/wealth")
			{
				wealth.GET("", wealthHandler.List)
				wealth.GET("/summary", wealthHandler.Summary)
				wealth.POST("", wealthHandler.Create)
				wealth.PUT("/:id", wealthHandler.Update)
				wealth.DELETE("/:id", wealthHandler.Delete)
			}
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
