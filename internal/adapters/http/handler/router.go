package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hr-records-api/internal/adapters/http/middleware"
	"github.com/ogurasousui/hr-records-api/internal/core/auth"
	"github.com/sirupsen/logrus"
)

// Handlers はルーターに登録するハンドラー群です。
type Handlers struct {
	Employees *EmployeeHandler
	Reports   *ReportHandler
	Reference *ReferenceHandler
	Auth      *AuthHandler
	Health    *HealthHandler
}

// NewRouter は /api 配下のルートを登録した gin エンジンを生成します。
// 社員リソースはすべて認証が必要で、レポートは HR と Manager、更新系は HR に限られます。
func NewRouter(h Handlers, verifier middleware.SessionVerifier, logger logrus.FieldLogger) *gin.Engine {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		middleware.Recovery(logger),
	)

	api := engine.Group("/api")
	api.GET("/health", h.Health.Health)
	api.GET("/ping", h.Health.Ping)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/register", h.Auth.Register)
	authGroup.GET("/verify", h.Auth.Verify)

	employees := api.Group("/employees", middleware.Auth(verifier, logger))

	dashboard := employees.Group("/dashboard")
	dashboard.GET("/stats", h.Reports.DashboardStats)
	dashboard.GET("/recent-activity", h.Reports.RecentActivity)
	dashboard.GET("/department-stats", h.Reports.DashboardDepartmentStats)
	dashboard.GET("/hiring-trends", h.Reports.DashboardHiringTrends)

	reports := employees.Group("/reports", middleware.RequireRole(auth.RoleHR, auth.RoleManager))
	reports.GET("/salary-analysis", h.Reports.SalaryAnalysis)
	reports.GET("/skills-analysis", h.Reports.SkillsAnalysis)
	reports.GET("/tenure-analysis", h.Reports.TenureAnalysis)
	reports.GET("/performance-metrics", h.Reports.PerformanceMetrics)
	reports.GET("/department-stats", h.Reports.DepartmentStats)
	reports.GET("/growth-analytics", h.Reports.GrowthAnalytics)
	reports.GET("/realtime-metrics", h.Reports.RealtimeMetrics)
	reports.GET("/hiring-trends", h.Reports.ReportHiringTrends)

	employees.GET("/notifications/anniversaries", h.Reports.UpcomingAnniversaries)
	employees.GET("/departments", h.Reference.Departments)
	employees.GET("/skills", h.Reference.Skills)

	employees.GET("", h.Employees.List)
	employees.GET("/:id", h.Employees.Get)
	employees.GET("/:id/skills", h.Employees.ListSkills)
	employees.GET("/:id/projects", h.Employees.ListProjects)

	hrOnly := employees.Group("", middleware.RequireRole(auth.RoleHR))
	hrOnly.POST("", h.Employees.Create)
	hrOnly.PUT("/:id", h.Employees.Update)
	hrOnly.DELETE("/:id", h.Employees.Delete)
	hrOnly.POST("/:id/skills", h.Employees.AddSkill)

	engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return engine
}
