package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ROYBRUNO81/Course-Planner/config"
	"github.com/ROYBRUNO81/Course-Planner/internal/api/handler"
	"github.com/ROYBRUNO81/Course-Planner/internal/api/middleware"
	"github.com/ROYBRUNO81/Course-Planner/pkg/jwt"
	"github.com/ROYBRUNO81/Course-Planner/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(5 << 20)) // ICS 课表上传上限 5MB

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口限速）
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 课程目录模块（变更操作仅管理员）
			courses := authorized.Group("/courses")
			{
				courses.GET("", h.Course.List)
				courses.GET("/:code", h.Course.Get)
				courses.POST("", middleware.RoleAuth("admin"), h.Course.Create)
				courses.PATCH("/:code", middleware.RoleAuth("admin"), h.Course.Update)
				courses.POST("/import", middleware.RoleAuth("admin"), h.Course.Import)
			}

			// 专业模块
			majors := authorized.Group("/majors")
			{
				majors.GET("", h.Major.List)
				majors.GET("/:id", h.Major.Get)
				majors.POST("", middleware.RoleAuth("admin"), h.Major.Create)
				majors.POST("/:id/courses", middleware.RoleAuth("admin"), h.Major.AddCourse)
			}

			// 学生模块（均为本人操作）
			students := authorized.Group("/students")
			{
				students.GET("/me", h.Student.GetMe)
				students.PATCH("/me", h.Student.UpdateMe)
				students.PUT("/me/major", h.Student.AssignMajor)
				students.PUT("/me/courses", h.Student.SetCourseStatus)
				students.DELETE("/me/courses/:code", h.Student.RemoveCourse)
				students.GET("/me/progress", h.Student.GetProgress)
				students.POST("/me/timetable", h.Student.ImportTimetable)
			}

			// 规划模块
			plan := authorized.Group("/plan")
			{
				plan.POST("/generate", h.Plan.Generate)
				plan.GET("", h.Plan.Get)
				plan.DELETE("", h.Plan.Clear)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/plan", h.Export.ExportPlan)
			}
		}
	}

	return r
}
