package app

import (
	"course_platform_backend/internal/config"
	"course_platform_backend/internal/middleware"
	"course_platform_backend/internal/model"

	"course_platform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c, repos)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 手机验证码登录
		phone := public.Group("/auth/phone")
		{
			phone.POST("/send-code", c.auth.RequestPhoneCode)
			phone.POST("/verify", c.auth.PhoneLogin)
		}

		// 联系表单：允许游客提交，登录用户记录归属
		public.POST("/contact", middleware.TryAuthMiddleware(a.Config), c.contact.Submit)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	// 课程目录与学习进度
	rg.GET("/courses", c.course.ListCourses)
	rg.GET("/courses/:courseId", c.course.GetCourse)
	rg.GET("/courses/:courseId/progress", c.course.GetProgress)
	rg.POST("/courses/:courseId/videos/:videoId/complete", c.course.MarkVideoCompleted)

	// 学习位置
	rg.GET("/courses/:courseId/navigation", c.course.GetNavigation)
	rg.PUT("/courses/:courseId/navigation/module/:moduleId", c.course.SelectModule)
	rg.PUT("/courses/:courseId/navigation/video/:videoId", c.course.SelectVideo)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(a.Config), middleware.ActivityMiddleware(repos.user))
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/contacts", c.contact.List)
		admin.DELETE("/contacts/:id", c.contact.Delete)
	}
}
