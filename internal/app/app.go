package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course_platform_backend/internal/config"
	"course_platform_backend/internal/controller"
	"course_platform_backend/internal/repository"
	"course_platform_backend/internal/service"
	"course_platform_backend/internal/util"
	"course_platform_backend/pkg/database"
	"course_platform_backend/pkg/logger"
	"course_platform_backend/pkg/monitoring"
	"course_platform_backend/pkg/security"
	"course_platform_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	course   *repository.CourseRepository
	progress *repository.ProgressRepository
	contact  *repository.ContactRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	catalog    *service.CatalogService
	progress   *service.ProgressService
	navigation *service.NavigationService
	contact    *service.ContactService
	user       *service.UserService
}

type controllers struct {
	auth    *controller.AuthController
	course  *controller.CourseController
	contact *controller.ContactController
	user    *controller.UserController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 热更新可在线调整的配置项并通知回调
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config.Contact = cfg.Contact
	a.Config.CORS = cfg.CORS
	a.Config.RateLimit = cfg.RateLimit
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Runtime config applied")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		course:   repository.NewCourseRepository(db),
		progress: repository.NewProgressRepository(db),
		contact:  repository.NewContactRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, rdb, cfg)
	s.catalog = service.NewCatalogService(repos.course, rdb)
	s.progress = service.NewProgressService(repos.progress, rdb)
	s.navigation = service.NewNavigationService(rdb)
	s.contact = service.NewContactService(repos.contact, cfg)
	s.user = service.NewUserService(repos.user, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		course:  controller.NewCourseController(s.catalog, s.progress, s.navigation),
		contact: controller.NewContactController(s.contact),
		user:    controller.NewUserController(s.user),
		health:  controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("course-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
