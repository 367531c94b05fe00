package app

import (
	"context"
	"hirehub_backend/internal/config"
	"hirehub_backend/internal/controller"
	"hirehub_backend/internal/repository"
	"hirehub_backend/internal/service"
	"hirehub_backend/pkg/configwatcher"
	"hirehub_backend/pkg/database"
	"hirehub_backend/pkg/logger"
	"hirehub_backend/pkg/monitoring"
	"hirehub_backend/pkg/security"
	"hirehub_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

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
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	recruiter      *repository.RecruiterRepository
	candidate      *repository.CandidateRepository
	track          *repository.TrackRepository
	vacancy        *repository.VacancyRepository
	candidatePool  *repository.CandidatePoolRepository
	task           *repository.TaskRepository
	quizBlock      *repository.QuizBlockRepository
	quizQuestion   *repository.QuizQuestionRepository
	trackQuizBlock *repository.TrackQuizBlockRepository
	quizSession    *repository.QuizSessionRepository
	quizAnswer     *repository.QuizAnswerRepository
}

type services struct {
	storage   *service.StorageService
	auth      *service.AuthService
	recruiter *service.RecruiterService
	candidate *service.CandidateService
	task      *service.TaskService
	vacancy   *service.VacancyService
	quizFlow  *service.QuizFlowService
	quizAdmin *service.QuizAdminService
}

type controllers struct {
	auth      *controller.AuthController
	recruiter *controller.RecruiterController
	candidate *controller.CandidateController
	task      *controller.TaskController
	vacancy   *controller.VacancyController
	quiz      *controller.QuizController
	quizAdmin *controller.QuizAdminController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		recruiter:      repository.NewRecruiterRepository(db),
		candidate:      repository.NewCandidateRepository(db),
		track:          repository.NewTrackRepository(db),
		vacancy:        repository.NewVacancyRepository(db),
		candidatePool:  repository.NewCandidatePoolRepository(db),
		task:           repository.NewTaskRepository(db),
		quizBlock:      repository.NewQuizBlockRepository(db),
		quizQuestion:   repository.NewQuizQuestionRepository(db),
		trackQuizBlock: repository.NewTrackQuizBlockRepository(db),
		quizSession:    repository.NewQuizSessionRepository(db),
		quizAnswer:     repository.NewQuizAnswerRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.recruiter, cfg)
	s.recruiter = service.NewRecruiterService(repos.recruiter)
	s.candidate = service.NewCandidateService(repos.candidate, s.storage, db)
	s.task = service.NewTaskService(repos.task, repos.recruiter, db)

	s.vacancy = service.NewVacancyService(
		repos.vacancy,
		repos.track,
		repos.candidatePool,
		repos.candidate,
		repos.recruiter,
		s.task,
		rdb,
		db,
	)

	s.quizFlow = service.NewQuizFlowService(
		repos.quizSession,
		repos.quizAnswer,
		repos.quizQuestion,
		repos.quizBlock,
		repos.trackQuizBlock,
		repos.track,
		db,
		time.Duration(cfg.Quiz.SessionMinutes)*time.Minute,
	)

	s.quizAdmin = service.NewQuizAdminService(repos.quizBlock, repos.quizQuestion, repos.trackQuizBlock, db)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		recruiter: controller.NewRecruiterController(s.recruiter),
		candidate: controller.NewCandidateController(s.candidate),
		task:      controller.NewTaskController(s.task),
		vacancy:   controller.NewVacancyController(s.vacancy),
		quiz:      controller.NewQuizController(s.quizFlow),
		quizAdmin: controller.NewQuizAdminController(s.quizAdmin),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000 // 每分钟100000次请求
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	// 过期测评会话回收
	go func() {
		ticker := time.NewTicker(time.Duration(a.Config.Quiz.SweepSeconds) * time.Second)
		for range ticker.C {
			count, err := s.quizFlow.SweepExpiredSessions(100)
			if err != nil {
				logger.Log.Error("expired session sweep error", zap.Error(err))
				continue
			}
			if count > 0 {
				logger.Log.Info("Expired quiz sessions finalized", zap.Int("count", count))
			}
		}
	}()

	// 配置热更新
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		logger.Log.Info("Config reloaded")
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

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
	services := app.initServices(repos, cfg, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("hirehub-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

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

	// 关闭服务
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
