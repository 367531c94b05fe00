package app

import (
	"hirehub_backend/internal/config"
	"hirehub_backend/internal/middleware"
	"hirehub_backend/internal/model"

	"hirehub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerRecruiterRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 机器人侧只读方向列表
		public.GET("/tracks", c.vacancy.ListTracks)
		public.GET("/tracks/:id", c.vacancy.GetTrack)

		// 候选人自助接口，由 Telegram 机器人代为调用
		public.POST("/candidates", c.candidate.CreateCandidate)
		public.GET("/candidates/by-telegram/:telegramId", c.candidate.GetCandidateByTelegram)
		public.POST("/candidates/:id/resume", c.candidate.UploadResume)
	}

	// 测评流程接口，候选人答题无需登录
	quiz := router.Group("/api/quiz")
	{
		quiz.POST("/start", c.quiz.StartQuiz)
		quiz.POST("/answer", c.quiz.SubmitAnswer)
		quiz.GET("/sessions/:id/results", c.quiz.GetResults)
		quiz.GET("/attempts", c.quiz.GetAttempts)
	}
}

func (a *App) registerRecruiterRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// 招聘官账号
	rg.GET("/recruiters", c.recruiter.ListRecruiters)
	rg.GET("/recruiters/:id", c.recruiter.GetRecruiter)
	rg.PUT("/recruiters/:id", middleware.RoleMiddleware(model.RoleAdmin), c.recruiter.UpdateRecruiter)
	rg.PATCH("/recruiters/:id/disable", middleware.RoleMiddleware(model.RoleAdmin), c.recruiter.DisableRecruiter)
	rg.POST("/recruiters/:id/reset-password", middleware.RoleMiddleware(model.RoleAdmin), c.recruiter.ResetPassword)

	// 候选人管理
	rg.GET("/candidates", c.candidate.ListCandidates)
	rg.GET("/candidates/:id", c.candidate.GetCandidate)
	rg.PUT("/candidates/:id", c.candidate.UpdateCandidate)
	rg.DELETE("/candidates/:id", middleware.RoleMiddleware(model.RoleAdmin), c.candidate.DeleteCandidate)

	// 方向管理
	rg.POST("/tracks", middleware.RoleMiddleware(model.RoleAdmin), c.vacancy.CreateTrack)
	rg.PUT("/tracks/:id", middleware.RoleMiddleware(model.RoleAdmin), c.vacancy.UpdateTrack)

	// 职位管理
	rg.POST("/vacancies", c.vacancy.CreateVacancy)
	rg.GET("/vacancies", c.vacancy.ListVacancies)
	rg.GET("/vacancies/:id", c.vacancy.GetVacancy)
	rg.POST("/vacancies/:id/activate", c.vacancy.ActivateVacancy)
	rg.POST("/vacancies/:id/abort", c.vacancy.AbortVacancy)
	rg.GET("/vacancies/:id/stats", c.vacancy.GetVacancyStats)
	rg.GET("/vacancies/:id/with-candidates", c.vacancy.GetVacancyWithCandidates)

	// 候选人初筛
	rg.GET("/vacancies/:id/next-candidate", c.vacancy.NextCandidate)
	rg.POST("/vacancies/:id/candidates/:candidateId/select", c.vacancy.SelectCandidate)
	rg.POST("/vacancies/:id/candidates/:candidateId/skip", c.vacancy.SkipCandidate)
	rg.POST("/vacancies/:id/candidates/:candidateId/reject", c.vacancy.RejectCandidate)

	// 面试跟进
	rg.PATCH("/vacancies/:id/pool/:poolId/status", c.vacancy.UpdatePoolStatus)
	rg.POST("/vacancies/:id/pool/:poolId/feedback", c.vacancy.SubmitInterviewFeedback)
	rg.GET("/vacancies/:id/pool/:poolId/feedback", c.vacancy.GetInterviewFeedback)

	// 任务看板
	rg.GET("/tasks", c.task.GetBoard)
	rg.POST("/tasks", c.task.CreateTask)
	rg.POST("/tasks/:id/assign", c.task.AssignTask)
	rg.POST("/tasks/:id/complete", c.task.CompleteTask)
	rg.POST("/tasks/:id/reject", c.task.RejectTask)
	rg.PATCH("/tasks/:id", c.task.UpdateTaskStatus)
	rg.GET("/task-types", c.task.ListTaskTypes)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		// 题库管理
		quiz := admin.Group("/quiz")
		{
			quiz.POST("/blocks", c.quizAdmin.CreateBlock)
			quiz.GET("/blocks", c.quizAdmin.ListBlocks)
			quiz.PATCH("/blocks/:id/active", c.quizAdmin.SetBlockActive)
			quiz.POST("/questions", c.quizAdmin.CreateQuestion)
			quiz.GET("/questions", c.quizAdmin.ListQuestions)
			quiz.PATCH("/questions/:id/active", c.quizAdmin.SetQuestionActive)
			quiz.POST("/track-blocks", c.quizAdmin.LinkTrackBlock)
			quiz.GET("/tracks/:trackId/blocks", c.quizAdmin.GetTrackBlocks)
			quiz.DELETE("/tracks/:trackId/blocks/:blockId", c.quizAdmin.UnlinkTrackBlock)
		}

		admin.POST("/task-types", c.task.CreateTaskType)
	}
}
