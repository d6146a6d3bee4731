package router

import (
	"time"

	"fabra/config"
	"fabra/internal/domain"
	"fabra/internal/handler"
	"fabra/internal/middleware"
	"fabra/internal/repository"
	"fabra/internal/service"
	"fabra/internal/ws"
	"fabra/pkg/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, store storage.Client, log *zap.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(100, 60*time.Second)))

	// Repositories
	employeeRepo := repository.NewEmployeeRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	rushOrderRepo := repository.NewRushOrderRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	brokenPartRepo := repository.NewBrokenPartRepository(db)
	supplyOrderRepo := repository.NewSupplyOrderRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	notifyHub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, employeeRepo)
	notifSvc := service.NewNotificationService(notificationRepo, notifyHub, log)
	messageSvc := service.NewMessageService(messageRepo, log)
	planningSvc := service.NewPlanningService(&cfg.Planning, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, auditRepo, log)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc, auditRepo)
	employeeHandler := handler.NewEmployeeHandler(employeeRepo)
	projectHandler := handler.NewProjectHandler(projectRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, employeeRepo, notifSvc, log)
	rushOrderHandler := handler.NewRushOrderHandler(rushOrderRepo, employeeRepo, messageSvc, notifSvc, log)
	brokenPartHandler := handler.NewBrokenPartHandler(brokenPartRepo, employeeRepo, notifSvc, log)
	supplyOrderHandler := handler.NewSupplyOrderHandler(supplyOrderRepo, employeeRepo, notifSvc, log)
	notificationHandler := handler.NewNotificationHandler(notifSvc)
	uploadHandler := handler.NewUploadHandler(store)
	adminHandler := handler.NewAdminHandler(store, cfg.Storage.Buckets, log)
	planningHandler := handler.NewPlanningHandler(planningSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)
	managerMw := middleware.RequireRole(domain.RoleManager, domain.RoleAdmin)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", employeeHandler.Me)
			me.GET("/notifications", notificationHandler.List)
			me.PUT("/notifications/:id/read", notificationHandler.MarkRead)
			me.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
		}

		employees := api.Group("/employees")
		employees.Use(authMw)
		{
			employees.GET("", employeeHandler.List)
			employees.PUT("/:id/role", middleware.RequireRole(domain.RoleAdmin), employeeHandler.SetRole)
		}

		projects := api.Group("/projects")
		projects.Use(authMw)
		{
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.POST("", managerMw, projectHandler.Create)
			projects.POST("/:id/phases", managerMw, projectHandler.AddPhase)
			projects.PUT("/phases/:phase_id/status", projectHandler.SetPhaseStatus)
		}

		tasks := api.Group("/tasks")
		tasks.Use(authMw)
		{
			tasks.GET("", taskHandler.List)
			tasks.GET("/today", taskHandler.Today)
			tasks.GET("/:id", taskHandler.Get)
			tasks.POST("", managerMw, taskHandler.Create)
			tasks.POST("/:id/assign", managerMw, taskHandler.Assign)
			tasks.PUT("/:id/status", taskHandler.SetStatus)
			tasks.DELETE("/:id", managerMw, taskHandler.Delete)
		}

		rush := api.Group("/rush-orders")
		rush.Use(authMw)
		{
			rush.GET("", rushOrderHandler.List)
			rush.GET("/:id", rushOrderHandler.Get)
			rush.POST("", rushOrderHandler.Create)
			rush.POST("/:id/assign", managerMw, rushOrderHandler.Assign)
			rush.POST("/:id/complete", rushOrderHandler.Complete)
			rush.POST("/:id/cancel", managerMw, rushOrderHandler.Cancel)
			rush.GET("/:id/messages", rushOrderHandler.ListMessages)
			rush.POST("/:id/messages", rushOrderHandler.PostMessage)
			rush.PUT("/:id/messages/read", rushOrderHandler.MarkMessagesRead)
			rush.GET("/:id/messages/unread-count", rushOrderHandler.UnreadCount)
		}

		parts := api.Group("/broken-parts")
		parts.Use(authMw)
		{
			parts.GET("", brokenPartHandler.List)
			parts.POST("", brokenPartHandler.Report)
			parts.PUT("/:id/status", managerMw, brokenPartHandler.SetStatus)
		}

		supply := api.Group("/supply-orders")
		supply.Use(authMw)
		{
			supply.GET("", supplyOrderHandler.List)
			supply.GET("/:id", supplyOrderHandler.Get)
			supply.POST("", managerMw, supplyOrderHandler.Create)
			supply.PUT("/:id/status", managerMw, supplyOrderHandler.SetStatus)
		}

		api.POST("/uploads/part-photo", authMw, uploadHandler.UploadPartPhoto)
		api.POST("/planning/daily", authMw, managerMw, planningHandler.GenerateDailyPlan)

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.RequireRole(domain.RoleAdmin))
		{
			admin.POST("/storage/buckets", adminHandler.ProvisionBuckets)
			admin.POST("/database/init", adminHandler.InitDatabase)
		}
	}

	r.GET("/ws/notifications", ws.UpgradeNotificationWS(&cfg.JWT, notifyHub))

	return r
}
