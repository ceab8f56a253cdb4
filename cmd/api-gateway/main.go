package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/edustack/school-api/api/swagger"
	"github.com/edustack/school-api/internal/handler"
	"github.com/edustack/school-api/internal/llm"
	"github.com/edustack/school-api/internal/middleware"
	"github.com/edustack/school-api/internal/models"
	"github.com/edustack/school-api/internal/repository"
	"github.com/edustack/school-api/internal/service"
	"github.com/edustack/school-api/pkg/cache"
	"github.com/edustack/school-api/pkg/config"
	"github.com/edustack/school-api/pkg/database"
	"github.com/edustack/school-api/pkg/export"
	"github.com/edustack/school-api/pkg/logger"
	corsmiddleware "github.com/edustack/school-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edustack/school-api/pkg/middleware/requestid"
)

// @title EduStack School API
// @version 1.0.0
// @description Multi-tenant school management core: fee ledger and AI content generation
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The ledger caches are an optimisation; the API stays up without them.
		logr.Sugar().Warnw("redis unavailable, running without cache", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	// Repositories.
	userRepo := repository.NewUserRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	catalogRepo := repository.NewFeesCatalogRepository(db)
	masterRepo := repository.NewFeesMasterRepository(db)
	ledgerRepo := repository.NewFeesLedgerRepository(db)
	reminderRepo := repository.NewFeesReminderRepository(db)
	syllabusRepo := repository.NewSyllabusRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// Services.
	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, cfg.JWT, validate, logr)
	catalogSvc := service.NewFeesCatalogService(catalogRepo, masterRepo, validate, logr)
	ledgerSvc := service.NewFeesLedgerService(
		ledgerRepo, masterRepo, catalogRepo, studentRepo, reminderRepo, cacheRepo,
		cfg.Fees.DueCacheTTL, cfg.Fees.PreviewCacheTTL, validate, logr,
	)

	aiClient := llm.FromConfig(cfg.AI, logr).WithObserver(metricsSvc)
	if !aiClient.Configured() {
		logr.Warn("no AI provider configured, generation endpoints will return 503")
	} else {
		logr.Sugar().Infow("ai providers configured", "order", aiClient.ProviderNames())
	}
	contentSvc := service.NewAIContentService(aiClient, syllabusRepo, validate, logr)

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	catalogHandler := handler.NewFeesCatalogHandler(catalogSvc)
	feesHandler := handler.NewFeesHandler(ledgerSvc, metricsSvc, export.NewReceiptRenderer())
	aiHandler := handler.NewAIHandler(contentSvc, metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	authed.GET("/auth/me", authHandler.Me)

	adminOnly := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleSchoolAdmin)
	staff := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleSchoolAdmin, models.RoleTeacher)

	catalog := authed.Group("/fees")
	{
		catalog.GET("/types", staff, catalogHandler.ListTypes)
		catalog.POST("/types", adminOnly, catalogHandler.CreateType)
		catalog.PUT("/types/:id", adminOnly, catalogHandler.UpdateType)

		catalog.GET("/groups", staff, catalogHandler.ListGroups)
		catalog.POST("/groups", adminOnly, catalogHandler.CreateGroup)
		catalog.PUT("/groups/:id", adminOnly, catalogHandler.UpdateGroup)

		catalog.GET("/discounts", staff, catalogHandler.ListDiscounts)
		catalog.POST("/discounts", adminOnly, catalogHandler.CreateDiscount)
		catalog.PUT("/discounts/:id", adminOnly, catalogHandler.UpdateDiscount)

		catalog.GET("/masters", staff, catalogHandler.ListMasters)
		catalog.POST("/masters", adminOnly, catalogHandler.CreateMaster)
		catalog.PUT("/masters/:id", adminOnly, catalogHandler.UpdateMaster)
		catalog.DELETE("/masters/:id", adminOnly, catalogHandler.DeactivateMaster)
	}

	fees := authed.Group("/fees")
	{
		fees.POST("/assignments/quick", adminOnly, feesHandler.QuickAssign)
		fees.GET("/due", feesHandler.ListDueFees)

		fees.GET("/payments", staff, feesHandler.ListPayments)
		fees.POST("/payments", adminOnly, feesHandler.CollectPayment)
		fees.POST("/payments/offline", adminOnly, feesHandler.RecordOfflinePayment)
		fees.GET("/payments/:id", staff, feesHandler.GetPayment)
		fees.PUT("/payments/:id/verify", adminOnly, feesHandler.VerifyPayment)
		fees.PUT("/payments/:id/reject", adminOnly, feesHandler.RejectPayment)
		fees.GET("/payments/:id/receipt", staff, feesHandler.Receipt)

		fees.GET("/carry-forward/preview", adminOnly, feesHandler.PreviewCarryForward)
		fees.POST("/carry-forward", adminOnly, feesHandler.CarryForward)

		fees.POST("/reminders", adminOnly, feesHandler.SendReminders)
		fees.GET("/reminders/student/:id", middleware.RBAC("SUPERADMIN", "SCHOOL_ADMIN", "SELF"), feesHandler.ListStudentReminders)
	}

	ai := authed.Group("/ai", staff)
	{
		ai.POST("/syllabus", aiHandler.GenerateSyllabus)
		ai.GET("/syllabus", aiHandler.ListSyllabi)
		ai.GET("/syllabus/:id", aiHandler.GetSyllabus)
		ai.PUT("/syllabus/:id/publish", aiHandler.PublishSyllabus)
		ai.GET("/syllabus/:id/lessons", aiHandler.ListLessons)
		ai.POST("/lessons", aiHandler.GenerateLesson)
		ai.POST("/assessment-plan", aiHandler.GenerateAssessmentPlan)
		ai.POST("/exam-prep", aiHandler.GenerateExamPrep)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
	if err := cacheRepo.Close(); err != nil {
		logr.Sugar().Warnw("closing redis failed", "error", err)
	}
}
