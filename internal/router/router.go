package router

import (
	"net/http"
	"time"

	"endowal/config"
	"endowal/internal/authz"
	"endowal/internal/domain"
	"endowal/internal/handler"
	"endowal/internal/middleware"
	"endowal/internal/repository"
	"endowal/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	bucketRepo := repository.NewBucketRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	lineItemRepo := repository.NewLineItemRepository(db)

	resolver := authz.NewResolver(db)
	authSvc := service.NewAuthService(cfg, userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, userRepo)
	userHandler := handler.NewUserHandler(userRepo, resolver)
	classroomHandler := handler.NewClassroomHandler(classroomRepo, resolver)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentRepo, resolver)
	assignmentHandler := handler.NewAssignmentHandler(assignmentRepo, resolver)
	walletHandler := handler.NewWalletHandler(walletRepo, resolver)
	bucketHandler := handler.NewBucketHandler(bucketRepo, resolver)
	ledgerHandler := handler.NewLedgerHandler(ledgerRepo, resolver)
	submissionHandler := handler.NewSubmissionHandler(submissionRepo, resolver)
	lineItemHandler := handler.NewLineItemHandler(lineItemRepo, resolver)

	authMw := middleware.AuthRequired(&cfg.JWT, userRepo)
	staffMw := middleware.RequireRole(domain.RoleTeacher, domain.RoleAdmin)
	adminMw := middleware.RequireRole(domain.RoleAdmin)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", authMw, authHandler.Me)
		}

		users := api.Group("/users", authMw)
		{
			users.GET("", adminMw, userHandler.List)
			users.POST("", adminMw, userHandler.Create)
			users.GET("/:id", userHandler.Get)
			users.PATCH("/:id", userHandler.Update)
			users.DELETE("/:id", adminMw, userHandler.Delete)
		}

		classrooms := api.Group("/classrooms", authMw)
		{
			classrooms.GET("", classroomHandler.List)
			classrooms.POST("", staffMw, classroomHandler.Create)
			classrooms.GET("/:id", classroomHandler.Get)
			classrooms.PATCH("/:id", staffMw, classroomHandler.Update)
			classrooms.DELETE("/:id", staffMw, classroomHandler.Delete)
		}

		enrollments := api.Group("/enrollments", authMw)
		{
			enrollments.GET("", enrollmentHandler.List)
			enrollments.POST("", staffMw, enrollmentHandler.Create)
			enrollments.GET("/:id", enrollmentHandler.Get)
			enrollments.PATCH("/:id", staffMw, enrollmentHandler.Update)
			enrollments.DELETE("/:id", staffMw, enrollmentHandler.Delete)
		}

		assignments := api.Group("/assignments", authMw)
		{
			assignments.GET("", assignmentHandler.List)
			assignments.POST("", staffMw, assignmentHandler.Create)
			assignments.GET("/:id", assignmentHandler.Get)
			assignments.PATCH("/:id", staffMw, assignmentHandler.Update)
			assignments.DELETE("/:id", staffMw, assignmentHandler.Delete)
		}

		wallets := api.Group("/wallets", authMw)
		{
			wallets.GET("", walletHandler.List)
			wallets.POST("", staffMw, walletHandler.Create)
			wallets.GET("/:id", walletHandler.Get)
			wallets.PATCH("/:id", staffMw, walletHandler.Update)
			wallets.DELETE("/:id", staffMw, walletHandler.Delete)
		}

		buckets := api.Group("/buckets", authMw)
		{
			buckets.GET("", bucketHandler.List)
			buckets.POST("", bucketHandler.Create)
			buckets.GET("/:id", bucketHandler.Get)
			buckets.PATCH("/:id", bucketHandler.Update)
			buckets.DELETE("/:id", bucketHandler.Delete)
		}

		entries := api.Group("/ledger-entries", authMw)
		{
			entries.GET("", ledgerHandler.List)
			entries.POST("", staffMw, ledgerHandler.Create)
			entries.GET("/:id", ledgerHandler.Get)
			entries.PATCH("/:id", staffMw, ledgerHandler.Update)
			entries.DELETE("/:id", staffMw, ledgerHandler.Delete)
		}

		submissions := api.Group("/budget-submissions", authMw)
		{
			submissions.GET("", submissionHandler.List)
			submissions.POST("", submissionHandler.Create)
			submissions.GET("/:id", submissionHandler.Get)
			submissions.PATCH("/:id", submissionHandler.Update)
			submissions.DELETE("/:id", submissionHandler.Delete)
		}

		lineItems := api.Group("/budget-line-items", authMw)
		{
			lineItems.GET("", lineItemHandler.List)
			lineItems.POST("", lineItemHandler.Create)
			lineItems.GET("/:id", lineItemHandler.Get)
			lineItems.PATCH("/:id", lineItemHandler.Update)
			lineItems.DELETE("/:id", lineItemHandler.Delete)
		}
	}

	return r
}
