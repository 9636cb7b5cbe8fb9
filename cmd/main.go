package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"document-management-server/config"
	_ "document-management-server/docs"
	"document-management-server/internal/handler"
	"document-management-server/internal/repository"
	"document-management-server/internal/security"
	"document-management-server/internal/service"
	"document-management-server/internal/util"
	"document-management-server/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Document Management Server
// @version 1.0
// @description REST API for storing, reviewing and sharing company documents.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name session
func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml configuration")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := util.SetupLogger(cfg.Server.Environment)

	db, err := config.SetupDatabase(cfg.DatabaseConfig)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if cfg.DatabaseConfig.Migrate {
		if err := config.RunMigrations(ctx, db); err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations applied")
	}

	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	resetTokenRepo := repository.NewResetTokenRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	var (
		documentOptions []service.DocumentServiceOption
		userOptions     []service.UserServiceOption
		categoryOptions []service.CategoryServiceOption
	)

	if cfg.RedisConfig.Enabled {
		redisClient, err := config.SetupRedis(&cfg.RedisConfig)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis", "error", err)
			}
		}()
		listCache := repository.NewCacheRepository(redisClient, cfg.RedisConfig.ListTTL)
		documentOptions = append(documentOptions, service.WithListCache(listCache))
		userOptions = append(userOptions, service.WithUserListCache(listCache))
		categoryOptions = append(categoryOptions, service.WithCategoryListCache(listCache))
	}

	if cfg.S3Config.Enabled {
		s3Service, err := service.NewS3Service(ctx, &cfg.S3Config)
		if err != nil {
			logger.Error("failed to create s3 service", "error", err)
			os.Exit(1)
		}
		documentOptions = append(documentOptions, service.WithBlobStorage(s3Service))
	}

	sessions := security.NewSessionManager(cfg.Session, cfg.Server.IsProduction())
	fileValidator := validation.NewFileValidator(cfg.Upload.MaxSizeBytes, cfg.Upload.AllowedTypes, cfg.Upload.VerifyContent)

	activityService := service.NewActivityService(tx, activityRepo)
	notificationService := service.NewNotificationService(tx, notificationRepo)
	permissionService := service.NewPermissionService(tx, permissionRepo, userRepo)
	categoryService := service.NewCategoryService(tx, categoryRepo, permissionService, activityService,
		categoryOptions...)
	departmentService := service.NewDepartmentService(tx, departmentRepo, permissionService, activityService)
	documentService := service.NewDocumentService(tx, documentRepo, categoryService, permissionService,
		fileValidator, activityService, notificationService, documentOptions...)
	authService := service.NewAuthenticationService(tx, userRepo, departmentRepo, resetTokenRepo, sessions,
		service.NewLogDelivery(cfg.Server.IsProduction()), activityService, cfg.PasswordReset.TTL)
	userService := service.NewUserService(tx, userRepo, departmentRepo, permissionService, activityService,
		userOptions...)

	authHandler := handler.NewAuthenticationHandler(authService, sessions)
	documentHandler := handler.NewDocumentHandler(documentService, cfg.Upload.MaxSizeBytes)
	categoryHandler := handler.NewCategoryHandler(categoryService, departmentService)
	userHandler := handler.NewUserHandler(userService, activityService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	srv, router := config.SetupServer(cfg.Server)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(util.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	router.Use(security.SessionMiddleware(sessions, userRepo, tx))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	setupAuthRoutes(router, authHandler)
	setupDocumentRoutes(router, documentHandler)
	setupCategoryRoutes(router, categoryHandler)
	setupUserRoutes(router, userHandler)
	setupNotificationRoutes(router, notificationHandler)

	runServer(ctx, srv, logger)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Get("/reset-password/{token}", h.ValidateResetToken)
		r.Post("/reset-password", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(security.RequireSession)
			r.Get("/me", h.Me)
			r.Put("/password", h.ChangePassword)
		})
	})
}

func setupDocumentRoutes(r chi.Router, h *handler.DocumentHandler) {
	r.Route("/api/documents", func(r chi.Router) {
		r.Use(security.RequireSession)
		r.Get("/", h.ListDocuments)
		r.Post("/", h.UploadDocument)
		r.Get("/pending", h.ListPendingDocuments)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetDocument)
			r.Put("/", h.UpdateDocument)
			r.Delete("/", h.DeleteDocument)
			r.Get("/download", h.DownloadDocument)
			r.Get("/view", h.ViewDocument)
			r.Post("/approve", h.ApproveDocument)
			r.Post("/reject", h.RejectDocument)
		})
	})
}

func setupCategoryRoutes(r chi.Router, h *handler.CategoryHandler) {
	r.Group(func(r chi.Router) {
		r.Use(security.RequireSession)

		r.Route("/api/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Post("/", h.CreateCategory)
			r.Put("/{id}", h.UpdateCategory)
			r.Delete("/{id}", h.DeleteCategory)
		})

		r.Route("/api/departments", func(r chi.Router) {
			r.Get("/", h.ListDepartments)
			r.Post("/", h.CreateDepartment)
		})
	})
}

func setupUserRoutes(r chi.Router, h *handler.UserHandler) {
	r.Group(func(r chi.Router) {
		r.Use(security.RequireSession)

		r.Get("/api/activity", h.MyActivity)

		r.Route("/api/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Put("/me", h.UpdateProfile)
			r.Post("/me/avatar", h.UploadAvatar)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetUser)
				r.Put("/", h.UpdateUser)
				r.Delete("/", h.DeleteUser)
				r.Get("/avatar", h.GetAvatar)
				r.Get("/activity", h.UserActivity)
			})
		})
	})
}

func setupNotificationRoutes(r chi.Router, h *handler.NotificationHandler) {
	r.Route("/api/notifications", func(r chi.Router) {
		r.Use(security.RequireSession)
		r.Get("/", h.ListNotifications)
		r.Get("/unread-count", h.UnreadCount)
		r.Post("/read-all", h.MarkAllRead)
		r.Post("/{id}/read", h.MarkRead)
		r.Delete("/{id}", h.DeleteNotification)
	})
}

func runServer(ctx context.Context, server *http.Server, logger *slog.Logger) {
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server started", "addr", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-signalChannel:
		logger.Info("shutdown signal received", "signal", sig.String())
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		logger.Error("failed to stop server", "error", err)
	} else {
		logger.Info("server stopped")
	}
}
