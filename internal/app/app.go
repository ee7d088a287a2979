package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"studio_backend/docs"
	"studio_backend/internal/auth"
	"studio_backend/internal/config"
	"studio_backend/internal/handlers"
	"studio_backend/internal/logger"
	"studio_backend/internal/media"
	"studio_backend/internal/middleware"
	"studio_backend/internal/models"
	"studio_backend/internal/repositories"
	"studio_backend/internal/routes"
	"studio_backend/internal/services"
	"studio_backend/internal/storage"
	"studio_backend/internal/validator"
	"studio_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

// Application is a configured router plus the resources it owns.
type Application struct {
	Router *gin.Engine
	Blobs  storage.BlobStore
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	defer logger.Sync()
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	defer sqlDB.Close()
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	if err := gormDB.AutoMigrate(models.All()...); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, svc, err := Build(ctx, cfg, gormDB, prometheus.NewRegistry())
	if err != nil {
		logger.Fatal("Failed to build application", "error", err)
	}
	defer func() {
		if err := storage.Close(application.Blobs); err != nil {
			logger.Warn("Failed to close storage", "error", err)
		}
	}()

	if err := seedFirstAdmin(ctx, gormDB, svc.AuthService, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}
	startWorkers(ctx, cfg, gormDB, application.Blobs)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Fatal("Server startup error", "error", err)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// Build wires storage, services, handlers and routes. reg receives the
// application metrics and is served at /metrics.
func Build(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, reg *prometheus.Registry) (*Application, *services.ServiceContainer, error) {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	observer, err := storage.NewPrometheusObserver(cfg.Metrics.Namespace, reg)
	if err != nil {
		return nil, nil, fmt.Errorf("storage metrics: %w", err)
	}
	blobs, err := storage.NewStorage(ctx, storageConfig(cfg), observer)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return nil, nil, err
	}

	serviceContainer := services.NewServiceContainer(services.Dependencies{
		Blobs:    blobs,
		Acceptor: media.NewAcceptor(cfg.Upload.MaxSize, media.NewExtensionSet(cfg.Upload.AllowedExtensions...)),
		MaxFiles: cfg.Upload.MaxFiles,
		Tokens:   tokens,
	})
	appHandlers := handlers.NewAppHandlers(serviceContainer, validator.New())

	httpMetrics, err := middleware.NewHTTPMetrics(cfg.Metrics.Namespace, reg)
	if err != nil {
		return nil, nil, fmt.Errorf("http metrics: %w", err)
	}

	ginRouter := initializeGinRouter(cfg, gormDB, httpMetrics)
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AdminAuthMiddleware(tokens))

	ginRouter.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	if !cfg.IsProduction() {
		docs.SwaggerInfo.BasePath = "/"
		ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if cfg.Storage.Type == "local" {
		ginRouter.StaticFS(cfg.Storage.PublicPath, gin.Dir(cfg.Storage.BasePath, false))
	}

	return &Application{Router: ginRouter, Blobs: blobs}, serviceContainer, nil
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, httpMetrics *middleware.HTTPMetrics) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(httpMetrics.Middleware())
	router.Use(middleware.CORS(cfg.Server.FrontendURLs))
	router.Use(middleware.BodyLimitMiddleware(cfg.BodyLimit()))
	router.Use(middleware.DBMiddleware(db))
	router.MaxMultipartMemory = 32 << 20
	return router
}

func storageConfig(cfg *config.Config) storage.Config {
	return storage.Config{
		Type:            cfg.Storage.Type,
		BasePath:        cfg.Storage.BasePath,
		PublicPath:      cfg.Storage.PublicPath,
		BaseURL:         cfg.Storage.BaseURL,
		Folder:          cfg.Storage.Folder,
		Bucket:          cfg.Storage.Bucket,
		Region:          cfg.Storage.Region,
		AccessKey:       cfg.Storage.AccessKey,
		SecretKey:       cfg.Storage.SecretKey,
		Endpoint:        cfg.Storage.Endpoint,
		CredentialsFile: cfg.Storage.CredentialsFile,
		PublicRead:      cfg.Storage.PublicRead,
	}
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.Database.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	logLevel := gormlogger.Warn
	if cfg.IsProduction() {
		logLevel = gormlogger.Error
	}
	return gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(logLevel)})
}

func startWorkers(ctx context.Context, cfg *config.Config, db *gorm.DB, blobs storage.BlobStore) {
	local, ok := storage.AsLocal(blobs)
	if !ok || cfg.Storage.OrphanSweepInterval <= 0 {
		return
	}
	workers.NewOrphanWorker(db, repositories.NewPortfolioRepository(), local, blobs,
		cfg.Storage.OrphanSweepInterval, cfg.Storage.OrphanGrace).Start(ctx)
	logger.Info("Orphan worker started", "interval", cfg.Storage.OrphanSweepInterval)
}

func seedFirstAdmin(ctx context.Context, db *gorm.DB, authService services.AuthService, cfg *config.Config) error {
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		logger.Warn("ADMIN_EMAIL or ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	created, err := authService.EnsureAdmin(ctx, db, cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Created first admin user", "email", cfg.Admin.Email)
	} else {
		logger.Info("Admin user already exists. Skipping creation.", "email", cfg.Admin.Email)
	}
	return nil
}
