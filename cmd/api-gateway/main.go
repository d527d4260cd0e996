package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/data-migration-api/api/swagger"
	"github.com/noah-isme/data-migration-api/internal/handler"
	"github.com/noah-isme/data-migration-api/internal/middleware"
	"github.com/noah-isme/data-migration-api/internal/models"
	"github.com/noah-isme/data-migration-api/internal/repository"
	"github.com/noah-isme/data-migration-api/internal/service"
	"github.com/noah-isme/data-migration-api/pkg/cache"
	"github.com/noah-isme/data-migration-api/pkg/config"
	"github.com/noah-isme/data-migration-api/pkg/database"
	"github.com/noah-isme/data-migration-api/pkg/export"
	"github.com/noah-isme/data-migration-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/data-migration-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/data-migration-api/pkg/middleware/requestid"
)

// @title Data Migration Workflow API
// @version 1.0.0
// @description Internal approval workflow for data migration items
// @BasePath /
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Reports.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, report caching disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Reports.CacheTTL, logr, true)
		}
	}

	itemRepo := repository.NewItemRepository(db)
	userRepo := repository.NewUserRepository(db)

	authSvc := service.NewAuthService(cfg.JWT.Secret)
	itemOpts := []service.ItemServiceOption{}
	if cacheSvc != nil {
		itemOpts = append(itemOpts, service.WithReportInvalidator(cacheSvc))
	}
	itemSvc := service.NewItemService(itemRepo, userRepo, logr, itemOpts...)
	dashboardSvc := service.NewDashboardService(itemRepo, userRepo, logr, service.DashboardServiceConfig{
		RecentItemsLimit: cfg.Dashboard.RecentItemsLimit,
	})
	reportSvc := service.NewReportService(itemRepo, export.NewPDFExporter(), cacheSvc, cfg.Reports.CacheTTL, logr)

	itemHandler := handler.NewItemHandler(itemSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health-check", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authed := r.Group(cfg.APIPrefix)
	authed.Use(middleware.JWT(authSvc))

	authed.GET("/dashboard", dashboardHandler.Summary)

	items := authed.Group("/data-migration")
	{
		items.GET("", itemHandler.List)
		items.POST("", itemHandler.Create)
		items.POST("/mark-production",
			middleware.RequireRoles(models.RoleSuperadmin),
			middleware.Audit(userRepo, models.AuditActionItemProduction, "data_migration_item"),
			itemHandler.MarkProduction)
		items.GET("/:id", itemHandler.Get)
		items.PUT("/:id", itemHandler.Update)
		items.DELETE("/:id", itemHandler.Delete)
		items.POST("/:id/approve",
			middleware.RequireRoles(models.RoleApprover),
			itemHandler.Approve)
		items.GET("/:id/pdf", reportHandler.ItemPDF)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
