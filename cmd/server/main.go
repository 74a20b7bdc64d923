package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"airdrop-tracker-backend/internal/common/cache"
	"airdrop-tracker-backend/internal/common/config"
	"airdrop-tracker-backend/internal/common/logger"
	"airdrop-tracker-backend/internal/common/middleware"
	aihttp "airdrop-tracker-backend/internal/features/ai/delivery/http"
	aiservice "airdrop-tracker-backend/internal/features/ai/service"
	airdrophttp "airdrop-tracker-backend/internal/features/airdrop/delivery/http"
	"airdrop-tracker-backend/internal/features/airdrop/repository"
	airdropinmemory "airdrop-tracker-backend/internal/features/airdrop/repository/inmemory"
	airdropredis "airdrop-tracker-backend/internal/features/airdrop/repository/redis"
	airdropservice "airdrop-tracker-backend/internal/features/airdrop/service"
	feedhttp "airdrop-tracker-backend/internal/features/feed/delivery/http"
	"airdrop-tracker-backend/internal/features/feed/telegram"
	importexporthttp "airdrop-tracker-backend/internal/features/importexport/delivery/http"
	importexportservice "airdrop-tracker-backend/internal/features/importexport/service"
	"airdrop-tracker-backend/internal/features/importexport/sheets"
	platformredis "airdrop-tracker-backend/internal/platform/redis"
)

// @title           Airdrop Tracker API
// @version         1.0
// @description     Backend for a Telegram Mini App airdrop tracker: airdrop CRUD with derived lifecycle status, Google Sheets import/export and AI-assisted extraction and research.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey TelegramInitData
// @in header
// @name init_data
// @description Telegram Mini App init_data string for authentication

// @tag.name airdrops
// @tag.description Airdrop collection - creation, updates, checklists, filtering

// @tag.name importexport
// @tag.description Google Sheets import and export

// @tag.name ai
// @tag.description AI-assisted extraction and project research

// @tag.name feed
// @tag.description Placeholder Telegram announcement feed

func main() {
	cfg := config.Load()

	logger.Init("airdrop-tracker-backend", cfg.Debug)

	zapLogger, err := zap.NewProduction()
	if cfg.Debug {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting Airdrop Tracker Backend",
		zap.String("version", "1.0.0"),
		zap.Bool("debug", cfg.Debug),
	)

	ctx := context.Background()

	var redisClient *redis.Client
	var airdropRepo repository.AirdropRepository
	if cfg.Redis.Enabled {
		redisClient, err = platformredis.New(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		airdropRepo = airdropredis.NewRedisAirdropRepository(redisClient)
		zapLogger.Info("Redis repository initialized")
	} else {
		airdropRepo = airdropinmemory.NewAirdropStorage()
		zapLogger.Info("In-memory repository initialized, records are lost on restart")
	}

	cacheService := cache.NewCacheService(redisClient)

	airdropSvc := airdropservice.NewAirdropService(airdropRepo)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(zapLogger))
	router.Use(middleware.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "init_data"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.TelegramAuth(cfg.Telegram.BotToken, cfg.Debug))

	airdrophttp.NewAirdropHandler(airdropSvc, zapLogger).RegisterRoutes(v1)

	if cfg.Sheets.CredentialsFile != "" {
		sheetsClient, err := sheets.NewClient(ctx, cfg.Sheets.CredentialsFile)
		if err != nil {
			zapLogger.Fatal("Failed to create Sheets client", zap.Error(err))
		}
		importExportSvc := importexportservice.NewImportExportService(sheetsClient, airdropSvc)
		importexporthttp.NewImportExportHandler(importExportSvc, zapLogger, cfg.Sheets.SpreadsheetID, cfg.Sheets.Range).RegisterRoutes(v1)
		zapLogger.Info("Sheets import/export enabled")
	} else {
		zapLogger.Warn("SHEETS_CREDENTIALS_FILE not set, import/export endpoints disabled")
	}

	if cfg.AI.APIKey != "" {
		aiSvc, err := aiservice.NewAIService(ctx, cfg.AI.APIKey, cfg.AI.Model, cacheService, time.Duration(cfg.AI.CacheTTL)*time.Second)
		if err != nil {
			zapLogger.Fatal("Failed to create AI service", zap.Error(err))
		}
		aihttp.NewAIHandler(aiSvc, zapLogger).RegisterRoutes(v1)
		zapLogger.Info("AI endpoints enabled", zap.String("model", cfg.AI.Model))
	} else {
		zapLogger.Warn("GEMINI_API_KEY not set, AI endpoints disabled")
	}

	feedClient := telegram.NewClient(cfg.Telegram.BotToken)
	feedhttp.NewFeedHandler(feedClient, cfg.Telegram.FeedChannel, zapLogger).RegisterRoutes(v1)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerProbes(router, redisClient)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("Starting HTTP server", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func registerProbes(router *gin.Engine, redisClient *redis.Client) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "airdrop-tracker-backend",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		if redisClient != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := redisClient.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   "redis unavailable",
					"details": err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "airdrop-tracker-backend",
		})
	})
}
