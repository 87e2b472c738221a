package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tour_sales_backend/internal/cache"
	"tour_sales_backend/internal/config"
	"tour_sales_backend/internal/database"
	"tour_sales_backend/internal/router"
	"tour_sales_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.Log.Level, cfg.Log.Pretty)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	startCtx, cancel := context.WithTimeout(sigCtx, 30*time.Second)
	db, err := database.Connect(startCtx, cfg.DB)
	if err != nil {
		cancel()
		utils.LogError(err, "Failed to initialize database")
		os.Exit(1)
	}
	defer db.Close()

	reportCache, err := cache.Connect(startCtx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Report.CacheTTL)
	cancel()
	if err != nil {
		utils.LogError(err, "Redis unavailable, report cache disabled")
		reportCache = cache.New(nil, cfg.Report.CacheTTL)
	}
	defer reportCache.Close()

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", utils.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", utils.RequestIDHeader}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if err := router.Setup(engine, db, reportCache, cfg); err != nil {
		utils.LogError(err, "Failed to set up routes")
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.LogError(err, "Failed to start server")
			stopSignals()
		}
	}()

	<-sigCtx.Done()
	utils.LogInfo("Shutting down server")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Graceful shutdown failed")
	}
}
