package router

import (
	"database/sql"
	"fmt"

	"tour_sales_backend/internal/cache"
	"tour_sales_backend/internal/config"
	"tour_sales_backend/internal/handlers"
	"tour_sales_backend/internal/middleware"
	"tour_sales_backend/internal/repositories"
	"tour_sales_backend/internal/services"
	"tour_sales_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers and mounts them under /api/v1.
func Setup(engine *gin.Engine, db *sql.DB, reportCache *cache.Cache, cfg config.Config) error {
	if err := middleware.RegisterValidators(); err != nil {
		return fmt.Errorf("registering validators: %w", err)
	}
	loginLimit, err := middleware.RateLimit(cfg.Auth.LoginRateLimit)
	if err != nil {
		return err
	}

	// Repositories
	authRepo := repositories.NewAuthRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	rowQuerier := repositories.NewRowQuerier(db)
	txRunner := repositories.NewTxRunner(db)

	// Services
	tokens := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := services.NewAuthService(authRepo, db, tokens)
	saleService := services.NewSaleService(saleRepo, catalogRepo, db, txRunner, reportCache)
	catalogService := services.NewCatalogService(catalogRepo, db, reportCache)
	reportService := services.NewReportService(rowQuerier, catalogRepo, reportCache)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	saleHandler := handlers.NewSaleHandler(saleService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler, loginLimit)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(tokens))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupSaleRoutes(authenticated, saleHandler)
		SetupCatalogRoutes(authenticated, catalogHandler)
		SetupStoreRateRoutes(authenticated, catalogHandler)
		SetupReportRoutes(authenticated, reportHandler)
		SetupDashboardRoutes(authenticated, reportHandler)
	}
	return nil
}
