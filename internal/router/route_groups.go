package router

import (
	"tour_sales_backend/internal/handlers"
	"tour_sales_backend/internal/middleware"
	"tour_sales_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes mounts the routes reachable without a token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler, loginLimit gin.HandlerFunc) {
	group.POST("/login", loginLimit, authHandler.LoginUser)
}

// SetupAuthenticatedAuthRoutes mounts the session routes. Accounts are created by admins.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/logout", authHandler.LogoutUser)
	group.GET("/me", authHandler.GetCurrentUser)
	group.POST("/register", middleware.RoleAuthMiddleware(models.RoleAdmin), authHandler.RegisterUser)
}

// SetupSaleRoutes sets up the sale routes. Visibility and edit scope are applied per actor by
// the sale service.
func SetupSaleRoutes(authenticatedGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := authenticatedGroup.Group("/sales")
	{
		saleRoutes.POST("", saleHandler.CreateSale)
		saleRoutes.GET("", saleHandler.GetSales)
		saleRoutes.GET("/:id", saleHandler.GetSaleByID)
		saleRoutes.PUT("/:id", saleHandler.UpdateSale)
		saleRoutes.DELETE("/:id", middleware.RoleAuthMiddleware(models.RoleAdmin), saleHandler.DeleteSale)
	}
}

// SetupCatalogRoutes sets up the reference table routes. Writes are admin only.
func SetupCatalogRoutes(authenticatedGroup *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	catalogRoutes := authenticatedGroup.Group("/catalog/:kind")
	admin := middleware.RoleAuthMiddleware(models.RoleAdmin)
	{
		catalogRoutes.GET("", catalogHandler.List)
		catalogRoutes.GET("/:id", catalogHandler.Get)
		catalogRoutes.POST("", admin, catalogHandler.Create)
		catalogRoutes.PUT("/:id", admin, catalogHandler.Update)
		catalogRoutes.DELETE("/:id", admin, catalogHandler.Delete)
	}
}

// SetupStoreRateRoutes sets up the store-product rate table routes.
func SetupStoreRateRoutes(authenticatedGroup *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	rateRoutes := authenticatedGroup.Group("/stores/:id/products")
	admin := middleware.RoleAuthMiddleware(models.RoleAdmin)
	{
		rateRoutes.GET("", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStandard), catalogHandler.ListStoreRates)
		rateRoutes.PUT("", admin, catalogHandler.SetStoreRate)
		rateRoutes.DELETE("/:product_id", admin, catalogHandler.DeleteStoreRate)
	}
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	{
		reportRoutes.GET("/reconciliation", reportHandler.GetReconciliation)
		reportRoutes.GET("/sales-summary", reportHandler.GetSalesSummary)
		reportRoutes.GET("/commissions", middleware.RoleAuthMiddleware(models.RoleAdmin), reportHandler.GetCommissions)
		reportRoutes.GET("/:report/export", reportHandler.ExportReport)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	dashboardRoutes := authenticatedGroup.Group("/dashboard")
	{
		dashboardRoutes.GET("/summary", reportHandler.GetDashboardSummary)
	}
}
