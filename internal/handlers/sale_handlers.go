package handlers

import (
	"net/http"
	"strconv"

	"tour_sales_backend/internal/models"
	"tour_sales_backend/internal/services"
	"tour_sales_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SaleHandler holds the sale service.
type SaleHandler struct {
	saleService services.SaleService
}

// NewSaleHandler creates a new SaleHandler.
func NewSaleHandler(ss services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: ss}
}

// CreateSale records a sale header with its items.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req services.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "create sale")
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// GetSales lists sales visible to the caller.
func (h *SaleHandler) GetSales(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var filters models.SaleFilters
	if filters.CompanyID, ok = int64Query(c, "company_id"); !ok {
		return
	}
	if filters.StoreID, ok = int64Query(c, "store_id"); !ok {
		return
	}
	if filters.GuideID, ok = int64Query(c, "guide_id"); !ok {
		return
	}
	if filters.DateFrom, ok = dateQuery(c, "date_from"); !ok {
		return
	}
	if filters.DateTo, ok = dateQuery(c, "date_to"); !ok {
		return
	}
	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			utils.RespondValidationFailed(c, "page must be a positive integer")
			return
		}
		filters.Page = page
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil || pageSize < 1 {
			utils.RespondValidationFailed(c, "page_size must be a positive integer")
			return
		}
		filters.PageSize = pageSize
	}

	res, err := h.saleService.ListSales(c.Request.Context(), actor, filters)
	if err != nil {
		respondServiceError(c, err, "fetch sales")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetSaleByID returns one sale with its items.
func (h *SaleHandler) GetSaleByID(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "fetch sale")
		return
	}
	c.JSON(http.StatusOK, sale)
}

// UpdateSale replaces the header and the caller's items of a sale. The body must carry the
// version the client last read.
func (h *SaleHandler) UpdateSale(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "update sale")
		return
	}
	c.JSON(http.StatusOK, sale)
}

// DeleteSale removes a sale and its items.
func (h *SaleHandler) DeleteSale(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.saleService.DeleteSale(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "delete sale")
		return
	}
	c.Status(http.StatusNoContent)
}
