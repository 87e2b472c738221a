package handlers

import (
	"net/http"
	"strings"

	"tour_sales_backend/internal/models"
	"tour_sales_backend/internal/services"
	"tour_sales_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the reference tables and the store-product rate table.
type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(cs services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

func catalogKind(c *gin.Context) models.CatalogKind {
	return models.CatalogKind(strings.ToLower(c.Param("kind")))
}

// List returns the entries of a catalog. ?include_inactive=true adds disabled entries.
func (h *CatalogHandler) List(c *gin.Context) {
	includeInactive := strings.EqualFold(c.Query("include_inactive"), "true")
	entries, err := h.catalogService.List(c.Request.Context(), catalogKind(c), includeInactive)
	if err != nil {
		respondServiceError(c, err, "fetch catalog")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	entry, err := h.catalogService.Get(c.Request.Context(), catalogKind(c), id)
	if err != nil {
		respondServiceError(c, err, "fetch catalog entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *CatalogHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req services.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}
	entry, err := h.catalogService.Create(c.Request.Context(), actor, catalogKind(c), req)
	if err != nil {
		respondServiceError(c, err, "create catalog entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *CatalogHandler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.CatalogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}
	entry, err := h.catalogService.Update(c.Request.Context(), actor, catalogKind(c), id, req)
	if err != nil {
		respondServiceError(c, err, "update catalog entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.Delete(c.Request.Context(), actor, catalogKind(c), id); err != nil {
		respondServiceError(c, err, "delete catalog entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListStoreRates returns the rate table of a store.
func (h *CatalogHandler) ListStoreRates(c *gin.Context) {
	storeID, ok := idParam(c, "id")
	if !ok {
		return
	}
	rates, err := h.catalogService.ListStoreRates(c.Request.Context(), storeID)
	if err != nil {
		respondServiceError(c, err, "fetch store rates")
		return
	}
	c.JSON(http.StatusOK, rates)
}

// SetStoreRate inserts or replaces the rates of one product in a store.
func (h *CatalogHandler) SetStoreRate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	storeID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req services.StoreRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}
	rate, err := h.catalogService.SetStoreRate(c.Request.Context(), actor, storeID, req)
	if err != nil {
		respondServiceError(c, err, "save store rate")
		return
	}
	c.JSON(http.StatusOK, rate)
}

func (h *CatalogHandler) DeleteStoreRate(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	storeID, ok := idParam(c, "id")
	if !ok {
		return
	}
	productID, ok := idParam(c, "product_id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteStoreRate(c.Request.Context(), actor, storeID, productID); err != nil {
		respondServiceError(c, err, "delete store rate")
		return
	}
	c.Status(http.StatusNoContent)
}
