package handlers

import (
	"errors"
	"net/http"
	"time"

	"tour_sales_backend/internal/export"
	"tour_sales_backend/internal/middleware"
	"tour_sales_backend/internal/models"
	"tour_sales_backend/internal/reconcile"
	"tour_sales_backend/internal/services"
	"tour_sales_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// currentActor reads the authenticated caller or responds 401.
func currentActor(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "User not authenticated.", "Missing user in context"))
		return models.Actor{}, false
	}
	return actor, true
}

// idParam parses a positive int64 path parameter or responds 400.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Invalid "+name+" format.", name+" must be a positive integer"))
		return 0, false
	}
	return id, true
}

// int64Query parses an optional integer query parameter or responds 400.
func int64Query(c *gin.Context, name string) (*int64, bool) {
	v, err := utils.OptionalInt64(c.Query(name))
	if err != nil {
		utils.RespondValidationFailed(c, "Invalid "+name+" format: "+err.Error())
		return nil, false
	}
	return v, true
}

// dateQuery parses an optional YYYY-MM-DD query parameter or responds 400.
func dateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if utils.IsEmpty(raw) {
		return nil, true
	}
	t, err := time.Parse(reconcile.DateLayout, raw)
	if err != nil {
		utils.RespondValidationFailed(c, "Invalid "+name+" format. Use YYYY-MM-DD.")
		return nil, false
	}
	return &t, true
}

// bindReportParams reads the common report query string.
func bindReportParams(c *gin.Context) (models.ReportParams, bool) {
	var p models.ReportParams
	var ok bool
	if p.DateFrom, ok = dateQuery(c, "date_from"); !ok {
		return p, false
	}
	if p.DateTo, ok = dateQuery(c, "date_to"); !ok {
		return p, false
	}
	if p.CompanyID, ok = int64Query(c, "company_id"); !ok {
		return p, false
	}
	if p.StoreID, ok = int64Query(c, "store_id"); !ok {
		return p, false
	}
	if p.GuideID, ok = int64Query(c, "guide_id"); !ok {
		return p, false
	}
	p.Strategy = c.Query("strategy")
	p.GroupBy = c.Query("group_by")
	p.Reporter = c.Query("reporter")
	return p, true
}

// respondServiceError maps service errors to API errors. action completes "Failed to ..." in
// the generic 500 message.
func respondServiceError(c *gin.Context, err error, action string) {
	var apiErr *utils.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, services.ErrValidation), errors.Is(err, export.ErrUnsupportedFormat):
		apiErr = utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Input validation failed", err.Error())
	case errors.Is(err, services.ErrUnknownKind):
		apiErr = utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Unknown catalog.", err.Error())
	case errors.Is(err, services.ErrForbidden):
		apiErr = utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "You do not have permission to perform this action.", err.Error())
	case errors.Is(err, services.ErrSaleNotFound):
		apiErr = utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Sale not found.", err.Error())
	case errors.Is(err, services.ErrSaleItemNotFound):
		apiErr = utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Sale item does not belong to this sale.", err.Error())
	case errors.Is(err, services.ErrCatalogNotFound):
		apiErr = utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Catalog entry not found.", err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apiErr = utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "User profile not found.", err.Error())
	case errors.Is(err, services.ErrSaleVersionConflict):
		apiErr = utils.NewAPIError(http.StatusConflict, utils.ErrCodeVersionConflict, "The sale was changed by someone else. Reload and try again.", err.Error())
	case errors.Is(err, services.ErrCatalogConflict), errors.Is(err, services.ErrCatalogInUse),
		errors.Is(err, services.ErrUsernameExists), errors.Is(err, services.ErrEmailExists):
		apiErr = utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, err.Error(), "")
	case errors.Is(err, services.ErrRoleNotFound):
		apiErr = utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Specified role not found.", err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apiErr = utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid username or password.", "")
	default:
		utils.LogError(err, "Unhandled service error", map[string]interface{}{
			"path": c.FullPath(), "request_id": utils.RequestID(c),
		})
		utils.RespondInternal(c, "Failed to "+action+".")
		return
	}
	utils.RespondWithError(c, apiErr)
}
