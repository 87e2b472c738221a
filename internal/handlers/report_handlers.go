package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"tour_sales_backend/internal/export"
	"tour_sales_backend/internal/services"
	"tour_sales_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the accounting views and their downloads.
type ReportHandler struct {
	reportService services.ReportService
	now           func() time.Time
}

func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs, now: time.Now}
}

// GetReconciliation compares store and guide reports per sale or per visit.
func (h *ReportHandler) GetReconciliation(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	params, ok := bindReportParams(c)
	if !ok {
		return
	}
	result, err := h.reportService.Reconciliation(c.Request.Context(), actor, params)
	if err != nil {
		respondServiceError(c, err, "build reconciliation report")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSalesSummary groups sales by company, store, guide, product or day.
func (h *ReportHandler) GetSalesSummary(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	params, ok := bindReportParams(c)
	if !ok {
		return
	}
	rows, err := h.reportService.SalesSummary(c.Request.Context(), actor, params)
	if err != nil {
		respondServiceError(c, err, "build sales summary")
		return
	}
	c.JSON(http.StatusOK, gin.H{"group_by": params.GroupBy, "rows": rows})
}

// GetCommissions totals agency, guide, captain and office commissions per group.
func (h *ReportHandler) GetCommissions(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	params, ok := bindReportParams(c)
	if !ok {
		return
	}
	rows, err := h.reportService.Commissions(c.Request.Context(), actor, params)
	if err != nil {
		respondServiceError(c, err, "build commission report")
		return
	}
	c.JSON(http.StatusOK, gin.H{"group_by": params.GroupBy, "rows": rows})
}

// GetDashboardSummary provides the headline figures of the home page.
func (h *ReportHandler) GetDashboardSummary(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	params, ok := bindReportParams(c)
	if !ok {
		return
	}
	summary, err := h.reportService.Dashboard(c.Request.Context(), actor, params)
	if err != nil {
		respondServiceError(c, err, "build dashboard")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ExportReport downloads a report as CSV (default) or XLSX. ?delimiter=; switches the CSV
// separator for spreadsheet locales that expect it.
func (h *ReportHandler) ExportReport(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondServiceError(c, err, "export report")
		return
	}
	delimiter := ','
	switch c.Query("delimiter") {
	case "", ",":
	case ";":
		delimiter = ';'
	default:
		utils.RespondValidationFailed(c, "delimiter must be ',' or ';'")
		return
	}
	params, ok := bindReportParams(c)
	if !ok {
		return
	}

	report := c.Param("report")
	table, err := h.reportService.Export(c.Request.Context(), actor, report, params)
	if err != nil {
		respondServiceError(c, err, "export report")
		return
	}

	var buf bytes.Buffer
	if format == export.FormatXLSX {
		err = export.WriteXLSX(&buf, *table, report)
	} else {
		err = export.WriteCSV(&buf, *table, delimiter)
	}
	if err != nil {
		utils.LogError(err, "ExportReport: rendering failed", map[string]interface{}{"report": report, "format": format})
		utils.RespondInternal(c, "Failed to export report.")
		return
	}

	filename := fmt.Sprintf("%s_%s%s", report, h.now().Format("20060102"), format.Extension())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
