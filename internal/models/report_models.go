package models

import (
	"strconv"
	"time"

	"tour_sales_backend/internal/reconcile"

	"github.com/shopspring/decimal"
)

// Report names, used in routes, exports and cache keys.
const (
	ReportReconciliation = "reconciliation"
	ReportSalesSummary   = "sales-summary"
	ReportCommissions    = "commissions"
	ReportDashboard      = "dashboard"
)

// Reconciliation strategies.
const (
	StrategySale  = "sale"
	StrategyVisit = "visit"
)

// Grouping dimensions of the summary and commission reports.
const (
	GroupByCompany = "company"
	GroupByStore   = "store"
	GroupByGuide   = "guide"
	GroupByProduct = "product"
	GroupByDay     = "day"
)

// ReportParams holds the common query parameters of every report.
type ReportParams struct {
	DateFrom  *time.Time
	DateTo    *time.Time
	CompanyID *int64
	StoreID   *int64
	GuideID   *int64
	Strategy  string
	GroupBy   string
	Reporter  string
}

// CacheParams flattens p for cache keys.
func (p ReportParams) CacheParams() map[string]string {
	out := map[string]string{
		"strategy": p.Strategy,
		"group_by": p.GroupBy,
		"reporter": p.Reporter,
	}
	if p.DateFrom != nil {
		out["from"] = p.DateFrom.Format(reconcile.DateLayout)
	}
	if p.DateTo != nil {
		out["to"] = p.DateTo.Format(reconcile.DateLayout)
	}
	for name, id := range map[string]*int64{"company": p.CompanyID, "store": p.StoreID, "guide": p.GuideID} {
		if id != nil {
			out[name] = strconv.FormatInt(*id, 10)
		}
	}
	return out
}

// DashboardSummary holds the headline figures of the back office home page.
type DashboardSummary struct {
	SalesCount     int                `json:"sales_count"`
	StoreAmount    decimal.Decimal    `json:"store_amount"`
	GuideAmount    decimal.Decimal    `json:"guide_amount"`
	TotalPax       int64              `json:"total_pax"`
	PaxAverage     decimal.Decimal    `json:"pax_average"`
	Reconciliation reconcile.Counters `json:"reconciliation"`
	Daily          []DailyPoint       `json:"daily"`
}

// DailyPoint is one day of the dashboard chart.
type DailyPoint struct {
	Day         string          `json:"day"`
	StoreAmount decimal.Decimal `json:"store_amount"`
	TotalPax    int64           `json:"total_pax"`
	PaxAverage  decimal.Decimal `json:"pax_average"`
}
