package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tour_sales_backend/internal/cache"
	"tour_sales_backend/internal/export"
	"tour_sales_backend/internal/models"
	"tour_sales_backend/internal/reconcile"
	"tour_sales_backend/internal/repositories"
	"tour_sales_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_report_service.go -package=mocks tour_sales_backend/internal/services ReportService

// Reporter filter values of the sales summary.
const (
	ReporterFilterStore = "store"
	ReporterFilterGuide = "guide"
	ReporterFilterAll   = "all"
)

// SummaryRow is one group of the sales summary with a display label.
type SummaryRow struct {
	reconcile.GroupSummary
	Label string `json:"label"`
}

// CommissionRow is one group of the commission report with a display label.
type CommissionRow struct {
	reconcile.CommissionSummary
	Label string `json:"label"`
}

type ReportService interface {
	Reconciliation(ctx context.Context, actor models.Actor, params models.ReportParams) (*reconcile.ReconciliationResult, error)
	SalesSummary(ctx context.Context, actor models.Actor, params models.ReportParams) ([]SummaryRow, error)
	Commissions(ctx context.Context, actor models.Actor, params models.ReportParams) ([]CommissionRow, error)
	Dashboard(ctx context.Context, actor models.Actor, params models.ReportParams) (*models.DashboardSummary, error)
	Export(ctx context.Context, actor models.Actor, report string, params models.ReportParams) (*export.Table, error)
}

type reportService struct {
	rows        repositories.RowQuerier
	catalogRepo repositories.CatalogRepository
	cache       ReportCache
}

func NewReportService(rows repositories.RowQuerier, catalogRepo repositories.CatalogRepository, cache ReportCache) ReportService {
	return &reportService{rows: rows, catalogRepo: catalogRepo, cache: cache}
}

// NormalizeReportParams applies defaults and rejects unknown strategy, group_by or reporter
// values.
func NormalizeReportParams(p models.ReportParams) (models.ReportParams, error) {
	p.Strategy = strings.ToLower(strings.TrimSpace(p.Strategy))
	p.GroupBy = strings.ToLower(strings.TrimSpace(p.GroupBy))
	p.Reporter = strings.ToLower(strings.TrimSpace(p.Reporter))
	if p.Strategy == "" {
		p.Strategy = models.StrategySale
	}
	if p.GroupBy == "" {
		p.GroupBy = models.GroupByStore
	}
	if p.Reporter == "" {
		p.Reporter = ReporterFilterStore
	}
	if p.Strategy != models.StrategySale && p.Strategy != models.StrategyVisit {
		return p, fmt.Errorf("%w: strategy must be sale or visit", ErrValidation)
	}
	if _, err := groupKey(p.GroupBy); err != nil {
		return p, err
	}
	switch p.Reporter {
	case ReporterFilterStore, ReporterFilterGuide, ReporterFilterAll:
	default:
		return p, fmt.Errorf("%w: reporter must be store, guide or all", ErrValidation)
	}
	if p.DateFrom != nil && p.DateTo != nil && p.DateTo.Before(*p.DateFrom) {
		return p, fmt.Errorf("%w: date_to is before date_from", ErrValidation)
	}
	return p, nil
}

func groupKey(groupBy string) (reconcile.KeyFunc, error) {
	switch groupBy {
	case models.GroupByCompany:
		return reconcile.KeyByCompany, nil
	case models.GroupByStore:
		return reconcile.KeyByStore, nil
	case models.GroupByGuide:
		return reconcile.KeyByGuide, nil
	case models.GroupByProduct:
		return reconcile.KeyByProduct, nil
	case models.GroupByDay:
		return reconcile.KeyByDay, nil
	}
	return nil, fmt.Errorf("%w: unknown group_by %q", ErrValidation, groupBy)
}

func strategyKey(strategy string) reconcile.KeyFunc {
	if strategy == models.StrategyVisit {
		return reconcile.KeyByVisit
	}
	return reconcile.KeyBySale
}

// scopeParams narrows params to what actor may see. The bool is false when the actor can see
// nothing at all.
func scopeParams(actor models.Actor, p models.ReportParams) (models.ReportParams, bool) {
	if actor.IsGuide() {
		if actor.GuideID == nil {
			return p, false
		}
		id := *actor.GuideID
		p.GuideID = &id
	}
	return p, true
}

// loadItems fetches and normalizes the sale lines matching p.
func (s *reportService) loadItems(ctx context.Context, actor models.Actor, p models.ReportParams) ([]reconcile.LineItem, error) {
	p, visible := scopeParams(actor, p)
	if !visible {
		return []reconcile.LineItem{}, nil
	}
	var pred repositories.Predicate
	if p.DateFrom != nil {
		pred = append(pred, repositories.Where(reconcile.ColGroupArrivalDate, repositories.OpGte, *p.DateFrom))
	}
	if p.DateTo != nil {
		pred = append(pred, repositories.Where(reconcile.ColGroupArrivalDate, repositories.OpLte, *p.DateTo))
	}
	if p.CompanyID != nil {
		pred = append(pred, repositories.Where(reconcile.ColCompanyID, repositories.OpEq, *p.CompanyID))
	}
	if p.StoreID != nil {
		pred = append(pred, repositories.Where(reconcile.ColStoreID, repositories.OpEq, *p.StoreID))
	}
	if p.GuideID != nil {
		pred = append(pred, repositories.Where(reconcile.ColGuideID, repositories.OpEq, *p.GuideID))
	}
	rows, err := s.rows.FetchRows(ctx, repositories.RelationSaleLines, pred)
	if err != nil {
		return nil, fmt.Errorf("failed to load sale lines: %w", err)
	}
	return reconcile.NormalizeRows(rows), nil
}

// loadRateTable reads the store-product rates of the given stores.
func (s *reportService) loadRateTable(ctx context.Context, storeIDs []int64) (reconcile.RateTable, error) {
	table := reconcile.RateTable{}
	if len(storeIDs) == 0 {
		return table, nil
	}
	rows, err := s.rows.FetchRows(ctx, repositories.RelationStoreProducts,
		repositories.Predicate{repositories.Where(reconcile.ColStoreID, repositories.OpIn, storeIDs)})
	if err != nil {
		return nil, fmt.Errorf("failed to load store rates: %w", err)
	}
	for _, row := range rows {
		// Rates are clamped the same way as on sale lines.
		li := reconcile.Normalize(row, reconcile.ReporterStore)
		table[reconcile.StoreProduct{StoreID: li.StoreID, ProductID: li.ProductID}] = li.Rates
	}
	return table, nil
}

// labels maps catalog ids to names for the group_by dimension. Days label themselves.
func (s *reportService) labels(ctx context.Context, groupBy string) (map[reconcile.Key]string, error) {
	var kind models.CatalogKind
	switch groupBy {
	case models.GroupByCompany:
		kind = models.KindCompanies
	case models.GroupByStore:
		kind = models.KindStores
	case models.GroupByGuide:
		kind = models.KindGuides
	case models.GroupByProduct:
		kind = models.KindProducts
	default:
		return nil, nil
	}
	entries, err := s.catalogRepo.List(ctx, kind, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s names: %w", kind, err)
	}
	out := make(map[reconcile.Key]string, len(entries))
	for _, e := range entries {
		out[reconcile.Key(strconv.FormatInt(e.ID, 10))] = e.Name
	}
	return out, nil
}

func labelOf(labels map[reconcile.Key]string, k reconcile.Key) string {
	if labels == nil {
		return string(k)
	}
	return labels[k]
}

// cached serves the report from the cache or computes and stores it. The key is bound to the
// generation read before computing, so a result that races an invalidation is stored under a
// dead key. Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, c ReportCache, keyFor func(generation int64) string, compute func() (T, error)) (T, error) {
	generation, err := c.Generation(ctx)
	if err != nil {
		utils.LogWarn("Report cache generation read failed", map[string]interface{}{"error": err.Error()})
		return compute()
	}
	key := keyFor(generation)

	var out T
	hit, err := c.GetJSON(ctx, key, &out)
	if err != nil {
		utils.LogWarn("Report cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	} else if hit {
		return out, nil
	}
	out, err = compute()
	if err != nil {
		return out, err
	}
	if err := c.SetJSON(ctx, key, out); err != nil {
		utils.LogWarn("Report cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return out, nil
}

func cacheKey(report string, actor models.Actor, p models.ReportParams) func(int64) string {
	return func(generation int64) string {
		return cache.Key(report, actor.Scope(), generation, p.CacheParams())
	}
}

func (s *reportService) Reconciliation(ctx context.Context, actor models.Actor, params models.ReportParams) (*reconcile.ReconciliationResult, error) {
	p, err := NormalizeReportParams(params)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s.cache, cacheKey(models.ReportReconciliation, actor, p), func() (*reconcile.ReconciliationResult, error) {
		items, err := s.loadItems(ctx, actor, p)
		if err != nil {
			return nil, err
		}
		result := reconcile.Reconcile(items, strategyKey(p.Strategy))
		utils.LogDebug("Reconciliation computed", map[string]interface{}{
			"strategy": p.Strategy, "items": len(items), "groups": len(result.Groups),
		})
		return &result, nil
	})
}

func (s *reportService) SalesSummary(ctx context.Context, actor models.Actor, params models.ReportParams) ([]SummaryRow, error) {
	p, err := NormalizeReportParams(params)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s.cache, cacheKey(models.ReportSalesSummary, actor, p), func() ([]SummaryRow, error) {
		items, err := s.loadItems(ctx, actor, p)
		if err != nil {
			return nil, err
		}
		if p.Reporter != ReporterFilterAll {
			reporter := reconcile.ReporterType(p.Reporter)
			items = reconcile.Filter(items, func(li reconcile.LineItem) bool { return li.ReporterType == reporter })
		}
		key, _ := groupKey(p.GroupBy)
		labels, err := s.labels(ctx, p.GroupBy)
		if err != nil {
			return nil, err
		}
		summaries := reconcile.Summaries(reconcile.Aggregate(items, key))
		out := make([]SummaryRow, 0, len(summaries))
		for _, g := range summaries {
			g.Items = nil
			out = append(out, SummaryRow{GroupSummary: g, Label: labelOf(labels, g.Key)})
		}
		return out, nil
	})
}

// Commissions totals the commissions of store lines per group. Admin only.
func (s *reportService) Commissions(ctx context.Context, actor models.Actor, params models.ReportParams) ([]CommissionRow, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: commissions are restricted to admins", ErrForbidden)
	}
	p, err := NormalizeReportParams(params)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s.cache, cacheKey(models.ReportCommissions, actor, p), func() ([]CommissionRow, error) {
		items, err := s.loadItems(ctx, actor, p)
		if err != nil {
			return nil, err
		}
		items = reconcile.Filter(items, func(li reconcile.LineItem) bool { return li.ReporterType == reconcile.ReporterStore })

		seen := make(map[int64]bool)
		var storeIDs []int64
		for _, li := range items {
			if !seen[li.StoreID] {
				seen[li.StoreID] = true
				storeIDs = append(storeIDs, li.StoreID)
			}
		}
		table, err := s.loadRateTable(ctx, storeIDs)
		if err != nil {
			return nil, err
		}
		key, _ := groupKey(p.GroupBy)
		labels, err := s.labels(ctx, p.GroupBy)
		if err != nil {
			return nil, err
		}
		sums := reconcile.CommissionSummaries(reconcile.SumCommissions(items, key, table))
		out := make([]CommissionRow, 0, len(sums))
		for _, c := range sums {
			out = append(out, CommissionRow{CommissionSummary: c, Label: labelOf(labels, c.Key)})
		}
		return out, nil
	})
}

func allLines(reconcile.LineItem) reconcile.Key { return "all" }

func (s *reportService) Dashboard(ctx context.Context, actor models.Actor, params models.ReportParams) (*models.DashboardSummary, error) {
	p, err := NormalizeReportParams(params)
	if err != nil {
		return nil, err
	}
	return cached(ctx, s.cache, cacheKey(models.ReportDashboard, actor, p), func() (*models.DashboardSummary, error) {
		items, err := s.loadItems(ctx, actor, p)
		if err != nil {
			return nil, err
		}
		summary := &models.DashboardSummary{
			StoreAmount: decimal.Zero,
			GuideAmount: decimal.Zero,
			PaxAverage:  decimal.Zero,
			Daily:       []models.DailyPoint{},
		}
		sales := make(map[int64]struct{})
		for _, li := range items {
			sales[li.SaleID] = struct{}{}
		}
		summary.SalesCount = len(sales)

		if total, ok := reconcile.Aggregate(items, allLines)["all"]; ok {
			summary.StoreAmount = total.StoreTotal
			summary.GuideAmount = total.GuideTotal
			summary.TotalPax = total.TotalPax
			summary.PaxAverage = reconcile.PaxAverage(total.StoreTotal, total.TotalPax)
		}
		summary.Reconciliation = reconcile.Reconcile(items, strategyKey(p.Strategy)).Counters

		storeItems := reconcile.Filter(items, func(li reconcile.LineItem) bool { return li.ReporterType == reconcile.ReporterStore })
		for _, day := range reconcile.Summaries(reconcile.Aggregate(storeItems, reconcile.KeyByDay)) {
			summary.Daily = append(summary.Daily, models.DailyPoint{
				Day:         string(day.Key),
				StoreAmount: day.StoreTotal,
				TotalPax:    day.TotalPax,
				PaxAverage:  day.PaxAverage,
			})
		}
		return summary, nil
	})
}

// Export renders one report as a table ready for CSV or XLSX output.
func (s *reportService) Export(ctx context.Context, actor models.Actor, report string, params models.ReportParams) (*export.Table, error) {
	switch report {
	case models.ReportReconciliation:
		result, err := s.Reconciliation(ctx, actor, params)
		if err != nil {
			return nil, err
		}
		t := &export.Table{
			Name:    report,
			Headers: []string{"group", "state", "store_total", "guide_total", "difference", "items", "pax"},
		}
		for _, g := range result.Groups {
			t.AddRow(string(g.Key), string(g.State), g.StoreTotal, g.GuideTotal, g.Difference, g.ItemCount, g.TotalPax)
		}
		return t, nil

	case models.ReportSalesSummary:
		rows, err := s.SalesSummary(ctx, actor, params)
		if err != nil {
			return nil, err
		}
		t := &export.Table{
			Name:    report,
			Headers: []string{"group", "label", "items", "cancelled", "quantity", "amount", "store_total", "guide_total", "pax", "pax_average"},
		}
		for _, r := range rows {
			t.AddRow(string(r.Key), r.Label, r.ItemCount, r.CancelledCount, r.Quantity, r.TotalAmount,
				r.StoreTotal, r.GuideTotal, r.TotalPax, r.PaxAverage)
		}
		return t, nil

	case models.ReportCommissions:
		rows, err := s.Commissions(ctx, actor, params)
		if err != nil {
			return nil, err
		}
		t := &export.Table{
			Name:    report,
			Headers: []string{"group", "label", "items", "quantity", "pax", "gross", "gross_per_pax", "agency", "guide", "captain", "office", "total"},
		}
		for _, r := range rows {
			t.AddRow(string(r.Key), r.Label, r.ItemCount, r.Quantity, r.TotalPax, r.Gross, r.GrossPerPax,
				r.Agency, r.Guide, r.Captain, r.Office, r.Total)
		}
		return t, nil

	case models.ReportDashboard:
		d, err := s.Dashboard(ctx, actor, params)
		if err != nil {
			return nil, err
		}
		t := &export.Table{Name: report, Headers: []string{"day", "store_amount", "pax", "pax_average"}}
		for _, p := range d.Daily {
			t.AddRow(p.Day, p.StoreAmount, p.TotalPax, p.PaxAverage)
		}
		return t, nil
	}
	return nil, fmt.Errorf("%w: unknown report %q", ErrValidation, report)
}
