package services_test

import (
	"context"
	"testing"
	"time"

	"tour_sales_backend/internal/models"
	"tour_sales_backend/internal/reconcile"
	"tour_sales_backend/internal/repositories"
	mock_repositories "tour_sales_backend/internal/repositories/mocks"
	"tour_sales_backend/internal/services"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportFixture struct {
	rows    *mock_repositories.MockRowQuerier
	catalog *mock_repositories.MockCatalogRepository
	cache   *memCache
	svc     services.ReportService
}

func newReportFixture(t *testing.T) *reportFixture {
	ctrl := gomock.NewController(t)
	f := &reportFixture{
		rows:    mock_repositories.NewMockRowQuerier(ctrl),
		catalog: mock_repositories.NewMockCatalogRepository(ctrl),
		cache:   newMemCache(),
	}
	f.svc = services.NewReportService(f.rows, f.catalog, f.cache)
	return f
}

// rawLine mimics a sale_lines row as lib/pq returns it.
func rawLine(saleID, storeID int64, reporter, qty, price, status string, day string) reconcile.RawRow {
	arrival, _ := time.Parse(reconcile.DateLayout, day)
	return reconcile.RawRow{
		reconcile.ColItemID:           saleID*100 + storeID,
		reconcile.ColSaleID:           saleID,
		reconcile.ColProductID:        int64(6),
		reconcile.ColCompanyID:        int64(1),
		reconcile.ColStoreID:          storeID,
		reconcile.ColGuideID:          int64(5),
		reconcile.ColGroupArrivalDate: arrival,
		reconcile.ColGroupPax:         int64(30),
		reconcile.ColStorePax:         int64(20),
		reconcile.ColQuantity:         []byte(qty),
		reconcile.ColUnitPrice:        []byte(price),
		reconcile.ColReporterType:     reporter,
		reconcile.ColStatus:           status,
		reconcile.ColAgencyPct:        []byte("0"),
		reconcile.ColGuidePct:         []byte("0"),
		reconcile.ColCaptainPct:       []byte("0"),
		reconcile.ColOfficePct:        []byte("0"),
		reconcile.ColRateOverride:     false,
	}
}

func hasCondition(pred repositories.Predicate, column string, value interface{}) bool {
	for _, c := range pred {
		if c.Column == column && c.Value == value {
			return true
		}
	}
	return false
}

func TestReportService_Reconciliation(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies each sale", func(t *testing.T) {
		f := newReportFixture(t)
		f.rows.EXPECT().FetchRows(gomock.Any(), repositories.RelationSaleLines, gomock.Any()).Return([]reconcile.RawRow{
			rawLine(1, 2, "store", "2", "100", "approved", "2026-06-01"),
			rawLine(1, 2, "guide", "2", "100", "approved", "2026-06-01"),
			rawLine(2, 2, "store", "2", "100", "approved", "2026-06-01"),
			rawLine(2, 2, "guide", "2", "150", "approved", "2026-06-01"),
			rawLine(3, 2, "store", "1", "80", "approved", "2026-06-02"),
		}, nil)

		res, err := f.svc.Reconciliation(ctx, adminActor, models.ReportParams{})

		require.NoError(t, err)
		require.Len(t, res.Groups, 3)
		assert.Equal(t, reconcile.StateReconciled, res.Groups[0].State)
		assert.Equal(t, reconcile.StateMismatched, res.Groups[1].State)
		assert.True(t, pct("100").Equal(res.Groups[1].Difference))
		assert.Equal(t, reconcile.StateAwaitingGuideReport, res.Groups[2].State)
		assert.Equal(t, 1, res.Counters.Mismatched)
		assert.Len(t, res.AuditItems, 5)
	})

	t.Run("second call is served from the cache", func(t *testing.T) {
		f := newReportFixture(t)
		f.rows.EXPECT().FetchRows(gomock.Any(), repositories.RelationSaleLines, gomock.Any()).Times(1).
			Return([]reconcile.RawRow{rawLine(1, 2, "store", "1", "10", "approved", "2026-06-01")}, nil)

		first, err := f.svc.Reconciliation(ctx, adminActor, models.ReportParams{})
		require.NoError(t, err)
		second, err := f.svc.Reconciliation(ctx, adminActor, models.ReportParams{})
		require.NoError(t, err)

		assert.Equal(t, first.Counters.AwaitingGuideReport, second.Counters.AwaitingGuideReport)
		require.Len(t, second.Groups, 1)
		assert.True(t, pct("10").Equal(second.Groups[0].StoreTotal))
	})

	t.Run("result racing a sale write is not served afterwards", func(t *testing.T) {
		f := newReportFixture(t)
		gomock.InOrder(
			f.rows.EXPECT().FetchRows(gomock.Any(), repositories.RelationSaleLines, gomock.Any()).
				DoAndReturn(func(ctx context.Context, _ string, _ repositories.Predicate) ([]reconcile.RawRow, error) {
					// A sale write commits while the report is being computed.
					require.NoError(t, f.cache.InvalidateReports(ctx))
					return []reconcile.RawRow{rawLine(1, 2, "store", "1", "10", "approved", "2026-06-01")}, nil
				}),
			f.rows.EXPECT().FetchRows(gomock.Any(), repositories.RelationSaleLines, gomock.Any()).
				Return([]reconcile.RawRow{rawLine(1, 2, "store", "1", "25", "approved", "2026-06-01")}, nil),
		)

		_, err := f.svc.Reconciliation(ctx, adminActor, models.ReportParams{})
		require.NoError(t, err)
		fresh, err := f.svc.Reconciliation(ctx, adminActor, models.ReportParams{})
		require.NoError(t, err)

		require.Len(t, fresh.Groups, 1)
		assert.True(t, pct("25").Equal(fresh.Groups[0].StoreTotal))
	})

	t.Run("guide actor is scoped to the linked guide", func(t *testing.T) {
		f := newReportFixture(t)
		f.rows.EXPECT().FetchRows(gomock.Any(), repositories.RelationSaleLines, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, pred repositories.Predicate) ([]reconcile.RawRow, error) {
				assert.True(t, hasCondition(pred, reconcile.ColGuideID, int64(5)))
				assert.False(t, hasCondition(pred, reconcile.ColGuideID, int64(9)))
				return nil, nil
			})

		_, err := f.svc.Reconciliation(ctx, guideActor, models.ReportParams{GuideID: int64Ptr(9)})
		require.NoError(t, err)
	})

	t.Run("unlinked guide gets an empty report without a query", func(t *testing.T) {
		f := newReportFixture(t)

		res, err := f.svc.Reconciliation(ctx, models.Actor{UserID: 4, Role: models.RoleGuide}, models.ReportParams{})

		require.NoError(t, err)
		assert.Empty(t, res.Groups)
	})

	t.Run("unknown strategy", func(t *testing.T) {
		f := newReportFixture(t)
		_, err := f.svc.Reconciliation(ctx, adminActor, models.ReportParams{Strategy: "tour"})
		assert.ErrorIs(t, err, services.ErrValidation)
	})
}

func TestReportService_SalesSummary(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	f.rows.EXPECT().FetchRows(gomock.Any(), repositories.RelationSaleLines, gomock.Any()).Return([]reconcile.RawRow{
		rawLine(1, 2, "store", "2", "100", "approved", "2026-06-01"),
		rawLine(1, 2, "guide", "9", "100", "approved", "2026-06-01"),
		rawLine(2, 3, "store", "1", "50", "cancelled", "2026-06-01"),
	}, nil)
	f.catalog.EXPECT().List(gomock.Any(), models.KindStores, true).Return([]models.CatalogEntry{
		{ID: 2, Name: "Carpet House"},
		{ID: 3, Name: "Spice Market"},
	}, nil)

	rows, err := f.svc.SalesSummary(ctx, standardActor, models.ReportParams{})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Carpet House", rows[0].Label)
	assert.True(t, pct("200").Equal(rows[0].TotalAmount))
	assert.True(t, rows[0].GuideTotal.IsZero())
	assert.Nil(t, rows[0].Items)
	assert.Equal(t, 1, rows[1].CancelledCount)
	assert.True(t, rows[1].TotalAmount.IsZero())
}

func TestReportService_Commissions(t *testing.T) {
	ctx := context.Background()

	t.Run("admin only", func(t *testing.T) {
		f := newReportFixture(t)
		_, err := f.svc.Commissions(ctx, standardActor, models.ReportParams{})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("rates come from the store product table", func(t *testing.T) {
		f := newReportFixture(t)
		f.rows.EXPECT().FetchRows(gomock.Any(), repositories.RelationSaleLines, gomock.Any()).Return([]reconcile.RawRow{
			rawLine(1, 2, "store", "1", "50", "approved", "2026-06-01"),
			rawLine(1, 2, "guide", "1", "50", "approved", "2026-06-01"),
		}, nil)
		f.rows.EXPECT().FetchRows(gomock.Any(), repositories.RelationStoreProducts, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, pred repositories.Predicate) ([]reconcile.RawRow, error) {
				require.Len(t, pred, 1)
				assert.Equal(t, []int64{2}, pred[0].Value)
				return []reconcile.RawRow{{
					reconcile.ColStoreID:    int64(2),
					reconcile.ColProductID:  int64(6),
					reconcile.ColAgencyPct:  []byte("10"),
					reconcile.ColGuidePct:   []byte("0"),
					reconcile.ColCaptainPct: []byte("0"),
					reconcile.ColOfficePct:  []byte("5"),
				}}, nil
			})
		f.catalog.EXPECT().List(gomock.Any(), models.KindStores, true).Return(nil, nil)

		rows, err := f.svc.Commissions(ctx, adminActor, models.ReportParams{})

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.True(t, pct("5").Equal(rows[0].Agency))
		assert.True(t, pct("2.5").Equal(rows[0].Office))
		assert.True(t, rows[0].Guide.IsZero())
		assert.True(t, rows[0].Captain.IsZero())
	})

	tableChanged := []struct {
		name      string
		override  bool
		wantAgency string
	}{
		{name: "line without override follows the changed table", override: false, wantAgency: "10"},
		{name: "admin override ignores the changed table", override: true, wantAgency: "5"},
	}
	for _, tc := range tableChanged {
		t.Run(tc.name, func(t *testing.T) {
			f := newReportFixture(t)
			line := rawLine(1, 2, "store", "1", "50", "approved", "2026-06-01")
			line[reconcile.ColAgencyPct] = []byte("10")
			line[reconcile.ColRateOverride] = tc.override
			f.rows.EXPECT().FetchRows(gomock.Any(), repositories.RelationSaleLines, gomock.Any()).
				Return([]reconcile.RawRow{line}, nil)
			f.rows.EXPECT().FetchRows(gomock.Any(), repositories.RelationStoreProducts, gomock.Any()).
				Return([]reconcile.RawRow{{
					reconcile.ColStoreID:    int64(2),
					reconcile.ColProductID:  int64(6),
					reconcile.ColAgencyPct:  []byte("20"),
					reconcile.ColGuidePct:   []byte("0"),
					reconcile.ColCaptainPct: []byte("0"),
					reconcile.ColOfficePct:  []byte("0"),
				}}, nil)
			f.catalog.EXPECT().List(gomock.Any(), models.KindStores, true).Return(nil, nil)

			rows, err := f.svc.Commissions(ctx, adminActor, models.ReportParams{})

			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.True(t, pct(tc.wantAgency).Equal(rows[0].Agency), rows[0].Agency.String())
		})
	}
}

func TestReportService_Dashboard(t *testing.T) {
	ctx := context.Background()
	f := newReportFixture(t)
	f.rows.EXPECT().FetchRows(gomock.Any(), repositories.RelationSaleLines, gomock.Any()).Return([]reconcile.RawRow{
		rawLine(1, 2, "store", "2", "100", "approved", "2026-06-01"),
		rawLine(1, 2, "guide", "2", "100", "approved", "2026-06-01"),
		rawLine(2, 2, "store", "1", "60", "approved", "2026-06-02"),
	}, nil)

	d, err := f.svc.Dashboard(ctx, adminActor, models.ReportParams{})

	require.NoError(t, err)
	assert.Equal(t, 2, d.SalesCount)
	assert.True(t, pct("260").Equal(d.StoreAmount))
	assert.True(t, pct("200").Equal(d.GuideAmount))
	assert.Equal(t, int64(40), d.TotalPax)
	assert.True(t, pct("6.5").Equal(d.PaxAverage))
	assert.Equal(t, 1, d.Reconciliation.Reconciled)
	assert.Equal(t, 1, d.Reconciliation.AwaitingGuideReport)
	require.Len(t, d.Daily, 2)
	assert.Equal(t, "2026-06-01", d.Daily[0].Day)
	assert.True(t, pct("10").Equal(d.Daily[0].PaxAverage))
}

func TestReportService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("dashboard exports the daily series", func(t *testing.T) {
		f := newReportFixture(t)
		f.rows.EXPECT().FetchRows(gomock.Any(), repositories.RelationSaleLines, gomock.Any()).Return([]reconcile.RawRow{
			rawLine(1, 2, "store", "2", "100", "approved", "2026-06-01"),
		}, nil)

		table, err := f.svc.Export(ctx, adminActor, models.ReportDashboard, models.ReportParams{})

		require.NoError(t, err)
		assert.Equal(t, []string{"day", "store_amount", "pax", "pax_average"}, table.Headers)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "2026-06-01", table.Rows[0][0])
	})

	t.Run("unknown report", func(t *testing.T) {
		f := newReportFixture(t)
		_, err := f.svc.Export(ctx, adminActor, "payroll", models.ReportParams{})
		assert.ErrorIs(t, err, services.ErrValidation)
	})
}
