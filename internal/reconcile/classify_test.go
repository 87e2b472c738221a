package reconcile_test

import (
	"testing"

	"tour_sales_backend/internal/reconcile"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func totals(store, guide string) reconcile.GroupSummary {
	return reconcile.GroupSummary{
		StoreTotal: decimal.RequireFromString(store),
		GuideTotal: decimal.RequireFromString(guide),
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		store     string
		guide     string
		wantState reconcile.State
		wantDiff  string
		wantOK    bool
	}{
		{name: "equal totals", store: "300", guide: "300", wantState: reconcile.StateReconciled, wantDiff: "0", wantOK: true},
		{name: "difference at tolerance", store: "100.00", guide: "100.01", wantState: reconcile.StateReconciled, wantDiff: "0", wantOK: true},
		{name: "difference just above tolerance", store: "100", guide: "100.0100001", wantState: reconcile.StateMismatched, wantDiff: "0.0100001", wantOK: true},
		{name: "store higher", store: "250", guide: "200", wantState: reconcile.StateMismatched, wantDiff: "50", wantOK: true},
		{name: "guide higher", store: "200", guide: "250", wantState: reconcile.StateMismatched, wantDiff: "50", wantOK: true},
		{name: "only store reported", store: "99", guide: "0", wantState: reconcile.StateAwaitingGuideReport, wantDiff: "0", wantOK: true},
		{name: "only guide reported", store: "0", guide: "99", wantState: reconcile.StateAwaitingStoreReport, wantDiff: "0", wantOK: true},
		{name: "nothing reported", store: "0", guide: "0", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reconcile.Classify(totals(tt.store, tt.guide))

			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantState, got.State)
			assertDecimal(t, tt.wantDiff, got.Difference)
		})
	}
}

func TestReconcileScenarios(t *testing.T) {
	t.Run("store and guide both report two at 100", func(t *testing.T) {
		items := []reconcile.LineItem{
			line(1, reconcile.ReporterStore, 2, "100", reconcile.StatusApproved),
			line(1, reconcile.ReporterGuide, 2, "100", reconcile.StatusApproved),
		}

		res := reconcile.Reconcile(items, reconcile.KeyBySale)

		require.Len(t, res.Groups, 1)
		assertDecimal(t, "200", res.Groups[0].StoreTotal)
		assertDecimal(t, "200", res.Groups[0].GuideTotal)
		assert.Equal(t, reconcile.StateReconciled, res.Groups[0].State)
	})

	t.Run("guide reports two at 150 against store two at 100", func(t *testing.T) {
		items := []reconcile.LineItem{
			line(1, reconcile.ReporterStore, 2, "100", reconcile.StatusApproved),
			line(1, reconcile.ReporterGuide, 2, "150", reconcile.StatusApproved),
		}

		res := reconcile.Reconcile(items, reconcile.KeyBySale)

		require.Len(t, res.Groups, 1)
		assertDecimal(t, "200", res.Groups[0].StoreTotal)
		assertDecimal(t, "300", res.Groups[0].GuideTotal)
		assert.Equal(t, reconcile.StateMismatched, res.Groups[0].State)
		assertDecimal(t, "100", res.Groups[0].Difference)
	})

	t.Run("matching reports reconcile", func(t *testing.T) {
		items := []reconcile.LineItem{
			line(1, reconcile.ReporterStore, 2, "150", reconcile.StatusApproved),
			line(1, reconcile.ReporterGuide, 2, "150", reconcile.StatusApproved),
		}

		res := reconcile.Reconcile(items, reconcile.KeyBySale)

		require.Len(t, res.Groups, 1)
		assert.Equal(t, reconcile.StateReconciled, res.Groups[0].State)
		assert.Equal(t, 1, res.Counters.Reconciled)
		assertDecimal(t, "0", res.Counters.TotalDifference)
	})

	t.Run("diverging reports mismatch", func(t *testing.T) {
		items := []reconcile.LineItem{
			line(1, reconcile.ReporterStore, 3, "100", reconcile.StatusApproved),
			line(1, reconcile.ReporterGuide, 2, "100", reconcile.StatusApproved),
		}

		res := reconcile.Reconcile(items, reconcile.KeyBySale)

		require.Len(t, res.Groups, 1)
		assert.Equal(t, reconcile.StateMismatched, res.Groups[0].State)
		assertDecimal(t, "100", res.Groups[0].Difference)
		assert.Equal(t, 1, res.Counters.Mismatched)
		assertDecimal(t, "100", res.Counters.TotalDifference)
	})

	t.Run("one-sided reports await the other side", func(t *testing.T) {
		storeOnly := line(1, reconcile.ReporterStore, 1, "80", reconcile.StatusApproved)
		guideOnly := line(2, reconcile.ReporterGuide, 1, "80", reconcile.StatusPending)

		res := reconcile.Reconcile([]reconcile.LineItem{guideOnly, storeOnly}, reconcile.KeyBySale)

		require.Len(t, res.Groups, 2)
		assert.Equal(t, reconcile.Key("1"), res.Groups[0].Key)
		assert.Equal(t, reconcile.StateAwaitingGuideReport, res.Groups[0].State)
		assert.Equal(t, reconcile.StateAwaitingStoreReport, res.Groups[1].State)
		assert.Equal(t, 1, res.Counters.AwaitingGuideReport)
		assert.Equal(t, 1, res.Counters.AwaitingStoreReport)
	})

	t.Run("cancelled-only group is dropped but audited", func(t *testing.T) {
		items := []reconcile.LineItem{
			line(1, reconcile.ReporterStore, 1, "10", reconcile.StatusCancelled),
			line(2, reconcile.ReporterStore, 1, "10", reconcile.StatusApproved),
			line(2, reconcile.ReporterGuide, 1, "10", reconcile.StatusApproved),
		}

		res := reconcile.Reconcile(items, reconcile.KeyBySale)

		require.Len(t, res.Groups, 1)
		assert.Equal(t, reconcile.Key("2"), res.Groups[0].Key)
		assert.Equal(t, items, res.AuditItems)
	})

	t.Run("audit items do not alias the input", func(t *testing.T) {
		items := []reconcile.LineItem{line(1, reconcile.ReporterStore, 1, "10", reconcile.StatusApproved)}

		res := reconcile.Reconcile(items, reconcile.KeyBySale)
		items[0].Quantity = 99

		assert.Equal(t, int64(1), res.AuditItems[0].Quantity)
	})

	t.Run("reconciliation is idempotent", func(t *testing.T) {
		items := []reconcile.LineItem{
			line(1, reconcile.ReporterStore, 2, "10.005", reconcile.StatusApproved),
			line(1, reconcile.ReporterGuide, 2, "10", reconcile.StatusApproved),
			line(2, reconcile.ReporterGuide, 1, "7", reconcile.StatusApproved),
		}

		assert.Equal(t, reconcile.Reconcile(items, reconcile.KeyByVisit), reconcile.Reconcile(items, reconcile.KeyByVisit))
	})
}
