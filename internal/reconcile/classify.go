package reconcile

import (
	"github.com/shopspring/decimal"
)

// Tolerance is the largest store/guide difference still treated as equal. It absorbs rounding,
// it is not a business allowance.
var Tolerance = decimal.New(1, -2)

// State is the reconciliation outcome of a group.
type State string

const (
	StateReconciled          State = "reconciled"
	StateMismatched          State = "mismatched"
	StateAwaitingGuideReport State = "awaiting_guide_report"
	StateAwaitingStoreReport State = "awaiting_store_report"
)

// Classification is the result of comparing the two totals of a group. Difference is only set
// for mismatched groups.
type Classification struct {
	State      State           `json:"state"`
	Difference decimal.Decimal `json:"difference"`
}

// Classify compares the store and guide totals of g. The second result is false when both
// totals are zero; such a group has no live lines and is never reported.
func Classify(g GroupSummary) (Classification, bool) {
	return classifyTotals(g.StoreTotal, g.GuideTotal)
}

func classifyTotals(store, guide decimal.Decimal) (Classification, bool) {
	hasStore := store.IsPositive()
	hasGuide := guide.IsPositive()
	switch {
	case hasStore && hasGuide:
		diff := store.Sub(guide).Abs()
		if diff.LessThanOrEqual(Tolerance) {
			return Classification{State: StateReconciled, Difference: decimal.Zero}, true
		}
		return Classification{State: StateMismatched, Difference: diff}, true
	case hasStore:
		return Classification{State: StateAwaitingGuideReport, Difference: decimal.Zero}, true
	case hasGuide:
		return Classification{State: StateAwaitingStoreReport, Difference: decimal.Zero}, true
	default:
		return Classification{}, false
	}
}

// ReconciledGroup is a group summary together with its classification.
type ReconciledGroup struct {
	GroupSummary
	Classification
}

// Counters tallies groups per state.
type Counters struct {
	Reconciled          int             `json:"reconciled"`
	Mismatched          int             `json:"mismatched"`
	AwaitingGuideReport int             `json:"awaiting_guide_report"`
	AwaitingStoreReport int             `json:"awaiting_store_report"`
	TotalDifference     decimal.Decimal `json:"total_difference"`
}

func (c *Counters) add(cl Classification) {
	switch cl.State {
	case StateReconciled:
		c.Reconciled++
	case StateMismatched:
		c.Mismatched++
		c.TotalDifference = c.TotalDifference.Add(cl.Difference)
	case StateAwaitingGuideReport:
		c.AwaitingGuideReport++
	case StateAwaitingStoreReport:
		c.AwaitingStoreReport++
	}
}

// ReconciliationResult is the full outcome of a reconciliation run. AuditItems lists every
// input line, cancelled ones included, even when its group was dropped.
type ReconciliationResult struct {
	Groups     []ReconciledGroup `json:"groups"`
	Counters   Counters          `json:"counters"`
	AuditItems []LineItem        `json:"audit_items"`
}

// Reconcile aggregates items by key and classifies every group, ordered by key.
func Reconcile(items []LineItem, key KeyFunc) ReconciliationResult {
	summaries := Aggregate(items, key)
	result := ReconciliationResult{
		Groups:     make([]ReconciledGroup, 0, len(summaries)),
		Counters:   Counters{TotalDifference: decimal.Zero},
		AuditItems: append(make([]LineItem, 0, len(items)), items...),
	}
	for _, k := range SortedKeys(summaries) {
		g := summaries[k]
		cl, ok := Classify(g)
		if !ok {
			continue
		}
		result.Groups = append(result.Groups, ReconciledGroup{GroupSummary: g, Classification: cl})
		result.Counters.add(cl)
	}
	return result
}
