package reconcile

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Key identifies a group of line items.
type Key string

// KeyFunc derives the group key of a line item.
type KeyFunc func(LineItem) Key

// KeyBySale groups lines by their sale header.
func KeyBySale(li LineItem) Key {
	return Key(strconv.FormatInt(li.SaleID, 10))
}

// KeyByVisit groups lines by the natural key of a store visit: arrival date, company, store,
// operator and tour. Two sale headers recorded for the same visit land in one group.
func KeyByVisit(li LineItem) Key {
	return Key(fmt.Sprintf("%s|%d|%d|%d|%d", li.GroupArrivalDate, li.CompanyID, li.StoreID, li.OperatorID, li.TourID))
}

// KeyByCompany groups lines by company.
func KeyByCompany(li LineItem) Key { return Key(strconv.FormatInt(li.CompanyID, 10)) }

// KeyByStore groups lines by store.
func KeyByStore(li LineItem) Key { return Key(strconv.FormatInt(li.StoreID, 10)) }

// KeyByGuide groups lines by guide.
func KeyByGuide(li LineItem) Key { return Key(strconv.FormatInt(li.GuideID, 10)) }

// KeyByProduct groups lines by product.
func KeyByProduct(li LineItem) Key { return Key(strconv.FormatInt(li.ProductID, 10)) }

// KeyByDay groups lines by group arrival date.
func KeyByDay(li LineItem) Key { return Key(li.GroupArrivalDate) }

// PaxSource selects which header pax figure feeds the aggregation.
type PaxSource int

const (
	PaxStore PaxSource = iota
	PaxGroup
)

// Options tune Aggregate. The zero value counts store pax.
type Options struct {
	Pax PaxSource
}

func (o Options) paxOf(li LineItem) int64 {
	if o.Pax == PaxGroup {
		return li.GroupPax
	}
	return li.StorePax
}

// GroupSummary is the folded view of one group of line items.
type GroupSummary struct {
	Key            Key             `json:"key"`
	ItemCount      int             `json:"item_count"`
	CancelledCount int             `json:"cancelled_count"`
	Quantity       int64           `json:"quantity"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	StoreTotal     decimal.Decimal `json:"store_total"`
	GuideTotal     decimal.Decimal `json:"guide_total"`
	TotalPax       int64           `json:"total_pax"`
	PaxAverage     decimal.Decimal `json:"pax_average"`
	Items          []LineItem      `json:"items"`
}

// PaxAverage divides amount by pax, returning 0 when there is no pax.
func PaxAverage(amount decimal.Decimal, pax int64) decimal.Decimal {
	if pax <= 0 {
		return decimal.Zero
	}
	return amount.Div(decimal.NewFromInt(pax))
}

type groupAcc struct {
	summary  GroupSummary
	paxSales map[int64]struct{}
}

// Aggregate folds items into per-key summaries counting store pax.
func Aggregate(items []LineItem, key KeyFunc) map[Key]GroupSummary {
	return AggregateWith(items, key, Options{})
}

// AggregateWith folds items into per-key summaries in a single pass. Cancelled lines count
// towards ItemCount and stay in Items but add nothing to quantity or money totals. Pax is a
// header figure, so each sale contributes it once per group however many lines it has.
func AggregateWith(items []LineItem, key KeyFunc, opts Options) map[Key]GroupSummary {
	accs := make(map[Key]*groupAcc)
	for _, li := range items {
		k := key(li)
		acc, ok := accs[k]
		if !ok {
			acc = &groupAcc{
				summary: GroupSummary{
					Key:         k,
					TotalAmount: decimal.Zero,
					StoreTotal:  decimal.Zero,
					GuideTotal:  decimal.Zero,
				},
				paxSales: make(map[int64]struct{}),
			}
			accs[k] = acc
		}
		s := &acc.summary
		s.ItemCount++
		s.Items = append(s.Items, li)

		if _, seen := acc.paxSales[li.SaleID]; !seen || li.SaleID == 0 {
			acc.paxSales[li.SaleID] = struct{}{}
			s.TotalPax += opts.paxOf(li)
		}

		if li.Cancelled() {
			s.CancelledCount++
			continue
		}
		amount := li.Amount()
		s.Quantity += li.Quantity
		s.TotalAmount = s.TotalAmount.Add(amount)
		switch li.ReporterType {
		case ReporterGuide:
			s.GuideTotal = s.GuideTotal.Add(amount)
		default:
			s.StoreTotal = s.StoreTotal.Add(amount)
		}
	}

	out := make(map[Key]GroupSummary, len(accs))
	for k, acc := range accs {
		acc.summary.PaxAverage = PaxAverage(acc.summary.TotalAmount, acc.summary.TotalPax)
		out[k] = acc.summary
	}
	return out
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys[V any](m map[Key]V) []Key {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Summaries flattens an aggregation into a slice ordered by key.
func Summaries(m map[Key]GroupSummary) []GroupSummary {
	out := make([]GroupSummary, 0, len(m))
	for _, k := range SortedKeys(m) {
		out = append(out, m[k])
	}
	return out
}

// Filter returns the items for which keep is true, in input order.
func Filter(items []LineItem, keep func(LineItem) bool) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, li := range items {
		if keep(li) {
			out = append(out, li)
		}
	}
	return out
}
