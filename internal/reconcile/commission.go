package reconcile

import (
	"github.com/shopspring/decimal"
)

// StoreProduct identifies a row of the store-product rate table.
type StoreProduct struct {
	StoreID   int64
	ProductID int64
}

// RateTable holds the configured commission rates per store and product.
type RateTable map[StoreProduct]Rates

// Lookup returns the configured rates for the pair, if any.
func (t RateTable) Lookup(storeID, productID int64) (Rates, bool) {
	r, ok := t[StoreProduct{StoreID: storeID, ProductID: productID}]
	return r, ok
}

// CommissionBreakdown is the commission split of one line.
type CommissionBreakdown struct {
	Gross   decimal.Decimal `json:"gross"`
	Agency  decimal.Decimal `json:"agency"`
	Guide   decimal.Decimal `json:"guide"`
	Captain decimal.Decimal `json:"captain"`
	Office  decimal.Decimal `json:"office"`
	Total   decimal.Decimal `json:"total"`
}

func zeroBreakdown(gross decimal.Decimal) CommissionBreakdown {
	return CommissionBreakdown{
		Gross:   gross,
		Agency:  decimal.Zero,
		Guide:   decimal.Zero,
		Captain: decimal.Zero,
		Office:  decimal.Zero,
		Total:   decimal.Zero,
	}
}

// ResolveRates picks the effective rates of a line: rates an admin set on the line itself,
// else the store-product table entry, else zero. Guide lines always resolve to zero.
func ResolveRates(li LineItem, table RateTable) Rates {
	zero := Rates{Agency: decimal.Zero, Guide: decimal.Zero, Captain: decimal.Zero, Office: decimal.Zero}
	if li.ReporterType == ReporterGuide {
		return zero
	}
	if li.RateOverride {
		return li.Rates
	}
	if r, ok := table.Lookup(li.StoreID, li.ProductID); ok {
		return r
	}
	return zero
}

// ComputeCommissions applies rates to the gross amount of li. Guide lines earn nothing.
func ComputeCommissions(li LineItem, rates Rates) CommissionBreakdown {
	gross := li.Amount()
	if li.ReporterType == ReporterGuide {
		return zeroBreakdown(gross)
	}
	share := func(rate decimal.Decimal) decimal.Decimal {
		return gross.Mul(clampRate(rate)).Div(hundred)
	}
	b := CommissionBreakdown{
		Gross:   gross,
		Agency:  share(rates.Agency),
		Guide:   share(rates.Guide),
		Captain: share(rates.Captain),
		Office:  share(rates.Office),
	}
	b.Total = b.Agency.Add(b.Guide).Add(b.Captain).Add(b.Office)
	return b
}

// CommissionSummary is the commission total of one group of store lines.
type CommissionSummary struct {
	Key         Key             `json:"key"`
	ItemCount   int             `json:"item_count"`
	Quantity    int64           `json:"quantity"`
	TotalPax    int64           `json:"total_pax"`
	GrossPerPax decimal.Decimal `json:"gross_per_pax"`
	CommissionBreakdown
}

func (s *CommissionSummary) add(b CommissionBreakdown) {
	s.Gross = s.Gross.Add(b.Gross)
	s.Agency = s.Agency.Add(b.Agency)
	s.Guide = s.Guide.Add(b.Guide)
	s.Captain = s.Captain.Add(b.Captain)
	s.Office = s.Office.Add(b.Office)
	s.Total = s.Total.Add(b.Total)
}

// SumCommissions totals the commissions of non-cancelled store lines per key, resolving each
// line's rates against table.
func SumCommissions(items []LineItem, key KeyFunc, table RateTable) map[Key]CommissionSummary {
	type acc struct {
		summary  CommissionSummary
		paxSales map[int64]struct{}
	}
	accs := make(map[Key]*acc)
	for _, li := range items {
		if li.ReporterType != ReporterStore || li.Cancelled() {
			continue
		}
		k := key(li)
		a, ok := accs[k]
		if !ok {
			a = &acc{
				summary:  CommissionSummary{Key: k, CommissionBreakdown: zeroBreakdown(decimal.Zero)},
				paxSales: make(map[int64]struct{}),
			}
			accs[k] = a
		}
		a.summary.ItemCount++
		a.summary.Quantity += li.Quantity
		if _, seen := a.paxSales[li.SaleID]; !seen || li.SaleID == 0 {
			a.paxSales[li.SaleID] = struct{}{}
			a.summary.TotalPax += li.StorePax
		}
		a.summary.add(ComputeCommissions(li, ResolveRates(li, table)))
	}

	out := make(map[Key]CommissionSummary, len(accs))
	for k, a := range accs {
		a.summary.GrossPerPax = PaxAverage(a.summary.Gross, a.summary.TotalPax)
		out[k] = a.summary
	}
	return out
}

// CommissionSummaries flattens SumCommissions output ordered by key.
func CommissionSummaries(m map[Key]CommissionSummary) []CommissionSummary {
	out := make([]CommissionSummary, 0, len(m))
	for _, k := range SortedKeys(m) {
		out = append(out, m[k])
	}
	return out
}
