// Package reconcile holds the pure sales logic of the back office: normalizing raw sale lines,
// grouping them into summaries, classifying store and guide reports against each other and
// computing the four-party commissions. Nothing in this package performs I/O or returns errors;
// malformed input is absorbed into zero values at well-defined points.
package reconcile

import (
	"github.com/shopspring/decimal"
)

// ReporterType identifies who reported a sale line.
type ReporterType string

const (
	ReporterStore ReporterType = "store"
	ReporterGuide ReporterType = "guide"
)

// Valid reports whether r is a known reporter type.
func (r ReporterType) Valid() bool {
	return r == ReporterStore || r == ReporterGuide
}

// Status is the approval state of a sale line.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusApproved, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// Column names shared by the raw rows of the sale_lines relation.
const (
	ColItemID           = "item_id"
	ColSaleID           = "sale_id"
	ColProductID        = "product_id"
	ColCompanyID        = "company_id"
	ColStoreID          = "store_id"
	ColOperatorID       = "operator_id"
	ColTourID           = "tour_id"
	ColGuideID          = "guide_id"
	ColGroupArrivalDate = "group_arrival_date"
	ColStoreEntryDate   = "store_entry_date"
	ColGroupPax         = "group_pax"
	ColStorePax         = "store_pax"
	ColQuantity         = "quantity"
	ColUnitPrice        = "unit_price"
	ColReporterType     = "reporter_type"
	ColStatus           = "status"
	ColAgencyPct        = "agency_pct"
	ColGuidePct         = "guide_pct"
	ColCaptainPct       = "captain_pct"
	ColOfficePct        = "office_pct"
	ColRateOverride     = "rate_override"
	ColNotes            = "notes"
)

// RawRow is one record as handed over by the data query layer. Values keep whatever type the
// driver produced (int64, float64, []byte, string, time.Time, nil).
type RawRow map[string]any

// Rates are the four commission percentages of a store line, each in [0,100].
type Rates struct {
	Agency  decimal.Decimal `json:"agency_pct"`
	Guide   decimal.Decimal `json:"guide_pct"`
	Captain decimal.Decimal `json:"captain_pct"`
	Office  decimal.Decimal `json:"office_pct"`
}

// IsZero reports whether all four rates are zero.
func (r Rates) IsZero() bool {
	return r.Agency.IsZero() && r.Guide.IsZero() && r.Captain.IsZero() && r.Office.IsZero()
}

// LineItem is a normalized sale line. Header attributes of the owning sale are broadcast onto
// every line so that grouping never needs a second lookup.
type LineItem struct {
	ItemID           int64           `json:"item_id"`
	SaleID           int64           `json:"sale_id"`
	ProductID        int64           `json:"product_id"`
	CompanyID        int64           `json:"company_id"`
	StoreID          int64           `json:"store_id"`
	OperatorID       int64           `json:"operator_id"`
	TourID           int64           `json:"tour_id"`
	GuideID          int64           `json:"guide_id"`
	GroupArrivalDate string          `json:"group_arrival_date"`
	StoreEntryDate   string          `json:"store_entry_date"`
	GroupPax         int64           `json:"group_pax"`
	StorePax         int64           `json:"store_pax"`
	Quantity         int64           `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ReporterType     ReporterType    `json:"reporter_type"`
	Status           Status          `json:"status"`
	Rates            Rates           `json:"rates"`
	RateOverride     bool            `json:"rate_override"`
	Notes            string          `json:"notes,omitempty"`
}

// Amount is quantity × unit price.
func (li LineItem) Amount() decimal.Decimal {
	return decimal.NewFromInt(li.Quantity).Mul(li.UnitPrice)
}

// Cancelled reports whether the line is excluded from totals.
func (li LineItem) Cancelled() bool {
	return li.Status == StatusCancelled
}
