package models

import (
	"time"

	"tour_sales_backend/internal/reconcile"

	"github.com/shopspring/decimal"
)

// Sale is the header of one store visit by a tour group.
type Sale struct {
	ID               int64      `json:"id"`
	CompanyID        int64      `json:"company_id"`
	StoreID          int64      `json:"store_id"`
	OperatorID       *int64     `json:"operator_id,omitempty"`
	TourID           *int64     `json:"tour_id,omitempty"`
	GuideID          *int64     `json:"guide_id,omitempty"`
	GroupArrivalDate time.Time  `json:"group_arrival_date"`
	StoreEntryDate   *time.Time `json:"store_entry_date,omitempty"`
	GroupPax         int64      `json:"group_pax"`
	StorePax         int64      `json:"store_pax"`
	Notes            *string    `json:"notes,omitempty"`
	Version          int        `json:"version"`
	CreatedBy        *int64     `json:"created_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Joined names for list and detail views.
	CompanyName  *string `json:"company_name,omitempty"`
	StoreName    *string `json:"store_name,omitempty"`
	OperatorName *string `json:"operator_name,omitempty"`
	TourName     *string `json:"tour_name,omitempty"`
	GuideName    *string `json:"guide_name,omitempty"`

	Items []SaleItem `json:"items,omitempty"`
}

// SaleItem is one product line reported by the store or the guide.
type SaleItem struct {
	ID           int64                  `json:"id"`
	SaleID       int64                  `json:"sale_id"`
	ProductID    int64                  `json:"product_id"`
	ProductName  *string                `json:"product_name,omitempty"`
	ReporterType reconcile.ReporterType `json:"reporter_type"`
	Quantity     int64                  `json:"quantity"`
	UnitPrice    decimal.Decimal        `json:"unit_price"`
	Status       reconcile.Status       `json:"status"`
	Rates        reconcile.Rates        `json:"rates"`
	RateOverride bool                   `json:"rate_override"`
	Notes        *string                `json:"notes,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// Amount is quantity times unit price.
func (i SaleItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// SaleFilters narrows ListSales. GuideID is forced for guide actors.
type SaleFilters struct {
	CompanyID *int64
	StoreID   *int64
	GuideID   *int64
	DateFrom  *time.Time
	DateTo    *time.Time
	Page      int
	PageSize  int
}

// Normalize applies paging defaults and bounds.
func (f *SaleFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 50
	}
	if f.PageSize > 500 {
		f.PageSize = 500
	}
}

// Offset is the row offset of the current page.
func (f SaleFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}
