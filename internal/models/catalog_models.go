package models

import (
	"time"

	"tour_sales_backend/internal/reconcile"
)

// CatalogKind names one of the reference tables managed through the catalog endpoints.
type CatalogKind string

const (
	KindCompanies CatalogKind = "companies"
	KindStores    CatalogKind = "stores"
	KindOperators CatalogKind = "operators"
	KindTours     CatalogKind = "tours"
	KindGuides    CatalogKind = "guides"
	KindProducts  CatalogKind = "products"
)

// CatalogKinds lists every managed kind.
var CatalogKinds = []CatalogKind{KindCompanies, KindStores, KindOperators, KindTours, KindGuides, KindProducts}

// Valid reports whether k is a managed kind. Kinds double as table names, so this check guards
// every query built from one.
func (k CatalogKind) Valid() bool {
	for _, known := range CatalogKinds {
		if k == known {
			return true
		}
	}
	return false
}

// CatalogEntry is a row of any catalog table. CompanyID is only used by stores.
type CatalogEntry struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CompanyID *int64    `json:"company_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreProductRate is the configured commission split of a product sold in a store.
type StoreProductRate struct {
	StoreID     int64           `json:"store_id"`
	ProductID   int64           `json:"product_id"`
	ProductName *string         `json:"product_name,omitempty"`
	Rates       reconcile.Rates `json:"rates"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
