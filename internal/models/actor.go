package models

import (
	"strconv"

	"tour_sales_backend/internal/reconcile"
)

// Actor is the authenticated caller. Services receive it explicitly and derive visibility and
// edit scope from it.
type Actor struct {
	UserID   int64
	Username string
	Role     string
	GuideID  *int64
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
func (a Actor) IsGuide() bool { return a.Role == RoleGuide }

// CanSeeSale reports whether a sale reported for saleGuideID is visible to the actor. Guides
// only see sales of their own guide record.
func (a Actor) CanSeeSale(saleGuideID *int64) bool {
	if !a.IsGuide() {
		return true
	}
	return a.GuideID != nil && saleGuideID != nil && *a.GuideID == *saleGuideID
}

// CanEdit reports whether the actor may write line items of the given reporter type.
func (a Actor) CanEdit(reporter reconcile.ReporterType) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleStandard:
		return reporter == reconcile.ReporterStore
	case RoleGuide:
		return reporter == reconcile.ReporterGuide
	}
	return false
}

// Scope is a short label of what the actor can see, used in cache keys.
func (a Actor) Scope() string {
	if a.IsGuide() {
		if a.GuideID == nil {
			return "guide:none"
		}
		return "guide:" + strconv.FormatInt(*a.GuideID, 10)
	}
	return a.Role
}
