package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tour_sales_backend/internal/models"
	"tour_sales_backend/internal/reconcile"
	"tour_sales_backend/internal/repositories"
	"tour_sales_backend/pkg/utils"
)

//go:generate mockgen -destination=mocks/mock_catalog_service.go -package=mocks tour_sales_backend/internal/services CatalogService

var (
	ErrCatalogNotFound = errors.New("catalog entry not found")
	ErrCatalogConflict = errors.New("catalog entry already exists")
	ErrCatalogInUse    = errors.New("catalog entry is still referenced")
	ErrUnknownKind     = errors.New("unknown catalog kind")
)

// CatalogEntryRequest creates or updates a catalog entry.
type CatalogEntryRequest struct {
	Name      string `json:"name" binding:"required"`
	CompanyID *int64 `json:"company_id"`
	IsActive  *bool  `json:"is_active"`
}

// StoreRateRequest sets the rates of one product in a store.
type StoreRateRequest struct {
	ProductID int64           `json:"product_id" binding:"required,gt=0"`
	Rates     reconcile.Rates `json:"rates"`
}

type CatalogService interface {
	List(ctx context.Context, kind models.CatalogKind, includeInactive bool) ([]models.CatalogEntry, error)
	Get(ctx context.Context, kind models.CatalogKind, id int64) (*models.CatalogEntry, error)
	Create(ctx context.Context, actor models.Actor, kind models.CatalogKind, req CatalogEntryRequest) (*models.CatalogEntry, error)
	Update(ctx context.Context, actor models.Actor, kind models.CatalogKind, id int64, req CatalogEntryRequest) (*models.CatalogEntry, error)
	Delete(ctx context.Context, actor models.Actor, kind models.CatalogKind, id int64) error

	ListStoreRates(ctx context.Context, storeID int64) ([]models.StoreProductRate, error)
	SetStoreRate(ctx context.Context, actor models.Actor, storeID int64, req StoreRateRequest) (*models.StoreProductRate, error)
	DeleteStoreRate(ctx context.Context, actor models.Actor, storeID, productID int64) error
}

type catalogService struct {
	repo  repositories.CatalogRepository
	db    repositories.SQLExecutor
	cache ReportCache
}

func NewCatalogService(repo repositories.CatalogRepository, db repositories.SQLExecutor, cache ReportCache) CatalogService {
	return &catalogService{repo: repo, db: db, cache: cache}
}

func requireAdmin(actor models.Actor) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}
	return nil
}

func checkKind(kind models.CatalogKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return nil
}

func mapCatalogError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrCatalogNotFound
	case errors.Is(err, repositories.ErrDuplicateKey):
		return fmt.Errorf("%w: %v", ErrCatalogConflict, err)
	case errors.Is(err, repositories.ErrForeignKey):
		return fmt.Errorf("%w: %v", ErrCatalogInUse, err)
	case errors.Is(err, repositories.ErrCheckViolation):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return err
}

func (s *catalogService) entryFromRequest(kind models.CatalogKind, req CatalogEntryRequest) (models.CatalogEntry, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.CatalogEntry{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	entry := models.CatalogEntry{Name: name, IsActive: true}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}
	if kind == models.KindStores {
		if req.CompanyID == nil || *req.CompanyID <= 0 {
			return models.CatalogEntry{}, fmt.Errorf("%w: stores need a company_id", ErrValidation)
		}
		entry.CompanyID = req.CompanyID
	}
	return entry, nil
}

func (s *catalogService) List(ctx context.Context, kind models.CatalogKind, includeInactive bool) ([]models.CatalogEntry, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	entries, err := s.repo.List(ctx, kind, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}
	return entries, nil
}

func (s *catalogService) Get(ctx context.Context, kind models.CatalogKind, id int64) (*models.CatalogEntry, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	entry, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, mapCatalogError(err)
	}
	return entry, nil
}

func (s *catalogService) Create(ctx context.Context, actor models.Actor, kind models.CatalogKind, req CatalogEntryRequest) (*models.CatalogEntry, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	entry, err := s.entryFromRequest(kind, req)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.Create(ctx, s.db, kind, &entry); err != nil {
		return nil, mapCatalogError(err)
	}
	utils.LogInfo("Catalog entry created", map[string]interface{}{"kind": kind, "id": entry.ID, "user_id": actor.UserID})
	return &entry, nil
}

func (s *catalogService) Update(ctx context.Context, actor models.Actor, kind models.CatalogKind, id int64, req CatalogEntryRequest) (*models.CatalogEntry, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	entry, err := s.entryFromRequest(kind, req)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	if err := s.repo.Update(ctx, s.db, kind, &entry); err != nil {
		return nil, mapCatalogError(err)
	}
	// Report labels come from catalog names.
	s.invalidate(ctx)
	return &entry, nil
}

func (s *catalogService) Delete(ctx context.Context, actor models.Actor, kind models.CatalogKind, id int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := checkKind(kind); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, s.db, kind, id); err != nil {
		return mapCatalogError(err)
	}
	utils.LogInfo("Catalog entry deleted", map[string]interface{}{"kind": kind, "id": id, "user_id": actor.UserID})
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) ListStoreRates(ctx context.Context, storeID int64) ([]models.StoreProductRate, error) {
	rates, err := s.repo.ListStoreRates(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates of store %d: %w", storeID, err)
	}
	return rates, nil
}

// SetStoreRate inserts or replaces the rates of a product in a store. Every store line without an
// admin override follows the new rates, past sales included.
func (s *catalogService) SetStoreRate(ctx context.Context, actor models.Actor, storeID int64, req StoreRateRequest) (*models.StoreProductRate, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if req.ProductID <= 0 {
		return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}
	r := req.Rates
	for _, v := range []struct {
		name string
		ok   bool
	}{
		{"agency_pct", validRate(r.Agency)},
		{"guide_pct", validRate(r.Guide)},
		{"captain_pct", validRate(r.Captain)},
		{"office_pct", validRate(r.Office)},
	} {
		if !v.ok {
			return nil, fmt.Errorf("%w: %s must be between 0 and 100", ErrValidation, v.name)
		}
	}

	rate := models.StoreProductRate{StoreID: storeID, ProductID: req.ProductID, Rates: r}
	if err := s.repo.UpsertStoreRate(ctx, s.db, &rate); err != nil {
		return nil, mapCatalogError(err)
	}
	utils.LogInfo("Store rate updated", map[string]interface{}{"store_id": storeID, "product_id": req.ProductID, "user_id": actor.UserID})
	s.invalidate(ctx)
	return &rate, nil
}

func (s *catalogService) DeleteStoreRate(ctx context.Context, actor models.Actor, storeID, productID int64) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.DeleteStoreRate(ctx, s.db, storeID, productID); err != nil {
		return mapCatalogError(err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *catalogService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateReports(ctx); err != nil {
		utils.LogError(err, "Failed to invalidate report cache")
	}
}
