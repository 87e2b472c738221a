package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"tour_sales_backend/internal/models"
	"tour_sales_backend/internal/reconcile"
	"tour_sales_backend/internal/repositories"
	"tour_sales_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_sale_service.go -package=mocks tour_sales_backend/internal/services SaleService

var (
	ErrSaleNotFound        = errors.New("sale not found")
	ErrSaleItemNotFound    = errors.New("sale item not found")
	ErrSaleVersionConflict = errors.New("sale was modified by someone else")
)

// SaleItemRequest is one submitted line. ID is set for lines that already exist.
type SaleItemRequest struct {
	ID           *int64           `json:"id"`
	ProductID    int64            `json:"product_id" binding:"required,gt=0"`
	ReporterType string           `json:"reporter_type" binding:"required,reporter"`
	Quantity     int64            `json:"quantity" binding:"gte=0"`
	UnitPrice    decimal.Decimal  `json:"unit_price"`
	Status       string           `json:"status" binding:"omitempty,sale_status"`
	Rates        *reconcile.Rates `json:"rates"`
	Notes        *string          `json:"notes"`
}

// SaleRequest creates or replaces a sale. Version is required on update and must match the
// stored header version.
type SaleRequest struct {
	CompanyID        int64             `json:"company_id" binding:"required,gt=0"`
	StoreID          int64             `json:"store_id" binding:"required,gt=0"`
	OperatorID       *int64            `json:"operator_id"`
	TourID           *int64            `json:"tour_id"`
	GuideID          *int64            `json:"guide_id"`
	GroupArrivalDate string            `json:"group_arrival_date" binding:"required"`
	StoreEntryDate   *string           `json:"store_entry_date"`
	GroupPax         int64             `json:"group_pax" binding:"gte=0"`
	StorePax         int64             `json:"store_pax" binding:"gte=0"`
	Notes            *string           `json:"notes"`
	Version          int               `json:"version"`
	Items            []SaleItemRequest `json:"items" binding:"dive"`
}

// SaleListResponse is one page of sales.
type SaleListResponse struct {
	Sales      []models.Sale `json:"sales"`
	TotalCount int           `json:"total_count"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
}

type SaleService interface {
	CreateSale(ctx context.Context, actor models.Actor, req SaleRequest) (*models.Sale, error)
	GetSale(ctx context.Context, actor models.Actor, saleID int64) (*models.Sale, error)
	ListSales(ctx context.Context, actor models.Actor, filters models.SaleFilters) (*SaleListResponse, error)
	UpdateSale(ctx context.Context, actor models.Actor, saleID int64, req SaleRequest) (*models.Sale, error)
	DeleteSale(ctx context.Context, actor models.Actor, saleID int64) error
}

type saleService struct {
	saleRepo    repositories.SaleRepository
	catalogRepo repositories.CatalogRepository
	db          repositories.SQLExecutor
	tx          repositories.TxRunner
	cache       ReportCache
}

func NewSaleService(
	sr repositories.SaleRepository,
	cr repositories.CatalogRepository,
	db repositories.SQLExecutor,
	tx repositories.TxRunner,
	cache ReportCache,
) SaleService {
	return &saleService{saleRepo: sr, catalogRepo: cr, db: db, tx: tx, cache: cache}
}

// --- Request validation ---

// trimNotes stores blank notes as NULL.
func trimNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	return utils.NewNullString(strings.TrimSpace(*notes))
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(reconcile.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a YYYY-MM-DD date", ErrValidation, field)
	}
	return t, nil
}

func validRate(r decimal.Decimal) bool {
	return !r.IsNegative() && r.LessThanOrEqual(decimal.NewFromInt(100))
}

// buildHeader validates the header part of req for actor.
func buildHeader(actor models.Actor, req SaleRequest) (models.Sale, error) {
	arrival, err := parseDate("group_arrival_date", req.GroupArrivalDate)
	if err != nil {
		return models.Sale{}, err
	}
	sale := models.Sale{
		CompanyID:        req.CompanyID,
		StoreID:          req.StoreID,
		OperatorID:       req.OperatorID,
		TourID:           req.TourID,
		GuideID:          req.GuideID,
		GroupArrivalDate: arrival,
		GroupPax:         req.GroupPax,
		StorePax:         req.StorePax,
		Notes:            trimNotes(req.Notes),
	}
	if req.StoreEntryDate != nil && !utils.IsEmpty(*req.StoreEntryDate) {
		entry, err := parseDate("store_entry_date", *req.StoreEntryDate)
		if err != nil {
			return models.Sale{}, err
		}
		if entry.Before(arrival) {
			return models.Sale{}, fmt.Errorf("%w: store_entry_date cannot be before group_arrival_date", ErrValidation)
		}
		sale.StoreEntryDate = &entry
	}
	if req.CompanyID <= 0 || req.StoreID <= 0 {
		return models.Sale{}, fmt.Errorf("%w: company_id and store_id are required", ErrValidation)
	}
	if req.GroupPax < 0 || req.StorePax < 0 {
		return models.Sale{}, fmt.Errorf("%w: pax cannot be negative", ErrValidation)
	}

	if actor.IsGuide() {
		if actor.GuideID == nil {
			return models.Sale{}, fmt.Errorf("%w: user is not linked to a guide", ErrForbidden)
		}
		if sale.GuideID == nil {
			sale.GuideID = actor.GuideID
		}
		if *sale.GuideID != *actor.GuideID {
			return models.Sale{}, fmt.Errorf("%w: guides can only report their own sales", ErrForbidden)
		}
	}
	return sale, nil
}

// buildItem validates one submitted line for actor. Rates are only kept for admins on store
// lines; other store lines follow the store-product table.
func buildItem(actor models.Actor, i int, req SaleItemRequest) (models.SaleItem, error) {
	reporter := reconcile.ReporterType(strings.ToLower(strings.TrimSpace(req.ReporterType)))
	if !reporter.Valid() {
		return models.SaleItem{}, fmt.Errorf("%w: item %d: reporter_type must be store or guide", ErrValidation, i+1)
	}
	if !actor.CanEdit(reporter) {
		return models.SaleItem{}, fmt.Errorf("%w: item %d: %s users cannot write %s lines", ErrForbidden, i+1, actor.Role, reporter)
	}
	status := reconcile.StatusApproved
	if !utils.IsEmpty(req.Status) {
		status = reconcile.Status(strings.ToLower(strings.TrimSpace(req.Status)))
		if !status.Valid() {
			return models.SaleItem{}, fmt.Errorf("%w: item %d: unknown status %q", ErrValidation, i+1, req.Status)
		}
	}
	if req.ProductID <= 0 {
		return models.SaleItem{}, fmt.Errorf("%w: item %d: product_id is required", ErrValidation, i+1)
	}
	if req.Quantity < 0 || req.UnitPrice.IsNegative() {
		return models.SaleItem{}, fmt.Errorf("%w: item %d: quantity and unit_price cannot be negative", ErrValidation, i+1)
	}

	item := models.SaleItem{
		ProductID:    req.ProductID,
		ReporterType: reporter,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Status:       status,
		Notes:        trimNotes(req.Notes),
		Rates:        reconcile.Rates{Agency: decimal.Zero, Guide: decimal.Zero, Captain: decimal.Zero, Office: decimal.Zero},
	}
	if req.ID != nil {
		item.ID = *req.ID
	}
	if req.Rates != nil {
		switch {
		case reporter == reconcile.ReporterGuide:
			return models.SaleItem{}, fmt.Errorf("%w: item %d: guide lines do not carry rates", ErrValidation, i+1)
		case !actor.IsAdmin():
			return models.SaleItem{}, fmt.Errorf("%w: item %d: only admins can set rates", ErrForbidden, i+1)
		}
		r := *req.Rates
		for _, v := range []decimal.Decimal{r.Agency, r.Guide, r.Captain, r.Office} {
			if !validRate(v) {
				return models.SaleItem{}, fmt.Errorf("%w: item %d: rates must be between 0 and 100", ErrValidation, i+1)
			}
		}
		item.Rates = r
		item.RateOverride = true
	}
	return item, nil
}

func buildItems(actor models.Actor, reqs []SaleItemRequest) ([]models.SaleItem, error) {
	items := make([]models.SaleItem, 0, len(reqs))
	seen := make(map[int64]bool)
	for i, r := range reqs {
		item, err := buildItem(actor, i, r)
		if err != nil {
			return nil, err
		}
		if item.ID != 0 {
			if seen[item.ID] {
				return nil, fmt.Errorf("%w: item %d is submitted twice", ErrValidation, item.ID)
			}
			seen[item.ID] = true
		}
		items = append(items, item)
	}
	return items, nil
}

// withTableRates shows store lines without an admin override at the rates of the store-product
// table, the same rates the commission report applies. Nothing is written back.
func (s *saleService) withTableRates(ctx context.Context, storeID int64, items []models.SaleItem) error {
	var productIDs []int64
	for _, it := range items {
		if it.ReporterType == reconcile.ReporterStore && !it.RateOverride {
			productIDs = append(productIDs, it.ProductID)
		}
	}
	if len(productIDs) == 0 {
		return nil
	}
	rates, err := s.catalogRepo.GetStoreRates(ctx, s.db, storeID, productIDs)
	if err != nil {
		return fmt.Errorf("failed to load store rates: %w", err)
	}
	table := make(reconcile.RateTable, len(rates))
	for productID, r := range rates {
		table[reconcile.StoreProduct{StoreID: storeID, ProductID: productID}] = r
	}
	for i := range items {
		it := &items[i]
		if it.ReporterType == reconcile.ReporterStore && !it.RateOverride {
			it.Rates = reconcile.ResolveRates(reconcile.LineItem{
				StoreID: storeID, ProductID: it.ProductID, ReporterType: it.ReporterType,
			}, table)
		}
	}
	return nil
}

func (s *saleService) invalidateReports(ctx context.Context, saleID int64) {
	if err := s.cache.InvalidateReports(ctx); err != nil {
		utils.LogError(err, "Failed to invalidate report cache", map[string]interface{}{"sale_id": saleID})
	}
}

func mapSaleRepoError(err error, saleID int64) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrSaleNotFound
	case errors.Is(err, repositories.ErrVersionConflict):
		return fmt.Errorf("%w: %v", ErrSaleVersionConflict, err)
	case errors.Is(err, repositories.ErrForeignKey):
		return fmt.Errorf("%w: sale %d references an unknown catalog entry", ErrValidation, saleID)
	case errors.Is(err, repositories.ErrCheckViolation):
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return err
}

// --- Method implementations ---

func (s *saleService) CreateSale(ctx context.Context, actor models.Actor, req SaleRequest) (*models.Sale, error) {
	sale, err := buildHeader(actor, req)
	if err != nil {
		return nil, err
	}
	items, err := buildItems(actor, req.Items)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.ID != 0 {
			return nil, fmt.Errorf("%w: new sales cannot reference existing items", ErrValidation)
		}
	}
	sale.CreatedBy = &actor.UserID

	err = s.tx.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		saleID, err := s.saleRepo.CreateSale(ctx, exec, &sale)
		if err != nil {
			return fmt.Errorf("failed to create sale record: %w", err)
		}
		sale.ID = saleID
		for i := range items {
			it := &items[i]
			it.SaleID = saleID
			if _, err := s.saleRepo.CreateItem(ctx, exec, it); err != nil {
				return fmt.Errorf("failed to create sale item (product_id: %d): %w", it.ProductID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapSaleRepoError(err, sale.ID)
	}

	utils.LogInfo("Sale created", map[string]interface{}{"sale_id": sale.ID, "user_id": actor.UserID, "items": len(items)})
	s.invalidateReports(ctx, sale.ID)
	return s.GetSale(ctx, actor, sale.ID)
}

func (s *saleService) GetSale(ctx context.Context, actor models.Actor, saleID int64) (*models.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(ctx, s.db, saleID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to get sale by ID from repository: %w", err)
	}
	// Hidden sales look missing rather than forbidden.
	if !actor.CanSeeSale(sale.GuideID) {
		return nil, ErrSaleNotFound
	}
	items, err := s.saleRepo.GetItemsBySaleID(ctx, s.db, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items of sale %d: %w", saleID, err)
	}
	if err := s.withTableRates(ctx, sale.StoreID, items); err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, actor models.Actor, filters models.SaleFilters) (*SaleListResponse, error) {
	filters.Normalize()
	if actor.IsGuide() {
		if actor.GuideID == nil {
			return &SaleListResponse{Sales: []models.Sale{}, Page: filters.Page, PageSize: filters.PageSize}, nil
		}
		filters.GuideID = actor.GuideID
	}
	sales, total, err := s.saleRepo.ListSales(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return &SaleListResponse{Sales: sales, TotalCount: total, Page: filters.Page, PageSize: filters.PageSize}, nil
}

// UpdateSale replaces the header and the actor's editable lines of a sale. The header row is
// locked for the whole transaction and the submitted version must match the stored one.
// Lines outside the actor's reporter scope are left untouched.
func (s *saleService) UpdateSale(ctx context.Context, actor models.Actor, saleID int64, req SaleRequest) (*models.Sale, error) {
	if req.Version <= 0 {
		return nil, fmt.Errorf("%w: version is required", ErrValidation)
	}
	header, err := buildHeader(actor, req)
	if err != nil {
		return nil, err
	}
	submitted, err := buildItems(actor, req.Items)
	if err != nil {
		return nil, err
	}

	var created, updated, deleted int
	err = s.tx.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		current, err := s.saleRepo.LockSale(ctx, exec, saleID)
		if err != nil {
			return err
		}
		if !actor.CanSeeSale(current.GuideID) {
			return ErrSaleNotFound
		}
		if current.Version != req.Version {
			return fmt.Errorf("%w: sale %d is at version %d, got %d", ErrSaleVersionConflict, saleID, current.Version, req.Version)
		}

		header.ID = saleID
		if err := s.saleRepo.UpdateSaleHeader(ctx, exec, &header, req.Version); err != nil {
			return err
		}

		existing, err := s.saleRepo.GetItemsBySaleID(ctx, exec, saleID)
		if err != nil {
			return fmt.Errorf("failed to load items of sale %d: %w", saleID, err)
		}
		editable := make(map[int64]models.SaleItem)
		for _, it := range existing {
			if actor.CanEdit(it.ReporterType) {
				editable[it.ID] = it
			}
		}

		for i := range submitted {
			it := &submitted[i]
			it.SaleID = saleID
			if it.ID == 0 {
				continue
			}
			prev, ok := editable[it.ID]
			if !ok || prev.ReporterType != it.ReporterType {
				return fmt.Errorf("%w: item %d does not belong to this sale", ErrSaleItemNotFound, it.ID)
			}
			// An admin override survives edits that keep the product and the store.
			if !it.RateOverride && prev.RateOverride && prev.ProductID == it.ProductID && header.StoreID == current.StoreID {
				it.Rates = prev.Rates
				it.RateOverride = true
			}
		}

		keep := make(map[int64]bool, len(submitted))
		for i := range submitted {
			it := &submitted[i]
			if it.ID == 0 {
				if _, err := s.saleRepo.CreateItem(ctx, exec, it); err != nil {
					return fmt.Errorf("failed to create sale item (product_id: %d): %w", it.ProductID, err)
				}
				created++
				continue
			}
			keep[it.ID] = true
			if err := s.saleRepo.UpdateItem(ctx, exec, it); err != nil {
				return fmt.Errorf("failed to update sale item %d: %w", it.ID, err)
			}
			updated++
		}

		var stale []int64
		for id := range editable {
			if !keep[id] {
				stale = append(stale, id)
			}
		}
		sort.Slice(stale, func(i, j int) bool { return stale[i] < stale[j] })
		n, err := s.saleRepo.DeleteItems(ctx, exec, saleID, stale)
		if err != nil {
			return fmt.Errorf("failed to delete removed items: %w", err)
		}
		deleted = int(n)
		return nil
	})
	if err != nil {
		return nil, mapSaleRepoError(err, saleID)
	}

	utils.LogInfo("Sale updated", map[string]interface{}{
		"sale_id": saleID, "user_id": actor.UserID, "created": created, "updated": updated, "deleted": deleted,
	})
	s.invalidateReports(ctx, saleID)
	return s.GetSale(ctx, actor, saleID)
}

// DeleteSale removes a sale and its lines. Admin only.
func (s *saleService) DeleteSale(ctx context.Context, actor models.Actor, saleID int64) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("%w: only admins can delete sales", ErrForbidden)
	}
	err := s.tx.RunInTx(ctx, func(exec repositories.SQLExecutor) error {
		return s.saleRepo.DeleteSale(ctx, exec, saleID)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSaleNotFound
		}
		return fmt.Errorf("failed to delete sale %d: %w", saleID, err)
	}
	utils.LogInfo("Sale deleted", map[string]interface{}{"sale_id": saleID, "user_id": actor.UserID})
	s.invalidateReports(ctx, saleID)
	return nil
}
