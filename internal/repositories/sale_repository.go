package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tour_sales_backend/internal/models"
	"tour_sales_backend/internal/reconcile"

	"github.com/lib/pq"
)

//go:generate mockgen -destination=mocks/mock_sale_repository.go -package=mocks tour_sales_backend/internal/repositories SaleRepository

// SaleRepository persists sale headers and their line items.
type SaleRepository interface {
	CreateSale(ctx context.Context, executor SQLExecutor, sale *models.Sale) (int64, error)
	GetSaleByID(ctx context.Context, executor SQLExecutor, saleID int64) (*models.Sale, error)
	LockSale(ctx context.Context, executor SQLExecutor, saleID int64) (*models.Sale, error)
	ListSales(ctx context.Context, filters models.SaleFilters) ([]models.Sale, int, error)
	UpdateSaleHeader(ctx context.Context, executor SQLExecutor, sale *models.Sale, expectedVersion int) error
	DeleteSale(ctx context.Context, executor SQLExecutor, saleID int64) error

	GetItemsBySaleID(ctx context.Context, executor SQLExecutor, saleID int64) ([]models.SaleItem, error)
	CreateItem(ctx context.Context, executor SQLExecutor, item *models.SaleItem) (int64, error)
	UpdateItem(ctx context.Context, executor SQLExecutor, item *models.SaleItem) error
	DeleteItems(ctx context.Context, executor SQLExecutor, saleID int64, itemIDs []int64) (int64, error)
}

type saleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) SaleRepository {
	return &saleRepository{db: db}
}

const selectSale = `
	SELECT s.id, s.company_id, s.store_id, s.operator_id, s.tour_id, s.guide_id,
	       s.group_arrival_date, s.store_entry_date, s.group_pax, s.store_pax, s.notes,
	       s.version, s.created_by, s.created_at, s.updated_at,
	       c.name, st.name, o.name, t.name, g.name
	FROM sales s
	LEFT JOIN companies c ON s.company_id = c.id
	LEFT JOIN stores st ON s.store_id = st.id
	LEFT JOIN operators o ON s.operator_id = o.id
	LEFT JOIN tours t ON s.tour_id = t.id
	LEFT JOIN guides g ON s.guide_id = g.id`

func scanSale(row scanner, extra ...interface{}) (*models.Sale, error) {
	s := &models.Sale{}
	var operatorID, tourID, guideID, createdBy sql.NullInt64
	var entryDate sql.NullTime
	dest := []interface{}{
		&s.ID, &s.CompanyID, &s.StoreID, &operatorID, &tourID, &guideID,
		&s.GroupArrivalDate, &entryDate, &s.GroupPax, &s.StorePax, &s.Notes,
		&s.Version, &createdBy, &s.CreatedAt, &s.UpdatedAt,
		&s.CompanyName, &s.StoreName, &s.OperatorName, &s.TourName, &s.GuideName,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	s.OperatorID = nullableInt64(operatorID)
	s.TourID = nullableInt64(tourID)
	s.GuideID = nullableInt64(guideID)
	s.CreatedBy = nullableInt64(createdBy)
	if entryDate.Valid {
		s.StoreEntryDate = &entryDate.Time
	}
	return s, nil
}

func nullableInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func (r *saleRepository) CreateSale(ctx context.Context, executor SQLExecutor, sale *models.Sale) (int64, error) {
	query := `INSERT INTO sales
	            (company_id, store_id, operator_id, tour_id, guide_id, group_arrival_date, store_entry_date,
	             group_pax, store_pax, notes, version, created_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, $11, $12, $12)
	          RETURNING id, version`

	now := time.Now()
	err := executor.QueryRowContext(ctx, query,
		sale.CompanyID, sale.StoreID, sale.OperatorID, sale.TourID, sale.GuideID, sale.GroupArrivalDate, sale.StoreEntryDate,
		sale.GroupPax, sale.StorePax, sale.Notes, sale.CreatedBy, now,
	).Scan(&sale.ID, &sale.Version)
	if err != nil {
		return 0, wrapDBError("creating sale", err)
	}
	sale.CreatedAt, sale.UpdatedAt = now, now
	return sale.ID, nil
}

func (r *saleRepository) GetSaleByID(ctx context.Context, executor SQLExecutor, saleID int64) (*models.Sale, error) {
	sale, err := scanSale(executor.QueryRowContext(ctx, selectSale+` WHERE s.id = $1`, saleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting sale by ID %d: %v", ErrDatabaseError, saleID, err)
	}
	return sale, nil
}

// LockSale reads the header with a row lock held until the surrounding transaction ends.
func (r *saleRepository) LockSale(ctx context.Context, executor SQLExecutor, saleID int64) (*models.Sale, error) {
	sale, err := scanSale(executor.QueryRowContext(ctx, selectSale+` WHERE s.id = $1 FOR UPDATE OF s`, saleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: locking sale %d: %v", ErrDatabaseError, saleID, err)
	}
	return sale, nil
}

func (r *saleRepository) ListSales(ctx context.Context, filters models.SaleFilters) ([]models.Sale, int, error) {
	filters.Normalize()
	sales := []models.Sale{}
	totalCount := 0

	var queryBuilder strings.Builder
	queryBuilder.WriteString(strings.Replace(selectSale, "g.name", "g.name, COUNT(*) OVER() AS total_count", 1))

	var conditions []string
	var args []interface{}
	argCounter := 1

	add := func(cond string, v interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argCounter))
		args = append(args, v)
		argCounter++
	}
	if filters.CompanyID != nil {
		add("s.company_id = $%d", *filters.CompanyID)
	}
	if filters.StoreID != nil {
		add("s.store_id = $%d", *filters.StoreID)
	}
	if filters.GuideID != nil {
		add("s.guide_id = $%d", *filters.GuideID)
	}
	if filters.DateFrom != nil {
		add("s.group_arrival_date >= $%d", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		add("s.group_arrival_date <= $%d", *filters.DateTo)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY s.group_arrival_date DESC, s.id DESC LIMIT $%d OFFSET $%d", argCounter, argCounter+1))
	args = append(args, filters.PageSize, filters.Offset())

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: listing sales: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		sale, err := scanSale(rows, &totalCount)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: scanning sale row: %v", ErrDatabaseError, err)
		}
		sales = append(sales, *sale)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating sales: %v", ErrDatabaseError, err)
	}
	return sales, totalCount, nil
}

// UpdateSaleHeader writes the header only if its stored version still equals expectedVersion,
// then bumps the version. A missing row is ErrNotFound; a newer row is ErrVersionConflict.
func (r *saleRepository) UpdateSaleHeader(ctx context.Context, executor SQLExecutor, sale *models.Sale, expectedVersion int) error {
	query := `UPDATE sales SET
	            company_id = $1, store_id = $2, operator_id = $3, tour_id = $4, guide_id = $5,
	            group_arrival_date = $6, store_entry_date = $7, group_pax = $8, store_pax = $9, notes = $10,
	            version = version + 1, updated_at = $11
	          WHERE id = $12 AND version = $13
	          RETURNING version, updated_at`

	err := executor.QueryRowContext(ctx, query,
		sale.CompanyID, sale.StoreID, sale.OperatorID, sale.TourID, sale.GuideID,
		sale.GroupArrivalDate, sale.StoreEntryDate, sale.GroupPax, sale.StorePax, sale.Notes,
		time.Now(), sale.ID, expectedVersion,
	).Scan(&sale.Version, &sale.UpdatedAt)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return wrapDBError(fmt.Sprintf("updating sale %d", sale.ID), err)
	}

	var current int
	if err := executor.QueryRowContext(ctx, `SELECT version FROM sales WHERE id = $1`, sale.ID).Scan(&current); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: reading version of sale %d: %v", ErrDatabaseError, sale.ID, err)
	}
	return fmt.Errorf("%w: sale %d is at version %d, expected %d", ErrVersionConflict, sale.ID, current, expectedVersion)
}

// DeleteSale removes the header; its items go with it through ON DELETE CASCADE.
func (r *saleRepository) DeleteSale(ctx context.Context, executor SQLExecutor, saleID int64) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, saleID)
	if err != nil {
		return wrapDBError(fmt.Sprintf("deleting sale %d", saleID), err)
	}
	return expectOneRow("deleting sale", res)
}

// --- Sale item methods ---

func (r *saleRepository) GetItemsBySaleID(ctx context.Context, executor SQLExecutor, saleID int64) ([]models.SaleItem, error) {
	query := `SELECT si.id, si.sale_id, si.product_id, p.name, si.reporter_type, si.quantity, si.unit_price, si.status,
	                 si.agency_pct, si.guide_pct, si.captain_pct, si.office_pct, si.rate_override, si.notes,
	                 si.created_at, si.updated_at
	          FROM sale_items si
	          LEFT JOIN products p ON si.product_id = p.id
	          WHERE si.sale_id = $1
	          ORDER BY si.reporter_type, si.id`

	rows, err := executor.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("%w: getting items for sale %d: %v", ErrDatabaseError, saleID, err)
	}
	defer rows.Close()

	items := []models.SaleItem{}
	for rows.Next() {
		var it models.SaleItem
		var reporter, status string
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &reporter, &it.Quantity, &it.UnitPrice, &status,
			&it.Rates.Agency, &it.Rates.Guide, &it.Rates.Captain, &it.Rates.Office, &it.RateOverride, &it.Notes,
			&it.CreatedAt, &it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning sale item: %v", ErrDatabaseError, err)
		}
		it.ReporterType = reconcile.ReporterType(reporter)
		it.Status = reconcile.Status(status)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sale items: %v", ErrDatabaseError, err)
	}
	return items, nil
}

func (r *saleRepository) CreateItem(ctx context.Context, executor SQLExecutor, item *models.SaleItem) (int64, error) {
	query := `INSERT INTO sale_items
	            (sale_id, product_id, reporter_type, quantity, unit_price, status,
	             agency_pct, guide_pct, captain_pct, office_pct, rate_override, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
	          RETURNING id`

	now := time.Now()
	err := executor.QueryRowContext(ctx, query,
		item.SaleID, item.ProductID, string(item.ReporterType), item.Quantity, item.UnitPrice, string(item.Status),
		item.Rates.Agency, item.Rates.Guide, item.Rates.Captain, item.Rates.Office, item.RateOverride, item.Notes, now,
	).Scan(&item.ID)
	if err != nil {
		return 0, wrapDBError(fmt.Sprintf("creating item for sale %d", item.SaleID), err)
	}
	item.CreatedAt, item.UpdatedAt = now, now
	return item.ID, nil
}

// UpdateItem rewrites an item of its own sale; the reporter type of a line never changes.
func (r *saleRepository) UpdateItem(ctx context.Context, executor SQLExecutor, item *models.SaleItem) error {
	query := `UPDATE sale_items SET
	            product_id = $1, quantity = $2, unit_price = $3, status = $4,
	            agency_pct = $5, guide_pct = $6, captain_pct = $7, office_pct = $8, rate_override = $9,
	            notes = $10, updated_at = $11
	          WHERE id = $12 AND sale_id = $13 AND reporter_type = $14`

	res, err := executor.ExecContext(ctx, query,
		item.ProductID, item.Quantity, item.UnitPrice, string(item.Status),
		item.Rates.Agency, item.Rates.Guide, item.Rates.Captain, item.Rates.Office, item.RateOverride,
		item.Notes, time.Now(), item.ID, item.SaleID, string(item.ReporterType),
	)
	if err != nil {
		return wrapDBError(fmt.Sprintf("updating sale item %d", item.ID), err)
	}
	return expectOneRow("updating sale item", res)
}

func (r *saleRepository) DeleteItems(ctx context.Context, executor SQLExecutor, saleID int64, itemIDs []int64) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}
	res, err := executor.ExecContext(ctx,
		`DELETE FROM sale_items WHERE sale_id = $1 AND id = ANY($2)`, saleID, pq.Array(itemIDs))
	if err != nil {
		return 0, wrapDBError(fmt.Sprintf("deleting items of sale %d", saleID), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: deleting items: %v", ErrDatabaseError, err)
	}
	return n, nil
}
