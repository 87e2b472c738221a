package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tour_sales_backend/internal/models"
	"tour_sales_backend/internal/reconcile"

	"github.com/lib/pq"
)

//go:generate mockgen -destination=mocks/mock_catalog_repository.go -package=mocks tour_sales_backend/internal/repositories CatalogRepository

// CatalogRepository manages the reference tables and the store-product rate table. Every
// method taking a kind expects one that passed CatalogKind.Valid.
type CatalogRepository interface {
	List(ctx context.Context, kind models.CatalogKind, includeInactive bool) ([]models.CatalogEntry, error)
	GetByID(ctx context.Context, kind models.CatalogKind, id int64) (*models.CatalogEntry, error)
	Create(ctx context.Context, executor SQLExecutor, kind models.CatalogKind, entry *models.CatalogEntry) (int64, error)
	Update(ctx context.Context, executor SQLExecutor, kind models.CatalogKind, entry *models.CatalogEntry) error
	Delete(ctx context.Context, executor SQLExecutor, kind models.CatalogKind, id int64) error

	ListStoreRates(ctx context.Context, storeID int64) ([]models.StoreProductRate, error)
	GetStoreRates(ctx context.Context, executor SQLExecutor, storeID int64, productIDs []int64) (map[int64]reconcile.Rates, error)
	UpsertStoreRate(ctx context.Context, executor SQLExecutor, rate *models.StoreProductRate) error
	DeleteStoreRate(ctx context.Context, executor SQLExecutor, storeID, productID int64) error
}

type catalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// companyColumn selects company_id for stores and NULL elsewhere so every kind scans alike.
func companyColumn(kind models.CatalogKind) string {
	if kind == models.KindStores {
		return "company_id"
	}
	return "NULL::BIGINT"
}

func checkKind(kind models.CatalogKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown catalog kind %q", ErrNotFound, kind)
	}
	return nil
}

func scanEntry(row scanner) (models.CatalogEntry, error) {
	var e models.CatalogEntry
	var companyID sql.NullInt64
	if err := row.Scan(&e.ID, &e.Name, &companyID, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return e, err
	}
	e.CompanyID = nullableInt64(companyID)
	return e, nil
}

func (r *catalogRepository) List(ctx context.Context, kind models.CatalogKind, includeInactive bool) ([]models.CatalogEntry, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, name, %s, is_active, created_at, updated_at FROM %s`, companyColumn(kind), kind)
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", ErrDatabaseError, kind, err)
	}
	defer rows.Close()

	entries := []models.CatalogEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning %s row: %v", ErrDatabaseError, kind, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating %s: %v", ErrDatabaseError, kind, err)
	}
	return entries, nil
}

func (r *catalogRepository) GetByID(ctx context.Context, kind models.CatalogKind, id int64) (*models.CatalogEntry, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT id, name, %s, is_active, created_at, updated_at FROM %s WHERE id = $1`, companyColumn(kind), kind)
	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting %s %d: %v", ErrDatabaseError, kind, id, err)
	}
	return &e, nil
}

func (r *catalogRepository) Create(ctx context.Context, executor SQLExecutor, kind models.CatalogKind, entry *models.CatalogEntry) (int64, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	now := time.Now()
	var err error
	if kind == models.KindStores {
		err = executor.QueryRowContext(ctx,
			`INSERT INTO stores (name, company_id, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $4) RETURNING id`,
			entry.Name, entry.CompanyID, entry.IsActive, now,
		).Scan(&entry.ID)
	} else {
		err = executor.QueryRowContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (name, is_active, created_at, updated_at) VALUES ($1, $2, $3, $3) RETURNING id`, kind),
			entry.Name, entry.IsActive, now,
		).Scan(&entry.ID)
	}
	if err != nil {
		return 0, wrapDBError(fmt.Sprintf("creating %s entry", kind), err)
	}
	entry.CreatedAt, entry.UpdatedAt = now, now
	return entry.ID, nil
}

func (r *catalogRepository) Update(ctx context.Context, executor SQLExecutor, kind models.CatalogKind, entry *models.CatalogEntry) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	now := time.Now()
	var res sql.Result
	var err error
	if kind == models.KindStores {
		res, err = executor.ExecContext(ctx,
			`UPDATE stores SET name = $1, company_id = $2, is_active = $3, updated_at = $4 WHERE id = $5`,
			entry.Name, entry.CompanyID, entry.IsActive, now, entry.ID)
	} else {
		res, err = executor.ExecContext(ctx,
			fmt.Sprintf(`UPDATE %s SET name = $1, is_active = $2, updated_at = $3 WHERE id = $4`, kind),
			entry.Name, entry.IsActive, now, entry.ID)
	}
	if err != nil {
		return wrapDBError(fmt.Sprintf("updating %s %d", kind, entry.ID), err)
	}
	entry.UpdatedAt = now
	return expectOneRow("updating catalog entry", res)
}

// Delete removes an entry. Entries still referenced by sales fail with ErrForeignKey; callers
// deactivate those instead.
func (r *catalogRepository) Delete(ctx context.Context, executor SQLExecutor, kind models.CatalogKind, id int64) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	res, err := executor.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, kind), id)
	if err != nil {
		return wrapDBError(fmt.Sprintf("deleting %s %d", kind, id), err)
	}
	return expectOneRow("deleting catalog entry", res)
}

// --- Store-product rates ---

func (r *catalogRepository) ListStoreRates(ctx context.Context, storeID int64) ([]models.StoreProductRate, error) {
	query := `SELECT sp.store_id, sp.product_id, p.name, sp.agency_pct, sp.guide_pct, sp.captain_pct, sp.office_pct, sp.updated_at
	          FROM store_products sp
	          JOIN products p ON p.id = sp.product_id
	          WHERE sp.store_id = $1
	          ORDER BY p.name`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing rates of store %d: %v", ErrDatabaseError, storeID, err)
	}
	defer rows.Close()

	rates := []models.StoreProductRate{}
	for rows.Next() {
		var sp models.StoreProductRate
		if err := rows.Scan(&sp.StoreID, &sp.ProductID, &sp.ProductName,
			&sp.Rates.Agency, &sp.Rates.Guide, &sp.Rates.Captain, &sp.Rates.Office, &sp.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning store rate: %v", ErrDatabaseError, err)
		}
		rates = append(rates, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating store rates: %v", ErrDatabaseError, err)
	}
	return rates, nil
}

// GetStoreRates returns the configured rates of the given products in a store, keyed by product.
// Products without a row are absent from the map.
func (r *catalogRepository) GetStoreRates(ctx context.Context, executor SQLExecutor, storeID int64, productIDs []int64) (map[int64]reconcile.Rates, error) {
	out := make(map[int64]reconcile.Rates, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	rows, err := executor.QueryContext(ctx,
		`SELECT product_id, agency_pct, guide_pct, captain_pct, office_pct
		 FROM store_products WHERE store_id = $1 AND product_id = ANY($2)`,
		storeID, pq.Array(productIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: getting rates of store %d: %v", ErrDatabaseError, storeID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID int64
		var rates reconcile.Rates
		if err := rows.Scan(&productID, &rates.Agency, &rates.Guide, &rates.Captain, &rates.Office); err != nil {
			return nil, fmt.Errorf("%w: scanning store rate: %v", ErrDatabaseError, err)
		}
		out[productID] = rates
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating store rates: %v", ErrDatabaseError, err)
	}
	return out, nil
}

func (r *catalogRepository) UpsertStoreRate(ctx context.Context, executor SQLExecutor, rate *models.StoreProductRate) error {
	query := `INSERT INTO store_products (store_id, product_id, agency_pct, guide_pct, captain_pct, office_pct, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (store_id, product_id) DO UPDATE SET
	            agency_pct = EXCLUDED.agency_pct, guide_pct = EXCLUDED.guide_pct,
	            captain_pct = EXCLUDED.captain_pct, office_pct = EXCLUDED.office_pct,
	            updated_at = EXCLUDED.updated_at`
	rate.UpdatedAt = time.Now()
	_, err := executor.ExecContext(ctx, query, rate.StoreID, rate.ProductID,
		rate.Rates.Agency, rate.Rates.Guide, rate.Rates.Captain, rate.Rates.Office, rate.UpdatedAt)
	if err != nil {
		return wrapDBError(fmt.Sprintf("saving rate of product %d in store %d", rate.ProductID, rate.StoreID), err)
	}
	return nil
}

func (r *catalogRepository) DeleteStoreRate(ctx context.Context, executor SQLExecutor, storeID, productID int64) error {
	res, err := executor.ExecContext(ctx, `DELETE FROM store_products WHERE store_id = $1 AND product_id = $2`, storeID, productID)
	if err != nil {
		return wrapDBError("deleting store rate", err)
	}
	return expectOneRow("deleting store rate", res)
}
