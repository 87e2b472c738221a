package services_test

import (
	"context"
	"testing"
	"time"

	"tour_sales_backend/internal/models"
	"tour_sales_backend/internal/reconcile"
	"tour_sales_backend/internal/repositories"
	mock_repositories "tour_sales_backend/internal/repositories/mocks"
	"tour_sales_backend/internal/services"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminActor    = models.Actor{UserID: 1, Username: "admin", Role: models.RoleAdmin}
	standardActor = models.Actor{UserID: 2, Username: "store", Role: models.RoleStandard}
	guideActor    = models.Actor{UserID: 3, Username: "guide", Role: models.RoleGuide, GuideID: int64Ptr(5)}
)

type saleFixture struct {
	sales   *mock_repositories.MockSaleRepository
	catalog *mock_repositories.MockCatalogRepository
	tx      *inlineTx
	cache   *memCache
	svc     services.SaleService
}

func newSaleFixture(t *testing.T) *saleFixture {
	ctrl := gomock.NewController(t)
	f := &saleFixture{
		sales:   mock_repositories.NewMockSaleRepository(ctrl),
		catalog: mock_repositories.NewMockCatalogRepository(ctrl),
		tx:      &inlineTx{},
		cache:   newMemCache(),
	}
	f.svc = services.NewSaleService(f.sales, f.catalog, nil, f.tx, f.cache)
	return f
}

func pct(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func storeItemReq(productID, qty int64, price string) services.SaleItemRequest {
	return services.SaleItemRequest{
		ProductID:    productID,
		ReporterType: "store",
		Quantity:     qty,
		UnitPrice:    decimal.RequireFromString(price),
	}
}

func guideItemReq(productID, qty int64, price string) services.SaleItemRequest {
	r := storeItemReq(productID, qty, price)
	r.ReporterType = "guide"
	return r
}

func saleReq(items ...services.SaleItemRequest) services.SaleRequest {
	return services.SaleRequest{
		CompanyID:        1,
		StoreID:          2,
		GuideID:          int64Ptr(5),
		GroupArrivalDate: "2026-06-01",
		GroupPax:         30,
		StorePax:         20,
		Items:            items,
	}
}

func (f *saleFixture) expectReload(saleID int64, guideID *int64, items []models.SaleItem) {
	f.sales.EXPECT().GetSaleByID(gomock.Any(), gomock.Any(), saleID).
		Return(&models.Sale{ID: saleID, CompanyID: 1, StoreID: 2, GuideID: guideID, Version: 2}, nil)
	f.sales.EXPECT().GetItemsBySaleID(gomock.Any(), gomock.Any(), saleID).Return(items, nil)
}

func TestSaleService_CreateSale(t *testing.T) {
	ctx := context.Background()

	t.Run("store lines without override store no rates", func(t *testing.T) {
		f := newSaleFixture(t)
		table := reconcile.Rates{Agency: pct("10"), Guide: pct("5"), Captain: pct("0"), Office: pct("1")}

		f.sales.EXPECT().CreateSale(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ repositories.SQLExecutor, sale *models.Sale) (int64, error) {
				assert.Equal(t, int64(2), *sale.CreatedBy)
				assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), sale.GroupArrivalDate)
				sale.ID = 10
				return 10, nil
			})
		f.sales.EXPECT().CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ repositories.SQLExecutor, item *models.SaleItem) (int64, error) {
				assert.Equal(t, int64(10), item.SaleID)
				assert.Equal(t, reconcile.StatusApproved, item.Status)
				assert.False(t, item.RateOverride)
				assert.True(t, item.Rates.Agency.IsZero())
				return 100, nil
			})
		stored := []models.SaleItem{{ID: 100, SaleID: 10, ProductID: 6, ReporterType: reconcile.ReporterStore, Quantity: 2, UnitPrice: pct("100")}}
		f.expectReload(10, int64Ptr(5), stored)
		f.catalog.EXPECT().GetStoreRates(gomock.Any(), gomock.Any(), int64(2), []int64{6}).
			Return(map[int64]reconcile.Rates{6: table}, nil)

		sale, err := f.svc.CreateSale(ctx, standardActor, saleReq(storeItemReq(6, 2, "100")))

		require.NoError(t, err)
		assert.Equal(t, int64(10), sale.ID)
		require.Len(t, sale.Items, 1)
		assert.True(t, table.Agency.Equal(sale.Items[0].Rates.Agency), "detail shows the table rate")
		assert.Equal(t, 1, f.cache.invalidated)
	})

	t.Run("admin rates are kept as an override", func(t *testing.T) {
		f := newSaleFixture(t)
		item := storeItemReq(6, 1, "50")
		item.Rates = &reconcile.Rates{Agency: pct("10"), Guide: pct("0"), Captain: pct("0"), Office: pct("5")}

		f.sales.EXPECT().CreateSale(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(11), nil)
		f.sales.EXPECT().CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ repositories.SQLExecutor, it *models.SaleItem) (int64, error) {
				assert.True(t, it.RateOverride)
				assert.True(t, pct("5").Equal(it.Rates.Office))
				return 1, nil
			})
		f.expectReload(11, int64Ptr(5), nil)

		_, err := f.svc.CreateSale(ctx, adminActor, saleReq(item))
		require.NoError(t, err)
	})

	t.Run("blank notes are stored as null", func(t *testing.T) {
		f := newSaleFixture(t)
		blank, padded := "   ", " fragile "
		item := guideItemReq(6, 1, "50")
		item.Notes = &padded
		req := saleReq(item)
		req.Notes = &blank

		f.sales.EXPECT().CreateSale(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ repositories.SQLExecutor, sale *models.Sale) (int64, error) {
				assert.Nil(t, sale.Notes)
				return 12, nil
			})
		f.sales.EXPECT().CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ repositories.SQLExecutor, it *models.SaleItem) (int64, error) {
				require.NotNil(t, it.Notes)
				assert.Equal(t, "fragile", *it.Notes)
				return 1, nil
			})
		f.expectReload(12, int64Ptr(5), nil)

		_, err := f.svc.CreateSale(ctx, guideActor, req)
		require.NoError(t, err)
	})

	rejected := []struct {
		name    string
		actor   models.Actor
		req     func() services.SaleRequest
		wantErr error
	}{
		{
			name:  "standard user cannot send rates",
			actor: standardActor,
			req: func() services.SaleRequest {
				it := storeItemReq(6, 1, "50")
				it.Rates = &reconcile.Rates{}
				return saleReq(it)
			},
			wantErr: services.ErrForbidden,
		},
		{
			name:  "guide lines never carry rates",
			actor: adminActor,
			req: func() services.SaleRequest {
				it := guideItemReq(6, 1, "50")
				it.Rates = &reconcile.Rates{}
				return saleReq(it)
			},
			wantErr: services.ErrValidation,
		},
		{
			name:    "guide cannot write store lines",
			actor:   guideActor,
			req:     func() services.SaleRequest { return saleReq(storeItemReq(6, 1, "50")) },
			wantErr: services.ErrForbidden,
		},
		{
			name:  "guide cannot report for another guide",
			actor: guideActor,
			req: func() services.SaleRequest {
				r := saleReq(guideItemReq(6, 1, "50"))
				r.GuideID = int64Ptr(9)
				return r
			},
			wantErr: services.ErrForbidden,
		},
		{
			name:  "rates above 100 are rejected",
			actor: adminActor,
			req: func() services.SaleRequest {
				it := storeItemReq(6, 1, "50")
				it.Rates = &reconcile.Rates{Agency: pct("100.5"), Guide: pct("0"), Captain: pct("0"), Office: pct("0")}
				return saleReq(it)
			},
			wantErr: services.ErrValidation,
		},
		{
			name:  "entry before arrival is rejected",
			actor: adminActor,
			req: func() services.SaleRequest {
				r := saleReq()
				entry := "2026-05-31"
				r.StoreEntryDate = &entry
				return r
			},
			wantErr: services.ErrValidation,
		},
		{
			name:  "negative quantity is rejected",
			actor: adminActor,
			req: func() services.SaleRequest {
				return saleReq(storeItemReq(6, -1, "50"))
			},
			wantErr: services.ErrValidation,
		},
		{
			name:  "unknown status is rejected",
			actor: adminActor,
			req: func() services.SaleRequest {
				it := storeItemReq(6, 1, "50")
				it.Status = "refunded"
				return saleReq(it)
			},
			wantErr: services.ErrValidation,
		},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			f := newSaleFixture(t)

			_, err := f.svc.CreateSale(ctx, tt.actor, tt.req())

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.tx.runs)
		})
	}

	t.Run("guide header defaults to the linked guide", func(t *testing.T) {
		f := newSaleFixture(t)
		req := saleReq(guideItemReq(6, 2, "100"))
		req.GuideID = nil

		f.sales.EXPECT().CreateSale(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ repositories.SQLExecutor, sale *models.Sale) (int64, error) {
				require.NotNil(t, sale.GuideID)
				assert.Equal(t, int64(5), *sale.GuideID)
				sale.ID = 12
				return 12, nil
			})
		f.sales.EXPECT().CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.expectReload(12, int64Ptr(5), nil)

		_, err := f.svc.CreateSale(ctx, guideActor, req)
		require.NoError(t, err)
	})
}

func TestSaleService_GetSale(t *testing.T) {
	ctx := context.Background()

	t.Run("guide does not see other guides' sales", func(t *testing.T) {
		f := newSaleFixture(t)
		f.sales.EXPECT().GetSaleByID(gomock.Any(), gomock.Any(), int64(7)).
			Return(&models.Sale{ID: 7, GuideID: int64Ptr(8)}, nil)

		_, err := f.svc.GetSale(ctx, guideActor, 7)

		assert.ErrorIs(t, err, services.ErrSaleNotFound)
	})

	t.Run("detail follows the current table unless overridden", func(t *testing.T) {
		f := newSaleFixture(t)
		items := []models.SaleItem{
			{ID: 1, ProductID: 6, ReporterType: reconcile.ReporterStore, Rates: reconcile.Rates{Agency: pct("10")}},
			{ID: 2, ProductID: 7, ReporterType: reconcile.ReporterStore, Rates: reconcile.Rates{Agency: pct("3")}, RateOverride: true},
			{ID: 3, ProductID: 6, ReporterType: reconcile.ReporterGuide},
		}
		f.expectReload(7, nil, items)
		f.catalog.EXPECT().GetStoreRates(gomock.Any(), gomock.Any(), int64(2), []int64{6}).
			Return(map[int64]reconcile.Rates{6: {Agency: pct("20")}}, nil)

		sale, err := f.svc.GetSale(ctx, adminActor, 7)

		require.NoError(t, err)
		assert.True(t, pct("20").Equal(sale.Items[0].Rates.Agency))
		assert.True(t, pct("3").Equal(sale.Items[1].Rates.Agency))
		assert.True(t, sale.Items[2].Rates.Agency.IsZero())
	})

	t.Run("missing sale", func(t *testing.T) {
		f := newSaleFixture(t)
		f.sales.EXPECT().GetSaleByID(gomock.Any(), gomock.Any(), int64(7)).Return(nil, repositories.ErrNotFound)

		_, err := f.svc.GetSale(ctx, adminActor, 7)

		assert.ErrorIs(t, err, services.ErrSaleNotFound)
	})
}

func TestSaleService_ListSales(t *testing.T) {
	ctx := context.Background()

	t.Run("guide filter is forced", func(t *testing.T) {
		f := newSaleFixture(t)
		f.sales.EXPECT().ListSales(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filters models.SaleFilters) ([]models.Sale, int, error) {
				require.NotNil(t, filters.GuideID)
				assert.Equal(t, int64(5), *filters.GuideID)
				assert.Equal(t, 50, filters.PageSize)
				return []models.Sale{{ID: 1}}, 1, nil
			})

		res, err := f.svc.ListSales(ctx, guideActor, models.SaleFilters{GuideID: int64Ptr(9)})

		require.NoError(t, err)
		assert.Equal(t, 1, res.TotalCount)
	})

	t.Run("unlinked guide sees nothing", func(t *testing.T) {
		f := newSaleFixture(t)
		unlinked := models.Actor{UserID: 4, Role: models.RoleGuide}

		res, err := f.svc.ListSales(ctx, unlinked, models.SaleFilters{})

		require.NoError(t, err)
		assert.Empty(t, res.Sales)
	})
}

func TestSaleService_UpdateSale(t *testing.T) {
	ctx := context.Background()
	existing := []models.SaleItem{
		{ID: 1, SaleID: 10, ProductID: 6, ReporterType: reconcile.ReporterStore, Quantity: 2, UnitPrice: pct("100"),
			Rates: reconcile.Rates{Agency: pct("10")}, RateOverride: true},
		{ID: 2, SaleID: 10, ProductID: 6, ReporterType: reconcile.ReporterGuide, Quantity: 2, UnitPrice: pct("100")},
		{ID: 3, SaleID: 10, ProductID: 7, ReporterType: reconcile.ReporterGuide, Quantity: 1, UnitPrice: pct("30")},
	}

	t.Run("stale version is rejected", func(t *testing.T) {
		f := newSaleFixture(t)
		req := saleReq()
		req.Version = 1
		f.sales.EXPECT().LockSale(gomock.Any(), gomock.Any(), int64(10)).
			Return(&models.Sale{ID: 10, GuideID: int64Ptr(5), Version: 2}, nil)

		_, err := f.svc.UpdateSale(ctx, adminActor, 10, req)

		assert.ErrorIs(t, err, services.ErrSaleVersionConflict)
		assert.Zero(t, f.cache.invalidated)
	})

	t.Run("missing version is a validation error", func(t *testing.T) {
		f := newSaleFixture(t)

		_, err := f.svc.UpdateSale(ctx, adminActor, 10, saleReq())

		assert.ErrorIs(t, err, services.ErrValidation)
	})

	t.Run("guide edit only touches guide lines", func(t *testing.T) {
		f := newSaleFixture(t)
		kept := guideItemReq(6, 3, "100")
		kept.ID = int64Ptr(2)
		req := saleReq(kept, guideItemReq(8, 1, "20"))
		req.Version = 2

		f.sales.EXPECT().LockSale(gomock.Any(), gomock.Any(), int64(10)).
			Return(&models.Sale{ID: 10, StoreID: 2, GuideID: int64Ptr(5), Version: 2}, nil)
		f.sales.EXPECT().UpdateSaleHeader(gomock.Any(), gomock.Any(), gomock.Any(), 2).Return(nil)
		f.sales.EXPECT().GetItemsBySaleID(gomock.Any(), gomock.Any(), int64(10)).Return(existing, nil)
		f.sales.EXPECT().UpdateItem(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ repositories.SQLExecutor, it *models.SaleItem) error {
				assert.Equal(t, int64(2), it.ID)
				assert.Equal(t, int64(3), it.Quantity)
				return nil
			})
		f.sales.EXPECT().CreateItem(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ repositories.SQLExecutor, it *models.SaleItem) (int64, error) {
				assert.Equal(t, int64(8), it.ProductID)
				assert.Equal(t, reconcile.ReporterGuide, it.ReporterType)
				return 4, nil
			})
		f.sales.EXPECT().DeleteItems(gomock.Any(), gomock.Any(), int64(10), []int64{3}).Return(int64(1), nil)
		f.expectReload(10, int64Ptr(5), nil)

		_, err := f.svc.UpdateSale(ctx, guideActor, 10, req)

		require.NoError(t, err)
		assert.Equal(t, 1, f.cache.invalidated)
	})

	t.Run("unchanged store line keeps its admin override", func(t *testing.T) {
		f := newSaleFixture(t)
		kept := storeItemReq(6, 5, "100")
		kept.ID = int64Ptr(1)
		req := saleReq(kept)
		req.Version = 2

		f.sales.EXPECT().LockSale(gomock.Any(), gomock.Any(), int64(10)).
			Return(&models.Sale{ID: 10, StoreID: 2, GuideID: int64Ptr(5), Version: 2}, nil)
		f.sales.EXPECT().UpdateSaleHeader(gomock.Any(), gomock.Any(), gomock.Any(), 2).Return(nil)
		f.sales.EXPECT().GetItemsBySaleID(gomock.Any(), gomock.Any(), int64(10)).Return(existing, nil)
		f.sales.EXPECT().UpdateItem(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ repositories.SQLExecutor, it *models.SaleItem) error {
				assert.True(t, it.RateOverride)
				assert.True(t, pct("10").Equal(it.Rates.Agency))
				return nil
			})
		f.sales.EXPECT().DeleteItems(gomock.Any(), gomock.Any(), int64(10), gomock.Nil()).Return(int64(0), nil)
		f.expectReload(10, int64Ptr(5), nil)

		_, err := f.svc.UpdateSale(ctx, standardActor, 10, req)
		require.NoError(t, err)
	})

	t.Run("line outside the actor scope is rejected", func(t *testing.T) {
		f := newSaleFixture(t)
		foreign := guideItemReq(6, 1, "100")
		foreign.ID = int64Ptr(1)
		req := saleReq(foreign)
		req.Version = 2

		f.sales.EXPECT().LockSale(gomock.Any(), gomock.Any(), int64(10)).
			Return(&models.Sale{ID: 10, StoreID: 2, GuideID: int64Ptr(5), Version: 2}, nil)
		f.sales.EXPECT().UpdateSaleHeader(gomock.Any(), gomock.Any(), gomock.Any(), 2).Return(nil)
		f.sales.EXPECT().GetItemsBySaleID(gomock.Any(), gomock.Any(), int64(10)).Return(existing, nil)

		_, err := f.svc.UpdateSale(ctx, guideActor, 10, req)

		assert.ErrorIs(t, err, services.ErrSaleItemNotFound)
	})

	t.Run("hidden sale looks missing", func(t *testing.T) {
		f := newSaleFixture(t)
		req := saleReq()
		req.Version = 1
		f.sales.EXPECT().LockSale(gomock.Any(), gomock.Any(), int64(10)).
			Return(&models.Sale{ID: 10, GuideID: int64Ptr(8), Version: 1}, nil)

		_, err := f.svc.UpdateSale(ctx, guideActor, 10, req)

		assert.ErrorIs(t, err, services.ErrSaleNotFound)
	})
}

func TestSaleService_DeleteSale(t *testing.T) {
	ctx := context.Background()

	t.Run("admin only", func(t *testing.T) {
		f := newSaleFixture(t)
		assert.ErrorIs(t, f.svc.DeleteSale(ctx, standardActor, 10), services.ErrForbidden)
	})

	t.Run("missing sale", func(t *testing.T) {
		f := newSaleFixture(t)
		f.sales.EXPECT().DeleteSale(gomock.Any(), gomock.Any(), int64(10)).Return(repositories.ErrNotFound)

		assert.ErrorIs(t, f.svc.DeleteSale(ctx, adminActor, 10), services.ErrSaleNotFound)
	})

	t.Run("deletes and invalidates reports", func(t *testing.T) {
		f := newSaleFixture(t)
		f.sales.EXPECT().DeleteSale(gomock.Any(), gomock.Any(), int64(10)).Return(nil)

		require.NoError(t, f.svc.DeleteSale(ctx, adminActor, 10))
		assert.Equal(t, 1, f.cache.invalidated)
	})
}
