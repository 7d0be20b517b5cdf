package services

import (
	"context"
	"testing"
	"time"

	"goldlinks/internal/repo/repotest"
	"goldlinks/pkg/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type compareFixture struct {
	svc      *CompareService
	db       *repotest.DB
	open     *models.Store
	closed   *models.Store
	online   *models.Store
	products map[string]uuid.UUID
}

func newCompareFixture(t *testing.T) *compareFixture {
	t.Helper()
	stores, db := newTestStoreService(nil)
	owner := Actor{UserID: uuid.New(), Role: models.RoleBusinessOwner}
	productSvc := NewProductService(db.Products(), stores, nil)

	ctx := context.Background()
	open := createStore(t, stores, owner, "Mon-Sat: 10AM-6PM")
	closed := createStore(t, stores, owner, "Sat-Sun: 10AM-4PM")

	online, err := stores.Create(ctx, owner, models.CreateStoreRequest{Name: "Aurum Online", Kind: models.StoreKindOnline, HoursText: "Mon-Sun: 12AM-11:59PM"})
	require.NoError(t, err)

	name := "Beach Gold"
	_, err = stores.Update(ctx, owner, closed.ID, models.UpdateStoreRequest{Name: &name})
	require.NoError(t, err)

	f := &compareFixture{
		svc:      NewCompareService(db.Stores(), db.Products(), "UTC"),
		db:       db,
		open:     open,
		closed:   closed,
		online:   online,
		products: map[string]uuid.UUID{},
	}
	f.svc.now = func() time.Time { return monday(12, 0) }

	add := func(store *models.Store, name, karat, price, weight string) {
		p, err := productSvc.Create(ctx, owner, store.ID, models.CreateProductRequest{
			Name:        name,
			Karat:       karat,
			Style:       "cuban",
			Price:       decimal.RequireFromString(price),
			WeightGrams: decimal.RequireFromString(weight),
		})
		require.NoError(t, err)
		f.products[name] = p.ID
	}
	add(open, "Cuban 14K 20in", "14K", "1200", "20")
	add(open, "Cuban 10K 18in", "10K", "450", "10")
	add(closed, "Cuban 14K 22in", "14K", "1000", "25")
	add(online, "Cuban 14K 24in", "14K", "1500", "0")
	return f
}

func names(rows []models.CompareRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestCompareFiltersAndSummary(t *testing.T) {
	f := newCompareFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Compare(ctx, models.CompareFilter{Karat: "14K"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, []string{"Cuban 14K 22in", "Cuban 14K 20in", "Cuban 14K 24in"}, names(resp.Data))
	assert.Equal(t, "1000", resp.Cheapest.String())
	assert.Equal(t, "1500", resp.Priciest.String())
	// (60 + 40) / 2; the weightless chain is left out
	assert.Equal(t, "50", resp.AvgPerGram.String())

	row := resp.Data[0]
	assert.Equal(t, "Beach Gold", row.StoreName)
	assert.False(t, row.StoreStatus.IsOpen)
	assert.Equal(t, "Closed on Monday", row.StoreStatus.NextChange)
	assert.Equal(t, "40", row.PricePerGram.String())
}

func TestCompareOpenNowAndKind(t *testing.T) {
	f := newCompareFixture(t)
	ctx := context.Background()

	resp, err := f.svc.Compare(ctx, models.CompareFilter{Karat: "14K", OpenNow: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cuban 14K 20in", "Cuban 14K 24in"}, names(resp.Data))
	for _, r := range resp.Data {
		assert.True(t, r.StoreStatus.IsOpen)
	}

	resp, err = f.svc.Compare(ctx, models.CompareFilter{StoreKind: models.StoreKindOnline})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cuban 14K 24in"}, names(resp.Data))
	assert.Nil(t, resp.AvgPerGram)
}

func TestCompareSortOrders(t *testing.T) {
	f := newCompareFixture(t)
	ctx := context.Background()

	tests := []struct {
		sort string
		want []string
	}{
		{SortPriceAsc, []string{"Cuban 10K 18in", "Cuban 14K 22in", "Cuban 14K 20in", "Cuban 14K 24in"}},
		{SortPriceDesc, []string{"Cuban 14K 24in", "Cuban 14K 20in", "Cuban 14K 22in", "Cuban 10K 18in"}},
		{SortPricePerGram, []string{"Cuban 14K 22in", "Cuban 10K 18in", "Cuban 14K 20in", "Cuban 14K 24in"}},
		{SortWeightDesc, []string{"Cuban 14K 22in", "Cuban 14K 20in", "Cuban 10K 18in", "Cuban 14K 24in"}},
		{SortStoreName, []string{"Cuban 14K 24in", "Cuban 14K 22in", "Cuban 10K 18in", "Cuban 14K 20in"}},
	}
	for _, tt := range tests {
		t.Run(tt.sort, func(t *testing.T) {
			resp, err := f.svc.Compare(ctx, models.CompareFilter{Sort: tt.sort})
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(resp.Data))
		})
	}

	_, err := f.svc.Compare(ctx, models.CompareFilter{Sort: "random"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCompareLimitKeepsTotals(t *testing.T) {
	f := newCompareFixture(t)

	resp, err := f.svc.Compare(context.Background(), models.CompareFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, "1500", resp.Priciest.String())
}
