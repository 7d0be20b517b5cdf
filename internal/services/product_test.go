package services

import (
	"context"
	"testing"

	"goldlinks/pkg/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	storage := newMemoryStorage()
	stores, db := newTestStoreService(storage)
	products := NewProductService(db.Products(), stores, storage)

	owner := Actor{UserID: uuid.New(), Role: models.RoleBusinessOwner}
	stranger := Actor{UserID: uuid.New(), Role: models.RoleBusinessOwner}
	store := createStore(t, stores, owner, "Mon-Fri: 9AM-5PM")

	created, err := products.Create(ctx, owner, store.ID, models.CreateProductRequest{
		Name:         " 14K Rope Chain ",
		Karat:        "14K",
		LengthInches: decimal.NewFromInt(20),
		WeightGrams:  decimal.RequireFromString("8.5"),
		Price:        decimal.RequireFromString("899.99"),
		Currency:     "usd",
	})
	require.NoError(t, err)
	assert.Equal(t, "14K Rope Chain", created.Name)
	assert.Equal(t, "other", created.Style)
	assert.Equal(t, "USD", created.Currency)
	assert.True(t, created.InStock)
	assert.Equal(t, "105.88", created.PricePerGram().StringFixed(2))

	_, err = products.Create(ctx, stranger, store.ID, models.CreateProductRequest{Name: "x", Karat: "10K", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = products.Create(ctx, owner, store.ID, models.CreateProductRequest{Name: "free", Karat: "10K"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	price := decimal.NewFromInt(750)
	outOfStock := false
	updated, err := products.Update(ctx, owner, created.ID, models.UpdateProductRequest{Price: &price, InStock: &outOfStock})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
	assert.False(t, updated.InStock)

	negative := decimal.NewFromInt(-1)
	_, err = products.Update(ctx, owner, created.ID, models.UpdateProductRequest{WeightGrams: &negative})
	assert.ErrorIs(t, err, ErrInvalidInput)

	withImage, err := products.UploadImage(ctx, owner, created.ID, formFile(t, "chain.png", pngHeader))
	require.NoError(t, err)
	assert.NotEmpty(t, withImage.ImageURL)
	assert.Len(t, storage.objects, 1)

	list, err := products.ListByStore(ctx, store.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = products.ListByStore(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, products.Delete(ctx, stranger, created.ID), ErrForbidden)
	require.NoError(t, products.Delete(ctx, owner, created.ID))
	assert.Empty(t, storage.objects)

	_, err = products.Update(ctx, owner, created.ID, models.UpdateProductRequest{Price: &price})
	assert.ErrorIs(t, err, ErrNotFound)
}
