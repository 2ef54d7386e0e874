package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/app/domain"
	"catalog-service/app/port"
	"catalog-service/app/utils/logger"
)

func newTestProductUseCase(t *testing.T) (*ProductUseCase, *fakeProductRepo) {
	t.Helper()

	testLogger, err := logger.New("debug")
	require.NoError(t, err)

	repo := newFakeProductRepo()
	return NewProductUseCase(repo, testLogger), repo
}

func TestProductUseCase_Create(t *testing.T) {
	t.Run("defaults to available", func(t *testing.T) {
		uc, _ := newTestProductUseCase(t)

		product, err := uc.Create(context.Background(), port.ProductInput{
			Name:     "espresso",
			Price:    3.50,
			Category: "coffee",
		})
		require.NoError(t, err)
		assert.True(t, product.Available)
		assert.NotZero(t, product.ID)
	})

	t.Run("explicit availability wins", func(t *testing.T) {
		uc, _ := newTestProductUseCase(t)

		unavailable := false
		product, err := uc.Create(context.Background(), port.ProductInput{
			Name:      "seasonal blend",
			Price:     5.00,
			Category:  "coffee",
			Available: &unavailable,
		})
		require.NoError(t, err)
		assert.False(t, product.Available)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		uc, _ := newTestProductUseCase(t)

		_, err := uc.Create(context.Background(), port.ProductInput{Name: "", Price: 1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, err = uc.Create(context.Background(), port.ProductInput{Name: "x", Price: -1})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestProductUseCase_Update(t *testing.T) {
	uc, _ := newTestProductUseCase(t)

	created, err := uc.Create(context.Background(), port.ProductInput{
		Name:     "espresso",
		Price:    3.50,
		Category: "coffee",
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), created.ID, port.ProductInput{
		Name:     "double espresso",
		Price:    4.50,
		Category: "coffee",
	})
	require.NoError(t, err)
	assert.Equal(t, "double espresso", updated.Name)
	assert.Equal(t, 4.50, updated.Price)
	// availability untouched when not sent
	assert.True(t, updated.Available)
}

func TestProductUseCase_Update_NotFound(t *testing.T) {
	uc, _ := newTestProductUseCase(t)

	_, err := uc.Update(context.Background(), 99, port.ProductInput{Name: "x", Price: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUseCase_GetAndDelete(t *testing.T) {
	uc, _ := newTestProductUseCase(t)

	created, err := uc.Create(context.Background(), port.ProductInput{
		Name:     "espresso",
		Price:    3.50,
		Category: "coffee",
	})
	require.NoError(t, err)

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	require.NoError(t, uc.Delete(context.Background(), created.ID))

	_, err = uc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUseCase_Filter(t *testing.T) {
	uc, _ := newTestProductUseCase(t)

	_, err := uc.Create(context.Background(), port.ProductInput{Name: "espresso", Price: 3.50, Category: "coffee"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), port.ProductInput{Name: "croissant", Price: 2.80, Category: "bakery"})
	require.NoError(t, err)

	result, err := uc.Filter(context.Background(), domain.ProductFilter{Category: "coffee"}, domain.NewPage(0, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "espresso", result.Items[0].Name)
}
