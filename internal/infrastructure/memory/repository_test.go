package memory_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/category"
	"github.com/mutugading/goapps-backend/services/catalog/internal/domain/product"
	"github.com/mutugading/goapps-backend/services/catalog/internal/infrastructure/memory"
)

func TestCategoryRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCategoryRepository()
	entity, _ := category.NewCategory("Books", "Paper")

	saved, err := repo.Save(ctx, entity)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), found.ID())
	assert.Equal(t, saved.Name(), found.Name())
	assert.Equal(t, saved.Description(), found.Description())
	assert.Equal(t, saved.IsActive(), found.IsActive())
	assert.Equal(t, saved.CreatedAt(), found.CreatedAt())
	assert.Equal(t, saved.UpdatedAt(), found.UpdatedAt())
}

func TestCategoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCategoryRepository()
	entity, _ := category.NewCategory("Books", "")
	_, _ = repo.Save(ctx, entity)

	found, _ := repo.FindByID(ctx, entity.ID())
	found.Deactivate()

	again, _ := repo.FindByID(ctx, entity.ID())
	assert.True(t, again.IsActive())
}

func TestCategoryRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCategoryRepository()
	books, _ := category.NewCategory("Books", "")
	music, _ := category.NewCategory("Music", "")
	music.Deactivate()
	_, _ = repo.Save(ctx, books)
	_, _ = repo.Save(ctx, music)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Books", active[0].Name().String())

	byName, err := repo.FindByName(ctx, "Music")
	require.NoError(t, err)
	assert.True(t, byName.ID().Equals(music.ID()))

	_, err = repo.FindByName(ctx, "music")
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestCategoryRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCategoryRepository()
	entity, _ := category.NewCategory("Books", "")
	_, _ = repo.Save(ctx, entity)

	deleted, err := repo.Delete(ctx, entity.ID())
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, entity.ID())
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.FindByID(ctx, entity.ID())
	assert.ErrorIs(t, err, category.ErrNotFound)
}

func TestProductRepository_SaveAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	name, _ := product.NewName("Laptop")
	price, _ := product.NewPrice(999)
	categoryID, _ := category.NewID("category_1")
	now := time.Now()

	saved, err := repo.Save(ctx, product.ReconstructProduct("", name, price, categoryID, "", now, now))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(saved.ID(), "product_"))

	found, err := repo.FindByID(ctx, saved.ID())
	require.NoError(t, err)
	assert.Equal(t, saved.Name(), found.Name())
	assert.Equal(t, saved.Price(), found.Price())
	assert.Equal(t, saved.CategoryID(), found.CategoryID())
}

func TestProductRepository_Queries(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	for _, p := range []struct {
		name     string
		category string
	}{{"Laptop", "category_1"}, {"Phone", "category_1"}, {"Guitar", "category_2"}} {
		entity, err := product.NewProduct(p.name, 100, p.category, "")
		require.NoError(t, err)
		_, err = repo.Save(ctx, entity)
		require.NoError(t, err)
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	cat1, _ := category.NewID("category_1")
	inCat1, err := repo.FindByCategoryID(ctx, cat1)
	require.NoError(t, err)
	assert.Len(t, inCat1, 2)

	none, _ := category.NewID("category_9")
	empty, err := repo.FindByCategoryID(ctx, none)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	entity, _ := product.NewProduct("Laptop", 100, "category_1", "")
	_, _ = repo.Save(ctx, entity)

	deleted, err := repo.Delete(ctx, entity.ID())
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "product_missing")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestServicesOverMemoryRepositories(t *testing.T) {
	ctx := context.Background()
	categories := memory.NewCategoryRepository()
	products := memory.NewProductRepository()
	svc := product.NewService(products, categories, product.DefaultPriceBands())
	categorySvc := category.NewService(categories, product.NewCategoryUsage(products))

	for _, id := range []string{"cat_1", "cat_2", "category_1", "category_unlisted"} {
		entity, err := category.NewCategoryWithID(id, "Category "+id, "")
		require.NoError(t, err)
		_, err = categories.Save(ctx, entity)
		require.NoError(t, err)
	}

	x, _ := product.NewProduct("X", 10, "cat_1", "")
	_, err := products.Save(ctx, x)
	require.NoError(t, err)

	cat1, _ := category.NewID("cat_1")
	cat2, _ := category.NewID("cat_2")
	listed, _ := category.NewID("category_1")
	unlisted, _ := category.NewID("category_unlisted")
	missing, _ := category.NewID("category_missing")

	unique, err := svc.IsProductNameUnique(ctx, "X", cat1)
	require.NoError(t, err)
	assert.False(t, unique)

	unique, err = svc.IsProductNameUnique(ctx, "X", cat2)
	require.NoError(t, err)
	assert.True(t, unique)

	for _, tc := range []struct {
		price    float64
		id       category.ID
		expected bool
	}{
		{500, listed, true},
		{5000, listed, false},
		{50, unlisted, true},
		{50, missing, false},
	} {
		ok, err := svc.IsPriceWithinAcceptableRange(ctx, tc.price, tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, ok, "price %.2f in %s", tc.price, tc.id.String())
	}

	canDelete, err := categorySvc.CanDeleteCategory(ctx, cat1)
	require.NoError(t, err)
	assert.False(t, canDelete)

	canDelete, err = categorySvc.CanDeleteCategory(ctx, cat2)
	require.NoError(t, err)
	assert.True(t, canDelete)
}
