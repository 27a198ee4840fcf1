package usecase

import (
	"context"
	"testing"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/listing/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryUsecase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	uc := NewCategoryUsecase(f.deps)

	c, err := uc.CreateCategory(ctx, viewerOf(root), " Poetry ", "verse")
	require.NoError(t, err)
	assert.Equal(t, "Poetry", c.Name)
	assert.NotEmpty(t, c.ID)

	_, err = uc.CreateCategory(ctx, viewerOf(root), "fiction", "")
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = uc.CreateCategory(ctx, viewerOf(root), "  ", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateCategory(ctx, viewerOf(alice), "Drama", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := uc.UpdateCategory(ctx, viewerOf(root), c.ID, "", "rhymes")
	require.NoError(t, err)
	assert.Equal(t, "Poetry", updated.Name)
	assert.Equal(t, "rhymes", updated.Description)

	all, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Fiction", all[0].Name)

	require.NoError(t, uc.DeleteCategory(ctx, viewerOf(root), c.ID))
	assert.ErrorIs(t, uc.DeleteCategory(ctx, viewerOf(root), c.ID), domain.ErrNotFound)
	assert.ErrorIs(t, uc.DeleteCategory(ctx, domain.Guest(), "fiction"), domain.ErrUnauthenticated)
}

func TestCategoryUsecase_InvalidatesLinkedListings(t *testing.T) {
	ctx := context.Background()

	t.Run("rename", func(t *testing.T) {
		f := newFixture()
		cache := newMemCache()
		f.deps.Cache = cache
		seeded := f.seed(alice, domain.StatusApproved)
		_, err := NewListingUsecase(f.deps).GetListing(ctx, domain.Guest(), seeded.ID)
		require.NoError(t, err)
		require.Contains(t, cache.entries, seeded.ID)

		_, err = NewCategoryUsecase(f.deps).UpdateCategory(ctx, viewerOf(root), scifi.ID, "Sci-Fi", "")
		require.NoError(t, err)
		assert.NotContains(t, cache.entries, seeded.ID)
		assert.Equal(t, []string{seeded.ID}, cache.deleted)
	})

	t.Run("delete", func(t *testing.T) {
		f := newFixture()
		cache := newMemCache()
		f.deps.Cache = cache
		seeded := f.seed(alice, domain.StatusApproved)
		_, err := NewListingUsecase(f.deps).GetListing(ctx, domain.Guest(), seeded.ID)
		require.NoError(t, err)

		require.NoError(t, NewCategoryUsecase(f.deps).DeleteCategory(ctx, viewerOf(root), scifi.ID))
		assert.NotContains(t, cache.entries, seeded.ID)
		assert.Equal(t, []string{seeded.ID}, cache.deleted)
	})

	t.Run("failed update leaves cache alone", func(t *testing.T) {
		f := newFixture()
		cache := newMemCache()
		f.deps.Cache = cache
		f.seed(alice, domain.StatusApproved)

		_, err := NewCategoryUsecase(f.deps).UpdateCategory(ctx, viewerOf(root), "missing", "X", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, cache.deleted)
	})
}
