package favorite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"data-catalog/internal/domain"
	"data-catalog/internal/repository/memory"
	"data-catalog/internal/service/favorite"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := favorite.NewService(repos.Favorite, repos.Product)

	p := domain.NewProduct(domain.CreateProductInput{
		Name: "Lead Scoring", Type: domain.TypeAIAgents, Domain: domain.DomainMarketing,
		Status: domain.StatusActive, Owner: "Mkt", OwnerInitials: "MK",
	})
	require.NoError(t, repos.Product.Create(ctx, p))

	t.Run("Add is idempotent", func(t *testing.T) {
		first, err := svc.Add(ctx, domain.AddFavoriteInput{UserEmail: " ana@example.com ", ProductID: p.ID})
		require.NoError(t, err)
		second, err := svc.Add(ctx, domain.AddFavoriteInput{UserEmail: "ana@example.com", ProductID: p.ID})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)

		list, err := svc.List(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("Check and remove", func(t *testing.T) {
		ok, err := svc.IsFavorited(ctx, "ana@example.com", p.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		removed, err := svc.Remove(ctx, "ana@example.com", p.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		ok, err = svc.IsFavorited(ctx, "ana@example.com", p.ID)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Unknown product", func(t *testing.T) {
		_, err := svc.Add(ctx, domain.AddFavoriteInput{UserEmail: "ana@example.com", ProductID: 404})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("Missing email", func(t *testing.T) {
		_, err := svc.Add(ctx, domain.AddFavoriteInput{UserEmail: "  ", ProductID: p.ID})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "userEmail", verr.Fields[0].Field)
	})
}
