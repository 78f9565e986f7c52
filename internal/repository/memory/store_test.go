package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"data-catalog/internal/domain"
	"data-catalog/internal/repository"
	"data-catalog/internal/repository/memory"
)

// tickingClock advances one second per call so ordering by timestamp is deterministic.
func tickingClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newProduct(name string) *domain.DataProduct {
	return domain.NewProduct(domain.CreateProductInput{
		Name:          name,
		Type:          domain.TypeInsights,
		Domain:        domain.DomainFinance,
		Status:        domain.StatusActive,
		Owner:         "Owner",
		OwnerInitials: "OW",
	})
}

func TestProductRepository(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(memory.WithClock(tickingClock()))

	first := newProduct("First")
	second := newProduct("Second")
	require.NoError(t, repos.Product.Create(ctx, first))
	require.NoError(t, repos.Product.Create(ctx, second))

	t.Run("Assigns increasing ids", func(t *testing.T) {
		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)
		assert.False(t, first.CreatedAt.IsZero())
		assert.Equal(t, first.CreatedAt, first.LastUpdated)
	})

	t.Run("Returned products are copies", func(t *testing.T) {
		got, err := repos.Product.GetByID(ctx, first.ID)
		require.NoError(t, err)
		got.Tags = append(got.Tags, "mutated")

		again, err := repos.Product.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Empty(t, again.Tags)
	})

	t.Run("Missing product is nil without error", func(t *testing.T) {
		got, err := repos.Product.GetByID(ctx, 99)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Update bumps lastUpdated and keeps createdAt", func(t *testing.T) {
		got, err := repos.Product.GetByID(ctx, first.ID)
		require.NoError(t, err)
		got.Status = domain.StatusDeprecated
		got.CreatedAt = time.Time{}
		require.NoError(t, repos.Product.Update(ctx, got))

		assert.Equal(t, first.CreatedAt, got.CreatedAt)
		assert.True(t, got.LastUpdated.After(first.LastUpdated))
	})

	t.Run("Update of missing product", func(t *testing.T) {
		ghost := newProduct("Ghost")
		ghost.ID = 42
		assert.ErrorIs(t, repos.Product.Update(ctx, ghost), domain.ErrProductNotFound)
	})

	t.Run("List orders by lastUpdated", func(t *testing.T) {
		list, err := repos.Product.List(ctx, domain.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Second", list[0].Name)
		assert.Equal(t, "First", list[1].Name)

		active, err := repos.Product.List(ctx, domain.ProductFilter{Status: "active"})
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, second.ID, active[0].ID)
	})

	t.Run("Stats", func(t *testing.T) {
		stats, err := repos.Product.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, &domain.CatalogStats{TotalProducts: 2, ActiveProducts: 1, NeedsAttention: 1}, stats)
	})
}

func TestProductRepository_IDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	p := newProduct("Temp")
	require.NoError(t, repos.Product.Create(ctx, p))
	deleted, err := repos.Product.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	next := newProduct("Next")
	require.NoError(t, repos.Product.Create(ctx, next))
	assert.Greater(t, next.ID, p.ID)

	deleted, err = repos.Product.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestProductRepository_DeleteCascadesButKeepsChanges(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	p := newProduct("Cascade")
	require.NoError(t, repos.Product.Create(ctx, p))
	require.NoError(t, repos.ProductChange.Create(ctx, &domain.ProductChange{ProductID: p.ID, ChangedBy: "a", ChangeType: domain.ChangeCreated}))
	_, err := repos.Favorite.Add(ctx, "a@example.com", p.ID)
	require.NoError(t, err)
	require.NoError(t, repos.Lineage.Create(ctx, &domain.DataLineage{ProductID: p.ID, SourceType: "table", SourceName: "raw.sales"}))
	require.NoError(t, repos.Dependency.Create(ctx, &domain.ProductDependency{ProductID: p.ID, DependencyType: "table", DependencyName: "dim_date"}))
	req := &domain.ApprovalRequest{ProductID: &p.ID, RequestType: domain.RequestUpdate, RequestedBy: "a", Status: domain.ApprovalPending}
	require.NoError(t, repos.ApprovalRequest.Create(ctx, req))

	_, err = repos.Product.Delete(ctx, p.ID)
	require.NoError(t, err)

	favorites, _ := repos.Favorite.ListByUser(ctx, "a@example.com")
	lineage, _ := repos.Lineage.ListByProduct(ctx, p.ID)
	deps, _ := repos.Dependency.ListByProduct(ctx, p.ID)
	assert.Empty(t, favorites)
	assert.Empty(t, lineage)
	assert.Empty(t, deps)

	kept, err := repos.ApprovalRequest.GetByID(ctx, req.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Nil(t, kept.ProductID)

	changes, err := repos.ProductChange.ListByProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.ChangeCreated, changes[0].ChangeType)

	recent, err := repos.ProductChange.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestFavoriteRepository_AddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()

	first, err := repos.Favorite.Add(ctx, "a@example.com", 1)
	require.NoError(t, err)
	second, err := repos.Favorite.Add(ctx, "a@example.com", 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	list, err := repos.Favorite.ListByUser(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	exists, err := repos.Favorite.Exists(ctx, "a@example.com", 1)
	require.NoError(t, err)
	assert.True(t, exists)

	removed, err := repos.Favorite.Remove(ctx, "a@example.com", 1)
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = repos.Favorite.Remove(ctx, "a@example.com", 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestApprovalRequestRepository_SetStatus(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(memory.WithClock(tickingClock()))

	older := &domain.ApprovalRequest{RequestType: domain.RequestCreate, RequestedBy: "a", Status: domain.ApprovalPending, ProposedChanges: domain.JSON(`{}`)}
	newer := &domain.ApprovalRequest{RequestType: domain.RequestCreate, RequestedBy: "b", Status: domain.ApprovalPending, ProposedChanges: domain.JSON(`{}`)}
	require.NoError(t, repos.ApprovalRequest.Create(ctx, older))
	require.NoError(t, repos.ApprovalRequest.Create(ctx, newer))

	reviewer := "boss"
	resolved, err := repos.ApprovalRequest.SetStatus(ctx, older.ID, domain.ApprovalPending, domain.ApprovalApproved, &reviewer, nil)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, domain.ApprovalApproved, resolved.Status)
	assert.Equal(t, "boss", *resolved.ApprovedBy)
	assert.NotNil(t, resolved.ApprovedAt)

	again, err := repos.ApprovalRequest.SetStatus(ctx, older.ID, domain.ApprovalPending, domain.ApprovalRejected, &reviewer, nil)
	require.NoError(t, err)
	assert.Nil(t, again)

	pending := domain.ApprovalPending
	list, err := repos.ApprovalRequest.List(ctx, &pending)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, newer.ID, list[0].ID)

	all, err := repos.ApprovalRequest.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
}

func TestRunInTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	boom := errors.New("boom")

	err := repos.WithTx(ctx, func(tx *repository.Repositories) error {
		require.NoError(t, tx.Product.Create(ctx, newProduct("Doomed")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := repos.Product.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, repos.WithTx(ctx, func(tx *repository.Repositories) error {
		return tx.Product.Create(ctx, newProduct("Kept"))
	}))
	count, err = repos.Product.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProductChangeRepository_ListRecent(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories(memory.WithClock(tickingClock()))

	p := newProduct("Changes")
	require.NoError(t, repos.Product.Create(ctx, p))
	for i := 0; i < 3; i++ {
		require.NoError(t, repos.ProductChange.Create(ctx, &domain.ProductChange{ProductID: p.ID, ChangedBy: "a", ChangeType: domain.ChangeUpdated}))
	}

	recent, err := repos.ProductChange.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Changes", recent[0].ProductName)
	assert.Greater(t, recent[0].ID, recent[1].ID)
}
