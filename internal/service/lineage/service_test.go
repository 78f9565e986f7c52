package lineage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"data-catalog/internal/domain"
	"data-catalog/internal/repository/memory"
	"data-catalog/internal/service/lineage"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := lineage.NewService(repos)

	p := domain.NewProduct(domain.CreateProductInput{
		Name: "Forecast", Type: domain.TypeInsights, Domain: domain.DomainFinance,
		Status: domain.StatusActive, Owner: "Fin", OwnerInitials: "FN",
	})
	require.NoError(t, repos.Product.Create(ctx, p))

	t.Run("Lineage", func(t *testing.T) {
		l, err := svc.AddLineage(ctx, domain.CreateLineageInput{
			ProductID:       p.ID,
			SourceType:      "table",
			SourceName:      "erp.ledger",
			Transformations: []string{"aggregate", "dedupe"},
		})
		require.NoError(t, err)
		assert.NotZero(t, l.ID)

		list, err := svc.ListLineage(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, []string{"aggregate", "dedupe"}, []string(list[0].Transformations))

		_, err = svc.AddLineage(ctx, domain.CreateLineageInput{ProductID: p.ID, SourceType: "kafka", SourceName: "x"})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "sourceType", verr.Fields[0].Field)
	})

	t.Run("Dependencies default to required", func(t *testing.T) {
		dep, err := svc.AddDependency(ctx, domain.CreateDependencyInput{ProductID: p.ID, DependencyType: "dataset", DependencyName: "fx_rates"})
		require.NoError(t, err)
		assert.True(t, dep.IsRequired)

		optional := false
		dep, err = svc.AddDependency(ctx, domain.CreateDependencyInput{ProductID: p.ID, DependencyType: "model", DependencyName: "seasonality", IsRequired: &optional})
		require.NoError(t, err)
		assert.False(t, dep.IsRequired)

		deps, err := svc.ListDependencies(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, deps, 2)
	})

	t.Run("Unknown product", func(t *testing.T) {
		_, err := svc.AddDependency(ctx, domain.CreateDependencyInput{ProductID: 99, DependencyType: "table", DependencyName: "x"})
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})
}
