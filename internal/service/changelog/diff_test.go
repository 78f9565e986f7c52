package changelog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"data-catalog/internal/domain"
	"data-catalog/internal/repository/memory"
	"data-catalog/internal/service/changelog"
)

func baseProduct() *domain.DataProduct {
	return domain.NewProduct(domain.CreateProductInput{
		Name:          "Churn Model",
		Type:          domain.TypeTraditionalAI,
		Domain:        domain.DomainCustomerService,
		Status:        domain.StatusDevelopment,
		Owner:         "Rui",
		OwnerInitials: "R",
		Tags:          []string{"ml"},
		Metadata:      domain.JSON(`{"b":1,"a":2}`),
	})
}

func TestDiff(t *testing.T) {
	t.Run("No changes", func(t *testing.T) {
		before := baseProduct()
		after := before.Clone()
		assert.Empty(t, changelog.Diff(before, &after))
	})

	t.Run("Null and empty compare equal", func(t *testing.T) {
		before := baseProduct()
		after := before.Clone()
		empty := ""
		after.ContractSLA = &empty
		after.UpstreamSources = nil
		assert.Empty(t, changelog.Diff(before, &after))
	})

	t.Run("Key order in json documents is ignored", func(t *testing.T) {
		before := baseProduct()
		after := before.Clone()
		after.Metadata = domain.JSON(`{"a":2,"b":1}`)
		assert.Empty(t, changelog.Diff(before, &after))
	})

	t.Run("Reports changed fields in stable order", func(t *testing.T) {
		before := baseProduct()
		after := before.Clone()
		sla := "24h"
		after.Status = domain.StatusActive
		after.Name = "Churn Model v2"
		after.ContractSLA = &sla
		after.Tags = []string{"ml", "churn"}

		changes := changelog.Diff(before, &after)
		require.Len(t, changes, 4)
		assert.Equal(t, changelog.FieldChange{Field: "name", OldValue: "Churn Model", NewValue: "Churn Model v2"}, changes[0])
		assert.Equal(t, changelog.FieldChange{Field: "status", OldValue: "development", NewValue: "active"}, changes[1])
		assert.Equal(t, changelog.FieldChange{Field: "tags", OldValue: "ml", NewValue: "ml, churn"}, changes[2])
		assert.Equal(t, changelog.FieldChange{Field: "contractSLA", OldValue: "", NewValue: "24h"}, changes[3])
	})
}

func TestService_Record(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositories()
	svc := changelog.NewService(repos.ProductChange)

	p := baseProduct()
	require.NoError(t, repos.Product.Create(ctx, p))

	change, err := svc.Record(ctx, domain.RecordChangeInput{ProductID: p.ID, ChangeType: domain.ChangeCreated, Description: "created"})
	require.NoError(t, err)
	assert.Equal(t, changelog.SystemActor, change.ChangedBy)
	assert.Equal(t, "created", *change.Description)

	for i := 0; i < 3; i++ {
		_, err := svc.Record(ctx, domain.RecordChangeInput{ProductID: p.ID, ChangedBy: "ana", ChangeType: domain.ChangeUpdated})
		require.NoError(t, err)
	}

	history, err := svc.ChangesFor(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, history, 4)
	assert.Equal(t, domain.ChangeUpdated, history[0].ChangeType)
	assert.Nil(t, history[0].Description)

	recent, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, recent, 4)

	limited, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
