package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"data-catalog/internal/domain"
)

func validCreateInput() domain.CreateProductInput {
	return domain.CreateProductInput{
		Name:          "Sales Dashboard",
		Type:          domain.TypeDashboardSelfService,
		Domain:        domain.DomainSales,
		Status:        domain.StatusActive,
		Owner:         "Ana Souza",
		OwnerInitials: "AS",
	}
}

func TestValidate_CreateProductInput(t *testing.T) {
	t.Run("Valid payload without description", func(t *testing.T) {
		assert.NoError(t, domain.Validate(validCreateInput()))
	})

	t.Run("Reports every offending field", func(t *testing.T) {
		input := validCreateInput()
		input.Name = ""
		input.Type = "spreadsheet"

		err := domain.Validate(input)
		require.Error(t, err)

		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))

		fields := map[string]string{}
		for _, f := range verr.Fields {
			fields[f.Field] = f.Message
		}
		assert.Equal(t, "is required", fields["name"])
		assert.Contains(t, fields["type"], "must be one of: dashboard_selfservice")
	})

	t.Run("Rejects malformed documentation URL", func(t *testing.T) {
		input := validCreateInput()
		bad := "not a url"
		input.DocumentationURL = &bad

		var verr *domain.ValidationError
		require.ErrorAs(t, domain.Validate(input), &verr)
		assert.Equal(t, "documentationUrl", verr.Fields[0].Field)
	})
}

func TestValidate_UpdateProductInput(t *testing.T) {
	t.Run("Empty update is valid", func(t *testing.T) {
		assert.NoError(t, domain.Validate(domain.UpdateProductInput{}))
	})

	t.Run("Present fields are checked", func(t *testing.T) {
		status := domain.ProductStatus("retired")
		empty := ""
		err := domain.Validate(domain.UpdateProductInput{Status: &status, Name: &empty})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 2)
	})
}

func TestUpdateProductInput_Apply(t *testing.T) {
	sla := "99.9%"
	product := domain.NewProduct(validCreateInput())
	product.ContractSLA = &sla

	var input domain.UpdateProductInput
	require.NoError(t, json.Unmarshal([]byte(`{"description":"Daily sales","contractSLA":null,"tags":["sales"]}`), &input))
	input.Apply(product)

	assert.Equal(t, "Daily sales", product.Description)
	assert.Nil(t, product.ContractSLA)
	assert.Equal(t, []string{"sales"}, []string(product.Tags))
	assert.Equal(t, "Sales Dashboard", product.Name)
}

func TestProductFilter(t *testing.T) {
	product := domain.NewProduct(validCreateInput())
	product.Tags = []string{"Revenue", "kpi"}

	cases := []struct {
		name   string
		filter domain.ProductFilter
		want   bool
	}{
		{"empty filter", domain.ProductFilter{}, true},
		{"all is no filter", domain.ProductFilter{Type: "all", Domain: "all", Status: "all"}, true},
		{"matching domain", domain.ProductFilter{Domain: "sales"}, true},
		{"other status", domain.ProductFilter{Status: "deprecated"}, false},
		{"search on name", domain.ProductFilter{Search: "dashboard"}, true},
		{"search on owner", domain.ProductFilter{Search: "souza"}, true},
		{"search on tag", domain.ProductFilter{Search: "REVENUE"}, true},
		{"search miss", domain.ProductFilter{Search: "churn"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Normalize().Matches(product))
		})
	}
}

func TestJSON_Canonical(t *testing.T) {
	assert.Equal(t, "", domain.JSON(nil).Canonical())
	assert.Equal(t, "", domain.JSON("null").Canonical())
	assert.Equal(t, `{"a":1,"b":[2,3]}`, domain.JSON(`{ "b": [2, 3], "a": 1 }`).Canonical())
	assert.Equal(t, domain.JSON(`{"x":1.50}`).Canonical(), domain.JSON(`{"x": 1.50}`).Canonical())
}

func TestApprovalStatus(t *testing.T) {
	assert.True(t, domain.ApprovalApproved.IsTerminal())
	assert.True(t, domain.ApprovalRejected.IsTerminal())
	assert.False(t, domain.ApprovalPending.IsTerminal())
	assert.True(t, domain.ApprovalPending.IsValid())
	assert.False(t, domain.ApprovalStatus("cancelled").IsValid())
}
