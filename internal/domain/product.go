package domain

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

type ProductType string

const (
	TypeDashboardSelfService ProductType = "dashboard_selfservice"
	TypeAPIOutputs           ProductType = "api_outputs"
	TypeInsights             ProductType = "insights"
	TypeAIAgents             ProductType = "ai_agents"
	TypeRecommendationSystem ProductType = "recommendation_system"
	TypeGenAIChat            ProductType = "genai_chat"
	TypeGenAIWorkflow        ProductType = "genai_workflow"
	TypeTraditionalAI        ProductType = "traditional_ai"
	TypeGenieSpaces          ProductType = "genie_spaces"
)

func (t ProductType) IsValid() bool {
	switch t {
	case TypeDashboardSelfService, TypeAPIOutputs, TypeInsights, TypeAIAgents,
		TypeRecommendationSystem, TypeGenAIChat, TypeGenAIWorkflow, TypeTraditionalAI, TypeGenieSpaces:
		return true
	}
	return false
}

type ProductDomain string

const (
	DomainSales           ProductDomain = "sales"
	DomainMarketing       ProductDomain = "marketing"
	DomainFinance         ProductDomain = "finance"
	DomainHR              ProductDomain = "hr"
	DomainOperations      ProductDomain = "operations"
	DomainCustomerService ProductDomain = "customer_service"
	DomainProduct         ProductDomain = "product"
)

func (d ProductDomain) IsValid() bool {
	switch d {
	case DomainSales, DomainMarketing, DomainFinance, DomainHR, DomainOperations, DomainCustomerService, DomainProduct:
		return true
	}
	return false
}

type ProductStatus string

const (
	StatusActive       ProductStatus = "active"
	StatusDeprecated   ProductStatus = "deprecated"
	StatusDevelopment  ProductStatus = "development"
	StatusExperimental ProductStatus = "experimentacao"
)

func (s ProductStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusDeprecated, StatusDevelopment, StatusExperimental:
		return true
	}
	return false
}

// NeedsAttention reports whether products in this status are counted as needing attention.
func (s ProductStatus) NeedsAttention() bool {
	return s == StatusDeprecated || s == StatusDevelopment
}

type DataProduct struct {
	ID                   int64          `json:"id" db:"id"`
	Name                 string         `json:"name" db:"name"`
	Description          string         `json:"description" db:"description"`
	Type                 ProductType    `json:"type" db:"type"`
	Domain               ProductDomain  `json:"domain" db:"domain"`
	Status               ProductStatus  `json:"status" db:"status"`
	Owner                string         `json:"owner" db:"owner"`
	OwnerInitials        string         `json:"ownerInitials" db:"owner_initials"`
	Tags                 pq.StringArray `json:"tags" db:"tags"`
	Metadata             JSON           `json:"metadata" db:"metadata"`
	ContractSLA          *string        `json:"contractSLA" db:"contract_sla"`
	QualityMetrics       JSON           `json:"qualityMetrics" db:"quality_metrics"`
	TechnicalContact     *string        `json:"technicalContact" db:"technical_contact"`
	BusinessContact      *string        `json:"businessContact" db:"business_contact"`
	DataSource           *string        `json:"dataSource" db:"data_source"`
	UpdateFrequency      *string        `json:"updateFrequency" db:"update_frequency"`
	APIEndpoint          *string        `json:"apiEndpoint" db:"api_endpoint"`
	DocumentationURL     *string        `json:"documentationUrl" db:"documentation_url"`
	DocumentationContent *string        `json:"documentationContent" db:"documentation_content"`
	ModelType            *string        `json:"modelType" db:"model_type"`
	ConfidenceLevel      *string        `json:"confidenceLevel" db:"confidence_level"`
	ComplianceLevel      *string        `json:"complianceLevel" db:"compliance_level"`
	UpstreamSources      StringList     `json:"upstreamSources" db:"upstream_sources"`
	DownstreamTargets    StringList     `json:"downstreamTargets" db:"downstream_targets"`
	LastUpdated          time.Time      `json:"lastUpdated" db:"last_updated"`
	CreatedAt            time.Time      `json:"createdAt" db:"created_at"`
}

// HasContract reports whether a non-empty contract SLA is recorded.
func (p *DataProduct) HasContract() bool {
	return p.ContractSLA != nil && *p.ContractSLA != ""
}

// Clone returns a copy that shares no slices with p.
func (p DataProduct) Clone() DataProduct {
	out := p
	out.Tags = append(pq.StringArray{}, p.Tags...)
	out.UpstreamSources = append(StringList{}, p.UpstreamSources...)
	out.DownstreamTargets = append(StringList{}, p.DownstreamTargets...)
	if p.Metadata != nil {
		out.Metadata = append(JSON(nil), p.Metadata...)
	}
	if p.QualityMetrics != nil {
		out.QualityMetrics = append(JSON(nil), p.QualityMetrics...)
	}
	return out
}

type CreateProductInput struct {
	Name                 string        `json:"name" validate:"required,max=200"`
	Description          string        `json:"description" validate:"max=5000"`
	Type                 ProductType   `json:"type" validate:"required,oneof=dashboard_selfservice api_outputs insights ai_agents recommendation_system genai_chat genai_workflow traditional_ai genie_spaces"`
	Domain               ProductDomain `json:"domain" validate:"required,oneof=sales marketing finance hr operations customer_service product"`
	Status               ProductStatus `json:"status" validate:"required,oneof=active deprecated development experimentacao"`
	Owner                string        `json:"owner" validate:"required,max=200"`
	OwnerInitials        string        `json:"ownerInitials" validate:"required,max=3"`
	Tags                 []string      `json:"tags,omitempty" validate:"omitempty,dive,max=100"`
	Metadata             JSON          `json:"metadata,omitempty"`
	ContractSLA          *string       `json:"contractSLA,omitempty"`
	QualityMetrics       JSON          `json:"qualityMetrics,omitempty"`
	TechnicalContact     *string       `json:"technicalContact,omitempty"`
	BusinessContact      *string       `json:"businessContact,omitempty"`
	DataSource           *string       `json:"dataSource,omitempty"`
	UpdateFrequency      *string       `json:"updateFrequency,omitempty"`
	APIEndpoint          *string       `json:"apiEndpoint,omitempty" validate:"omitempty,url"`
	DocumentationURL     *string       `json:"documentationUrl,omitempty" validate:"omitempty,url"`
	DocumentationContent *string       `json:"documentationContent,omitempty"`
	ModelType            *string       `json:"modelType,omitempty"`
	ConfidenceLevel      *string       `json:"confidenceLevel,omitempty"`
	ComplianceLevel      *string       `json:"complianceLevel,omitempty"`
	UpstreamSources      []string      `json:"upstreamSources,omitempty"`
	DownstreamTargets    []string      `json:"downstreamTargets,omitempty"`
}

// UpdateProductInput is a partial payload: only fields present in the request are applied.
type UpdateProductInput struct {
	Name                 *string        `json:"name,omitempty" validate:"omitnil,min=1,max=200"`
	Description          *string        `json:"description,omitempty" validate:"omitnil,max=5000"`
	Type                 *ProductType   `json:"type,omitempty" validate:"omitnil,oneof=dashboard_selfservice api_outputs insights ai_agents recommendation_system genai_chat genai_workflow traditional_ai genie_spaces"`
	Domain               *ProductDomain `json:"domain,omitempty" validate:"omitnil,oneof=sales marketing finance hr operations customer_service product"`
	Status               *ProductStatus `json:"status,omitempty" validate:"omitnil,oneof=active deprecated development experimentacao"`
	Owner                *string        `json:"owner,omitempty" validate:"omitnil,min=1,max=200"`
	OwnerInitials        *string        `json:"ownerInitials,omitempty" validate:"omitnil,min=1,max=3"`
	Tags                 *[]string      `json:"tags,omitempty" validate:"omitnil,dive,max=100"`
	Metadata             NullableJSON   `json:"metadata,omitzero"`
	ContractSLA          NullableString `json:"contractSLA,omitzero"`
	QualityMetrics       NullableJSON   `json:"qualityMetrics,omitzero"`
	TechnicalContact     NullableString `json:"technicalContact,omitzero"`
	BusinessContact      NullableString `json:"businessContact,omitzero"`
	DataSource           NullableString `json:"dataSource,omitzero"`
	UpdateFrequency      NullableString `json:"updateFrequency,omitzero"`
	APIEndpoint          NullableString `json:"apiEndpoint,omitzero"`
	DocumentationURL     NullableString `json:"documentationUrl,omitzero"`
	DocumentationContent NullableString `json:"documentationContent,omitzero"`
	ModelType            NullableString `json:"modelType,omitzero"`
	ConfidenceLevel      NullableString `json:"confidenceLevel,omitzero"`
	ComplianceLevel      NullableString `json:"complianceLevel,omitzero"`
	UpstreamSources      *[]string      `json:"upstreamSources,omitempty"`
	DownstreamTargets    *[]string      `json:"downstreamTargets,omitempty"`
}

// NewProduct builds an unsaved product from a validated create payload.
func NewProduct(input CreateProductInput) *DataProduct {
	p := &DataProduct{
		Name:                 input.Name,
		Description:          input.Description,
		Type:                 input.Type,
		Domain:               input.Domain,
		Status:               input.Status,
		Owner:                input.Owner,
		OwnerInitials:        input.OwnerInitials,
		Tags:                 append(pq.StringArray{}, input.Tags...),
		Metadata:             input.Metadata,
		ContractSLA:          input.ContractSLA,
		QualityMetrics:       input.QualityMetrics,
		TechnicalContact:     input.TechnicalContact,
		BusinessContact:      input.BusinessContact,
		DataSource:           input.DataSource,
		UpdateFrequency:      input.UpdateFrequency,
		APIEndpoint:          input.APIEndpoint,
		DocumentationURL:     input.DocumentationURL,
		DocumentationContent: input.DocumentationContent,
		ModelType:            input.ModelType,
		ConfidenceLevel:      input.ConfidenceLevel,
		ComplianceLevel:      input.ComplianceLevel,
		UpstreamSources:      append(StringList{}, input.UpstreamSources...),
		DownstreamTargets:    append(StringList{}, input.DownstreamTargets...),
	}
	return p
}

// Apply merges the fields present in input into p.
func (input UpdateProductInput) Apply(p *DataProduct) {
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Type != nil {
		p.Type = *input.Type
	}
	if input.Domain != nil {
		p.Domain = *input.Domain
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	if input.Owner != nil {
		p.Owner = *input.Owner
	}
	if input.OwnerInitials != nil {
		p.OwnerInitials = *input.OwnerInitials
	}
	if input.Tags != nil {
		p.Tags = append(pq.StringArray{}, (*input.Tags)...)
	}
	if input.Metadata.Set {
		p.Metadata = input.Metadata.Value
	}
	if input.ContractSLA.Set {
		p.ContractSLA = input.ContractSLA.Value
	}
	if input.QualityMetrics.Set {
		p.QualityMetrics = input.QualityMetrics.Value
	}
	if input.TechnicalContact.Set {
		p.TechnicalContact = input.TechnicalContact.Value
	}
	if input.BusinessContact.Set {
		p.BusinessContact = input.BusinessContact.Value
	}
	if input.DataSource.Set {
		p.DataSource = input.DataSource.Value
	}
	if input.UpdateFrequency.Set {
		p.UpdateFrequency = input.UpdateFrequency.Value
	}
	if input.APIEndpoint.Set {
		p.APIEndpoint = input.APIEndpoint.Value
	}
	if input.DocumentationURL.Set {
		p.DocumentationURL = input.DocumentationURL.Value
	}
	if input.DocumentationContent.Set {
		p.DocumentationContent = input.DocumentationContent.Value
	}
	if input.ModelType.Set {
		p.ModelType = input.ModelType.Value
	}
	if input.ConfidenceLevel.Set {
		p.ConfidenceLevel = input.ConfidenceLevel.Value
	}
	if input.ComplianceLevel.Set {
		p.ComplianceLevel = input.ComplianceLevel.Value
	}
	if input.UpstreamSources != nil {
		p.UpstreamSources = append(StringList{}, (*input.UpstreamSources)...)
	}
	if input.DownstreamTargets != nil {
		p.DownstreamTargets = append(StringList{}, (*input.DownstreamTargets)...)
	}
}

// ProductFilter narrows a product listing. Empty fields and "all" do not filter.
type ProductFilter struct {
	Search string `query:"search"`
	Type   string `query:"type"`
	Domain string `query:"domain"`
	Status string `query:"status"`
}

func (f ProductFilter) Normalize() ProductFilter {
	clean := func(v string) string {
		v = strings.TrimSpace(v)
		if v == "all" {
			return ""
		}
		return v
	}
	return ProductFilter{
		Search: strings.TrimSpace(f.Search),
		Type:   clean(f.Type),
		Domain: clean(f.Domain),
		Status: clean(f.Status),
	}
}

// Matches applies the filter to p. The filter must already be normalized.
func (f ProductFilter) Matches(p *DataProduct) bool {
	if f.Type != "" && string(p.Type) != f.Type {
		return false
	}
	if f.Domain != "" && string(p.Domain) != f.Domain {
		return false
	}
	if f.Status != "" && string(p.Status) != f.Status {
		return false
	}
	if f.Search == "" {
		return true
	}

	q := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Owner), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

type CatalogStats struct {
	TotalProducts  int64 `json:"totalProducts" db:"total_products"`
	ActiveProducts int64 `json:"activeProducts" db:"active_products"`
	WithContracts  int64 `json:"withContracts" db:"with_contracts"`
	NeedsAttention int64 `json:"needsAttention" db:"needs_attention"`
}
