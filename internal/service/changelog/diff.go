package changelog

import (
	"reflect"
	"strings"

	"data-catalog/internal/domain"
)

// FieldChange is one field whose value differs between two product snapshots.
type FieldChange struct {
	Field    string
	OldValue string
	NewValue string
}

type fieldSpec struct {
	name string
	// value returns a comparable, normalized form of the field.
	value func(p *domain.DataProduct) any
	// render returns the change log representation of a normalized value.
	render func(v any) string
}

func stringField(name string, get func(p *domain.DataProduct) string) fieldSpec {
	return fieldSpec{
		name:   name,
		value:  func(p *domain.DataProduct) any { return get(p) },
		render: func(v any) string { return v.(string) },
	}
}

func optionalField(name string, get func(p *domain.DataProduct) *string) fieldSpec {
	return fieldSpec{
		name: name,
		value: func(p *domain.DataProduct) any {
			if v := get(p); v != nil {
				return *v
			}
			return ""
		},
		render: func(v any) string { return v.(string) },
	}
}

func listField(name string, get func(p *domain.DataProduct) []string) fieldSpec {
	return fieldSpec{
		name: name,
		value: func(p *domain.DataProduct) any {
			v := get(p)
			if v == nil {
				return []string{}
			}
			return v
		},
		render: func(v any) string { return strings.Join(v.([]string), ", ") },
	}
}

func jsonField(name string, get func(p *domain.DataProduct) domain.JSON) fieldSpec {
	return fieldSpec{
		name:   name,
		value:  func(p *domain.DataProduct) any { return get(p).Canonical() },
		render: func(v any) string { return v.(string) },
	}
}

var trackedFields = []fieldSpec{
	stringField("name", func(p *domain.DataProduct) string { return p.Name }),
	stringField("description", func(p *domain.DataProduct) string { return p.Description }),
	stringField("type", func(p *domain.DataProduct) string { return string(p.Type) }),
	stringField("domain", func(p *domain.DataProduct) string { return string(p.Domain) }),
	stringField("status", func(p *domain.DataProduct) string { return string(p.Status) }),
	stringField("owner", func(p *domain.DataProduct) string { return p.Owner }),
	stringField("ownerInitials", func(p *domain.DataProduct) string { return p.OwnerInitials }),
	listField("tags", func(p *domain.DataProduct) []string { return p.Tags }),
	jsonField("metadata", func(p *domain.DataProduct) domain.JSON { return p.Metadata }),
	optionalField("contractSLA", func(p *domain.DataProduct) *string { return p.ContractSLA }),
	jsonField("qualityMetrics", func(p *domain.DataProduct) domain.JSON { return p.QualityMetrics }),
	optionalField("technicalContact", func(p *domain.DataProduct) *string { return p.TechnicalContact }),
	optionalField("businessContact", func(p *domain.DataProduct) *string { return p.BusinessContact }),
	optionalField("dataSource", func(p *domain.DataProduct) *string { return p.DataSource }),
	optionalField("updateFrequency", func(p *domain.DataProduct) *string { return p.UpdateFrequency }),
	optionalField("apiEndpoint", func(p *domain.DataProduct) *string { return p.APIEndpoint }),
	optionalField("documentationUrl", func(p *domain.DataProduct) *string { return p.DocumentationURL }),
	optionalField("documentationContent", func(p *domain.DataProduct) *string { return p.DocumentationContent }),
	optionalField("modelType", func(p *domain.DataProduct) *string { return p.ModelType }),
	optionalField("confidenceLevel", func(p *domain.DataProduct) *string { return p.ConfidenceLevel }),
	optionalField("complianceLevel", func(p *domain.DataProduct) *string { return p.ComplianceLevel }),
	listField("upstreamSources", func(p *domain.DataProduct) []string { return p.UpstreamSources }),
	listField("downstreamTargets", func(p *domain.DataProduct) []string { return p.DownstreamTargets }),
}

// Diff lists the tracked fields whose values differ between before and after,
// in a stable field order. Null and empty values compare equal.
func Diff(before, after *domain.DataProduct) []FieldChange {
	var changes []FieldChange
	for _, f := range trackedFields {
		oldValue, newValue := f.value(before), f.value(after)
		if reflect.DeepEqual(oldValue, newValue) {
			continue
		}
		changes = append(changes, FieldChange{
			Field:    f.name,
			OldValue: f.render(oldValue),
			NewValue: f.render(newValue),
		})
	}
	return changes
}
