package domain

import (
	"time"

	"github.com/lib/pq"
)

type DataLineage struct {
	ID                int64          `json:"id" db:"id"`
	ProductID         int64          `json:"productId" db:"product_id"`
	SourceType        string         `json:"sourceType" db:"source_type"`
	SourceName        string         `json:"sourceName" db:"source_name"`
	SourceDescription *string        `json:"sourceDescription" db:"source_description"`
	Transformations   pq.StringArray `json:"transformations" db:"transformations"`
	CreatedAt         time.Time      `json:"createdAt" db:"created_at"`
}

type CreateLineageInput struct {
	ProductID         int64    `json:"productId" validate:"required,gt=0"`
	SourceType        string   `json:"sourceType" validate:"required,oneof=table model api file"`
	SourceName        string   `json:"sourceName" validate:"required,max=300"`
	SourceDescription *string  `json:"sourceDescription,omitempty"`
	Transformations   []string `json:"transformations,omitempty"`
}

type ProductDependency struct {
	ID               int64     `json:"id" db:"id"`
	ProductID        int64     `json:"productId" db:"product_id"`
	DependencyType   string    `json:"dependencyType" db:"dependency_type"`
	DependencyName   string    `json:"dependencyName" db:"dependency_name"`
	DependencySchema *string   `json:"dependencySchema" db:"dependency_schema"`
	Description      *string   `json:"description" db:"description"`
	IsRequired       bool      `json:"isRequired" db:"is_required"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

type CreateDependencyInput struct {
	ProductID        int64   `json:"productId" validate:"required,gt=0"`
	DependencyType   string  `json:"dependencyType" validate:"required,oneof=table model dataset"`
	DependencyName   string  `json:"dependencyName" validate:"required,max=300"`
	DependencySchema *string `json:"dependencySchema,omitempty"`
	Description      *string `json:"description,omitempty"`
	IsRequired       *bool   `json:"isRequired,omitempty"`
}
