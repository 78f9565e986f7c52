package lineage

import (
	"context"

	"github.com/lib/pq"

	"data-catalog/internal/domain"
	"data-catalog/internal/repository"
)

type Service interface {
	ListLineage(ctx context.Context, productID int64) ([]domain.DataLineage, error)
	AddLineage(ctx context.Context, input domain.CreateLineageInput) (*domain.DataLineage, error)
	ListDependencies(ctx context.Context, productID int64) ([]domain.ProductDependency, error)
	AddDependency(ctx context.Context, input domain.CreateDependencyInput) (*domain.ProductDependency, error)
}

type service struct {
	repos *repository.Repositories
}

func NewService(repos *repository.Repositories) Service {
	return &service{repos: repos}
}

func (s *service) ListLineage(ctx context.Context, productID int64) ([]domain.DataLineage, error) {
	return s.repos.Lineage.ListByProduct(ctx, productID)
}

func (s *service) AddLineage(ctx context.Context, input domain.CreateLineageInput) (*domain.DataLineage, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}
	if err := s.requireProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}

	lineage := &domain.DataLineage{
		ProductID:         input.ProductID,
		SourceType:        input.SourceType,
		SourceName:        input.SourceName,
		SourceDescription: input.SourceDescription,
		Transformations:   append(pq.StringArray{}, input.Transformations...),
	}
	if err := s.repos.Lineage.Create(ctx, lineage); err != nil {
		return nil, err
	}
	return lineage, nil
}

func (s *service) ListDependencies(ctx context.Context, productID int64) ([]domain.ProductDependency, error) {
	return s.repos.Dependency.ListByProduct(ctx, productID)
}

func (s *service) AddDependency(ctx context.Context, input domain.CreateDependencyInput) (*domain.ProductDependency, error) {
	if err := domain.Validate(input); err != nil {
		return nil, err
	}
	if err := s.requireProduct(ctx, input.ProductID); err != nil {
		return nil, err
	}

	dep := &domain.ProductDependency{
		ProductID:        input.ProductID,
		DependencyType:   input.DependencyType,
		DependencyName:   input.DependencyName,
		DependencySchema: input.DependencySchema,
		Description:      input.Description,
		IsRequired:       true,
	}
	if input.IsRequired != nil {
		dep.IsRequired = *input.IsRequired
	}
	if err := s.repos.Dependency.Create(ctx, dep); err != nil {
		return nil, err
	}
	return dep, nil
}

func (s *service) requireProduct(ctx context.Context, id int64) error {
	product, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return nil
}
