package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"data-catalog/internal/domain"
)

type LineageRepository interface {
	ListByProduct(ctx context.Context, productID int64) ([]domain.DataLineage, error)
	Create(ctx context.Context, lineage *domain.DataLineage) error
}

type lineageRepository struct {
	db sqlx.ExtContext
}

func NewLineageRepository(db sqlx.ExtContext) LineageRepository {
	return &lineageRepository{db: db}
}

func (r *lineageRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.DataLineage, error) {
	lineage := []domain.DataLineage{}
	query := `SELECT * FROM data_lineage WHERE product_id = $1 ORDER BY created_at, id`

	if err := sqlx.SelectContext(ctx, r.db, &lineage, query, productID); err != nil {
		return nil, err
	}
	return lineage, nil
}

func (r *lineageRepository) Create(ctx context.Context, l *domain.DataLineage) error {
	query := `
		INSERT INTO data_lineage (product_id, source_type, source_name, source_description, transformations)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		l.ProductID, l.SourceType, l.SourceName, l.SourceDescription, l.Transformations,
	).Scan(&l.ID, &l.CreatedAt)
}

type DependencyRepository interface {
	ListByProduct(ctx context.Context, productID int64) ([]domain.ProductDependency, error)
	Create(ctx context.Context, dep *domain.ProductDependency) error
}

type dependencyRepository struct {
	db sqlx.ExtContext
}

func NewDependencyRepository(db sqlx.ExtContext) DependencyRepository {
	return &dependencyRepository{db: db}
}

func (r *dependencyRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.ProductDependency, error) {
	deps := []domain.ProductDependency{}
	query := `SELECT * FROM product_dependencies WHERE product_id = $1 ORDER BY created_at, id`

	if err := sqlx.SelectContext(ctx, r.db, &deps, query, productID); err != nil {
		return nil, err
	}
	return deps, nil
}

func (r *dependencyRepository) Create(ctx context.Context, d *domain.ProductDependency) error {
	query := `
		INSERT INTO product_dependencies (product_id, dependency_type, dependency_name,
			dependency_schema, description, is_required)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, query,
		d.ProductID, d.DependencyType, d.DependencyName, d.DependencySchema, d.Description, d.IsRequired,
	).Scan(&d.ID, &d.CreatedAt)
}
