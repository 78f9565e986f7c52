package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"data-catalog/internal/domain"
)

type ProductChangeRepository interface {
	Create(ctx context.Context, change *domain.ProductChange) error
	ListByProduct(ctx context.Context, productID int64) ([]domain.ProductChange, error)
	ListRecent(ctx context.Context, limit int) ([]domain.ProductChangeWithProduct, error)
}

type productChangeRepository struct {
	db sqlx.ExtContext
}

func NewProductChangeRepository(db sqlx.ExtContext) ProductChangeRepository {
	return &productChangeRepository{db: db}
}

func (r *productChangeRepository) Create(ctx context.Context, change *domain.ProductChange) error {
	query := `
		INSERT INTO product_changes (product_id, changed_by, change_type, field_name,
			old_value, new_value, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, changed_at`

	return r.db.QueryRowxContext(ctx, query,
		change.ProductID, change.ChangedBy, change.ChangeType, change.FieldName,
		change.OldValue, change.NewValue, change.Description,
	).Scan(&change.ID, &change.ChangedAt)
}

func (r *productChangeRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.ProductChange, error) {
	changes := []domain.ProductChange{}
	query := `
		SELECT * FROM product_changes
		WHERE product_id = $1
		ORDER BY changed_at DESC, id DESC`

	if err := sqlx.SelectContext(ctx, r.db, &changes, query, productID); err != nil {
		return nil, err
	}
	return changes, nil
}

func (r *productChangeRepository) ListRecent(ctx context.Context, limit int) ([]domain.ProductChangeWithProduct, error) {
	changes := []domain.ProductChangeWithProduct{}
	query := `
		SELECT c.*, p.name AS product_name
		FROM product_changes c
		INNER JOIN data_products p ON p.id = c.product_id
		ORDER BY c.changed_at DESC, c.id DESC
		LIMIT $1`

	if err := sqlx.SelectContext(ctx, r.db, &changes, query, limit); err != nil {
		return nil, err
	}
	return changes, nil
}
