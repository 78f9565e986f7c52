package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"data-catalog/internal/domain"
)

type FavoriteRepository interface {
	ListByUser(ctx context.Context, userEmail string) ([]domain.UserFavorite, error)
	// Add stores the pair once; adding an existing pair returns the stored row.
	Add(ctx context.Context, userEmail string, productID int64) (*domain.UserFavorite, error)
	Remove(ctx context.Context, userEmail string, productID int64) (bool, error)
	Exists(ctx context.Context, userEmail string, productID int64) (bool, error)
}

type favoriteRepository struct {
	db sqlx.ExtContext
}

func NewFavoriteRepository(db sqlx.ExtContext) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userEmail string) ([]domain.UserFavorite, error) {
	favorites := []domain.UserFavorite{}
	query := `SELECT * FROM user_favorites WHERE user_email = $1 ORDER BY created_at, id`

	if err := sqlx.SelectContext(ctx, r.db, &favorites, query, userEmail); err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) Add(ctx context.Context, userEmail string, productID int64) (*domain.UserFavorite, error) {
	insert := `
		INSERT INTO user_favorites (user_email, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_email, product_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, insert, userEmail, productID); err != nil {
		return nil, err
	}

	var favorite domain.UserFavorite
	query := `SELECT * FROM user_favorites WHERE user_email = $1 AND product_id = $2`
	if err := sqlx.GetContext(ctx, r.db, &favorite, query, userEmail, productID); err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) Remove(ctx context.Context, userEmail string, productID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM user_favorites WHERE user_email = $1 AND product_id = $2`, userEmail, productID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *favoriteRepository) Exists(ctx context.Context, userEmail string, productID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM user_favorites WHERE user_email = $1 AND product_id = $2)`
	err := sqlx.GetContext(ctx, r.db, &exists, query, userEmail, productID)
	return exists, err
}
