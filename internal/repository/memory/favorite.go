package memory

import (
	"context"

	"data-catalog/internal/domain"
)

type favoriteRepository struct {
	s *session
}

func (r *favoriteRepository) ListByUser(_ context.Context, userEmail string) ([]domain.UserFavorite, error) {
	out := []domain.UserFavorite{}
	err := r.s.do(func(d *dataset) error {
		for _, f := range d.favorites {
			if f.UserEmail == userEmail {
				out = append(out, f)
			}
		}
		return nil
	})
	return out, err
}

func (r *favoriteRepository) Add(_ context.Context, userEmail string, productID int64) (*domain.UserFavorite, error) {
	var out domain.UserFavorite
	err := r.s.do(func(d *dataset) error {
		for _, f := range d.favorites {
			if f.UserEmail == userEmail && f.ProductID == productID {
				out = f
				return nil
			}
		}
		d.seq.favorite++
		out = domain.UserFavorite{
			ID:        d.seq.favorite,
			UserEmail: userEmail,
			ProductID: productID,
			CreatedAt: r.s.now(),
		}
		d.favorites = append(d.favorites, out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *favoriteRepository) Remove(_ context.Context, userEmail string, productID int64) (bool, error) {
	var removed bool
	err := r.s.do(func(d *dataset) error {
		before := len(d.favorites)
		d.favorites = removeWhere(d.favorites, func(f domain.UserFavorite) bool {
			return f.UserEmail == userEmail && f.ProductID == productID
		})
		removed = len(d.favorites) < before
		return nil
	})
	return removed, err
}

func (r *favoriteRepository) Exists(_ context.Context, userEmail string, productID int64) (bool, error) {
	var exists bool
	err := r.s.do(func(d *dataset) error {
		for _, f := range d.favorites {
			if f.UserEmail == userEmail && f.ProductID == productID {
				exists = true
				break
			}
		}
		return nil
	})
	return exists, err
}
