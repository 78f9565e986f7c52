package favorite

import (
	"context"
	"strings"

	"data-catalog/internal/domain"
	"data-catalog/internal/repository"
)

type Service interface {
	List(ctx context.Context, userEmail string) ([]domain.UserFavorite, error)
	// Add is idempotent: favoriting the same product twice returns the existing row.
	Add(ctx context.Context, input domain.AddFavoriteInput) (*domain.UserFavorite, error)
	Remove(ctx context.Context, userEmail string, productID int64) (bool, error)
	IsFavorited(ctx context.Context, userEmail string, productID int64) (bool, error)
}

type service struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
}

func NewService(favoriteRepo repository.FavoriteRepository, productRepo repository.ProductRepository) Service {
	return &service{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

func (s *service) List(ctx context.Context, userEmail string) ([]domain.UserFavorite, error) {
	return s.favoriteRepo.ListByUser(ctx, strings.TrimSpace(userEmail))
}

func (s *service) Add(ctx context.Context, input domain.AddFavoriteInput) (*domain.UserFavorite, error) {
	input.UserEmail = strings.TrimSpace(input.UserEmail)
	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	return s.favoriteRepo.Add(ctx, input.UserEmail, input.ProductID)
}

func (s *service) Remove(ctx context.Context, userEmail string, productID int64) (bool, error) {
	return s.favoriteRepo.Remove(ctx, strings.TrimSpace(userEmail), productID)
}

func (s *service) IsFavorited(ctx context.Context, userEmail string, productID int64) (bool, error) {
	return s.favoriteRepo.Exists(ctx, strings.TrimSpace(userEmail), productID)
}
