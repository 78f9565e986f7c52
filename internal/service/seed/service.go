package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"data-catalog/internal/domain"
	"data-catalog/internal/pkg/logger"
	"data-catalog/internal/repository"
	"data-catalog/internal/service/changelog"
	"data-catalog/internal/service/product"
)

//go:embed catalog.json
var sampleCatalog []byte

type Service interface {
	// Seed inserts the sample catalog when no product exists yet and returns
	// the number of products created.
	Seed(ctx context.Context) (int, error)
}

type service struct {
	repos    *repository.Repositories
	products product.Service
	log      *logger.Logger
}

func NewService(repos *repository.Repositories, products product.Service, log *logger.Logger) Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &service{
		repos:    repos,
		products: products,
		log:      log,
	}
}

func SampleProducts() ([]domain.CreateProductInput, error) {
	var inputs []domain.CreateProductInput
	if err := json.Unmarshal(sampleCatalog, &inputs); err != nil {
		return nil, fmt.Errorf("decode sample catalog: %w", err)
	}
	return inputs, nil
}

func (s *service) Seed(ctx context.Context) (int, error) {
	inputs, err := SampleProducts()
	if err != nil {
		return 0, err
	}

	created := 0
	err = s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		count, err := tx.Product.Count(ctx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		products := s.products.Bind(tx)
		for _, input := range inputs {
			if _, err := products.Create(ctx, changelog.SystemActor, input); err != nil {
				return fmt.Errorf("seed product %q: %w", input.Name, err)
			}
		}
		created = len(inputs)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if created > 0 {
		s.products.InvalidateStats(ctx)
		s.log.Info("seeded sample catalog", "products", created)
	}
	return created, nil
}
