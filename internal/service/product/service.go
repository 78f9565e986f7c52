package product

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"data-catalog/internal/domain"
	"data-catalog/internal/pkg/i18n"
	"data-catalog/internal/pkg/logger"
	"data-catalog/internal/repository"
	"data-catalog/internal/service/changelog"
)

const statsCacheKey = "catalog:stats"

var tracer = otel.Tracer("data-catalog/service/product")

type Service interface {
	Get(ctx context.Context, id int64) (*domain.DataProduct, error)
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.DataProduct, error)
	Create(ctx context.Context, actor string, input domain.CreateProductInput) (*domain.DataProduct, error)
	Update(ctx context.Context, actor string, id int64, input domain.UpdateProductInput) (*domain.DataProduct, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Stats(ctx context.Context) (*domain.CatalogStats, error)
	InvalidateStats(ctx context.Context)
	// Bind returns a Service running against repos, usually a transaction-bound bundle.
	Bind(repos *repository.Repositories) Service
}

type Options struct {
	Redis    *redis.Client
	StatsTTL time.Duration
	Locale   string
	Logger   *logger.Logger
}

type service struct {
	repos    *repository.Repositories
	redis    *redis.Client
	statsTTL time.Duration
	locale   string
	log      *logger.Logger
}

func NewService(repos *repository.Repositories, opts Options) Service {
	if opts.StatsTTL <= 0 {
		opts.StatsTTL = 5 * time.Minute
	}
	if opts.Locale == "" {
		opts.Locale = i18n.DefaultLocale
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	return &service{
		repos:    repos,
		redis:    opts.Redis,
		statsTTL: opts.StatsTTL,
		locale:   opts.Locale,
		log:      opts.Logger,
	}
}

func (s *service) Bind(repos *repository.Repositories) Service {
	bound := *s
	bound.repos = repos
	return &bound
}

func (s *service) Get(ctx context.Context, id int64) (*domain.DataProduct, error) {
	product, err := s.repos.Product.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (s *service) List(ctx context.Context, filter domain.ProductFilter) ([]domain.DataProduct, error) {
	return s.repos.Product.List(ctx, filter.Normalize())
}

func (s *service) Create(ctx context.Context, actor string, input domain.CreateProductInput) (*domain.DataProduct, error) {
	ctx, span := tracer.Start(ctx, "product.Create")
	defer span.End()

	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	product := domain.NewProduct(input)
	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		if err := tx.Product.Create(ctx, product); err != nil {
			return err
		}

		_, err := changelog.NewService(tx.ProductChange).Record(ctx, domain.RecordChangeInput{
			ProductID:   product.ID,
			ChangedBy:   actor,
			ChangeType:  domain.ChangeCreated,
			Description: i18n.Translate(s.locale, "product_created", "name", product.Name),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("product.id", product.ID))
	s.InvalidateStats(ctx)
	return product, nil
}

func (s *service) Update(ctx context.Context, actor string, id int64, input domain.UpdateProductInput) (*domain.DataProduct, error) {
	ctx, span := tracer.Start(ctx, "product.Update")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", id))

	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	var updated domain.DataProduct
	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		current, err := tx.Product.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrProductNotFound
		}

		updated = current.Clone()
		input.Apply(&updated)
		if err := tx.Product.Update(ctx, &updated); err != nil {
			return err
		}

		tracker := changelog.NewService(tx.ProductChange)
		for _, change := range changelog.Diff(current, &updated) {
			if _, err := tracker.Record(ctx, s.fieldChange(id, actor, change)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.InvalidateStats(ctx)
	return &updated, nil
}

func (s *service) fieldChange(productID int64, actor string, change changelog.FieldChange) domain.RecordChangeInput {
	key := "field_changed"
	if change.Field == "status" {
		key = "status_changed"
	}

	field, oldValue, newValue := change.Field, change.OldValue, change.NewValue
	return domain.RecordChangeInput{
		ProductID:  productID,
		ChangedBy:  actor,
		ChangeType: domain.ChangeUpdated,
		FieldName:  &field,
		OldValue:   &oldValue,
		NewValue:   &newValue,
		Description: i18n.Translate(s.locale, key,
			"field", i18n.Field(s.locale, field),
			"old", oldValue,
			"new", newValue,
		),
	}
}

func (s *service) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, span := tracer.Start(ctx, "product.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("product.id", id))

	deleted, err := s.repos.Product.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.InvalidateStats(ctx)
	}
	return deleted, nil
}

func (s *service) Stats(ctx context.Context) (*domain.CatalogStats, error) {
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, statsCacheKey).Result(); err == nil {
			var stats domain.CatalogStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.repos.Product.Stats(ctx)
	if err != nil {
		return nil, err
	}

	if s.redis != nil {
		if statsJSON, err := json.Marshal(stats); err == nil {
			if err := s.redis.Set(ctx, statsCacheKey, statsJSON, s.statsTTL).Err(); err != nil {
				s.log.Warn("failed to cache catalog stats", "error", err)
			}
		}
	}

	return stats, nil
}

func (s *service) InvalidateStats(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, statsCacheKey).Err(); err != nil {
		s.log.Warn("failed to invalidate catalog stats", "error", err)
	}
}
