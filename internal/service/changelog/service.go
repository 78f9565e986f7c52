package changelog

import (
	"context"
	"strings"

	"data-catalog/internal/domain"
	"data-catalog/internal/repository"
)

const SystemActor = "system"

type Service interface {
	Record(ctx context.Context, input domain.RecordChangeInput) (*domain.ProductChange, error)
	ChangesFor(ctx context.Context, productID int64) ([]domain.ProductChange, error)
	Recent(ctx context.Context, limit int) ([]domain.ProductChangeWithProduct, error)
}

type service struct {
	changeRepo repository.ProductChangeRepository
}

func NewService(changeRepo repository.ProductChangeRepository) Service {
	return &service{changeRepo: changeRepo}
}

func (s *service) Record(ctx context.Context, input domain.RecordChangeInput) (*domain.ProductChange, error) {
	changedBy := strings.TrimSpace(input.ChangedBy)
	if changedBy == "" {
		changedBy = SystemActor
	}

	change := &domain.ProductChange{
		ProductID:  input.ProductID,
		ChangedBy:  changedBy,
		ChangeType: input.ChangeType,
		FieldName:  input.FieldName,
		OldValue:   input.OldValue,
		NewValue:   input.NewValue,
	}
	if input.Description != "" {
		change.Description = &input.Description
	}

	if err := s.changeRepo.Create(ctx, change); err != nil {
		return nil, err
	}
	return change, nil
}

func (s *service) ChangesFor(ctx context.Context, productID int64) ([]domain.ProductChange, error) {
	return s.changeRepo.ListByProduct(ctx, productID)
}

// Recent lists the newest changes across all products. A non-positive limit
// falls back to domain.DefaultRecentChangesLimit.
func (s *service) Recent(ctx context.Context, limit int) ([]domain.ProductChangeWithProduct, error) {
	if limit <= 0 {
		limit = domain.DefaultRecentChangesLimit
	}
	return s.changeRepo.ListRecent(ctx, limit)
}
