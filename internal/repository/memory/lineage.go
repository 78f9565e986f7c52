package memory

import (
	"context"

	"github.com/lib/pq"

	"data-catalog/internal/domain"
)

type lineageRepository struct {
	s *session
}

func (r *lineageRepository) ListByProduct(_ context.Context, productID int64) ([]domain.DataLineage, error) {
	out := []domain.DataLineage{}
	err := r.s.do(func(d *dataset) error {
		for _, l := range d.lineage {
			if l.ProductID == productID {
				l.Transformations = append(pq.StringArray{}, l.Transformations...)
				out = append(out, l)
			}
		}
		return nil
	})
	return out, err
}

func (r *lineageRepository) Create(_ context.Context, l *domain.DataLineage) error {
	return r.s.do(func(d *dataset) error {
		d.seq.lineage++
		l.ID = d.seq.lineage
		l.CreatedAt = r.s.now()
		stored := *l
		stored.Transformations = append(pq.StringArray{}, l.Transformations...)
		d.lineage = append(d.lineage, stored)
		return nil
	})
}

type dependencyRepository struct {
	s *session
}

func (r *dependencyRepository) ListByProduct(_ context.Context, productID int64) ([]domain.ProductDependency, error) {
	out := []domain.ProductDependency{}
	err := r.s.do(func(d *dataset) error {
		for _, dep := range d.dependencies {
			if dep.ProductID == productID {
				out = append(out, dep)
			}
		}
		return nil
	})
	return out, err
}

func (r *dependencyRepository) Create(_ context.Context, dep *domain.ProductDependency) error {
	return r.s.do(func(d *dataset) error {
		d.seq.dependency++
		dep.ID = d.seq.dependency
		dep.CreatedAt = r.s.now()
		d.dependencies = append(d.dependencies, *dep)
		return nil
	})
}
