package memory

import (
	"context"
	"sort"

	"data-catalog/internal/domain"
)

type productChangeRepository struct {
	s *session
}

func (r *productChangeRepository) Create(_ context.Context, change *domain.ProductChange) error {
	return r.s.do(func(d *dataset) error {
		d.seq.change++
		change.ID = d.seq.change
		change.ChangedAt = r.s.now()
		d.changes = append(d.changes, *change)
		return nil
	})
}

func (r *productChangeRepository) ListByProduct(_ context.Context, productID int64) ([]domain.ProductChange, error) {
	out := []domain.ProductChange{}
	err := r.s.do(func(d *dataset) error {
		for _, c := range d.changes {
			if c.ProductID == productID {
				out = append(out, c)
			}
		}
		return nil
	})
	sortNewestFirst(out, func(c domain.ProductChange) domain.ProductChange { return c })
	return out, err
}

func (r *productChangeRepository) ListRecent(_ context.Context, limit int) ([]domain.ProductChangeWithProduct, error) {
	out := []domain.ProductChangeWithProduct{}
	err := r.s.do(func(d *dataset) error {
		for _, c := range d.changes {
			p, ok := d.products[c.ProductID]
			if !ok {
				continue
			}
			out = append(out, domain.ProductChangeWithProduct{ProductChange: c, ProductName: p.Name})
		}
		return nil
	})
	sortNewestFirst(out, func(c domain.ProductChangeWithProduct) domain.ProductChange { return c.ProductChange })
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func sortNewestFirst[T any](items []T, change func(T) domain.ProductChange) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := change(items[i]), change(items[j])
		if !a.ChangedAt.Equal(b.ChangedAt) {
			return a.ChangedAt.After(b.ChangedAt)
		}
		return a.ID > b.ID
	})
}
