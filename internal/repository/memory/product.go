package memory

import (
	"context"
	"sort"

	"data-catalog/internal/domain"
)

type productRepository struct {
	s *session
}

func (r *productRepository) Create(_ context.Context, p *domain.DataProduct) error {
	return r.s.do(func(d *dataset) error {
		d.seq.product++
		now := r.s.now()
		p.ID = d.seq.product
		p.CreatedAt = now
		p.LastUpdated = now
		d.products[p.ID] = p.Clone()
		return nil
	})
}

func (r *productRepository) GetByID(_ context.Context, id int64) (*domain.DataProduct, error) {
	var out *domain.DataProduct
	err := r.s.do(func(d *dataset) error {
		if p, ok := d.products[id]; ok {
			c := p.Clone()
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *productRepository) List(_ context.Context, filter domain.ProductFilter) ([]domain.DataProduct, error) {
	filter = filter.Normalize()
	out := []domain.DataProduct{}
	err := r.s.do(func(d *dataset) error {
		for _, p := range d.products {
			if filter.Matches(&p) {
				out = append(out, p.Clone())
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastUpdated.Equal(out[j].LastUpdated) {
			return out[i].LastUpdated.Before(out[j].LastUpdated)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *productRepository) Update(_ context.Context, p *domain.DataProduct) error {
	return r.s.do(func(d *dataset) error {
		current, ok := d.products[p.ID]
		if !ok {
			return domain.ErrProductNotFound
		}
		now := r.s.now()
		if now.Before(current.CreatedAt) {
			now = current.CreatedAt
		}
		p.CreatedAt = current.CreatedAt
		p.LastUpdated = now
		d.products[p.ID] = p.Clone()
		return nil
	})
}

func (r *productRepository) Delete(_ context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.s.do(func(d *dataset) error {
		if _, ok := d.products[id]; !ok {
			return nil
		}
		delete(d.products, id)
		deleted = true

		d.favorites = removeWhere(d.favorites, func(f domain.UserFavorite) bool { return f.ProductID == id })
		d.lineage = removeWhere(d.lineage, func(l domain.DataLineage) bool { return l.ProductID == id })
		d.dependencies = removeWhere(d.dependencies, func(dep domain.ProductDependency) bool { return dep.ProductID == id })
		for reqID, req := range d.requests {
			if req.ProductID != nil && *req.ProductID == id {
				req.ProductID = nil
				d.requests[reqID] = req
			}
		}
		return nil
	})
	return deleted, err
}

func (r *productRepository) Stats(_ context.Context) (*domain.CatalogStats, error) {
	stats := &domain.CatalogStats{}
	err := r.s.do(func(d *dataset) error {
		for _, p := range d.products {
			stats.TotalProducts++
			if p.Status == domain.StatusActive {
				stats.ActiveProducts++
			}
			if p.HasContract() {
				stats.WithContracts++
			}
			if p.Status.NeedsAttention() {
				stats.NeedsAttention++
			}
		}
		return nil
	})
	return stats, err
}

func (r *productRepository) Count(_ context.Context) (int64, error) {
	var count int64
	err := r.s.do(func(d *dataset) error {
		count = int64(len(d.products))
		return nil
	})
	return count, err
}

func removeWhere[T any](items []T, drop func(T) bool) []T {
	out := items[:0:0]
	for _, item := range items {
		if !drop(item) {
			out = append(out, item)
		}
	}
	return out
}
