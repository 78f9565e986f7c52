// Package memory implements every repository interface on process-local state.
// All repositories of one bundle share a single lock; transactions hold the lock
// for their whole duration and restore a snapshot on error.
package memory

import (
	"context"
	"sync"
	"time"

	"data-catalog/internal/domain"
	"data-catalog/internal/repository"
)

type sequences struct {
	product    int64
	request    int64
	change     int64
	favorite   int64
	lineage    int64
	dependency int64
}

type dataset struct {
	products     map[int64]domain.DataProduct
	requests     map[int64]domain.ApprovalRequest
	changes      []domain.ProductChange
	favorites    []domain.UserFavorite
	lineage      []domain.DataLineage
	dependencies []domain.ProductDependency
	seq          sequences
}

func newDataset() *dataset {
	return &dataset{
		products: map[int64]domain.DataProduct{},
		requests: map[int64]domain.ApprovalRequest{},
	}
}

// clone copies the containers. Stored values are replaced, never mutated in
// place, so element-level sharing with the copy is safe.
func (d *dataset) clone() *dataset {
	out := &dataset{
		products:     make(map[int64]domain.DataProduct, len(d.products)),
		requests:     make(map[int64]domain.ApprovalRequest, len(d.requests)),
		changes:      append([]domain.ProductChange(nil), d.changes...),
		favorites:    append([]domain.UserFavorite(nil), d.favorites...),
		lineage:      append([]domain.DataLineage(nil), d.lineage...),
		dependencies: append([]domain.ProductDependency(nil), d.dependencies...),
		seq:          d.seq,
	}
	for id, p := range d.products {
		out.products[id] = p
	}
	for id, r := range d.requests {
		out.requests[id] = r
	}
	return out
}

type Store struct {
	mu   sync.Mutex
	data *dataset
	now  func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for store-assigned timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewRepositories(opts ...Option) *repository.Repositories {
	store := &Store{data: newDataset(), now: time.Now}
	for _, opt := range opts {
		opt(store)
	}

	repos := store.bundle(&session{store: store})
	repos.RunInTx = store.runInTx
	return repos
}

func (s *Store) runInTx(_ context.Context, fn func(*repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(s.bundle(&session{store: s, locked: true})); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) bundle(sess *session) *repository.Repositories {
	return &repository.Repositories{
		Product:         &productRepository{sess},
		ApprovalRequest: &approvalRequestRepository{sess},
		ProductChange:   &productChangeRepository{sess},
		Favorite:        &favoriteRepository{sess},
		Lineage:         &lineageRepository{sess},
		Dependency:      &dependencyRepository{sess},
	}
}

type session struct {
	store  *Store
	locked bool
}

func (s *session) do(fn func(d *dataset) error) error {
	if !s.locked {
		s.store.mu.Lock()
		defer s.store.mu.Unlock()
	}
	return fn(s.store.data)
}

func (s *session) now() time.Time {
	return s.store.now().UTC()
}
