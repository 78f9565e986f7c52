package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// TxFunc runs fn against a bundle bound to a single transaction. Returning an
// error from fn rolls the transaction back.
type TxFunc func(ctx context.Context, fn func(*Repositories) error) error

type Repositories struct {
	Product         ProductRepository
	ApprovalRequest ApprovalRequestRepository
	ProductChange   ProductChangeRepository
	Favorite        FavoriteRepository
	Lineage         LineageRepository
	Dependency      DependencyRepository

	// RunInTx is nil on a bundle that is already transaction-bound.
	RunInTx TxFunc
}

// WithTx runs fn inside a transaction. A bundle that is already bound to a
// transaction joins it.
func (r *Repositories) WithTx(ctx context.Context, fn func(*Repositories) error) error {
	if r.RunInTx == nil {
		return fn(r)
	}
	return r.RunInTx(ctx, fn)
}

func NewRepositories(db *sqlx.DB) *Repositories {
	repos := newRepositories(db)
	repos.RunInTx = func(ctx context.Context, fn func(*Repositories) error) error {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		if err := fn(newRepositories(tx)); err != nil {
			return err
		}
		return tx.Commit()
	}
	return repos
}

func newRepositories(db sqlx.ExtContext) *Repositories {
	return &Repositories{
		Product:         NewProductRepository(db),
		ApprovalRequest: NewApprovalRequestRepository(db),
		ProductChange:   NewProductChangeRepository(db),
		Favorite:        NewFavoriteRepository(db),
		Lineage:         NewLineageRepository(db),
		Dependency:      NewDependencyRepository(db),
	}
}
