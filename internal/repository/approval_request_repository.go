package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"data-catalog/internal/domain"
)

type ApprovalRequestRepository interface {
	Create(ctx context.Context, req *domain.ApprovalRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ApprovalRequest, error)
	List(ctx context.Context, status *domain.ApprovalStatus) ([]domain.ApprovalRequest, error)
	// SetStatus moves a request from status `from` to `to`. It returns nil when
	// the request does not exist or is no longer in `from`.
	SetStatus(ctx context.Context, id int64, from, to domain.ApprovalStatus, approvedBy, rejectionReason *string) (*domain.ApprovalRequest, error)
}

type approvalRequestRepository struct {
	db sqlx.ExtContext
}

func NewApprovalRequestRepository(db sqlx.ExtContext) ApprovalRequestRepository {
	return &approvalRequestRepository{db: db}
}

func (r *approvalRequestRepository) Create(ctx context.Context, req *domain.ApprovalRequest) error {
	query := `
		INSERT INTO approval_requests (product_id, request_type, requested_by, status,
			proposed_changes, current_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, requested_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ProductID, req.RequestType, req.RequestedBy, req.Status,
		req.ProposedChanges, req.CurrentData,
	).Scan(&req.ID, &req.RequestedAt)
}

func (r *approvalRequestRepository) GetByID(ctx context.Context, id int64) (*domain.ApprovalRequest, error) {
	var req domain.ApprovalRequest
	query := `SELECT * FROM approval_requests WHERE id = $1`

	err := sqlx.GetContext(ctx, r.db, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *approvalRequestRepository) List(ctx context.Context, status *domain.ApprovalStatus) ([]domain.ApprovalRequest, error) {
	requests := []domain.ApprovalRequest{}

	var err error
	if status != nil {
		query := `SELECT * FROM approval_requests WHERE status = $1 ORDER BY requested_at DESC, id DESC`
		err = sqlx.SelectContext(ctx, r.db, &requests, query, *status)
	} else {
		query := `SELECT * FROM approval_requests ORDER BY requested_at DESC, id DESC`
		err = sqlx.SelectContext(ctx, r.db, &requests, query)
	}
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *approvalRequestRepository) SetStatus(ctx context.Context, id int64, from, to domain.ApprovalStatus, approvedBy, rejectionReason *string) (*domain.ApprovalRequest, error) {
	var req domain.ApprovalRequest
	query := `
		UPDATE approval_requests
		SET status = $3, approved_by = $4, rejection_reason = $5,
			approved_at = CASE WHEN $3 = 'pending' THEN NULL ELSE NOW() END
		WHERE id = $1 AND status = $2
		RETURNING *`

	err := sqlx.GetContext(ctx, r.db, &req, query, id, from, to, approvedBy, rejectionReason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}
