package memory

import (
	"context"
	"sort"

	"data-catalog/internal/domain"
)

type approvalRequestRepository struct {
	s *session
}

func cloneRequest(r domain.ApprovalRequest) domain.ApprovalRequest {
	out := r
	if r.ProposedChanges != nil {
		out.ProposedChanges = append(domain.JSON(nil), r.ProposedChanges...)
	}
	if r.CurrentData != nil {
		out.CurrentData = append(domain.JSON(nil), r.CurrentData...)
	}
	return out
}

func (r *approvalRequestRepository) Create(_ context.Context, req *domain.ApprovalRequest) error {
	return r.s.do(func(d *dataset) error {
		d.seq.request++
		req.ID = d.seq.request
		req.RequestedAt = r.s.now()
		d.requests[req.ID] = cloneRequest(*req)
		return nil
	})
}

func (r *approvalRequestRepository) GetByID(_ context.Context, id int64) (*domain.ApprovalRequest, error) {
	var out *domain.ApprovalRequest
	err := r.s.do(func(d *dataset) error {
		if req, ok := d.requests[id]; ok {
			c := cloneRequest(req)
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *approvalRequestRepository) List(_ context.Context, status *domain.ApprovalStatus) ([]domain.ApprovalRequest, error) {
	out := []domain.ApprovalRequest{}
	err := r.s.do(func(d *dataset) error {
		for _, req := range d.requests {
			if status == nil || req.Status == *status {
				out = append(out, cloneRequest(req))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].RequestedAt.Equal(out[j].RequestedAt) {
			return out[i].RequestedAt.After(out[j].RequestedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, err
}

func (r *approvalRequestRepository) SetStatus(_ context.Context, id int64, from, to domain.ApprovalStatus, approvedBy, rejectionReason *string) (*domain.ApprovalRequest, error) {
	var out *domain.ApprovalRequest
	err := r.s.do(func(d *dataset) error {
		req, ok := d.requests[id]
		if !ok || req.Status != from {
			return nil
		}
		req.Status = to
		req.ApprovedBy = approvedBy
		req.RejectionReason = rejectionReason
		req.ApprovedAt = nil
		if to != domain.ApprovalPending {
			now := r.s.now()
			req.ApprovedAt = &now
		}
		d.requests[id] = req
		c := cloneRequest(req)
		out = &c
		return nil
	})
	return out, err
}
