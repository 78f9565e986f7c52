package approval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"data-catalog/internal/domain"
	"data-catalog/internal/pkg/logger"
	"data-catalog/internal/repository"
	"data-catalog/internal/service/changelog"
	"data-catalog/internal/service/notification"
	"data-catalog/internal/service/product"
)

var tracer = otel.Tracer("data-catalog/service/approval")

type Service interface {
	Submit(ctx context.Context, actor string, input domain.CreateApprovalRequestInput) (*domain.ApprovalRequest, error)
	Get(ctx context.Context, id int64) (*domain.ApprovalRequest, error)
	List(ctx context.Context, status *domain.ApprovalStatus) ([]domain.ApprovalRequest, error)
	ListPending(ctx context.Context) ([]domain.ApprovalRequest, error)
	// Review resolves a pending request. Approving applies the proposed change in
	// the same transaction as the status transition.
	Review(ctx context.Context, actor string, id int64, input domain.ReviewApprovalRequestInput) (*domain.ApprovalRequest, error)
	SetNotificationService(notifSvc notification.Service)
}

type service struct {
	repos    *repository.Repositories
	products product.Service
	notifSvc notification.Service
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

func (s *service) SetNotificationService(notifSvc notification.Service) {
	s.notifSvc = notifSvc
}

func (s *service) Submit(ctx context.Context, actor string, input domain.CreateApprovalRequestInput) (*domain.ApprovalRequest, error) {
	ctx, span := tracer.Start(ctx, "approval.Submit")
	defer span.End()

	if err := domain.Validate(input); err != nil {
		return nil, err
	}

	proposed, err := validateProposedChanges(input)
	if err != nil {
		return nil, err
	}

	var current *domain.DataProduct
	if input.ProductID != nil {
		current, err = s.repos.Product.GetByID(ctx, *input.ProductID)
		if err != nil {
			return nil, err
		}
		if current == nil {
			return nil, domain.NewValidationError("productId", "references an unknown data product")
		}
	}

	req := &domain.ApprovalRequest{
		ProductID:       input.ProductID,
		RequestType:     input.RequestType,
		RequestedBy:     firstNonBlank(input.RequestedBy, actor, changelog.SystemActor),
		Status:          domain.ApprovalPending,
		ProposedChanges: proposed,
		CurrentData:     input.CurrentData,
	}
	if len(req.CurrentData) == 0 && current != nil {
		snapshot, err := json.Marshal(current)
		if err != nil {
			return nil, err
		}
		req.CurrentData = snapshot
	}

	if err := s.repos.ApprovalRequest.Create(ctx, req); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("approval.id", req.ID), attribute.String("approval.type", string(req.RequestType)))

	s.notifyReviewers(req)
	return req, nil
}

// validateProposedChanges checks the payload against the product schema for the
// request type and returns the payload to store.
func validateProposedChanges(input domain.CreateApprovalRequestInput) (domain.JSON, error) {
	raw := strings.TrimSpace(string(input.ProposedChanges))

	switch input.RequestType {
	case domain.RequestCreate:
		if input.ProductID != nil {
			return nil, domain.NewValidationError("productId", "must be omitted for create requests")
		}
		if raw == "" || raw == "null" {
			return nil, domain.NewValidationError("proposedChanges", "is required")
		}
		var create domain.CreateProductInput
		if err := json.Unmarshal([]byte(raw), &create); err != nil {
			return nil, domain.NewValidationError("proposedChanges", "must be a valid product payload")
		}
		if err := domain.Validate(create); err != nil {
			return nil, nestValidation("proposedChanges", err)
		}

	case domain.RequestUpdate:
		if input.ProductID == nil {
			return nil, domain.NewValidationError("productId", "is required for update requests")
		}
		if raw == "" || raw == "null" {
			return nil, domain.NewValidationError("proposedChanges", "is required")
		}
		var update domain.UpdateProductInput
		if err := json.Unmarshal([]byte(raw), &update); err != nil {
			return nil, domain.NewValidationError("proposedChanges", "must be a valid product payload")
		}
		if err := domain.Validate(update); err != nil {
			return nil, nestValidation("proposedChanges", err)
		}

	case domain.RequestDelete:
		if input.ProductID == nil {
			return nil, domain.NewValidationError("productId", "is required for delete requests")
		}
		if raw == "" || raw == "null" {
			return domain.JSON("{}"), nil
		}
		if !json.Valid([]byte(raw)) {
			return nil, domain.NewValidationError("proposedChanges", "must be valid JSON")
		}
	}

	return domain.JSON(raw), nil
}

func nestValidation(prefix string, err error) error {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	nested := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(verr.Fields))}
	for _, f := range verr.Fields {
		nested.Fields = append(nested.Fields, domain.FieldError{Field: prefix + "." + f.Field, Message: f.Message})
	}
	return nested
}

func (s *service) Get(ctx context.Context, id int64) (*domain.ApprovalRequest, error) {
	req, err := s.repos.ApprovalRequest.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrApprovalRequestNotFound
	}
	return req, nil
}

func (s *service) List(ctx context.Context, status *domain.ApprovalStatus) ([]domain.ApprovalRequest, error) {
	return s.repos.ApprovalRequest.List(ctx, status)
}

func (s *service) ListPending(ctx context.Context) ([]domain.ApprovalRequest, error) {
	pending := domain.ApprovalPending
	return s.repos.ApprovalRequest.List(ctx, &pending)
}

func (s *service) Review(ctx context.Context, actor string, id int64, input domain.ReviewApprovalRequestInput) (*domain.ApprovalRequest, error) {
	ctx, span := tracer.Start(ctx, "approval.Review")
	defer span.End()
	span.SetAttributes(attribute.Int64("approval.id", id), attribute.String("approval.decision", string(input.Status)))

	if !input.Status.IsTerminal() {
		return nil, domain.NewValidationError("status", "must be one of: approved, rejected")
	}

	var reason *string
	if input.Status == domain.ApprovalRejected {
		if strings.TrimSpace(input.RejectionReason) == "" {
			return nil, domain.NewValidationError("rejectionReason", "is required when rejecting a request")
		}
		reason = &input.RejectionReason
	}
	reviewer := firstNonBlank(input.ApprovedBy, actor, changelog.SystemActor)

	var resolved *domain.ApprovalRequest
	err := s.repos.WithTx(ctx, func(tx *repository.Repositories) error {
		req, err := tx.ApprovalRequest.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrApprovalRequestNotFound
		}
		if req.Status != domain.ApprovalPending {
			return domain.ErrRequestAlreadyResolved
		}

		resolved, err = tx.ApprovalRequest.SetStatus(ctx, id, domain.ApprovalPending, input.Status, &reviewer, reason)
		if err != nil {
			return err
		}
		if resolved == nil {
			return domain.ErrRequestAlreadyResolved
		}

		if input.Status == domain.ApprovalApproved {
			if err := s.apply(ctx, tx, req); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrApplyFailed, err)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrApplyFailed) {
			s.log.Warn("approved change could not be applied", "approval_id", id, "error", err)
		}
		return nil, err
	}

	if input.Status == domain.ApprovalApproved {
		s.products.InvalidateStats(ctx)
	}
	s.notifyRequester(resolved)
	return resolved, nil
}

// apply materializes an approved request through the product service so the
// change log is written the same way as for direct edits.
func (s *service) apply(ctx context.Context, tx *repository.Repositories, req *domain.ApprovalRequest) error {
	products := s.products.Bind(tx)

	switch req.RequestType {
	case domain.RequestCreate:
		var input domain.CreateProductInput
		if err := json.Unmarshal(req.ProposedChanges, &input); err != nil {
			return err
		}
		_, err := products.Create(ctx, req.RequestedBy, input)
		return err

	case domain.RequestUpdate:
		if req.ProductID == nil {
			return domain.ErrProductNotFound
		}
		var input domain.UpdateProductInput
		if err := json.Unmarshal(req.ProposedChanges, &input); err != nil {
			return err
		}
		_, err := products.Update(ctx, req.RequestedBy, *req.ProductID, input)
		return err

	case domain.RequestDelete:
		if req.ProductID == nil {
			return domain.ErrProductNotFound
		}
		deleted, err := products.Delete(ctx, *req.ProductID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrProductNotFound
		}
		return nil
	}

	return fmt.Errorf("unknown request type %q", req.RequestType)
}

func (s *service) notifyReviewers(req *domain.ApprovalRequest) {
	if s.notifSvc == nil {
		return
	}
	go func() {
		if err := s.notifSvc.NotifyRequestSubmitted(context.Background(), req); err != nil {
			s.log.Warn("failed to notify reviewers", "approval_id", req.ID, "error", err)
		}
	}()
}

func (s *service) notifyRequester(req *domain.ApprovalRequest) {
	if s.notifSvc == nil {
		return
	}
	go func() {
		if err := s.notifSvc.NotifyRequestReviewed(context.Background(), req); err != nil {
			s.log.Warn("failed to notify requester", "approval_id", req.ID, "error", err)
		}
	}()
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
