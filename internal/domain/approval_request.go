package domain

import (
	"encoding/json"
	"time"
)

type RequestType string

const (
	RequestCreate RequestType = "create"
	RequestUpdate RequestType = "update"
	RequestDelete RequestType = "delete"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is allowed out of s.
func (s ApprovalStatus) IsTerminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

type ApprovalRequest struct {
	ID              int64          `json:"id" db:"id"`
	ProductID       *int64         `json:"productId" db:"product_id"`
	RequestType     RequestType    `json:"requestType" db:"request_type"`
	RequestedBy     string         `json:"requestedBy" db:"requested_by"`
	RequestedAt     time.Time      `json:"requestedAt" db:"requested_at"`
	Status          ApprovalStatus `json:"status" db:"status"`
	ApprovedBy      *string        `json:"approvedBy" db:"approved_by"`
	ApprovedAt      *time.Time     `json:"approvedAt" db:"approved_at"`
	RejectionReason *string        `json:"rejectionReason" db:"rejection_reason"`
	ProposedChanges JSON           `json:"proposedChanges" db:"proposed_changes"`
	CurrentData     JSON           `json:"currentData" db:"current_data"`
}

type CreateApprovalRequestInput struct {
	ProductID       *int64          `json:"productId,omitempty"`
	RequestType     RequestType     `json:"requestType" validate:"required,oneof=create update delete"`
	RequestedBy     string          `json:"requestedBy" validate:"max=200"`
	ProposedChanges json.RawMessage `json:"proposedChanges"`
	CurrentData     JSON            `json:"currentData,omitempty"`
}

// ReviewApprovalRequestInput carries a reviewer decision. Status must be approved or rejected.
type ReviewApprovalRequestInput struct {
	Status          ApprovalStatus `json:"status"`
	ApprovedBy      string         `json:"approvedBy"`
	RejectionReason string         `json:"rejectionReason"`
}
