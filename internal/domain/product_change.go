package domain

import "time"

type ChangeType string

const (
	ChangeCreated       ChangeType = "created"
	ChangeUpdated       ChangeType = "updated"
	ChangeStatusChanged ChangeType = "status_changed"
)

// ProductChange is an append-only change log entry for a product.
type ProductChange struct {
	ID          int64      `json:"id" db:"id"`
	ProductID   int64      `json:"productId" db:"product_id"`
	ChangedBy   string     `json:"changedBy" db:"changed_by"`
	ChangeType  ChangeType `json:"changeType" db:"change_type"`
	FieldName   *string    `json:"fieldName" db:"field_name"`
	OldValue    *string    `json:"oldValue" db:"old_value"`
	NewValue    *string    `json:"newValue" db:"new_value"`
	Description *string    `json:"description" db:"description"`
	ChangedAt   time.Time  `json:"changedAt" db:"changed_at"`
}

type ProductChangeWithProduct struct {
	ProductChange
	ProductName string `json:"productName" db:"product_name"`
}

type RecordChangeInput struct {
	ProductID   int64
	ChangedBy   string
	ChangeType  ChangeType
	FieldName   *string
	OldValue    *string
	NewValue    *string
	Description string
}

const DefaultRecentChangesLimit = 50
