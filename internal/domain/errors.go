package domain

import (
	"errors"
	"strings"
)

var (
	ErrProductNotFound         = errors.New("data product not found")
	ErrApprovalRequestNotFound = errors.New("approval request not found")
	ErrRequestAlreadyResolved  = errors.New("approval request already resolved")
	ErrApplyFailed             = errors.New("approved change could not be applied")
	ErrStorageUnavailable      = errors.New("object storage is not configured")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports schema violations per field.
type ValidationError struct {
	Fields []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
