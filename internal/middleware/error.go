package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"data-catalog/internal/domain"
	"data-catalog/internal/pkg/logger"
)

type ErrorResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	TraceID string              `json:"trace_id,omitempty"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
}

// NewErrorHandler renders every error returned by a handler as an ErrorResponse.
// Domain errors are mapped to their HTTP status; anything unknown is a 500.
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"
		errorCode := "INTERNAL_ERROR"
		var fieldErrors []domain.FieldError

		var validationErr *domain.ValidationError
		var fiberErr *fiber.Error

		switch {
		case errors.Is(err, domain.ErrApplyFailed):
			code = fiber.StatusUnprocessableEntity
			errorCode = "APPLY_FAILED"
			message = err.Error()
			if errors.As(err, &validationErr) {
				fieldErrors = validationErr.Fields
			}
		case errors.As(err, &validationErr):
			code = fiber.StatusBadRequest
			errorCode = "VALIDATION_ERROR"
			message = "Validation failed"
			fieldErrors = validationErr.Fields
		case errors.Is(err, domain.ErrProductNotFound), errors.Is(err, domain.ErrApprovalRequestNotFound):
			code = fiber.StatusNotFound
			errorCode = "NOT_FOUND"
			message = err.Error()
		case errors.Is(err, domain.ErrRequestAlreadyResolved):
			code = fiber.StatusConflict
			errorCode = "CONFLICT"
			message = err.Error()
		case errors.Is(err, domain.ErrStorageUnavailable):
			code = fiber.StatusServiceUnavailable
			errorCode = "SERVICE_UNAVAILABLE"
			message = err.Error()
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message

			switch code {
			case fiber.StatusBadRequest:
				errorCode = "BAD_REQUEST"
			case fiber.StatusUnauthorized:
				errorCode = "UNAUTHORIZED"
			case fiber.StatusForbidden:
				errorCode = "FORBIDDEN"
			case fiber.StatusNotFound:
				errorCode = "NOT_FOUND"
			case fiber.StatusConflict:
				errorCode = "CONFLICT"
			case fiber.StatusRequestEntityTooLarge:
				errorCode = "PAYLOAD_TOO_LARGE"
			case fiber.StatusServiceUnavailable:
				errorCode = "SERVICE_UNAVAILABLE"
			}
		}

		traceID := uuid.New().String()[:8]
		if code >= fiber.StatusInternalServerError && log != nil {
			log.Error("request failed",
				"trace_id", traceID,
				"method", c.Method(),
				"path", c.Path(),
				"error", err,
			)
		}

		return c.Status(code).JSON(ErrorResponse{
			Code:    errorCode,
			Message: message,
			TraceID: traceID,
			Errors:  fieldErrors,
		})
	}
}

func NewError(code int, message string) *fiber.Error {
	return fiber.NewError(code, message)
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}

func ServiceUnavailable(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusServiceUnavailable, message)
}
