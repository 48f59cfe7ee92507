package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewClassificationError marks a structurally malformed inbound payload.
func NewClassificationError(message string, err error) error {
	return &DomainError{
		Code:       "CLASSIFICATION_FAILED",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

// NewUnknownDomain marks a routing discriminator whose domain has no
// registered flow. The literal discriminator is preserved for logs.
func NewUnknownDomain(discriminator string) error {
	return &DomainError{
		Code:       "UNKNOWN_DOMAIN",
		Message:    fmt.Sprintf("no workflow registered for %q", discriminator),
		HTTPStatus: http.StatusOK,
		Details:    map[string]any{"discriminator": discriminator},
	}
}

// NewUnknownVariant marks an interaction type the classifier recognized as
// well-formed but the router has no handling for.
func NewUnknownVariant(variant string) error {
	return &DomainError{
		Code:       "UNKNOWN_VARIANT",
		Message:    fmt.Sprintf("unhandled interaction variant %q", variant),
		HTTPStatus: http.StatusOK,
		Details:    map[string]any{"variant": variant},
	}
}

// NewNormalizationError marks an unrecognized form-field type. Fatal for the
// whole submission, never recoverable per field.
func NewNormalizationError(blockID, inputID, fieldType string) error {
	return &DomainError{
		Code:       "NORMALIZATION_FAILED",
		Message:    fmt.Sprintf("unsupported field type %q for input %s/%s", fieldType, blockID, inputID),
		HTTPStatus: http.StatusOK,
		Details:    map[string]any{"block_id": blockID, "input_id": inputID, "field_type": fieldType},
	}
}

// NewExternalServiceError wraps a chat or tracker collaborator failure with
// the originating operation name.
func NewExternalServiceError(operation string, err error) error {
	return &DomainError{
		Code:       "EXTERNAL_SERVICE_ERROR",
		Message:    fmt.Sprintf("%s failed", operation),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"operation": operation},
		Err:        err,
	}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// CodeOf extracts the taxonomy code from an error, or INTERNAL_ERROR.
func CodeOf(err error) string {
	de := ToDomainError(err)
	if de == nil {
		return ""
	}
	return de.Code
}
