package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-dat/internal/types"
)

// ContainerTarget represents the dat files searched by a command
type ContainerTarget struct {
	Path      string
	Fallbacks []string
}

// Validate ensures the container target is usable
func (ct *ContainerTarget) Validate() error {
	if ct.Path == "" {
		return errors.New("container path is required")
	}
	for _, p := range ct.Fallbacks {
		if p == "" {
			return errors.New("fallback container path cannot be empty")
		}
	}
	return nil
}

// Paths returns the primary path followed by the fallbacks
func (ct *ContainerTarget) Paths() []string {
	return append([]string{ct.Path}, ct.Fallbacks...)
}

// String returns a string representation of the container target
func (ct *ContainerTarget) String() string {
	if len(ct.Fallbacks) == 0 {
		return ct.Path
	}
	return fmt.Sprintf("%s (fallbacks: %s)", ct.Path, strings.Join(ct.Fallbacks, ", "))
}

// ParseResourceID parses a hexadecimal resource id, with or without 0x prefix
func ParseResourceID(s string) (uint32, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if trimmed == "" {
		return 0, fmt.Errorf("empty resource id")
	}

	id, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid resource id %q: %w", s, err)
	}
	return uint32(id), nil
}

// FormatResourceID renders id the way ParseResourceID accepts it
func FormatResourceID(id uint32) string {
	return fmt.Sprintf("0x%08X", id)
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeContainerAccess  = "CONTAINER_ACCESS"
	ErrCodeResourceNotFound = "RESOURCE_NOT_FOUND"
	ErrCodeCorruptContainer = "CORRUPT_CONTAINER"
	ErrCodeOutput           = "OUTPUT"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ClassifyError wraps a core error with the matching application error code.
// Errors that already carry a code are returned unchanged.
func ClassifyError(message string, err error) error {
	if err == nil {
		return nil
	}

	var common *CommonError
	if errors.As(err, &common) {
		return err
	}

	switch {
	case errors.Is(err, types.ErrNotFound):
		return NewError(ErrCodeResourceNotFound, message, err)
	case errors.Is(err, types.ErrFormat):
		return NewError(ErrCodeCorruptContainer, message, err)
	default:
		return NewError(ErrCodeContainerAccess, message, err)
	}
}
