package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common service errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidState       = errors.New("invalid status transition")
	ErrDuplicate          = errors.New("duplicate record")
)

// ValidationError reports the required fields missing from a create
// request. Handlers surface it verbatim with HTTP 400.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// requireFields collects the names of empty required fields and returns
// a ValidationError when any are missing.
func requireFields(fields map[string]string) error {
	var missing []string
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		// Stable field order in error messages
		sort.Strings(missing)
		return &ValidationError{Fields: missing}
	}
	return nil
}
