package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation marks malformed or missing artefact data. Surfaced through
	// gate verdicts, never as a pipeline-level failure.
	ErrValidation = errors.New("validation error")
	// ErrDependency marks a failed or timed-out external lookup. Retryable.
	ErrDependency = errors.New("dependency error")
	// ErrConflict marks a gate run already in flight for the production. Retryable.
	ErrConflict = errors.New("run in progress")
	// ErrIllegalTransition marks a lifecycle transition the state machine forbids.
	// Fatal: the caller must correct the requested transition.
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrNotFound marks a missing production or audit subject.
	ErrNotFound = errors.New("not found")
	// ErrConfiguration marks unusable configuration.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrDependency
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Retryable reports whether the caller may safely re-trigger the failed
// operation. Conflicts and dependency outages are transient; validation and
// transition rejections are not.
func Retryable(err error) bool {
	switch {
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDependency):
		return true
	default:
		return false
	}
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
