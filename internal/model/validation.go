package model

import (
	"fmt"
	"strings"
)

// ValidationError is returned when a payload violates a field constraint.
type ValidationError struct {
	Field   string
	Value   any
	Allowed []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("%s must be one of [%s], got %q",
			e.Field, strings.Join(e.Allowed, ", "), fmt.Sprint(e.Value))
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// oneOf accepts v only if it is in the allowed set.
func oneOf(field, v string, allowed []string) error {
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return &ValidationError{Field: field, Value: v, Allowed: allowed}
}

func required[T any](field string, o Optional[T]) error {
	if !o.Present() {
		return &ValidationError{Field: field, Reason: "field required"}
	}
	return nil
}

// notNull rejects an explicit null for a field that cannot hold one. Unset is fine.
func notNull[T any](field string, o Optional[T]) error {
	if o.Set && o.Null {
		return &ValidationError{Field: field, Reason: "may not be null"}
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
