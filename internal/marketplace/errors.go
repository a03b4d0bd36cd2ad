package marketplace

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnauthenticated = errors.New("no user signed in")
	ErrForbidden       = errors.New("role not allowed")
	ErrNotFound        = errors.New("not found")
	ErrNotOpen         = errors.New("problem is not open for solutions")
)

// ValidationError maps form fields to translation keys describing what is
// wrong with them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

type fieldErrors map[string]string

func (f fieldErrors) require(field, value, key string) {
	if strings.TrimSpace(value) == "" {
		f[field] = key
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
