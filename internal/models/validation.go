package models

import "strings"

// FieldError describes a single rejected input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError is returned when an input does not satisfy its schema.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return strings.Join(parts, "; ")
}

// checker accumulates field errors while an input is validated.
type checker struct {
	fields []FieldError
}

func (c *checker) check(ok bool, field, reason string) {
	if !ok {
		c.fields = append(c.fields, FieldError{Field: field, Reason: reason})
	}
}

func (c *checker) err() error {
	if len(c.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: c.fields}
}
