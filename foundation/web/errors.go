package web

import "strings"

// FieldError is a problem with a single request field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error is an error that knows which HTTP status it should be rendered with.
type Error struct {
	Err    error
	Status int
	Fields []FieldError
}

// NewRequestError wraps err with the HTTP status the client should see.
func NewRequestError(err error, status int) error {
	return &Error{Err: err, Status: status}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "unknown error"
	}

	if len(e.Fields) == 0 {
		return e.Err.Error()
	}

	fields := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		fields = append(fields, f.Field+": "+f.Error)
	}

	return e.Err.Error() + " (" + strings.Join(fields, ", ") + ")"
}

func (e *Error) Unwrap() error {
	return e.Err
}
