package web

import (
	"context"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the gin context together with the request scoped
// context.Context that middleware enrich (claims, deadlines).
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErrs []FieldError
	queryErrs []FieldError
}

// GetParam reads a path parameter converted to kind. Conversion problems are
// collected and reported by ValidParam; the zero value is returned meanwhile.
func (c *Context) GetParam(kind reflect.Kind, key string) interface{} {
	value := c.Param(key)

	switch kind {
	case reflect.Int:
		i, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrs = append(c.paramErrs, FieldError{Field: key, Error: "must be an integer"})
			return 0
		}
		return i
	case reflect.Int64:
		i, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			c.paramErrs = append(c.paramErrs, FieldError{Field: key, Error: "must be an integer"})
			return int64(0)
		}
		return i
	default:
		if value == "" {
			c.paramErrs = append(c.paramErrs, FieldError{Field: key, Error: "is required"})
		}
		return value
	}
}

// ValidParam reports the problems collected by GetParam.
func (c *Context) ValidParam() error {
	if len(c.paramErrs) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New("invalid path parameters"),
		Status: http.StatusBadRequest,
		Fields: c.paramErrs,
	}
}

// GetQueryFunc reads an optional query parameter. It returns nil when the
// parameter is absent, otherwise a *int, *bool or *string depending on kind.
func (c *Context) GetQueryFunc(kind reflect.Kind, key string) interface{} {
	value, ok := c.GetQuery(key)
	if !ok || value == "" {
		return nil
	}

	switch kind {
	case reflect.Int:
		i, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, FieldError{Field: key, Error: "must be an integer"})
			return nil
		}
		return &i
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, FieldError{Field: key, Error: "must be a boolean"})
			return nil
		}
		return &b
	default:
		return &value
	}
}

// ValidQuery reports the problems collected by GetQueryFunc.
func (c *Context) ValidQuery() error {
	if len(c.queryErrs) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New("invalid query parameters"),
		Status: http.StatusBadRequest,
		Fields: c.queryErrs,
	}
}

// BindFunc decodes the request body (JSON or form, by content type) into
// data and checks that the named struct fields are set. Field names may be
// given separately or comma separated.
func (c *Context) BindFunc(data interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(data); err != nil {
		return NewRequestError(errors.Wrap(err, "decoding request"), http.StatusBadRequest)
	}

	return ValidateRequired(data, requiredFields...)
}

// Respond writes data as JSON with the given status.
func (c *Context) Respond(data interface{}, status int) error {
	if status == http.StatusNoContent {
		c.Status(status)
		return nil
	}

	c.JSON(status, data)
	return nil
}

// RespondError renders err. Errors that are not *Error become a 500.
func (c *Context) RespondError(err error) error {
	var webErr *Error
	if errors.As(err, &webErr) {
		body := gin.H{
			"error":  webErr.Err.Error(),
			"status": false,
		}
		if len(webErr.Fields) > 0 {
			body["fields"] = webErr.Fields
		}

		c.AbortWithStatusJSON(webErr.Status, body)
		return nil
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error":  err.Error(),
		"status": false,
	})
	return nil
}

// ValidateRequired checks that the named fields of the struct s points to
// are not zero. The JSON name of each missing field is reported.
func ValidateRequired(s interface{}, fields ...string) error {
	v := reflect.Indirect(reflect.ValueOf(s))
	if v.Kind() != reflect.Struct {
		return nil
	}

	var missing []FieldError
	for _, group := range fields {
		for _, name := range strings.Split(group, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}

			fv := v.FieldByName(name)
			if !fv.IsValid() || !fv.IsZero() {
				continue
			}

			missing = append(missing, FieldError{Field: jsonName(v.Type(), name), Error: "is required"})
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return &Error{
		Err:    errors.New("missing required fields"),
		Status: http.StatusBadRequest,
		Fields: missing,
	}
}

func jsonName(t reflect.Type, field string) string {
	sf, ok := t.FieldByName(field)
	if !ok {
		return field
	}

	tag := strings.Split(sf.Tag.Get("json"), ",")[0]
	if tag == "" || tag == "-" {
		return field
	}

	return tag
}
