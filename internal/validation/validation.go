// Package validation turns gin binding failures into the 422 envelope every route shares.
//
// A route decodes its body with BindJSON (or checks multipart parts with Missing) and gets back
// either the value or an *Error; handlers never run their body on failure.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError describes one offending field. Loc is the path to it, starting at "body" (or "path").
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Error is the body of a 422 response.
type Error struct {
	Detail []FieldError `json:"detail"`
}

func (e *Error) Error() string {
	if e == nil || len(e.Detail) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Detail))
	for _, d := range e.Detail {
		parts = append(parts, strings.Join(d.Loc, ".")+": "+d.Msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error and returns the receiver so calls can be chained.
func (e *Error) Add(msg, typ string, loc ...string) *Error {
	e.Detail = append(e.Detail, FieldError{Loc: loc, Msg: msg, Type: typ})
	return e
}

// Abort writes the 422 response and stops the handler chain.
func (e *Error) Abort(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, e)
}

// Missing reports a required body field that was not supplied, e.g. a multipart file part.
func Missing(field string) *Error {
	return (&Error{}).Add("field required", "value_error.missing", "body", field)
}

// defaulter is implemented by request types whose optional fields have non-zero defaults.
type defaulter interface {
	ApplyDefaults()
}

var registerOnce sync.Once

// Register makes gin's validator report json field names instead of Go field names.
// BindJSON calls it; it is exported so startup can install it eagerly.
func Register() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
	})
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			continue
		}
		return name
	}
	return fld.Name
}

// BindJSON decodes and validates the request body into a T. Optional fields receive their
// declared defaults on success.
func BindJSON[T any](c *gin.Context) (T, *Error) {
	Register()

	var payload T
	if c.Request == nil || c.Request.Body == nil {
		return payload, (&Error{}).Add("field required", "value_error.missing", "body")
	}

	dec := json.NewDecoder(c.Request.Body)
	if err := dec.Decode(&payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return payload, FromBindingError(err)
		}
		// The decoder keeps going after a type mismatch, so the rest of the body is still checked.
		out := FromBindingError(err)
		if verr := binding.Validator.ValidateStruct(&payload); verr != nil {
			out.merge(FromBindingError(verr))
		}
		return payload, out
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return payload, (&Error{}).Add("unexpected data after JSON body", "value_error.jsondecode", "body")
	}

	if err := binding.Validator.ValidateStruct(&payload); err != nil {
		return payload, FromBindingError(err)
	}
	if d, ok := any(&payload).(defaulter); ok {
		d.ApplyDefaults()
	}
	return payload, nil
}

// merge appends the entries of other whose location is not already reported.
func (e *Error) merge(other *Error) {
	seen := make(map[string]bool, len(e.Detail))
	for _, d := range e.Detail {
		seen[strings.Join(d.Loc, ".")] = true
	}
	for _, d := range other.Detail {
		if !seen[strings.Join(d.Loc, ".")] {
			e.Detail = append(e.Detail, d)
		}
	}
}

// BindMultipart decodes and validates a multipart/form-data body into a T. Fields use `form` tags;
// file parts bind to *multipart.FileHeader.
func BindMultipart[T any](c *gin.Context) (T, *Error) {
	Register()

	var payload T
	if err := c.ShouldBindWith(&payload, binding.FormMultipart); err != nil {
		return payload, FromBindingError(err)
	}
	if d, ok := any(&payload).(defaulter); ok {
		d.ApplyDefaults()
	}
	return payload, nil
}

// FromBindingError converts a decode or validator error into field errors.
func FromBindingError(err error) *Error {
	var (
		fieldErrs validator.ValidationErrors
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
	)
	out := &Error{}

	switch {
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			out.Detail = append(out.Detail, fromFieldError(fe))
		}
	case errors.As(err, &typeErr):
		kind := kindName(typeErr.Type)
		loc := append([]string{"body"}, splitPath(typeErr.Field)...)
		out.Add("value is not a valid "+kind, "type_error."+kind, loc...)
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
		out.Add("expected a multipart/form-data body", "value_error.multipart", "body")
	case errors.Is(err, io.EOF):
		out.Add("field required", "value_error.missing", "body")
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		out.Add("invalid JSON body", "value_error.jsondecode", "body")
	default:
		out.Add(err.Error(), "value_error", "body")
	}
	return out
}

func fromFieldError(fe validator.FieldError) FieldError {
	loc := []string{"body"}
	// Namespace is "<Struct>.<field>[.<field>...]"; the struct name is not part of the body path.
	if parts := strings.Split(fe.Namespace(), "."); len(parts) > 1 {
		loc = append(loc, parts[1:]...)
	} else {
		loc = append(loc, fe.Field())
	}

	msg, typ := describe(fe)
	return FieldError{Loc: loc, Msg: msg, Type: typ}
}

func describe(fe validator.FieldError) (string, string) {
	switch fe.Tag() {
	case "required":
		return "field required", "value_error.missing"
	case "required_without_all":
		return "at least one of " + strings.ToLower(strings.Join(append([]string{fe.StructField()}, strings.Fields(fe.Param())...), ", ")) + " is required",
			"value_error.missing"
	case "datetime":
		return "invalid date format, expected YYYY-MM-DD", "value_error.date"
	case "gt":
		return "ensure this value is greater than " + fe.Param(), "value_error.number.not_gt"
	case "gte", "min":
		return "ensure this value is greater than or equal to " + fe.Param(), "value_error.number.not_ge"
	case "lt":
		return "ensure this value is less than " + fe.Param(), "value_error.number.not_lt"
	case "lte", "max":
		return "ensure this value is less than or equal to " + fe.Param(), "value_error.number.not_le"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag()), "value_error." + fe.Tag()
	}
}

func splitPath(field string) []string {
	if field == "" {
		return nil
	}
	return strings.Split(field, ".")
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.String:
		return "str"
	case reflect.Bool:
		return "bool"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "dict"
	default:
		return t.Kind().String()
	}
}
