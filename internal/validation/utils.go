// Package validation binds request data and validates it.
//
// Rules live in `validate` struct tags on the request types and are
// checked with go-playground/validator. Failures become 400 errors whose
// message is the one the request type chooses for clients; the per-field
// detail is kept on the error for logging.
package validation

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/Emma-Lee-123/Mylist-Functions/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/labstack/echo/v4"
)

const (
	msgEmptyBody      = "Request body is empty."
	msgDefaultInvalid = "Validation failed"
)

// Validatable is implemented by request payload types that know how to
// validate themselves, usually by calling Struct on themselves.
type Validatable interface {
	Validate() error
}

// BodyPayload is implemented by requests whose data is carried in the body.
// Such requests are rejected up front when the body is empty.
type BodyPayload interface {
	RequiresBody() bool
}

// Messenger lets a request choose the message clients see when binding or
// validation fails.
type Messenger interface {
	ValidationMessage() string
}

// CustomValidationError represents a single validation issue that cannot
// be expressed with a tag.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(fieldName)
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(fmt.Sprintf("register notblank validation: %v", err))
	}
	return v
}

// Struct validates s against its `validate` tags.
func Struct(s interface{}) error {
	return validate.Struct(s)
}

// BindAndValidate binds path, query and body data into payload and
// validates it. payload must be a pointer.
//
// Every failure is a 400 *errs.HTTPError: an empty body when one is
// required, a body or parameter that cannot be decoded, or a rule that
// does not hold.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if bp, ok := payload.(BodyPayload); ok && bp.RequiresBody() {
		if err := bindBody(c, payload); err != nil {
			return err
		}
	} else if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError(messageFor(payload), true, nil, nil)
	}

	if err := payload.Validate(); err != nil {
		return errs.NewBadRequestError(messageFor(payload), true, nil, extractValidationError(err))
	}

	return nil
}

// bindBody decodes the body as JSON whatever the Content-Type header says.
// A body with no JSON value in it, chunked or not, counts as empty.
func bindBody(c echo.Context, payload Validatable) error {
	if err := (&echo.DefaultBinder{}).BindPathParams(c, payload); err != nil {
		return errs.NewBadRequestError(messageFor(payload), true, nil, nil)
	}

	err := c.Echo().JSONSerializer.Deserialize(c, payload)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return errs.NewBadRequestError(msgEmptyBody, true, nil, nil)
	default:
		return errs.NewBadRequestError(messageFor(payload), true, nil,
			[]errs.FieldError{{Field: "body", Error: "must be a JSON object"}})
	}
}

func messageFor(payload Validatable) string {
	if m, ok := payload.(Messenger); ok {
		return m.ValidationMessage()
	}
	return msgDefaultInvalid
}

// fieldName reports fields by the name the client used: the json, param or
// query tag, in that order.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "param", "query"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// extractValidationError flattens validator or custom errors into
// field-level detail.
func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	switch e := err.(type) {
	case CustomValidationErrors:
		for _, ce := range e {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return fieldErrors

	case validator.ValidationErrors:
		for _, fe := range e {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: fe.Field(),
				Error: describe(fe),
			})
		}
		return fieldErrors
	}

	return []errs.FieldError{{Field: "request", Error: err.Error()}}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "min":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "email":
		return "must be a valid email address"
	}

	if fe.Param() != "" {
		return fmt.Sprintf("%s:%s", fe.Tag(), fe.Param())
	}
	return fe.Tag()
}
