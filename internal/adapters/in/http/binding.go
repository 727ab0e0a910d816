package http

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"montarota/internal/core/domain/model/kernel"
	"montarota/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// StrictJSONBinder decodes request bodies and rejects unknown fields.
// Path and query parameters are bound explicitly by the handlers.
type StrictJSONBinder struct{}

func (StrictJSONBinder) Bind(i any, c echo.Context) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(i); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewValueIsRequiredError("body")
		}
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	if dec.More() {
		return errs.NewValueIsInvalidErrorWithCause("body", errors.New("unexpected data after JSON value"))
	}
	return nil
}

// RequestValidator runs go-playground struct tags. Field names in errors use
// the json tag.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}

	errList := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			errList = append(errList, errs.NewValueIsRequiredError(fe.Field()))
			continue
		}
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(fe.Field(), fe))
	}
	return errors.Join(errList...)
}

func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return err
	}
	return c.Validate(dst)
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	var raw uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(raw[:])
}

func queryID(c echo.Context, name string) (*kernel.UUID, error) {
	var raw *uuid.UUID
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &raw); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return optionalID(raw)
}

func queryString(c echo.Context, name string) (string, error) {
	var raw *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &raw); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if raw == nil {
		return "", nil
	}
	return strings.TrimSpace(*raw), nil
}

func queryInt(c echo.Context, name string) (int, error) {
	var raw *int
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &raw); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if raw == nil {
		return 0, nil
	}
	return *raw, nil
}

func queryDate(c echo.Context, name string) (*openapi_types.Date, error) {
	var raw *openapi_types.Date
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &raw); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return raw, nil
}

func optionalID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent value
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
