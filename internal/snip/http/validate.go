package http

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/aussiebroadwan/snip/internal/snip/service"
	"github.com/aussiebroadwan/snip/pkg/errx"
	"github.com/aussiebroadwan/snip/pkg/httpx"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})

	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return service.IsSlugCharset(fl.Field().String())
	})

	return v
}

// decodeBody reads and validates a JSON request body. Failures are
// Validation errors.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		return errx.Validation("%s", err.Error())
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errx.Validation("invalid request")
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return errx.Validation("%s is required", fe.Field())
	case "max":
		return errx.Validation("%s must be at most %s characters", fe.Field(), fe.Param())
	case "slug":
		return errx.Validation("%s may only contain letters, digits, '-' and '_'", fe.Field())
	case "gtefield":
		return errx.Validation("%s must not be before %s", fe.Field(), strings.ToLower(fe.Param()))
	default:
		return errx.Validation("%s is invalid", fe.Field())
	}
}
