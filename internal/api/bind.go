package api

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vasanam/vasanam/internal/api/respond"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := strings.SplitN(fld.Tag.Get("query"), ",", 2)[0]; name != "" && name != "-" {
			return name
		}
		return fld.Name
	})
}

// bindQuery decodes query parameters into dest and validates it.
// Returns true if binding and validation succeeded; on failure a 400 is
// set in the respond context.
func bindQuery(r *http.Request, dest any) bool {
	if err := decodeQuery(r, dest); err != nil {
		respond.Error(r, respond.ErrBadRequest.With("Invalid query parameters"))
		return false
	}

	if err := validate.Struct(dest); err != nil {
		respond.Error(r, respond.ErrBadRequest.With(validationMessage(err)))
		return false
	}
	return true
}

func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "Invalid query parameters"
	}
	e := errs[0]
	switch e.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

func decodeQuery(r *http.Request, dest any) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("dest must be non-nil pointer to struct")
	}
	v := rv.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("dest must be pointer to struct, got pointer to %s", v.Kind())
	}
	t := v.Type()

	query := r.URL.Query()

	for i := range t.NumField() {
		structField := t.Field(i)
		tag := structField.Tag.Get("query")
		if tag == "" || tag == "-" {
			continue
		}

		fieldVal := v.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		name := strings.SplitN(tag, ",", 2)[0]
		value := query.Get(name)
		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s: %w", name, err)
		}
	}

	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	default:
		return fmt.Errorf("unsupported type: %s", field.Kind())
	}
	return nil
}
