// Package validation checks request structs with go-playground/validator and
// reports failures as problems.FieldValidationFailed.
//
// Each validated field names the message code reported on failure with a
// `code` struct tag:
//
//	BasePrice *float64 `json:"basePrice" validate:"required,gt=0" code:"BRE-C2-0001"`
//
// A field without a code tag reports the failed rule name as its code, which the
// dispatcher will not resolve and turns into an internal fault.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/go-playground/validator/v10"
)

// CodeTag is the struct tag holding a field's message code.
const CodeTag = "code"

// Validator validates structs and collects every failing field. Safe for concurrent use.
type Validator struct {
	validate *validator.Validate
}

// New returns a Validator that names fields after their json tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	return &Validator{validate: v}
}

// Struct validates s. It returns nil, a problems.FieldValidationFailed listing
// the failing fields in declaration order, or the validator's own error when s
// is not a struct.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	typ := indirectType(reflect.TypeOf(s))
	fields := make([]problems.FieldViolation, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fields = append(fields, problems.FieldViolation{
			Field: fe.Field(),
			Code:  fieldCode(typ, fe.StructField(), fe.Tag()),
		})
	}
	return problems.FieldValidationFailed{Fields: fields}
}

func fieldCode(typ reflect.Type, structField, rule string) string {
	if typ.Kind() == reflect.Struct {
		if f, ok := typ.FieldByName(structField); ok {
			if code := f.Tag.Get(CodeTag); code != "" {
				return code
			}
		}
	}
	return rule
}

// codeForJSONField finds the code of the field serialized as name.
func codeForJSONField(typ reflect.Type, name string) (string, bool) {
	typ = indirectType(typ)
	if typ.Kind() != reflect.Struct {
		return "", false
	}
	for i := range typ.NumField() {
		f := typ.Field(i)
		if jsonName(f) != name {
			continue
		}
		code := f.Tag.Get(CodeTag)
		return code, code != ""
	}
	return "", false
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func indirectType(typ reflect.Type) reflect.Type {
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}
