package validation

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"

	"github.com/Sokol111/ecommerce-sales/pkg/http/problems"
	"github.com/gin-gonic/gin"
)

const (
	notReadableCategory = "MessageNotReadable"
	missingBodyMessage  = "Required request body is missing"
	malformedMessage    = "Malformed JSON request body"
)

// BindJSON decodes the request body into dst and validates it. Any error it
// returns is a problems.Failure:
//   - empty or malformed body: ProtocolFault 400
//   - wrong JSON type for a field carrying a code tag: FieldValidationFailed
//   - failed validation rules: FieldValidationFailed
func (v *Validator) BindJSON(c *gin.Context, dst any) problems.Failure {
	if err := c.ShouldBindJSON(dst); err != nil {
		return decodeFailure(err, dst)
	}

	if err := v.Struct(dst); err != nil {
		var f problems.Failure
		if errors.As(err, &f) {
			return f
		}
		return problems.UnhandledFault{Cause: err}
	}
	return nil
}

func decodeFailure(err error, dst any) problems.Failure {
	if errors.Is(err, io.EOF) {
		return problems.ProtocolFault{Status: http.StatusBadRequest, Category: notReadableCategory, Message: missingBodyMessage}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if code, ok := codeForJSONField(reflect.TypeOf(dst), typeErr.Field); ok {
			return problems.FieldValidationFailed{Fields: []problems.FieldViolation{{Field: typeErr.Field, Code: code}}}
		}
	}

	return problems.ProtocolFault{Status: http.StatusBadRequest, Category: notReadableCategory, Message: malformedMessage}
}
