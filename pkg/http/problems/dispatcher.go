package problems

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Sokol111/ecommerce-sales/pkg/messages"
	"github.com/ettle/strcase"
	"github.com/samber/lo"
)

const (
	validationErrorCode = "validation-error"
	validationDetail    = "Validation failed"

	defaultAuthenticationDetail = "Full authentication is required to access this resource"
	defaultAccessDeniedDetail   = "Access Denied"
	defaultFaultDetail          = "Unexpected error"
	defaultFaultCategory        = "InternalError"
)

// Dispatcher turns a Failure into exactly one Document. It keeps no per-request
// state and is safe for concurrent use.
type Dispatcher struct {
	resolver messages.Resolver
}

// NewDispatcher returns a Dispatcher resolving sub-error messages with resolver.
func NewDispatcher(resolver messages.Resolver) *Dispatcher {
	return &Dispatcher{resolver: resolver}
}

// Dispatch builds the document for f with instance set to the request path.
// A message that cannot be resolved turns the result into a 500 document.
func (d *Dispatcher) Dispatch(f Failure, instance string) *Document {
	doc, err := d.build(f)
	if err != nil {
		doc = unhandled(UnhandledFault{Cause: err})
	}
	return doc.SetInstance(instance)
}

func (d *Dispatcher) build(f Failure) (*Document, error) {
	switch f := f.(type) {
	case AuthenticationRequired:
		return New(http.StatusUnauthorized, lo.CoalesceOrEmpty(f.Message, defaultAuthenticationDetail), ""), nil

	case AccessDenied:
		return New(http.StatusForbidden, lo.CoalesceOrEmpty(f.Message, defaultAccessDeniedDetail), ""), nil

	case FieldValidationFailed:
		doc := New(http.StatusBadRequest, validationDetail, validationErrorCode)
		for _, v := range f.Fields {
			message, err := d.resolve(v.Code)
			if err != nil {
				return nil, err
			}
			doc.AddError(v.Code, message, v.Field)
		}
		return doc, nil

	case BusinessRuleViolated:
		message, err := d.resolve(f.Code)
		if err != nil {
			return nil, err
		}
		return New(http.StatusBadRequest, message, f.Code).AddError(f.Code, message), nil

	case UnhandledFault:
		return unhandled(f), nil

	case ProtocolFault:
		message := lo.CoalesceOrEmpty(f.Message, http.StatusText(f.Status))
		doc := New(f.Status, message, "")
		return doc.AddError(categoryTag(f.Category), message), nil

	default:
		return unhandled(UnhandledFault{Cause: f}), nil
	}
}

func (d *Dispatcher) resolve(code string) (string, error) {
	if d.resolver == nil {
		return "", fmt.Errorf("resolve %q: %w", code, messages.ErrMessageNotFound)
	}
	message, err := d.resolver.Resolve(code)
	if err != nil {
		return "", err
	}
	if message == "" {
		return "", &messages.NotFoundError{Code: code}
	}
	return message, nil
}

func unhandled(f UnhandledFault) *Document {
	detail := defaultFaultDetail
	category := defaultFaultCategory

	if f.Cause != nil {
		if msg := f.Cause.Error(); msg != "" {
			detail = msg
		}
		var c interface{ Category() string }
		if errors.As(f.Cause, &c) {
			category = c.Category()
		}
	}

	return New(http.StatusInternalServerError, detail, "").AddError(categoryTag(category), detail)
}

func categoryTag(category string) string {
	return strcase.ToSNAKE(lo.CoalesceOrEmpty(category, defaultFaultCategory))
}
