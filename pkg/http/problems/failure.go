package problems

import "fmt"

// Failure is the closed set of request failures the Dispatcher can render.
// Every variant is an error so it can travel through gin's error list.
type Failure interface {
	error
	failure()
}

// AuthenticationRequired means credentials were missing or rejected.
type AuthenticationRequired struct {
	Message string
}

// AccessDenied means the authenticated principal lacks a required role.
type AccessDenied struct {
	Message string
}

// FieldViolation is one invalid input field and the code describing why.
type FieldViolation struct {
	Field string
	Code  string
}

// FieldValidationFailed carries every invalid field of a request, in discovery order.
type FieldValidationFailed struct {
	Fields []FieldViolation
}

// BusinessRuleViolated means valid input was rejected by a business rule.
type BusinessRuleViolated struct {
	Code string
}

// UnhandledFault wraps anything else. Cause may implement Category() string to
// choose the sub-error tag.
type UnhandledFault struct {
	Cause error
}

// ProtocolFault is a transport-level rejection: malformed body, unknown route,
// unsupported method, throttling. Category names the condition in PascalCase.
type ProtocolFault struct {
	Status   int
	Category string
	Message  string
}

func (AuthenticationRequired) failure() {}
func (AccessDenied) failure()           {}
func (FieldValidationFailed) failure()  {}
func (BusinessRuleViolated) failure()   {}
func (UnhandledFault) failure()         {}
func (ProtocolFault) failure()          {}

func (f AuthenticationRequired) Error() string {
	return "authentication required: " + f.Message
}

func (f AccessDenied) Error() string {
	return "access denied: " + f.Message
}

func (f FieldValidationFailed) Error() string {
	return fmt.Sprintf("validation failed: %d invalid field(s)", len(f.Fields))
}

func (f BusinessRuleViolated) Error() string {
	return "business rule violated: " + f.Code
}

func (f UnhandledFault) Error() string {
	if f.Cause == nil {
		return "unhandled fault"
	}
	return "unhandled fault: " + f.Cause.Error()
}

func (f UnhandledFault) Unwrap() error {
	return f.Cause
}

func (f ProtocolFault) Error() string {
	return fmt.Sprintf("%s (%d): %s", f.Category, f.Status, f.Message)
}
