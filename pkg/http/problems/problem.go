package problems

import (
	"net/http"
	"strings"

	"github.com/ettle/strcase"
)

const (
	// BaseURI prefixes every problem type.
	BaseURI = "https://api.example.com/errors/"

	// ContentType is the media type of serialized documents.
	ContentType = "application/problem+json"
)

// Document is an RFC 7807 problem details body with an ordered list of sub-errors.
type Document struct {
	Type     string     `json:"type"`
	Title    string     `json:"title"`
	Status   int        `json:"status"`
	Detail   string     `json:"detail,omitempty"`
	Instance string     `json:"instance,omitempty"`
	Errors   []SubError `json:"errors,omitempty"`
}

// SubError is one structured entry of Document.Errors.
type SubError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// New creates a document for status. The type is BaseURI + code, or BaseURI + the
// kebab-cased reason phrase when code is empty. Statuses that are not known 4xx/5xx
// codes become 500.
func New(status int, detail string, code string) *Document {
	if status < 400 || status > 599 || http.StatusText(status) == "" {
		status = http.StatusInternalServerError
	}
	if code == "" {
		code = StatusName(status)
	}
	return &Document{
		Type:   BaseURI + code,
		Title:  http.StatusText(status),
		Status: status,
		Detail: detail,
	}
}

// StatusName normalizes a status reason phrase into a type suffix, e.g. "internal-server-error".
func StatusName(status int) string {
	return strcase.ToKebab(http.StatusText(status))
}

// AddError appends a sub-error and returns d. field is optional.
func (d *Document) AddError(code, message string, field ...string) *Document {
	e := SubError{Code: code, Message: message}
	if len(field) > 0 {
		e.Field = field[0]
	}
	d.Errors = append(d.Errors, e)
	return d
}

// SetInstance records the request path that failed. Any query string is dropped.
func (d *Document) SetInstance(uri string) *Document {
	path, _, _ := strings.Cut(uri, "?")
	d.Instance = path
	return d
}
