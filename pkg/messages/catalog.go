// Package messages resolves stable message codes to human-readable text.
package messages

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMessageNotFound is matched by every error returned for an unregistered code.
var ErrMessageNotFound = errors.New("message not found")

// Resolver maps a message code to its text.
type Resolver interface {
	Resolve(code string) (string, error)
}

// NotFoundError reports a code with no registered text.
type NotFoundError struct {
	Code string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no message registered for code %q", e.Code)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrMessageNotFound
}

// Category names the failure for problem sub-errors.
func (e *NotFoundError) Category() string {
	return "MessageNotFound"
}

// Catalog is an immutable in-memory Resolver. Safe for concurrent use.
type Catalog struct {
	entries map[string]string
}

var _ Resolver = (*Catalog)(nil)

// NewCatalog builds a catalog from entries. Blank codes or texts are rejected.
func NewCatalog(entries map[string]string) (*Catalog, error) {
	c := &Catalog{entries: make(map[string]string, len(entries))}
	for code, text := range entries {
		if strings.TrimSpace(code) == "" {
			return nil, errors.New("message code must not be blank")
		}
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("message for code %q must not be blank", code)
		}
		c.entries[code] = text
	}
	return c, nil
}

// Parse reads a YAML mapping of code to text.
func Parse(data []byte) (*Catalog, error) {
	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse message bundle: %w", err)
	}
	return NewCatalog(entries)
}

// Merge returns a catalog holding c's entries overridden by other's.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	merged := maps.Clone(c.entries)
	maps.Copy(merged, other.entries)
	return &Catalog{entries: merged}
}

// Resolve returns the text for code, or a *NotFoundError.
func (c *Catalog) Resolve(code string) (string, error) {
	text, ok := c.entries[code]
	if !ok {
		return "", &NotFoundError{Code: code}
	}
	return text, nil
}

// Codes returns the registered codes in sorted order.
func (c *Catalog) Codes() []string {
	return slices.Sorted(maps.Keys(c.entries))
}
