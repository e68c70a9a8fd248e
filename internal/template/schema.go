package template

import (
	"fmt"
	"math"
	"strings"

	"github.com/opentre/opentre/pkg/types"
)

// Violation is a single schema-validation failure.
type Violation struct {
	Property string `json:"property"`
	Rule     string `json:"rule"` // "required", "type" or "unknown"
	Message  string `json:"message"`
}

// ValidationError reports that caller-supplied parameters did not match a
// template's schema. It carries the full violation list rather than failing on
// the first problem.
type ValidationError struct {
	TemplateName string      `json:"templateName"`
	Violations   []Violation `json:"violations"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return fmt.Sprintf("parameters do not match template %q: %s", e.TemplateName, strings.Join(msgs, "; "))
}

// ValidateParameters checks params against the template's property schema and
// returns all violations found. An empty result means the parameters pass.
func ValidateParameters(t *types.ResourceTemplate, params map[string]any) []Violation {
	var violations []Violation

	for _, name := range t.Required {
		if _, ok := params[name]; !ok {
			violations = append(violations, Violation{
				Property: name,
				Rule:     "required",
				Message:  fmt.Sprintf("required property %q is missing", name),
			})
		}
	}

	for name, value := range params {
		prop, ok := t.Properties[name]
		if !ok {
			violations = append(violations, Violation{
				Property: name,
				Rule:     "unknown",
				Message:  fmt.Sprintf("property %q is not defined by the template", name),
			})
			continue
		}
		if prop.Type == "" || value == nil {
			continue
		}
		if !typeMatches(prop.Type, value) {
			violations = append(violations, Violation{
				Property: name,
				Rule:     "type",
				Message:  fmt.Sprintf("property %q must be of type %s", name, prop.Type),
			})
		}
	}

	return violations
}

// typeMatches checks a decoded JSON value against a schema type name. JSON
// numbers decode to float64, so "integer" accepts any integral float.
func typeMatches(schemaType string, value any) bool {
	switch schemaType {
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "integer":
		switch n := value.(type) {
		case float64:
			return n == math.Trunc(n)
		case int, int32, int64:
			return true
		}
		return false
	case "number":
		switch value.(type) {
		case float64, int, int32, int64:
			return true
		}
		return false
	case "object":
		_, ok := value.(map[string]any)
		return ok
	case "array":
		_, ok := value.([]any)
		return ok
	default:
		// Unrecognized schema types are not validated here.
		return true
	}
}
