// Package forms validates form fields, tracks live feedback and counters,
// and persists drafts periodically through a DraftStore.
package forms

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldType is the input type of a field; it selects format rules.
type FieldType string

const (
	TypeText     FieldType = "text"
	TypeEmail    FieldType = "email"
	TypeURL      FieldType = "url"
	TypeTextarea FieldType = "textarea"
	TypeFile     FieldType = "file"
)

// RequiredMessage is reported for an empty required field.
const RequiredMessage = "This field is required"

// FieldSpec describes one form field. Zero length bounds are not enforced.
type FieldSpec struct {
	Name      string
	Label     string
	Type      FieldType
	Required  bool
	MinLength int
	MaxLength int
}

// Field is a field together with its current value.
type Field struct {
	FieldSpec
	Value string
}

// Result is the outcome of validating one field.
type Result struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

var validate = validator.New()

// Validate applies the field rules in order; the first failing rule decides.
func Validate(f Field) Result {
	value := strings.TrimSpace(f.Value)
	if value == "" {
		if f.Required {
			return Result{Message: RequiredMessage}
		}
		return Result{Valid: true}
	}

	switch f.Type {
	case TypeEmail:
		if validate.Var(value, "email") != nil {
			return Result{Message: "Please enter a valid email address"}
		}
	case TypeURL:
		if validate.Var(value, "url") != nil {
			return Result{Message: "Please enter a valid URL"}
		}
	}

	// min and max count runes for strings.
	if f.MinLength > 0 && validate.Var(f.Value, fmt.Sprintf("min=%d", f.MinLength)) != nil {
		return Result{Message: fmt.Sprintf("Must be at least %d characters", f.MinLength)}
	}
	if f.MaxLength > 0 && validate.Var(f.Value, fmt.Sprintf("max=%d", f.MaxLength)) != nil {
		return Result{Message: fmt.Sprintf("Must be no more than %d characters", f.MaxLength)}
	}
	return Result{Valid: true}
}
