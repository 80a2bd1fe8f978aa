// Package validation holds the field rules shared by the HTTP handlers and the
// services. Every rule returns all field errors at once so clients can render
// them next to the offending inputs.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Message
}

type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

func (r *Result) add(field, format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Merge combines results from several fields.
func Merge(results ...Result) Result {
	merged := Result{Valid: true}
	for _, r := range results {
		if !r.Valid {
			merged.Valid = false
			merged.Errors = append(merged.Errors, r.Errors...)
		}
	}
	return merged
}

// FirstError returns the first field error, or nil when valid.
func (r Result) FirstError() error {
	if r.Valid || len(r.Errors) == 0 {
		return nil
	}
	return r.Errors[0]
}

type TextRules struct {
	Required  bool
	MinLength int
	MaxLength int
}

var (
	NameRules            = TextRules{Required: true, MinLength: 4, MaxLength: 25}
	FeedNameRules        = TextRules{Required: true, MinLength: 4, MaxLength: 25}
	FeedDescriptionRules = TextRules{MaxLength: 100}
	InviteeNameRules     = TextRules{MaxLength: 50}
)

// MaxContentBytes bounds thread and message bodies (serialized rich text).
const MaxContentBytes = 20000

// ValidateTextField checks the trimmed value against rules. Lengths count runes.
func ValidateTextField(value string, rules TextRules, label string) Result {
	res := Result{Valid: true}
	field := fieldName(label)
	trimmed := strings.TrimSpace(value)
	n := utf8.RuneCountInString(trimmed)

	if n == 0 {
		if rules.Required {
			res.add(field, "%s is required", label)
		}
		return res
	}
	if rules.MinLength > 0 && n < rules.MinLength {
		res.add(field, "%s must be at least %d characters", label, rules.MinLength)
	}
	if rules.MaxLength > 0 && n > rules.MaxLength {
		res.add(field, "%s must be at most %d characters", label, rules.MaxLength)
	}
	return res
}

type EmailRules struct {
	Required bool
}

func ValidateEmailField(value string, rules EmailRules, label string) Result {
	res := Result{Valid: true}
	field := fieldName(label)
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		if rules.Required {
			res.add(field, "%s is required", label)
		}
		return res
	}
	if err := validate.Var(trimmed, "email"); err != nil {
		res.add(field, "%s must be a valid email address", label)
	}
	return res
}

// ValidateContent checks a thread or message body.
func ValidateContent(value string) Result {
	res := Result{Valid: true}
	if strings.TrimSpace(value) == "" {
		res.add("content", "Content is required")
		return res
	}
	if len(value) > MaxContentBytes {
		res.add("content", "Content is too long")
	}
	return res
}

// NormalizeEmail lower-cases and trims an address for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func fieldName(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}
