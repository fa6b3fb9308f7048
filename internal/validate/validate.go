// Package validate applies declarative field rules to decoded JSON bodies.
// All violated rules for a request are collected into a single Errors value
// so the client sees every problem at once instead of one per round trip.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Kind is the expected JSON type of a field.
type Kind string

const (
	String Kind = "string"
	Number Kind = "number"
	Date   Kind = "date"
	Email  Kind = "email"
)

// Rule describes the constraints on one request field.
type Rule struct {
	Field    string
	Required bool
	Kind     Kind
	MinLen   int
	MaxLen   int
	Min      *float64
	Enum     []string
}

// Errors aggregates every violated rule for a request.
type Errors struct {
	Violations []string
}

func (e *Errors) Error() string {
	return strings.Join(e.Violations, ", ")
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Min returns a pointer to v for use in Rule literals.
func Min(v float64) *float64 { return &v }

// Apply checks values (a decoded JSON object) against rules. It returns nil
// when everything passes, or an *Errors listing all violations.
func Apply(rules []Rule, values map[string]any) error {
	var errs Errors
	for _, rule := range rules {
		checkRule(rule, values, &errs)
	}
	if len(errs.Violations) > 0 {
		return &errs
	}
	return nil
}

func checkRule(rule Rule, values map[string]any, errs *Errors) {
	value, present := values[rule.Field]
	if value == nil {
		present = false
	}

	if rule.Required {
		if !present || isBlank(value) {
			errs.add("%s is required", rule.Field)
			return
		}
	}
	if !present {
		return
	}

	switch rule.Kind {
	case String:
		if _, ok := value.(string); !ok {
			errs.add("%s must be a string", rule.Field)
			return
		}
	case Number:
		if _, ok := value.(float64); !ok {
			errs.add("%s must be a number", rule.Field)
			return
		}
	case Date:
		s, ok := value.(string)
		if !ok {
			errs.add("%s must be a valid date", rule.Field)
			return
		}
		if _, err := ParseDate(s); err != nil {
			errs.add("%s must be a valid date", rule.Field)
			return
		}
	case Email:
		s, ok := value.(string)
		if !ok || !emailPattern.MatchString(s) {
			errs.add("%s must be a valid email", rule.Field)
			return
		}
	}

	if s, ok := value.(string); ok {
		length := len([]rune(strings.TrimSpace(s)))
		if rule.MinLen > 0 && length < rule.MinLen {
			errs.add("%s must be at least %d characters", rule.Field, rule.MinLen)
		}
		if rule.MaxLen > 0 && length > rule.MaxLen {
			errs.add("%s must be at most %d characters", rule.Field, rule.MaxLen)
		}
	}

	if n, ok := value.(float64); ok && rule.Min != nil && n < *rule.Min {
		errs.add("%s must be at least %g", rule.Field, *rule.Min)
	}

	if len(rule.Enum) > 0 {
		s, _ := value.(string)
		found := false
		for _, allowed := range rule.Enum {
			if s == allowed {
				found = true
				break
			}
		}
		if !found {
			errs.add("%s must be one of: %s", rule.Field, strings.Join(rule.Enum, ", "))
		}
	}
}

func (e *Errors) add(format string, args ...any) {
	e.Violations = append(e.Violations, fmt.Sprintf(format, args...))
}

func isBlank(value any) bool {
	s, ok := value.(string)
	return ok && strings.TrimSpace(s) == ""
}

// dateLayouts are the accepted dueDate formats, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a date string in any accepted layout.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
