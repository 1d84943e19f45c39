package validator

import (
	"regexp"
	"strings"
)

// emailShapeRegex accepts local@domain.tld with no whitespace anywhere.
var emailShapeRegex = regexp.MustCompile(`^[^\s\p{Z}@]+@[^\s\p{Z}@]+\.[^\s\p{Z}@]+$`)

// RequiredString fails when value is empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
		},
	}
}

// Present fails when value is nil. A pointer to a zero value passes.
func Present[T any](field string, value *T) Rule {
	return Rule{
		Check: func() bool {
			return value != nil
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
		},
	}
}

// All passes when every rule passes and reports the first rule's error
// otherwise.
func All(rules ...Rule) Rule {
	r := Rule{Check: func() bool {
		for _, rule := range rules {
			if rule.Check != nil && !rule.Check() {
				return false
			}
		}
		return true
	}}
	if len(rules) > 0 {
		r.Error = rules[0].Error
	}
	return r
}

// EmailShape checks the local@domain.tld shape of a non-empty value.
// Empty values pass; pair it with RequiredString to demand presence.
func EmailShape(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			return emailShapeRegex.MatchString(value)
		},
		Error: ValidationError{
			Field:          field,
			Message:        "must be a valid email address",
			TranslationKey: "validation.email",
		},
	}
}

// When evaluates rule only if cond is true; otherwise the rule always passes.
func When(cond bool, rule Rule) Rule {
	if cond {
		return rule
	}
	return Rule{
		Check: func() bool { return true },
		Error: rule.Error,
	}
}
