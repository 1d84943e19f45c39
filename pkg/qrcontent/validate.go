package qrcontent

import (
	"github.com/dmitrymomot/qrkit/pkg/validator"
)

// Result is the outcome of validating one piece of content.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`

	typ    ContentType
	failed validator.ValidationErrors
}

// Err returns nil for valid content, otherwise a *ValidationError.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Type: r.typ, Fields: r.failed}
}

// Validate checks c against the rules of its content type. Every rule is
// evaluated and failures are reported in a fixed order per type.
func Validate(c Content) Result {
	if c == nil {
		return newResult("", validator.Apply(validator.Rule{
			Check: func() bool { return false },
			Error: validator.ValidationError{
				Field:          "content",
				Message:        "Content is required",
				TranslationKey: "validation.required",
			},
		}))
	}
	return newResult(c.Type(), validator.Apply(rules(c)...))
}

// ValidateFields decodes f for t and validates the result. Unknown types are
// not validated and yield a passing result; Encode reports them instead.
func ValidateFields(t ContentType, f Fields) Result {
	if !t.Valid() {
		return Result{Valid: true, Errors: []string{}, typ: t}
	}
	c, err := Decode(t, f)
	if err != nil {
		return newResult(t, validator.ValidationErrors{{
			Field:          "content",
			Message:        err.Error(),
			TranslationKey: "validation.invalid_fields",
		}})
	}
	return Validate(c)
}

func newResult(t ContentType, err error) Result {
	failed := validator.ExtractValidationErrors(err)
	return Result{
		Valid:  len(failed) == 0,
		Errors: failed.Messages(),
		typ:    t,
		failed: failed,
	}
}

func required(field, value, msg string) validator.Rule {
	return validator.RequiredString(field, value).WithMessage(msg)
}

func rules(c Content) []validator.Rule {
	switch v := c.(type) {
	case *URL:
		x := orZero(v)
		return []validator.Rule{required("url", x.URL, "URL is required")}
	case *Text:
		x := orZero(v)
		return []validator.Rule{required("text", x.Text, "Text is required")}
	case *WiFi:
		x := orZero(v)
		return []validator.Rule{
			required("ssid", x.SSID, "Network name (SSID) is required"),
			validator.When(x.Security != WiFiNoPass,
				required("password", x.Password, "Password is required for protected networks")),
		}
	case *VCard:
		x := orZero(v)
		return []validator.Rule{
			required("firstName", x.FirstName, "First name is required"),
			required("lastName", x.LastName, "Last name is required"),
		}
	case *SMS:
		x := orZero(v)
		return messageRules(x.Phone, x.Message)
	case *WhatsApp:
		x := orZero(v)
		return messageRules(x.Phone, x.Message)
	case *Phone:
		x := orZero(v)
		return []validator.Rule{required("phone", x.Phone, "Phone number is required")}
	case *Email:
		x := orZero(v)
		return []validator.Rule{
			required("email", x.Email, "Email is required"),
			validator.EmailShape("email", x.Email).WithMessage("Email is invalid"),
		}
	case *Location:
		x := orZero(v)
		return []validator.Rule{
			validator.All(
				validator.Present("coordinates", x.Latitude),
				validator.Present("coordinates", x.Longitude),
			).WithMessage("Coordinates are required"),
		}
	case *Event:
		x := orZero(v)
		return []validator.Rule{
			required("title", x.Title, "Event title is required"),
			validator.Rule{
				Check: func() bool { return x.StartDate != "" },
				Error: validator.ValidationError{
					Field:          "startDate",
					Message:        "Start date is required",
					TranslationKey: "validation.required",
				},
			},
		}
	case *Pix:
		x := orZero(v)
		return []validator.Rule{
			required("key", x.Key, "PIX key is required"),
			required("name", x.Name, "Beneficiary name is required"),
			required("city", x.City, "City is required"),
		}
	default:
		return nil
	}
}

func messageRules(phone, message string) []validator.Rule {
	return []validator.Rule{
		required("phone", phone, "Phone number is required"),
		required("message", message, "Message is required"),
	}
}
