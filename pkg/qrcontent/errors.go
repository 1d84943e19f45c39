package qrcontent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/qrkit/pkg/validator"
)

var (
	// ErrUnsupportedType is matched by errors for content types outside the known set.
	ErrUnsupportedType = errors.New("unsupported QR type")
	// ErrValidation is matched by errors describing invalid content.
	ErrValidation = errors.New("invalid QR content")
	// ErrInvalidFields is returned when a field bag cannot be converted into content.
	ErrInvalidFields = errors.New("invalid content fields")
)

// UnsupportedTypeError reports a content type outside the closed enumeration.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnsupportedType.Error(), e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// ValidationError carries the ordered rule failures for one piece of content.
type ValidationError struct {
	Type   ContentType
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (%s): %s", ErrValidation.Error(), e.Type, strings.Join(e.Messages(), "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e.Fields
}

// Messages returns the user-facing messages in rule order.
func (e *ValidationError) Messages() []string {
	return e.Fields.Messages()
}
