package qrcontent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Fields is a loosely typed field bag, as received from JSON bodies or CLI flags.
type Fields map[string]any

// numericFields lists the optional numeric keys per type. Blank strings in
// these keys mean "not provided" rather than zero.
var numericFields = map[ContentType][]string{
	TypeLocation: {"latitude", "longitude"},
	TypePix:      {"amount"},
}

// Decode converts a field bag into the content value for t. Values are
// converted weakly ("12.5" becomes 12.5, "true" becomes true) and unknown keys
// are ignored.
func Decode(t ContentType, f Fields) (Content, error) {
	c, err := New(t)
	if err != nil {
		return nil, err
	}
	if len(f) == 0 {
		return c, nil
	}

	input := make(map[string]any, len(f))
	for k, v := range f {
		input[k] = v
	}
	for _, key := range numericFields[t] {
		if s, ok := input[key].(string); ok && strings.TrimSpace(s) == "" {
			delete(input, key)
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           c,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidFields, err)
	}
	if err := dec.Decode(input); err != nil {
		return nil, errors.Join(ErrInvalidFields, err)
	}
	return c, nil
}

// ToFields converts c back into a field bag. Empty optional fields are omitted.
func ToFields(c Content) (Fields, error) {
	if c == nil {
		return Fields{}, nil
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal %s content: %w", c.Type(), err)
	}
	out := Fields{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal %s content: %w", c.Type(), err)
	}
	return out, nil
}
