package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/qrkit/internal/qrcodes"
	"github.com/dmitrymomot/qrkit/pkg/qrcode"
	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
)

// contentFlags are shared by encode and render.
type contentFlags struct {
	typ  string
	file string
	sets []string
}

func (f *contentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.typ, "type", "t", "", "content type, see `qrkit types`")
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "YAML or JSON file with type, content and settings")
	cmd.Flags().StringArrayVar(&f.sets, "set", nil, "content field as key=value, repeatable")
}

// contentFile is the layout of a --file document.
type contentFile struct {
	Type     qrcontent.ContentType `yaml:"type"`
	Content  fileFields            `yaml:"content"`
	Settings qrcode.Settings       `yaml:"settings"`
}

// fileFields keeps content scalars exactly as written. Plain YAML scalars
// such as 2024-01-15T10:30:00Z or 0115550100 would otherwise resolve to a
// timestamp or an octal number; qrcontent.Decode converts the strings to
// numbers and booleans where a field needs one.
type fileFields qrcontent.Fields

func (f *fileFields) UnmarshalYAML(node *yaml.Node) error {
	if node.ShortTag() == "!!null" {
		*f = fileFields{}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: content must be a mapping", node.Line)
	}
	out := make(fileFields, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch {
		case value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null":
		case value.Kind == yaml.ScalarNode:
			out[key.Value] = value.Value
		default:
			var v any
			if err := value.Decode(&v); err != nil {
				return err
			}
			out[key.Value] = v
		}
	}
	*f = out
	return nil
}

// load merges the file (if any) with the flags. Flags win.
func (f *contentFlags) load() (qrcodes.PreviewInput, error) {
	var in qrcodes.PreviewInput
	if f.file != "" {
		raw, err := os.ReadFile(f.file)
		if err != nil {
			return in, fmt.Errorf("read content file: %w", err)
		}
		var doc contentFile
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return in, fmt.Errorf("parse content file %s: %w", f.file, err)
		}
		in = qrcodes.PreviewInput{Type: doc.Type, Content: qrcontent.Fields(doc.Content), Settings: doc.Settings}
	}
	if in.Content == nil {
		in.Content = qrcontent.Fields{}
	}
	if f.typ != "" {
		in.Type = qrcontent.ContentType(f.typ)
	}
	for _, kv := range f.sets {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return in, fmt.Errorf("invalid --set %q, expected key=value", kv)
		}
		in.Content[strings.TrimSpace(key)] = value
	}
	if in.Type == "" {
		return in, fmt.Errorf("content type is required, use --type or a file with a type key")
	}
	return in, nil
}

// encodeContent validates before encoding and prints every validation
// message to stderr on failure.
func encodeContent(cmd *cobra.Command, in qrcodes.PreviewInput) (string, error) {
	t, err := qrcontent.ParseContentType(string(in.Type))
	if err != nil {
		return "", err
	}
	res := qrcontent.ValidateFields(t, in.Content)
	if !res.Valid {
		w := cmd.ErrOrStderr()
		fmt.Fprintf(w, "invalid %s content:\n", t)
		for _, msg := range res.Errors {
			fmt.Fprintf(w, "  - %s\n", msg)
		}
		return "", res.Err()
	}
	return qrcontent.EncodeFields(t, in.Content)
}
