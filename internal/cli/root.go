package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/qrkit/pkg/config"
	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
)

// Option configures the root command.
type Option func(*app)

type app struct {
	version  string
	envFiles []string
	environ  map[string]string
}

// WithVersion sets the string printed by --version.
func WithVersion(v string) Option {
	return func(a *app) { a.version = v }
}

// WithEnvironment reads configuration from vars instead of the process
// environment.
func WithEnvironment(vars map[string]string) Option {
	return func(a *app) { a.environ = vars }
}

func (a *app) loadConfig() (Config, error) {
	var cfg Config
	opts := []config.Option{}
	if len(a.envFiles) > 0 {
		opts = append(opts, config.WithEnvFiles(a.envFiles...))
	}
	if a.environ != nil {
		opts = append(opts, config.WithEnvironment(a.environ))
	}
	if err := config.Load(&cfg, opts...); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NewRootCommand builds the qrkit command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{version: "dev"}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:           "qrkit",
		Short:         "Encode, validate and render QR code payloads",
		Version:       a.version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "extra .env files to load")

	root.AddCommand(
		newTypesCommand(),
		newEncodeCommand(),
		newRenderCommand(),
		newServeCommand(a),
	)
	return root
}

// Execute runs the command tree and reports the error on stderr. Validation
// errors are already printed by the command that found them.
func Execute(ctx context.Context, args []string, stderr io.Writer, opts ...Option) error {
	root := NewRootCommand(opts...)
	root.SetArgs(args)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, qrcontent.ErrValidation) {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return err
}
