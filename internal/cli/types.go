package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/qrkit/pkg/qrcontent"
)

func newTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported content types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, t := range qrcontent.Types() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}
}
