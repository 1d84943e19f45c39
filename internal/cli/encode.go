package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEncodeCommand() *cobra.Command {
	var flags contentFlags
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Validate content and print the QR payload",
		Example: `  qrkit encode -t wifi --set ssid=Home --set security=WPA --set password=secret
  qrkit encode -f menu.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := flags.load()
			if err != nil {
				return err
			}
			encoded, err := encodeContent(cmd, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
