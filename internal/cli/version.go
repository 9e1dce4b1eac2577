package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/toybox/pkg/toybox"
)

const modulePath = "github.com/mesh-intelligence/toybox"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the toybox version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "toybox v%s\nmodule: %s\n", toybox.Version, modulePath)
			return nil
		},
	}
}
