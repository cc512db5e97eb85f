package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rankwidth/pkg/buildinfo"
	"github.com/matzehuels/rankwidth/pkg/gf4"
)

// versionCommand prints build information and the active GF(4) kernel.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, buildinfo.String())
			fmt.Fprintf(w, "gf4 kernel: %s\n", gf4.KernelName())
			return nil
		},
	}
}
