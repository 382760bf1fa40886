package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// providerCmd groups read-only provider inspection.
var providerCmd = &cobra.Command{
	Use:   "provider",
	Short: "Inspect the order provider",
}

var providerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the orders the provider holds",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		remote, err := rt.service.ListRemote(cmd.Context())
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "EXTERNAL ID\tTYPE\tSTATUS")
		for _, o := range remote {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", o.ID, o.Type, o.Status)
		}
		return tw.Flush()
	},
}

func init() {
	providerCmd.AddCommand(providerListCmd)
	RootCmd.AddCommand(providerCmd)
}
