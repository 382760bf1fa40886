package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"order-reconciler/feature/orders/models"

	"github.com/spf13/cobra"
)

var (
	orderName       string
	orderType       string
	orderNameFilter string
	ordersJSON      bool
)

// ordersCmd is the parent command for local order management.
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Manage locally stored orders",
}

var ordersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an order and submit it to the provider",
	Long: `Creates the order locally with status ordered, then submits it to the
provider and records the external id it returns. When the provider rejects
the order it is kept without external id and never checked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		typ := models.Type(orderType)
		if !typ.IsValid() {
			return fmt.Errorf("unknown order type %q (valid: %v)", orderType, models.Types())
		}

		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		order, err := rt.service.Create(cmd.Context(), orderName, typ)
		if err != nil {
			return err
		}
		return printOrders(cmd.OutOrStdout(), []models.Order{*order})
	},
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders sorted by name, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		list, err := rt.service.List(cmd.Context(), orderNameFilter)
		if err != nil {
			return err
		}
		return printOrders(cmd.OutOrStdout(), list)
	},
}

var ordersSetStatusCmd = &cobra.Command{
	Use:   "set-status <id> <status>",
	Short: "Set an order's status by hand",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		status := models.Status(args[1])
		if !status.IsValid() {
			return fmt.Errorf("unknown status %q (valid: %v)", args[1], models.Statuses())
		}

		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		order, changed, err := rt.service.SetStatus(cmd.Context(), args[0], status)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s already %s.\n", args[0], status)
		}
		return printOrders(cmd.OutOrStdout(), []models.Order{*order})
	},
}

var ordersCheckCmd = &cobra.Command{
	Use:   "check <id>",
	Short: "Check one order against the provider now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		order, outcome, err := rt.service.Check(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order %s: %s\n", order.ID, outcome)
		return printOrders(cmd.OutOrStdout(), []models.Order{*order})
	},
}

var ordersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a completed order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.logger.Sync()

		if err := rt.service.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Order %s deleted.\n", args[0])
		return nil
	},
}

func init() {
	ordersCreateCmd.Flags().StringVar(&orderName, "name", "", "Order name")
	ordersCreateCmd.Flags().StringVar(&orderType, "type", string(models.TypeConnector), "Order type (connector, vpn_connection)")
	_ = ordersCreateCmd.MarkFlagRequired("name")

	ordersListCmd.Flags().StringVar(&orderNameFilter, "name", "", "Only orders whose name contains this text")

	ordersCmd.PersistentFlags().BoolVar(&ordersJSON, "json", false, "Print orders as JSON")

	ordersCmd.AddCommand(ordersCreateCmd, ordersListCmd, ordersSetStatusCmd, ordersCheckCmd, ordersDeleteCmd)
	RootCmd.AddCommand(ordersCmd)
}

func printOrders(w io.Writer, list []models.Order) error {
	if ordersJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSTATUS\tEXTERNAL ID\tCREATED")
	for _, o := range list {
		ext := o.ExternalIDValue()
		if ext == "" {
			ext = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.Name, o.Type, o.Status, ext, o.CreatedAt.Format(time.RFC3339))
	}
	return tw.Flush()
}
