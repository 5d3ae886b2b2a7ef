package cli

import (
	"context"

	"github.com/spf13/cobra"

	grpcAdapter "github.com/andrescamacho/domnus-go/internal/adapters/grpc"
	"github.com/andrescamacho/domnus-go/internal/domain/spending"
)

// NewSpendingCommand creates the spending command with subcommands
func NewSpendingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spending",
		Short: "Show and change the automatic spending split",
		Long: `Show and change how a kingdom's income is split between settling,
structures, military and engineers. Shares are percentages and may not
add up to more than 100.

Examples:
  domnus spending
  domnus spending set --settle 25 --military 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveKingdomID()
			if err != nil {
				return err
			}
			return withEconomyClient(func(ctx context.Context, client *grpcAdapter.EconomyClient) error {
				doc, err := client.GetOverview(ctx, id, grpcAdapter.OverviewSpending)
				if err != nil {
					return err
				}
				return renderOverview(cmd.OutOrStdout(), grpcAdapter.OverviewSpending, doc)
			})
		},
	}

	cmd.AddCommand(newSpendingSetCommand())

	return cmd
}

func newSpendingSetCommand() *cobra.Command {
	shares := make(map[string]*float64, len(spending.Keys()))

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more spending shares",
		Long: `Change one or more spending shares. Shares not given keep their current value.

Examples:
  domnus spending set --settle 25
  domnus spending set --structures 20 --engineers 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			update := make(map[string]float64)
			for _, key := range spending.Keys() {
				if cmd.Flags().Changed(key) {
					update[key] = *shares[key]
				}
			}
			if len(update) == 0 {
				return cmd.Help()
			}

			id, err := resolveKingdomID()
			if err != nil {
				return err
			}
			return withEconomyClient(func(ctx context.Context, client *grpcAdapter.EconomyClient) error {
				doc, err := client.UpdateSpending(ctx, id, update)
				if err != nil {
					return err
				}
				successColor.Fprintln(cmd.OutOrStdout(), "✓ Spending updated")
				renderSpending(cmd.OutOrStdout(), doc)
				return nil
			})
		},
	}

	for _, key := range spending.Keys() {
		shares[key] = cmd.Flags().Float64(key, 0, "Percent of income for "+key)
	}

	return cmd
}
