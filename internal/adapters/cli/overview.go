package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	grpcAdapter "github.com/andrescamacho/domnus-go/internal/adapters/grpc"
)

// NewOverviewCommand creates the overview command
func NewOverviewCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "overview <category>",
		Short: "Show a production overview",
		Long: fmt.Sprintf(`Show the read model of one category: current holdings, what the
queues deliver within each horizon, prices and what can still be ordered.

Categories: %s

Examples:
  domnus overview mobilization --kingdom 7
  domnus overview missiles
  domnus overview settle --json`, strings.Join(grpcAdapter.OverviewCategories(), ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: grpcAdapter.OverviewCategories(),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := args[0]
			id, err := resolveKingdomID()
			if err != nil {
				return err
			}

			return withEconomyClient(func(ctx context.Context, client *grpcAdapter.EconomyClient) error {
				doc, err := client.GetOverview(ctx, id, category)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), doc)
				}
				return renderOverview(cmd.OutOrStdout(), category, doc)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw overview document")

	return cmd
}
