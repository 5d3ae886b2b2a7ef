package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	grpcAdapter "github.com/andrescamacho/domnus-go/internal/adapters/grpc"
)

// NewTimeCommand creates the time command
func NewTimeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "time",
		Short: "Show the service's reference time",
		Long: `Show the instant the service uses as "now" for projections and
completion times.

Example:
  domnus time`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEconomyClient(func(ctx context.Context, client *grpcAdapter.EconomyClient) error {
				doc, err := client.Time(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), doc["now"])
				return nil
			})
		},
	}
}
