package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	grpcAdapter "github.com/andrescamacho/domnus-go/internal/adapters/grpc"
	"github.com/andrescamacho/domnus-go/internal/domain/production"
	"github.com/andrescamacho/domnus-go/pkg/utils"
)

// NewOrderCommand creates the order command
func NewOrderCommand() *cobra.Command {
	var (
		amount    string
		requestID string
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "order <category> [kind=count ...]",
		Short: "Place a production order",
		Long: `Place an order in one production category. The service prices it,
checks capacity and funds, then debits the kingdom and queues the order.

Single-quantity categories (recruits, engineers, settle) take --amount.
The others take kind=count pairs.

Every order carries a request id. Re-running with the same --request-id
returns the original result instead of ordering twice; one is generated
and printed when not given.

Examples:
  domnus order settle --amount 150
  domnus order recruits --amount 40
  domnus order specialists attack=10 defense=5
  domnus order structures homes=3 mines=2 --request-id build-42
  domnus order missiles planet_busters=1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := production.ParseCategoryName(args[0])
			if err != nil {
				return explainError(err)
			}
			id, err := resolveKingdomID()
			if err != nil {
				return err
			}

			order, err := orderDocument(category, args[1:], amount, cmd.Flags().Changed("amount"))
			if err != nil {
				return err
			}

			if requestID == "" {
				requestID = utils.GenerateRequestID(string(category), id)
				if !asJSON {
					fmt.Fprintf(cmd.OutOrStdout(), "Request ID: %s\n", requestID)
				}
			}

			return withEconomyClient(func(ctx context.Context, client *grpcAdapter.EconomyClient) error {
				doc, err := client.PlaceOrder(ctx, id, string(category), order, requestID)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), doc)
				}
				renderCommit(cmd.OutOrStdout(), doc)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&amount, "amount", "", "Quantity for recruits, engineers and settle orders")
	cmd.Flags().StringVar(&requestID, "request-id", "", "Idempotency key; generated when empty")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw commit document")

	return cmd
}

// orderDocument builds the order body for category from the command line
func orderDocument(category production.CategoryName, pairs []string, amount string, amountSet bool) (grpcAdapter.Document, error) {
	switch category {
	case production.CategoryRecruits, production.CategoryEngineers, production.CategorySettlement:
		if len(pairs) > 0 {
			return nil, fmt.Errorf("%s orders take --amount, not kind=count pairs", category)
		}
		if !amountSet {
			return nil, fmt.Errorf("--amount is required for %s orders", category)
		}
		return grpcAdapter.Document{"amount": amount}, nil
	}

	if amountSet {
		return nil, fmt.Errorf("%s orders take kind=count pairs, not --amount", category)
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%s orders need at least one kind=count pair", category)
	}
	return parseAssignments(pairs)
}
