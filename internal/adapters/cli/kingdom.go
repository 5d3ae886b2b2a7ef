package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/andrescamacho/domnus-go/internal/adapters/persistence"
	"github.com/andrescamacho/domnus-go/internal/adapters/store"
	"github.com/andrescamacho/domnus-go/internal/domain/kingdom"
	"github.com/andrescamacho/domnus-go/internal/domain/shared"
	"github.com/andrescamacho/domnus-go/internal/infrastructure/database"
)

// NewKingdomCommand creates the kingdom command with subcommands
func NewKingdomCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kingdom",
		Short: "Manage kingdoms in the local database store",
		Long: `Manage kingdoms kept in the configured database, for deployments
that run with store.kind=database instead of the remote store.

Examples:
  domnus kingdom import ./kingdom-7.json --kingdom 7
  domnus kingdom show --kingdom 7
  domnus kingdom queue settles --kingdom 7`,
	}

	// Add subcommands
	cmd.AddCommand(newKingdomImportCommand())
	cmd.AddCommand(newKingdomShowCommand())
	cmd.AddCommand(newKingdomQueueCommand())

	return cmd
}

// openKingdomStore connects to the configured database and migrates it
func openKingdomStore() (*persistence.GormKingdomStore, *gorm.DB, error) {
	cfg := loadConfig()
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, nil, err
	}
	return persistence.NewGormKingdomStore(db, nil), db, nil
}

func newKingdomImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load a kingdom document into the database",
		Long: `Load a kingdom document, in the same JSON shape the remote store
serves, into the database. An existing kingdom with the same id is replaced.

Example:
  domnus kingdom import ./kingdom-7.json --kingdom 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveKingdomID()
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read kingdom file: %w", err)
			}
			snap, err := store.DecodeKingdom(raw, shared.MustNewKingdomID(id))
			if err != nil {
				return err
			}

			kingdoms, db, err := openKingdomStore()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := kingdoms.SaveKingdom(context.Background(), snap); err != nil {
				return err
			}

			successColor.Fprintf(cmd.OutOrStdout(), "✓ Kingdom %d imported\n", id)
			fmt.Fprintf(cmd.OutOrStdout(), "  Stars: %d  Population: %d  Money: %s  Fuel: %s\n",
				snap.Stars, snap.Population, snap.Money.String(), snap.Fuel.String())
			return nil
		},
	}
}

func newKingdomShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show a stored kingdom",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveKingdomID()
			if err != nil {
				return err
			}
			kingdoms, db, err := openKingdomStore()
			if err != nil {
				return err
			}
			defer database.Close(db)

			snap, err := kingdoms.GetKingdom(context.Background(), shared.MustNewKingdomID(id))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			headerColor.Fprintf(out, "Kingdom %d\n", id)
			rows := [][]string{
				{"Stars", strconv.Itoa(snap.Stars)},
				{"Population", strconv.Itoa(snap.Population)},
				{"Money", snap.Money.String()},
				{"Fuel", snap.Fuel.String()},
				{"Generals out", strconv.Itoa(len(snap.GeneralsOut))},
			}
			rows = append(rows, inventoryRows("structures", snap.Structures)...)
			rows = append(rows, inventoryRows("units", snap.Units)...)
			rows = append(rows, inventoryRows("missiles", snap.Missiles)...)
			rows = append(rows, inventoryRows("assigned", snap.ProjectsAssigned)...)
			renderKeyValues(out, rows)
			return nil
		},
	}
}

func newKingdomQueueCommand() *cobra.Command {
	names := make([]string, 0, len(kingdom.Queues()))
	for _, q := range kingdom.Queues() {
		names = append(names, q.String())
	}

	return &cobra.Command{
		Use:       "queue <" + strings.Join(names, "|") + ">",
		Short:     "List pending orders in a queue",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			queue := kingdom.Queue(args[0])
			if !queue.IsValid() {
				return fmt.Errorf("unknown queue %q, expected one of %s", args[0], strings.Join(names, ", "))
			}
			id, err := resolveKingdomID()
			if err != nil {
				return err
			}
			kingdoms, db, err := openKingdomStore()
			if err != nil {
				return err
			}
			defer database.Close(db)

			orders, err := kingdoms.GetQueue(context.Background(), shared.MustNewKingdomID(id), queue)
			if err != nil {
				return err
			}
			if len(orders) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No pending orders in %s\n", queue)
				return nil
			}

			table := tablewriter.NewTable(cmd.OutOrStdout(), tablewriter.WithHeader([]string{"Completes", "Order"}))
			for _, o := range orders {
				_ = table.Append([]string{o.Time.UTC().Format("2006-01-02 15:04:05"), formatInventory(o.Payload)})
			}
			_ = table.Render()
			return nil
		},
	}
}

// inventoryRows lists the non-zero entries of inv, prefixed with group
func inventoryRows(group string, inv kingdom.Inventory) [][]string {
	kinds := make([]string, 0, len(inv))
	for k, v := range inv {
		if v != 0 {
			kinds = append(kinds, k)
		}
	}
	sort.Strings(kinds)
	rows := make([][]string, 0, len(kinds))
	for _, k := range kinds {
		rows = append(rows, []string{group + "." + k, strconv.Itoa(inv[k])})
	}
	return rows
}

func formatInventory(inv kingdom.Inventory) string {
	parts := make([]string, 0, len(inv))
	for _, row := range inventoryRows("", inv) {
		parts = append(parts, strings.TrimPrefix(row[0], ".")+"="+row[1])
	}
	return strings.Join(parts, " ")
}
