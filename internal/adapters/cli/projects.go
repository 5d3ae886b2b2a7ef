package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	grpcAdapter "github.com/andrescamacho/domnus-go/internal/adapters/grpc"
)

// Project actions accepted by the service
const (
	projectsAssign = "assign"
	projectsAdd    = "add"
	projectsClear  = "clear"
)

// NewProjectsCommand creates the projects command with subcommands
func NewProjectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Show and assign engineers to projects",
		Long: `Show project progress and move engineers between projects.

Without a subcommand, prints the projects overview.

Examples:
  domnus projects
  domnus projects assign pop_bonus=4 fuel_bonus=2
  domnus projects add military_bonus=3
  domnus projects clear pop_bonus fuel_bonus`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveKingdomID()
			if err != nil {
				return err
			}
			return withEconomyClient(func(ctx context.Context, client *grpcAdapter.EconomyClient) error {
				doc, err := client.GetOverview(ctx, id, grpcAdapter.OverviewProjects)
				if err != nil {
					return err
				}
				return renderOverview(cmd.OutOrStdout(), grpcAdapter.OverviewProjects, doc)
			})
		},
	}

	// Add subcommands
	cmd.AddCommand(newProjectsCountsCommand(projectsAssign,
		"Replace every assignment with the given counts",
		"Projects not named end up with no engineers."))
	cmd.AddCommand(newProjectsCountsCommand(projectsAdd,
		"Add engineers to the given projects",
		"Existing assignments are kept and increased."))
	cmd.AddCommand(newProjectsClearCommand())

	return cmd
}

// newProjectsCountsCommand creates the assign and add subcommands, which share a shape
func newProjectsCountsCommand(action, short, detail string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <project=count> [project=count ...]",
		Short: short,
		Long: fmt.Sprintf(`%s.
%s The total may not exceed the kingdom's engineers.

Example:
  domnus projects %s pop_bonus=4 fuel_bonus=2`, short, detail, action),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := parseCounts(args)
			if err != nil {
				return err
			}
			return manageProjects(cmd, action, counts)
		},
	}
}

func newProjectsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <project> [project ...]",
		Short: "Remove every engineer from the given projects",
		Long: `Remove every engineer from the given projects. Other projects keep theirs.

Example:
  domnus projects clear pop_bonus fuel_bonus`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return manageProjects(cmd, projectsClear, args)
		},
	}
}

// manageProjects sends one project action and prints the resulting assignment
func manageProjects(cmd *cobra.Command, action string, projects interface{}) error {
	id, err := resolveKingdomID()
	if err != nil {
		return err
	}
	return withEconomyClient(func(ctx context.Context, client *grpcAdapter.EconomyClient) error {
		doc, err := client.ManageProjects(ctx, id, action, projects)
		if err != nil {
			return err
		}
		assigned := asDoc(doc["projects_assigned"])
		out := cmd.OutOrStdout()
		successColor.Fprintf(out, "✓ Projects updated (%s)\n", action)
		rows := make([][]string, 0, len(assigned))
		for _, kind := range sortedKeys(assigned) {
			rows = append(rows, []string{kind, itoa(assigned[kind])})
		}
		renderKeyValues(out, rows)
		return nil
	})
}
