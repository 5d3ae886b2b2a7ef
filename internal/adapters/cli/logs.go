package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/domnus-go/internal/adapters/persistence"
	"github.com/andrescamacho/domnus-go/internal/application/common"
	"github.com/andrescamacho/domnus-go/internal/infrastructure/database"
)

// NewLogsCommand retrieves a kingdom's order log from the database
func NewLogsCommand() *cobra.Command {
	var (
		limit int
		level string
		since time.Duration
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show a kingdom's order log",
		Long: `Show the order log the service persisted for a kingdom
(requires logging.persist on the service).

Examples:
  domnus logs --kingdom 7
  domnus logs --kingdom 7 --limit 50
  domnus logs --kingdom 7 --level ERROR --since 2h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveKingdomID()
			if err != nil {
				return err
			}

			cfg := loadConfig()
			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)
			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			logRepo := persistence.NewGormOrderLogRepository(db, nil)

			var levelPtr *string
			if level != "" {
				upper := strings.ToUpper(level)
				levelPtr = &upper
			}
			var sincePtr *time.Time
			if since > 0 {
				from := time.Now().UTC().Add(-since)
				sincePtr = &from
			}

			logs, err := logRepo.GetLogs(context.Background(), id, limit, levelPtr, sincePtr)
			if err != nil {
				return fmt.Errorf("failed to get logs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(logs) == 0 {
				fmt.Fprintf(out, "No logs found for kingdom %d\n", id)
				return nil
			}

			// Display logs in reverse order (oldest first)
			for i := len(logs) - 1; i >= 0; i-- {
				entry := logs[i]
				levelText := entry.Level
				switch entry.Level {
				case common.LevelError:
					levelText = errorColor.Sprint(entry.Level)
				case common.LevelWarn:
					levelText = warnColor.Sprint(entry.Level)
				}
				fmt.Fprintf(out, "[%s] [%s] %s\n",
					entry.Timestamp.UTC().Format("2006-01-02 15:04:05"),
					levelText,
					entry.Message,
				)
				if verbose && len(entry.Metadata) > 0 {
					for _, key := range sortedKeys(entry.Metadata) {
						fmt.Fprintf(out, "    %s=%v\n", key, entry.Metadata[key])
					}
				}
			}

			fmt.Fprintf(out, "\nTotal: %d log entries\n", len(logs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of log entries")
	cmd.Flags().StringVar(&level, "level", "", "Filter by log level (DEBUG, INFO, WARNING, ERROR)")
	cmd.Flags().DurationVar(&since, "since", 0, "Only entries newer than this, e.g. 30m or 2h")

	return cmd
}
