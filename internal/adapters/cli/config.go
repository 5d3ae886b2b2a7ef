package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/domnus-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Domnus configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (DOMNUS_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default kingdom, service address) are stored in ~/.domnus/config.json

Examples:
  domnus config show
  domnus config set-kingdom 7
  domnus config set-server economy.internal:50061
  domnus config clear`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetKingdomCommand())
	cmd.AddCommand(newConfigSetServerCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the current configuration settings.

Shows both service configuration and user preferences.

Example:
  domnus config show`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				warnColor.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				warnColor.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			headerColor.Fprintln(out, "Domnus Configuration")

			rows := [][]string{{"user.config_file", userConfigHandler.GetConfigPath()}}
			if userCfg.DefaultKingdomID != nil {
				rows = append(rows, []string{"user.default_kingdom", fmt.Sprint(*userCfg.DefaultKingdomID)})
			} else {
				rows = append(rows, []string{"user.default_kingdom", "(not set)"})
			}
			if userCfg.Server != "" {
				rows = append(rows, []string{"user.server", userCfg.Server})
			}

			rows = append(rows,
				[]string{"store.kind", cfg.Store.Kind},
				[]string{"store.base_url", cfg.Store.BaseURL},
				[]string{"store.functions_key", secret(cfg.Store.FunctionsKey)},
				[]string{"store.timeout", cfg.Store.Timeout.String()},
				[]string{"store.rate_limit", fmt.Sprintf("%d req/s (burst: %d)", cfg.Store.RateLimit.Requests, cfg.Store.RateLimit.Burst)},
				[]string{"store.circuit", fmt.Sprintf("%d failures, %s cooldown", cfg.Store.Circuit.MaxFailures, cfg.Store.Circuit.Cooldown)},
				[]string{"store.naive_time_zone", cfg.Store.NaiveTimeZone},
				[]string{"database.type", cfg.Database.Type},
			)
			if cfg.Database.URL != "" {
				rows = append(rows, []string{"database.url", maskPassword(cfg.Database.URL)})
			} else if cfg.Database.Type == "sqlite" {
				rows = append(rows, []string{"database.path", cfg.Database.Path})
			} else {
				rows = append(rows,
					[]string{"database.host", fmt.Sprintf("%s:%d", cfg.Database.Host, cfg.Database.Port)},
					[]string{"database.name", cfg.Database.Name},
					[]string{"database.user", cfg.Database.User},
				)
			}
			rows = append(rows,
				[]string{"server.address", cfg.Server.Address},
				[]string{"server.shutdown_timeout", cfg.Server.ShutdownTimeout.String()},
				[]string{"metrics.enabled", fmt.Sprint(cfg.Metrics.Enabled)},
				[]string{"metrics.endpoint", cfg.Metrics.URL()},
				[]string{"logging.level", cfg.Logging.Level},
				[]string{"logging.output", cfg.Logging.Output},
				[]string{"logging.persist", fmt.Sprint(cfg.Logging.Persist)},
				[]string{"catalog.path", orBuiltIn(cfg.Catalog.Path)},
			)
			renderKeyValues(out, rows)
			return nil
		},
	}
}

// newConfigSetKingdomCommand creates the config set-kingdom subcommand
func newConfigSetKingdomCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-kingdom <kingdom-id>",
		Short: "Set default kingdom",
		Long: `Set the kingdom commands act on when --kingdom is not given.

Example:
  domnus config set-kingdom 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int
			if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil || id < 0 {
				return fmt.Errorf("invalid kingdom id %q", args[0])
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultKingdom(id); err != nil {
				return fmt.Errorf("failed to set default kingdom: %w", err)
			}

			successColor.Fprintf(cmd.OutOrStdout(), "✓ Default kingdom set to %d\n", id)
			return nil
		},
	}
}

// newConfigSetServerCommand creates the config set-server subcommand
func newConfigSetServerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-server <host:port>",
		Short: "Set default economy service address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetServer(args[0]); err != nil {
				return fmt.Errorf("failed to set server: %w", err)
			}

			successColor.Fprintf(cmd.OutOrStdout(), "✓ Default server set to %s\n", args[0])
			return nil
		},
	}
}

// newConfigClearCommand creates the config clear subcommand
func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear user preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.Clear(); err != nil {
				return fmt.Errorf("failed to clear user config: %w", err)
			}

			successColor.Fprintln(cmd.OutOrStdout(), "✓ User preferences cleared")
			return nil
		},
	}
}

func secret(s string) string {
	if s == "" {
		return "(not set)"
	}
	return "(set)"
}

func orBuiltIn(path string) string {
	if path == "" {
		return "(built-in tables)"
	}
	return path
}
