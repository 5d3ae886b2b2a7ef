package cli

import (
	"github.com/spf13/cobra"

	"github.com/andrescamacho/domnus-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/domnus-go/internal/infrastructure/config"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the economy service in the foreground",
		Long: `Run the economy service with the loaded configuration until
interrupted (Ctrl-C or SIGTERM).

Examples:
  domnus serve
  domnus serve --config ./configs/config.yaml
  DOMNUS_STORE_KIND=database DOMNUS_DATABASE_TYPE=sqlite domnus serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}

			app, err := bootstrap.New(cfg, bootstrap.Options{})
			if err != nil {
				return err
			}
			defer app.Close()

			successColor.Fprintf(cmd.OutOrStdout(), "✓ Economy service listening on %s (store: %s)\n",
				app.Server().Addr(), cfg.Store.Kind)
			return app.Run()
		},
	}
}
