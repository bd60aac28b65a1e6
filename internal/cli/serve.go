package cli

import (
	"github.com/spf13/cobra"

	"github.com/insightdelivered/statement-scraper/internal/api"
)

func newServeCommand(root *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSettings(root)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			h := &api.Handler{
				Options: parserOptions(cfg, logger),
				Format:  cfg.Format,
				Log:     logger,
				Version: Version,
			}
			app := api.NewApp(h)

			logger.WithField("addr", cfg.Server.Addr).Info("listening")
			return app.Listen(cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}
