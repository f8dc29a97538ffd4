package cmd

import (
	"github.com/spf13/cobra"

	"github.com/logiclue/logiclue/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		cfg := a.cfg.Server
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		a.logger.Info("starting",
			"provider", a.cfg.LLM.Provider,
			"model", a.cfg.LLM.Model(),
			"driver", a.store.Driver(),
		)
		return server.New(cfg, a.svc, a.logger).Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}
