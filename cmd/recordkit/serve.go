package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/recordkit/pkg/config"
	"github.com/dmitrymomot/recordkit/pkg/httpapi"
	"github.com/dmitrymomot/recordkit/pkg/httpserver"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			var cfg httpserver.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			runner, err := a.runner(ctx)
			if err != nil {
				return err
			}
			api := httpapi.New(a.policies, runner,
				httpapi.WithLogger(a.log),
				httpapi.WithHealthChecks(a.checks...),
			)
			srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(a.log))
			return srv.Run(ctx, api.Router())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from RECORDKIT_HTTP_ADDR)")
	return cmd
}
