package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/siegeai/cloudmock/config"
	"github.com/siegeai/cloudmock/server"
)

var serveRunner = runServe

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the persisted resources and the mocked read endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return serveRunner(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", "", "Listen address (default :8000)")
	flags.String("specs", "", "Path to the specification root of the API description tree")
	flags.StringSlice("services", nil, "Services to mock (default compute,networking,storage)")
	flags.String("token", "", "Bearer token accepted by the resource routes")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.New(*cfg).ListenAndServe(ctx)
}
