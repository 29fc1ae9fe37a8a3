package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-admaiora"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr      string
		watch     bool
		content   string
		templates string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				a.cfg.Server.Addr = addr
			}
			if flags.Changed("watch") {
				a.cfg.Content.Watch = watch
			}
			if flags.Changed("content") {
				a.cfg.Content.Path = content
			}
			if flags.Changed("templates") {
				a.cfg.Content.TemplatesDir = templates
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			srv, err := admaiora.NewServer(a.cfg, admaiora.WithLogger(a.logger))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.Run(ctx); err != nil {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
				return err
			}
			a.logger.Info("server stopped", zap.String("addr", a.cfg.Server.Addr))
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload content and templates when files change")
	cmd.Flags().StringVar(&content, "content", "", "site content YAML file (embedded copy when empty)")
	cmd.Flags().StringVar(&templates, "templates", "", "directory with template overrides")
	return cmd
}
