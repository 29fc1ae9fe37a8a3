package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-admaiora"
	contactcomponent "github.com/goliatone/go-admaiora/components/contact"
	pkgcontact "github.com/goliatone/go-admaiora/pkg/contact"
)

func newRenderCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "render <page>",
		Short: "Render one page to stdout or a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := admaiora.NewServer(a.cfg,
				admaiora.WithLogger(a.logger),
				admaiora.WithChannel(pkgcontact.DiscardChannel{}),
			)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
				defer cancel()
				_ = srv.Shutdown(ctx)
			}()

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("render: %w", err)
				}
				defer f.Close()
				w = f
			}
			return renderPage(cmd.Context(), w, srv, args[0])
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func renderPage(ctx context.Context, w io.Writer, srv *admaiora.Server, slug string) error {
	if slug == contactcomponent.DefaultPageSlug {
		return srv.Contact().RenderStatic(ctx, w)
	}
	return srv.Pages().Render(ctx, w, slug, nil)
}
