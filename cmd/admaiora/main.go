// Command admaiora serves the Ad Maiora site and offers terminal helpers
// around the contact form.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-admaiora/internal/config"
	"github.com/goliatone/go-admaiora/internal/logging"
)

// app carries state shared by every subcommand once PersistentPreRunE ran.
type app struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "admaiora",
		Short:         "Ad Maiora procurement consultancy site",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", os.Getenv("ADMAIORA_CONFIG"), "YAML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newServeCmd(a),
		newContactCmd(a),
		newRenderCmd(a),
		newSchemaCmd(a),
	)
	return root
}

func (a *app) init() error {
	if a.cfg != nil {
		return nil
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, level, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	logging.Verbose(level, a.verbose)

	a.cfg = cfg
	a.logger = logger
	return nil
}
