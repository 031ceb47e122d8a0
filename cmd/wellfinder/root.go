package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wellfinder/internal/config"
	logpkg "github.com/kailas-cloud/wellfinder/internal/logger"
	"github.com/kailas-cloud/wellfinder/internal/metrics"
	"github.com/kailas-cloud/wellfinder/internal/version"
)

// app is the state shared by every subcommand once PersistentPreRunE ran.
type app struct {
	cfgPath string
	env     string
	cfg     config.Config
	logger  *zap.Logger
}

func rootCMD() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "wellfinder",
		Short:         "Merge county well records and find the wells nearest a location",
		Version:       version.String(),
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
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd.Context(), "")
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "config file (default is config/<ENV>.yaml)")
	root.PersistentFlags().StringVar(&a.env, "env", "", "environment name (default is $ENV or local)")

	root.AddCommand(runCMD(a), serveCMD(a))
	return root
}

// init loads configuration and builds the logger.
func (a *app) init() error {
	if a.env == "" {
		a.env = config.GetEnv()
	}

	var err error
	if a.cfgPath != "" {
		a.cfg, err = config.LoadFile(a.cfgPath)
	} else {
		a.cfg, err = config.Load(a.env)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	a.logger, err = logpkg.NewLogger(a.env, a.cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	metrics.Register()
	return nil
}
