package main

import (
	"log/slog"
	"os"

	"github.com/dot5enko/blockframe/config"
	"github.com/dot5enko/blockframe/manager"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string

	cfg    config.Config
	logger *slog.Logger
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

func (a *app) managerConfig() manager.ManagerConfig {
	return manager.ManagerConfig{
		Logger:     a.logger,
		SkipVerify: !a.cfg.Verify,
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "blockframe",
		Short:         "Inspect the block layout of a columnar table",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a TOML config file")

	rootCmd.AddCommand(newDemoCmd(a))
	rootCmd.AddCommand(newRoundtripCmd(a))

	return rootCmd
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
