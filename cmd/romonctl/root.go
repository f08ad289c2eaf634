package main

import (
	"github.com/danmuck/romonctl/internal/config"
	"github.com/danmuck/romonctl/internal/logging"
	"github.com/spf13/cobra"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	configPath string
	logLevel   string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.DefaultConfig()}
	root := &cobra.Command{
		Use:               "romonctl",
		Short:             "Decode MikroTik RoMON frames from captures",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a romonctl TOML config")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (trace|debug|info|warn|error|off)")

	root.AddGroup(&cobra.Group{ID: "decode", Title: "Decoding:"})
	root.AddCommand(newDumpCmd(a), newDecodeCmd(a), newConfigCmd())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	logging.ConfigureRuntime()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}
	// An unset level leaves the ROMONCTL_LOG_LEVEL override in place.
	if a.cfg.LogLevel == "" {
		return nil
	}
	return logging.SetLevel(a.cfg.LogLevel)
}
