package main

import (
	"fmt"

	"github.com/danmuck/romonctl/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or validate romonctl config files",
	}

	var output string
	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config template with the defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.WriteTemplate(output, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote config template to %s\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVar(&output, "output", "romonctl.toml", "output path for the config template")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	validateCmd := &cobra.Command{
		Use:   "validate PATH",
		Short: "Validate an existing config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Load(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "validated config at %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
