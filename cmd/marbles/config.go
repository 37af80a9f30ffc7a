package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"marbles/internal/engineconfig"
)

func newConfigCmd(opts *options) *cobra.Command {
	config := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the preferences file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default preferences to the config path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := engineconfig.Save(opts.configPath, engineconfig.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.configPath)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective preferences as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := engineconfig.Load(opts.configPath)
			if err != nil {
				return err
			}
			out, err := engineconfig.Marshal(prefs)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	config.AddCommand(initCmd, show)
	return config
}
