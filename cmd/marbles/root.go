package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"marbles/internal/engineconfig"
	"marbles/internal/env"
)

// options are the command line overrides applied on top of the preferences file.
type options struct {
	configPath string
	envFile    string
	seed       int64
	mobile     int
	fixed      int
	showFPS    bool
	showStats  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "marbles",
		Short:         "Marbles bouncing off the walls, each other and a few fixed obstacles.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := env.Load(opts.envFile); err != nil {
				return err
			}
			if path := os.Getenv(env.ConfigPath); path != "" && !cmd.Flags().Changed("config") {
				opts.configPath = path
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runGame(prefs)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", engineconfig.ConfigPath, "preferences file (.yaml or .json)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "file of KEY=VALUE environment defaults")
	root.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (0 keeps the configured seed)")
	root.Flags().IntVar(&opts.mobile, "mobile", -1, "number of mobile marbles (-1 keeps the configured count)")
	root.Flags().IntVar(&opts.fixed, "fixed", -1, "number of fixed marbles (-1 keeps the configured count)")
	root.Flags().BoolVar(&opts.showFPS, "fps", false, "show the FPS counter")
	root.Flags().BoolVar(&opts.showStats, "stats", false, "show marble counts and kinetic energy")

	root.AddCommand(newConfigCmd(opts))
	return root
}

// load reads the preferences file and applies environment overrides, then the
// flags that were set.
func (o *options) load(cmd *cobra.Command) (engineconfig.Prefs, error) {
	prefs, err := engineconfig.Load(o.configPath)
	if err != nil {
		return prefs, err
	}
	if v := os.Getenv(env.LogLevel); v != "" {
		prefs.Log.Level = v
	}
	if v := os.Getenv(env.Seed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return prefs, fmt.Errorf("%s: %w", env.Seed, err)
		}
		prefs.World.Seed = seed
	}
	if o.seed != 0 {
		prefs.World.Seed = o.seed
	}
	if o.mobile >= 0 {
		prefs.World.MobileCount = o.mobile
	}
	if o.fixed >= 0 {
		prefs.World.FixedCount = o.fixed
	}
	if cmd.Flags().Changed("fps") {
		prefs.Debug.ShowFPS = o.showFPS
	}
	if cmd.Flags().Changed("stats") {
		prefs.Debug.ShowStats = o.showStats
	}
	if err := prefs.Validate(); err != nil {
		return prefs, fmt.Errorf("%s: %w", o.configPath, err)
	}
	return prefs, nil
}
