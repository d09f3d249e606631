package main

import (
	"fmt"
	"os"

	"example.com/lineedit/internal/app"
	"example.com/lineedit/pkg/config"
	"example.com/lineedit/pkg/logs"
	"example.com/lineedit/pkg/script"
	"github.com/spf13/cobra"
)

// Version info (set by ldflags)
var version = "dev"

type options struct {
	configPath string
	debug      bool
	seedPath   string
	number     bool
	color      bool
	view       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "lineedit",
		Short: "Apply line editing scripts to text buffers",
		Long: `lineedit runs ed-style editing scripts against an in-memory buffer of lines.

  lineedit run SCRIPT [--seed FILE] [--number] [--view]
  lineedit check SCRIPT`,
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file path (default ~/.lineedit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(newRunCmd(opts), newCheckCmd())
	return rootCmd
}

// newRunCmd creates the run subcommand.
func newRunCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run SCRIPT",
		Short: "Run a script and print the resulting buffer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("number") {
				cfg.Output.Number = opts.number
			}
			if cmd.Flags().Changed("color") {
				cfg.Output.Color = opts.color
			}

			r := app.New(cfg)
			r.Logger = newLogger(cfg, opts.debug)
			defer r.Logger.Close()

			runErr := r.RunFiles(args[0], opts.seedPath, cmd.OutOrStdout())
			if opts.view && r.Journal.Len() > 0 {
				if err := r.View(); err != nil {
					return err
				}
			}
			return runErr
		},
	}
	cmd.Flags().StringVar(&opts.seedPath, "seed", "", "file whose lines fill the buffer before the script runs")
	cmd.Flags().BoolVar(&opts.number, "number", false, "prefix output lines with numbers and mark the cursor line")
	cmd.Flags().BoolVar(&opts.color, "color", false, "highlight the cursor line in numbered output")
	cmd.Flags().BoolVar(&opts.view, "view", false, "browse every step in an interactive viewer")
	return cmd
}

// newCheckCmd creates the check subcommand.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check SCRIPT",
		Short: "Parse a script without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			cmds, err := script.Parse(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d commands\n", args[0], len(cmds))
			return nil
		},
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}

// newLogger enables logging from the config file, the environment or --debug.
func newLogger(cfg *config.Config, debug bool) *logs.Logger {
	level := cfg.Log.Level
	if debug {
		level = "debug"
	}
	if cfg.Log.Enabled || debug {
		return logs.New(logs.Options{File: cfg.Log.File, Level: level})
	}
	return logs.NewFromEnv()
}
