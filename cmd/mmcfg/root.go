package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kspmm/mmcfg/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mmcfg",
	Short: "Validate Module Manager patch files",
	Long: `mmcfg parses Module Manager patch files (.cfg) for Kerbal Space Program,
reports syntax errors with their exact position and lints patches that
parse but will likely not do what their author meant.

Configuration is read from mmcfg.yaml in the working directory when present,
or from the file given with --config. Environment variables prefixed with
MMCFG_ override file settings (for example MMCFG_VALIDATE_FORMAT=github).`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with the status it asks for.
func Execute() {
	ctx, stop := cli.SignalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) || exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, "mmcfg:", err)
		}
	}
	os.Exit(cli.ExitCode(err))
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default mmcfg.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}
