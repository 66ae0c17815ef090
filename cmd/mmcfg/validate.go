package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kspmm/mmcfg/pkg/check"
	"kspmm/mmcfg/pkg/cli"
	"kspmm/mmcfg/pkg/history"
)

var validateFlags struct {
	format    string
	jobs      int
	strict    bool
	disable   string
	noHistory bool
}

var validateCmd = &cobra.Command{
	Use:   "validate [paths...]",
	Short: "Validate patch files",
	Long: `Parse and lint Module Manager patch files.

Each path may be a file or a directory. Directories are searched
recursively for files with the configured extensions (.cfg by default);
files named directly are always checked. With no paths the working
directory is searched.

The command exits 0 when every file passes, 2 when any file fails and 1
when the run itself could not complete.

Examples:
  # Validate a GameData folder
  mmcfg validate GameData/

  # Treat lint warnings as errors
  mmcfg validate --strict GameData/MyMod

  # Machine readable output
  mmcfg validate --format json patches/

  # Skip a lint rule
  mmcfg validate --disable needs-tautology GameData/`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateFlags.format, "format", "f", "", "output format: auto, text, github, json, pretty (default from config)")
	validateCmd.Flags().IntVarP(&validateFlags.jobs, "jobs", "j", 0, "files parsed concurrently (default from config)")
	validateCmd.Flags().BoolVar(&validateFlags.strict, "strict", false, "treat lint warnings as errors")
	validateCmd.Flags().StringVar(&validateFlags.disable, "disable", "", "comma separated lint rules to skip")
	validateCmd.Flags().BoolVar(&validateFlags.noHistory, "no-history", false, "do not record this run")
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}

	formatter, err := a.formatter(validateFlags.format)
	if err != nil {
		return err
	}

	files, err := check.Discover(defaultPaths(args), a.cfg.Validate.Extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		a.logger.WarnContext(ctx, "no patch files found", "paths", defaultPaths(args))
	}

	var store history.Store
	if !validateFlags.noHistory {
		if store, err = a.openHistory(); err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}
	}

	runner := a.newRunner(runnerOptions{
		jobs:     validateFlags.jobs,
		strict:   validateFlags.strict,
		disabled: splitList(validateFlags.disable),
	})

	report, err := runner.Run(ctx, files)
	if err != nil {
		return fmt.Errorf("validation interrupted: %w", err)
	}

	if err := formatter.FormatReport(a.out, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	a.recordRun(ctx, store, report)

	summary := report.Summary()
	a.logger.InfoContext(ctx, "validation finished",
		"files", summary.Files,
		"failures", summary.Failures,
		"warnings", summary.Warnings,
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)

	if !report.OK() {
		return cli.NewExitError(cli.ExitInvalid, nil)
	}
	return nil
}
