package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"kspmm/mmcfg/pkg/check"
	"kspmm/mmcfg/pkg/cli"
	"kspmm/mmcfg/pkg/mmcfg"
	"kspmm/mmcfg/pkg/mmcfg/ast"
	"kspmm/mmcfg/pkg/mmcfg/parser"
)

var needsFlags struct {
	mods        string
	unsatisfied bool
	format      string
}

var needsCmd = &cobra.Command{
	Use:   "needs [paths...]",
	Short: "List :NEEDS clauses and evaluate them",
	Long: `List every :NEEDS clause in the given patch files and evaluate it
against a set of installed mods.

Installed mods come from --mods, or from the mods list in the
configuration file when the flag is not given. Mod names are
case-sensitive.

Examples:
  # Show which patches apply with RealFuels installed
  mmcfg needs --mods RealFuels GameData/MyMod

  # Only the clauses that would not be satisfied
  mmcfg needs --mods RealFuels,B9PartSwitch --unsatisfied GameData/`,
	RunE: runNeeds,
}

func init() {
	rootCmd.AddCommand(needsCmd)

	needsCmd.Flags().StringVar(&needsFlags.mods, "mods", "", "comma separated installed mods (default from config)")
	needsCmd.Flags().BoolVar(&needsFlags.unsatisfied, "unsatisfied", false, "only list clauses that are not satisfied")
	needsCmd.Flags().StringVar(&needsFlags.format, "format", "text", "output format: text, json")
}

type needsEntry struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Kind      string `json:"kind"`
	Subject   string `json:"subject"`
	Needs     string `json:"needs"`
	Satisfied bool   `json:"satisfied"`
}

type needsOutput struct {
	Mods    []string     `json:"mods"`
	Clauses []needsEntry `json:"clauses"`
}

func runNeeds(cmd *cobra.Command, args []string) error {
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}

	if needsFlags.format != "text" && needsFlags.format != "json" {
		return cli.NewConfigError("format", fmt.Sprintf("unknown format %q (want text or json)", needsFlags.format))
	}

	mods := a.cfg.Mods
	if needsFlags.mods != "" {
		mods = splitList(needsFlags.mods)
	}
	installed := ast.NewInstalled(mods...)

	files, err := check.Discover(defaultPaths(args), a.cfg.Validate.Extensions)
	if err != nil {
		return err
	}

	p := parser.NewParser().WithMaxFileSize(a.cfg.Validate.MaxFileSize)
	out := needsOutput{Mods: installed.Names(), Clauses: []needsEntry{}}
	failed := 0

	for _, file := range files {
		doc, err := p.Parse(file)
		if err != nil {
			failed++
			fmt.Fprintln(a.errOut, err)
			continue
		}
		for _, use := range mmcfg.CollectNeeds(doc, installed) {
			if needsFlags.unsatisfied && use.Satisfied {
				continue
			}
			out.Clauses = append(out.Clauses, needsEntry{
				File:      use.Location.File,
				Line:      use.Location.Line,
				Column:    use.Location.Column,
				Kind:      string(use.Kind),
				Subject:   use.Subject,
				Needs:     use.Needs.Expression(),
				Satisfied: use.Satisfied,
			})
		}
	}

	if needsFlags.format == "json" {
		if err := cli.WriteJSON(a.out, out, true); err != nil {
			return err
		}
	} else {
		for _, entry := range out.Clauses {
			state := "satisfied"
			if !entry.Satisfied {
				state = "unsatisfied"
			}
			fmt.Fprintf(a.out, "%s:%d:%d: %s %s :NEEDS[%s] %s\n",
				entry.File, entry.Line, entry.Column, entry.Kind, entry.Subject, entry.Needs, state)
		}
	}

	a.logger.InfoContext(ctx, "needs listed", "files", len(files), "clauses", len(out.Clauses), "failed", failed)

	if failed > 0 {
		return cli.NewExitError(cli.ExitInvalid, nil)
	}
	return nil
}
