package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"kspmm/mmcfg/pkg/cli"
	"kspmm/mmcfg/pkg/history"
)

var historyFlags struct {
	limit int
	json  bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded validation runs",
	Long: `Show validation runs recorded in the history database.

Runs are recorded by validate and watch when history is enabled in the
configuration file.

Examples:
  # Last 20 runs
  mmcfg history

  # Failures of one run
  mmcfg history show 2b1c5f0e-...

  # Delete runs older than the retention period
  mmcfg history prune`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run and its failures",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than the retention period",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.PersistentFlags().BoolVar(&historyFlags.json, "json", false, "print JSON")
	historyCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "number of runs to list (0 for all)")
}

// historyStore opens the configured store, failing when history is
// disabled.
func historyStore(a *app) (history.Store, error) {
	if !a.cfg.History.Enabled {
		return nil, cli.NewConfigError("history.enabled", "run history is disabled")
	}
	return a.openHistory()
}

type runJSON struct {
	ID         string            `json:"id"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Files      int               `json:"files"`
	Failures   int               `json:"failures"`
	Warnings   int               `json:"warnings"`
	Details    []history.Failure `json:"details,omitempty"`
}

func toRunJSON(run *history.Run) runJSON {
	return runJSON{
		ID:         run.ID,
		StartedAt:  run.StartedAt.UTC(),
		FinishedAt: run.FinishedAt.UTC(),
		Files:      run.Files,
		Failures:   run.Failures,
		Warnings:   run.Warnings,
		Details:    run.Details,
	}
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}
	store, err := historyStore(a)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(ctx, historyFlags.limit)
	if err != nil {
		return err
	}

	if historyFlags.json {
		out := make([]runJSON, len(runs))
		for i, run := range runs {
			out[i] = toRunJSON(run)
		}
		return cli.WriteJSON(a.out, out, true)
	}

	if len(runs) == 0 {
		fmt.Fprintln(a.out, "No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tFILES\tFAILURES\tWARNINGS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.StartedAt.Local().Format(time.DateTime),
			run.Duration().Round(time.Millisecond),
			run.Files, run.Failures, run.Warnings)
	}
	return w.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}
	store, err := historyStore(a)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(ctx, args[0])
	if errors.Is(err, history.ErrRunNotFound) {
		return fmt.Errorf("run %s not found", args[0])
	}
	if err != nil {
		return err
	}

	if historyFlags.json {
		return cli.WriteJSON(a.out, toRunJSON(run), true)
	}

	fmt.Fprintf(a.out, "Run:      %s\n", run.ID)
	fmt.Fprintf(a.out, "Started:  %s\n", run.StartedAt.Local().Format(time.DateTime))
	fmt.Fprintf(a.out, "Duration: %s\n", run.Duration().Round(time.Millisecond))
	fmt.Fprintf(a.out, "Files:    %d\n", run.Files)
	fmt.Fprintf(a.out, "Failures: %d\n", run.Failures)
	fmt.Fprintf(a.out, "Warnings: %d\n", run.Warnings)
	if len(run.Details) > 0 {
		fmt.Fprintln(a.out)
		for _, f := range run.Details {
			if f.Line > 0 {
				fmt.Fprintf(a.out, "%s:%d:%d: %s\n", f.Path, f.Line, f.Column, f.Message)
			} else {
				fmt.Fprintf(a.out, "%s: %s\n", f.Path, f.Message)
			}
		}
	}
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}
	store, err := historyStore(a)
	if err != nil {
		return err
	}
	defer store.Close()

	pruner := history.NewPruner(store, a.cfg.History.Retention)
	deleted, err := pruner.Prune(ctx)
	if err != nil {
		return err
	}

	if historyFlags.json {
		return cli.WriteJSON(a.out, map[string]int64{"deleted": deleted}, true)
	}
	fmt.Fprintf(a.out, "Deleted %d runs older than %s.\n", deleted, pruner.Retention())
	return nil
}
