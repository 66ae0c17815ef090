package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"kspmm/mmcfg/pkg/config"
)

// testConfig returns defaults with deterministic output and history in a
// temporary database.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Validate.Format = "text"
	cfg.Validate.Jobs = 2
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	return cfg
}

// executeCommand runs the root command with args against cfg and returns
// what it wrote to stdout and stderr.
func executeCommand(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, string, error) {
	t.Helper()
	return executeCommandContext(t, context.Background(), cfg, stdin, args...)
}

func executeCommandContext(t *testing.T, ctx context.Context, cfg *config.Config, stdin string, args ...string) (string, string, error) {
	t.Helper()

	config.SetConfig(cfg)
	t.Cleanup(func() { config.SetConfig(nil) })
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag to its default so commands do not see
// values left over from an earlier test.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
