package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kspmm/mmcfg/pkg/cli"
	"kspmm/mmcfg/pkg/mmcfg/ast"
	mmerrors "kspmm/mmcfg/pkg/mmcfg/errors"
	"kspmm/mmcfg/pkg/mmcfg/parser"
)

const stdinName = "<stdin>"

var fmtFlags struct {
	write bool
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Print a patch file in canonical form",
	Long: `Parse a patch file and print it in canonical form: one construct per
line, tab indentation and braces on their own lines. Comments are not
preserved. Use - to read from standard input.

Examples:
  # Print the formatted file
  mmcfg fmt GameData/MyMod/patch.cfg

  # Rewrite the file in place
  mmcfg fmt -w GameData/MyMod/patch.cfg

  # Format standard input
  cat patch.cfg | mmcfg fmt -`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtFlags.write, "write", "w", false, "write the result back to the file")
}

func runFmt(cmd *cobra.Command, args []string) error {
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	if path == "-" && fmtFlags.write {
		return cli.NewConfigError("write", "cannot write back to standard input")
	}

	p := parser.NewParser().WithMaxFileSize(a.cfg.Validate.MaxFileSize)

	var doc *ast.Document
	if path == "-" {
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read standard input: %w", readErr)
		}
		doc, err = p.ParseBytes(data, stdinName)
	} else {
		doc, err = p.Parse(path)
	}
	if err != nil {
		var syntaxErr *mmerrors.SyntaxError
		if errors.As(err, &syntaxErr) {
			return cli.NewExitError(cli.ExitInvalid, err)
		}
		return err
	}

	var buf bytes.Buffer
	if err := ast.Format(&buf, doc.Nodes); err != nil {
		return err
	}

	if !fmtFlags.write {
		_, err := a.out.Write(buf.Bytes())
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	a.logger.InfoContext(ctx, "file formatted", "file", path)
	return nil
}
