package cli

import (
	"fmt"
	"io"

	"kspmm/mmcfg/pkg/check"
	"kspmm/mmcfg/pkg/mmcfg/lint"
)

// TextFormatter prints one line per finding, in the form compilers use:
//
//	GameData/Mod/parts.cfg:3:11: unexpected "{", expected "]"
//	GameData/Mod/probe.cfg:1:1: warning: node "PART" sets more than one pass: :FIRST :FINAL [multiple-passes]
type TextFormatter struct{}

// FormatReport writes the failures and warnings of report.
func (f *TextFormatter) FormatReport(w io.Writer, report *check.Report) error {
	for _, file := range report.Files {
		if err := f.formatFile(w, file, report.Strict); err != nil {
			return err
		}
	}
	return nil
}

func (f *TextFormatter) formatFile(w io.Writer, file *check.FileResult, strict bool) error {
	if file.Failed() && !isStrictFailure(file) {
		if syntaxErr := file.SyntaxError(); syntaxErr != nil {
			_, err := fmt.Fprintln(w, syntaxErr.Error())
			return err
		}
		_, err := fmt.Fprintf(w, "%s: %v\n", file.Path, file.Err)
		return err
	}

	for _, warning := range file.Warnings {
		if err := writeTextWarning(w, warning, strict); err != nil {
			return err
		}
	}
	return nil
}

func writeTextWarning(w io.Writer, warning lint.Warning, strict bool) error {
	severity := "warning: "
	if strict {
		severity = ""
	}
	_, err := fmt.Fprintf(w, "%s: %s%s [%s]\n", warning.Location, severity, warning.Message, warning.Rule)
	return err
}
