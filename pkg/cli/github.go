package cli

import (
	"fmt"
	"io"
	"strings"

	"kspmm/mmcfg/pkg/check"
)

// GitHubFormatter prints GitHub Actions workflow commands, which the
// Actions runner turns into annotations on the pull request:
//
//	::error file=GameData/Mod/parts.cfg,line=3,col=11::unexpected "{", expected "]"
type GitHubFormatter struct{}

// FormatReport writes one workflow command per finding.
func (f *GitHubFormatter) FormatReport(w io.Writer, report *check.Report) error {
	for _, file := range report.Files {
		if file.Failed() && !isStrictFailure(file) {
			loc := file.Location()
			message := file.Message()
			if loc.Line == 0 {
				message = file.Err.Error()
			}
			if err := writeCommand(w, "error", file.Path, loc.Line, loc.Column, message); err != nil {
				return err
			}
			continue
		}

		command := "warning"
		if report.Strict {
			command = "error"
		}
		for _, warning := range file.Warnings {
			message := fmt.Sprintf("%s [%s]", warning.Message, warning.Rule)
			if err := writeCommand(w, command, file.Path, warning.Location.Line, warning.Location.Column, message); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeCommand(w io.Writer, command, file string, line, col int, message string) error {
	var sb strings.Builder
	sb.WriteString("::")
	sb.WriteString(command)
	sb.WriteString(" file=")
	sb.WriteString(escapeProperty(file))
	if line > 0 {
		fmt.Fprintf(&sb, ",line=%d,col=%d", line, col)
	}
	sb.WriteString("::")
	sb.WriteString(escapeData(message))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

var (
	dataEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")

	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

// escapeData escapes a workflow command message.
func escapeData(s string) string {
	return dataEscaper.Replace(s)
}

// escapeProperty escapes a workflow command property value.
func escapeProperty(s string) string {
	return propertyEscaper.Replace(s)
}
