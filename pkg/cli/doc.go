/*
Package cli provides command-line helpers for the mmcfg command.

Output Formatting:

Validation reports can be written in several formats. "auto" resolves to
"github" inside GitHub Actions and to "text" elsewhere:

	format, err := cli.ParseFormat(cfg.Validate.Format)
	if err != nil {
		return err
	}
	format = cli.ResolveFormat(format, os.LookupEnv)
	if err := cli.NewFormatter(format).FormatReport(os.Stdout, report); err != nil {
		return err
	}

Exit Status:

Commands return an *ExitError to choose the process exit status; main
passes the error returned by the root command to ExitCode.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()
*/
package cli
