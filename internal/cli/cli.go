package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/springgrid/internal/app"
	"github.com/vk/springgrid/internal/record"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("springgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
springgrid - counts damaged-spring arrangements in condition records.

Usage:
  springgrid [options] [PATH]

Arguments:
  PATH
    A puzzle file with one "<cells> <groups>" record per line ("-" reads stdin),
    an .hcl/.yaml manifest, or a directory of manifests.

Options:
`)
		flagSet.PrintDefaults()
	}

	inputFlag := flagSet.String("input", "", "Path to the puzzle file, manifest, or manifest directory.")
	iFlag := flagSet.String("i", "", "Path to the puzzle file, manifest, or manifest directory (shorthand).")
	unfoldFlag := flagSet.Bool("unfold", false, "Unfold every record before counting (plain puzzle files only).")
	foldsFlag := flagSet.Int("folds", record.DefaultFolds, "Number of copies used by -unfold.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent workers per puzzle. 0 uses one per CPU.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	reportURLFlag := flagSet.String("report-url", "", "socket.io endpoint to publish the results to. Empty disables reporting.")
	reportEventFlag := flagSet.String("report-event", "", "Event name used for the published results.")
	reportTimeoutFlag := flagSet.Duration("report-timeout", 0, "How long to wait for the report acknowledgement.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *inputFlag != "" {
		path = *inputFlag
	} else if *iFlag != "" {
		path = *iFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Input path determined.", "path", path)

	if path == "" {
		slog.Debug("No input path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	foldsSet := false
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "folds" {
			foldsSet = true
		}
	})
	if foldsSet && !*unfoldFlag {
		return nil, false, &ExitError{Code: 2, Message: "-folds requires -unfold"}
	}
	folds := 1
	if *unfoldFlag {
		if *foldsFlag < 1 {
			return nil, false, &ExitError{Code: 2, Message: "invalid folds: must be at least 1"}
		}
		folds = *foldsFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		InputPath:     path,
		Folds:         folds,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		WorkerCount:   *workersFlag,
		ReportURL:     *reportURLFlag,
		ReportEvent:   *reportEventFlag,
		ReportTimeout: *reportTimeoutFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
