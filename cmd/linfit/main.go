// Command linfit fits y = a + b*x to two numeric series and prints a and b.
//
// Usage:
//
//	linfit [flags] [X_LOCATOR Y_LOCATOR]
//
// Without positional arguments the locators come from URL_X and URL_Y, read
// from the environment or a .env file. Exit codes: 0 success, 1 usage or
// configuration error, 2 resolution, 3 parsing, 4 validation, 5 solving.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/arloliu/linfit"
	"github.com/arloliu/linfit/config"
	"github.com/arloliu/linfit/internal/cache"
	"github.com/arloliu/linfit/internal/logging"
	"github.com/arloliu/linfit/report"
)

const (
	exitOK = iota
	exitUsage
	exitResolve
	exitParse
	exitValidate
	exitSolve
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(stderr, errorMessage(err))
	}

	return exitCode(err)
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "linfit [flags] [X_LOCATOR Y_LOCATOR]",
		Short: "Fit a straight line to two numeric series with ordinary least squares",
		Long: "linfit reads two whitespace-separated numeric series from local files or\n" +
			"http(s) URLs, fits y = a + b*x by ordinary least squares and prints a and b.\n\n" +
			"Locators default to the URL_X and URL_Y environment variables.",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("expected 0 or 2 locators, got %d", len(args))
			}

			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fit(cmd, args, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	config.RegisterFlags(flags)
	flags.StringSlice("env-file", nil, "read environment defaults from these files (default .env if present)")

	return cmd
}

func fit(cmd *cobra.Command, args []string, stdout, stderr io.Writer) error {
	envFiles, err := cmd.Flags().GetStringSlice("env-file")
	if err != nil {
		return err
	}

	cfg, err := config.Load(cmd.Flags(), envFiles...)
	if err != nil {
		return err
	}
	if len(args) == 2 {
		cfg.XLocator, cfg.YLocator = args[0], args[1]
	}

	logger := logging.WithRun(logging.New(stderr, cfg.Level()), uuid.NewString())
	logger.WithFields(logrus.Fields{
		"x": cfg.XLocator,
		"y": cfg.YLocator,
	}).Debug("starting fit")

	opts := []linfit.Option{
		linfit.WithLogger(logger),
		linfit.WithTimeout(cfg.Timeout),
		linfit.WithMaxPayloadBytes(cfg.MaxPayloadBytes),
	}
	if cfg.CacheDir != "" {
		c, err := cache.New(cfg.CacheDir, cache.WithTTL(cfg.CacheTTL), cache.WithLogger(logger))
		if err != nil {
			return err
		}
		opts = append(opts, linfit.WithCache(c))
	}

	rep, err := linfit.Fit(cmd.Context(), cfg.XLocator, cfg.YLocator, opts...)
	if err != nil {
		return err
	}

	if err := writeReport(stdout, rep, cfg.Output); err != nil {
		return err
	}
	if cfg.ReportFile != "" {
		return writeReportFile(cfg.ReportFile, rep)
	}

	return nil
}

func writeReport(w io.Writer, rep *report.Report, output string) error {
	if output == config.OutputJSON {
		return rep.WriteJSON(w)
	}

	return rep.WriteText(w)
}

func writeReportFile(path string, rep *report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := rep.WriteJSON(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write report file: %w", err)
	}

	return f.Close()
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var se *linfit.StageError
	if !errors.As(err, &se) {
		return exitUsage
	}

	switch se.Stage {
	case linfit.StageResolve:
		return exitResolve
	case linfit.StageParse:
		return exitParse
	case linfit.StageValidate:
		return exitValidate
	case linfit.StageSolve:
		return exitSolve
	default:
		return exitUsage
	}
}

func errorMessage(err error) string {
	var se *linfit.StageError
	if !errors.As(err, &se) {
		return "linfit: " + err.Error()
	}

	if se.Series != "" {
		return fmt.Sprintf("linfit: %s failed: series %s: %v", se.Stage, se.Series, se.Err)
	}

	return fmt.Sprintf("linfit: %s failed: %v", se.Stage, se.Err)
}
