package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"time"

	"github.com/WinPooh32/either/lint"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./cmd/eitherlint --dir <module dir> --pattern ./...

var (
	dirFlag = cli.StringFlag{
		Name:  "dir",
		Usage: "go module dir, the current directory if empty",
		Value: "",
	}
	patternFlag = cli.StringSliceFlag{
		Name:  "pattern",
		Usage: "package patterns to check",
		Value: cli.NewStringSlice("./..."),
	}
	targetFlag = cli.StringSliceFlag{
		Name:  "target",
		Usage: "import paths of packages providing the checked Either type",
		Value: cli.NewStringSlice(lint.DefaultTarget),
	}
	jobsFlag = cli.IntFlag{
		Name:  "jobs",
		Usage: "parallel jobs number, the number of CPUs if 0",
		Value: 0,
	}
	formatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "output format: text or json",
		Value: "text",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "log level: debug, info, warn or error",
		Value: "info",
	}
)

func main() {
	app := newApp()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "eitherlint",
		Usage: "reports MustRight and MustLeft calls not guarded by IsRight or IsLeft",
		Flags: []cli.Flag{
			&dirFlag,
			&patternFlag,
			&targetFlag,
			&jobsFlag,
			&formatFlag,
			&logLevelFlag,
		},
		Action: run,
	}
}

func run(cctx *cli.Context) error {
	format := cctx.String(formatFlag.Name)
	if format != "text" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	level, err := parseLevel(cctx.String(logLevelFlag.Name))
	if err != nil {
		return err
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	}))

	findings, err := check(cctx, logger)
	if err != nil {
		return err
	}

	if err := write(cctx.App.Writer, format, findings); err != nil {
		return fmt.Errorf("write findings: %w", err)
	}

	if len(findings) > 0 {
		return cli.Exit("", 1)
	}

	return nil
}

func check(cctx *cli.Context, logger *slog.Logger) ([]lint.Finding, error) {
	ctx := cctx.Context

	checker, err := lint.NewChecker(
		lint.WithTargets(cctx.StringSlice(targetFlag.Name)...),
		lint.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("new checker: %w", err)
	}

	_, err = checker.Load(ctx, cctx.String(dirFlag.Name), cctx.StringSlice(patternFlag.Name)...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	var (
		findings []lint.Finding
		checkErr error
	)

	for res := range checker.Check(ctx, cctx.Int(jobsFlag.Name)) {
		res.Consume(
			func(err error) { checkErr = err },
			func(f lint.Finding) { findings = append(findings, f) },
		)
	}

	if checkErr != nil {
		return nil, fmt.Errorf("check: %w", checkErr)
	}

	slices.SortFunc(findings, lint.Compare)

	logger.Info("check is done", "findings", len(findings))

	return findings, nil
}

func write(w io.Writer, format string, findings []lint.Finding) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if findings == nil {
			findings = []lint.Finding{}
		}

		return enc.Encode(findings)
	}

	for _, f := range findings {
		if _, err := fmt.Fprintln(w, f); err != nil {
			return err
		}
	}

	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return level, fmt.Errorf("parse log level: %w", err)
	}

	return level, nil
}
