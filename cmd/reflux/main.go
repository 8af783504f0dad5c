// reflux is a CLI for the reflected-light occultation solver: it inspects
// the change of basis and the illumination operator, and replays recorded
// fixture tables against the solver.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/katalvlaran/reflux/basis"
	"github.com/katalvlaran/reflux/illum"
	"github.com/katalvlaran/reflux/internal/config"
	"github.com/katalvlaran/reflux/internal/logger"
	"github.com/katalvlaran/reflux/replay"
)

// errCasesFailed signals a replay mismatch; it is reported by the summary,
// not as an error line.
var errCasesFailed = errors.New("replay cases failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 2
	}

	command, rest := args[0], args[1:]

	var err error
	switch command {
	case "basis":
		err = cmdBasis(rest, stdout, stderr)
	case "illum":
		err = cmdIllum(rest, stdout, stderr)
	case "replay":
		err = cmdReplay(ctx, rest, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 2
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errCasesFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `reflux - reflected-light occultation solver

Usage:
  reflux <command> [options]

Commands:
  basis  [-ydeg N] [-show a2|a2inv|full]   Show the change of basis
  illum  [-ydeg N] -b B -theta T          Print the illumination operator
  replay [-update] [-tol X] <table.yaml>...  Replay recorded fixture tables

Shared options:
  -config PATH   config file (default ./reflux.yaml, then the user config dir)
  -debug         debug logging
  -log-level L   debug, info, warn or error
  -log-file PATH also log JSON lines to a rotating file
  -workers N     concurrent cases (0 = GOMAXPROCS)

Examples:
  reflux basis -ydeg 2
  reflux illum -ydeg 1 -b 0.3 -theta 0.5
  reflux replay -tol 1e-10 testdata/*.yaml`)
}

// setup parses fs with the shared flags and returns the merged config and
// a logger writing to stderr.
func setup(fs *flag.FlagSet, args []string, stderr io.Writer) (*config.Config, *zap.Logger, error) {
	fs.SetOutput(stderr)
	f := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(f)
	if err != nil {
		return nil, nil, err
	}

	fileCfg := logger.FileConfig{}
	if cfg.Logging.LogFile != "" {
		fileCfg = logger.FileConfig{
			Path:       cfg.Logging.LogFile,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
			Compress:   cfg.Logging.Compress,
		}
	}

	return cfg, logger.New(cfg.Logging.Level, stderr, fileCfg), nil
}

func cmdBasis(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("basis", flag.ContinueOnError)
	show := fs.String("show", "", "Also print a2, a2inv or full")
	cfg, log, err := setup(fs, args, stderr)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	cob, err := basis.New(cfg.Solver.YDeg)
	if err != nil {
		return err
	}
	log.Debug("change of basis built", zap.Int("ydeg", cob.Degree()))

	fmt.Fprintf(stdout, "ydeg:  %d\n", cob.Degree())
	fmt.Fprintf(stdout, "N1:    %d\n", cob.N1())
	fmt.Fprintf(stdout, "N2:    %d\n", cob.N2())
	fmt.Fprintf(stdout, "A2:    %dx%d, %d nonzeros\n", cob.A2().Rows(), cob.A2().Cols(), cob.A2().NNZ())
	fmt.Fprintf(stdout, "A2Inv: %dx%d, %d nonzeros\n", cob.A2Inv().Rows(), cob.A2Inv().Cols(), cob.A2Inv().NNZ())

	switch *show {
	case "":
	case "a2":
		fmt.Fprint(stdout, cob.A2())
	case "a2inv":
		fmt.Fprint(stdout, cob.A2Inv())
	case "full":
		fmt.Fprint(stdout, cob.A2InvFull())
	default:
		return fmt.Errorf("unknown -show value %q", *show)
	}

	return nil
}

func cmdIllum(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("illum", flag.ContinueOnError)
	b := fs.Float64("b", 0, "Terminator semi-minor axis, in [-1, 1]")
	theta := fs.Float64("theta", 0, "Terminator rotation angle (radians)")
	cfg, log, err := setup(fs, args, stderr)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	op, err := illum.NewOperator[float64](cfg.Solver.YDeg)
	if err != nil {
		return err
	}
	op.Fill(*b, *theta)
	log.Debug("illumination operator filled",
		zap.Int("ydeg", op.Degree()),
		zap.Float64("b", *b),
		zap.Float64("theta", *theta),
	)

	fmt.Fprintf(stdout, "I (%dx%d), b=%g theta=%g\n", op.Rows(), op.Cols(), *b, *theta)
	data := op.Data()
	for i := 0; i < op.Rows(); i++ {
		for j := 0; j < op.Cols(); j++ {
			fmt.Fprintf(stdout, " %10.6f", data[i*op.Cols()+j])
		}
		fmt.Fprintln(stdout)
	}

	return nil
}

func cmdReplay(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	cfg, log, err := setup(fs, args, stderr)
	if err != nil {
		return err
	}
	defer logger.Sync(log)

	if fs.NArg() < 1 {
		return errors.New("usage: reflux replay [options] <table.yaml>")
	}

	runner := replay.NewRunner(
		replay.WithLogger(log),
		replay.WithCache(basis.NewCache()),
		replay.WithWorkers(cfg.Solver.Workers),
	)

	var failed int
	for _, path := range fs.Args() {
		tbl, err := replay.Load(path)
		if err != nil {
			return err
		}
		if cfg.Replay.Tolerance > 0 {
			tbl.Tolerance = cfg.Replay.Tolerance
		}

		sum, err := runner.Run(ctx, tbl)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		if cfg.Replay.Update {
			if err = tbl.Record(sum); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if err = tbl.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%s: recorded %d cases\n", path, len(sum.Results))
			continue
		}

		printSummary(stdout, path, sum)
		failed += sum.Failed
	}

	if failed > 0 {
		return errCasesFailed
	}

	return nil
}

func printSummary(w io.Writer, path string, sum *replay.Summary) {
	fmt.Fprintf(w, "%s (ydeg %d, tol %g)\n", path, sum.YDeg, sum.Tolerance)
	for i := range sum.Results {
		res := &sum.Results[i]
		verdict := "PASS"
		if !res.Passed(sum.Tolerance) {
			verdict = "FAIL"
		}

		detail := "unchecked"
		switch {
		case res.Err != nil:
			detail = res.Err.Error()
		case res.Checked:
			detail = fmt.Sprintf("dev %.3g", res.Deviation)
		}
		fmt.Fprintf(w, "  %s  %-28s %-34s %s\n", verdict, res.Name, res.Status, detail)
	}
	fmt.Fprintf(w, "  %d/%d passed, max deviation %.3g\n",
		len(sum.Results)-sum.Failed, len(sum.Results), sum.MaxDeviation)
}
