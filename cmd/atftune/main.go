// Command atftune is a minimal demonstration of package tuner: it tunes the
// toy WPT/LS tiling scenario in internal/demo and prints the best
// configuration found.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atfgo/atf/internal/demo"
	"github.com/atfgo/atf/pkg/abortcondition"
	"github.com/atfgo/atf/pkg/logger"
	"github.com/atfgo/atf/pkg/paramset"
	"github.com/atfgo/atf/pkg/searchtechnique"
	"github.com/atfgo/atf/pkg/tuner"
	"github.com/atfgo/atf/pkg/utils"
)

func main() {
	var (
		technique   = flag.String("technique", "exhaustive", "search technique: exhaustive or random")
		maxEvals    = flag.Int64("max-evaluations", 0, "abort after this many evaluations (0 = until search space exhausted)")
		maxDuration = flag.Duration("max-duration", 0, "abort after this wall-clock duration (0 = disabled)")
		logLevel    = flag.String("log-level", "info", "log level: debug, info, warn, error")
		logFile     = flag.String("log-file", "", "path to write a JSON-lines evaluation log")
		paramFile   = flag.String("params", "", "optional paramset YAML file, overrides the built-in demo scenario")
		seed        = flag.Int64("seed", 0, "random seed (0 = derived from current time)")
	)
	flag.Parse()

	log := logger.New(*logLevel, os.Stdout)
	logger.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := tuner.New().WithLogger(log)

	if *paramFile != "" {
		file, err := paramset.Load(*paramFile)
		if err != nil {
			log.Error("failed to load parameter set", "error", err)
			os.Exit(1)
		}
		params, err := file.Parameters()
		if err != nil {
			log.Error("failed to build parameters", "error", err)
			os.Exit(1)
		}
		t.TuningParameters(params...)
	} else {
		t.TuningParameters(demo.Parameters()...)
	}

	rng := utils.NewRandSource(*seed)
	switch *technique {
	case "exhaustive":
		t.WithTechnique1D(searchtechnique.NewExhaustive())
	case "random":
		t.WithTechnique(searchtechnique.NewRandom(rng))
	default:
		log.Error("unknown technique", "technique", *technique)
		os.Exit(1)
	}

	if *logFile != "" {
		t.LogFile(*logFile)
	}

	var abort abortcondition.Condition
	switch {
	case *maxEvals > 0 && *maxDuration > 0:
		abort = abortcondition.NewOr(abortcondition.NewEvaluations(*maxEvals), abortcondition.NewDuration(*maxDuration))
	case *maxEvals > 0:
		abort = abortcondition.NewEvaluations(*maxEvals)
	case *maxDuration > 0:
		abort = abortcondition.NewDuration(*maxDuration)
	}

	cost := demo.CostFunction(rng)
	start := time.Now()
	best, bestCost, found, td, err := t.Tune(ctx, cost, abort)
	elapsed := time.Since(start)

	if err != nil && ctx.Err() == nil {
		log.Error("tuning run failed", "error", err)
		os.Exit(1)
	}
	if !found {
		fmt.Println("no valid configuration found")
		os.Exit(1)
	}

	fmt.Printf("best configuration: %v\n", best)
	fmt.Printf("best cost: %g\n", bestCost)
	fmt.Printf("evaluations: %d (valid: %d)\n", td.NumEvaluated, td.NumEvaluatedValid)
	fmt.Printf("elapsed: %s\n", utils.FormatDuration(elapsed))
}
