// Package main is the entry point for the chatbot monitoring simulation.
//
// It drives a simulated chatbot for a fixed number of interactions and runs
// every reply through the monitor: latency alerts, error alerts, PII
// detection and one InteractionLog line per non-error interaction.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/compresr/chatbot-ops/internal/config"
	"github.com/compresr/chatbot-ops/internal/monitoring"
	"github.com/compresr/chatbot-ops/internal/simulator"
)

func main() {
	config.LoadEnvFiles()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, simulator.Sleep))
}

// run executes a simulation and returns the process exit code. sleep backs
// both the simulated response delay and the pause between interactions.
func run(ctx context.Context, args []string, stdout, logOut io.Writer, sleep simulator.SleepFunc) int {
	fs := flag.NewFlagSet("chatbot-monitor", flag.ContinueOnError)
	fs.SetOutput(logOut)
	configPath := fs.String("config", "", "path to config file")
	debug := fs.Bool("debug", false, "enable debug logging")
	iterations := fs.Int("iterations", -1, "override simulator.iterations")
	seed := fs.Uint64("seed", 0, "override simulator.seed (0 keeps the config value)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	setupLogging(logOut, *debug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return 1
	}
	if *iterations >= 0 {
		cfg.Simulator.Iterations = *iterations
	}
	if *seed != 0 {
		cfg.Simulator.Seed = *seed
	}

	sink, err := monitoring.New(cfg.Monitoring.Log)
	if err != nil {
		log.Error().Err(err).Msg("failed to open monitoring log")
		return 1
	}
	defer sink.Close()

	monitor, tracker, metrics, err := buildMonitor(cfg, sink)
	if err != nil {
		log.Error().Err(err).Msg("failed to build monitor")
		return 1
	}
	defer tracker.Close()

	rng := newRand(cfg.Simulator.Seed)
	generator, err := simulator.NewWeightedGenerator(cfg.Simulator.ScenarioTable(), rng)
	if err != nil {
		log.Error().Err(err).Msg("invalid scenarios")
		return 1
	}

	runner := simulator.NewRunner(simulator.RunnerConfig{
		Iterations: cfg.Simulator.Iterations,
		Interval:   cfg.Simulator.Interval,
		Queries:    cfg.Simulator.Queries,
		Out:        stdout,
	}, simulator.New(generator, sleep), monitor, rng, sleep)

	fmt.Fprintln(stdout, "Starting chatbot monitoring simulation...")

	code := 0
	summary, err := runner.Run(ctx)
	if err != nil {
		log.Warn().Err(err).Int("completed", summary.Interactions).Msg("simulation interrupted")
		code = 130
	}

	if cfg.Monitoring.MetricsPath != "" {
		if err := metrics.WriteTextfile(cfg.Monitoring.MetricsPath); err != nil {
			log.Error().Err(err).Str("path", cfg.Monitoring.MetricsPath).Msg("failed to write metrics")
		}
	}

	log.Debug().
		Int("interactions", summary.Interactions).
		Int("errors", summary.Errors).
		Int("high_latency", summary.HighLatency).
		Int("pii_responses", summary.PIIResponses).
		Int("tracked", tracker.Count()).
		Msg("simulation summary")

	fmt.Fprintf(stdout, "\nSimulation finished. Check '%s' for detailed logs.\n", cfg.Monitoring.Log.File)
	return code
}

// buildMonitor wires detector, metrics and tracker into a Monitor.
func buildMonitor(cfg *config.Config, sink *monitoring.Logger) (*monitoring.Monitor, *monitoring.Tracker, *monitoring.Metrics, error) {
	detector, err := cfg.PII.Detector()
	if err != nil {
		return nil, nil, nil, err
	}

	tracker, err := monitoring.NewTracker(cfg.Monitoring.Telemetry, sink)
	if err != nil {
		return nil, nil, nil, err
	}

	metrics := monitoring.NewMetrics()

	monitor := monitoring.NewMonitor(sink, monitoring.MonitorConfig{
		Alerts:    cfg.Monitoring.Alerts,
		Detector:  detector,
		Metrics:   metrics,
		Tracker:   tracker,
		RedactPII: cfg.Monitoring.RedactPII,
	})
	return monitor, tracker, metrics, nil
}

// newRand returns a PCG source. Seed 0 draws a seed from the clock.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// setupLogging configures the global zerolog logger for diagnostics. The
// monitoring sink is separate and configured from the config file.
func setupLogging(out io.Writer, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}).Level(level)
}
