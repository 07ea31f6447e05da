// Package main is the entry point for the feedback collector.
//
// Usage:
//
//	feedback-collector [-config FILE] [-debug]          collect one record
//	feedback-collector report [-config FILE] [-debug]   summarize the feedback file
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/compresr/chatbot-ops/internal/config"
	"github.com/compresr/chatbot-ops/internal/feedback"
	"github.com/compresr/chatbot-ops/internal/tui"
)

func main() {
	config.LoadEnvFiles()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], tui.Stdio(), os.Stderr))
}

// run executes one command and returns the process exit code. A rejected or
// unwritable record still exits 0: the user was told what happened.
func run(ctx context.Context, args []string, p *tui.Prompter, logOut io.Writer) int {
	cmd := "collect"
	if len(args) > 0 && args[0] == "report" {
		cmd, args = "report", args[1:]
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(logOut)
	fs.Usage = func() {
		fmt.Fprintln(logOut, "Usage: feedback-collector [report] [-config FILE] [-debug]")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "path to config file")
	debug := fs.Bool("debug", false, "enable debug logging")
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

	if cmd == "report" {
		return runReport(ctx, cfg, p)
	}
	return runCollect(ctx, cfg, p)
}

func runCollect(ctx context.Context, cfg *config.Config, p *tui.Prompter) int {
	store, err := openStore(ctx, cfg.Feedback)
	if err != nil {
		log.Error().Err(err).Msg("failed to open feedback store")
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close feedback store")
		}
	}()

	collector := feedback.NewCollector(feedback.CollectorConfig{
		Prompter: p,
		Store:    store,
	})

	rec, err := collector.Run(ctx)
	switch {
	case errors.Is(err, feedback.ErrValidation):
		log.Debug().Msg("feedback rejected")
	case err != nil:
		log.Debug().Err(err).Str("file", cfg.Feedback.File).Msg("feedback not recorded")
	default:
		log.Debug().
			Str("user_id", rec.UserID).
			Str("feedback_type", string(rec.FeedbackType)).
			Str("file", cfg.Feedback.File).
			Msg("feedback recorded")
	}
	return 0
}

// openStore returns the JSONL store, teed into SQLite when a mirror path is set.
func openStore(ctx context.Context, cfg config.FeedbackConfig) (feedback.Store, error) {
	primary := feedback.NewJSONLStore(cfg.File)
	if cfg.SQLitePath == "" {
		return primary, nil
	}

	mirror, err := feedback.OpenSQLiteStore(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", cfg.SQLitePath).Msg("sqlite mirror enabled")
	return feedback.Tee(primary, mirror), nil
}

func runReport(ctx context.Context, cfg *config.Config, p *tui.Prompter) int {
	sum, err := feedback.SummarizeFile(cfg.Feedback.File)
	if err != nil {
		log.Error().Err(err).Str("file", cfg.Feedback.File).Msg("failed to read feedback file")
		return 1
	}

	p.PrintHeader("Feedback Report")
	if sum.Total == 0 && sum.Malformed == 0 {
		p.PrintInfo(fmt.Sprintf("No feedback recorded in '%s' yet.", cfg.Feedback.File))
		return 0
	}
	p.Printf("File:      %s\n", cfg.Feedback.File)
	p.Printf("Records:   %d\n", sum.Total)
	p.Printf("Users:     %d\n", sum.Users)
	if sum.Total > 0 {
		p.Printf("First:     %s\n", sum.First)
		p.Printf("Last:      %s\n", sum.Last)
	}
	if sum.Malformed > 0 {
		p.Printf("Malformed: %d\n", sum.Malformed)
	}
	printCounts(p, "By type:", sum.ByType)

	if cfg.Feedback.SQLitePath != "" {
		store, err := feedback.OpenSQLiteStore(ctx, cfg.Feedback.SQLitePath)
		if err != nil {
			log.Error().Err(err).Msg("failed to open sqlite mirror")
			return 1
		}
		defer store.Close()

		counts, err := store.CountByType(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to query sqlite mirror")
			return 1
		}
		printCounts(p, "SQLite mirror by type:", counts)
	}
	return 0
}

func printCounts(p *tui.Prompter, title string, counts map[feedback.Type]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for t := range counts {
		keys = append(keys, string(t))
	}
	sort.Strings(keys)

	p.Println()
	p.Println(title)
	for _, k := range keys {
		p.Printf("  %-18s %d\n", k, counts[feedback.Type(k)])
	}
}

// setupLogging configures the global zerolog logger for diagnostics.
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
