package simulator

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/compresr/chatbot-ops/internal/monitoring"
)

// DefaultQueries are the sample user questions.
var DefaultQueries = []string{
	"What's the status of my order?",
	"How do I reset my password?",
	"Can you find my account details?",
	"Tell me about your refund policy.",
	"Why is my bill so high?",
}

// Observer evaluates one interaction. *monitoring.Monitor satisfies it.
type Observer interface {
	Observe(userID, request string, resp monitoring.Response, latency time.Duration) monitoring.Outcome
}

// RunnerConfig drives a simulation run.
type RunnerConfig struct {
	Iterations int
	Interval   time.Duration
	Queries    []string
	Out        io.Writer // progress lines; nil discards
}

// Summary counts what a run observed.
type Summary struct {
	Interactions int
	Errors       int
	HighLatency  int
	PIIResponses int
}

// Runner loops simulate -> observe -> wait.
type Runner struct {
	cfg       RunnerConfig
	simulator *Simulator
	observer  Observer
	rng       *rand.Rand
	sleep     SleepFunc
}

// NewRunner creates a runner. rng picks user ids and queries.
func NewRunner(cfg RunnerConfig, sim *Simulator, observer Observer, rng *rand.Rand, sleep SleepFunc) *Runner {
	if len(cfg.Queries) == 0 {
		cfg.Queries = DefaultQueries
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if sleep == nil {
		sleep = Sleep
	}
	return &Runner{cfg: cfg, simulator: sim, observer: observer, rng: rng, sleep: sleep}
}

// Run performs cfg.Iterations interactions. It stops early, returning the
// partial summary and ctx.Err(), when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	for i := 0; i < r.cfg.Iterations; i++ {
		userID := fmt.Sprintf("user_%d", 100+r.rng.IntN(900))
		query := r.cfg.Queries[r.rng.IntN(len(r.cfg.Queries))]

		fmt.Fprintf(r.cfg.Out, "\n--- Simulating interaction for %s ---\n", userID)

		resp, latency, err := r.simulator.Respond(ctx, query)
		if err != nil {
			return sum, err
		}

		out := r.observer.Observe(userID, query, resp, latency)
		sum.Interactions++
		if out.Error {
			sum.Errors++
		}
		if out.HighLatency {
			sum.HighLatency++
		}
		if out.PII.Any() {
			sum.PIIResponses++
		}

		if err := r.sleep(ctx, r.cfg.Interval); err != nil {
			return sum, err
		}
	}

	return sum, nil
}
