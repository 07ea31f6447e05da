package simulator

import (
	"context"
	"time"

	"github.com/compresr/chatbot-ops/internal/monitoring"
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the real SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Simulator produces synthetic chatbot responses.
type Simulator struct {
	generator ScenarioGenerator
	sleep     SleepFunc
}

// New creates a simulator. A nil sleep uses Sleep.
func New(generator ScenarioGenerator, sleep SleepFunc) *Simulator {
	if sleep == nil {
		sleep = Sleep
	}
	return &Simulator{generator: generator, sleep: sleep}
}

// Respond answers query after the planned delay. The returned latency is the
// measured wall-clock time, not the planned delay.
func (s *Simulator) Respond(ctx context.Context, query string) (monitoring.Response, time.Duration, error) {
	start := time.Now()

	plan := s.generator.Generate(query)
	if err := s.sleep(ctx, plan.Delay); err != nil {
		return monitoring.Response{}, time.Since(start), err
	}

	return plan.Response, time.Since(start), nil
}
