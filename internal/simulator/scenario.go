// Package simulator stands in for a real chatbot backend.
//
// DESIGN: A ScenarioGenerator decides WHAT the chatbot answers and how long
// it stalls; the Simulator measures how long that actually took. The
// generator is an interface so tests can script exact responses.
package simulator

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/compresr/chatbot-ops/internal/monitoring"
)

// =============================================================================
// SCENARIOS
// =============================================================================

// Scenario is one canned chatbot behavior.
type Scenario struct {
	Name     string            `yaml:"name"`
	Weight   float64           `yaml:"weight"`
	Status   monitoring.Status `yaml:"status"`
	Content  string            `yaml:"content"`
	MinDelay time.Duration     `yaml:"min_delay"`
	MaxDelay time.Duration     `yaml:"max_delay"`
}

// DefaultScenarios covers the happy path, a PII leak, a slow answer and an
// internal error.
var DefaultScenarios = []Scenario{
	{
		Name:     "normal",
		Weight:   0.70,
		Status:   monitoring.StatusSuccess,
		Content:  "Thank you for your query about your order. It is scheduled to arrive tomorrow.",
		MinDelay: 500 * time.Millisecond,
		MaxDelay: 2 * time.Second,
	},
	{
		Name:     "pii_leak",
		Weight:   0.15,
		Status:   monitoring.StatusSuccess,
		Content:  "Your account details are tied to user@example.com. For help, call 555-123-4567.",
		MinDelay: 1 * time.Second,
		MaxDelay: 3 * time.Second,
	},
	{
		Name:     "slow",
		Weight:   0.10,
		Status:   monitoring.StatusSuccess,
		Content:  "Searching through our extensive knowledge base for your complex query...",
		MinDelay: 5500 * time.Millisecond,
		MaxDelay: 7 * time.Second,
	},
	{
		Name:     "error",
		Weight:   0.05,
		Status:   monitoring.StatusError,
		Content:  "I am sorry, but I encountered an internal error. Please try again later.",
		MinDelay: 500 * time.Millisecond,
		MaxDelay: 1 * time.Second,
	},
}

// ValidateScenarios checks weights, statuses and delay ranges.
func ValidateScenarios(scenarios []Scenario) error {
	if len(scenarios) == 0 {
		return fmt.Errorf("at least one scenario is required")
	}
	total := 0.0
	for _, s := range scenarios {
		if s.Weight < 0 {
			return fmt.Errorf("scenario %q: negative weight %v", s.Name, s.Weight)
		}
		if s.Status != monitoring.StatusSuccess && s.Status != monitoring.StatusError {
			return fmt.Errorf("scenario %q: invalid status %q", s.Name, s.Status)
		}
		if s.MinDelay < 0 || s.MaxDelay < s.MinDelay {
			return fmt.Errorf("scenario %q: invalid delay range %s-%s", s.Name, s.MinDelay, s.MaxDelay)
		}
		total += s.Weight
	}
	if total <= 0 {
		return fmt.Errorf("scenario weights must sum to a positive value")
	}
	return nil
}

// =============================================================================
// GENERATORS
// =============================================================================

// Plan is what the simulated chatbot will answer and how long it waits first.
type Plan struct {
	Scenario string
	Response monitoring.Response
	Delay    time.Duration
}

// ScenarioGenerator picks the plan for a query.
type ScenarioGenerator interface {
	Generate(query string) Plan
}

// WeightedGenerator draws scenarios by weight and a delay uniformly from the
// chosen scenario's range. Not safe for concurrent use.
type WeightedGenerator struct {
	scenarios []Scenario
	total     float64
	rng       *rand.Rand
}

// NewWeightedGenerator validates scenarios and seeds the draw.
func NewWeightedGenerator(scenarios []Scenario, rng *rand.Rand) (*WeightedGenerator, error) {
	if err := ValidateScenarios(scenarios); err != nil {
		return nil, err
	}
	g := &WeightedGenerator{scenarios: scenarios, rng: rng}
	for _, s := range scenarios {
		g.total += s.Weight
	}
	return g, nil
}

// Generate implements ScenarioGenerator. The query does not influence the draw.
func (g *WeightedGenerator) Generate(_ string) Plan {
	s := g.pick()
	delay := s.MinDelay
	if span := s.MaxDelay - s.MinDelay; span > 0 {
		delay += time.Duration(g.rng.Int64N(int64(span) + 1))
	}
	return Plan{
		Scenario: s.Name,
		Response: monitoring.Response{Status: s.Status, Content: s.Content},
		Delay:    delay,
	}
}

func (g *WeightedGenerator) pick() Scenario {
	r := g.rng.Float64() * g.total
	for _, s := range g.scenarios {
		if r < s.Weight {
			return s
		}
		r -= s.Weight
	}
	// Float rounding can leave r just past the last weight.
	for i := len(g.scenarios) - 1; i >= 0; i-- {
		if g.scenarios[i].Weight > 0 {
			return g.scenarios[i]
		}
	}
	return g.scenarios[len(g.scenarios)-1]
}

// ScriptedGenerator replays plans in order and then repeats the last one.
type ScriptedGenerator struct {
	Plans []Plan
	next  int
}

// Generate implements ScenarioGenerator.
func (g *ScriptedGenerator) Generate(_ string) Plan {
	if len(g.Plans) == 0 {
		return Plan{Response: monitoring.Response{Status: monitoring.StatusSuccess}}
	}
	p := g.Plans[min(g.next, len(g.Plans)-1)]
	g.next++
	return p
}
