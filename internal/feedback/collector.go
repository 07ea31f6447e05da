package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/compresr/chatbot-ops/internal/tui"
)

// CollectorConfig wires a Collector.
type CollectorConfig struct {
	Prompter *tui.Prompter
	Store    Store
	Now      func() time.Time // defaults to time.Now
}

// Collector runs one interactive feedback session.
type Collector struct {
	prompter *tui.Prompter
	store    Store
	path     string
	now      func() time.Time
}

// NewCollector creates a collector.
func NewCollector(cfg CollectorConfig) *Collector {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Collector{prompter: cfg.Prompter, store: cfg.Store, path: StorePath(cfg.Store), now: now}
}

// Run prompts for one record and appends it. Validation failures return
// ErrValidation before anything is written; write failures are reported to
// the user and returned wrapped. Neither is retried.
func (c *Collector) Run(ctx context.Context) (*Record, error) {
	p := c.prompter
	p.PrintHeader("Chatbot Feedback Collector")

	userID, err := p.PromptString("Enter your User ID (e.g., 12345): ")
	if err != nil {
		return nil, fmt.Errorf("read user id: %w", err)
	}

	items := make([]tui.MenuItem, len(Options))
	for i, o := range Options {
		items[i] = tui.MenuItem{Key: o.Key, Label: o.Label}
	}
	p.PrintMenu("Select Feedback Type:", items)

	choice, err := p.PromptString("Enter the number for the feedback type: ")
	if err != nil {
		return nil, fmt.Errorf("read feedback type: %w", err)
	}

	description, err := p.PromptString("Please provide a detailed description of your feedback:\n")
	if err != nil {
		return nil, fmt.Errorf("read description: %w", err)
	}

	rec, err := NewRecord(userID, TypeForChoice(choice), description, c.now())
	if errors.Is(err, ErrValidation) {
		p.PrintError("User ID and description cannot be empty. Aborting.")
		return nil, err
	}

	if err := c.store.Append(ctx, rec); err != nil {
		p.PrintError(fmt.Sprintf("Could not write to feedback file '%s'. %v", c.path, err))
		return nil, fmt.Errorf("append feedback: %w", err)
	}

	p.Println()
	p.PrintSuccess("Thank you! Your feedback has been successfully recorded.")
	pretty, _ := json.MarshalIndent(rec, "", "  ")
	p.Println("Record saved:", string(pretty))

	return &rec, nil
}
