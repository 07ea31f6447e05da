// Package pii finds personally identifiable information in chatbot output.
//
// DESIGN: A Detector is an ordered table of (category, regexp) rules.
// Detect returns every match per category in order of appearance and omits
// categories that did not match, so an empty Findings means "clean".
//
// Usage:
//
//	detector := pii.MustDefaultDetector()
//	findings := detector.Detect(text)
//	if findings.Any() { ... }
package pii

import (
	"fmt"
	"regexp"
	"sort"
)

// =============================================================================
// CATEGORIES
// =============================================================================

// Category names a kind of PII.
type Category string

const (
	CategoryEmail Category = "EMAIL"
	CategoryPhone Category = "PHONE"
)

// Pattern binds a category to the expression that finds it.
type Pattern struct {
	Category Category `yaml:"category"`
	Expr     string   `yaml:"expr"`
}

// DefaultPatterns is the built-in rule table.
//
// The phone rule accepts 3-3-4 digit groups with optional '-' or '.'
// separators. Word boundaries at both ends keep it from matching inside
// longer digit runs.
var DefaultPatterns = []Pattern{
	{Category: CategoryEmail, Expr: `[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`},
	{Category: CategoryPhone, Expr: `\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`},
}

// =============================================================================
// DETECTOR
// =============================================================================

type rule struct {
	category Category
	re       *regexp.Regexp
}

// Detector scans text against a fixed set of rules. Safe for concurrent use.
type Detector struct {
	rules []rule
}

// NewDetector compiles the given patterns in order.
// A later pattern with an already-seen category replaces the earlier one.
func NewDetector(patterns []Pattern) (*Detector, error) {
	d := &Detector{}
	index := make(map[Category]int, len(patterns))

	for _, p := range patterns {
		if p.Category == "" {
			return nil, fmt.Errorf("pii pattern %q has no category", p.Expr)
		}
		re, err := regexp.Compile(p.Expr)
		if err != nil {
			return nil, fmt.Errorf("pii pattern for %s: %w", p.Category, err)
		}
		if i, ok := index[p.Category]; ok {
			d.rules[i].re = re
			continue
		}
		index[p.Category] = len(d.rules)
		d.rules = append(d.rules, rule{category: p.Category, re: re})
	}

	return d, nil
}

// NewDefaultDetector returns a detector over DefaultPatterns followed by extra.
func NewDefaultDetector(extra ...Pattern) (*Detector, error) {
	patterns := make([]Pattern, 0, len(DefaultPatterns)+len(extra))
	patterns = append(patterns, DefaultPatterns...)
	patterns = append(patterns, extra...)
	return NewDetector(patterns)
}

// MustDefaultDetector is NewDefaultDetector without extras. It panics only if
// the built-in table fails to compile.
func MustDefaultDetector() *Detector {
	d, err := NewDefaultDetector()
	if err != nil {
		panic(err)
	}
	return d
}

// Categories returns the detector's categories in rule order.
func (d *Detector) Categories() []Category {
	out := make([]Category, len(d.rules))
	for i, r := range d.rules {
		out[i] = r.category
	}
	return out
}

// Detect returns all matches per category. Categories without a match are
// absent from the result.
func (d *Detector) Detect(text string) Findings {
	found := Findings{}
	if text == "" {
		return found
	}
	for _, r := range d.rules {
		if matches := r.re.FindAllString(text, -1); len(matches) > 0 {
			found[r.category] = matches
		}
	}
	return found
}

// Redact replaces every match with a [REDACTED_<CATEGORY>] marker.
func (d *Detector) Redact(text string) string {
	for _, r := range d.rules {
		text = r.re.ReplaceAllLiteralString(text, "[REDACTED_"+string(r.category)+"]")
	}
	return text
}

// =============================================================================
// FINDINGS
// =============================================================================

// Findings maps a category to the substrings that matched it.
type Findings map[Category][]string

// Any reports whether at least one category matched.
func (f Findings) Any() bool {
	return len(f) > 0
}

// Count returns the total number of matches across categories.
func (f Findings) Count() int {
	n := 0
	for _, m := range f {
		n += len(m)
	}
	return n
}

// Categories returns the matched categories sorted by name.
func (f Findings) Categories() []Category {
	out := make([]Category, 0, len(f))
	for c := range f {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
