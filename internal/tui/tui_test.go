package tui_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compresr/chatbot-ops/internal/tui"
)

func TestPromptString(t *testing.T) {
	out := &bytes.Buffer{}
	p := tui.NewPrompter(strings.NewReader("  alice  \nsecond\nlast-no-newline"), out)

	first, err := p.PromptString("Name: ")
	require.NoError(t, err)
	second, err := p.PromptString("Again: ")
	require.NoError(t, err)
	third, err := p.PromptString("Last: ")
	require.NoError(t, err)
	empty, err := p.PromptString("Gone: ")
	require.NoError(t, err)

	assert.Equal(t, "alice", first)
	assert.Equal(t, "second", second)
	assert.Equal(t, "last-no-newline", third)
	assert.Equal(t, "", empty)
	assert.Equal(t, "Name: Again: Last: Gone: ", out.String())
}

func TestPrintHelpersWithoutColor(t *testing.T) {
	out := &bytes.Buffer{}
	p := tui.NewPrompter(strings.NewReader(""), out)

	p.PrintHeader("Chatbot Feedback Collector")
	p.PrintMenu("Select Feedback Type:", []tui.MenuItem{{Key: "1", Label: "Bug Report"}})
	p.PrintSuccess("saved")
	p.PrintInfo("note")
	p.PrintError("broken")

	assert.Equal(t,
		"--- Chatbot Feedback Collector ---\n"+
			"Select Feedback Type:\n"+
			"  1: Bug Report\n"+
			"[OK] saved\n"+
			"[INFO] note\n"+
			"\nError: broken\n",
		out.String())
}
