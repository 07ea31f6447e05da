package pii_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compresr/chatbot-ops/internal/pii"
)

// =============================================================================
// DETECT
// =============================================================================

func TestDetect_Email(t *testing.T) {
	d := pii.MustDefaultDetector()

	found := d.Detect("Your account details are tied to user@example.com.")

	assert.Equal(t, []string{"user@example.com"}, found[pii.CategoryEmail])
	assert.NotContains(t, found, pii.CategoryPhone)
}

func TestDetect_MultipleEmailsInOrder(t *testing.T) {
	d := pii.MustDefaultDetector()

	found := d.Detect("cc b.smith+tag@mail.co.uk and alice@corp.io")

	assert.Equal(t, []string{"b.smith+tag@mail.co.uk", "alice@corp.io"}, found[pii.CategoryEmail])
}

func TestDetect_PhoneSeparators(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "dashes", text: "call 555-123-4567 now", want: "555-123-4567"},
		{name: "dots", text: "call 555.123.4567 now", want: "555.123.4567"},
		{name: "no separator", text: "call 5551234567 now", want: "5551234567"},
		{name: "mixed", text: "call 555.123-4567 now", want: "555.123-4567"},
		{name: "end of sentence", text: "For help, call 555-123-4567.", want: "555-123-4567"},
	}

	d := pii.MustDefaultDetector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found := d.Detect(tt.text)
			assert.Equal(t, []string{tt.want}, found[pii.CategoryPhone])
		})
	}
}

func TestDetect_PhoneInsideLongerDigitRun(t *testing.T) {
	d := pii.MustDefaultDetector()

	found := d.Detect("order 123456789012345 shipped")

	assert.NotContains(t, found, pii.CategoryPhone)
}

func TestDetect_BothCategories(t *testing.T) {
	d := pii.MustDefaultDetector()

	found := d.Detect("Your account details are tied to user@example.com. For help, call 555-123-4567.")

	require.Len(t, found, 2)
	assert.Equal(t, []string{"user@example.com"}, found[pii.CategoryEmail])
	assert.Equal(t, []string{"555-123-4567"}, found[pii.CategoryPhone])
	assert.True(t, found.Any())
	assert.Equal(t, 2, found.Count())
	assert.Equal(t, []pii.Category{pii.CategoryEmail, pii.CategoryPhone}, found.Categories())
}

func TestDetect_Clean(t *testing.T) {
	d := pii.MustDefaultDetector()

	for _, text := range []string{
		"",
		"Thank you for your query about your order. It is scheduled to arrive tomorrow.",
		"call 555-1234",
		"user at example dot com",
	} {
		found := d.Detect(text)
		assert.Empty(t, found, text)
		assert.False(t, found.Any())
	}
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

func TestNewDefaultDetector_ExtraCategory(t *testing.T) {
	d, err := pii.NewDefaultDetector(pii.Pattern{Category: "SSN", Expr: `\b\d{3}-\d{2}-\d{4}\b`})
	require.NoError(t, err)

	assert.Equal(t, []pii.Category{pii.CategoryEmail, pii.CategoryPhone, "SSN"}, d.Categories())

	found := d.Detect("ssn 123-45-6789")
	assert.Equal(t, []string{"123-45-6789"}, found["SSN"])
}

func TestNewDefaultDetector_OverrideCategory(t *testing.T) {
	d, err := pii.NewDefaultDetector(pii.Pattern{Category: pii.CategoryPhone, Expr: `\+\d{11}`})
	require.NoError(t, err)

	assert.Equal(t, []pii.Category{pii.CategoryEmail, pii.CategoryPhone}, d.Categories())
	assert.Empty(t, d.Detect("555-123-4567"))
	assert.Equal(t, []string{"+15551234567"}, d.Detect("dial +15551234567")[pii.CategoryPhone])
}

func TestNewDetector_Errors(t *testing.T) {
	_, err := pii.NewDetector([]pii.Pattern{{Category: "BAD", Expr: `([`}})
	assert.Error(t, err)

	_, err = pii.NewDetector([]pii.Pattern{{Expr: `\d+`}})
	assert.Error(t, err)
}

func TestRedact(t *testing.T) {
	d := pii.MustDefaultDetector()

	got := d.Redact("mail user@example.com or call 555-123-4567")

	assert.Equal(t, "mail [REDACTED_EMAIL] or call [REDACTED_PHONE]", got)
}
