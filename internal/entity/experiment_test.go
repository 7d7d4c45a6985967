package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayStatus(t *testing.T) {
	cases := map[string]string{
		"beta":        StatusBeta,
		"live":        StatusBeta,
		"coming-soon": StatusComingSoon,
		"development": StatusComingSoon,
		"planned":     StatusComingSoon,
		"":            StatusComingSoon,
		"archived":    StatusComingSoon, // unknown values must not break rendering
	}

	for raw, want := range cases {
		assert.Equal(t, want, DisplayStatus(raw), "raw status %q", raw)
	}
}

func TestIconForMatchesCategoryBeforeName(t *testing.T) {
	// Category carries "trade", name carries "email"; category wins.
	assert.Equal(t, "🔧", IconFor("Trades", "Email Helper"))
}

func TestIconForFallsBackToName(t *testing.T) {
	assert.Equal(t, "🔧", IconFor("", "QuoteMate"))
	assert.Equal(t, "📬", IconFor("", "InboxPilot"))
}

func TestIconForIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "💸", IconFor("FINANCE", ""))
}

func TestIconForDefaultGlyph(t *testing.T) {
	assert.Equal(t, "🧪", IconFor("Gardening", "LeafBuddy"))
}

func TestDecorate(t *testing.T) {
	e := Experiment{Name: "QuoteMate", Category: "Trades", RawStatus: "live"}
	e.Decorate()

	assert.Equal(t, StatusBeta, e.Status)
	assert.Equal(t, "🔧", e.Icon)
}
