package entity

import (
	"strings"
	"time"
)

// Display statuses. The backend vocabulary is wider (live, development,
// planned, killed, ...) and is collapsed to these two at read time.
const (
	StatusBeta       = "beta"
	StatusComingSoon = "coming-soon"
	StatusKilled     = "killed"
)

type Experiment struct {
	ID            int64
	Slug          string
	Name          string
	Tagline       string
	Description   string
	Category      string
	Vertical      string
	Tags          []string
	Status        string // display status, see DisplayStatus
	RawStatus     string
	TractionScore *int
	WaitlistCount *int
	PricingModel  string
	URL           string
	Icon          string
	CreatedAt     time.Time
}

// DisplayStatus maps the backend status vocabulary to what the site shows.
// Unknown values fall through to coming-soon so a new status added on the
// backend can never break rendering.
func DisplayStatus(raw string) string {
	switch raw {
	case "beta", "live":
		return StatusBeta
	default:
		return StatusComingSoon
	}
}

// Ordered keyword table for card icons. Category is scanned before name,
// first match wins.
var iconKeywords = []struct {
	keyword string
	icon    string
}{
	{"quote", "🔧"},
	{"trade", "🔧"},
	{"invoice", "💸"},
	{"finance", "💸"},
	{"email", "📬"},
	{"inbox", "📬"},
	{"write", "✍️"},
	{"content", "✍️"},
	{"legal", "⚖️"},
	{"health", "🩺"},
	{"voice", "🎙️"},
	{"assistant", "🤖"},
	{"ai", "🤖"},
}

const defaultIcon = "🧪"

func IconFor(category, name string) string {
	haystacks := []string{strings.ToLower(category), strings.ToLower(name)}
	for _, h := range haystacks {
		for _, kw := range iconKeywords {
			if strings.Contains(h, kw.keyword) {
				return kw.icon
			}
		}
	}
	return defaultIcon
}

// Decorate fills the derived display fields in place.
func (e *Experiment) Decorate() {
	e.Status = DisplayStatus(e.RawStatus)
	e.Icon = IconFor(e.Category, e.Name)
}
