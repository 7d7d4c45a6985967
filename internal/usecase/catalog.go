package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/grapl-ai/grapl-site/internal/entity"
	"github.com/grapl-ai/grapl-site/internal/infra/metrics"
)

// FallbackPolicy decides what the catalog serves when the backend store is
// unreachable. Static builds want the hard-coded set so every page still
// renders; a live deployment may prefer an honest empty grid.
type FallbackPolicy string

const (
	FallbackStatic FallbackPolicy = "fallback"
	FallbackEmpty  FallbackPolicy = "empty"
)

// CatalogReader is the only read path for experiments. It never returns an
// error: page rendering and sitemap generation must always produce valid
// output, so store failures degrade per the configured policy.
type CatalogReader struct {
	Products ProductRepositoryInterface
	Policy   FallbackPolicy
	Log      *zap.SugaredLogger
}

func NewCatalogReader(products ProductRepositoryInterface, policy FallbackPolicy, log *zap.SugaredLogger) *CatalogReader {
	return &CatalogReader{Products: products, Policy: policy, Log: log}
}

// List returns all non-killed experiments, newest first, with display
// status and icon filled in.
func (c *CatalogReader) List(ctx context.Context) []entity.Experiment {
	rows, err := c.Products.ListActive(ctx)
	if err != nil {
		c.Log.Warnw("catalog store unavailable", "policy", c.Policy, "error", err)
		metrics.RecordCatalogFallback()
		if c.Policy == FallbackStatic {
			return FallbackExperiments()
		}
		return nil
	}
	out := make([]entity.Experiment, 0, len(rows))
	for _, e := range rows {
		e.Decorate()
		out = append(out, e)
	}
	return out
}

// Get returns the experiment with the given slug, or nil when it does not
// exist or the store is down under the empty policy. Slug comparison is
// exact and case-sensitive, matching the storage convention.
func (c *CatalogReader) Get(ctx context.Context, slug string) *entity.Experiment {
	e, err := c.Products.FindBySlug(ctx, slug)
	if errors.Is(err, entity.ErrNotFound) {
		return nil
	}
	if err != nil {
		c.Log.Warnw("catalog store unavailable", "slug", slug, "error", err)
		metrics.RecordCatalogFallback()
		if c.Policy == FallbackStatic {
			for _, fb := range FallbackExperiments() {
				if fb.Slug == slug {
					return &fb
				}
			}
		}
		return nil
	}
	e.Decorate()
	return e
}

// FallbackExperiments is the fixed set served when the store is down and
// the policy is "fallback". Keep slugs in sync with the production rows.
func FallbackExperiments() []entity.Experiment {
	experiments := []entity.Experiment{
		{
			ID:          3,
			Slug:        "grant-scout",
			Name:        "GrantScout",
			Tagline:     "Find grants your small business actually qualifies for",
			Description: "Answer a few questions and get a shortlist of state and federal grants matched to your business, with deadlines and eligibility spelled out.",
			Category:    "Finance",
			Vertical:    "Small business",
			RawStatus:   "planned",
			CreatedAt:   time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Slug:        "inbox-pilot",
			Name:        "InboxPilot",
			Tagline:     "Drafts replies to the email you keep putting off",
			Description: "Connects to your inbox, learns your tone and drafts replies for the messages that have been sitting unanswered for days.",
			Category:    "Email",
			Vertical:    "Solo operators",
			RawStatus:   "development",
			CreatedAt:   time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          1,
			Slug:        "quotemate",
			Name:        "QuoteMate",
			Tagline:     "Job quotes for tradies in minutes, not evenings",
			Description: "Describe the job in plain words and QuoteMate turns it into an itemised, professional quote you can send from your phone before you leave the driveway.",
			Category:    "Trades",
			Vertical:    "Trades & construction",
			RawStatus:   "beta",
			CreatedAt:   time.Date(2024, 11, 9, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range experiments {
		experiments[i].Decorate()
	}
	return experiments
}
