package supabase

import (
	"time"

	"github.com/grapl-ai/grapl-site/internal/entity"
)

// productRow mirrors the products table as PostgREST serializes it.
type productRow struct {
	ID            int64     `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	URL           *string   `json:"url"`
	Tagline       string    `json:"tagline"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Vertical      string    `json:"vertical"`
	Tags          []string  `json:"tags"`
	Status        string    `json:"status"`
	TractionScore *int      `json:"traction_score"`
	WaitlistCount *int      `json:"waitlist_count"`
	CreatedAt     time.Time `json:"created_at"`
	PricingModel  *string   `json:"pricing_model"`
}

func (r productRow) toEntity() entity.Experiment {
	e := entity.Experiment{
		ID:            r.ID,
		Slug:          r.Slug,
		Name:          r.Name,
		Tagline:       r.Tagline,
		Description:   r.Description,
		Category:      r.Category,
		Vertical:      r.Vertical,
		Tags:          r.Tags,
		RawStatus:     r.Status,
		TractionScore: r.TractionScore,
		WaitlistCount: r.WaitlistCount,
		CreatedAt:     r.CreatedAt,
	}
	if r.URL != nil {
		e.URL = *r.URL
	}
	if r.PricingModel != nil {
		e.PricingModel = *r.PricingModel
	}
	return e
}

// leadRow is the insert payload. Absent optional fields serialize as
// explicit nulls, not omitted keys.
type leadRow struct {
	Email       string  `json:"email"`
	ProductID   *int64  `json:"product_id"`
	Source      string  `json:"source"`
	Referrer    *string `json:"referrer"`
	UTMSource   *string `json:"utm_source"`
	UTMMedium   *string `json:"utm_medium"`
	UTMCampaign *string `json:"utm_campaign"`
}

func leadRowFrom(lead *entity.Lead) leadRow {
	return leadRow{
		Email:       lead.Email,
		ProductID:   lead.ProductID,
		Source:      lead.Source,
		Referrer:    lead.Referrer,
		UTMSource:   lead.UTMSource,
		UTMMedium:   lead.UTMMedium,
		UTMCampaign: lead.UTMCampaign,
	}
}
