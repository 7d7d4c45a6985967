package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/grapl-ai/grapl-site/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert inserts a lead keyed on email. A repeat signup merges its
// attribution into the existing row without clobbering anything already
// recorded, and reports entity.ErrDuplicateEmail so the caller can count
// it as success without re-firing signup events. xmax = 0 only holds for
// a freshly inserted row, so it distinguishes the insert arm from the
// conflict-update arm.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (email, product_id, source, referrer, utm_source, utm_medium, utm_campaign, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			product_id   = COALESCE(EXCLUDED.product_id, leads.product_id),
			referrer     = COALESCE(EXCLUDED.referrer, leads.referrer),
			utm_source   = COALESCE(EXCLUDED.utm_source, leads.utm_source),
			utm_medium   = COALESCE(EXCLUDED.utm_medium, leads.utm_medium),
			utm_campaign = COALESCE(EXCLUDED.utm_campaign, leads.utm_campaign)
		RETURNING id, created_at, (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.Email,
		lead.ProductID,
		lead.Source,
		lead.Referrer,
		lead.UTMSource,
		lead.UTMMedium,
		lead.UTMCampaign,
	).Scan(
		&lead.ID,
		&lead.CreatedAt,
		&inserted,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			// Lost a race with a concurrent identical signup.
			return entity.ErrDuplicateEmail
		}
		return err
	}

	if !inserted {
		return entity.ErrDuplicateEmail
	}
	return nil
}
